// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/doc-ingest/internal/store"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search chunks saved by process --db",
	Long: `Search finds stored chunks containing the query as a case-insensitive
substring. Results are ordered by document path and chunk position.`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: bindFlags(map[string]string{"store.path": "db"}),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		if err := checkFormat(format); err != nil {
			return err
		}
		limit, _ := cmd.Flags().GetInt("limit")

		cfg, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}
		if cfg.Store.Path == "" {
			return errors.New("no database: pass --db or set store.path")
		}
		if _, err := os.Stat(cfg.Store.Path); err != nil {
			return err
		}

		db, err := store.NewStore(cfg.Store.Path)
		if err != nil {
			return err
		}
		defer db.Close()

		hits, err := db.Search(cmd.Context(), strings.Join(args, " "), limit)
		if err != nil {
			return err
		}
		return writeHits(os.Stdout, format, hits)
	},
}

func init() {
	searchCmd.Flags().String("db", "", "SQLite database written by process --db")
	searchCmd.Flags().Int("limit", 20, "maximum number of results")
	searchCmd.Flags().String("format", "text", "output format: text, json or yaml")

	rootCmd.AddCommand(searchCmd)
}
