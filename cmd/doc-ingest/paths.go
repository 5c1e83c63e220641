// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/doc-ingest/internal/logger"
	"github.com/pdiddy/doc-ingest/internal/resolve"
)

var pathsCmd = &cobra.Command{
	Use:   "paths [paths...]",
	Short: "List the supported files the given paths resolve to",
	Long: `Paths walks the given files and folders and prints every supported
document that process would read, one per line, without extracting anything.`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: bindFlags(map[string]string{"resolve.exclude": "exclude"}),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(viper.GetViper())
		if err != nil {
			return err
		}
		r := resolve.New(
			resolve.WithLogger(logger.FromContext(cmd.Context())),
			resolve.WithExclude(cfg.Resolve.Exclude...),
		)
		for _, path := range r.Resolve(args) {
			fmt.Fprintln(cmd.OutOrStdout(), path)
		}
		return nil
	},
}

func init() {
	pathsCmd.Flags().StringSlice("exclude", nil, "glob pattern of files to skip (repeatable)")

	rootCmd.AddCommand(pathsCmd)
}
