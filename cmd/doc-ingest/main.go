// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the doc-ingest CLI.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/doc-ingest/internal/logger"
	"github.com/pdiddy/doc-ingest/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the doc-ingest CLI.
var rootCmd = &cobra.Command{
	Use:   "doc-ingest",
	Short: "Turn document folders into paragraph or sentence chunks",
	Long: `doc-ingest resolves files and folders to supported documents, extracts
their text, normalizes it to Markdown and splits it into chunks ready for
indexing or embedding.

Extraction uses native Go parsers first and falls back to local tools
(tesseract, ps2ascii), a markitdown container or an Apache Tika server when
configured. Per-file failures are logged and skipped.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		log := logger.New(&logger.Config{
			Level:      viper.GetString("log.level"),
			JSON:       viper.GetBool("log.json"),
			Output:     os.Stderr,
			TimeFormat: "15:04:05",
		})
		if f := viper.ConfigFileUsed(); f != "" {
			log.Debug("Using config file", "path", f)
		}
		cmd.SetContext(logger.ContextWithLogger(cmd.Context(), log))
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./doc-ingest.yaml or ~/.config/doc-ingest/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", logger.InfoLevel, "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().Bool("log-json", false, "write logs as JSON lines")

	_ = viper.BindPFlag("log.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("log.json", rootCmd.PersistentFlags().Lookup("log-json"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("doc-ingest")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "doc-ingest"))
		}
	}

	setDefaults(viper.GetViper())

	viper.SetEnvPrefix("DOC_INGEST")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil && cfgFile != "" {
		fmt.Fprintln(os.Stderr, "Reading config file:", err)
	}
}

// setDefaults registers every config key so AutomaticEnv and Unmarshal see
// keys that are absent from the config file.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", logger.InfoLevel)
	v.SetDefault("log.json", false)
	v.SetDefault("resolve.exclude", []string{})
	v.SetDefault("extract.markitdown_image", "")
	v.SetDefault("extract.tika_url", "")
	v.SetDefault("extract.timeout", "60s")
	v.SetDefault("extract.max_retries", 5)
	v.SetDefault("extract.tesseract_lang", "eng")
	v.SetDefault("convert.backend", string(types.BackendNative))
	v.SetDefault("convert.pandoc_bin", "")
	v.SetDefault("chunk.method", "paragraph")
	v.SetDefault("store.path", "")
}

// bindFlags binds the named flags of the running command to config keys.
// Binding happens at run time because several commands share a key.
func bindFlags(keys map[string]string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		for key, name := range keys {
			if err := viper.BindPFlag(key, cmd.Flags().Lookup(name)); err != nil {
				return fmt.Errorf("binding --%s: %w", name, err)
			}
		}
		return nil
	}
}

// loadConfig unmarshals the merged config (defaults, file, env, flags).
func loadConfig(v *viper.Viper) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading config: %w", err)
	}
	return cfg, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
