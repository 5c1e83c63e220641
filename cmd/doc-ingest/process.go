// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/doc-ingest/internal/chunk"
	"github.com/pdiddy/doc-ingest/internal/convert"
	"github.com/pdiddy/doc-ingest/internal/extract"
	"github.com/pdiddy/doc-ingest/internal/logger"
	"github.com/pdiddy/doc-ingest/internal/pipeline"
	"github.com/pdiddy/doc-ingest/internal/resolve"
	"github.com/pdiddy/doc-ingest/internal/runner"
	"github.com/pdiddy/doc-ingest/internal/store"
)

var processCmd = &cobra.Command{
	Use:   "process [paths...]",
	Short: "Extract, normalize and chunk documents",
	Long: `Process resolves the given files and folders to supported documents,
extracts their text, converts it to Markdown and splits it into paragraph or
sentence chunks. Chunks are written to stdout; logs and the batch summary go
to stderr.

With --db the documents and chunks are also saved to a SQLite database that
the search command can query.`,
	Args: cobra.MinimumNArgs(1),
	PreRunE: bindFlags(map[string]string{
		"chunk.method":             "method",
		"store.path":               "db",
		"convert.backend":          "converter",
		"resolve.exclude":          "exclude",
		"extract.markitdown_image": "markitdown-image",
		"extract.tika_url":         "tika-url",
	}),
	RunE: runProcess,
}

func runProcess(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	log := logger.FromContext(ctx)

	format, _ := cmd.Flags().GetString("format")
	if err := checkFormat(format); err != nil {
		return err
	}

	cfg, err := loadConfig(viper.GetViper())
	if err != nil {
		return err
	}
	method, err := chunk.ParseMethod(cfg.Chunk.Method)
	if err != nil {
		return err
	}

	exec := runner.OS{}
	conv, err := convert.New(cfg.Convert, exec)
	if err != nil {
		return err
	}

	p, err := pipeline.New(args,
		pipeline.WithResolver(resolve.New(resolve.WithLogger(log), resolve.WithExclude(cfg.Resolve.Exclude...))),
		pipeline.WithExtractor(extract.NewDefault(ctx, cfg.Extract, exec)),
		pipeline.WithConverter(conv),
	)
	if err != nil {
		return err
	}

	res, err := p.Run(ctx, method)
	if err != nil {
		return err
	}

	if err := writeDocuments(os.Stdout, format, res.Documents); err != nil {
		return err
	}

	chunks := len(pipeline.Flatten(res.Documents))
	fmt.Fprintf(os.Stderr, "\nresolved: %d, extracted: %d, failed: %d, chunks: %d\n",
		res.Resolved, len(res.Documents), res.Failed, chunks)

	if cfg.Store.Path == "" {
		return nil
	}
	db, err := store.NewStore(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer db.Close()

	summary, err := db.Save(ctx, res.Documents, string(method))
	if err != nil {
		return err
	}
	log.Info("Saved chunks", "db", cfg.Store.Path,
		"inserted", summary.Inserted, "replaced", summary.Replaced, "chunks", summary.Chunks)
	return nil
}

func init() {
	processCmd.Flags().String("method", "paragraph", "chunking method: paragraph or sentence")
	processCmd.Flags().String("format", "text", "output format: text, json or yaml")
	processCmd.Flags().String("db", "", "SQLite database to save documents and chunks to")
	processCmd.Flags().String("converter", "native", "Markdown conversion backend: native or pandoc")
	processCmd.Flags().StringSlice("exclude", nil, "glob pattern of files to skip (repeatable)")
	processCmd.Flags().String("markitdown-image", "", "markitdown container image for spreadsheets, ebooks and audio")
	processCmd.Flags().String("tika-url", "", "Apache Tika server URL used as the last extraction fallback")

	rootCmd.AddCommand(processCmd)
}
