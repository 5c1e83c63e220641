// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/doc-ingest/internal/store"
	"github.com/pdiddy/doc-ingest/pkg/types"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func checkFormat(format string) error {
	switch format {
	case formatText, formatJSON, formatYAML:
		return nil
	default:
		return fmt.Errorf("unsupported format %q: use text, json or yaml", format)
	}
}

// writeDocuments prints documents in format. Text output is the flat chunk
// list, one chunk per block separated by a blank line.
func writeDocuments(w io.Writer, format string, docs []types.Document) error {
	if docs == nil {
		docs = []types.Document{}
	}
	switch format {
	case formatJSON:
		return writeJSON(w, docs)
	case formatYAML:
		return writeYAML(w, docs)
	}
	for _, d := range docs {
		for _, c := range d.Chunks {
			if _, err := fmt.Fprintf(w, "%s\n\n", c); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeHits prints search results in format. Text output is a table.
func writeHits(w io.Writer, format string, hits []store.Hit) error {
	if hits == nil {
		hits = []store.Hit{}
	}
	switch format {
	case formatJSON:
		return writeJSON(w, hits)
	case formatYAML:
		return writeYAML(w, hits)
	}

	if len(hits) == 0 {
		_, err := fmt.Fprintln(w, "No results found.")
		return err
	}
	fmt.Fprintf(w, "%-40s  %-4s  %s\n", "Path", "Seq", "Content")
	fmt.Fprintln(w, strings.Repeat("-", 100))
	for _, h := range hits {
		fmt.Fprintf(w, "%-40s  %-4d  %s\n", truncate(h.Path, 40), h.Seq, truncate(oneLine(h.Content), 52))
	}
	_, err := fmt.Fprintf(w, "\n%d results\n", len(hits))
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
