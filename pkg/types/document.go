// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Document holds one source file as it moves through the pipeline. Fields
// are filled in stage by stage: Path and Text after extraction, Markdown after
// normalization, Chunks after chunking.
type Document struct {
	// Path is the resolved file path the text was extracted from.
	Path string `json:"path" yaml:"path"`

	// Text is the raw extracted text, valid UTF-8.
	Text string `json:"-" yaml:"-"`

	// Markdown is Text after HTML-to-Markdown normalization.
	Markdown string `json:"-" yaml:"-"`

	// Chunks are the paragraph or sentence segments of Markdown, in order.
	Chunks []string `json:"chunks" yaml:"chunks"`
}
