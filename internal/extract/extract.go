// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract pulls raw text out of document files. Format handling is
// delegated to external libraries and tools (docconv, tesseract, markitdown,
// Apache Tika); this package only routes files to them and absorbs per-file
// failures.
package extract

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/doc-ingest/internal/logger"
	"github.com/pdiddy/doc-ingest/pkg/types"
)

var (
	// ErrNoBackend reports that no extraction backend handles a file type.
	ErrNoBackend = errors.New("no extraction backend")

	// ErrInvalidUTF8 reports extracted bytes that are not valid UTF-8.
	ErrInvalidUTF8 = errors.New("extracted text is not valid UTF-8")
)

// tesseractHint is logged when an extraction failure points at a missing
// OCR engine.
const tesseractHint = "Ensure that Tesseract OCR is installed and added to your system's PATH."

// Extractor turns one document file into raw text bytes.
type Extractor interface {
	// Name identifies the backend in logs and joined errors.
	Name() string

	// Extract reads the file at path and returns its text content.
	Extract(ctx context.Context, path string) ([]byte, error)
}

// BatchResult holds the outcome of extracting a list of files.
type BatchResult struct {
	Documents []types.Document
	Extracted int
	Failed    int
}

// Total returns the number of files attempted.
func (r BatchResult) Total() int {
	return r.Extracted + r.Failed
}

// HasFailures reports whether any file failed extraction.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// Texts returns the extracted texts in extraction order.
func (r BatchResult) Texts() []string {
	texts := make([]string, len(r.Documents))
	for i, d := range r.Documents {
		texts[i] = d.Text
	}
	return texts
}

// ReadFiles extracts every path through ex, one at a time. Failures are
// logged and skipped; they never abort the batch. The returned documents keep
// extraction order and leave no holes for failed files.
func ReadFiles(ctx context.Context, ex Extractor, filepaths []string) BatchResult {
	log := logger.FromContext(ctx)
	var result BatchResult
	for _, path := range filepaths {
		text, err := ReadFile(ctx, ex, path)
		if err != nil {
			log.Error("Failed to extract text", "path", path, "err", err)
			if missingOCR(err) {
				log.Error(tesseractHint)
			}
			result.Failed++
			continue
		}
		result.Documents = append(result.Documents, types.Document{Path: path, Text: text})
		result.Extracted++
		log.Info("Successfully extracted text", "path", path)
	}
	return result
}

// ReadFile extracts a single file and decodes it as UTF-8.
func ReadFile(ctx context.Context, ex Extractor, path string) (string, error) {
	data, err := ex.Extract(ctx, path)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%s: %w", path, ErrInvalidUTF8)
	}
	return string(data), nil
}

func missingOCR(err error) bool {
	return strings.Contains(strings.ToLower(err.Error()), "tesseract")
}
