// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert normalizes extracted text to Markdown with pluggable
// backends.
package convert

import (
	"context"
	"errors"
	"fmt"

	"github.com/pdiddy/doc-ingest/internal/logger"
	"github.com/pdiddy/doc-ingest/internal/runner"
	"github.com/pdiddy/doc-ingest/pkg/types"
)

// ErrUnsupportedFormat reports a from/to pair a backend cannot handle.
var ErrUnsupportedFormat = errors.New("unsupported conversion")

// Converter transforms text from one markup format to another. Different
// backends (html-to-markdown, pandoc) implement this interface.
type Converter interface {
	Convert(ctx context.Context, text, from, to string) (string, error)
}

// New returns the converter selected by cfg. An empty backend selects the
// native converter.
func New(cfg types.ConvertConfig, exec runner.Executor) (Converter, error) {
	switch cfg.Backend {
	case "", types.BackendNative:
		return HTML{}, nil
	case types.BackendPandoc:
		return NewPandoc(exec, cfg.PandocBin), nil
	default:
		return nil, fmt.Errorf("unknown conversion backend %q (want %s or %s)",
			cfg.Backend, types.BackendNative, types.BackendPandoc)
	}
}

// ToMarkdown converts text, treated as HTML, to Markdown. Conversion never
// fails from the caller's view: on error it logs and returns text unchanged.
func ToMarkdown(ctx context.Context, c Converter, text string) string {
	out, err := c.Convert(ctx, text, "html", "markdown")
	if err != nil {
		logger.FromContext(ctx).Error("Failed to convert text to Markdown", "err", err)
		return text
	}
	return out
}
