// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"context"
	"fmt"

	"github.com/pdiddy/doc-ingest/internal/runner"
)

// Command extracts text by running a local tool that prints text to stdout.
type Command struct {
	name string
	bin  string
	args func(path string) []string
	exec runner.Executor
}

func (c *Command) Name() string { return c.name }

func (c *Command) Extract(ctx context.Context, path string) ([]byte, error) {
	bin, err := runner.Require(c.exec, c.bin)
	if err != nil {
		return nil, err
	}
	var out bytes.Buffer
	if err := c.exec.RunPiped(ctx, bin, c.args(path), nil, &out); err != nil {
		return nil, fmt.Errorf("%s %s: %w", c.bin, path, err)
	}
	return out.Bytes(), nil
}

// NewTesseract runs the tesseract OCR engine on an image, writing recognized
// text to stdout. lang defaults to "eng".
func NewTesseract(exec runner.Executor, lang string) *Command {
	if lang == "" {
		lang = "eng"
	}
	return &Command{
		name: "tesseract",
		bin:  "tesseract",
		args: func(path string) []string { return []string{path, "stdout", "-l", lang} },
		exec: exec,
	}
}

// NewPS2ASCII runs ghostscript's ps2ascii on a PostScript file.
func NewPS2ASCII(exec runner.Executor) *Command {
	return &Command{
		name: "ps2ascii",
		bin:  "ps2ascii",
		args: func(path string) []string { return []string{path} },
		exec: exec,
	}
}
