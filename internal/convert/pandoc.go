// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/doc-ingest/internal/runner"
)

const defaultPandocBin = "pandoc"

// Pandoc converts between any formats the pandoc CLI supports. Text is piped
// through stdin and the result read from stdout.
type Pandoc struct {
	bin  string
	exec runner.Executor
}

// NewPandoc creates a Pandoc converter. bin defaults to "pandoc".
func NewPandoc(exec runner.Executor, bin string) *Pandoc {
	if bin == "" {
		bin = defaultPandocBin
	}
	return &Pandoc{bin: bin, exec: exec}
}

func (p *Pandoc) Convert(ctx context.Context, text, from, to string) (string, error) {
	bin, err := runner.Require(p.exec, p.bin)
	if err != nil {
		return "", err
	}
	var out strings.Builder
	if err := p.exec.RunPiped(ctx, bin, []string{"-f", from, "-t", to}, strings.NewReader(text), &out); err != nil {
		return "", fmt.Errorf("pandoc %s to %s: %w", from, to, err)
	}
	return out.String(), nil
}
