// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDF reads the embedded text layer of a PDF in pure Go. It needs no system
// tools, so it backs up docconv when pdftotext is not installed. Scanned,
// image-only PDFs yield no text and are reported as errors.
type PDF struct{}

func (PDF) Name() string { return "pdf" }

func (PDF) Extract(_ context.Context, path string) ([]byte, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening pdf %s: %w", path, err)
	}
	defer f.Close()

	fonts := make(map[string]*pdf.Font)
	var pages []string
	for i := 1; i <= r.NumPage(); i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			continue
		}
		for _, name := range p.Fonts() {
			if _, ok := fonts[name]; !ok {
				font := p.Font(name)
				fonts[name] = &font
			}
		}
		text, err := p.GetPlainText(fonts)
		if err != nil {
			return nil, fmt.Errorf("reading pdf %s page %d: %w", path, i, err)
		}
		if trimmed := strings.TrimSpace(text); trimmed != "" {
			pages = append(pages, trimmed)
		}
	}

	if len(pages) == 0 {
		return nil, fmt.Errorf("pdf %s has no text layer", path)
	}
	return []byte(strings.Join(pages, "\n\n")), nil
}
