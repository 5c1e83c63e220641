// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"context"
	"fmt"

	"code.sajari.com/docconv"
)

// Docconv extracts office documents, PDFs and HTML through
// code.sajari.com/docconv. Some formats shell out to system tools
// (pdftotext for PDF, wvText for .doc, unrtf for .rtf); a missing tool
// surfaces as an extraction error.
type Docconv struct {
	// convert is swapped in tests.
	convert func(path string) (*docconv.Response, error)
}

// NewDocconv returns a Docconv backend.
func NewDocconv() *Docconv {
	return &Docconv{convert: docconv.ConvertPath}
}

func (d *Docconv) Name() string { return "docconv" }

func (d *Docconv) Extract(_ context.Context, path string) ([]byte, error) {
	res, err := d.convert(path)
	if err != nil {
		return nil, fmt.Errorf("converting %s: %w", path, err)
	}
	if res.Error != "" {
		return nil, fmt.Errorf("converting %s: %s", path, res.Error)
	}
	return []byte(res.Body), nil
}
