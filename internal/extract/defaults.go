// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"context"

	"github.com/pdiddy/doc-ingest/internal/container"
	"github.com/pdiddy/doc-ingest/internal/logger"
	"github.com/pdiddy/doc-ingest/internal/runner"
	"github.com/pdiddy/doc-ingest/pkg/types"
)

// Extension groups routed to the same backend chain.
var (
	textExts   = []string{".txt", ".csv", ".json"}
	htmlExts   = []string{".html", ".htm"}
	officeExts = []string{".doc", ".docx", ".odt", ".rtf", ".pptx"}
	imageExts  = []string{".gif", ".jpg", ".jpeg", ".png", ".tiff", ".tif"}
	mediaExts  = []string{".xls", ".msg", ".mp3", ".wav", ".ogg"}
)

// NewDefault builds the Router covering every supported extension. The
// markitdown and Tika backends join the chains only when configured; when
// markitdown is configured but no container runtime or image is available it
// is left out with a warning.
func NewDefault(ctx context.Context, cfg types.ExtractConfig, exec runner.Executor) *Router {
	log := logger.FromContext(ctx)

	var markitdown, tika Extractor
	if cfg.MarkitdownImage != "" {
		if m, err := newMarkitdown(ctx, cfg.MarkitdownImage); err != nil {
			log.Warn("Markitdown backend disabled", "image", cfg.MarkitdownImage, "err", err)
		} else {
			markitdown = m
		}
	}
	if cfg.TikaURL != "" {
		tika = NewTika(cfg.TikaURL, cfg.Timeout, cfg.MaxRetries)
	}

	docconv := NewDocconv()

	r := NewRouter()
	r.Handle(textExts, Plain{})
	r.Handle(htmlExts, docconv, HTML{})
	r.Handle(officeExts, docconv, markitdown, tika)
	r.Handle([]string{".pdf"}, docconv, PDF{}, markitdown, tika)
	r.Handle(imageExts, NewTesseract(exec, cfg.TesseractLang), tika)
	r.Handle([]string{".ps"}, NewPS2ASCII(exec), tika)
	r.Handle([]string{".eml"}, Email{}, tika)
	r.Handle([]string{".xlsx"}, XLSX{}, markitdown, tika)
	r.Handle([]string{".epub"}, EPUB{}, markitdown, tika)
	r.Handle(mediaExts, markitdown, tika)
	return r
}

func newMarkitdown(ctx context.Context, image string) (*Markitdown, error) {
	rt, err := container.DetectRuntime(ctx)
	if err != nil {
		return nil, err
	}
	return NewMarkitdown(ctx, rt, image)
}
