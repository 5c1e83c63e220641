// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/doc-ingest/internal/container"
)

// DefaultMarkitdownImage is the image name used when none is configured.
const DefaultMarkitdownImage = "markitdown:latest"

// Markitdown extracts text by piping a file through the markitdown container
// image. It covers the formats no native backend handles: spreadsheets,
// ebooks, Outlook messages and audio transcription.
type Markitdown struct {
	runtime container.Runtime
	image   string
}

// NewMarkitdown creates a backend that uses rt to run image. It verifies the
// image exists locally before returning.
func NewMarkitdown(ctx context.Context, rt container.Runtime, image string) (*Markitdown, error) {
	if image == "" {
		image = DefaultMarkitdownImage
	}
	if err := rt.ImageExists(ctx, image); err != nil {
		return nil, fmt.Errorf("markitdown image not available in %s: %w", rt.Name(), err)
	}
	return &Markitdown{runtime: rt, image: image}, nil
}

func (m *Markitdown) Name() string { return "markitdown" }

// Extract streams the file on stdin. markitdown cannot see the file name, so
// the extension is passed as a hint with -x.
func (m *Markitdown) Extract(ctx context.Context, path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var args []string
	if ext := strings.TrimPrefix(filepath.Ext(path), "."); ext != "" {
		args = []string{"-x", ext}
	}

	var out bytes.Buffer
	if err := m.runtime.Run(ctx, m.image, args, f, &out); err != nil {
		return nil, fmt.Errorf("converting %s with markitdown: %w", path, err)
	}
	if out.Len() == 0 {
		return nil, fmt.Errorf("markitdown produced empty output for %s", path)
	}
	return out.Bytes(), nil
}
