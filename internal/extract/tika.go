// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pdiddy/doc-ingest/internal/httputil"
)

const defaultTikaTimeout = 60 * time.Second

// Tika extracts text through an Apache Tika server's /tika endpoint. Tika
// parses nearly every supported format, so it serves as the last fallback in
// each chain when configured.
type Tika struct {
	baseURL    string
	client     *http.Client
	maxRetries int
}

// NewTika creates a Tika backend for the server at baseURL.
func NewTika(baseURL string, timeout time.Duration, maxRetries int) *Tika {
	if timeout <= 0 {
		timeout = defaultTikaTimeout
	}
	return &Tika{
		baseURL:    strings.TrimRight(baseURL, "/"),
		client:     &http.Client{Timeout: timeout},
		maxRetries: maxRetries,
	}
}

func (t *Tika) Name() string { return "tika" }

func (t *Tika) Extract(ctx context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, t.baseURL+"/tika", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "text/plain; charset=UTF-8")
	req.Header.Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(path)))

	resp, err := httputil.DoWithRetry(ctx, t.client, req, t.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("tika request for %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading tika response for %s: %w", path, err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tika returned HTTP %d for %s: %s", resp.StatusCode, path, strings.TrimSpace(string(body)))
	}
	return body, nil
}
