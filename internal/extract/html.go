// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// HTML reads an HTML page and strips non-content elements, keeping the
// remaining markup so Markdown normalization can recover headings, lists and
// links. It backs up docconv, which reduces pages to plain text.
type HTML struct{}

func (HTML) Name() string { return "html" }

func (HTML) Extract(_ context.Context, path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	body, title, err := cleanHTML(f)
	if err != nil {
		return nil, fmt.Errorf("html %s: %w", path, err)
	}

	var b strings.Builder
	if title != "" {
		fmt.Fprintf(&b, "<h1>%s</h1>\n", escapeText(title))
	}
	b.WriteString(body)
	return []byte(b.String()), nil
}

// cleanHTML parses a page, drops scripts, styles and navigation chrome, and
// returns the body markup and the document title.
func cleanHTML(r io.Reader) (body, title string, err error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return "", "", fmt.Errorf("parsing: %w", err)
	}
	doc.Find("script, style, noscript, template, nav, footer, aside").Remove()

	title = strings.TrimSpace(doc.Find("head > title").First().Text())
	body, err = doc.Find("body").First().Html()
	if err != nil {
		return "", "", fmt.Errorf("rendering: %w", err)
	}
	return strings.TrimSpace(body), title, nil
}

var textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

func escapeText(s string) string {
	return textEscaper.Replace(s)
}
