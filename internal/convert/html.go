// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
)

// HTML converts HTML to Markdown in pure Go.
type HTML struct{}

func (HTML) Convert(_ context.Context, text, from, to string) (string, error) {
	if from != "html" || to != "markdown" {
		return "", fmt.Errorf("%s to %s: %w", from, to, ErrUnsupportedFormat)
	}
	out, err := htmltomarkdown.ConvertString(text)
	if err != nil {
		return "", fmt.Errorf("converting html to markdown: %w", err)
	}
	return out, nil
}
