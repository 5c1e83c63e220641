// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
)

// Plain reads text formats (.txt, .csv, .json). UTF-8 content is returned
// as-is. Anything else is sniffed: text in another encoding is transcoded to
// UTF-8, binary content saved under a text extension is rejected.
type Plain struct{}

func (Plain) Name() string { return "plain" }

func (Plain) Extract(_ context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if utf8.Valid(data) && bytes.IndexByte(data, 0) < 0 {
		return data, nil
	}
	detected := mimetype.Detect(data)
	if !isText(detected) {
		return nil, fmt.Errorf("%s: content is %s, not text", path, detected.String())
	}
	text, err := toUTF8(data, detected.String())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return text, nil
}

// isText walks the MIME hierarchy looking for text/plain. JSON, CSV and
// other text formats descend from it; binary formats do not.
func isText(m *mimetype.MIME) bool {
	for ; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	return false
}
