// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/transform"
)

// toUTF8 returns data unchanged when it is already UTF-8. Otherwise the
// encoding is taken from contentType's charset parameter or sniffed, and
// data is transcoded.
func toUTF8(data []byte, contentType string) ([]byte, error) {
	if utf8.Valid(data) {
		return data, nil
	}
	enc, name, _ := charset.DetermineEncoding(data, contentType)
	decoded, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), enc.NewDecoder()))
	if err != nil {
		return nil, fmt.Errorf("transcode from %s: %w", name, err)
	}
	if !utf8.Valid(decoded) {
		return nil, fmt.Errorf("transcoded %s result: %w", name, ErrInvalidUTF8)
	}
	return decoded, nil
}

// decodeLabel transcodes data from the named charset. Unknown labels fall
// back to sniffing.
func decodeLabel(data []byte, label string) ([]byte, error) {
	if label == "" {
		return toUTF8(data, "")
	}
	r, err := charset.NewReaderLabel(label, bytes.NewReader(data))
	if err != nil {
		return toUTF8(data, "")
	}
	decoded, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("transcode from %s: %w", label, err)
	}
	return decoded, nil
}
