// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"mime/quotedprintable"
	"net/mail"
	"os"
	"strings"

	"golang.org/x/net/html/charset"
)

// Email extracts the subject and body of an RFC 5322 message (.eml). For
// multipart messages the first text/plain part wins; text/html is used when
// no plain part exists. Bodies in a declared or sniffed legacy charset are
// transcoded to UTF-8.
type Email struct{}

func (Email) Name() string { return "email" }

func (Email) Extract(_ context.Context, path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	msg, err := mail.ReadMessage(f)
	if err != nil {
		return nil, fmt.Errorf("parsing message %s: %w", path, err)
	}

	body, _, err := messageText(msg.Header.Get("Content-Type"), msg.Header.Get("Content-Transfer-Encoding"), msg.Body)
	if err != nil {
		return nil, fmt.Errorf("reading body of %s: %w", path, err)
	}

	var b strings.Builder
	if subject := decodeHeader(msg.Header.Get("Subject")); subject != "" {
		b.WriteString(subject)
		b.WriteString("\n\n")
	}
	b.WriteString(strings.TrimSpace(body))
	return []byte(b.String()), nil
}

// messageText returns the preferred text of an entity and its media type,
// descending into multipart containers. Text is transcoded to UTF-8 from the
// declared charset.
func messageText(contentType, encoding string, body io.Reader) (string, string, error) {
	if contentType == "" {
		contentType = "text/plain"
	}
	mediaType, params, err := mime.ParseMediaType(contentType)
	if err != nil {
		return "", "", fmt.Errorf("content type %q: %w", contentType, err)
	}

	if strings.HasPrefix(mediaType, "multipart/") {
		text, err := multipartText(multipart.NewReader(body, params["boundary"]))
		return text, mediaType, err
	}
	if !strings.HasPrefix(mediaType, "text/") {
		return "", mediaType, nil
	}
	data, err := io.ReadAll(decodeTransfer(encoding, body))
	if err != nil {
		return "", "", err
	}
	if cs := strings.ToLower(params["charset"]); cs != "" && cs != "utf-8" && cs != "us-ascii" {
		data, err = decodeLabel(data, cs)
	} else {
		data, err = toUTF8(data, "")
	}
	if err != nil {
		return "", "", err
	}
	return string(data), mediaType, nil
}

func multipartText(mr *multipart.Reader) (string, error) {
	var html string
	for {
		part, err := mr.NextPart()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", err
		}
		text, mediaType, err := messageText(part.Header.Get("Content-Type"), part.Header.Get("Content-Transfer-Encoding"), part)
		if err != nil {
			return "", err
		}
		if text == "" {
			continue
		}
		if mediaType != "text/html" {
			return text, nil
		}
		if html == "" {
			html = text
		}
	}
	return html, nil
}

// decodeTransfer undoes base64 bodies. Quoted-printable parts are decoded by
// multipart.Reader already; top-level quoted-printable bodies are handled
// here.
func decodeTransfer(encoding string, r io.Reader) io.Reader {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "base64":
		return base64.NewDecoder(base64.StdEncoding, r)
	case "quoted-printable":
		return quotedprintable.NewReader(r)
	default:
		return r
	}
}

func decodeHeader(v string) string {
	dec := &mime.WordDecoder{CharsetReader: charset.NewReaderLabel}
	if out, err := dec.DecodeHeader(v); err == nil {
		return out
	}
	return v
}
