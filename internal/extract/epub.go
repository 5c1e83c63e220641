// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
)

const epubContainer = "META-INF/container.xml"

// EPUB reads the chapters of an EPUB book in spine order. Each chapter's
// XHTML is cleaned like an HTML page and the bodies are concatenated, so
// normalization sees the book's markup.
type EPUB struct{}

func (EPUB) Name() string { return "epub" }

type epubContainerDoc struct {
	Rootfiles []struct {
		FullPath string `xml:"full-path,attr"`
	} `xml:"rootfiles>rootfile"`
}

type epubPackage struct {
	Manifest []struct {
		ID   string `xml:"id,attr"`
		Href string `xml:"href,attr"`
	} `xml:"manifest>item"`
	Spine []struct {
		IDRef string `xml:"idref,attr"`
	} `xml:"spine>itemref"`
}

func (EPUB) Extract(_ context.Context, filePath string) ([]byte, error) {
	zr, err := zip.OpenReader(filePath)
	if err != nil {
		return nil, fmt.Errorf("opening epub %s: %w", filePath, err)
	}
	defer zr.Close()

	files := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		files[f.Name] = f
	}

	var container epubContainerDoc
	if err := decodeZipXML(files, epubContainer, &container); err != nil {
		return nil, fmt.Errorf("epub %s: %w", filePath, err)
	}
	if len(container.Rootfiles) == 0 {
		return nil, fmt.Errorf("epub %s: no rootfile in %s", filePath, epubContainer)
	}
	opfPath := container.Rootfiles[0].FullPath

	var pkg epubPackage
	if err := decodeZipXML(files, opfPath, &pkg); err != nil {
		return nil, fmt.Errorf("epub %s: %w", filePath, err)
	}
	hrefs := make(map[string]string, len(pkg.Manifest))
	for _, item := range pkg.Manifest {
		hrefs[item.ID] = item.Href
	}

	var chapters []string
	for _, ref := range pkg.Spine {
		href, ok := hrefs[ref.IDRef]
		if !ok {
			continue
		}
		name := path.Join(path.Dir(opfPath), href)
		if unescaped, err := url.PathUnescape(name); err == nil {
			name = unescaped
		}
		body, err := readZipHTML(files, name)
		if err != nil {
			return nil, fmt.Errorf("epub %s: %w", filePath, err)
		}
		if body != "" {
			chapters = append(chapters, body)
		}
	}
	if len(chapters) == 0 {
		return nil, fmt.Errorf("epub %s has no readable chapters", filePath)
	}
	return []byte(strings.Join(chapters, "\n")), nil
}

func openZip(files map[string]*zip.File, name string) (io.ReadCloser, error) {
	f, ok := files[name]
	if !ok {
		return nil, fmt.Errorf("%s missing from archive", name)
	}
	return f.Open()
}

func decodeZipXML(files map[string]*zip.File, name string, v any) error {
	rc, err := openZip(files, name)
	if err != nil {
		return err
	}
	defer rc.Close()
	if err := xml.NewDecoder(rc).Decode(v); err != nil {
		return fmt.Errorf("parsing %s: %w", name, err)
	}
	return nil
}

func readZipHTML(files map[string]*zip.File, name string) (string, error) {
	rc, err := openZip(files, name)
	if err != nil {
		return "", err
	}
	defer rc.Close()
	body, _, err := cleanHTML(rc)
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	return body, nil
}
