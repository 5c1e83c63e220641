// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package resolve expands input paths (files or directories) into the list of
// document files the pipeline can extract text from.
package resolve

import (
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/pdiddy/doc-ingest/internal/logger"
)

// supportedExtensions is the allow-list of file suffixes. Matching is a
// case-sensitive suffix match on the file name.
var supportedExtensions = []string{
	".csv", ".doc", ".docx", ".eml", ".epub", ".gif", ".jpg", ".jpeg", ".json",
	".html", ".htm", ".mp3", ".msg", ".odt", ".ogg", ".pdf", ".png", ".pptx",
	".ps", ".rtf", ".tiff", ".tif", ".txt", ".wav", ".xlsx", ".xls",
}

// SupportedExtensions returns a copy of the extension allow-list.
func SupportedExtensions() []string {
	return slices.Clone(supportedExtensions)
}

// IsSupported reports whether name ends with a supported extension.
func IsSupported(name string) bool {
	for _, ext := range supportedExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// Resolver turns input paths into supported file paths.
type Resolver struct {
	log     logger.Logger
	exclude []string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger that receives skip warnings.
func WithLogger(l logger.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.log = l
		}
	}
}

// WithExclude drops candidates whose path or base name matches any of the
// doublestar patterns. Blank patterns are ignored.
func WithExclude(patterns ...string) Option {
	return func(r *Resolver) {
		for _, p := range patterns {
			if p = strings.TrimSpace(p); p != "" {
				r.exclude = append(r.exclude, p)
			}
		}
	}
}

// New creates a Resolver.
func New(opts ...Option) *Resolver {
	r := &Resolver{log: logger.Discard()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the supported files reachable from paths, in input order.
// Directories are walked recursively in lexical order. A path that is neither
// a regular file nor a directory is logged and skipped. Overlapping inputs
// are not deduplicated.
func (r *Resolver) Resolve(paths []string) []string {
	var filepaths []string
	for _, path := range paths {
		info, err := os.Stat(path)
		switch {
		case err == nil && info.IsDir():
			filepaths = append(filepaths, r.walk(path)...)
		case err == nil && info.Mode().IsRegular():
			if IsSupported(path) && !r.excluded(path) {
				filepaths = append(filepaths, path)
			}
		default:
			r.log.Warn("Skipping non-file path", "path", path)
		}
	}
	return filepaths
}

// walk visits root through os.DirFS so a symlinked root is followed like a
// real directory. Symlinks below root are not followed: a link to a
// directory is skipped, a link to a file is kept.
func (r *Resolver) walk(root string) []string {
	var found []string
	_ = fs.WalkDir(os.DirFS(root), ".", func(rel string, d fs.DirEntry, err error) error {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err != nil {
			r.log.Warn("Skipping unreadable path", "path", path, "err", err)
			if d != nil && d.IsDir() && rel != "." {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				return nil
			}
		}
		if IsSupported(d.Name()) && !r.excluded(path) {
			found = append(found, path)
		}
		return nil
	})
	return found
}

func (r *Resolver) excluded(path string) bool {
	base := filepath.Base(path)
	for _, pattern := range r.exclude {
		if ok, _ := doublestar.PathMatch(pattern, path); ok {
			return true
		}
		if ok, _ := doublestar.Match(pattern, base); ok {
			return true
		}
	}
	return false
}
