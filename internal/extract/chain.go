// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/pdiddy/doc-ingest/internal/logger"
)

// Chain tries each backend in order and returns the first success. When
// every backend fails the errors are joined, each prefixed with its backend
// name.
type Chain []Extractor

func (c Chain) Name() string {
	names := make([]string, len(c))
	for i, ex := range c {
		names[i] = ex.Name()
	}
	return strings.Join(names, ",")
}

func (c Chain) Extract(ctx context.Context, path string) ([]byte, error) {
	if len(c) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoBackend)
	}
	log := logger.FromContext(ctx)
	var errs []error
	for i, ex := range c {
		data, err := ex.Extract(ctx, path)
		if err == nil {
			return data, nil
		}
		errs = append(errs, fmt.Errorf("%s: %w", ex.Name(), err))
		if i < len(c)-1 {
			log.Debug("Extraction backend failed, trying next", "path", path, "backend", ex.Name(), "err", err)
		}
	}
	return nil, errors.Join(errs...)
}

// Router dispatches a file to the chain registered for its extension.
type Router struct {
	routes map[string]Chain
}

// NewRouter creates an empty Router.
func NewRouter() *Router {
	return &Router{routes: make(map[string]Chain)}
}

// Handle appends backends to the chain for each extension. Nil backends are
// ignored so optional backends can be passed unconditionally.
func (r *Router) Handle(exts []string, backends ...Extractor) {
	for _, ext := range exts {
		for _, b := range backends {
			if b != nil {
				r.routes[ext] = append(r.routes[ext], b)
			}
		}
	}
}

// Chain returns the backends registered for path's extension.
func (r *Router) Chain(path string) Chain {
	return r.routes[filepath.Ext(path)]
}

func (r *Router) Name() string { return "router" }

func (r *Router) Extract(ctx context.Context, path string) ([]byte, error) {
	chain := r.Chain(path)
	if len(chain) == 0 {
		return nil, fmt.Errorf("%s (%q): %w", path, filepath.Ext(path), ErrNoBackend)
	}
	return chain.Extract(ctx, path)
}
