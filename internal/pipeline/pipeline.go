// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs the ingestion stages in order: resolve input paths,
// extract text, normalize to Markdown and chunk. Per-file failures are logged
// and skipped; only an invalid chunking method aborts a run.
package pipeline

import (
	"context"
	"fmt"

	"github.com/pdiddy/doc-ingest/internal/chunk"
	"github.com/pdiddy/doc-ingest/internal/convert"
	"github.com/pdiddy/doc-ingest/internal/extract"
	"github.com/pdiddy/doc-ingest/internal/resolve"
	"github.com/pdiddy/doc-ingest/internal/runner"
	"github.com/pdiddy/doc-ingest/pkg/types"
)

// Processor is the set of operations a document processor provides.
type Processor interface {
	// FilePaths resolves the configured inputs to supported files.
	FilePaths() []string

	// ReadFiles extracts text from filepaths, dropping failures.
	ReadFiles(ctx context.Context, filepaths []string) []string

	// ToMarkdown normalizes text to Markdown, returning text on failure.
	ToMarkdown(ctx context.Context, text string) string

	// ChunkText splits text with method.
	ChunkText(text string, method chunk.Method) ([]string, error)

	// Process runs every stage and returns the flattened chunks.
	Process(ctx context.Context, method chunk.Method) ([]string, error)
}

// DocumentProcessor is the standard Processor.
type DocumentProcessor struct {
	paths     []string
	resolver  *resolve.Resolver
	extractor extract.Extractor
	converter convert.Converter
	chunker   *chunk.Chunker
	segmenter chunk.Segmenter
}

var _ Processor = (*DocumentProcessor)(nil)

// Option configures a DocumentProcessor.
type Option func(*DocumentProcessor)

// WithResolver replaces the default path resolver.
func WithResolver(r *resolve.Resolver) Option {
	return func(p *DocumentProcessor) { p.resolver = r }
}

// WithExtractor replaces the default extraction router.
func WithExtractor(ex extract.Extractor) Option {
	return func(p *DocumentProcessor) { p.extractor = ex }
}

// WithConverter replaces the default HTML-to-Markdown converter.
func WithConverter(c convert.Converter) Option {
	return func(p *DocumentProcessor) { p.converter = c }
}

// WithSegmenter replaces the default sentence segmenter.
func WithSegmenter(s chunk.Segmenter) Option {
	return func(p *DocumentProcessor) { p.segmenter = s }
}

// New creates a processor for paths. Collaborators not supplied by options
// are initialized here once; the sentence model load is the only step that
// can fail.
func New(paths []string, opts ...Option) (*DocumentProcessor, error) {
	p := &DocumentProcessor{paths: paths}
	for _, opt := range opts {
		opt(p)
	}

	if p.resolver == nil {
		p.resolver = resolve.New()
	}
	if p.extractor == nil {
		p.extractor = extract.NewDefault(context.Background(), types.ExtractConfig{}, runner.OS{})
	}
	if p.converter == nil {
		p.converter = convert.HTML{}
	}
	if p.segmenter == nil {
		seg, err := chunk.LoadDefaultSegmenter()
		if err != nil {
			return nil, fmt.Errorf("loading sentence model: %w", err)
		}
		p.segmenter = seg
	}
	p.chunker = chunk.New(p.segmenter)
	return p, nil
}

func (p *DocumentProcessor) FilePaths() []string {
	return p.resolver.Resolve(p.paths)
}

func (p *DocumentProcessor) ReadFiles(ctx context.Context, filepaths []string) []string {
	return extract.ReadFiles(ctx, p.extractor, filepaths).Texts()
}

func (p *DocumentProcessor) ToMarkdown(ctx context.Context, text string) string {
	return convert.ToMarkdown(ctx, p.converter, text)
}

func (p *DocumentProcessor) ChunkText(text string, method chunk.Method) ([]string, error) {
	return p.chunker.Chunk(text, method)
}

// Result holds the documents of one run and the extraction tally.
type Result struct {
	Documents []types.Document
	Resolved  int
	Failed    int
}

// Run executes every stage and keeps per-document provenance. The method is
// validated before any filesystem access.
func (p *DocumentProcessor) Run(ctx context.Context, method chunk.Method) (Result, error) {
	m, err := chunk.ParseMethod(string(method))
	if err != nil {
		return Result{}, err
	}

	filepaths := p.FilePaths()
	batch := extract.ReadFiles(ctx, p.extractor, filepaths)

	docs := batch.Documents
	for i := range docs {
		docs[i].Markdown = p.ToMarkdown(ctx, docs[i].Text)
		chunks, err := p.ChunkText(docs[i].Markdown, m)
		if err != nil {
			return Result{}, err
		}
		docs[i].Chunks = chunks
	}
	return Result{Documents: docs, Resolved: len(filepaths), Failed: batch.Failed}, nil
}

// Documents runs every stage and returns one entry per extracted file.
func (p *DocumentProcessor) Documents(ctx context.Context, method chunk.Method) ([]types.Document, error) {
	res, err := p.Run(ctx, method)
	if err != nil {
		return nil, err
	}
	return res.Documents, nil
}

// Process runs every stage and returns all chunks, in document order and
// then chunk order.
func (p *DocumentProcessor) Process(ctx context.Context, method chunk.Method) ([]string, error) {
	docs, err := p.Documents(ctx, method)
	if err != nil {
		return nil, err
	}
	return Flatten(docs), nil
}

// Flatten concatenates the chunks of docs in order.
func Flatten(docs []types.Document) []string {
	chunks := make([]string, 0, len(docs))
	for _, d := range docs {
		chunks = append(chunks, d.Chunks...)
	}
	return chunks
}
