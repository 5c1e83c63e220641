// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/doc-ingest/internal/chunk"
	"github.com/pdiddy/doc-ingest/internal/logger"
)

func quietCtx() context.Context {
	return logger.ContextWithLogger(context.Background(), logger.Discard())
}

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

// fileExtractor reads files directly and fails for base names in fail.
type fileExtractor struct {
	fail  map[string]bool
	calls int
}

func (f *fileExtractor) Name() string { return "file" }

func (f *fileExtractor) Extract(_ context.Context, path string) ([]byte, error) {
	f.calls++
	if f.fail[filepath.Base(path)] {
		return nil, errors.New("corrupt file")
	}
	return os.ReadFile(path)
}

// identity returns text unchanged so paragraph separators survive.
type identity struct{}

func (identity) Convert(_ context.Context, text, _, _ string) (string, error) { return text, nil }

type periodSegmenter struct{}

func (periodSegmenter) Segment(text string) []string {
	return strings.SplitAfter(text, ".")
}

func TestProcess_SentenceFolder(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.txt":      "This is a sentence. This is another sentence.",
		"b.txt":      "A third sentence follows.",
		"ignore.bin": "not supported",
	})

	p, err := New([]string{dir})
	require.NoError(t, err)

	chunks, err := p.Process(quietCtx(), chunk.Sentence)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"This is a sentence.",
		"This is another sentence.",
		"A third sentence follows.",
	}, chunks)
}

func TestProcess_ParagraphOrder(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"1.txt": "one\n\ntwo",
		"2.txt": "three",
	})

	p, err := New([]string{dir}, WithConverter(identity{}), WithExtractor(&fileExtractor{}))
	require.NoError(t, err)

	for _, method := range []chunk.Method{chunk.Paragraph, ""} {
		chunks, err := p.Process(quietCtx(), method)
		require.NoError(t, err)
		assert.Equal(t, []string{"one", "two", "three"}, chunks)
	}
}

func TestProcess_FailureDoesNotStopBatch(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.txt": "alpha",
		"b.txt": "beta",
		"c.txt": "gamma",
	})
	ex := &fileExtractor{fail: map[string]bool{"b.txt": true}}

	p, err := New([]string{dir}, WithExtractor(ex), WithConverter(identity{}), WithSegmenter(periodSegmenter{}))
	require.NoError(t, err)

	res, err := p.Run(quietCtx(), chunk.Paragraph)
	require.NoError(t, err)
	assert.Equal(t, 3, ex.calls)
	assert.Equal(t, 3, res.Resolved)
	assert.Equal(t, 1, res.Failed)
	assert.Equal(t, []string{"alpha", "gamma"}, Flatten(res.Documents))
}

func TestProcess_InvalidMethodFailsBeforeIO(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.txt": "alpha"})
	ex := &fileExtractor{}

	p, err := New([]string{dir}, WithExtractor(ex), WithSegmenter(periodSegmenter{}))
	require.NoError(t, err)

	chunks, err := p.Process(quietCtx(), "bogus")
	assert.ErrorIs(t, err, chunk.ErrUnsupportedMethod)
	assert.Nil(t, chunks)
	assert.Equal(t, 0, ex.calls)
}

func TestProcess_NoInputs(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	p, err := New([]string{missing}, WithSegmenter(periodSegmenter{}))
	require.NoError(t, err)

	chunks, err := p.Process(quietCtx(), chunk.Sentence)
	require.NoError(t, err)
	assert.Empty(t, chunks)
	assert.NotNil(t, chunks)
}

func TestDocuments_Provenance(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"a.txt":     "<p>alpha</p>",
		"sub/b.txt": "<p>beta</p>",
	})

	p, err := New([]string{dir}, WithExtractor(&fileExtractor{}), WithSegmenter(periodSegmenter{}))
	require.NoError(t, err)

	docs, err := p.Documents(quietCtx(), chunk.Paragraph)
	require.NoError(t, err)
	require.Len(t, docs, 2)

	assert.Equal(t, filepath.Join(dir, "a.txt"), docs[0].Path)
	assert.Equal(t, "<p>alpha</p>", docs[0].Text)
	assert.Equal(t, "alpha", strings.TrimSpace(docs[0].Markdown))
	assert.Equal(t, filepath.Join(dir, "sub", "b.txt"), docs[1].Path)
	assert.Equal(t, "beta", strings.TrimSpace(docs[1].Markdown))
}

func TestStages(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"a.txt": "alpha", "b.pdf": "%PDF"})
	ex := &fileExtractor{fail: map[string]bool{"b.pdf": true}}

	dp, err := New([]string{dir, filepath.Join(dir, "a.txt")}, WithExtractor(ex), WithSegmenter(periodSegmenter{}))
	require.NoError(t, err)
	var p Processor = dp

	paths := p.FilePaths()
	assert.Equal(t, []string{
		filepath.Join(dir, "a.txt"),
		filepath.Join(dir, "b.pdf"),
		filepath.Join(dir, "a.txt"),
	}, paths, "overlapping inputs are kept")

	assert.Equal(t, []string{"alpha", "alpha"}, p.ReadFiles(quietCtx(), paths))
	assert.Equal(t, "Example", strings.TrimSpace(p.ToMarkdown(quietCtx(), "<p>Example</p>")))

	got, err := p.ChunkText("A\n\nB\n\nC", chunk.Paragraph)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, got)

	_, err = p.ChunkText("A", "bogus")
	assert.ErrorIs(t, err, chunk.ErrUnsupportedMethod)

	_, err = p.ChunkText("A", "")
	assert.ErrorIs(t, err, chunk.ErrUnsupportedMethod, "the default method is applied by ParseMethod only")
}
