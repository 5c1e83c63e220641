// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package chunk splits normalized text into paragraph or sentence chunks.
package chunk

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/neurosnap/sentences"
	"github.com/neurosnap/sentences/english"
)

// ErrUnsupportedMethod reports a chunking method other than paragraph or
// sentence.
var ErrUnsupportedMethod = errors.New("unsupported chunking method")

// Method selects how text is split.
type Method string

const (
	// Paragraph splits on every blank-line separator ("\n\n").
	Paragraph Method = "paragraph"

	// Sentence splits with the Punkt English sentence model.
	Sentence Method = "sentence"
)

// paragraphSeparator is the exact separator paragraph chunking splits on.
const paragraphSeparator = "\n\n"

// ParseMethod validates s as a chunking method. The empty string selects
// Paragraph.
func ParseMethod(s string) (Method, error) {
	switch m := Method(s); m {
	case "", Paragraph:
		return Paragraph, nil
	case Sentence:
		return Sentence, nil
	default:
		return "", fmt.Errorf("%q: %w", s, ErrUnsupportedMethod)
	}
}

// Segmenter splits text into sentences.
type Segmenter interface {
	Segment(text string) []string
}

// Chunker splits text by method.
type Chunker struct {
	seg Segmenter
}

// New returns a Chunker that uses seg for sentence chunking. A nil seg uses
// DefaultSegmenter.
func New(seg Segmenter) *Chunker {
	if seg == nil {
		seg = DefaultSegmenter()
	}
	return &Chunker{seg: seg}
}

// Chunk splits text. Paragraph chunks are the raw pieces between separators;
// consecutive separators yield empty chunks and nothing is trimmed. Sentence
// chunks are trimmed and whitespace-only sentences are dropped. The method
// must be Paragraph or Sentence; callers holding user input go through
// ParseMethod, which supplies the default.
func (c *Chunker) Chunk(text string, method Method) ([]string, error) {
	switch method {
	case Paragraph:
		return strings.Split(text, paragraphSeparator), nil
	case Sentence:
		var out []string
		for _, s := range c.seg.Segment(text) {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%q: %w", string(method), ErrUnsupportedMethod)
	}
}

// punkt adapts the neurosnap Punkt tokenizer to Segmenter.
type punkt struct {
	tok interface {
		Tokenize(text string) []*sentences.Sentence
	}
}

func (p *punkt) Segment(text string) []string {
	sents := p.tok.Tokenize(text)
	out := make([]string, len(sents))
	for i, s := range sents {
		out[i] = s.Text
	}
	return out
}

var (
	defaultOnce sync.Once
	defaultSeg  Segmenter
	defaultErr  error
)

// DefaultSegmenter returns the process-wide English Punkt segmenter. The
// model is loaded on first use and shared read-only afterwards.
func DefaultSegmenter() Segmenter {
	seg, err := loadDefault()
	if err != nil {
		panic(fmt.Sprintf("loading english sentence model: %v", err))
	}
	return seg
}

// LoadDefaultSegmenter is DefaultSegmenter for callers that want the load
// error instead of a panic.
func LoadDefaultSegmenter() (Segmenter, error) {
	return loadDefault()
}

func loadDefault() (Segmenter, error) {
	defaultOnce.Do(func() {
		tok, err := english.NewSentenceTokenizer(nil)
		if err != nil {
			defaultErr = err
			return
		}
		defaultSeg = &punkt{tok: tok}
	})
	return defaultSeg, defaultErr
}
