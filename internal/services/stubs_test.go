package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"alfredoptarigan/resume-ranker/internal/nlp"
)

// wordEngine tags every whitespace-separated word as a common noun. It
// keeps keyword extraction deterministic without loading a real model.
type wordEngine struct{}

func (wordEngine) Tokenize(text string) (*nlp.Document, error) {
	doc := &nlp.Document{}
	for _, word := range strings.Fields(text) {
		doc.Tokens = append(doc.Tokens, nlp.Token{Text: word, Tag: "NN"})
	}
	return doc, nil
}

// fixedEngine returns the same canned document for any input.
type fixedEngine struct {
	doc *nlp.Document
}

func (f fixedEngine) Tokenize(string) (*nlp.Document, error) {
	return f.doc, nil
}

// stubEmbedder returns canned vectors by exact text; unknown texts embed
// to the zero vector, which the matcher treats as unmatchable.
type stubEmbedder struct {
	vectors map[string][]float32
}

func (s stubEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if vec, ok := s.vectors[text]; ok {
		return vec, nil
	}
	return []float32{0, 0, 0}, nil
}

// plainTextParser treats the uploaded bytes as already-extracted text, so
// pipeline tests can feed plain strings instead of real PDFs.
type plainTextParser struct{}

func (plainTextParser) ExtractText(data []byte) (string, error) {
	if len(data) == 0 {
		return "", fmt.Errorf("no text content found in PDF")
	}
	return string(data), nil
}

// slowParser stalls longer than any test timeout before succeeding.
type slowParser struct {
	delay time.Duration
}

func (s slowParser) ExtractText(data []byte) (string, error) {
	time.Sleep(s.delay)
	return string(data), nil
}

// panickingKeywords panics on resumes containing a marker string and
// otherwise defers to a real extractor.
type panickingKeywords struct {
	inner  KeywordExtractorService
	marker string
}

func (p panickingKeywords) ExtractKeywords(text string) (map[string]bool, error) {
	if strings.Contains(text, p.marker) {
		panic("malformed resume content")
	}
	return p.inner.ExtractKeywords(text)
}
