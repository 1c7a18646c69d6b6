package nlp

import (
	"fmt"
	"strings"

	"github.com/jdkato/prose/v2"
)

// Engine is the natural-language toolkit the scoring pipeline depends on.
// It is injected so the underlying library can be swapped without touching
// the extractors.
type Engine interface {
	Tokenize(text string) (*Document, error)
}

// Token is a single token with its Penn Treebank part-of-speech tag.
type Token struct {
	Text string
	Tag  string
}

// IsNounLike reports whether the token is a common or proper noun.
func (t Token) IsNounLike() bool {
	return strings.HasPrefix(t.Tag, "NN")
}

// Entity is a named entity mention with its label (e.g. GPE, PERSON).
type Entity struct {
	Text  string
	Label string
}

// Document is the tokenized view of a text: tokens with POS tags, named
// entities with labels, and noun chunks derived from POS tag runs.
type Document struct {
	Tokens     []Token
	Entities   []Entity
	NounChunks []string
}

type proseEngine struct{}

// NewProseEngine returns an Engine backed by the prose library.
func NewProseEngine() Engine {
	return &proseEngine{}
}

func (p *proseEngine) Tokenize(text string) (*Document, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return &Document{}, nil
	}

	doc, err := prose.NewDocument(text, prose.WithSegmentation(false))
	if err != nil {
		return nil, fmt.Errorf("failed to tokenize text: %w", err)
	}

	result := &Document{}
	for _, tok := range doc.Tokens() {
		result.Tokens = append(result.Tokens, Token{Text: tok.Text, Tag: tok.Tag})
	}
	for _, ent := range doc.Entities() {
		result.Entities = append(result.Entities, Entity{Text: ent.Text, Label: ent.Label})
	}
	result.NounChunks = nounChunks(result.Tokens)

	return result, nil
}

// nounChunks groups maximal runs of adjectives and nouns into phrases,
// trimming each run so it ends on a noun. Determiners are excluded.
func nounChunks(tokens []Token) []string {
	var chunks []string
	var run []Token

	flush := func() {
		end := len(run)
		for end > 0 && !run[end-1].IsNounLike() {
			end--
		}
		if end > 0 {
			words := make([]string, 0, end)
			for _, t := range run[:end] {
				words = append(words, t.Text)
			}
			chunks = append(chunks, strings.Join(words, " "))
		}
		run = run[:0]
	}

	for _, tok := range tokens {
		if isChunkTag(tok.Tag) {
			run = append(run, tok)
		} else {
			flush()
		}
	}
	flush()

	return chunks
}

func isChunkTag(tag string) bool {
	return strings.HasPrefix(tag, "NN") || strings.HasPrefix(tag, "JJ")
}
