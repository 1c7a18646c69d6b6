package services

import (
	"regexp"
	"strings"

	"alfredoptarigan/resume-ranker/internal/nlp"
)

type KeywordExtractorService interface {
	ExtractKeywords(text string) (map[string]bool, error)
}

type keywordExtractorService struct {
	engine nlp.Engine
}

func NewKeywordExtractorService(engine nlp.Engine) KeywordExtractorService {
	return &keywordExtractorService{engine: engine}
}

// Entity labels worth keeping as keywords. Organizations, products, places
// and languages tend to name technologies and domains; people do not.
var keywordEntityLabels = map[string]bool{
	"ORG":      true,
	"PRODUCT":  true,
	"GPE":      true,
	"LOC":      true,
	"LANGUAGE": true,
}

var nonWordChars = regexp.MustCompile(`[^\w\s]`)

// ExtractKeywords implements KeywordExtractorService. It collects noun
// chunks of up to three words, relevant named entities, and individual
// noun tokens, then cleans and dedupes them into a set.
func (k *keywordExtractorService) ExtractKeywords(text string) (map[string]bool, error) {
	keywords := make(map[string]bool)
	if strings.TrimSpace(text) == "" {
		return keywords, nil
	}

	doc, err := k.engine.Tokenize(text)
	if err != nil {
		return nil, err
	}

	add := func(candidate string) {
		cleaned := cleanKeyword(candidate)
		if len(cleaned) > 2 {
			keywords[cleaned] = true
		}
	}

	for _, chunk := range doc.NounChunks {
		if len(strings.Fields(chunk)) <= 3 {
			add(chunk)
		}
	}

	for _, ent := range doc.Entities {
		if keywordEntityLabels[ent.Label] {
			add(ent.Text)
		}
	}

	for _, tok := range doc.Tokens {
		if tok.IsNounLike() && len(tok.Text) > 2 {
			add(tok.Text)
		}
	}

	return keywords, nil
}

// cleanKeyword lowercases a candidate phrase, strips punctuation and
// collapses the remaining whitespace.
func cleanKeyword(candidate string) string {
	cleaned := strings.ToLower(candidate)
	cleaned = nonWordChars.ReplaceAllString(cleaned, "")
	return strings.Join(strings.Fields(cleaned), " ")
}
