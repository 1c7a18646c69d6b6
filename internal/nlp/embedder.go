package nlp

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

// Embedder turns a piece of text into a dense vector. Implementations must
// be safe for concurrent use; the pipeline embeds keywords from multiple
// workers at once.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Cosine returns the cosine similarity between two vectors, or 0 when either
// vector has zero norm or the lengths differ.
func Cosine(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// HashingEmbedder is a deterministic, offline embedder based on feature
// hashing of words and character trigrams. It needs no model files or API
// access, so it doubles as the default provider and the test double.
type HashingEmbedder struct {
	dims int
}

const defaultHashingDims = 256

func NewHashingEmbedder(dims int) *HashingEmbedder {
	if dims <= 0 {
		dims = defaultHashingDims
	}
	return &HashingEmbedder{dims: dims}
}

// Embed implements Embedder. Identical texts always produce identical
// vectors; texts sharing words or trigrams land near each other. An empty
// text yields the zero vector, which Cosine treats as unmatchable.
func (h *HashingEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float32, h.dims)

	for _, word := range splitWords(text) {
		h.addFeature(vec, "w:"+word, 1.0)
		for _, gram := range trigrams(word) {
			h.addFeature(vec, "g:"+gram, 0.5)
		}
	}

	normalize(vec)
	return vec, nil
}

// addFeature adds a signed unit contribution into a hashed bucket. The top
// bit of the hash picks the sign so collisions cancel instead of piling up.
func (h *HashingEmbedder) addFeature(vec []float32, feature string, weight float32) {
	hash := fnv.New64a()
	hash.Write([]byte(feature))
	sum := hash.Sum64()

	bucket := int(sum % uint64(h.dims))
	if sum&(1<<63) != 0 {
		weight = -weight
	}
	vec[bucket] += weight
}

func splitWords(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func trigrams(word string) []string {
	runes := []rune(word)
	if len(runes) < 3 {
		return nil
	}
	grams := make([]string, 0, len(runes)-2)
	for i := 0; i+3 <= len(runes); i++ {
		grams = append(grams, string(runes[i:i+3]))
	}
	return grams
}

func normalize(vec []float32) {
	var norm float64
	for _, v := range vec {
		norm += float64(v) * float64(v)
	}
	if norm == 0 {
		return
	}
	norm = math.Sqrt(norm)
	for i := range vec {
		vec[i] = float32(float64(vec[i]) / norm)
	}
}
