package services

import (
	"context"
	"fmt"

	"alfredoptarigan/resume-ranker/internal/nlp"
)

type SkillMatcherService interface {
	MatchSkills(ctx context.Context, jobKeywords, resumeKeywords map[string]bool) (float64, error)
}

type skillMatcherService struct {
	embedder  nlp.Embedder
	threshold float64
}

const DefaultSkillMatchThreshold = 0.75

func NewSkillMatcherService(embedder nlp.Embedder, threshold float64) SkillMatcherService {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultSkillMatchThreshold
	}
	return &skillMatcherService{embedder: embedder, threshold: threshold}
}

// MatchSkills implements SkillMatcherService. A job keyword counts as
// matched when its best cosine similarity against any resume keyword meets
// the threshold. The result is the matched share of all job keywords as a
// percentage; an empty job keyword set scores 0.
func (s *skillMatcherService) MatchSkills(ctx context.Context, jobKeywords, resumeKeywords map[string]bool) (float64, error) {
	if len(jobKeywords) == 0 {
		return 0, nil
	}

	resumeVectors := make([][]float32, 0, len(resumeKeywords))
	for keyword := range resumeKeywords {
		vec, err := s.embedder.Embed(ctx, keyword)
		if err != nil {
			return 0, fmt.Errorf("failed to embed resume keyword %q: %w", keyword, err)
		}
		if !isZeroVector(vec) {
			resumeVectors = append(resumeVectors, vec)
		}
	}

	matched := 0
	for keyword := range jobKeywords {
		vec, err := s.embedder.Embed(ctx, keyword)
		if err != nil {
			return 0, fmt.Errorf("failed to embed job keyword %q: %w", keyword, err)
		}
		if isZeroVector(vec) {
			continue
		}

		best := 0.0
		for _, resumeVec := range resumeVectors {
			if sim := nlp.Cosine(vec, resumeVec); sim > best {
				best = sim
			}
		}
		if best >= s.threshold {
			matched++
		}
	}

	return float64(matched) / float64(len(jobKeywords)) * 100, nil
}

func isZeroVector(vec []float32) bool {
	for _, v := range vec {
		if v != 0 {
			return false
		}
	}
	return true
}
