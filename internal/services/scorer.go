package services

import (
	"context"
	"fmt"
	"math"
	"sort"

	"alfredoptarigan/resume-ranker/internal/models"
	"alfredoptarigan/resume-ranker/internal/nlp"
)

// Fixed scoring weights; together they cover the full 0-100 range.
const (
	weightKeyword    = 0.30
	weightSemantic   = 0.30
	weightSkill      = 0.20
	weightExperience = 0.10
	weightEducation  = 0.10
)

// ScoreInput carries everything the aggregator needs for one resume. The
// job-side values are computed once per request and shared across resumes.
type ScoreInput struct {
	Filename        string
	ResumeText      string
	ResumeKeywords  map[string]bool
	Contact         models.ContactInfo
	YearsExperience float64
	Education       models.EducationFlags
	JobKeywords     map[string]bool
	JobVector       []float32
	Requirements    models.JobRequirements
}

type ScoreAggregatorService interface {
	Score(ctx context.Context, input ScoreInput) (models.ScoreRecord, error)
}

type scoreAggregatorService struct {
	embedder     nlp.Embedder
	skillMatcher SkillMatcherService
}

func NewScoreAggregatorService(embedder nlp.Embedder, skillMatcher SkillMatcherService) ScoreAggregatorService {
	return &scoreAggregatorService{
		embedder:     embedder,
		skillMatcher: skillMatcher,
	}
}

// Score implements ScoreAggregatorService. Each component is a fraction in
// [0,1]; the final score is their weighted sum scaled to 0-100. The record
// is complete on return and never mutated afterward.
func (s *scoreAggregatorService) Score(ctx context.Context, input ScoreInput) (models.ScoreRecord, error) {
	keywordScore := keywordOverlap(input.JobKeywords, input.ResumeKeywords)

	semanticScore, err := s.semanticSimilarity(ctx, input.ResumeText, input.JobVector)
	if err != nil {
		return models.ScoreRecord{}, err
	}

	skillPercent, err := s.skillMatcher.MatchSkills(ctx, input.JobKeywords, input.ResumeKeywords)
	if err != nil {
		return models.ScoreRecord{}, err
	}
	skillScore := skillPercent / 100

	experienceScore := experienceMatch(input.YearsExperience, input.Requirements.RequiredExperience)
	educationScore := educationMatch(input.Education)

	final := keywordScore*weightKeyword +
		semanticScore*weightSemantic +
		skillScore*weightSkill +
		experienceScore*weightExperience +
		educationScore*weightEducation

	return models.ScoreRecord{
		Filename:        input.Filename,
		Contact:         input.Contact,
		KeywordScore:    round2(keywordScore * 100),
		SemanticScore:   round2(semanticScore * 100),
		SkillScore:      round2(skillScore * 100),
		ExperienceScore: round2(experienceScore * 100),
		EducationScore:  round2(educationScore * 100),
		YearsExperience: input.YearsExperience,
		EducationLevels: input.Education.Levels(),
		FinalScore:      round2(final * 100),
	}, nil
}

// semanticSimilarity is the whole-document similarity between resume and
// job description. Either side embedding to a zero vector scores 0.
func (s *scoreAggregatorService) semanticSimilarity(ctx context.Context, resumeText string, jobVector []float32) (float64, error) {
	if len(jobVector) == 0 {
		return 0, nil
	}

	resumeVector, err := s.embedder.Embed(ctx, resumeText)
	if err != nil {
		return 0, fmt.Errorf("failed to embed resume text: %w", err)
	}

	sim := nlp.Cosine(resumeVector, jobVector)
	if sim < 0 {
		sim = 0
	}
	return sim, nil
}

func keywordOverlap(jobKeywords, resumeKeywords map[string]bool) float64 {
	if len(jobKeywords) == 0 {
		return 0
	}
	shared := 0
	for keyword := range jobKeywords {
		if resumeKeywords[keyword] {
			shared++
		}
	}
	return float64(shared) / float64(len(jobKeywords))
}

// experienceMatch gives full credit when nothing is required or the
// candidate meets the bar, and linear partial credit below it.
func experienceMatch(candidate, required float64) float64 {
	switch {
	case required == 0:
		return 1.0
	case candidate == 0:
		return 0.0
	case candidate >= required:
		return 1.0
	default:
		return candidate / required
	}
}

// educationMatch scores the highest detected level only; flags never sum.
func educationMatch(flags models.EducationFlags) float64 {
	switch {
	case flags.PhD:
		return 1.0
	case flags.Masters:
		return 0.9
	case flags.Bachelors:
		return 0.8
	case flags.Diploma:
		return 0.6
	case flags.HighSchool:
		return 0.4
	default:
		return 0.0
	}
}

// RankRecords sorts score records by final score descending. The sort is
// stable so exact ties keep their upstream order.
func RankRecords(records []models.ScoreRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].FinalScore > records[j].FinalScore
	})
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
