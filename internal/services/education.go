package services

import (
	"regexp"
	"strings"

	"alfredoptarigan/resume-ranker/internal/models"
)

type EducationExtractorService interface {
	ExtractEducation(text string) models.EducationFlags
}

type educationExtractorService struct{}

func NewEducationExtractorService() EducationExtractorService {
	return &educationExtractorService{}
}

// One independent pattern per degree level, run against lowercased text.
// Abbreviations are anchored on word boundaries so "b.tech" cannot satisfy
// the masters pattern and "ms word" noise stays out of scoring as much as a
// regex can manage.
var (
	phdPattern        = regexp.MustCompile(`\b(ph\.?\s?d|doctorate|doctoral)\b`)
	mastersPattern    = regexp.MustCompile(`\b(master(?:'?s)?(?:\s+(?:of|degree|in))?|m\.?\s?tech|m\.?\s?sc|m\.?\s?eng|mba|m\.b\.a)\b`)
	bachelorsPattern  = regexp.MustCompile(`\b(bachelor(?:'?s)?(?:\s+(?:of|degree|in))?|b\.?\s?tech|b\.?\s?sc|b\.?\s?eng|b\.e\b|b\.a\b|undergraduate\s+degree)`)
	diplomaPattern    = regexp.MustCompile(`\b(diploma|polytechnic)\b`)
	highSchoolPattern = regexp.MustCompile(`\b(high\s?school|secondary\s+school|higher\s+secondary|12th\s+(?:grade|standard)|hsc|ssc)\b`)
)

// ExtractEducation implements EducationExtractorService. The five checks
// are independent; a resume can flag several levels at once.
func (e *educationExtractorService) ExtractEducation(text string) models.EducationFlags {
	lower := strings.ToLower(text)

	return models.EducationFlags{
		PhD:        phdPattern.MatchString(lower),
		Masters:    mastersPattern.MatchString(lower),
		Bachelors:  bachelorsPattern.MatchString(lower),
		Diploma:    diplomaPattern.MatchString(lower),
		HighSchool: highSchoolPattern.MatchString(lower),
	}
}
