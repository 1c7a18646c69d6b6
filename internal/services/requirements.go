package services

import (
	"regexp"
	"strconv"
	"strings"

	"alfredoptarigan/resume-ranker/internal/models"
)

type JobRequirementExtractorService interface {
	ExtractRequirements(jobText string) models.JobRequirements
}

type jobRequirementExtractorService struct{}

func NewJobRequirementExtractorService() JobRequirementExtractorService {
	return &jobRequirementExtractorService{}
}

// Tolerant of qualifiers like "at least" or "minimum of" before the number.
var requiredYearsPattern = regexp.MustCompile(
	`(?:at\s+least|minimum(?:\s+of)?|min\.?|over|more\s+than|approximately|approx\.?|around|up\s+to)?\s*(\d+(?:\.\d+)?)\s*\+?\s*years?`)

// ExtractRequirements implements JobRequirementExtractorService.
func (j *jobRequirementExtractorService) ExtractRequirements(jobText string) models.JobRequirements {
	lower := strings.ToLower(jobText)

	return models.JobRequirements{
		RequiredExperience: requiredYears(lower),
		RequiredEducation:  requiredEducation(lower),
	}
}

// requiredYears takes the maximum experience figure mentioned anywhere in
// the job text, or 0 when none is stated.
func requiredYears(lower string) float64 {
	var max float64
	for _, match := range requiredYearsPattern.FindAllStringSubmatch(lower, -1) {
		if years, err := strconv.ParseFloat(match[1], 64); err == nil && years > max {
			max = years
		}
	}
	return max
}

// requiredEducation checks the degree families from highest to lowest and
// returns the first one the job text mentions.
func requiredEducation(lower string) string {
	checks := []struct {
		level   string
		pattern *regexp.Regexp
	}{
		{models.EducationPhD, phdPattern},
		{models.EducationMasters, mastersPattern},
		{models.EducationBachelors, bachelorsPattern},
		{models.EducationDiploma, diplomaPattern},
		{models.EducationHighSchool, highSchoolPattern},
	}

	for _, check := range checks {
		if check.pattern.MatchString(lower) {
			return check.level
		}
	}
	return models.EducationNotSpecified
}
