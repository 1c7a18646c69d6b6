package services

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

type ExperienceEstimatorService interface {
	EstimateExperience(text string) float64
}

type experienceEstimatorService struct{}

func NewExperienceEstimatorService() ExperienceEstimatorService {
	return &experienceEstimatorService{}
}

var (
	experienceHeaderKeywords = []string{
		"work experience", "professional experience", "employment history",
		"work history", "career history", "experience",
	}

	// Headers that end the experience section.
	sectionBreakKeywords = []string{
		"education", "skills", "certifications", "certificates", "projects",
		"summary", "objective", "achievements", "awards", "languages",
		"references", "interests",
	}

	// Ordered patterns for explicit statements. Ranges keep the larger
	// endpoint; the overall estimate is the maximum across all matches.
	explicitExperiencePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d+(?:\.\d+)?)\s*\+?\s*years?\s+(?:of\s+)?(?:\w+\s+){0,2}experience`),
		regexp.MustCompile(`(\d+(?:\.\d+)?)\s*[-\x{2013}]\s*(\d+(?:\.\d+)?)\s*\+?\s*years?\s+(?:of\s+)?(?:\w+\s+){0,2}experience`),
		regexp.MustCompile(`(\d+(?:\.\d+)?)\s+to\s+(\d+(?:\.\d+)?)\s*years?\s+(?:of\s+)?(?:\w+\s+){0,2}experience`),
	}

	employmentDatePattern = regexp.MustCompile(`\b(19\d{2}|20\d{2})\s*(?:[-\x{2013}\x{2014}]|to)\s*(19\d{2}|20\d{2}|present|current|now)\b`)
)

// EstimateExperience implements ExperienceEstimatorService. It isolates the
// work-experience section, prefers an explicit "N years of experience"
// statement, and otherwise merges employment date ranges so overlapping
// jobs are not double-counted.
func (e *experienceEstimatorService) EstimateExperience(text string) float64 {
	section := isolateExperienceSection(text)
	if section == "" {
		return 0
	}

	section = strings.ToLower(section)

	if years := maxExplicitYears(section); years > 0 {
		return years
	}

	return yearsFromDateRanges(section)
}

// isolateExperienceSection returns the lines between an experience header
// and the next unrelated section header. No header means no section.
func isolateExperienceSection(text string) string {
	var collected []string
	collecting := false

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)

		if !collecting {
			if isSectionHeader(trimmed, experienceHeaderKeywords) {
				collecting = true
			}
			continue
		}
		if isSectionHeader(trimmed, sectionBreakKeywords) {
			break
		}
		collected = append(collected, line)
	}

	return strings.Join(collected, "\n")
}

// isSectionHeader treats a line as a header when it is short and contains
// one of the keywords. Long lines are prose, not headers.
func isSectionHeader(line string, keywords []string) bool {
	if line == "" || len(line) > 40 {
		return false
	}
	lower := strings.ToLower(line)
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

func maxExplicitYears(section string) float64 {
	var max float64
	for _, pattern := range explicitExperiencePatterns {
		for _, match := range pattern.FindAllStringSubmatch(section, -1) {
			for _, group := range match[1:] {
				if group == "" {
					continue
				}
				if years, err := strconv.ParseFloat(group, 64); err == nil && years > max {
					max = years
				}
			}
		}
	}
	return max
}

type yearInterval struct {
	start int
	end   int
}

// yearsFromDateRanges collects (start, end) employment years, merges
// overlapping and adjacent intervals, and sums the merged durations.
func yearsFromDateRanges(section string) float64 {
	currentYear := time.Now().Year()

	var intervals []yearInterval
	for _, match := range employmentDatePattern.FindAllStringSubmatch(section, -1) {
		start, err := strconv.Atoi(match[1])
		if err != nil {
			continue
		}
		end := currentYear
		if year, err := strconv.Atoi(match[2]); err == nil {
			end = year
		}
		if start <= end {
			intervals = append(intervals, yearInterval{start: start, end: end})
		}
	}
	if len(intervals) == 0 {
		return 0
	}

	sort.Slice(intervals, func(i, j int) bool {
		return intervals[i].start < intervals[j].start
	})

	merged := []yearInterval{intervals[0]}
	for _, iv := range intervals[1:] {
		last := &merged[len(merged)-1]
		if iv.start <= last.end {
			if iv.end > last.end {
				last.end = iv.end
			}
			continue
		}
		merged = append(merged, iv)
	}

	total := 0.0
	for _, iv := range merged {
		total += float64(iv.end - iv.start)
	}
	return total
}
