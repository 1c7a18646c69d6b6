package services

import (
	"regexp"
	"strings"

	"alfredoptarigan/resume-ranker/internal/models"
)

type ContactExtractorService interface {
	ExtractContact(text string) models.ContactInfo
}

type contactExtractorService struct{}

func NewContactExtractorService() ContactExtractorService {
	return &contactExtractorService{}
}

var (
	emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

	// Ordered: international prefix first, then parenthesized area code,
	// then a plain separated triplet. The first pattern with a match wins.
	phonePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\+\d{1,3}[\s.\-]?\(?\d{2,4}\)?[\s.\-]?\d{3,4}[\s.\-]?\d{3,4}`),
		regexp.MustCompile(`\(\d{3}\)[\s.\-]?\d{3}[\s.\-]?\d{4}`),
		regexp.MustCompile(`\b\d{3}[\s.\-]\d{3}[\s.\-]\d{4}\b`),
	}

	phoneContextWords = []string{"phone", "mobile", "cell", "tel", "contact no", "whatsapp"}

	namePrefixPattern = regexp.MustCompile(`(?i)^(name\s*:|i\s+am|this\s+is)\s*`)

	contactHeaderPattern = regexp.MustCompile(`(?i)^\s*(contact( information| details| me)?|personal (information|details)|get in touch)\s*:?\s*$`)

	digitRunPattern = regexp.MustCompile(`\d{3,}`)

	// Lines containing these never hold a candidate name.
	headerKeywords = []string{
		"resume", "curriculum vitae", "objective", "summary", "experience",
		"education", "skills", "profile", "projects", "certifications",
		"address", "linkedin", "github", "portfolio",
	}
)

// ExtractContact implements ContactExtractorService. Every field is
// optional; a miss leaves the field empty rather than failing.
func (c *contactExtractorService) ExtractContact(text string) models.ContactInfo {
	lines := strings.Split(text, "\n")

	return models.ContactInfo{
		Name:  extractName(lines),
		Email: emailPattern.FindString(text),
		Phone: extractPhone(text, lines),
	}
}

// extractName tries three heuristics in order: a short line near the top,
// an explicit "name:" style prefix, then a line under a contact header.
func extractName(lines []string) string {
	if name := nameFromTopLines(lines); name != "" {
		return cleanName(name)
	}
	if name := nameFromPrefix(lines); name != "" {
		return cleanName(name)
	}
	if name := nameFromContactSection(lines); name != "" {
		return cleanName(name)
	}
	return ""
}

// nameFromTopLines scans the first three non-blank lines for a short line
// of one to four words that is not a header, email or phone line.
func nameFromTopLines(lines []string) string {
	seen := 0
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		seen++
		if seen > 3 {
			break
		}
		if len(line) > 50 || strings.Contains(line, "@") || digitRunPattern.MatchString(line) {
			continue
		}
		if containsHeaderKeyword(line) {
			continue
		}
		words := len(strings.Fields(line))
		if words >= 1 && words <= 4 {
			return line
		}
	}
	return ""
}

// nameFromPrefix looks for "name:", "i am" or "this is" in the first ten
// lines and strips the prefix.
func nameFromPrefix(lines []string) string {
	for i, line := range lines {
		if i >= 10 {
			break
		}
		line = strings.TrimSpace(line)
		if loc := namePrefixPattern.FindStringIndex(line); loc != nil {
			candidate := strings.TrimSpace(line[loc[1]:])
			if candidate != "" {
				return candidate
			}
		}
	}
	return ""
}

// nameFromContactSection finds a contact-section header and inspects the
// next three lines, skipping ones that carry email, phone or address data.
func nameFromContactSection(lines []string) string {
	for i, line := range lines {
		if !contactHeaderPattern.MatchString(line) {
			continue
		}
		for j := i + 1; j <= i+3 && j < len(lines); j++ {
			candidate := strings.TrimSpace(lines[j])
			if candidate == "" || len(candidate) >= 40 {
				continue
			}
			if strings.Contains(candidate, "@") || digitRunPattern.MatchString(candidate) {
				continue
			}
			if strings.Contains(strings.ToLower(candidate), "address") {
				continue
			}
			return candidate
		}
		break
	}
	return ""
}

func cleanName(name string) string {
	name = namePrefixPattern.ReplaceAllString(name, "")
	return strings.Join(strings.Fields(name), " ")
}

func containsHeaderKeyword(line string) bool {
	lower := strings.ToLower(line)
	for _, kw := range headerKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

// extractPhone prefers lines that mention a phone-context word; if none of
// those yields a number, the whole text is scanned with the same ordered
// pattern list.
func extractPhone(text string, lines []string) string {
	for _, line := range lines {
		lower := strings.ToLower(line)
		for _, word := range phoneContextWords {
			if !strings.Contains(lower, word) {
				continue
			}
			if phone := matchPhone(line); phone != "" {
				return phone
			}
		}
	}
	return matchPhone(text)
}

func matchPhone(s string) string {
	for _, pattern := range phonePatterns {
		if match := pattern.FindString(s); match != "" {
			return strings.TrimSpace(match)
		}
	}
	return ""
}
