package models

// ContactInfo holds the contact fields extracted from a resume.
// Every field is best-effort; an empty string means nothing was found.
type ContactInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// EducationFlags marks the degree levels detected in a resume.
// Detection is inclusive (a resume can satisfy several levels at once);
// scoring picks the highest level only.
type EducationFlags struct {
	PhD        bool `json:"phd"`
	Masters    bool `json:"masters"`
	Bachelors  bool `json:"bachelors"`
	Diploma    bool `json:"diploma"`
	HighSchool bool `json:"high_school"`
}

// Education level names as they appear in job requirements and results.
const (
	EducationPhD          = "phd"
	EducationMasters      = "masters"
	EducationBachelors    = "bachelors"
	EducationDiploma      = "diploma"
	EducationHighSchool   = "high_school"
	EducationNotSpecified = "Not Specified"
)

// Levels returns the matched level names ordered from highest to lowest.
func (e EducationFlags) Levels() []string {
	var levels []string
	if e.PhD {
		levels = append(levels, EducationPhD)
	}
	if e.Masters {
		levels = append(levels, EducationMasters)
	}
	if e.Bachelors {
		levels = append(levels, EducationBachelors)
	}
	if e.Diploma {
		levels = append(levels, EducationDiploma)
	}
	if e.HighSchool {
		levels = append(levels, EducationHighSchool)
	}
	return levels
}

// JobRequirements is what the job description asks for.
type JobRequirements struct {
	RequiredExperience float64 `json:"required_experience"`
	RequiredEducation  string  `json:"required_education"`
}

// ScoreRecord is the per-resume scoring result. It is created once by the
// aggregator and never mutated afterward; ranking only reorders records.
type ScoreRecord struct {
	Filename        string      `json:"filename"`
	Contact         ContactInfo `json:"contact"`
	KeywordScore    float64     `json:"keyword_match"`
	SemanticScore   float64     `json:"semantic_match"`
	SkillScore      float64     `json:"skill_match"`
	ExperienceScore float64     `json:"experience_match"`
	EducationScore  float64     `json:"education_match"`
	YearsExperience float64     `json:"years_experience"`
	EducationLevels []string    `json:"education_levels"`
	FinalScore      float64     `json:"final_score"`
}

// DisplayName returns the extracted candidate name, falling back to the
// original filename. Presentation only; never affects scoring or order.
func (r ScoreRecord) DisplayName() string {
	if r.Contact.Name != "" {
		return r.Contact.Name
	}
	return r.Filename
}
