package models

type RankedResume struct {
	Filename    string  `json:"filename"`
	DisplayName string  `json:"display_name"`
	FinalScore  float64 `json:"final_score"`
}

type JobAnalysis struct {
	ExtractedKeywords  []string `json:"extracted_keywords"`
	RequiredExperience float64  `json:"required_experience"`
	RequiredEducation  string   `json:"required_education"`
}

type RankResponse struct {
	RankedResumes   []RankedResume `json:"ranked_resumes"`
	DetailedResults []ScoreRecord  `json:"detailed_results"`
	JobAnalysis     JobAnalysis    `json:"job_analysis"`
}
