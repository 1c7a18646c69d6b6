package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"alfredoptarigan/resume-ranker/internal/models"
)

func TestExtractEducation(t *testing.T) {
	extractor := NewEducationExtractorService()

	tests := []struct {
		name string
		text string
		want models.EducationFlags
	}{
		{
			name: "phd spelled out",
			text: "Completed a doctorate in machine learning",
			want: models.EducationFlags{PhD: true},
		},
		{
			name: "phd abbreviated",
			text: "Ph.D in Computer Science, Stanford",
			want: models.EducationFlags{PhD: true},
		},
		{
			name: "masters",
			text: "Master of Science in Data Engineering",
			want: models.EducationFlags{Masters: true},
		},
		{
			name: "mba",
			text: "Holds an MBA from a reputed school",
			want: models.EducationFlags{Masters: true},
		},
		{
			name: "btech does not satisfy masters",
			text: "B.Tech in Electronics and Communication",
			want: models.EducationFlags{Bachelors: true},
		},
		{
			name: "mtech is masters",
			text: "M.Tech in Structural Engineering",
			want: models.EducationFlags{Masters: true},
		},
		{
			name: "bachelor spelled out",
			text: "Bachelor of Science in Computer Science",
			want: models.EducationFlags{Bachelors: true},
		},
		{
			name: "diploma",
			text: "Diploma in Mechanical Engineering",
			want: models.EducationFlags{Diploma: true},
		},
		{
			name: "high school",
			text: "High School Diploma, Lincoln High",
			want: models.EducationFlags{Diploma: true, HighSchool: true},
		},
		{
			name: "multiple levels flagged together",
			text: "Ph.D in Physics\nBachelor of Science in Physics",
			want: models.EducationFlags{PhD: true, Bachelors: true},
		},
		{
			name: "nothing detected",
			text: "Self-taught programmer with many side projects",
			want: models.EducationFlags{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractor.ExtractEducation(tt.text))
		})
	}
}

func TestEducationFlagsLevels(t *testing.T) {
	flags := models.EducationFlags{PhD: true, Bachelors: true}
	assert.Equal(t, []string{models.EducationPhD, models.EducationBachelors}, flags.Levels())

	assert.Empty(t, models.EducationFlags{}.Levels())
}
