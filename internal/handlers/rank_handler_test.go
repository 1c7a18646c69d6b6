package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/resume-ranker/internal/models"
	"alfredoptarigan/resume-ranker/internal/services"
)

// stubRanker records the last call and returns a canned response or error.
type stubRanker struct {
	resp       *models.RankResponse
	err        error
	gotJob     string
	gotResumes []services.ResumeFile
}

func (s *stubRanker) Rank(_ context.Context, jobDescription string, resumes []services.ResumeFile) (*models.RankResponse, error) {
	s.gotJob = jobDescription
	s.gotResumes = resumes
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func newTestApp(ranker services.RankerService) *fiber.App {
	app := fiber.New()
	handler := NewRankHandler(ranker, 1024*1024)
	app.Post("/api/v1/rank", handler.HandleRank)
	return app
}

type formFile struct {
	field    string
	filename string
	content  string
}

func multipartRequest(t *testing.T, fields map[string]string, files []formFile) *http.Request {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	for _, file := range files {
		part, err := writer.CreateFormFile(file.field, file.filename)
		require.NoError(t, err)
		_, err = part.Write([]byte(file.content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/rank", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func errorMessage(t *testing.T, resp *http.Response) string {
	t.Helper()

	var payload map[string]string
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &payload))
	return payload["error"]
}

func TestHandleRankMissingJobDescription(t *testing.T) {
	app := newTestApp(&stubRanker{})

	req := multipartRequest(t, map[string]string{"job_description": "   "}, []formFile{
		{field: "resumes", filename: "cv.pdf", content: "fake pdf"},
	})
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "job_description is required", errorMessage(t, resp))
}

func TestHandleRankNoFiles(t *testing.T) {
	app := newTestApp(&stubRanker{})

	req := multipartRequest(t, map[string]string{"job_description": "python developer"}, nil)
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "at least one resume file is required", errorMessage(t, resp))
}

func TestHandleRankRejectsNonPDF(t *testing.T) {
	app := newTestApp(&stubRanker{})

	req := multipartRequest(t, map[string]string{"job_description": "python developer"}, []formFile{
		{field: "resumes", filename: "cv.docx", content: "not a pdf"},
	})
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, errorMessage(t, resp), "only PDF resumes are accepted")
}

func TestHandleRankRejectsOversizedFile(t *testing.T) {
	app := fiber.New(fiber.Config{BodyLimit: 10 * 1024 * 1024})
	handler := NewRankHandler(&stubRanker{}, 16)
	app.Post("/api/v1/rank", handler.HandleRank)

	req := multipartRequest(t, map[string]string{"job_description": "python developer"}, []formFile{
		{field: "resumes", filename: "cv.pdf", content: "this content is longer than sixteen bytes"},
	})
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, errorMessage(t, resp), "too large")
}

func TestHandleRankSuccess(t *testing.T) {
	ranker := &stubRanker{
		resp: &models.RankResponse{
			RankedResumes: []models.RankedResume{
				{Filename: "a.pdf", DisplayName: "Jane Doe", FinalScore: 87.5},
				{Filename: "b.pdf", DisplayName: "b.pdf", FinalScore: 42.1},
			},
			DetailedResults: []models.ScoreRecord{
				{Filename: "a.pdf", FinalScore: 87.5},
				{Filename: "b.pdf", FinalScore: 42.1},
			},
			JobAnalysis: models.JobAnalysis{
				ExtractedKeywords:  []string{"kubernetes", "python"},
				RequiredExperience: 5,
				RequiredEducation:  models.EducationBachelors,
			},
		},
	}
	app := newTestApp(ranker)

	req := multipartRequest(t, map[string]string{"job_description": "python developer"}, []formFile{
		{field: "resumes", filename: "a.pdf", content: "first resume"},
		{field: "resumes", filename: "b.pdf", content: "second resume"},
	})
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var decoded models.RankResponse
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, *ranker.resp, decoded)

	// The handler passed the form contents through untouched.
	assert.Equal(t, "python developer", ranker.gotJob)
	require.Len(t, ranker.gotResumes, 2)
	assert.Equal(t, "a.pdf", ranker.gotResumes[0].Filename)
	assert.Equal(t, []byte("first resume"), ranker.gotResumes[0].Data)
}

func TestHandleRankNoValidResumes(t *testing.T) {
	app := newTestApp(&stubRanker{err: services.ErrNoValidResumes})

	req := multipartRequest(t, map[string]string{"job_description": "python developer"}, []formFile{
		{field: "resumes", filename: "cv.pdf", content: "scanned image only"},
	})
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Equal(t, "No valid resumes were processed.", errorMessage(t, resp))
}

func TestHandleRankInternalError(t *testing.T) {
	app := newTestApp(&stubRanker{err: assert.AnError})

	req := multipartRequest(t, map[string]string{"job_description": "python developer"}, []formFile{
		{field: "resumes", filename: "cv.pdf", content: "fake pdf"},
	})
	resp, err := app.Test(req)
	require.NoError(t, err)

	assert.Equal(t, fiber.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "failed to rank resumes", errorMessage(t, resp))
}
