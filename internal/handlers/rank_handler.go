package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/resume-ranker/internal/services"
)

type RankHandler struct {
	ranker      services.RankerService
	maxFileSize int64
}

func NewRankHandler(ranker services.RankerService, maxFileSize int64) *RankHandler {
	return &RankHandler{
		ranker:      ranker,
		maxFileSize: maxFileSize,
	}
}

// HandleRank handles POST /rank: a multipart form with a `job_description`
// text field and one or more `resumes` PDF files. It responds with the full
// ranking or a single error indicator.
func (h *RankHandler) HandleRank(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "failed to parse multipart form",
		})
	}

	jobDescription := c.FormValue("job_description")
	if strings.TrimSpace(jobDescription) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "job_description is required",
		})
	}

	files := form.File["resumes"]
	if len(files) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "at least one resume file is required",
		})
	}

	resumes := make([]services.ResumeFile, 0, len(files))
	for _, file := range files {
		if file.Size > h.maxFileSize {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("resume %s too large. Max size: %d bytes", file.Filename, h.maxFileSize),
			})
		}

		ext := strings.ToLower(filepath.Ext(file.Filename))
		if ext != ".pdf" {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": fmt.Sprintf("invalid file extension for %s: only PDF resumes are accepted", file.Filename),
			})
		}

		data, err := readUpload(file)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": fmt.Sprintf("failed to read resume %s: %v", file.Filename, err),
			})
		}

		resumes = append(resumes, services.ResumeFile{
			Filename: file.Filename,
			Data:     data,
		})
	}

	response, err := h.ranker.Rank(c.UserContext(), jobDescription, resumes)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNoJobDescription), errors.Is(err, services.ErrNoResumes):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		case errors.Is(err, services.ErrNoValidResumes):
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error": "No valid resumes were processed.",
			})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "failed to rank resumes",
			})
		}
	}

	return c.JSON(response)
}

// readUpload copies a multipart file into memory; resumes are never saved
// to disk.
func readUpload(file *multipart.FileHeader) ([]byte, error) {
	src, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	return data, nil
}
