package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/resume-ranker/internal/models"
	"alfredoptarigan/resume-ranker/internal/nlp"
)

var (
	ErrNoJobDescription = errors.New("job description is required")
	ErrNoResumes        = errors.New("at least one resume is required")
	ErrNoValidResumes   = errors.New("no valid resumes were processed")
)

// ResumeFile is one uploaded resume: the original filename plus the raw
// PDF bytes, read straight from the multipart form.
type ResumeFile struct {
	Filename string
	Data     []byte
}

type RankerService interface {
	Rank(ctx context.Context, jobDescription string, resumes []ResumeFile) (*models.RankResponse, error)
}

type rankerService struct {
	pdfParser            PDFParserService
	keywordExtractor     KeywordExtractorService
	contactExtractor     ContactExtractorService
	experienceEstimator  ExperienceEstimatorService
	educationExtractor   EducationExtractorService
	requirementExtractor JobRequirementExtractorService
	scorer               ScoreAggregatorService
	embedder             nlp.Embedder
	concurrency          int
	resumeTimeout        time.Duration
}

func NewRankerService(
	pdfParser PDFParserService,
	keywordExtractor KeywordExtractorService,
	contactExtractor ContactExtractorService,
	experienceEstimator ExperienceEstimatorService,
	educationExtractor EducationExtractorService,
	requirementExtractor JobRequirementExtractorService,
	scorer ScoreAggregatorService,
	embedder nlp.Embedder,
	concurrency int,
	resumeTimeout time.Duration,
) RankerService {
	if concurrency < 1 {
		concurrency = 1
	}
	if resumeTimeout <= 0 {
		resumeTimeout = 30 * time.Second
	}
	return &rankerService{
		pdfParser:            pdfParser,
		keywordExtractor:     keywordExtractor,
		contactExtractor:     contactExtractor,
		experienceEstimator:  experienceEstimator,
		educationExtractor:   educationExtractor,
		requirementExtractor: requirementExtractor,
		scorer:               scorer,
		embedder:             embedder,
		concurrency:          concurrency,
		resumeTimeout:        resumeTimeout,
	}
}

// jobContext holds the job-description-derived values, computed once per
// request and read-only for every worker.
type jobContext struct {
	keywords     map[string]bool
	vector       []float32
	requirements models.JobRequirements
}

// Rank implements RankerService. It analyzes the job description once,
// scores every resume concurrently, and returns the records sorted by
// final score descending. A resume that fails extraction is dropped from
// the results; it never aborts the batch.
func (r *rankerService) Rank(ctx context.Context, jobDescription string, resumes []ResumeFile) (*models.RankResponse, error) {
	jobDescription = strings.TrimSpace(jobDescription)
	if jobDescription == "" {
		return nil, ErrNoJobDescription
	}
	if len(resumes) == 0 {
		return nil, ErrNoResumes
	}

	batchID := uuid.New()
	log.Printf("🔄 Ranking batch %s: %d resume(s)\n", batchID, len(resumes))

	job, err := r.analyzeJob(ctx, jobDescription)
	if err != nil {
		return nil, fmt.Errorf("failed to analyze job description: %w", err)
	}

	records := r.scoreAll(ctx, batchID, jobDescription, job, resumes)
	if len(records) == 0 {
		return nil, ErrNoValidResumes
	}

	RankRecords(records)

	ranked := make([]models.RankedResume, 0, len(records))
	for _, record := range records {
		ranked = append(ranked, models.RankedResume{
			Filename:    record.Filename,
			DisplayName: record.DisplayName(),
			FinalScore:  record.FinalScore,
		})
	}

	log.Printf("✅ Batch %s ranked: %d of %d resume(s) scored\n", batchID, len(records), len(resumes))

	return &models.RankResponse{
		RankedResumes:   ranked,
		DetailedResults: records,
		JobAnalysis: models.JobAnalysis{
			ExtractedKeywords:  sortedKeywords(job.keywords),
			RequiredExperience: job.requirements.RequiredExperience,
			RequiredEducation:  job.requirements.RequiredEducation,
		},
	}, nil
}

func (r *rankerService) analyzeJob(ctx context.Context, jobDescription string) (*jobContext, error) {
	keywords, err := r.keywordExtractor.ExtractKeywords(jobDescription)
	if err != nil {
		return nil, fmt.Errorf("failed to extract job keywords: %w", err)
	}

	vector, err := r.embedder.Embed(ctx, jobDescription)
	if err != nil {
		return nil, fmt.Errorf("failed to embed job description: %w", err)
	}

	return &jobContext{
		keywords:     keywords,
		vector:       vector,
		requirements: r.requirementExtractor.ExtractRequirements(jobDescription),
	}, nil
}

// scoreAll fans the resumes out over a bounded worker pool. Results keep
// the upstream order so the final stable sort preserves input order on
// exact score ties.
func (r *rankerService) scoreAll(ctx context.Context, batchID uuid.UUID, jobDescription string, job *jobContext, resumes []ResumeFile) []models.ScoreRecord {
	type indexedResume struct {
		index int
		file  ResumeFile
	}

	jobQueue := make(chan indexedResume)
	results := make([]*models.ScoreRecord, len(resumes))

	var wg sync.WaitGroup
	for i := 0; i < r.concurrency; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for item := range jobQueue {
				record, err := r.scoreResume(ctx, job, item.file)
				if err != nil {
					log.Printf("⚠️  Batch %s worker #%d skipping %s: %v\n", batchID, workerID, item.file.Filename, err)
					continue
				}
				results[item.index] = record
			}
		}(i + 1)
	}

	for i, file := range resumes {
		jobQueue <- indexedResume{index: i, file: file}
	}
	close(jobQueue)
	wg.Wait()

	records := make([]models.ScoreRecord, 0, len(resumes))
	for _, record := range results {
		if record != nil {
			records = append(records, *record)
		}
	}
	return records
}

// scoreResume runs the full pipeline for a single resume under a timeout.
// A panic inside the heuristics is contained here and reported as a
// per-resume failure.
func (r *rankerService) scoreResume(ctx context.Context, job *jobContext, file ResumeFile) (record *models.ScoreRecord, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			record = nil
			err = fmt.Errorf("panic while scoring resume: %v", rec)
		}
	}()

	ctx, cancel := context.WithTimeout(ctx, r.resumeTimeout)
	defer cancel()

	rawText, err := r.pdfParser.ExtractText(file.Data)
	if err != nil {
		return nil, fmt.Errorf("text extraction failed: %w", err)
	}

	text := CleanText(rawText)
	if text == "" {
		return nil, fmt.Errorf("text extraction produced empty text")
	}

	keywords, err := r.keywordExtractor.ExtractKeywords(text)
	if err != nil {
		return nil, fmt.Errorf("keyword extraction failed: %w", err)
	}

	input := ScoreInput{
		Filename:        file.Filename,
		ResumeText:      text,
		ResumeKeywords:  keywords,
		Contact:         r.contactExtractor.ExtractContact(text),
		YearsExperience: r.experienceEstimator.EstimateExperience(text),
		Education:       r.educationExtractor.ExtractEducation(text),
		JobKeywords:     job.keywords,
		JobVector:       job.vector,
		Requirements:    job.requirements,
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("resume processing timed out: %w", err)
	}

	scored, err := r.scorer.Score(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("scoring failed: %w", err)
	}
	return &scored, nil
}

func sortedKeywords(keywords map[string]bool) []string {
	list := make([]string, 0, len(keywords))
	for keyword := range keywords {
		list = append(list, keyword)
	}
	// Deterministic output for callers and tests.
	sort.Strings(list)
	return list
}
