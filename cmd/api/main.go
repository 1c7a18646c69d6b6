package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"alfredoptarigan/resume-ranker/internal/config"
	"alfredoptarigan/resume-ranker/internal/handlers"
	"alfredoptarigan/resume-ranker/internal/nlp"
	"alfredoptarigan/resume-ranker/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log.Println("✅ Config loaded successfully")

	// Initialize NLP engine
	engine := nlp.NewProseEngine()
	log.Println("✅ NLP engine initialized successfully")

	// Initialize embedder
	embedder, err := buildEmbedder(cfg)
	if err != nil {
		log.Fatalf("❌ Failed to initialize embedder: %v", err)
	}
	log.Printf("✅ Embedder initialized successfully (provider: %s)\n", cfg.Embed.Provider)

	// Initialize services
	pdfParser := services.NewPDFParserService()
	keywordExtractor := services.NewKeywordExtractorService(engine)
	contactExtractor := services.NewContactExtractorService()
	experienceEstimator := services.NewExperienceEstimatorService()
	educationExtractor := services.NewEducationExtractorService()
	requirementExtractor := services.NewJobRequirementExtractorService()
	skillMatcher := services.NewSkillMatcherService(embedder, cfg.Scoring.SkillMatchThreshold)
	scorer := services.NewScoreAggregatorService(embedder, skillMatcher)
	log.Println("✅ Services initialized successfully")

	// Initialize ranker
	ranker := services.NewRankerService(
		pdfParser,
		keywordExtractor,
		contactExtractor,
		experienceEstimator,
		educationExtractor,
		requirementExtractor,
		scorer,
		embedder,
		cfg.Worker.Concurrency,
		cfg.Worker.ResumeTimeout,
	)
	log.Printf("✅ Ranker initialized (concurrency: %d)\n", cfg.Worker.Concurrency)

	// Initialize Handlers
	rankHandler := handlers.NewRankHandler(ranker, cfg.Storage.MaxFileSize)
	log.Println("✅ Handlers initialized")

	// Create Fiber app
	app := fiber.New(fiber.Config{
		AppName:      "Resume Ranker API",
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		BodyLimit:    int(cfg.Storage.MaxFileSize) * 20,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: "2006-01-02 15:04:05",
	}))

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Routes
	api := app.Group("/api/v1")

	// Health check
	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	// API endpoints
	api.Post("/rank", rankHandler.HandleRank)

	// Root route
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message": "Resume Ranker API",
			"version": "1.0.0",
			"endpoints": []string{
				"POST /api/v1/rank",
				"GET /api/v1/health",
			},
		})
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		log.Println("\n🛑 Shutting down server...")
		if err := app.Shutdown(); err != nil {
			log.Printf("❌ Server forced to shutdown: %v", err)
		}
	}()

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("🚀 Server starting on %s\n", addr)

	if err := app.Listen(addr); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}

func buildEmbedder(cfg *config.Config) (nlp.Embedder, error) {
	switch strings.ToLower(cfg.Embed.Provider) {
	case "gemini":
		return nlp.NewGeminiEmbedder(context.Background(), cfg.Embed.GeminiAPIKey)
	default:
		return nlp.NewHashingEmbedder(0), nil
	}
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
