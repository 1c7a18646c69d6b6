package config

import (
	"log"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server  ServerConfig
	Scoring ScoringConfig
	Embed   EmbedConfig
	Storage StorageConfig
	Worker  WorkerConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type ScoringConfig struct {
	SkillMatchThreshold float64
}

type EmbedConfig struct {
	// Provider selects the embedding backend: "hash" (offline, default)
	// or "gemini".
	Provider     string
	GeminiAPIKey string
}

type StorageConfig struct {
	MaxFileSize int64
}

type WorkerConfig struct {
	Concurrency   int
	ResumeTimeout time.Duration
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Scoring: ScoringConfig{
			SkillMatchThreshold: getEnvAsFloat("SKILL_MATCH_THRESHOLD", 0.75),
		},
		Embed: EmbedConfig{
			Provider:     getEnv("EMBED_PROVIDER", "hash"),
			GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		},
		Storage: StorageConfig{
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Worker: WorkerConfig{
			Concurrency:   getEnvAsInt("WORKER_CONCURRENCY", runtime.NumCPU()),
			ResumeTimeout: getEnvAsDuration("RESUME_TIMEOUT", "30s"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
