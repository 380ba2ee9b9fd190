package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port string
	Env  string

	// Gemini AI. An empty APIKey is a normal condition: the service
	// falls back to local song synthesis instead of refusing to start.
	GeminiAPIKey         string
	GeminiModel          string
	GeminiFallbackModel  string
	GeminiMaxOutputToken int

	// Redis (optional result cache)
	RedisURL string

	// Upload limits
	MaxPDFPages    int
	MaxUploadBytes int64

	// Frontend
	FrontendURL string
}

func Load() *Config {
	// Load .env file if it exists
	godotenv.Load()

	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		apiKey = os.Getenv("GOOGLE_API_KEY")
	}

	cfg := &Config{
		Port:                 getEnvOrDefault("PORT", "8080"),
		Env:                  getEnvOrDefault("ENV", "development"),
		GeminiAPIKey:         apiKey,
		GeminiModel:          getEnvOrDefault("GEMINI_MODEL", "gemini-2.5-flash"),
		GeminiFallbackModel:  getEnvOrDefault("GEMINI_FALLBACK_MODEL", "gemini-2.0-flash"),
		GeminiMaxOutputToken: getEnvAsIntOrDefault("GEMINI_MAX_OUTPUT_TOKENS", 700),
		RedisURL:             getEnvOrDefault("REDIS_URL", ""),
		MaxPDFPages:          getEnvAsIntOrDefault("MAX_PDF_PAGES", 35),
		MaxUploadBytes:       int64(getEnvAsIntOrDefault("MAX_UPLOAD_MB", 25)) * 1024 * 1024,
		FrontendURL:          getEnvOrDefault("FRONTEND_URL", "http://localhost:5173"),
	}

	return cfg
}

func getEnvOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func getEnvAsIntOrDefault(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
