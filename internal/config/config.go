package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Session backends selectable via SESSION_BACKEND.
const (
	SessionBackendMemory = "memory"
	SessionBackendSQLite = "sqlite"
	SessionBackendRedis  = "redis"
)

// Model providers selectable via LLM_PROVIDER.
const (
	ProviderGemini = "gemini"
	ProviderGroq   = "groq"
)

// Config holds the configuration for the application.
type Config struct {
	// Model configuration
	LLMProvider  string
	LLMModel     string
	LLMTimeout   time.Duration
	GeminiAPIKey string
	GroqAPIKey   string

	// Session storage
	SessionBackend string
	SessionDBPath  string
	SessionTTL     time.Duration
	RedisAddr      string
	RedisPassword  string
	RedisDB        int

	// External collaborators
	RecipeServiceURL string

	// HTTP server
	HTTPAddr   string
	CORSOrigin string
}

// Load creates a Config from environment variables, reading a .env file
// first if one exists.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		LLMProvider:      getEnv("LLM_PROVIDER", ProviderGemini),
		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		GroqAPIKey:       getEnv("GROQ_API_KEY", ""),
		SessionBackend:   getEnv("SESSION_BACKEND", SessionBackendSQLite),
		SessionDBPath:    getEnv("SESSION_DB_PATH", "data/grocery_sessions.db"),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:    getEnv("REDIS_PASSWORD", ""),
		RecipeServiceURL: getEnv("RECIPE_SERVICE_URL", ""),
		HTTPAddr:         getEnv("HTTP_ADDR", ":8000"),
		CORSOrigin:       getEnv("CORS_ORIGIN", "http://localhost:3000"),
	}

	switch cfg.LLMProvider {
	case ProviderGemini:
		cfg.LLMModel = getEnv("LLM_MODEL", "gemini-1.5-flash")
	case ProviderGroq:
		cfg.LLMModel = getEnv("LLM_MODEL", "llama-3.3-70b-versatile")
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", cfg.LLMProvider)
	}

	var err error
	cfg.LLMTimeout, err = getDurationEnv("LLM_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, err
	}
	cfg.SessionTTL, err = getDurationEnv("SESSION_TTL", 24*time.Hour)
	if err != nil {
		return nil, err
	}
	cfg.RedisDB, err = getIntEnv("REDIS_DB", 0)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the selected provider and backend are usable.
func (c *Config) Validate() error {
	switch c.LLMProvider {
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY environment variable not set")
		}
	case ProviderGroq:
		if c.GroqAPIKey == "" {
			return fmt.Errorf("GROQ_API_KEY environment variable not set")
		}
	}

	switch c.SessionBackend {
	case SessionBackendMemory, SessionBackendRedis:
	case SessionBackendSQLite:
		if c.SessionDBPath == "" {
			return fmt.Errorf("SESSION_DB_PATH environment variable not set")
		}
	default:
		return fmt.Errorf("unknown SESSION_BACKEND %q", c.SessionBackend)
	}

	return nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return value, nil
}

func getDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue, nil
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return value, nil
}
