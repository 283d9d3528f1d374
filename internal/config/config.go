package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr               string
	DBPath             string
	LogLevel           string
	JWTSecret          string
	TokenTTL           time.Duration
	TriviaAPIBaseURL   string
	APIBaseURL         string
	SecondsPerQuestion int
	LeaderboardLimit   int
	ClientStatePath    string
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:               envOr("ADDR", ":8080"),
		DBPath:             envOr("DB_PATH", "file:quizdeck.db"),
		LogLevel:           envOr("LOG_LEVEL", "INFO"),
		JWTSecret:          envOr("JWT_SECRET", "change-me-in-production"),
		TokenTTL:           envDurOr("TOKEN_TTL", 7*24*time.Hour),
		TriviaAPIBaseURL:   envOr("TRIVIA_API_BASE_URL", "https://opentdb.com"),
		APIBaseURL:         envOr("API_BASE_URL", "http://localhost:8080"),
		SecondsPerQuestion: envIntOr("SECONDS_PER_QUESTION", 60),
		LeaderboardLimit:   envIntOr("LEADERBOARD_LIMIT", 10),
		ClientStatePath:    envOr("CLIENT_STATE_PATH", ""),
	}
}

// Validate checks the configuration for values that would prevent the
// server from starting, collecting all problems into one error.
func (c Config) Validate() error {
	var problems []string

	if c.Addr == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	if c.DBPath == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}
	if c.JWTSecret == "" {
		problems = append(problems, "JWT_SECRET cannot be empty")
	}
	if c.TokenTTL <= 0 {
		problems = append(problems, "TOKEN_TTL must be positive")
	}
	if c.TriviaAPIBaseURL == "" {
		problems = append(problems, "TRIVIA_API_BASE_URL cannot be empty")
	}
	if c.SecondsPerQuestion < 1 {
		problems = append(problems, "SECONDS_PER_QUESTION must be at least 1")
	}
	if c.LeaderboardLimit < 1 {
		problems = append(problems, "LEADERBOARD_LIMIT must be at least 1")
	}
	switch strings.ToUpper(c.LogLevel) {
	case "DEBUG", "INFO", "WARN", "WARNING", "ERROR":
	default:
		problems = append(problems, fmt.Sprintf("LOG_LEVEL %q is not one of DEBUG, INFO, WARN, ERROR", c.LogLevel))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envDurOr(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
		log.Printf("invalid value for %s=%q, using default %v", key, v, def)
	}
	return def
}
