package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Settings holds all TravelBot configuration. Values come from the
// environment (a .env file is folded in by main before FromEnv runs).
type Settings struct {
	Port     string
	LogLevel string

	// LLM credentials. OpenAIAPIKey is required for generation against
	// the default models; GeminiAPIKey enables the gemini-* models.
	OpenAIAPIKey string
	GeminiAPIKey string

	// TripContextPath is the process-wide default itinerary file. Empty
	// means "no context", which is a normal state, not an error.
	TripContextPath string

	DefaultModel       string
	DefaultTemperature float64

	// Passed through to the remote client, which owns enforcement.
	RequestTimeout time.Duration
	MaxRetries     int

	// Rate limiting is active only when RedisAddr is set.
	RedisAddr         string
	DailyMessageLimit int
}

// Default returns Settings with sensible defaults.
func Default() Settings {
	return Settings{
		Port:               "8080",
		LogLevel:           "info",
		DefaultModel:       "gpt-4o-mini",
		DefaultTemperature: 0.2,
		RequestTimeout:     30 * time.Second,
		MaxRetries:         2,
		DailyMessageLimit:  100,
	}
}

// FromEnv reads the environment over Default. Unparseable numeric
// values fall back to the default rather than failing startup.
func FromEnv() Settings {
	s := Default()

	if v := os.Getenv("PORT"); v != "" {
		s.Port = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		s.LogLevel = v
	}
	s.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	s.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	s.TripContextPath = os.Getenv("TRIP_CONTEXT_PATH")

	if v := os.Getenv("DEFAULT_MODEL"); v != "" {
		s.DefaultModel = v
	}
	if v := os.Getenv("DEFAULT_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			s.DefaultTemperature = f
		}
	}
	if v := os.Getenv("REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			s.RequestTimeout = d
		}
	}
	if v := os.Getenv("MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			s.MaxRetries = n
		}
	}

	s.RedisAddr = os.Getenv("REDIS_ADDR")
	if v := os.Getenv("DAILY_MESSAGE_LIMIT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			s.DailyMessageLimit = n
		}
	}

	return s
}

// SlogLevel maps the configured level string to a slog.Level,
// defaulting to info.
func (s Settings) SlogLevel() slog.Level {
	switch strings.ToLower(s.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
