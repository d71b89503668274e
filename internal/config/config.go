package config

import (
	"os"
	"strconv"
)

// Config holds the application configuration
type Config struct {
	// Environment
	Environment string
	Port        string

	// Genre tables. Empty paths use the tables embedded in the binary.
	GenreCatalogPath  string
	GenreGuidancePath string

	// Prompt editing
	MaxInstrumentTags   int // cap for the Instruments field
	RepetitionThreshold int // occurrences before a word counts as repeated
	MaxPromptChars      int // default budget for truncation

	// Observability
	SentryDSN         string // Sentry DSN for error tracking
	CloudWatchEnabled bool   // also publish metrics outside production
}

func Load() *Config {
	return &Config{
		Environment:         getEnv("ENVIRONMENT", "development"),
		Port:                getEnv("PORT", "8080"),
		GenreCatalogPath:    getEnv("GENRE_CATALOG_PATH", ""),
		GenreGuidancePath:   getEnv("GENRE_GUIDANCE_PATH", ""),
		MaxInstrumentTags:   getEnvInt("MAX_INSTRUMENT_TAGS", 8),
		RepetitionThreshold: getEnvInt("REPETITION_THRESHOLD", 3),
		MaxPromptChars:      getEnvInt("MAX_PROMPT_CHARS", 1000),
		SentryDSN:           getEnv("SENTRY_DSN", ""),
		CloudWatchEnabled:   getEnv("CLOUDWATCH_ENABLED", "false") == "true",
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt falls back to the default for unset, malformed or non-positive
// values.
func getEnvInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}

// IsProduction reports whether the service runs in production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
