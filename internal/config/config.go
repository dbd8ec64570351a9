package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Environment is the deployment stage the function runs in.
type Environment string

const (
	EnvLocal   Environment = "local"
	EnvStaging Environment = "staging"
	EnvProd    Environment = "prod"
)

// ParseEnvironment maps a raw ENV value to an Environment. Unknown or empty
// values fall back to staging.
func ParseEnvironment(raw string) Environment {
	switch Environment(raw) {
	case EnvLocal, EnvStaging, EnvProd:
		return Environment(raw)
	default:
		return EnvStaging
	}
}

// LogLevel returns the log level used for the environment.
func (e Environment) LogLevel() slog.Level {
	if e == EnvProd {
		return slog.LevelInfo
	}
	return slog.LevelDebug
}

const (
	BackendGCS   = "gcs"
	BackendLocal = "local"
)

// ExtractionVersion is stamped on every extracted document.
const ExtractionVersion = "1.0"

// Config holds all configuration for the extraction function. It is loaded
// once at startup and passed to the services that need it.
type Config struct {
	Environment Environment `validate:"oneof=local staging prod"`
	Region      string      `validate:"required"`

	DocsBucket      string `validate:"required"`
	ExtractedBucket string `validate:"required,nefield=DocsBucket"`
	OutputPrefix    string

	StorageBackend   string `validate:"oneof=gcs local"`
	LocalStorageRoot string `validate:"required_if=StorageBackend local"`
	CredentialsFile  string

	TextRatioThreshold float64 `validate:"gte=0,lt=1"`
	MinPageTextChars   int     `validate:"gte=1"`

	ProjectID        string
	LedgerCollection string

	APIKey string
	Port   string `validate:"required,numeric"`
}

// GetEnv is a helper to read an environment variable or return a default value.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) (float64, error) {
	raw := GetEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number: %w", key, err)
	}
	return v, nil
}

func getEnvInt(key string, fallback int) (int, error) {
	raw := GetEnv(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return v, nil
}

// Load reads and validates the configuration from the environment.
func Load() (*Config, error) {
	threshold, err := getEnvFloat("TEXT_RATIO_THRESHOLD", 0.5)
	if err != nil {
		return nil, err
	}
	minChars, err := getEnvInt("MIN_PAGE_TEXT_CHARS", 1)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Environment:        ParseEnvironment(os.Getenv("ENV")),
		Region:             GetEnv("REGION", "us-central1"),
		DocsBucket:         GetEnv("DOCS_BUCKET", ""),
		ExtractedBucket:    GetEnv("EXTRACTED_BUCKET", ""),
		OutputPrefix:       GetEnv("OUTPUT_PREFIX", ""),
		StorageBackend:     GetEnv("STORAGE_BACKEND", BackendGCS),
		LocalStorageRoot:   GetEnv("LOCAL_STORAGE_ROOT", "./data"),
		CredentialsFile:    GetEnv("GCP_CREDENTIALS_FILE", ""),
		TextRatioThreshold: threshold,
		MinPageTextChars:   minChars,
		ProjectID:          GetEnv("PROJECT_ID", ""),
		LedgerCollection:   GetEnv("LEDGER_COLLECTION", "extractions"),
		APIKey:             GetEnv("API_KEY", ""),
		Port:               GetEnv("PORT", "8080"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// LedgerEnabled reports whether extractions are recorded in Firestore.
func (c *Config) LedgerEnabled() bool {
	return c.ProjectID != ""
}

// LogLevel returns the log level for the configured environment.
func (c *Config) LogLevel() slog.Level {
	return c.Environment.LogLevel()
}
