package config

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("DOCS_BUCKET", "docs")
	t.Setenv("EXTRACTED_BUCKET", "extracted")
}

func clearOptional(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"ENV", "REGION", "OUTPUT_PREFIX", "STORAGE_BACKEND", "LOCAL_STORAGE_ROOT",
		"GCP_CREDENTIALS_FILE", "TEXT_RATIO_THRESHOLD", "MIN_PAGE_TEXT_CHARS",
		"PROJECT_ID", "LEDGER_COLLECTION", "API_KEY", "PORT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearOptional(t)
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvStaging, cfg.Environment)
	assert.Equal(t, "us-central1", cfg.Region)
	assert.Equal(t, "docs", cfg.DocsBucket)
	assert.Equal(t, "extracted", cfg.ExtractedBucket)
	assert.Equal(t, BackendGCS, cfg.StorageBackend)
	assert.Equal(t, 0.5, cfg.TextRatioThreshold)
	assert.Equal(t, 1, cfg.MinPageTextChars)
	assert.Equal(t, "extractions", cfg.LedgerCollection)
	assert.Equal(t, "8080", cfg.Port)
	assert.False(t, cfg.LedgerEnabled())
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel())
}

func TestLoad_Overrides(t *testing.T) {
	clearOptional(t)
	setRequired(t)
	t.Setenv("ENV", "prod")
	t.Setenv("REGION", "europe-west1")
	t.Setenv("STORAGE_BACKEND", "local")
	t.Setenv("LOCAL_STORAGE_ROOT", "/tmp/buckets")
	t.Setenv("TEXT_RATIO_THRESHOLD", "0.75")
	t.Setenv("MIN_PAGE_TEXT_CHARS", "20")
	t.Setenv("PROJECT_ID", "my-project")
	t.Setenv("PORT", "9090")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvProd, cfg.Environment)
	assert.Equal(t, "europe-west1", cfg.Region)
	assert.Equal(t, BackendLocal, cfg.StorageBackend)
	assert.Equal(t, "/tmp/buckets", cfg.LocalStorageRoot)
	assert.Equal(t, 0.75, cfg.TextRatioThreshold)
	assert.Equal(t, 20, cfg.MinPageTextChars)
	assert.True(t, cfg.LedgerEnabled())
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel())
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "missing docs bucket", env: map[string]string{"DOCS_BUCKET": ""}},
		{name: "missing extracted bucket", env: map[string]string{"EXTRACTED_BUCKET": ""}},
		{name: "output bucket is the source bucket", env: map[string]string{"EXTRACTED_BUCKET": "docs"}},
		{name: "unknown backend", env: map[string]string{"STORAGE_BACKEND": "s3"}},
		{name: "threshold not a number", env: map[string]string{"TEXT_RATIO_THRESHOLD": "half"}},
		{name: "threshold out of range", env: map[string]string{"TEXT_RATIO_THRESHOLD": "1.5"}},
		{name: "min chars zero", env: map[string]string{"MIN_PAGE_TEXT_CHARS": "0"}},
		{name: "port not numeric", env: map[string]string{"PORT": "http"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearOptional(t)
			setRequired(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestParseEnvironment(t *testing.T) {
	assert.Equal(t, EnvLocal, ParseEnvironment("local"))
	assert.Equal(t, EnvStaging, ParseEnvironment("staging"))
	assert.Equal(t, EnvProd, ParseEnvironment("prod"))
	assert.Equal(t, EnvStaging, ParseEnvironment(""))
	assert.Equal(t, EnvStaging, ParseEnvironment("production"))
}
