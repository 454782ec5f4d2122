package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
	assert.Equal(t, "claude-haiku-4-5-20251001", cfg.Anthropic.Model)
	assert.Equal(t, int64(8192), cfg.Anthropic.MaxTokens)
	assert.Equal(t, "pdf", cfg.OCR.Provider)
	assert.Equal(t, "pdftotext", cfg.OCR.PdfToTextPath)
	assert.Equal(t, 12000, cfg.Classify.MaxChunkChars)
	assert.Equal(t, 200, cfg.Classify.ChunkOverheadChars)
	assert.Equal(t, 5, cfg.Classify.MaxAttempts)
	assert.Equal(t, 2000, cfg.Classify.InitialBackoffMs)
	assert.Equal(t, 0, cfg.Classify.CircuitFailureThreshold)
}

func TestLoadFromYAML(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
store:
  driver: sqlite
  database_url: safety.db
log:
  level: debug
  format: console
classify:
  max_chunk_chars: 6000
ocr:
  provider: local
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "safety.db", cfg.Store.DatabaseURL)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 6000, cfg.Classify.MaxChunkChars)
	assert.Equal(t, "local", cfg.OCR.Provider)
	// Defaults still apply for unset values
	assert.Equal(t, 200, cfg.Classify.ChunkOverheadChars)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	dir := chdirTemp(t)

	yaml := `
store:
  driver: sqlite
log:
  level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("SAFETY_STORE_DRIVER", "postgres")
	t.Setenv("SAFETY_LOG_LEVEL", "warn")
	t.Setenv("SAFETY_ANTHROPIC_KEY", "sk-env")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.Store.Driver)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "sk-env", cfg.Anthropic.Key)
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("store: [unclosed"), 0644))

	_, err := Load()
	assert.Error(t, err)
}

func TestResolveAnthropicKey(t *testing.T) {
	t.Setenv(LegacyKeyEnv, "legacy")

	cfg := &Config{}
	assert.Equal(t, "explicit", cfg.ResolveAnthropicKey("explicit"))
	assert.Equal(t, "legacy", cfg.ResolveAnthropicKey(""))

	cfg.Anthropic.Key = "configured"
	assert.Equal(t, "configured", cfg.ResolveAnthropicKey("  "))
	assert.Equal(t, "explicit", cfg.ResolveAnthropicKey("explicit"))
}

func TestResolveAnthropicKeyNone(t *testing.T) {
	t.Setenv(LegacyKeyEnv, "")

	cfg := &Config{}
	assert.Empty(t, cfg.ResolveAnthropicKey(""))
}

// validDefaults returns a Config with all defaults populated for validation tests.
func validDefaults() *Config {
	cfg := &Config{}
	cfg.Store.Driver = "postgres"
	cfg.Classify.MaxChunkChars = 12000
	cfg.Classify.ChunkOverheadChars = 200
	cfg.Classify.MaxAttempts = 5
	cfg.Server.Port = 8080
	return cfg
}

func TestValidateAnalyze(t *testing.T) {
	cfg := validDefaults()
	assert.NoError(t, cfg.Validate("analyze"))

	cfg.Classify.MaxChunkChars = 0
	cfg.Classify.MaxAttempts = 0
	err := cfg.Validate("analyze")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "classify.max_chunk_chars must be positive")
	assert.Contains(t, err.Error(), "classify.max_attempts must be positive")
}

func TestValidateIngest_MissingDatabaseURL(t *testing.T) {
	cfg := validDefaults()

	err := cfg.Validate("ingest")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store.database_url is required")
}

func TestValidateIngest_SQLiteNeedsNoURL(t *testing.T) {
	cfg := validDefaults()
	cfg.Store.Driver = "sqlite"

	assert.NoError(t, cfg.Validate("ingest"))
}

func TestValidateMigrate_UnknownDriver(t *testing.T) {
	cfg := validDefaults()
	cfg.Store.Driver = "mysql"

	err := cfg.Validate("migrate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store.driver")
}

func TestValidateServe_InvalidPort(t *testing.T) {
	cfg := validDefaults()
	cfg.Store.DatabaseURL = "postgres://localhost/safety"
	cfg.Server.Port = 0

	err := cfg.Validate("serve")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "server.port")

	cfg.Server.Port = 9090
	assert.NoError(t, cfg.Validate("serve"))
}

func TestValidateUnknownMode(t *testing.T) {
	cfg := validDefaults()
	assert.Error(t, cfg.Validate("nope"))
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}
