package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	config, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "ollama", config.Model.Provider)
	assert.Equal(t, "http://localhost:11434", config.Model.BaseURL)
	assert.Equal(t, "data", config.Data.Dir)
	assert.Equal(t, 5, config.Data.SampleRows)
	assert.Equal(t, []string{"http://localhost:5173"}, config.Server.AllowedOrigins)
	assert.Contains(t, config.Data.BlockedKeywords, "import")
}

func TestLoadConfigFromYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
log:
  level: debug
  format: json
model:
  provider: openai
  base_url: https://openrouter.ai/api/v1
  intent_model: openai/gpt-4o-mini
  generation_model: openai/gpt-4o-mini
  timeout: 45s
server:
  addr: ":8080"
data:
  dir: /srv/datasets
  sample_rows: 10
`)

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", config.Log.Level)
	assert.Equal(t, "json", config.Log.Format)
	assert.Equal(t, "openai", config.Model.Provider)
	assert.Equal(t, 45*time.Second, config.Model.Timeout)
	assert.Equal(t, ":8080", config.Server.Addr)
	assert.Equal(t, "/srv/datasets", config.Data.Dir)
	assert.Equal(t, 10, config.Data.SampleRows)
	// untouched sections keep their defaults
	assert.Equal(t, "stdout", config.Log.Output)
	assert.Equal(t, []string{"http://localhost:5173"}, config.Server.AllowedOrigins)
}

func TestLoadConfigEnvironmentOverridesFile(t *testing.T) {
	path := writeFile(t, "config.yaml", "model:\n  provider: openai\n")
	t.Setenv("MODEL_PROVIDER", "deepseek")
	t.Setenv("MODEL_API_KEY", "sk-test")
	t.Setenv("DATA_SAMPLE_ROWS", "3")
	t.Setenv("SERVER_ALLOWED_ORIGINS", "http://a.test,http://b.test")

	config, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "deepseek", config.Model.Provider)
	assert.Equal(t, "sk-test", config.Model.APIKey)
	assert.Equal(t, 3, config.Data.SampleRows)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, config.Server.AllowedOrigins)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	path := writeFile(t, "config.yaml", "data:\n  sample_rows: 0\n")

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sample_rows")
}

func TestLoadConfigRejectsMalformedYAML(t *testing.T) {
	path := writeFile(t, "config.yaml", "model: [unterminated\n")

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error parsing YAML")
}

func TestLoadDotEnvIgnoresMissingFiles(t *testing.T) {
	assert.NoError(t, LoadDotEnv(filepath.Join(t.TempDir(), ".env")))
}

func TestLoadDotEnvSetsVariables(t *testing.T) {
	path := writeFile(t, ".env", "DATA_ASSISTANT_DOTENV_PROBE=loaded\n")
	t.Setenv("DATA_ASSISTANT_DOTENV_PROBE", "")
	require.NoError(t, os.Unsetenv("DATA_ASSISTANT_DOTENV_PROBE"))

	require.NoError(t, LoadDotEnv(path))
	assert.Equal(t, "loaded", os.Getenv("DATA_ASSISTANT_DOTENV_PROBE"))
}
