package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"llm_data_assistant/src/model"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config represents the structure of config.yaml. Every field can be
// overridden from the environment, e.g. MODEL_PROVIDER or DATA_DIR.
type Config struct {
	Log    model.LogConfig    `yaml:"log" envconfig:"LOG"`
	Model  model.ModelConfig  `yaml:"model" envconfig:"MODEL"`
	Server model.ServerConfig `yaml:"server" envconfig:"SERVER"`
	Data   model.DataConfig   `yaml:"data" envconfig:"DATA"`
}

// Default returns the configuration used when no file or environment
// overrides are present: a local ollama service and the Vite dev origin.
func Default() *Config {
	return &Config{
		Log: model.LogConfig{
			Level:      "info",
			Format:     "console",
			Output:     "stdout",
			FilePath:   "logs/app.log",
			TimeFormat: "rfc3339",
		},
		Model: model.ModelConfig{
			Provider:        "ollama",
			BaseURL:         "http://localhost:11434",
			IntentModel:     "phi3:medium",
			GenerationModel: "phi3:medium",
			Temperature:     0,
		},
		Server: model.ServerConfig{
			Addr:           "127.0.0.1:5000",
			AllowedOrigins: []string{"http://localhost:5173"},
			ReadTimeout:    30 * time.Second,
			WriteTimeout:   5 * time.Minute,
		},
		Data: model.DataConfig{
			Dir:             "data",
			SampleRows:      5,
			BlockedKeywords: []string{"import", "os", "sys", "eval", "exec", "__"},
		},
	}
}

// LoadConfig reads the YAML file on top of the defaults and then applies
// environment overrides. A missing file is not an error.
func LoadConfig(filepath string) (*Config, error) {
	config := Default()

	data, err := os.ReadFile(filepath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// defaults + environment only
	case err != nil:
		return nil, fmt.Errorf("error reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("error parsing YAML: %w", err)
		}
	}

	if err := envconfig.Process("", config); err != nil {
		return nil, fmt.Errorf("error processing environment configuration: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// LoadDotEnv loads variables from the given .env files (".env" when none
// are given). Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return fmt.Errorf("error loading %s: %w", f, err)
		}
	}
	return nil
}

// Validate checks values that would otherwise fail late at request time
func (c *Config) Validate() error {
	if c.Data.Dir == "" {
		return fmt.Errorf("data.dir must not be empty")
	}
	if c.Data.SampleRows <= 0 {
		return fmt.Errorf("data.sample_rows must be positive, got %d", c.Data.SampleRows)
	}
	if c.Model.IntentModel == "" || c.Model.GenerationModel == "" {
		return fmt.Errorf("model.intent_model and model.generation_model are required")
	}
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	return nil
}
