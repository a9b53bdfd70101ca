package model

import "time"

// ----------------------------------------------------
// ================ Config ================

// LogConfig holds configuration for the global logger
type LogConfig struct {
	Level      string `yaml:"level" envconfig:"LEVEL"`
	Format     string `yaml:"format" envconfig:"FORMAT"` // json, console
	Output     string `yaml:"output" envconfig:"OUTPUT"` // stdout, stderr, file
	FilePath   string `yaml:"file_path" envconfig:"FILE_PATH"`
	TimeFormat string `yaml:"time_format" envconfig:"TIME_FORMAT"` // rfc3339, unix, iso8601
}

// ModelConfig holds configuration for the external chat model service
type ModelConfig struct {
	Provider        string        `yaml:"provider" envconfig:"PROVIDER"` // ollama, openai, deepseek, ark
	BaseURL         string        `yaml:"base_url" envconfig:"BASE_URL"`
	APIKey          string        `yaml:"api_key" envconfig:"API_KEY"`
	IntentModel     string        `yaml:"intent_model" envconfig:"INTENT_MODEL"`
	GenerationModel string        `yaml:"generation_model" envconfig:"GENERATION_MODEL"`
	Temperature     float64       `yaml:"temperature" envconfig:"TEMPERATURE"`
	Timeout         time.Duration `yaml:"timeout" envconfig:"TIMEOUT"`
}

// ServerConfig holds configuration for the HTTP transport
type ServerConfig struct {
	Addr           string        `yaml:"addr" envconfig:"ADDR"`
	AllowedOrigins []string      `yaml:"allowed_origins" envconfig:"ALLOWED_ORIGINS"`
	ReadTimeout    time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT"`
	WriteTimeout   time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT"`
}

// DataConfig holds configuration for dataset loading and analysis
type DataConfig struct {
	Dir             string   `yaml:"dir" envconfig:"DIR"`
	SampleRows      int      `yaml:"sample_rows" envconfig:"SAMPLE_ROWS"`
	BlockedKeywords []string `yaml:"blocked_keywords" envconfig:"BLOCKED_KEYWORDS"`
}
