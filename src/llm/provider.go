package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	appmodel "llm_data_assistant/src/model"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino-ext/components/model/deepseek"
	"github.com/cloudwego/eino-ext/components/model/ollama"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/ollama/ollama/api"
)

const (
	ProviderOllama   = "ollama"
	ProviderOpenAI   = "openai"
	ProviderDeepSeek = "deepseek"
	ProviderArk      = "ark"
)

// NewChatModel builds the chat model for one model name on the configured
// provider. jsonMode asks the provider to constrain the reply to JSON where
// it supports that. Replies are still decoded with DecodeJSON.
func NewChatModel(ctx context.Context, cfg appmodel.ModelConfig, name string, jsonMode bool) (model.BaseChatModel, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", ProviderOllama:
		temperature := float32(cfg.Temperature)
		config := &ollama.ChatModelConfig{
			BaseURL: cfg.BaseURL,
			Timeout: cfg.Timeout,
			Model:   name,
			Options: &api.Options{Temperature: temperature},
		}
		if jsonMode {
			config.Format = json.RawMessage(`"json"`)
		}
		return ollama.NewChatModel(ctx, config)

	case ProviderOpenAI:
		maxTokens := 2048
		temperature := float32(cfg.Temperature)
		return openai.NewChatModel(ctx, &openai.ChatModelConfig{
			APIKey:      cfg.APIKey,
			BaseURL:     cfg.BaseURL,
			Model:       name,
			MaxTokens:   &maxTokens,
			Temperature: &temperature,
			Timeout:     cfg.Timeout,
		})

	case ProviderDeepSeek:
		return deepseek.NewChatModel(ctx, &deepseek.ChatModelConfig{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   name,
			Timeout: cfg.Timeout,
		})

	case ProviderArk:
		return ark.NewChatModel(ctx, &ark.ChatModelConfig{
			APIKey:  cfg.APIKey,
			BaseURL: cfg.BaseURL,
			Model:   name,
		})

	default:
		return nil, fmt.Errorf("unknown model provider %q", cfg.Provider)
	}
}

// NewGatewayFromConfig wires a Gateway with the intent model in JSON mode and
// the generation model in text mode.
func NewGatewayFromConfig(ctx context.Context, cfg appmodel.ModelConfig) (*Gateway, error) {
	structured, err := NewChatModel(ctx, cfg, cfg.IntentModel, true)
	if err != nil {
		return nil, fmt.Errorf("error creating intent model: %w", err)
	}
	text, err := NewChatModel(ctx, cfg, cfg.GenerationModel, false)
	if err != nil {
		return nil, fmt.Errorf("error creating generation model: %w", err)
	}
	return NewGateway(structured, text), nil
}
