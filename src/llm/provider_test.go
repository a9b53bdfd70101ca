package llm_test

import (
	"context"
	"testing"
	"time"

	"llm_data_assistant/src/llm"
	"llm_data_assistant/src/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChatModel(t *testing.T) {
	cfg := model.ModelConfig{
		Provider:        "Ollama",
		BaseURL:         "http://localhost:11434",
		IntentModel:     "phi3:medium",
		GenerationModel: "phi3:medium",
		Timeout:         time.Second,
	}

	chat, err := llm.NewChatModel(context.Background(), cfg, cfg.IntentModel, true)
	require.NoError(t, err)
	assert.NotNil(t, chat)

	gw, err := llm.NewGatewayFromConfig(context.Background(), cfg)
	require.NoError(t, err)
	assert.NotNil(t, gw)

	cfg.Provider = "bard"
	_, err = llm.NewChatModel(context.Background(), cfg, "x", false)
	assert.ErrorContains(t, err, `unknown model provider "bard"`)

	_, err = llm.NewGatewayFromConfig(context.Background(), cfg)
	assert.ErrorContains(t, err, "error creating intent model")
}
