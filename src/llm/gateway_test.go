package llm_test

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/http/httptest"
	"syscall"
	"testing"
	"time"

	"llm_data_assistant/src/llm"
	"llm_data_assistant/src/llm/llmtest"

	"github.com/cloudwego/eino/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGatewayRoutesTextAndStructuredCalls(t *testing.T) {
	structured := llmtest.NewChatModel().On(llm.TaskChart, `{"chart_type":"bar"}`)
	text := llmtest.NewChatModel().On(llm.TaskInsights, "  Sales rose in Q3.\n")
	gw := llm.NewGateway(structured, text)

	tpl := llm.Messages("You are a data analyst.", "Columns: {{.columns}}")

	ctx := llm.WithTask(context.Background(), llm.TaskInsights)
	out, err := gw.GenerateText(ctx, tpl, map[string]any{"columns": "region, sales"})
	require.NoError(t, err)
	assert.Equal(t, "Sales rose in Q3.", out)

	var spec map[string]string
	ctx = llm.WithTask(context.Background(), llm.TaskChart)
	require.NoError(t, gw.GenerateJSON(ctx, tpl, map[string]any{"columns": "region"}, &spec))
	assert.Equal(t, "bar", spec["chart_type"])

	calls := text.Calls(llm.TaskInsights)
	require.Len(t, calls, 1)
	require.Len(t, calls[0].Messages, 2)
	assert.Equal(t, schema.System, calls[0].Messages[0].Role)
	assert.Equal(t, "You are a data analyst.", calls[0].Messages[0].Content)
	assert.Equal(t, schema.User, calls[0].Messages[1].Role)
	assert.Equal(t, "Columns: region, sales", calls[0].Messages[1].Content)

	assert.Empty(t, text.Calls(llm.TaskChart))
	assert.Len(t, structured.Calls(llm.TaskChart), 1)
}

func TestGatewayClassifiesConnectionFailure(t *testing.T) {
	refused := &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}
	structured := llmtest.NewChatModel().Fail(llm.TaskIntent, fmt.Errorf("post chat: %w", refused))
	gw := llm.NewGateway(structured, llmtest.NewChatModel())

	ctx := llm.WithTask(context.Background(), llm.TaskIntent)
	_, err := gw.GenerateRaw(ctx, llm.Messages("sys", "user"), nil)

	require.Error(t, err)
	assert.True(t, errors.Is(err, llm.ErrModelUnavailable))
	assert.Equal(t, "Connection failed. Is the model service running?", llm.Describe(err))
}

func TestGatewayWrapsOtherFailures(t *testing.T) {
	structured := llmtest.NewChatModel().Fail(llm.TaskIntent, errors.New("status code: 500"))
	gw := llm.NewGateway(structured, llmtest.NewChatModel())

	ctx := llm.WithTask(context.Background(), llm.TaskIntent)
	_, err := gw.GenerateRaw(ctx, llm.Messages("sys", "user"), nil)

	require.Error(t, err)
	assert.False(t, errors.Is(err, llm.ErrModelUnavailable))
	assert.Contains(t, llm.Describe(err), "status code: 500")
}

func TestTaskFromContext(t *testing.T) {
	assert.Equal(t, llm.Task(""), llm.TaskFromContext(context.Background()))
	assert.Equal(t, llm.TaskQuery, llm.TaskFromContext(llm.WithTask(context.Background(), llm.TaskQuery)))
}

func TestHealthChecker(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	checker, err := llm.NewHealthChecker("ollama", srv.URL, time.Second)
	require.NoError(t, err)
	assert.Equal(t, llm.StatusUp, checker.Status(context.Background()))

	srv.Close()
	assert.Equal(t, llm.StatusDown, checker.Status(context.Background()))

	other, err := llm.NewHealthChecker("openai", "https://example.invalid", time.Second)
	require.NoError(t, err)
	assert.Equal(t, llm.StatusUnknown, other.Status(context.Background()))
}
