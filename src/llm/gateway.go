package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"syscall"
	"time"

	"llm_data_assistant/src/logger"

	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
)

var (
	// ErrModelUnavailable means nothing answered at the model service address.
	ErrModelUnavailable = errors.New("model service unreachable")
	// ErrMalformedResponse means the reply could not be decoded as the JSON the caller asked for.
	ErrMalformedResponse = errors.New("malformed model response")
)

// Gateway sends chat requests to the model service. The structured model
// answers in JSON (intent, chart and query calls); the text model answers
// in free text (insights).
type Gateway struct {
	structured model.BaseChatModel
	text       model.BaseChatModel
}

func NewGateway(structured, text model.BaseChatModel) *Gateway {
	return &Gateway{structured: structured, text: text}
}

// GenerateText runs the template against the text model and returns the
// trimmed reply.
func (g *Gateway) GenerateText(ctx context.Context, tpl prompt.ChatTemplate, vars map[string]any) (string, error) {
	return g.call(ctx, g.text, tpl, vars)
}

// GenerateRaw runs the template against the structured model and returns the
// reply without decoding it.
func (g *Gateway) GenerateRaw(ctx context.Context, tpl prompt.ChatTemplate, vars map[string]any) (string, error) {
	return g.call(ctx, g.structured, tpl, vars)
}

// GenerateJSON runs the template against the structured model and decodes
// the reply into out.
func (g *Gateway) GenerateJSON(ctx context.Context, tpl prompt.ChatTemplate, vars map[string]any, out any) error {
	raw, err := g.GenerateRaw(ctx, tpl, vars)
	if err != nil {
		return err
	}
	return DecodeJSON(raw, out)
}

func (g *Gateway) call(ctx context.Context, chat model.BaseChatModel, tpl prompt.ChatTemplate, vars map[string]any) (string, error) {
	task := TaskFromContext(ctx)

	messages, err := tpl.Format(ctx, vars)
	if err != nil {
		return "", fmt.Errorf("error formatting %s prompt: %w", task, err)
	}

	start := time.Now()
	out, err := chat.Generate(ctx, messages)
	elapsed := time.Since(start)
	if err != nil {
		logger.Warn().Err(err).Str("task", string(task)).Dur("elapsed", elapsed).Msg("Model call failed")
		return "", classify(err)
	}
	if out == nil {
		return "", fmt.Errorf("%w: empty reply", ErrMalformedResponse)
	}

	logger.Debug().
		Str("task", string(task)).
		Int("messages", len(messages)).
		Int("reply_length", len(out.Content)).
		Dur("elapsed", elapsed).
		Msg("Model call completed")

	return strings.TrimSpace(out.Content), nil
}

func classify(err error) error {
	if isConnectionError(err) {
		return fmt.Errorf("%w: %v", ErrModelUnavailable, err)
	}
	return fmt.Errorf("model request failed: %w", err)
}

func isConnectionError(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) && opErr.Op == "dial" {
		return true
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	// some provider clients flatten the transport error into a string
	msg := err.Error()
	return strings.Contains(msg, "connection refused") || strings.Contains(msg, "no such host")
}

// Describe turns a gateway error into the message shown to the user.
func Describe(err error) string {
	switch {
	case errors.Is(err, ErrModelUnavailable):
		return "Connection failed. Is the model service running?"
	case errors.Is(err, ErrMalformedResponse):
		return fmt.Sprintf("Failed to parse AI response: %v", err)
	default:
		return fmt.Sprintf("Model request failed: %v", err)
	}
}

// Messages builds the two-message chat template every call uses.
func Messages(system, user string) prompt.ChatTemplate {
	return prompt.FromMessages(schema.GoTemplate,
		schema.SystemMessage(system),
		schema.UserMessage(user),
	)
}
