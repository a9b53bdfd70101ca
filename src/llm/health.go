package llm

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"
)

const (
	StatusUp      = "up"
	StatusDown    = "down"
	StatusUnknown = "unknown"
)

// HealthChecker reports whether the model service answers. Only the ollama
// provider exposes a heartbeat; other providers report StatusUnknown.
type HealthChecker struct {
	client *api.Client
}

func NewHealthChecker(provider, baseURL string, timeout time.Duration) (*HealthChecker, error) {
	p := strings.ToLower(provider)
	if p != "" && p != ProviderOllama {
		return &HealthChecker{}, nil
	}
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid model base url %q: %w", baseURL, err)
	}
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &HealthChecker{client: api.NewClient(base, &http.Client{Timeout: timeout})}, nil
}

func (h *HealthChecker) Status(ctx context.Context) string {
	if h == nil || h.client == nil {
		return StatusUnknown
	}
	if err := h.client.Heartbeat(ctx); err != nil {
		return StatusDown
	}
	return StatusUp
}
