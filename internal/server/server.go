// Package server exposes the prompt processor over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"llm_data_assistant/internal/core"
	"llm_data_assistant/src/llm"
	"llm_data_assistant/src/logger"
	"llm_data_assistant/src/model"

	"github.com/bytedance/sonic"
	"github.com/rs/cors"
	"github.com/rs/zerolog/hlog"
)

const maxBodyBytes = 1 << 20

// PromptRequest is the body of POST /process-prompt
type PromptRequest struct {
	Prompt string `json:"prompt"`
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status       string `json:"status"`
	ModelService string `json:"model_service"`
	Dataset      string `json:"dataset"`
}

type Server struct {
	config    model.ServerConfig
	processor *core.Processor
	health    *llm.HealthChecker
}

func New(config model.ServerConfig, processor *core.Processor, health *llm.HealthChecker) *Server {
	return &Server{config: config, processor: processor, health: health}
}

// Handler returns the routes wrapped in CORS and access logging
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /process-prompt", s.handleProcessPrompt)
	mux.HandleFunc("GET /health", s.handleHealth)

	c := cors.New(cors.Options{
		AllowedOrigins: s.config.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})

	var h http.Handler = c.Handler(mux)
	h = hlog.AccessHandler(func(r *http.Request, status, size int, duration time.Duration) {
		hlog.FromRequest(r).Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", status).
			Int("size", size).
			Dur("duration", duration).
			Msg("Request handled")
	})(h)
	h = hlog.RemoteAddrHandler("ip")(h)
	h = hlog.RequestIDHandler("req_id", "Request-Id")(h)
	h = hlog.NewHandler(logger.Logger)(h)
	return h
}

// Run serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.config.Addr,
		Handler:      s.Handler(),
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", s.config.Addr).Msg("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info().Msg("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}

func (s *Server) handleProcessPrompt(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeJSON(w, r, http.StatusBadRequest, []model.ResultItem{model.Error("Invalid request body")})
		return
	}

	var req PromptRequest
	if err := sonic.Unmarshal(body, &req); err != nil {
		hlog.FromRequest(r).Debug().Err(err).Msg("Undecodable request body")
		writeJSON(w, r, http.StatusBadRequest, []model.ResultItem{model.Error("Invalid request body")})
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		writeJSON(w, r, http.StatusBadRequest, []model.ResultItem{model.Error("Prompt is missing")})
		return
	}

	items := s.processor.Process(r.Context(), req.Prompt)
	writeJSON(w, r, http.StatusOK, items)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:       "ok",
		ModelService: s.health.Status(r.Context()),
	}
	if current := s.processor.Store().Current(); current != nil {
		resp.Dataset = current.Filename
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	data, err := sonic.Marshal(v)
	if err != nil {
		hlog.FromRequest(r).Error().Err(err).Msg("Failed to encode response")
		http.Error(w, `[{"type":"error","data":"Internal server error"}]`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
