// Package server exposes the symdiff tools over HTTP.
//
//	POST /tool    execute a tool call
//	GET  /schema  tool schema for agent registration
//	GET  /health  liveness check
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/rs/zerolog"

	"github.com/njchilds90/symdiff"
	"github.com/njchilds90/symdiff/internal/config"
	"github.com/njchilds90/symdiff/internal/logging"
)

// Server is the HTTP tool server.
type Server struct {
	cfg    config.ServerConfig
	mux    *http.ServeMux
	logger zerolog.Logger
	// opts carries the engine settings into every tool call.
	opts symdiff.Options
}

// NewServer creates a server with all routes registered.
func NewServer(cfg *config.Config, logger zerolog.Logger) *Server {
	s := &Server{
		cfg:    cfg.Server,
		mux:    http.NewServeMux(),
		logger: logger,
		opts:   cfg.Options(),
	}
	s.mux.HandleFunc("POST /tool", s.handleTool)
	s.mux.HandleFunc("GET /schema", s.handleSchema)
	s.mux.HandleFunc("GET /health", s.handleHealth)
	return s
}

// Handler returns the routed handler (for tests).
func (s *Server) Handler() http.Handler { return s.mux }

// ListenAndServe blocks serving on the configured address.
func (s *Server) ListenAndServe() error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       s.cfg.ReadTimeout.Duration,
		WriteTimeout:      s.cfg.WriteTimeout.Duration,
		IdleTimeout:       60 * time.Second,
	}
	s.logger.Info().Str("addr", s.cfg.Addr).Msg("tool server listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) handleTool(w http.ResponseWriter, r *http.Request) {
	log, reqID := logging.WithRunID(s.logger, "request_id")
	w.Header().Set("X-Request-Id", reqID)

	defer func() {
		if rec := recover(); rec != nil {
			log.Error().Interface("panic", rec).Str("stack", string(debug.Stack())).Msg("panic in /tool")
			http.Error(w, "internal server error", http.StatusInternalServerError)
		}
	}()

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxBodyBytes)
	defer r.Body.Close()

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	var req symdiff.ToolRequest
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	// Ensure there's no trailing junk.
	if dec.More() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: trailing data"})
		return
	}
	if req.Params == nil {
		req.Params = map[string]interface{}{}
	}

	start := time.Now()
	resp := symdiff.HandleToolCallWith(req, s.opts)
	ev := log.Info()
	status := http.StatusOK
	if resp.Error != "" {
		ev = log.Warn().Str("error", resp.Error)
		status = http.StatusBadRequest
	}
	ev.Str("tool", req.Tool).Dur("elapsed", time.Since(start)).Msg("tool call")
	writeJSON(w, status, resp)
}

func (s *Server) handleSchema(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, symdiff.ToolSpec())
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
