package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aretw0/pushdown"
	"github.com/aretw0/pushdown/internal/presentation/graph"
	"github.com/aretw0/pushdown/pkg/domain"
	"github.com/aretw0/pushdown/pkg/runner"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// maxBodyBytes bounds request bodies; inputs themselves are limited by the runner.
const maxBodyBytes = 1 << 20

// Evaluator defines what the server needs from the evaluation service.
type Evaluator interface {
	Evaluate(ctx context.Context, req runner.Request) (*domain.Verdict, error)
	Machine() *pushdown.Machine
}

// Server exposes one automaton over HTTP.
type Server struct {
	Evaluator Evaluator
	Logger    *slog.Logger
	metrics   http.Handler
}

// Option configures the handler.
type Option func(*Server)

// WithMetricsHandler mounts h (usually promhttp.Handler()) on GET /metrics.
func WithMetricsHandler(h http.Handler) Option {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.Logger = logger
		}
	}
}

// NewHandler creates a new HTTP handler for the evaluator.
//
//	POST /accepts     {"input": "0011", "step_limit": 100, "path": true}
//	GET  /definition  the automaton definition as JSON
//	GET  /graph       ?format=mermaid|dot&input=... (overlay of the accepting path)
//	GET  /health
//	GET  /info
//	GET  /metrics     when WithMetricsHandler is given
func NewHandler(evaluator Evaluator, opts ...Option) http.Handler {
	server := &Server{
		Evaluator: evaluator,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(server)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Post("/accepts", server.Accepts)
	r.Get("/definition", server.GetDefinition)
	r.Get("/graph", server.GetGraph)
	r.Get("/health", server.GetHealth)
	r.Get("/info", server.GetInfo)
	if server.metrics != nil {
		r.Method(http.MethodGet, "/metrics", server.metrics)
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// AcceptsResponse is the verdict plus its status string.
type AcceptsResponse struct {
	*domain.Verdict
	Status string `json:"status"`
}

// Accepts handles the POST /accepts request.
func (s *Server) Accepts(w http.ResponseWriter, r *http.Request) {
	var body runner.Request
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		s.Logger.Warn("Accepts: invalid request body", "error", err)
		return
	}

	verdict, err := s.Evaluator.Evaluate(r.Context(), body)
	if err != nil {
		status := statusFor(err)
		writeError(w, status, err.Error())
		if status >= http.StatusInternalServerError {
			s.Logger.Error("Accepts: evaluation failed", "error", err)
		}
		return
	}

	writeJSON(w, http.StatusOK, AcceptsResponse{Verdict: verdict, Status: verdict.Status()})
}

// GetDefinition handles the GET /definition request.
func (s *Server) GetDefinition(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.Evaluator.Machine().Definition())
}

// GetGraph handles the GET /graph request.
func (s *Server) GetGraph(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "mermaid"
	}
	if format != "mermaid" && format != "dot" {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("unknown format %q (want mermaid or dot)", format))
		return
	}

	var overlay *graph.Overlay
	if r.URL.Query().Has("input") {
		verdict, err := s.Evaluator.Evaluate(r.Context(), runner.Request{
			Input:    r.URL.Query().Get("input"),
			WithPath: true,
		})
		if err != nil {
			writeError(w, statusFor(err), err.Error())
			return
		}
		overlay = graph.OverlayFromPath(verdict.Path)
	}

	def := s.Evaluator.Machine().Definition()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if format == "dot" {
		io.WriteString(w, graph.GenerateDot(def, overlay))
		return
	}
	io.WriteString(w, graph.GenerateMermaid(def, overlay))
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	m := s.Evaluator.Machine()
	writeJSON(w, http.StatusOK, map[string]string{
		"app":         "pushdown-http",
		"version":     strings.TrimSpace(pushdown.Version),
		"automaton":   m.Name(),
		"fingerprint": m.Fingerprint(),
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, runner.ErrInputTooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, runner.ErrInvalidUTF8), errors.Is(err, runner.ErrControlCharacter):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
