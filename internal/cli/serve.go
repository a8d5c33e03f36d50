package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/aretw0/pushdown"
	"github.com/aretw0/pushdown/internal/config"
	pdhttp "github.com/aretw0/pushdown/pkg/adapters/http"
	"github.com/aretw0/pushdown/pkg/adapters/mcp"
	"github.com/aretw0/pushdown/pkg/adapters/memory"
	"github.com/aretw0/pushdown/pkg/adapters/redis"
	"github.com/aretw0/pushdown/pkg/observability"
	"github.com/aretw0/pushdown/pkg/persistence/middleware"
	"github.com/aretw0/pushdown/pkg/ports"
	"github.com/aretw0/pushdown/pkg/runner"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const shutdownTimeout = 5 * time.Second

// Stack is the evaluation service shared by the HTTP and MCP servers:
// a runner with its verdict store and, optionally, a metrics registry.
type Stack struct {
	Runner   *runner.Runner
	Registry *prometheus.Registry // nil when metrics are disabled
	close    func() error
}

// NewStack wires a runner for m according to cfg. Verdicts go to Redis
// when cfg.Redis.Addr is set (the server must answer a ping) and to
// process memory otherwise.
func NewStack(ctx context.Context, m *pushdown.Machine, cfg config.ServeConfig, logger *slog.Logger) (*Stack, error) {
	s := &Stack{close: func() error { return nil }}

	var store ports.ResultStore
	if cfg.UsesRedis() {
		rs := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redis.WithTTL(cfg.Redis.TTL),
			redis.WithPrefix(cfg.Redis.Prefix),
		)
		if err := rs.Ping(ctx); err != nil {
			rs.Close()
			return nil, fmt.Errorf("failed to reach redis at %s: %w", cfg.Redis.Addr, err)
		}
		logger.Info("caching verdicts in redis", "addr", cfg.Redis.Addr, "ttl", cfg.Redis.TTL)
		store = rs
		s.close = rs.Close
	} else {
		store = memory.NewStore()
	}

	keys, err := cfg.EncryptionKeys()
	if err != nil {
		s.close()
		return nil, err
	}
	if keys != nil {
		seal, err := middleware.NewEncryptionMiddleware(*keys)
		if err != nil {
			s.close()
			return nil, err
		}
		store = middleware.Chain(store, seal)
		logger.Info("encrypting cached verdicts", "fallback_keys", len(keys.FallbackKeys))
	}

	var metrics *observability.Metrics
	if cfg.Metrics {
		s.Registry = prometheus.NewRegistry()
		s.Registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		if metrics, err = observability.NewMetrics(s.Registry); err != nil {
			s.close()
			return nil, err
		}
	}

	s.Runner = runner.New(m,
		runner.WithStore(store),
		runner.WithMetrics(metrics),
		runner.WithLogger(logger),
		runner.WithMaxSteps(cfg.MaxSteps),
		runner.WithMaxInputSize(cfg.MaxInputSize),
	)
	return s, nil
}

// Handler returns the HTTP API for the stack, with /metrics when enabled.
func (s *Stack) Handler(logger *slog.Logger) http.Handler {
	opts := []pdhttp.Option{pdhttp.WithLogger(logger)}
	if s.Registry != nil {
		opts = append(opts, pdhttp.WithMetricsHandler(promhttp.HandlerFor(s.Registry, promhttp.HandlerOpts{})))
	}
	return pdhttp.NewHandler(s.Runner, opts...)
}

// Close releases the verdict store.
func (s *Stack) Close() error {
	return s.close()
}

// Serve runs the HTTP API on cfg.Addr until ctx is cancelled, then shuts
// down gracefully.
func Serve(ctx context.Context, m *pushdown.Machine, cfg config.ServeConfig, logger *slog.Logger, stdout io.Writer) error {
	stack, err := NewStack(ctx, m, cfg, logger)
	if err != nil {
		return err
	}
	defer stack.Close()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           stack.Handler(logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the listener.
	serverErrors := make(chan error, 1)
	fmt.Fprintf(stdout, "Starting pushdown server on %s\n", srv.Addr)
	fmt.Fprintf(stdout, "Serving automaton: %s (max %d steps)\n", m.Name(), cfg.MaxSteps)
	go func() {
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server error: %w", err)

	case <-ctx.Done():
		// Give outstanding requests a deadline for completion.
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("graceful shutdown did not complete", "timeout", shutdownTimeout, "error", err)
			if err := srv.Close(); err != nil {
				return fmt.Errorf("failed to stop server: %w", err)
			}
		}
		fmt.Fprintln(stdout, "Pushdown server stopped gracefully")
		return nil
	}
}

// ServeMCP exposes m as an MCP server over transport ("stdio" or "sse").
// Stdout belongs to JSON-RPC in stdio mode, so nothing else is printed there.
func ServeMCP(ctx context.Context, m *pushdown.Machine, cfg config.ServeConfig, transport string, port int, logger *slog.Logger) error {
	cfg.Metrics = false
	stack, err := NewStack(ctx, m, cfg, logger)
	if err != nil {
		return err
	}
	defer stack.Close()

	srv := mcp.NewServer(stack.Runner)

	switch transport {
	case "stdio":
		logger.Info("starting MCP server (stdio)", "automaton", m.Name())
		return srv.ServeStdio()
	case "sse":
		logger.Info("starting MCP server (SSE)", "automaton", m.Name(), "port", port)
		if err := srv.ServeSSE(ctx, port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		logger.Info("MCP server stopped gracefully")
		return nil
	default:
		return &ExitError{Code: ExitFailure, Message: fmt.Sprintf("Unknown transport: %s. Supported: stdio, sse", transport)}
	}
}
