package runner

import (
	"log/slog"

	"github.com/aretw0/pushdown/pkg/observability"
	"github.com/aretw0/pushdown/pkg/ports"
)

// Option defines a functional option for configuring the Runner.
type Option func(*Runner)

// WithStore configures the ResultStore used as a verdict cache.
func WithStore(store ports.ResultStore) Option {
	return func(r *Runner) {
		r.store = store
	}
}

// WithMetrics configures run instrumentation.
func WithMetrics(m *observability.Metrics) Option {
	return func(r *Runner) {
		r.metrics = m
	}
}

// WithLogger configures the structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMaxSteps caps the step limit any request may ask for. Requests with no
// limit of their own get the machine's limit, else this one. Zero leaves
// requests uncapped.
func WithMaxSteps(n int) Option {
	return func(r *Runner) {
		r.maxSteps = n
	}
}

// WithMaxInputSize overrides the input size limit (see ValidateInput).
func WithMaxInputSize(n int) Option {
	return func(r *Runner) {
		r.maxInputSize = n
	}
}
