package runner

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/aretw0/pushdown"
	"github.com/aretw0/pushdown/pkg/domain"
	"github.com/aretw0/pushdown/pkg/observability"
	"github.com/aretw0/pushdown/pkg/ports"
	"github.com/google/uuid"
)

// Request asks for one input to be evaluated.
type Request struct {
	Input string `json:"input"`

	// StepLimit for this evaluation. Zero or negative means the runner's
	// maximum (or unbounded if it has none).
	StepLimit int `json:"step_limit,omitempty"`

	// WithPath includes the accepting path in the verdict.
	WithPath bool `json:"path,omitempty"`
}

// Runner evaluates inputs against one Machine on behalf of servers: it
// validates inputs, enforces the step cap, caches verdicts and records
// metrics. A Runner is safe for concurrent use.
type Runner struct {
	machine      *pushdown.Machine
	store        ports.ResultStore
	metrics      *observability.Metrics
	logger       *slog.Logger
	maxSteps     int
	maxInputSize int
	now          func() time.Time
}

// New creates a Runner for m.
func New(m *pushdown.Machine, opts ...Option) *Runner {
	r := &Runner{
		machine: m,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Machine returns the machine the runner evaluates against.
func (r *Runner) Machine() *pushdown.Machine {
	return r.machine
}

// MaxSteps returns the step cap, zero if uncapped.
func (r *Runner) MaxSteps() int {
	return r.maxSteps
}

// Evaluate answers whether the machine accepts req.Input.
// Running out of steps is not an error: the verdict has GaveUp set.
// Errors are reserved for invalid requests and cancelled contexts.
func (r *Runner) Evaluate(ctx context.Context, req Request) (*domain.Verdict, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := ValidateInput(req.Input, r.maxInputSize); err != nil {
		return nil, err
	}

	limit := r.effectiveLimit(req.StepLimit)
	key := CacheKey(r.machine.Fingerprint(), limit, req.Input)
	log := r.logger.With("key", key[:12], "step_limit", limit)

	if cached := r.lookup(ctx, key, log); cached != nil {
		r.metrics.CacheHit()
		return present(cached, req.WithPath), nil
	}

	verdict := &domain.Verdict{
		RunID:     uuid.NewString(),
		Input:     req.Input,
		StepLimit: limit,
		CreatedAt: r.now().UTC(),
	}

	res, err := r.machine.With(pushdown.WithStepLimit(limit)).Run(req.Input)
	switch {
	case errors.Is(err, domain.ErrStepBudgetExceeded):
		verdict.GaveUp = true
		verdict.Steps = limit
	case err != nil:
		return nil, fmt.Errorf("failed to evaluate input: %w", err)
	default:
		verdict.Accepted = res.Accepted
		verdict.Steps = res.Steps
		verdict.Branch = res.Branch
		verdict.Path = res.Path
	}

	log.Debug("input evaluated", "run_id", verdict.RunID, "status", verdict.Status(), "steps", verdict.Steps)
	r.metrics.ObserveVerdict(verdict)

	if r.store != nil {
		if err := r.store.Save(ctx, key, verdict); err != nil {
			log.Warn("failed to cache verdict", "error", err)
		}
	}

	return present(verdict, req.WithPath), nil
}

// effectiveLimit picks the request's limit, else the machine's own, and caps
// either with maxSteps.
func (r *Runner) effectiveLimit(requested int) int {
	if requested <= 0 {
		requested = r.machine.StepLimit()
	}
	if r.maxSteps > 0 && (requested <= 0 || requested > r.maxSteps) {
		return r.maxSteps
	}
	return requested
}

// lookup treats store failures as misses; the verdict can always be recomputed.
func (r *Runner) lookup(ctx context.Context, key string, log *slog.Logger) *domain.Verdict {
	if r.store == nil {
		return nil
	}
	v, err := r.store.Load(ctx, key)
	if err != nil {
		if !errors.Is(err, domain.ErrVerdictNotFound) {
			log.Warn("failed to read verdict cache", "error", err)
		}
		return nil
	}
	v.Cached = true
	log.Debug("verdict cache hit", "run_id", v.RunID)
	return v
}

// present returns the verdict as the caller asked for it.
func present(v *domain.Verdict, withPath bool) *domain.Verdict {
	out := *v
	if !withPath {
		out.Path = nil
	}
	return &out
}

// CacheKey derives the store key of a verdict. The step limit is part of the
// key because a verdict that gave up under one limit may not under another.
func CacheKey(fingerprint string, limit int, input string) string {
	h := sha256.New()
	fmt.Fprintf(h, "%s\x00%d\x00%s", fingerprint, limit, input)
	return hex.EncodeToString(h.Sum(nil))
}
