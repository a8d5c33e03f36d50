package runtime

import (
	"log/slog"

	"github.com/aretw0/pushdown/pkg/domain"
)

// Option configures an Automaton at construction.
type Option func(*Automaton)

// WithLogger sets the structured logger. Nil keeps the discard logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Automaton) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// RunOptions controls a single search. They are passed to every call instead
// of being stored on the Automaton, so one Automaton serves concurrent runs
// with different settings.
type RunOptions struct {
	// StepLimit caps the number of configurations dequeued. Zero or negative means unbounded.
	StepLimit int

	// ShowAllTransitions delivers every visited configuration to Hooks.OnVisit.
	ShowAllTransitions bool

	// ShowAcceptPath delivers the winning branch's path to Hooks.OnAccept.
	ShowAcceptPath bool

	Hooks domain.SearchHooks
}

// Result is the outcome of a search that did not run out of steps.
type Result struct {
	Accepted bool
	Steps    int    // Configurations dequeued, including the accepting one
	Branch   string // Label of the accepting branch
	Path     []domain.Snapshot
}
