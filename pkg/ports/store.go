package ports

import (
	"context"

	"github.com/aretw0/pushdown/pkg/domain"
)

// ResultStore persists verdicts so repeated evaluations of the same input
// against the same automaton can be answered without searching again.
type ResultStore interface {
	// Save persists the verdict under key.
	Save(ctx context.Context, key string, verdict *domain.Verdict) error

	// Load retrieves the verdict stored under key.
	// Returns domain.ErrVerdictNotFound if there is none.
	Load(ctx context.Context, key string) (*domain.Verdict, error)

	// Delete removes the verdict stored under key.
	Delete(ctx context.Context, key string) error
}
