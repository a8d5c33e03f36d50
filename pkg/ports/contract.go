package ports

import (
	"context"
	"testing"
	"time"

	"github.com/aretw0/pushdown/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunResultStoreContract runs a suite of tests to verify that a ResultStore
// implementation adheres to the interface contract.
func RunResultStoreContract(t *testing.T, store ResultStore) {
	ctx := context.Background()
	key := "contract-test-" + time.Now().Format("20060102150405")

	t.Run("Save and Load", func(t *testing.T) {
		verdict := &domain.Verdict{
			RunID:    "run-1",
			Input:    "0011",
			Accepted: true,
			Steps:    7,
			Branch:   "AB",
			Path: []domain.Snapshot{
				{State: "q1", Input: "0011"},
				{State: "q4", Stack: "", Input: ""},
			},
			CreatedAt: time.Now().UTC().Truncate(time.Second),
		}

		require.NoError(t, store.Save(ctx, key, verdict), "Save should not return error")

		loaded, err := store.Load(ctx, key)
		require.NoError(t, err, "Load should not return error")
		assert.Equal(t, verdict.RunID, loaded.RunID)
		assert.Equal(t, verdict.Input, loaded.Input)
		assert.True(t, loaded.Accepted)
		assert.Equal(t, 7, loaded.Steps)
		assert.Equal(t, "AB", loaded.Branch)
		assert.Equal(t, verdict.Path, loaded.Path)
		assert.True(t, verdict.CreatedAt.Equal(loaded.CreatedAt))
	})

	t.Run("Load Returns A Copy", func(t *testing.T) {
		loaded, err := store.Load(ctx, key)
		require.NoError(t, err)
		loaded.Accepted = false

		again, err := store.Load(ctx, key)
		require.NoError(t, err)
		assert.True(t, again.Accepted)
	})

	t.Run("Load Non-Existent", func(t *testing.T) {
		_, err := store.Load(ctx, "non-existent-"+key)
		assert.ErrorIs(t, err, domain.ErrVerdictNotFound)
	})

	t.Run("Delete", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, key, &domain.Verdict{GaveUp: true, StepLimit: 3}))

		require.NoError(t, store.Delete(ctx, key), "Delete should not return error")

		_, err := store.Load(ctx, key)
		assert.ErrorIs(t, err, domain.ErrVerdictNotFound, "Load after Delete should return ErrVerdictNotFound")
	})
}
