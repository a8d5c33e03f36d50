package runner_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aretw0/pushdown"
	"github.com/aretw0/pushdown/internal/testutils"
	"github.com/aretw0/pushdown/pkg/adapters/memory"
	"github.com/aretw0/pushdown/pkg/domain"
	"github.com/aretw0/pushdown/pkg/observability"
	"github.com/aretw0/pushdown/pkg/runner"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMachine(t *testing.T, def *domain.Definition) *pushdown.Machine {
	t.Helper()
	m, err := pushdown.New(def)
	require.NoError(t, err)
	return m
}

func TestEvaluate_Verdicts(t *testing.T) {
	r := runner.New(newMachine(t, testutils.EqualCountsDefinition()))
	ctx := context.Background()

	for _, in := range testutils.EqualCountsAccepted {
		v, err := r.Evaluate(ctx, runner.Request{Input: in})
		require.NoError(t, err)
		assert.Equal(t, "accepted", v.Status(), "input %q", in)
		assert.NotEmpty(t, v.RunID)
		assert.Nil(t, v.Path, "path is only returned on request")
	}
	for _, in := range testutils.EqualCountsRejected {
		v, err := r.Evaluate(ctx, runner.Request{Input: in})
		require.NoError(t, err)
		assert.Equal(t, "rejected", v.Status(), "input %q", in)
	}
}

func TestEvaluate_WithPath(t *testing.T) {
	r := runner.New(newMachine(t, testutils.ZeroesThenOnesDefinition()))

	v, err := r.Evaluate(context.Background(), runner.Request{Input: "01", WithPath: true})
	require.NoError(t, err)
	require.Len(t, v.Path, 5)
	assert.Equal(t, domain.State("q1"), v.Path[0].State)
	assert.Equal(t, domain.State("q4"), v.Path[4].State)
	assert.Equal(t, 5, v.Steps)
}

func TestEvaluate_GaveUp(t *testing.T) {
	r := runner.New(newMachine(t, testutils.EndlessPushDefinition()), runner.WithMaxSteps(40))

	tests := []struct {
		name      string
		requested int
		want      int
	}{
		{"Server Maximum By Default", 0, 40},
		{"Smaller Request Honoured", 10, 10},
		{"Larger Request Capped", 1000, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := r.Evaluate(context.Background(), runner.Request{StepLimit: tt.requested})
			require.NoError(t, err)
			assert.True(t, v.GaveUp)
			assert.Equal(t, "gave_up", v.Status())
			assert.Equal(t, tt.want, v.StepLimit)
			assert.Equal(t, tt.want, v.Steps)
		})
	}
}

func TestEvaluate_MachineStepLimit(t *testing.T) {
	m, err := pushdown.New(testutils.EndlessPushDefinition(), pushdown.WithStepLimit(10))
	require.NoError(t, err)

	tests := []struct {
		name      string
		maxSteps  int
		requested int
		want      int
	}{
		{"Used When Nothing Else Is Set", 0, 0, 10},
		{"Request Overrides", 0, 25, 25},
		{"Capped By Server Maximum", 5, 0, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := runner.New(m, runner.WithMaxSteps(tt.maxSteps))
			v, err := r.Evaluate(context.Background(), runner.Request{StepLimit: tt.requested})
			require.NoError(t, err)
			assert.True(t, v.GaveUp)
			assert.Equal(t, tt.want, v.StepLimit)
		})
	}
}

func TestEvaluate_Cache(t *testing.T) {
	store := memory.NewStore()
	reg := prometheus.NewRegistry()
	metrics, err := observability.NewMetrics(reg)
	require.NoError(t, err)

	r := runner.New(newMachine(t, testutils.ZeroesThenOnesDefinition()),
		runner.WithStore(store),
		runner.WithMetrics(metrics),
	)
	ctx := context.Background()

	first, err := r.Evaluate(ctx, runner.Request{Input: "0011"})
	require.NoError(t, err)
	assert.False(t, first.Cached)
	assert.Equal(t, 1, store.Len())

	second, err := r.Evaluate(ctx, runner.Request{Input: "0011", WithPath: true})
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.RunID, second.RunID)
	assert.NotEmpty(t, second.Path, "cached verdicts keep the path")

	// A different limit is a different question.
	third, err := r.Evaluate(ctx, runner.Request{Input: "0011", StepLimit: 3})
	require.NoError(t, err)
	assert.False(t, third.Cached)
	assert.True(t, third.GaveUp)
	assert.Equal(t, 2, store.Len())

	families, err := reg.Gather()
	require.NoError(t, err)
	for _, f := range families {
		if f.GetName() == "pushdown_cache_hits_total" {
			assert.Equal(t, float64(1), f.GetMetric()[0].GetCounter().GetValue())
		}
	}
	n, err := testutil.GatherAndCount(reg, "pushdown_runs_total")
	require.NoError(t, err)
	assert.Equal(t, 2, n, "accepted and gave_up series")
}

type brokenStore struct{ saves int }

func (s *brokenStore) Save(ctx context.Context, key string, v *domain.Verdict) error {
	s.saves++
	return errors.New("connection refused")
}

func (s *brokenStore) Load(ctx context.Context, key string) (*domain.Verdict, error) {
	return nil, errors.New("connection refused")
}

func (s *brokenStore) Delete(ctx context.Context, key string) error { return nil }

func TestEvaluate_StoreFailureIsNotFatal(t *testing.T) {
	store := &brokenStore{}
	r := runner.New(newMachine(t, testutils.ZeroesThenOnesDefinition()), runner.WithStore(store))

	v, err := r.Evaluate(context.Background(), runner.Request{Input: "01"})
	require.NoError(t, err)
	assert.True(t, v.Accepted)
	assert.Equal(t, 1, store.saves)
}

func TestEvaluate_InvalidRequests(t *testing.T) {
	r := runner.New(newMachine(t, testutils.ZeroesThenOnesDefinition()), runner.WithMaxInputSize(4))

	_, err := r.Evaluate(context.Background(), runner.Request{Input: "00011"})
	assert.ErrorIs(t, err, runner.ErrInputTooLarge)

	_, err = r.Evaluate(context.Background(), runner.Request{Input: "0\n1"})
	assert.ErrorIs(t, err, runner.ErrControlCharacter)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = r.Evaluate(ctx, runner.Request{Input: "01"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCacheKey(t *testing.T) {
	base := runner.CacheKey("fp", 10, "01")
	assert.Len(t, base, 64)
	assert.Equal(t, base, runner.CacheKey("fp", 10, "01"))
	assert.NotEqual(t, base, runner.CacheKey("fp", 11, "01"))
	assert.NotEqual(t, base, runner.CacheKey("fp", 10, "011"))
	assert.NotEqual(t, base, runner.CacheKey("fq", 10, "01"))
}
