package domain_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/aretw0/pushdown/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestAggregateError(t *testing.T) {
	aggr := &domain.AggregateError{Errors: []error{
		&domain.DefinitionError{Kind: domain.ErrUnknownState, Subject: "q9", Detail: "transition 1"},
		&domain.DefinitionError{Kind: domain.ErrSymbolNotInAlphabet, Subject: "x"},
	}}
	wrapped := fmt.Errorf("building automaton: %w", aggr)

	assert.ErrorIs(t, wrapped, domain.ErrUnknownState)
	assert.ErrorIs(t, wrapped, domain.ErrSymbolNotInAlphabet)
	assert.False(t, errors.Is(wrapped, domain.ErrInvalidName))
	assert.Len(t, domain.DefinitionErrors(wrapped), 2)
	assert.Contains(t, aggr.Error(), "2 definition errors")
	assert.Contains(t, aggr.Error(), `unknown state "q9": transition 1`)
}

func TestDefinitionErrors_Single(t *testing.T) {
	err := &domain.DefinitionError{Kind: domain.ErrInvalidName, Subject: "1q"}
	assert.Len(t, domain.DefinitionErrors(err), 1)
	assert.Nil(t, domain.DefinitionErrors(errors.New("other")))
}

func TestStepBudgetExceededError(t *testing.T) {
	err := fmt.Errorf("run: %w", &domain.StepBudgetExceededError{Limit: 10})

	assert.ErrorIs(t, err, domain.ErrStepBudgetExceeded)
	var budget *domain.StepBudgetExceededError
	assert.ErrorAs(t, err, &budget)
	assert.Equal(t, 10, budget.Limit)
	assert.Equal(t, "run: gave up after 10 steps without accepting", err.Error())
}
