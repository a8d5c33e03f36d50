package domain

import (
	"errors"
	"fmt"
)

// Definition error kinds. Every *DefinitionError unwraps to one of them.
var (
	ErrInvalidName         = errors.New("invalid state name")
	ErrUnknownState        = errors.New("unknown state")
	ErrInvalidSymbol       = errors.New("invalid alphabet symbol")
	ErrSymbolNotInAlphabet = errors.New("symbol not in alphabet")
	ErrMalformedTransition = errors.New("malformed transition")
)

// ErrStepBudgetExceeded matches any *StepBudgetExceededError.
var ErrStepBudgetExceeded = errors.New("step budget exceeded")

// ErrVerdictNotFound is returned when a verdict key cannot be found in the store.
var ErrVerdictNotFound = errors.New("verdict not found")

// DefinitionError reports a malformed or inconsistent automaton definition.
type DefinitionError struct {
	Kind    error  // One of the Err* kinds above
	Subject string // The offending name or symbol
	Detail  string // Where it was found, if known
}

func (e *DefinitionError) Error() string {
	msg := fmt.Sprintf("%v %q", e.Kind, e.Subject)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *DefinitionError) Unwrap() error {
	return e.Kind
}

// AggregateError groups every failure found while validating a definition.
type AggregateError struct {
	Errors []error
}

func (e *AggregateError) Error() string {
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	msg := fmt.Sprintf("%d definition errors:\n", len(e.Errors))
	for i, err := range e.Errors {
		msg += fmt.Sprintf("  %d. %s\n", i+1, err.Error())
	}
	return msg
}

// Unwrap exposes the individual failures to errors.Is and errors.As.
func (e *AggregateError) Unwrap() []error {
	return e.Errors
}

// DefinitionErrors returns the individual failures if err is an *AggregateError,
// or err itself if it is a single *DefinitionError. Otherwise returns nil.
func DefinitionErrors(err error) []error {
	var aggr *AggregateError
	if errors.As(err, &aggr) {
		return aggr.Errors
	}
	var def *DefinitionError
	if errors.As(err, &def) {
		return []error{def}
	}
	return nil
}

// StepBudgetExceededError is returned when a search dequeues its whole step
// budget without finding an accepting configuration.
type StepBudgetExceededError struct {
	Limit int
}

func (e *StepBudgetExceededError) Error() string {
	return fmt.Sprintf("gave up after %d steps without accepting", e.Limit)
}

func (e *StepBudgetExceededError) Is(target error) bool {
	return target == ErrStepBudgetExceeded
}
