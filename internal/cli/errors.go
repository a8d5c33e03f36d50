package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/aretw0/pushdown/pkg/domain"
)

// Process exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitGaveUp  = 2
)

// ExitError carries the message shown to the user and the exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

func (e *ExitError) Error() string {
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode returns the exit code for err: ExitOK for nil, the carried code
// for an *ExitError and ExitFailure otherwise.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var exit *ExitError
	if errors.As(err, &exit) {
		return exit.Code
	}
	return ExitFailure
}

// LoadError maps a failure to load path into the message users see.
// Anything that is not a filesystem error is a problem with the file's contents.
func LoadError(path string, err error) *ExitError {
	var pathErr *fs.PathError
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &ExitError{Code: ExitFailure, Message: "File not found: " + path, Err: err}
	case errors.As(err, &pathErr):
		return &ExitError{Code: ExitFailure, Message: "Error: " + err.Error(), Err: err}
	default:
		return &ExitError{
			Code:    ExitFailure,
			Message: "Invalid format: " + strings.TrimRight(err.Error(), "\n"),
			Err:     err,
		}
	}
}

// GaveUpError reports a search that exhausted its step budget.
func GaveUpError(err *domain.StepBudgetExceededError) *ExitError {
	return &ExitError{
		Code:    ExitGaveUp,
		Message: fmt.Sprintf("Gave up after %d steps without accepting", err.Limit),
		Err:     err,
	}
}
