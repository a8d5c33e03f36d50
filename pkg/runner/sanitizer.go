package runner

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"unicode"
	"unicode/utf8"
)

var (
	// DefaultMaxInputSize is 4KB (conservative default)
	DefaultMaxInputSize = 4096
	// EnvMaxInputSize is the environment variable to override the default
	EnvMaxInputSize = "PUSHDOWN_MAX_INPUT_SIZE"
)

var (
	ErrInputTooLarge    = errors.New("input exceeds maximum allowed size")
	ErrInvalidUTF8      = errors.New("input contains invalid UTF-8 sequences")
	ErrControlCharacter = errors.New("input contains control characters")
)

// ValidateInput checks an input string received from outside the process.
// Unlike a chat message an automaton input cannot be cleaned up without
// changing the answer, so anything suspicious is rejected:
// oversize inputs, invalid UTF-8 and control characters.
// A limit of zero or less uses MaxInputSize.
func ValidateInput(input string, limit int) error {
	if limit <= 0 {
		limit = MaxInputSize()
	}

	// 1. Enforce Size Limit
	if len(input) > limit {
		return fmt.Errorf("%w: size=%d limit=%d", ErrInputTooLarge, len(input), limit)
	}

	// 2. Validate UTF-8
	if !utf8.ValidString(input) {
		return ErrInvalidUTF8
	}

	// 3. Reject Control Characters (ANSI codes, NULL, newlines...)
	for i, r := range input {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: %U at byte %d", ErrControlCharacter, r, i)
		}
	}
	return nil
}

// MaxInputSize returns the input size limit, honouring EnvMaxInputSize.
func MaxInputSize() int {
	if val := os.Getenv(EnvMaxInputSize); val != "" {
		if size, err := strconv.Atoi(val); err == nil && size > 0 {
			return size
		}
	}
	return DefaultMaxInputSize
}
