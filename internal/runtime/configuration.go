package runtime

import (
	"strings"

	"github.com/aretw0/pushdown/pkg/domain"
)

// noConfiguration marks the absence of a predecessor or of an arena slot.
const noConfiguration = -1

// Configuration is an immutable snapshot of one branch: the current state,
// the whole input with a cursor into it, and the stack (top is the last symbol).
// Applying a transition never changes a Configuration, it builds a new one.
type Configuration struct {
	id     int
	prev   int
	state  domain.State
	input  string
	cursor int
	stack  string
}

func initialConfiguration(start domain.State, input string) Configuration {
	return Configuration{
		id:    noConfiguration,
		prev:  noConfiguration,
		state: start,
		input: input,
	}
}

// ID is the arena handle of the configuration, or -1 if it was never enqueued.
func (c Configuration) ID() int { return c.id }

// Prev is the arena handle of the configuration this one came from, or -1.
func (c Configuration) Prev() int { return c.prev }

func (c Configuration) State() domain.State { return c.state }

// Cursor is the byte offset of the next unread input symbol.
func (c Configuration) Cursor() int { return c.cursor }

func (c Configuration) Stack() string { return c.stack }

// Remaining returns the input not yet consumed.
func (c Configuration) Remaining() string {
	return c.input[c.cursor:]
}

// AtEnd reports whether the whole input has been consumed.
func (c Configuration) AtEnd() bool {
	return c.cursor == len(c.input)
}

// Reads reports whether the remaining input starts with s.
func (c Configuration) Reads(s string) bool {
	return strings.HasPrefix(c.input[c.cursor:], s)
}

// TopIs reports whether s matches the top of the stack, reading s from the top outward.
func (c Configuration) TopIs(s string) bool {
	return strings.HasSuffix(c.stack, reverse(s))
}

// next applies t. The caller must have checked Reads(t.Read) and TopIs(t.Pop).
func (c Configuration) next(t domain.Transition) Configuration {
	pop := len(t.Pop)
	return Configuration{
		id:     noConfiguration,
		prev:   c.id,
		state:  t.To,
		input:  c.input,
		cursor: c.cursor + len(t.Read),
		stack:  c.stack[:len(c.stack)-pop] + t.Push,
	}
}

// Snapshot returns the printable view of c.
func (c Configuration) Snapshot() domain.Snapshot {
	return domain.Snapshot{
		State: c.state,
		Stack: c.stack,
		Input: c.Remaining(),
	}
}

func (c Configuration) String() string {
	return c.Snapshot().String()
}

func reverse(s string) string {
	if len(s) < 2 {
		return s
	}
	runes := []rune(s)
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

// history is the arena holding every configuration created by one search.
// It doubles as the breadth-first work queue: configurations are appended at
// the tail and the search reads them in index order.
type history struct {
	configs []Configuration
	labels  []string
}

func (h *history) push(c Configuration, label string) {
	c.id = len(h.configs)
	h.configs = append(h.configs, c)
	h.labels = append(h.labels, label)
}

func (h *history) len() int {
	return len(h.configs)
}

// path walks predecessor handles from id back to the start configuration and
// returns them oldest first.
func (h *history) path(id int) []Configuration {
	var rev []Configuration
	for i := id; i != noConfiguration; i = h.configs[i].prev {
		rev = append(rev, h.configs[i])
	}
	out := make([]Configuration, len(rev))
	for i, c := range rev {
		out[len(rev)-1-i] = c
	}
	return out
}
