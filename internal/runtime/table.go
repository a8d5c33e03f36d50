package runtime

import (
	"fmt"
	"unicode/utf8"

	"github.com/aretw0/pushdown/pkg/domain"
)

// TransitionTable groups transition rules by source state.
// Rules keep their insertion order, both globally and within a source state,
// so that successors and branch labels are reproducible.
type TransitionTable struct {
	rules  []domain.Transition
	byFrom map[domain.State][]int
}

// NewTransitionTable creates an empty table.
func NewTransitionTable() *TransitionTable {
	return &TransitionTable{
		byFrom: make(map[domain.State][]int),
	}
}

// Add appends a rule. Nothing is validated here; see ValidateAgainst.
func (t *TransitionTable) Add(from domain.State, read, pop string, to domain.State, push string) {
	t.byFrom[from] = append(t.byFrom[from], len(t.rules))
	t.rules = append(t.rules, domain.Transition{
		From: from,
		Read: read,
		Pop:  pop,
		To:   to,
		Push: push,
	})
}

// Len returns the number of rules.
func (t *TransitionTable) Len() int {
	return len(t.rules)
}

// Rules returns every rule in insertion order.
func (t *TransitionTable) Rules() []domain.Transition {
	out := make([]domain.Transition, len(t.rules))
	copy(out, t.rules)
	return out
}

// From returns the rules leaving state, in insertion order.
func (t *TransitionTable) From(state domain.State) []domain.Transition {
	idx := t.byFrom[state]
	out := make([]domain.Transition, 0, len(idx))
	for _, i := range idx {
		out = append(out, t.rules[i])
	}
	return out
}

// ValidateAgainst checks that every rule only mentions states and symbols
// declared by a, and that each read, pop and push is at most one symbol.
// All failures are reported together.
func (t *TransitionTable) ValidateAgainst(a *Automaton) error {
	var errs []error
	for i, r := range t.rules {
		where := fmt.Sprintf("transition %d (%s)", i+1, r)

		for _, s := range []domain.State{r.From, r.To} {
			if !a.IsState(s) {
				errs = append(errs, &domain.DefinitionError{Kind: domain.ErrUnknownState, Subject: string(s), Detail: where})
			}
		}

		fields := []struct {
			value    string
			alphabet domain.Alphabet
		}{
			{r.Read, a.input},
			{r.Pop, a.stack},
			{r.Push, a.stack},
		}
		for _, f := range fields {
			if utf8.RuneCountInString(f.value) > 1 {
				errs = append(errs, &domain.DefinitionError{Kind: domain.ErrMalformedTransition, Subject: f.value, Detail: where + ": at most one symbol allowed"})
				continue
			}
			if !f.alphabet.Contains(f.value) {
				errs = append(errs, &domain.DefinitionError{Kind: domain.ErrSymbolNotInAlphabet, Subject: f.value, Detail: where})
			}
		}
	}

	if len(errs) > 0 {
		return &domain.AggregateError{Errors: errs}
	}
	return nil
}

// Successors returns every configuration reachable from c in one step:
// one per rule leaving c's state whose Read prefixes the remaining input and
// whose Pop matches the top of the stack. The result may be empty.
func (t *TransitionTable) Successors(c Configuration) []Configuration {
	idx := t.byFrom[c.state]
	if len(idx) == 0 {
		return nil
	}

	var next []Configuration
	for _, i := range idx {
		r := t.rules[i]
		if c.Reads(r.Read) && c.TopIs(r.Pop) {
			next = append(next, c.next(r))
		}
	}
	return next
}
