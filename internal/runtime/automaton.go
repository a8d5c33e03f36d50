package runtime

import (
	"io"
	"log/slog"

	"github.com/aretw0/pushdown/pkg/domain"
)

// Automaton is a validated pushdown automaton. It is read-only once built and
// safe for concurrent use.
type Automaton struct {
	name   string
	states []domain.State
	known  map[domain.State]struct{}
	input  domain.Alphabet
	stack  domain.Alphabet
	table  *TransitionTable
	start  domain.State
	accept []domain.State
	final  map[domain.State]struct{}
	logger *slog.Logger
}

// New validates def and builds the automaton.
// Every inconsistency is collected into a *domain.AggregateError; if there is
// any, no automaton is returned.
func New(def *domain.Definition, opts ...Option) (*Automaton, error) {
	a := &Automaton{
		name:   def.Name,
		known:  make(map[domain.State]struct{}, len(def.States)),
		final:  make(map[domain.State]struct{}, len(def.Accept)),
		table:  NewTransitionTable(),
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(a)
	}

	var errs []error

	// 1. States
	for _, name := range def.States {
		s, err := domain.NewState(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if _, dup := a.known[s]; dup {
			continue
		}
		a.known[s] = struct{}{}
		a.states = append(a.states, s)
	}

	// 2. Start and accept states
	a.start = domain.State(def.Start)
	if !a.IsState(a.start) {
		errs = append(errs, &domain.DefinitionError{Kind: domain.ErrUnknownState, Subject: def.Start, Detail: "start state"})
	}
	for _, name := range def.Accept {
		s := domain.State(name)
		if !a.IsState(s) {
			errs = append(errs, &domain.DefinitionError{Kind: domain.ErrUnknownState, Subject: name, Detail: "accept state"})
			continue
		}
		if _, dup := a.final[s]; dup {
			continue
		}
		a.final[s] = struct{}{}
		a.accept = append(a.accept, s)
	}

	// 3. Alphabets
	var alphaErrs []error
	a.input, alphaErrs = buildAlphabet(def.InputAlphabet, "input alphabet")
	errs = append(errs, alphaErrs...)
	a.stack, alphaErrs = buildAlphabet(def.StackAlphabet, "stack alphabet")
	errs = append(errs, alphaErrs...)

	// 4. Transitions
	for _, t := range def.Transitions {
		a.table.Add(domain.State(t.From), t.Read, t.Pop, domain.State(t.To), t.Push)
	}
	if err := a.table.ValidateAgainst(a); err != nil {
		errs = append(errs, domain.DefinitionErrors(err)...)
	}

	if len(errs) > 0 {
		return nil, &domain.AggregateError{Errors: errs}
	}

	a.logger.Debug("automaton built",
		"name", a.name,
		"states", len(a.states),
		"accept_states", len(a.accept),
		"rules", a.table.Len())

	return a, nil
}

// buildAlphabet keeps every valid symbol and reports each invalid one,
// so that transition checks are not polluted by a single bad character.
func buildAlphabet(symbols, which string) (domain.Alphabet, []error) {
	var errs []error
	valid := make([]rune, 0, len(symbols))
	for _, r := range symbols {
		if !domain.IsValidSymbol(r) {
			errs = append(errs, &domain.DefinitionError{Kind: domain.ErrInvalidSymbol, Subject: string(r), Detail: which})
			continue
		}
		valid = append(valid, r)
	}
	a, _ := domain.NewAlphabet(string(valid))
	return a, errs
}

func (a *Automaton) Name() string { return a.name }

// States returns the declared states in declaration order.
func (a *Automaton) States() []domain.State {
	return append([]domain.State(nil), a.states...)
}

func (a *Automaton) Start() domain.State { return a.start }

// AcceptStates returns the accept states in declaration order.
func (a *Automaton) AcceptStates() []domain.State {
	return append([]domain.State(nil), a.accept...)
}

func (a *Automaton) InputAlphabet() domain.Alphabet { return a.input }

func (a *Automaton) StackAlphabet() domain.Alphabet { return a.stack }

func (a *Automaton) Table() *TransitionTable { return a.table }

// IsState reports whether s was declared.
func (a *Automaton) IsState(s domain.State) bool {
	_, ok := a.known[s]
	return ok
}

// IsAccept reports whether s is an accept state.
func (a *Automaton) IsAccept(s domain.State) bool {
	_, ok := a.final[s]
	return ok
}

// IsAccepting reports whether c has consumed all its input in an accept state.
func (a *Automaton) IsAccepting(c Configuration) bool {
	return c.AtEnd() && a.IsAccept(c.state)
}
