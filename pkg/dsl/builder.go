package dsl

import (
	"errors"
	"fmt"
	"strings"

	"github.com/aretw0/pushdown/pkg/domain"
)

// Builder manages the definition construction.
type Builder struct {
	def   domain.Definition
	rules []*RuleBuilder
}

// New creates a new definition builder.
func New() *Builder {
	return &Builder{
		def: domain.Definition{Accept: []string{}},
	}
}

// Named sets the definition name.
func (b *Builder) Named(name string) *Builder {
	b.def.Name = name
	return b
}

// States declares states, in order. Repeated calls append.
func (b *Builder) States(names ...string) *Builder {
	b.def.States = append(b.def.States, names...)
	return b
}

// Start sets the start state.
func (b *Builder) Start(name string) *Builder {
	b.def.Start = name
	return b
}

// Accept marks states as accepting. Repeated calls append.
func (b *Builder) Accept(names ...string) *Builder {
	b.def.Accept = append(b.def.Accept, names...)
	return b
}

// Input sets the input alphabet, one symbol per rune.
func (b *Builder) Input(symbols string) *Builder {
	b.def.InputAlphabet = symbols
	return b
}

// Stack sets the stack alphabet, one symbol per rune.
func (b *Builder) Stack(symbols string) *Builder {
	b.def.StackAlphabet = symbols
	return b
}

// On starts a new transition leaving from. Rules keep the order in which
// On is called.
func (b *Builder) On(from string) *RuleBuilder {
	rb := &RuleBuilder{
		rule:    domain.TransitionSpec{From: from},
		builder: b,
	}
	b.rules = append(b.rules, rb)
	return rb
}

// Build returns the assembled definition. It only checks that the pieces
// are present; names and symbols are checked when the automaton is built.
func (b *Builder) Build() (*domain.Definition, error) {
	var errs []string
	if len(b.def.States) == 0 {
		errs = append(errs, "no states declared")
	}
	if b.def.Start == "" {
		errs = append(errs, "no start state")
	}

	def := b.def
	def.States = append([]string(nil), b.def.States...)
	def.Accept = append([]string{}, b.def.Accept...)
	def.Transitions = make([]domain.TransitionSpec, 0, len(b.rules))
	for i, rb := range b.rules {
		if !rb.closed {
			errs = append(errs, fmt.Sprintf("transition %d from %s has no target (missing To)", i+1, rb.rule.From))
			continue
		}
		def.Transitions = append(def.Transitions, rb.rule)
	}

	if len(errs) > 0 {
		return nil, errors.New("failed to build definition: " + strings.Join(errs, "; "))
	}
	return &def, nil
}

// MustBuild is like Build but panics on error. Handy for fixtures.
func (b *Builder) MustBuild() *domain.Definition {
	def, err := b.Build()
	if err != nil {
		panic(err)
	}
	return def
}
