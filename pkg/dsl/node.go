package dsl

import "github.com/aretw0/pushdown/pkg/domain"

// RuleBuilder provides a fluent API for configuring one transition.
// Anything left unset is epsilon.
type RuleBuilder struct {
	rule    domain.TransitionSpec
	builder *Builder
	closed  bool
}

// Read sets the input symbol consumed by the transition.
func (r *RuleBuilder) Read(symbol string) *RuleBuilder {
	r.rule.Read = symbol
	return r
}

// Pop sets the symbol the transition requires on top of the stack.
func (r *RuleBuilder) Pop(symbol string) *RuleBuilder {
	r.rule.Pop = symbol
	return r
}

// Push sets the symbol placed on the stack.
func (r *RuleBuilder) Push(symbol string) *RuleBuilder {
	r.rule.Push = symbol
	return r
}

// To closes the rule with its target state and hands back the Builder.
func (r *RuleBuilder) To(target string) *Builder {
	r.rule.To = target
	r.closed = true
	return r.builder
}

// Loop closes the rule with its source state as target.
func (r *RuleBuilder) Loop() *Builder {
	return r.To(r.rule.From)
}

// Spec returns the underlying domain.TransitionSpec.
func (r *RuleBuilder) Spec() domain.TransitionSpec {
	return r.rule
}
