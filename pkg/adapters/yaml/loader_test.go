package yaml_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/aretw0/pushdown/internal/testutils"
	"github.com/aretw0/pushdown/pkg/adapters/yaml"
	"github.com/aretw0/pushdown/pkg/domain"
	"github.com/aretw0/pushdown/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.DefinitionLoader = (*yaml.Loader)(nil)

const zeroesThenOnes = `
name: zeroes-then-ones
states: [q1, q2, q3, q4]
start: q1
accept: q1 q4
input_alphabet: "01"
stack_alphabet: "0$"
transitions:
  - {from: q1, to: q2, push: $}
  - q2 0 - > 0 q2
  - from: q2
    read: "1"
    pop: "0"
    to: q3
  - q3 1 0 > - q3
  - {from: q3, pop: $, push: "-", to: q4}
`

func TestLoad_ZeroesThenOnes(t *testing.T) {
	def, err := yaml.New().Load(strings.NewReader(zeroesThenOnes))
	require.NoError(t, err)
	assert.Equal(t, testutils.ZeroesThenOnesDefinition(), def)
}

func TestParse_StateListForms(t *testing.T) {
	tests := []struct {
		name   string
		states string
	}{
		{"Flow Sequence", "states: [a, b]"},
		{"Block Sequence", "states:\n  - a\n  - b"},
		{"Space Separated", "states: a  b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := tt.states + "\nstart: a\ninput_alphabet: x\nstack_alphabet: y\n"
			def, err := yaml.Parse([]byte(src))
			require.NoError(t, err)
			assert.Equal(t, []string{"a", "b"}, def.States)
			assert.Empty(t, def.Accept)
			assert.Empty(t, def.Transitions)
		})
	}
}

func TestParse_EpsilonSpellings(t *testing.T) {
	src := `
states: a
start: a
input_alphabet: x
stack_alphabet: y
transitions:
  - {from: a, read: "ε", pop: "-", push: "", to: a}
`
	def, err := yaml.Parse([]byte(src))
	require.NoError(t, err)
	require.Len(t, def.Transitions, 1)
	assert.Equal(t, domain.TransitionSpec{From: "a", To: "a"}, def.Transitions[0])
}

func TestParse_NumericLookingScalarsStayVerbatim(t *testing.T) {
	src := `
states: 1 2
start: 1
accept: [2]
input_alphabet: 01
stack_alphabet: 0012
transitions:
  - {from: 1, read: 0, pop: 0, push: 1, to: 2}
`
	def, err := yaml.Parse([]byte(src))
	require.NoError(t, err)
	assert.Equal(t, "01", def.InputAlphabet)
	assert.Equal(t, "0012", def.StackAlphabet)
	assert.Equal(t, []string{"1", "2"}, def.States)
	assert.Equal(t, "1", def.Start)
	assert.Equal(t, []string{"2"}, def.Accept)
	assert.Equal(t, []domain.TransitionSpec{{From: "1", Read: "0", Pop: "0", Push: "1", To: "2"}}, def.Transitions)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		contains string
	}{
		{"Empty", "", "document is empty"},
		{"Not YAML", "states: [a", "failed to parse definition"},
		{"Unknown Key", "states: a\nstart: a\ncolour: blue\n", "colour"},
		{"Bad Compact Line", "states: a\nstart: a\ntransitions:\n  - a x > a\n", "is not of the form"},
		{"Missing Start", "states: a\n", "start state is required"},
		{"Missing States", "start: a\n", "at least one state"},
		{"Duplicate Key", "states: a\nstart: a\nstart: b\n", `key "start" already defined`},
		{"Not A Mapping", "- a\n- b\n", "document must be a mapping"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := yaml.Parse([]byte(tt.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
		})
	}
}

func TestParse_MissingTransitionEndpoint(t *testing.T) {
	src := "states: a\nstart: a\ntransitions:\n  - {from: a, read: x}\n"
	_, err := yaml.Parse([]byte(src))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrMalformedTransition))
}
