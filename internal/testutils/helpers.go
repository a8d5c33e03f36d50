package testutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/pushdown/pkg/domain"
	"github.com/stretchr/testify/require"
)

// ZeroesThenOnes is the text form of Sipser's example 2.14 automaton,
// recognising {0ⁿ1ⁿ | n ≥ 0}.
const ZeroesThenOnes = `# Sipser example 2.14: 0^n 1^n
States: q1 q2 q3 q4
StartState: q1
AcceptStates: q1 q4
InputAlphabet: 01
StackAlphabet: 0$

q1 - - > $ q2
q2 0 - > 0 q2
q2 1 0 > - q3
q3 1 0 > - q3
q3 - $ > - q4
`

// EqualCounts is the text form of Sipser's example 2.16 automaton,
// recognising {aⁱbʲcᵏ | i = j or i = k}.
const EqualCounts = `# Sipser example 2.16: a^i b^j c^k where i = j or i = k
States: q1 q2 q3 q4 q5 q6 q7
StartState: q1
AcceptStates: q1 q4 q7
InputAlphabet: abc
StackAlphabet: a$

q1 - - > $ q2
q2 a - > a q2

# guess which count matches
q2 - - > - q3
q2 - - > - q5

# i = j
q3 b a > - q3
q3 - $ > - q4
q4 c - > - q4

# i = k
q5 b - > - q5
q5 - - > - q6
q6 c a > - q6
q6 - $ > - q7
`

// ZeroesThenOnesDefinition is ZeroesThenOnes as a domain.Definition.
func ZeroesThenOnesDefinition() *domain.Definition {
	return &domain.Definition{
		Name:          "zeroes-then-ones",
		States:        []string{"q1", "q2", "q3", "q4"},
		Start:         "q1",
		Accept:        []string{"q1", "q4"},
		InputAlphabet: "01",
		StackAlphabet: "0$",
		Transitions: []domain.TransitionSpec{
			{From: "q1", To: "q2", Push: "$"},
			{From: "q2", Read: "0", To: "q2", Push: "0"},
			{From: "q2", Read: "1", Pop: "0", To: "q3"},
			{From: "q3", Read: "1", Pop: "0", To: "q3"},
			{From: "q3", Pop: "$", To: "q4"},
		},
	}
}

// EqualCountsDefinition is EqualCounts as a domain.Definition.
func EqualCountsDefinition() *domain.Definition {
	return &domain.Definition{
		Name:          "equal-counts",
		States:        []string{"q1", "q2", "q3", "q4", "q5", "q6", "q7"},
		Start:         "q1",
		Accept:        []string{"q1", "q4", "q7"},
		InputAlphabet: "abc",
		StackAlphabet: "a$",
		Transitions: []domain.TransitionSpec{
			{From: "q1", To: "q2", Push: "$"},
			{From: "q2", Read: "a", To: "q2", Push: "a"},
			{From: "q2", To: "q3"},
			{From: "q2", To: "q5"},
			{From: "q3", Read: "b", Pop: "a", To: "q3"},
			{From: "q3", Pop: "$", To: "q4"},
			{From: "q4", Read: "c", To: "q4"},
			{From: "q5", Read: "b", To: "q5"},
			{From: "q5", To: "q6"},
			{From: "q6", Read: "c", Pop: "a", To: "q6"},
			{From: "q6", Pop: "$", To: "q7"},
		},
	}
}

// EndlessPushDefinition never accepts and pushes forever on an epsilon loop,
// so every search on it needs a step limit.
func EndlessPushDefinition() *domain.Definition {
	return &domain.Definition{
		Name:          "endless-push",
		States:        []string{"loop", "never"},
		Start:         "loop",
		Accept:        []string{"never"},
		InputAlphabet: "x",
		StackAlphabet: "x",
		Transitions: []domain.TransitionSpec{
			{From: "loop", To: "loop", Push: "x"},
		},
	}
}

// EqualCountsAccepted and EqualCountsRejected are the regression inputs of EqualCounts.
var (
	EqualCountsAccepted = []string{"", "aaabccc", "ac", "ab", "abbbc", "bbbbb"}
	EqualCountsRejected = []string{"abbccc", "bc", "aaabbc", "a", "aaaaaaccccc", "aaacbbb"}
)

// WriteFile writes content to name inside a fresh temporary directory and
// returns the file path. It fails the test immediately on error.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644), "Failed to write fixture")
	return path
}
