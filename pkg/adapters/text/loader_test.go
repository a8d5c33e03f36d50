package text_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/aretw0/pushdown/internal/testutils"
	"github.com/aretw0/pushdown/pkg/adapters/text"
	"github.com/aretw0/pushdown/pkg/domain"
	"github.com/aretw0/pushdown/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ ports.DefinitionLoader = (*text.Loader)(nil)

func TestLoad_EqualCounts(t *testing.T) {
	def, err := text.New().Load(strings.NewReader(testutils.EqualCounts))
	require.NoError(t, err)

	want := testutils.EqualCountsDefinition()
	want.Name = ""
	assert.Equal(t, want, def)
}

func TestLoad_ZeroesThenOnes(t *testing.T) {
	def, err := text.Parse(testutils.ZeroesThenOnes)
	require.NoError(t, err)

	assert.Equal(t, []string{"q1", "q2", "q3", "q4"}, def.States)
	assert.Equal(t, "q1", def.Start)
	assert.Equal(t, []string{"q1", "q4"}, def.Accept)
	require.Len(t, def.Transitions, 5)
	assert.Equal(t, domain.TransitionSpec{From: "q1", To: "q2", Push: "$"}, def.Transitions[0])
	assert.Equal(t, domain.TransitionSpec{From: "q2", Read: "1", Pop: "0", To: "q3"}, def.Transitions[2])
}

func TestLoad_CommentsAndBlankLines(t *testing.T) {
	src := `

# leading comment
States: a b   # trailing comment
StartState: a
AcceptStates:
InputAlphabet: x
StackAlphabet: y

a x - > y b # push y
`
	def, err := text.Parse(src)
	require.NoError(t, err)
	assert.Empty(t, def.Accept)
	require.Len(t, def.Transitions, 1)
	assert.Equal(t, "y", def.Transitions[0].Push)
}

func TestLoad_FormatErrors(t *testing.T) {
	header := "States: q1 q2\nStartState: q1\nAcceptStates: q2\nInputAlphabet: ab\nStackAlphabet: a$\n"

	tests := []struct {
		name     string
		src      string
		line     int
		contains string
	}{
		{"Missing States", "StartState: q1\n", 1, "expected States next, but found StartState:"},
		{"Empty File", "", 0, "reached end of file"},
		{"Two Start States", "States: q1\nStartState: q1 q2\n", 2, "expected one token for StartState but found 2"},
		{"Bad State Name", "States: 1q\nStartState: 1q\nAcceptStates:\nInputAlphabet: a\nStackAlphabet: a\n", 0, "invalid state name '1q'"},
		{"Unknown Start", "States: q1\nStartState: q9\nAcceptStates:\nInputAlphabet: a\nStackAlphabet: a\n", 0, "start state 'q9' not in list of states"},
		{"Unknown Accept", "States: q1\nStartState: q1\nAcceptStates: q9\nInputAlphabet: a\nStackAlphabet: a\n", 0, "accept state 'q9' not in list of states"},
		{"Bad Alphabet", "States: q1\nStartState: q1\nAcceptStates:\nInputAlphabet: a~\nStackAlphabet: a\n", 0, "invalid alphabet character '~'"},
		{"Short Line", header + "q1 a - >\n", 6, "expected 6 symbols"},
		{"Long Line", header + "q1 a - > a q2 q2\n", 6, "too many symbols"},
		{"Unknown From", header + "q9 a - > a q2\n", 6, "state 'q9' not in list of states"},
		{"Unknown To", header + "q1 a - > a q9\n", 6, "state 'q9' not in list of states"},
		{"Input Not In Alphabet", header + "q1 c - > a q2\n", 6, "not in input alphabet"},
		{"Pop Not In Alphabet", header + "q1 a b > a q2\n", 6, "not in stack alphabet"},
		{"Push Not In Alphabet", header + "q1 a - > b q2\n", 6, "not in stack alphabet"},
		{"Multi Char Input", header + "q1 ab - > a q2\n", 6, "input letter must be a single character"},
		{"Multi Char Push", header + "q1 a - > aa q2\n", 6, "pushed letter must be a single character"},
		{"Missing Separator", header + "q1 a - = a q2\n", 6, "expected > as 4th symbol"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := text.Parse(tt.src)
			require.Error(t, err)

			var fe *text.FormatError
			require.True(t, errors.As(err, &fe), "expected *FormatError, got %T", err)
			assert.Equal(t, tt.line, fe.Line)
			assert.Contains(t, fe.Error(), tt.contains)
		})
	}
}

func TestFormatError_Message(t *testing.T) {
	assert.Equal(t, "line 3: boom", (&text.FormatError{Line: 3, Msg: "boom"}).Error())
	assert.Equal(t, "boom", (&text.FormatError{Msg: "boom"}).Error())
}
