package text

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/aretw0/pushdown/pkg/domain"
)

const (
	// Separator must be the fourth token of every transition line.
	Separator = ">"
	// EpsilonToken stands for the empty string in transition lines.
	EpsilonToken = "-"
	// CommentPrefix starts a comment that runs to the end of the line.
	CommentPrefix = "#"
)

// FormatError reports a syntax or consistency problem in a definition file.
type FormatError struct {
	Line int // 1-based; 0 when the problem is not tied to a line
	Msg  string
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Msg)
	}
	return e.Msg
}

// Loader implements ports.DefinitionLoader for the line-oriented text format:
//
//	States: q1 q2
//	StartState: q1
//	AcceptStates: q2
//	InputAlphabet: ab
//	StackAlphabet: a$
//	q1 a - > a q2
//
// Transition lines read "from input pop > push to", with "-" for epsilon.
type Loader struct{}

// New creates a text loader.
func New() *Loader {
	return &Loader{}
}

// Parse is a convenience wrapper around Load for in-memory sources.
func Parse(src string) (*domain.Definition, error) {
	return New().Load(strings.NewReader(src))
}

// Load reads a whole definition. Headers must come first and in order.
func (l *Loader) Load(r io.Reader) (*domain.Definition, error) {
	p := &parser{scanner: bufio.NewScanner(r)}

	states, err := p.header("States")
	if err != nil {
		return nil, err
	}
	start, err := p.singleHeader("StartState")
	if err != nil {
		return nil, err
	}
	accept, err := p.header("AcceptStates")
	if err != nil {
		return nil, err
	}
	inputAlphabet, err := p.singleHeader("InputAlphabet")
	if err != nil {
		return nil, err
	}
	stackAlphabet, err := p.singleHeader("StackAlphabet")
	if err != nil {
		return nil, err
	}

	def := &domain.Definition{
		States:        states,
		Start:         start,
		Accept:        accept,
		InputAlphabet: inputAlphabet,
		StackAlphabet: stackAlphabet,
	}

	declared := make(map[string]bool, len(states))
	for _, name := range states {
		if !domain.IsValidStateName(name) {
			return nil, &FormatError{Msg: fmt.Sprintf("invalid state name '%s'", name)}
		}
		declared[name] = true
	}
	if !declared[start] {
		return nil, &FormatError{Msg: fmt.Sprintf("start state '%s' not in list of states", start)}
	}
	for _, name := range accept {
		if !declared[name] {
			return nil, &FormatError{Msg: fmt.Sprintf("accept state '%s' not in list of states", name)}
		}
	}

	inputSet, err := alphabet(inputAlphabet)
	if err != nil {
		return nil, err
	}
	stackSet, err := alphabet(stackAlphabet)
	if err != nil {
		return nil, err
	}

	for {
		lineNo, line, ok := p.next()
		if !ok {
			break
		}
		t, err := transition(line, declared, inputSet, stackSet)
		if err != nil {
			return nil, &FormatError{Line: lineNo, Msg: err.Error()}
		}
		def.Transitions = append(def.Transitions, t)
	}

	if err := p.scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read definition: %w", err)
	}

	return def, nil
}

type parser struct {
	scanner *bufio.Scanner
	line    int
}

// next returns the next line with content, comments and surrounding space removed.
func (p *parser) next() (int, string, bool) {
	for p.scanner.Scan() {
		p.line++
		line := p.scanner.Text()
		if i := strings.Index(line, CommentPrefix); i != -1 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line != "" {
			return p.line, line, true
		}
	}
	return p.line, "", false
}

func (p *parser) header(title string) ([]string, error) {
	lineNo, line, ok := p.next()
	if !ok {
		return nil, &FormatError{Msg: fmt.Sprintf("expected %s next, but reached end of file", title)}
	}
	tokens := strings.Fields(line)
	if tokens[0] != title+":" {
		return nil, &FormatError{Line: lineNo, Msg: fmt.Sprintf("expected %s next, but found %s", title, tokens[0])}
	}
	return tokens[1:], nil
}

func (p *parser) singleHeader(title string) (string, error) {
	tokens, err := p.header(title)
	if err != nil {
		return "", err
	}
	if len(tokens) != 1 {
		return "", &FormatError{Line: p.line, Msg: fmt.Sprintf("expected one token for %s but found %d", title, len(tokens))}
	}
	return tokens[0], nil
}

func alphabet(symbols string) (domain.Alphabet, error) {
	for _, r := range symbols {
		if !domain.IsValidSymbol(r) {
			return nil, &FormatError{Msg: fmt.Sprintf("invalid alphabet character '%c'", r)}
		}
	}
	return domain.NewAlphabet(symbols)
}

func transition(line string, declared map[string]bool, input, stack domain.Alphabet) (domain.TransitionSpec, error) {
	var t domain.TransitionSpec

	tokens := strings.Fields(line)
	if len(tokens) < 6 {
		return t, fmt.Errorf("expected 6 symbols on line '%s' but found %d", line, len(tokens))
	}
	if len(tokens) > 6 {
		return t, fmt.Errorf("too many symbols on line '%s'", line)
	}

	// 1. from state
	t.From = tokens[0]
	if !declared[t.From] {
		return t, fmt.Errorf("state '%s' not in list of states", t.From)
	}

	// 2. symbol read from input
	t.Read = desentinel(tokens[1])
	if !input.Contains(t.Read) {
		return t, fmt.Errorf("input '%s' contains characters not in input alphabet", t.Read)
	}
	if err := single(t.Read, "input letter"); err != nil {
		return t, err
	}

	// 3. symbol popped from the stack
	t.Pop = desentinel(tokens[2])
	if !stack.Contains(t.Pop) {
		return t, fmt.Errorf("popped string '%s' contains characters not in stack alphabet", t.Pop)
	}
	if err := single(t.Pop, "popped letter"); err != nil {
		return t, err
	}

	// 4. separator
	if tokens[3] != Separator {
		return t, fmt.Errorf("expected %s as 4th symbol on line '%s'", Separator, line)
	}

	// 5. symbol pushed onto the stack
	t.Push = desentinel(tokens[4])
	if !stack.Contains(t.Push) {
		return t, fmt.Errorf("pushed string '%s' contains characters not in stack alphabet", t.Push)
	}
	if err := single(t.Push, "pushed letter"); err != nil {
		return t, err
	}

	// 6. target state
	t.To = tokens[5]
	if !declared[t.To] {
		return t, fmt.Errorf("state '%s' not in list of states", t.To)
	}

	return t, nil
}

// single enforces the textbook limit of one symbol per read, pop or push.
func single(s, what string) error {
	if utf8.RuneCountInString(s) > 1 {
		return fmt.Errorf("%s must be a single character, not '%s'", what, s)
	}
	return nil
}

func desentinel(token string) string {
	if token == EpsilonToken {
		return ""
	}
	return token
}
