package domain

import "fmt"

// Transition is a rule (From, Read, Pop) -> (To, Push).
// Read, Pop and Push hold at most one symbol; the empty string is epsilon.
type Transition struct {
	From State  `json:"from" yaml:"from"`
	Read string `json:"read,omitempty" yaml:"read,omitempty"`
	Pop  string `json:"pop,omitempty" yaml:"pop,omitempty"`
	To   State  `json:"to" yaml:"to"`
	Push string `json:"push,omitempty" yaml:"push,omitempty"`
}

// Epsilon is the printable form of the empty string.
const Epsilon = "ε"

func (t Transition) String() string {
	return fmt.Sprintf("%s %s,%s -> %s %s", t.From, printable(t.Read), printable(t.Pop), printable(t.Push), t.To)
}

// Label renders the edge label "read,pop→push" used by diagrams.
func (t Transition) Label() string {
	return fmt.Sprintf("%s,%s→%s", printable(t.Read), printable(t.Pop), printable(t.Push))
}

func printable(s string) string {
	if s == "" {
		return Epsilon
	}
	return s
}
