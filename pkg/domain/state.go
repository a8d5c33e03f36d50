package domain

import "regexp"

var stateNamePattern = regexp.MustCompile(`^[_A-Za-z][_$0-9A-Za-z]*$`)

// State identifies an automaton state by name.
// Two states with the same name are the same state.
type State string

// NewState validates name and returns it as a State.
func NewState(name string) (State, error) {
	if !IsValidStateName(name) {
		return "", &DefinitionError{Kind: ErrInvalidName, Subject: name}
	}
	return State(name), nil
}

// IsValidStateName reports whether name matches [_A-Za-z][_$0-9A-Za-z]*.
func IsValidStateName(name string) bool {
	return stateNamePattern.MatchString(name)
}

func (s State) String() string {
	return string(s)
}
