package domain

// TransitionSpec is a transition as supplied by a loader, before
// its state names are checked.
type TransitionSpec struct {
	From string `json:"from" yaml:"from"`
	Read string `json:"read,omitempty" yaml:"read,omitempty"`
	Pop  string `json:"pop,omitempty" yaml:"pop,omitempty"`
	To   string `json:"to" yaml:"to"`
	Push string `json:"push,omitempty" yaml:"push,omitempty"`
}

// Definition is the raw description of an automaton produced by a loader.
// Order is preserved everywhere: transitions are tried in the order given,
// which fixes branch labels.
type Definition struct {
	Name          string           `json:"name,omitempty" yaml:"name,omitempty"`
	States        []string         `json:"states" yaml:"states"`
	Start         string           `json:"start" yaml:"start"`
	Accept        []string         `json:"accept" yaml:"accept"`
	InputAlphabet string           `json:"input_alphabet" yaml:"input_alphabet"`
	StackAlphabet string           `json:"stack_alphabet" yaml:"stack_alphabet"`
	Transitions   []TransitionSpec `json:"transitions" yaml:"transitions"`
}

// IsAccept reports whether name is listed as an accept state.
func (d *Definition) IsAccept(name string) bool {
	for _, a := range d.Accept {
		if a == name {
			return true
		}
	}
	return false
}
