package dto

// DefinitionDoc is the loose, document-shaped form of an automaton definition.
// It uses "mapstructure" tags so YAML and JSON documents decode through the
// same hooks. States and Accept may be written as lists or as one
// space-separated string; transitions as maps or as compact
// "from read pop > push to" lines.
type DefinitionDoc struct {
	Name          string          `json:"name" mapstructure:"name"`
	States        []string        `json:"states" mapstructure:"states"`
	Start         string          `json:"start" mapstructure:"start"`
	Accept        []string        `json:"accept" mapstructure:"accept"`
	InputAlphabet string          `json:"input_alphabet" mapstructure:"input_alphabet"`
	StackAlphabet string          `json:"stack_alphabet" mapstructure:"stack_alphabet"`
	Transitions   []TransitionDoc `json:"transitions" mapstructure:"transitions"`
}

// TransitionDoc is a single rule. Empty or "-" fields mean epsilon.
type TransitionDoc struct {
	From string `json:"from" mapstructure:"from"`
	Read string `json:"read" mapstructure:"read"`
	Pop  string `json:"pop" mapstructure:"pop"`
	To   string `json:"to" mapstructure:"to"`
	Push string `json:"push" mapstructure:"push"`
}
