package yaml

import (
	"fmt"
	"io"
	"reflect"
	"strings"

	"github.com/aretw0/pushdown/internal/dto"
	"github.com/aretw0/pushdown/pkg/domain"
	"github.com/mitchellh/mapstructure"
	goyaml "gopkg.in/yaml.v3"
)

// Loader implements ports.DefinitionLoader for YAML documents:
//
//	name: zeroes-then-ones
//	states: [q1, q2, q3, q4]
//	start: q1
//	accept: q1 q4
//	input_alphabet: "01"
//	stack_alphabet: "0$"
//	transitions:
//	  - {from: q1, to: q2, push: $}
//	  - q2 0 - > 0 q2
//
// Scalars are taken verbatim: an unquoted 01 is the two-symbol alphabet
// "01", never the number 1.
type Loader struct{}

// New creates a YAML loader.
func New() *Loader {
	return &Loader{}
}

// Parse decodes an in-memory document.
func Parse(data []byte) (*domain.Definition, error) {
	return New().decode(data)
}

// Load reads and decodes a whole document.
func (l *Loader) Load(r io.Reader) (*domain.Definition, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read definition: %w", err)
	}
	return l.decode(data)
}

func (l *Loader) decode(data []byte) (*domain.Definition, error) {
	var root goyaml.Node
	if err := goyaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("failed to parse definition: %w", err)
	}
	if root.Kind == goyaml.DocumentNode && len(root.Content) > 0 {
		root = *root.Content[0]
	}
	if root.Kind == 0 || (root.Kind == goyaml.MappingNode && len(root.Content) == 0) {
		return nil, fmt.Errorf("failed to parse definition: document is empty")
	}
	if root.Kind != goyaml.MappingNode {
		return nil, fmt.Errorf("failed to parse definition: line %d: document must be a mapping", root.Line)
	}
	raw, err := literal(&root)
	if err != nil {
		return nil, fmt.Errorf("failed to parse definition: %w", err)
	}

	var doc dto.DefinitionDoc
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			splitFieldsHook,
			transitionLineHook,
		),
		ErrorUnused: true,
		Result:      &doc,
	})
	if err != nil {
		return nil, err
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode definition: %w", err)
	}

	return toDefinition(&doc)
}

// literal converts a node tree into maps, slices and strings. Every scalar
// keeps its source text, so YAML never reinterprets 01 as 1 or 0012 as octal.
// Null scalars become nil.
func literal(n *goyaml.Node) (interface{}, error) {
	switch n.Kind {
	case goyaml.AliasNode:
		return literal(n.Alias)
	case goyaml.ScalarNode:
		if n.Tag == "!!null" {
			return nil, nil
		}
		return n.Value, nil
	case goyaml.SequenceNode:
		out := make([]interface{}, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := literal(c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return out, nil
	case goyaml.MappingNode:
		out := make(map[string]interface{}, len(n.Content)/2)
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if k.Kind != goyaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping keys must be scalars", k.Line)
			}
			if _, dup := out[k.Value]; dup {
				return nil, fmt.Errorf("line %d: key %q already defined", k.Line, k.Value)
			}
			val, err := literal(v)
			if err != nil {
				return nil, err
			}
			out[k.Value] = val
		}
		return out, nil
	}
	return nil, fmt.Errorf("line %d: unsupported node", n.Line)
}

var (
	stringSliceType = reflect.TypeOf([]string{})
	transitionType  = reflect.TypeOf(dto.TransitionDoc{})
)

// splitFieldsHook lets "q1 q2 q3" stand for [q1, q2, q3].
func splitFieldsHook(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
	if f.Kind() != reflect.String || t != stringSliceType {
		return data, nil
	}
	return strings.Fields(data.(string)), nil
}

// transitionLineHook accepts the compact "from read pop > push to" form.
func transitionLineHook(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
	if f.Kind() != reflect.String || t != transitionType {
		return data, nil
	}
	line := data.(string)
	tokens := strings.Fields(line)
	if len(tokens) != 6 || tokens[3] != ">" {
		return nil, fmt.Errorf("transition '%s' is not of the form 'from read pop > push to'", line)
	}
	return map[string]interface{}{
		"from": tokens[0],
		"read": tokens[1],
		"pop":  tokens[2],
		"push": tokens[4],
		"to":   tokens[5],
	}, nil
}

// toDefinition performs structural checks only; names and alphabets are
// checked when the automaton is built.
func toDefinition(doc *dto.DefinitionDoc) (*domain.Definition, error) {
	var errs []error

	if len(doc.States) == 0 {
		errs = append(errs, fmt.Errorf("states: at least one state is required"))
	}
	if doc.Start == "" {
		errs = append(errs, fmt.Errorf("start: a start state is required"))
	}

	def := &domain.Definition{
		Name:          doc.Name,
		States:        doc.States,
		Start:         doc.Start,
		Accept:        doc.Accept,
		InputAlphabet: doc.InputAlphabet,
		StackAlphabet: doc.StackAlphabet,
	}
	if def.Accept == nil {
		def.Accept = []string{}
	}

	for i, t := range doc.Transitions {
		if t.From == "" || t.To == "" {
			errs = append(errs, &domain.DefinitionError{
				Kind:    domain.ErrMalformedTransition,
				Subject: fmt.Sprintf("transition %d", i+1),
				Detail:  "from and to are required",
			})
			continue
		}
		def.Transitions = append(def.Transitions, domain.TransitionSpec{
			From: t.From,
			Read: epsilon(t.Read),
			Pop:  epsilon(t.Pop),
			To:   t.To,
			Push: epsilon(t.Push),
		})
	}

	if len(errs) > 0 {
		return nil, &domain.AggregateError{Errors: errs}
	}
	return def, nil
}

func epsilon(s string) string {
	if s == "-" || s == domain.Epsilon {
		return ""
	}
	return s
}
