package pushdown

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/aretw0/pushdown/internal/runtime"
	"github.com/aretw0/pushdown/pkg/adapters/text"
	"github.com/aretw0/pushdown/pkg/adapters/yaml"
	"github.com/aretw0/pushdown/pkg/domain"
	"github.com/aretw0/pushdown/pkg/ports"
)

// ErrUnsupportedFormat is returned by LoadFile for unknown file extensions.
var ErrUnsupportedFormat = errors.New("unsupported definition format")

// Result is the outcome of a search that did not run out of steps.
type Result = runtime.Result

// Machine is the high-level entry point of the library.
// It wraps a validated automaton together with default run options.
// A Machine is safe for concurrent use.
type Machine struct {
	automaton   *runtime.Automaton
	def         *domain.Definition
	run         runtime.RunOptions
	logger      *slog.Logger
	fingerprint string
}

// Option defines a functional option for configuring the Machine.
type Option func(*Machine)

// WithStepLimit caps the number of configurations a run may examine.
// Zero or negative means unbounded.
func WithStepLimit(limit int) Option {
	return func(m *Machine) {
		m.run.StepLimit = limit
	}
}

// WithHooks registers the search observers.
func WithHooks(hooks domain.SearchHooks) Option {
	return func(m *Machine) {
		m.run.Hooks = hooks
	}
}

// WithShowAll enables delivery of every visited configuration to OnVisit.
func WithShowAll(enabled bool) Option {
	return func(m *Machine) {
		m.run.ShowAllTransitions = enabled
	}
}

// WithShowAcceptPath enables delivery of the accepting path to OnAccept.
func WithShowAcceptPath(enabled bool) Option {
	return func(m *Machine) {
		m.run.ShowAcceptPath = enabled
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Machine) {
		m.logger = logger
	}
}

// New validates def and builds a Machine.
// Definition problems are reported together as a *domain.AggregateError.
func New(def *domain.Definition, opts ...Option) (*Machine, error) {
	if def == nil {
		return nil, fmt.Errorf("definition is required")
	}

	m := &Machine{def: cloneDefinition(def)}
	for _, opt := range opts {
		opt(m)
	}

	// Ensure logger is initialized
	if m.logger == nil {
		m.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if m.def.Name != "" {
		m.logger = m.logger.With("automaton", m.def.Name)
	}

	automaton, err := runtime.New(m.def, runtime.WithLogger(m.logger))
	if err != nil {
		return nil, err
	}
	m.automaton = automaton

	fp, err := fingerprint(m.def)
	if err != nil {
		return nil, err
	}
	m.fingerprint = fp

	return m, nil
}

// LoadFile reads a definition, choosing the format by extension
// (.pda and .txt for the text format, .yaml, .yml and .json for YAML),
// and builds a Machine. An unnamed definition takes the file's base name.
func LoadFile(path string, opts ...Option) (*Machine, error) {
	def, err := LoadDefinition(path)
	if err != nil {
		return nil, err
	}
	return New(def, opts...)
}

// LoadDefinition reads a definition file without building the automaton.
func LoadDefinition(path string) (*domain.Definition, error) {
	loader, err := loaderFor(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open definition: %w", err)
	}
	defer f.Close()

	def, err := loader.Load(f)
	if err != nil {
		return nil, err
	}
	if def.Name == "" {
		def.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return def, nil
}

func loaderFor(path string) (ports.DefinitionLoader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pda", ".txt":
		return text.New(), nil
	case ".yaml", ".yml", ".json":
		return yaml.New(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// With returns a copy of the Machine with opts applied on top of its
// current run options. The automaton itself is shared.
func (m *Machine) With(opts ...Option) *Machine {
	clone := *m
	for _, opt := range opts {
		opt(&clone)
	}
	return &clone
}

// Accepts reports whether the automaton accepts input.
// It fails only when the step limit is reached, with *domain.StepBudgetExceededError.
func (m *Machine) Accepts(input string) (bool, error) {
	return m.automaton.Accepts(input, m.run)
}

// Run searches for an accepting branch and reports how it went.
func (m *Machine) Run(input string) (*Result, error) {
	return m.automaton.Run(input, m.run)
}

// Name returns the definition name.
func (m *Machine) Name() string {
	return m.def.Name
}

// StepLimit returns the configured step limit.
func (m *Machine) StepLimit() int {
	return m.run.StepLimit
}

// Definition returns a copy of the definition the Machine was built from.
func (m *Machine) Definition() *domain.Definition {
	return cloneDefinition(m.def)
}

// Fingerprint identifies the automaton's behaviour: two definitions that
// differ only by name share a fingerprint.
func (m *Machine) Fingerprint() string {
	return m.fingerprint
}

func fingerprint(def *domain.Definition) (string, error) {
	canonical := *def
	canonical.Name = ""
	data, err := json.Marshal(canonical)
	if err != nil {
		return "", fmt.Errorf("failed to fingerprint definition: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

func cloneDefinition(def *domain.Definition) *domain.Definition {
	c := *def
	c.States = append([]string(nil), def.States...)
	c.Accept = append([]string(nil), def.Accept...)
	c.Transitions = append([]domain.TransitionSpec(nil), def.Transitions...)
	return &c
}
