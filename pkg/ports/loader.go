package ports

import (
	"io"

	"github.com/aretw0/pushdown/pkg/domain"
)

// DefinitionLoader turns a serialized automaton into a domain.Definition.
// This allows the definition format (text, YAML, ...) to be decoupled from the engine.
type DefinitionLoader interface {
	// Load reads a whole definition from r.
	// It reports syntax problems; consistency is checked again by the engine.
	Load(r io.Reader) (*domain.Definition, error)
}
