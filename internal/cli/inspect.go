package cli

import (
	"fmt"
	"io"

	"github.com/aretw0/pushdown/internal/presentation/tui"
	"github.com/aretw0/pushdown/internal/validator"
)

// Validate loads the definition at path, reports it valid and lists lint
// warnings. Warnings never change the exit code.
func Validate(path string, stdout io.Writer) error {
	m, err := LoadMachine(path, NewLogger(io.Discard, false))
	if err != nil {
		return err
	}

	def := m.Definition()
	fmt.Fprintf(stdout, "Definition is valid! ✅ (%d states, %d transitions)\n", len(def.States), len(def.Transitions))
	for _, w := range validator.Lint(def) {
		fmt.Fprintf(stdout, "  warning: %s\n", w)
	}
	return nil
}

// Describe renders a markdown summary of the definition at path.
// Without color the markdown is rendered in the plain style.
func Describe(path string, stdout io.Writer, color bool) error {
	m, err := LoadMachine(path, NewLogger(io.Discard, false))
	if err != nil {
		return err
	}

	render, err := tui.NewPlainRenderer()
	if color {
		render, err = tui.NewRenderer(0)
	}
	if err != nil {
		return fmt.Errorf("failed to create renderer: %w", err)
	}

	out, err := render(tui.Describe(m.Definition()))
	if err != nil {
		return fmt.Errorf("failed to render description: %w", err)
	}
	_, err = io.WriteString(stdout, out)
	return err
}
