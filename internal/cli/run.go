package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/pushdown"
	"github.com/aretw0/pushdown/internal/presentation/graph"
	"github.com/aretw0/pushdown/internal/presentation/trace"
	"github.com/aretw0/pushdown/pkg/domain"
)

// RunOptions configures a single evaluation from the command line.
type RunOptions struct {
	Path           string
	Input          string
	StepLimit      int
	HasStepLimit   bool // An explicit StepLimit of 0 gives up before the first step
	ShowAll        bool
	ShowAcceptPath bool
	Debug          bool
	Color          bool
	Stdout         io.Writer
	Stderr         io.Writer
}

// Run evaluates one input and prints true or false, preceded by the
// requested traces.
func Run(opts RunOptions) error {
	logger := NewLogger(opts.Stderr, opts.Debug)
	printer := trace.NewPrinter(opts.Stdout, opts.Color)

	m, err := LoadMachine(opts.Path, logger,
		pushdown.WithStepLimit(opts.StepLimit),
		pushdown.WithShowAll(opts.ShowAll),
		pushdown.WithShowAcceptPath(opts.ShowAcceptPath),
		pushdown.WithHooks(printer.Hooks()),
	)
	if err != nil {
		return err
	}
	if err := zeroBudget(opts.StepLimit, opts.HasStepLimit); err != nil {
		return err
	}

	accepted, err := m.Accepts(opts.Input)
	if werr := printer.Err(); werr != nil {
		return fmt.Errorf("failed to write trace: %w", werr)
	}
	var budget *domain.StepBudgetExceededError
	if errors.As(err, &budget) {
		return GaveUpError(budget)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(opts.Stdout, accepted)
	return err
}

// GraphOptions configures a diagram export.
type GraphOptions struct {
	Path      string
	Format    string // "mermaid" or "dot"
	Input     string // Highlights the accepting path when HasInput
	HasInput  bool
	StepLimit    int
	HasStepLimit bool
	Debug        bool
	Stdout       io.Writer
	Stderr       io.Writer
}

// Graph prints the state diagram of a definition.
func Graph(opts GraphOptions) error {
	if opts.Format == "" {
		opts.Format = "mermaid"
	}
	if opts.Format != "mermaid" && opts.Format != "dot" {
		return &ExitError{Code: ExitFailure, Message: fmt.Sprintf("Unknown format %q (want mermaid or dot)", opts.Format)}
	}

	logger := NewLogger(opts.Stderr, opts.Debug)
	m, err := LoadMachine(opts.Path, logger, pushdown.WithStepLimit(opts.StepLimit))
	if err != nil {
		return err
	}

	var overlay *graph.Overlay
	if opts.HasInput {
		if err := zeroBudget(opts.StepLimit, opts.HasStepLimit); err != nil {
			return err
		}
		res, err := m.Run(opts.Input)
		var budget *domain.StepBudgetExceededError
		if errors.As(err, &budget) {
			return GaveUpError(budget)
		}
		if err != nil {
			return err
		}
		if !res.Accepted {
			fmt.Fprintf(opts.Stderr, "Input %q is rejected; nothing to highlight\n", opts.Input)
		}
		overlay = graph.OverlayFromPath(res.Path)
	}

	def := m.Definition()
	out := graph.GenerateMermaid(def, overlay)
	if opts.Format == "dot" {
		out = graph.GenerateDot(def, overlay)
	}
	_, err = io.WriteString(opts.Stdout, out)
	return err
}

// zeroBudget reports the give-up of a search whose limit was explicitly set
// to zero. The engine treats a zero limit as unbounded.
func zeroBudget(limit int, set bool) error {
	if set && limit == 0 {
		return GaveUpError(&domain.StepBudgetExceededError{Limit: 0})
	}
	return nil
}
