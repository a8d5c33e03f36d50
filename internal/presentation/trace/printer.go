package trace

import (
	"fmt"
	"io"
	"strings"

	"github.com/aretw0/pushdown/pkg/domain"
	"github.com/muesli/termenv"
)

// Printer writes search events in the classic trace format:
//
//	Branch AB: state=q2 stack='$0' input='11' - splits into 2 branches [ABA, ABB]
//
// It is safe to use from a single search only.
type Printer struct {
	w       io.Writer
	profile termenv.Profile
	err     error
}

// NewPrinter creates a printer writing to w. When color is false (or the
// terminal has no colour support) the output is plain text.
func NewPrinter(w io.Writer, color bool) *Printer {
	p := termenv.Ascii
	if color {
		p = termenv.ColorProfile()
	}
	return &Printer{w: w, profile: p}
}

// Hooks adapts the printer to the search observers.
func (p *Printer) Hooks() domain.SearchHooks {
	return domain.SearchHooks{
		OnVisit:  p.Visit,
		OnAccept: p.Accept,
	}
}

// Visit prints one visited configuration and what became of it.
func (p *Printer) Visit(e *domain.VisitEvent) {
	var sb strings.Builder
	if e.Branch != "" {
		sb.WriteString(p.paint("Branch "+e.Branch+": ", "#818cf8"))
	}
	sb.WriteString(e.Config.String())

	switch e.Outcome {
	case domain.OutcomeAccept:
		sb.WriteString(p.paint(" - accept!", "#22c55e"))
	case domain.OutcomeDeadEnd:
		sb.WriteString(p.paint(" - end of branch", "#f87171"))
	case domain.OutcomeSplit:
		sb.WriteString(p.paint(fmt.Sprintf(" - splits into %d branches [%s]", len(e.Branches), strings.Join(e.Branches, ", ")), "#facc15"))
	}
	sb.WriteString("\n")

	p.write(sb.String())
}

// Accept prints the accepting path, one configuration per line, oldest first.
func (p *Printer) Accept(e *domain.AcceptEvent) {
	p.write(FormatPath(e.Path))
}

// Err returns the first write error, if any.
func (p *Printer) Err() error {
	return p.err
}

func (p *Printer) write(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

func (p *Printer) paint(s, hex string) string {
	return p.profile.String(s).Foreground(p.profile.Color(hex)).String()
}

// FormatPath renders a path one snapshot per line.
func FormatPath(path []domain.Snapshot) string {
	var sb strings.Builder
	for _, s := range path {
		sb.WriteString(s.String())
		sb.WriteString("\n")
	}
	return sb.String()
}
