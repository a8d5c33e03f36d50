package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/pushdown/pkg/domain"
)

// GenerateMermaid produces a Mermaid state diagram for the definition.
// The start state is entered from [*] and accept states exit to [*].
// Parallel transitions share one arrow with labels joined by <br/>.
// It also applies overlay styles (Visited/Current) if provided.
func GenerateMermaid(def *domain.Definition, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("stateDiagram-v2\n")

	// Names with characters Mermaid rejects get an alias
	for _, s := range def.States {
		if safe := sanitizeMermaidID(s); safe != s {
			sb.WriteString(fmt.Sprintf("    state \"%s\" as %s\n", s, safe))
		}
	}

	sb.WriteString(fmt.Sprintf("    [*] --> %s\n", sanitizeMermaidID(def.Start)))
	for _, e := range groupEdges(def, mermaidLabel) {
		sb.WriteString(fmt.Sprintf("    %s --> %s : %s\n", sanitizeMermaidID(e.from), sanitizeMermaidID(e.to), strings.Join(e.labels, "<br/>")))
	}
	for _, s := range def.Accept {
		sb.WriteString(fmt.Sprintf("    %s --> [*]\n", sanitizeMermaidID(s)))
	}

	// Apply Overlay Styles
	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000\n")

		seen := make(map[string]bool)
		for _, s := range overlay.VisitedStates {
			safe := sanitizeMermaidID(s)
			if safe == "" || seen[safe] || s == overlay.CurrentState {
				continue
			}
			seen[safe] = true
			sb.WriteString(fmt.Sprintf("    class %s visited\n", safe))
		}
		if overlay.CurrentState != "" {
			sb.WriteString(fmt.Sprintf("    class %s current\n", sanitizeMermaidID(overlay.CurrentState)))
		}
	}

	return sb.String()
}

func mermaidLabel(t domain.TransitionSpec) string {
	label := fmt.Sprintf("%s,%s→%s", mermaidSymbol(t.Read), mermaidSymbol(t.Pop), mermaidSymbol(t.Push))
	// ';' ends a Mermaid statement
	return strings.ReplaceAll(label, ";", "#59;")
}

func mermaidSymbol(s string) string {
	if s == "" {
		return domain.Epsilon
	}
	return s
}

func sanitizeMermaidID(id string) string {
	return strings.ReplaceAll(id, "$", "_")
}
