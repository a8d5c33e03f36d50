package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/pushdown/pkg/domain"
)

// GenerateDot produces a Graphviz DOT digraph for the definition.
// Accept states are drawn as double circles and the start state receives an
// arrow from an invisible point. Parallel transitions share one arrow whose
// labels are stacked, each written "read,pop&rarr;push".
func GenerateDot(def *domain.Definition, overlay *Overlay) string {
	var sb strings.Builder

	name := def.Name
	if name == "" {
		name = "pda"
	}
	sb.WriteString(fmt.Sprintf("digraph %q {\n", name))
	sb.WriteString("  rankdir=LR\n")
	sb.WriteString("  __start [shape=point, style=invis]\n")

	visited := visitedSet(overlay)
	for _, s := range def.States {
		attrs := []string{"shape=circle"}
		if def.IsAccept(s) {
			attrs[0] = "shape=doublecircle"
		}
		if visited[s] {
			attrs = append(attrs, "style=filled", `fillcolor="#e1f5fe"`)
		}
		if overlay != nil && overlay.CurrentState == s {
			attrs = append(attrs, "penwidth=3")
		}
		sb.WriteString(fmt.Sprintf("  %s [%s]\n", dotID(s), strings.Join(attrs, ", ")))
	}

	sb.WriteString(fmt.Sprintf("  __start -> %s\n", dotID(def.Start)))
	for _, e := range groupEdges(def, dotLabel) {
		sb.WriteString(fmt.Sprintf("  %s -> %s [label=<%s>]\n", dotID(e.from), dotID(e.to), strings.Join(e.labels, "<BR/>")))
	}

	sb.WriteString("}\n")
	return sb.String()
}

// dotID quotes names containing '$', which DOT does not allow in bare IDs.
func dotID(name string) string {
	if strings.Contains(name, "$") {
		return `"` + name + `"`
	}
	return name
}

func dotLabel(t domain.TransitionSpec) string {
	return fmt.Sprintf("%s,%s&rarr;%s", dotSymbol(t.Read), dotSymbol(t.Pop), dotSymbol(t.Push))
}

func dotSymbol(s string) string {
	if s == "" {
		return "<I>&epsilon;</I>"
	}
	return strings.ReplaceAll(s, "&", "&amp;")
}
