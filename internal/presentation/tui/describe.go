package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/pushdown/pkg/domain"
)

// Describe summarises a definition as markdown: its states, alphabets and
// transition table in the order the search tries them.
func Describe(def *domain.Definition) string {
	var sb strings.Builder

	name := def.Name
	if name == "" {
		name = "Pushdown automaton"
	}
	sb.WriteString(fmt.Sprintf("# %s\n\n", name))

	sb.WriteString("| | |\n|---|---|\n")
	sb.WriteString(fmt.Sprintf("| **States** | %s |\n", codeList(def.States)))
	sb.WriteString(fmt.Sprintf("| **Start** | `%s` |\n", def.Start))
	sb.WriteString(fmt.Sprintf("| **Accept** | %s |\n", codeList(def.Accept)))
	sb.WriteString(fmt.Sprintf("| **Input alphabet** | %s |\n", symbols(def.InputAlphabet)))
	sb.WriteString(fmt.Sprintf("| **Stack alphabet** | %s |\n", symbols(def.StackAlphabet)))

	sb.WriteString(fmt.Sprintf("\n## Transitions (%d)\n\n", len(def.Transitions)))
	if len(def.Transitions) == 0 {
		sb.WriteString("_None: only the start configuration is ever examined._\n")
		return sb.String()
	}

	sb.WriteString("| # | From | Read | Pop | Push | To |\n")
	sb.WriteString("|---|---|---|---|---|---|\n")
	for i, t := range def.Transitions {
		sb.WriteString(fmt.Sprintf("| %d | `%s` | %s | %s | %s | `%s` |\n",
			i+1, t.From, cell(t.Read), cell(t.Pop), cell(t.Push), t.To))
	}
	return sb.String()
}

func codeList(items []string) string {
	if len(items) == 0 {
		return "_none_"
	}
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = "`" + s + "`"
	}
	return strings.Join(quoted, ", ")
}

func symbols(alphabet string) string {
	if alphabet == "" {
		return "_empty_"
	}
	return codeList(strings.Split(alphabet, ""))
}

func cell(symbol string) string {
	if symbol == "" {
		return domain.Epsilon
	}
	// '|' would split the table cell
	return "`" + strings.ReplaceAll(symbol, "|", `\|`) + "`"
}
