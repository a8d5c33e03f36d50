package tui_test

import (
	"bytes"
	"testing"

	"github.com/aretw0/pushdown/internal/presentation/tui"
	"github.com/aretw0/pushdown/internal/testutils"
	"github.com/aretw0/pushdown/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDescribe(t *testing.T) {
	md := tui.Describe(testutils.ZeroesThenOnesDefinition())

	assert.Contains(t, md, "# zeroes-then-ones\n")
	assert.Contains(t, md, "| **States** | `q1`, `q2`, `q3`, `q4` |")
	assert.Contains(t, md, "| **Accept** | `q1`, `q4` |")
	assert.Contains(t, md, "| **Stack alphabet** | `0`, `$` |")
	assert.Contains(t, md, "## Transitions (5)")
	assert.Contains(t, md, "| 1 | `q1` | ε | ε | `$` | `q2` |")
	assert.Contains(t, md, "| 5 | `q3` | ε | `$` | ε | `q4` |")
}

func TestDescribe_Empty(t *testing.T) {
	md := tui.Describe(&domain.Definition{States: []string{"a"}, Start: "a"})

	assert.Contains(t, md, "# Pushdown automaton")
	assert.Contains(t, md, "| **Accept** | _none_ |")
	assert.Contains(t, md, "| **Input alphabet** | _empty_ |")
	assert.Contains(t, md, "_None: only the start configuration is ever examined._")
}

func TestPlainRenderer(t *testing.T) {
	render, err := tui.NewPlainRenderer()
	require.NoError(t, err)

	out, err := render(tui.Describe(testutils.ZeroesThenOnesDefinition()))
	require.NoError(t, err)
	assert.Contains(t, out, "zeroes-then-ones")
	assert.Contains(t, out, "q3")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	tui.PrintBanner(&buf, "1.2.3\n", false)
	assert.Contains(t, buf.String(), "version 1.2.3\n")
	assert.NotContains(t, buf.String(), "\x1b[")
}
