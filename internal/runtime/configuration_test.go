package runtime

import (
	"testing"

	"github.com/aretw0/pushdown/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfiguration_Next(t *testing.T) {
	c := Configuration{id: 3, prev: 1, state: "p", input: "abc", cursor: 1, stack: "$xy"}

	assert.Equal(t, "bc", c.Remaining())
	assert.True(t, c.Reads("b"))
	assert.True(t, c.Reads(""))
	assert.False(t, c.Reads("c"))
	assert.True(t, c.TopIs("y"))
	assert.True(t, c.TopIs("yx"), "multi-symbol pops compare from the top outward")
	assert.False(t, c.TopIs("xy"))
	assert.True(t, c.TopIs(""))

	n := c.next(domain.Transition{From: "p", Read: "b", Pop: "y", To: "r", Push: "z"})

	assert.Equal(t, domain.State("r"), n.State())
	assert.Equal(t, 2, n.Cursor())
	assert.Equal(t, "$xz", n.Stack())
	assert.Equal(t, 3, n.Prev())
	assert.Equal(t, noConfiguration, n.ID())

	// The source is untouched.
	assert.Equal(t, "$xy", c.Stack())
	assert.Equal(t, 1, c.Cursor())
}

func TestConfiguration_MultiByteSymbols(t *testing.T) {
	c := initialConfiguration("p", "λμ")
	n := c.next(domain.Transition{Read: "λ", To: "p", Push: "é"})

	assert.Equal(t, "μ", n.Remaining())
	assert.True(t, n.TopIs("é"))
	assert.False(t, n.AtEnd())

	n = n.next(domain.Transition{Read: "μ", Pop: "é", To: "p"})
	assert.True(t, n.AtEnd())
	assert.Equal(t, "", n.Stack())
}

func TestConfiguration_Snapshot(t *testing.T) {
	c := Configuration{state: "q2", input: "0011", cursor: 2, stack: "$00"}
	assert.Equal(t, "state=q2 stack='$00' input='11'", c.String())
}

func TestHistory_Path(t *testing.T) {
	var h history
	root := initialConfiguration("a", "xy")
	h.push(root, "")

	// Two children of the root, then a grandchild of the second one.
	first := h.configs[0].next(domain.Transition{Read: "x", To: "b"})
	second := h.configs[0].next(domain.Transition{To: "c"})
	h.push(first, "A")
	h.push(second, "B")
	grandchild := h.configs[2].next(domain.Transition{Read: "x", To: "d"})
	h.push(grandchild, "B")

	path := h.path(3)
	require.Len(t, path, 3)
	assert.Equal(t, domain.State("a"), path[0].State())
	assert.Equal(t, domain.State("c"), path[1].State())
	assert.Equal(t, domain.State("d"), path[2].State())
	assert.Equal(t, []string{"", "A", "B", "B"}, h.labels)

	assert.Len(t, h.path(0), 1)
}
