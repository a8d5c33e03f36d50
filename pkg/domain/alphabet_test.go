package domain_test

import (
	"testing"

	"github.com/aretw0/pushdown/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAlphabet(t *testing.T) {
	t.Run("Letters Digits And Punctuation", func(t *testing.T) {
		a, err := domain.NewAlphabet("ab01" + domain.AlphabetSpecialChars)
		require.NoError(t, err)
		assert.True(t, a.Contains("a"))
		assert.True(t, a.Contains("$"))
		assert.True(t, a.Contains("&"))
		assert.False(t, a.Contains("c"))
	})

	t.Run("Duplicates Collapse", func(t *testing.T) {
		a, err := domain.NewAlphabet("aab")
		require.NoError(t, err)
		assert.Len(t, a, 2)
		assert.Equal(t, "ab", a.String())
	})

	t.Run("Unicode Letters Allowed", func(t *testing.T) {
		a, err := domain.NewAlphabet("λé")
		require.NoError(t, err)
		assert.True(t, a.Contains("λ"))
	})

	for _, bad := range []string{" ", "#", "-", ">", "a b", "%"} {
		t.Run("Rejects "+bad, func(t *testing.T) {
			_, err := domain.NewAlphabet(bad)
			assert.ErrorIs(t, err, domain.ErrInvalidSymbol)
		})
	}
}

func TestAlphabet_ContainsEpsilon(t *testing.T) {
	a, err := domain.NewAlphabet("")
	require.NoError(t, err)
	assert.True(t, a.Contains(""))
	assert.False(t, a.Contains("a"))
}
