package domain

import (
	"sort"
	"strings"
	"unicode"
)

// AlphabetSpecialChars lists the punctuation accepted as alphabet symbols
// besides letters and digits.
const AlphabetSpecialChars = "$_.+!*'(),;/?:@=&"

// Alphabet is a set of single-rune symbols.
type Alphabet map[rune]struct{}

// NewAlphabet builds an alphabet from every rune in symbols.
// Duplicated runes are collapsed.
func NewAlphabet(symbols string) (Alphabet, error) {
	a := make(Alphabet, len(symbols))
	for _, r := range symbols {
		if !IsValidSymbol(r) {
			return nil, &DefinitionError{Kind: ErrInvalidSymbol, Subject: string(r)}
		}
		a[r] = struct{}{}
	}
	return a, nil
}

// IsValidSymbol reports whether r may appear in an alphabet.
func IsValidSymbol(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || strings.ContainsRune(AlphabetSpecialChars, r)
}

// Contains reports whether every rune of s belongs to the alphabet.
// The empty string (epsilon) is always contained.
func (a Alphabet) Contains(s string) bool {
	for _, r := range s {
		if _, ok := a[r]; !ok {
			return false
		}
	}
	return true
}

// String returns the symbols in sorted order.
func (a Alphabet) String() string {
	runes := make([]rune, 0, len(a))
	for r := range a {
		runes = append(runes, r)
	}
	sort.Slice(runes, func(i, j int) bool { return runes[i] < runes[j] })
	return string(runes)
}
