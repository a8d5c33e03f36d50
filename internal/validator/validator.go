package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/pushdown/pkg/domain"
)

// Warning describes a definition that is valid but probably not what its
// author meant.
type Warning struct {
	Subject string // State or symbol the warning is about
	Message string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s", w.Subject, w.Message)
}

// Lint crawls the state graph from the start state and reports unreachable
// states, accept states that can never be entered and alphabet symbols no
// transition uses. It ignores stack contents, so a reported state is
// certainly unreachable while an unreported one may still be.
// def is expected to have passed domain validation.
func Lint(def *domain.Definition) []Warning {
	next := make(map[string][]string)
	for _, t := range def.Transitions {
		next[t.From] = append(next[t.From], t.To)
	}

	// 1. Crawler
	visited := make(map[string]bool)
	queue := []string{def.Start}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if visited[current] {
			continue
		}
		visited[current] = true

		for _, target := range next[current] {
			if !visited[target] {
				queue = append(queue, target)
			}
		}
	}

	var warnings []Warning
	accept := make(map[string]bool, len(def.Accept))
	for _, a := range def.Accept {
		accept[a] = true
	}

	// 2. Unreachable states
	for _, s := range def.States {
		if visited[s] {
			continue
		}
		msg := "unreachable from start state " + def.Start
		if accept[s] {
			msg = "accept state " + msg
		}
		warnings = append(warnings, Warning{Subject: s, Message: msg})
	}

	// 3. Unused symbols
	var reads, stack strings.Builder
	for _, t := range def.Transitions {
		reads.WriteString(t.Read)
		stack.WriteString(t.Pop)
		stack.WriteString(t.Push)
	}
	for _, r := range distinct(def.InputAlphabet) {
		if !strings.ContainsRune(reads.String(), r) {
			warnings = append(warnings, Warning{Subject: string(r), Message: "input symbol never read by any transition"})
		}
	}
	for _, r := range distinct(def.StackAlphabet) {
		if !strings.ContainsRune(stack.String(), r) {
			warnings = append(warnings, Warning{Subject: string(r), Message: "stack symbol never pushed or popped"})
		}
	}

	if len(def.Accept) == 0 {
		warnings = append(warnings, Warning{Subject: def.Start, Message: "no accept states: every input is rejected"})
	}

	return warnings
}

// distinct returns the symbols of an alphabet once each, in declaration order.
func distinct(alphabet string) []rune {
	seen := make(map[rune]bool, len(alphabet))
	var out []rune
	for _, r := range alphabet {
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	return out
}
