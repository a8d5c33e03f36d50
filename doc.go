/*
Package pushdown simulates nondeterministic pushdown automata (PDA).

A definition names a set of states, a start state, accept states, an input
alphabet, a stack alphabet and an ordered list of transitions. Each
transition may read one input symbol, pop one stack symbol and push one
stack symbol; any of the three may be epsilon (empty).

# Concept

Nondeterminism is explored breadth-first. Every configuration (state,
remaining input, stack) that has several applicable transitions splits into
branches, labelled A, B, C... in transition order, so a branch label such as
"ABA" is the sequence of choices that produced it. The input is accepted as
soon as some branch has consumed all of it while sitting in an accept state.
Epsilon cycles can make the search infinite, so callers bound it with a step
limit.

# Usage

Load a definition from a file (text ".pda" or YAML) or build one with the dsl
package, then ask the Machine about inputs:

	package main

	import (
		"fmt"
		"log"

		"github.com/aretw0/pushdown"
	)

	func main() {
		m, err := pushdown.LoadFile("zeroes-then-ones.pda", pushdown.WithStepLimit(10_000))
		if err != nil {
			log.Fatal(err)
		}

		ok, err := m.Accepts("000111")
		if err != nil {
			log.Fatal(err) // *domain.StepBudgetExceededError
		}
		fmt.Println(ok)
	}

# Observing a run

WithShowAll and WithShowAcceptPath together with WithHooks deliver every
visited configuration and the accepting path to the caller, which is how the
command line tool prints traces.
*/
package pushdown
