/*
Package runtime is the simulation engine of the pushdown automaton.

An Automaton is built once from a domain.Definition, validated, and then
queried with Accepts or Run. Each query performs a breadth-first search over
Configurations: immutable snapshots of one nondeterministic branch kept in a
per-search arena, each pointing at its predecessor by index. The
TransitionTable computes the one-step successors of a configuration.
*/
package runtime
