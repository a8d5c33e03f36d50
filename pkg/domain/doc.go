/*
Package domain contains the core models of the pushdown automaton simulator.

It defines the value types shared by the engine and its adapters: state names,
alphabets, transition rules, the loader-facing Definition record, the trace
events emitted during a search and the error taxonomy. The package is kept free
of I/O so that loaders, stores and transports can depend on it without pulling
in the engine.

# Key Entities

  - State: a name-identified automaton state.
  - Alphabet: the set of symbols a definition may read or push.
  - Definition: what a loader produces and the engine validates.
  - Snapshot, VisitEvent, AcceptEvent: the trace of a breadth-first search.
  - Verdict: the persisted outcome of one evaluation.
*/
package domain
