/*
Package ports defines the driven ports (interfaces) of the pushdown simulator.

These interfaces decouple the engine from external implementations, allowing
definitions to come from several file formats and verdicts to be cached in
several backends.

# Key Interfaces

  - DefinitionLoader: decodes a serialized automaton (text, YAML).
  - ResultStore: persists verdicts (memory, Redis).
*/
package ports
