/*
Package observability provides Prometheus instrumentation for automaton runs.

Metrics are registered on a caller supplied prometheus.Registerer. The serve
command uses a private registry, together with the Go and process collectors,
and exposes it on /metrics.
*/
package observability
