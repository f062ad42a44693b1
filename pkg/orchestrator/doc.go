// Package orchestrator wires rule stores, message translation and the
// validation engine behind a single Validate call, so transports (CLI, HTTP)
// share one code path.
package orchestrator
