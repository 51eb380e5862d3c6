// Package suite registers, runs and aggregates check cases.
//
// A Runner executes its cases strictly in registration order, one at a
// time. Every case is isolated: its error, including a recovered
// panic, is recorded against it and the run continues with the next
// case. The Summary returned by Run is a plain value holding all case
// results, so a run has no global state and two runs cannot interfere.
//
// RegisterStandardChecks wires the full validation sequence for a set
// of discovered targets, and Execute is the one-call form used by the
// CLI: run all cases, then collect benchmark reports per target. The
// suite verdict is the conjunction of case outcomes; benchmark
// collection errors and all warnings are advisory.
package suite
