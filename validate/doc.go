// Package validate implements the per-target artifact checks.
//
// Each check takes a loaded Target and inspects one concern of the
// build contract:
//
//	Structure      required artifact set is complete
//	BinaryFormat   wasm preamble, emptiness, size advisories
//	Syntax         glue scripts parse as ECMAScript
//	Metadata       descriptor fields, naming, entry-point resolution
//	APIContract    wrapper capability table and export mechanism
//	ResourceConfig emscripten memory-configuration markers (advisory)
//	BinaryDeep     full section scan plus wazero compile (opt-in)
//
// Checks are read-only and independent: each returns its own findings
// and none mutates the build tree or shares state with another. A check
// reports every violation it finds, aggregated with multierr, so a
// single run names all problems at once.
//
// Warnings returned by a check are advisories for the report; only a
// non-nil error fails the owning case.
package validate
