// Package errors provides structured error types for the build checker.
//
// Errors are categorized by Phase (which stage of the suite the error
// occurred in) and Kind (error category). The Error type includes rich
// context: the target identifier, the artifact path, a field path, and a
// cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseMetadata, errors.KindMissingField).
//		Target("i386-softmmu").
//		Path("license").
//		Detail("required field %q not found", "license").
//		Build()
//
// Or use convenience constructors named for the taxonomy:
//
//	err := errors.MissingField("license")
//	err := errors.InvalidMagicNumber("out.wasm", got)
//
// All errors implement the standard error interface and support errors.Is/As;
// Is matches on Phase and Kind, so a zero-valued &Error{Phase: ..., Kind: ...}
// serves as a match target.
package errors
