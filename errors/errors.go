package errors

import (
	"fmt"
	"strings"
)

// Phase indicates which stage of the suite the error occurred in
type Phase string

const (
	PhaseEnumerate Phase = "enumerate" // target discovery
	PhaseStructure Phase = "structure" // required file layout
	PhaseBinary    Phase = "binary"    // wasm binary format
	PhaseSyntax    Phase = "syntax"    // glue script parsing
	PhaseMetadata  Phase = "metadata"  // descriptor contract
	PhaseAPI       Phase = "api"       // wrapper capability contract
	PhaseBench     Phase = "bench"     // measurement collection
)

// Kind categorizes the error
type Kind string

const (
	KindIO                Kind = "io_error"
	KindMissingArtifact   Kind = "missing_artifact"
	KindInvalidMagic      Kind = "invalid_magic_number"
	KindEmptyArtifact     Kind = "empty_artifact"
	KindSyntax            Kind = "syntax_error"
	KindMalformedMetadata Kind = "malformed_metadata"
	KindMissingField      Kind = "missing_field"
	KindNamingViolation   Kind = "naming_violation"
	KindDanglingReference Kind = "dangling_reference"
	KindMissingCapability Kind = "missing_capability"
	KindMissingExport     Kind = "missing_export"
	KindMalformedModule   Kind = "malformed_module"
	KindMeasurement       Kind = "measurement_failed"
)

// Error is the structured error type used throughout the checker
type Error struct {
	Cause    error
	Phase    Phase
	Kind     Kind
	Target   string
	Artifact string
	Detail   string
	Path     []string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if len(e.Path) > 0 {
		b.WriteString(" at ")
		b.WriteString(strings.Join(e.Path, "."))
	}

	if e.Target != "" || e.Artifact != "" {
		b.WriteString(": ")
		if e.Target != "" && e.Artifact != "" {
			b.WriteString("target ")
			b.WriteString(e.Target)
			b.WriteString(", artifact ")
			b.WriteString(e.Artifact)
		} else if e.Target != "" {
			b.WriteString("target ")
			b.WriteString(e.Target)
		} else {
			b.WriteString("artifact ")
			b.WriteString(e.Artifact)
		}
	}

	if e.Detail != "" {
		if e.Target != "" || e.Artifact != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Path sets the field path
func (b *Builder) Path(path ...string) *Builder {
	b.err.Path = path
	return b
}

// Target sets the target identifier
func (b *Builder) Target(t string) *Builder {
	b.err.Target = t
	return b
}

// Artifact sets the artifact path
func (b *Builder) Artifact(a string) *Builder {
	b.err.Artifact = a
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for the checker's error taxonomy

// IO creates an I/O error for an unreadable root or file.
// A root-level I/O error is fatal to the whole run; every other
// error fails only its owning case.
func IO(phase Phase, path string, cause error) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindIO,
		Detail: fmt.Sprintf("read %s", path),
		Cause:  cause,
	}
}

// MissingArtifact creates an error naming the missing file or artifact class
func MissingArtifact(target, name string) *Error {
	return &Error{
		Phase:  PhaseStructure,
		Kind:   KindMissingArtifact,
		Target: target,
		Detail: fmt.Sprintf("required artifact %q not found", name),
	}
}

// InvalidMagicNumber creates an error for a module whose preamble is not \0asm
func InvalidMagicNumber(artifact string, got []byte) *Error {
	return &Error{
		Phase:    PhaseBinary,
		Kind:     KindInvalidMagic,
		Artifact: artifact,
		Detail:   fmt.Sprintf("first 4 bytes %x, want 0061736d", got),
	}
}

// EmptyArtifact creates an error for a zero-length module file
func EmptyArtifact(artifact string) *Error {
	return &Error{
		Phase:    PhaseBinary,
		Kind:     KindEmptyArtifact,
		Artifact: artifact,
		Detail:   "file is empty",
	}
}

// Syntax creates an error carrying the parser diagnostic for an unparseable script
func Syntax(artifact string, cause error) *Error {
	return &Error{
		Phase:    PhaseSyntax,
		Kind:     KindSyntax,
		Artifact: artifact,
		Detail:   "script does not parse",
		Cause:    cause,
	}
}

// MalformedMetadata creates an error for a descriptor that fails to deserialize
func MalformedMetadata(target string, cause error) *Error {
	return &Error{
		Phase:  PhaseMetadata,
		Kind:   KindMalformedMetadata,
		Target: target,
		Detail: "descriptor is not valid JSON",
		Cause:  cause,
	}
}

// MissingField creates an error for an absent required metadata field
func MissingField(field string) *Error {
	return &Error{
		Phase:  PhaseMetadata,
		Kind:   KindMissingField,
		Path:   []string{field},
		Detail: fmt.Sprintf("required field %q not found", field),
	}
}

// NamingViolation creates an error for a package name missing the
// product or platform marker
func NamingViolation(name string) *Error {
	return &Error{
		Phase:  PhaseMetadata,
		Kind:   KindNamingViolation,
		Path:   []string{"name"},
		Detail: fmt.Sprintf("name %q must contain both %q and %q", name, "qemu", "wasm"),
	}
}

// DanglingReference creates an error for an entry point that does not
// resolve to a file inside the target directory
func DanglingReference(field, path string) *Error {
	return &Error{
		Phase:  PhaseMetadata,
		Kind:   KindDanglingReference,
		Path:   []string{field},
		Detail: fmt.Sprintf("references %q which does not exist in the target directory", path),
	}
}

// MissingCapability creates an error naming exactly one absent wrapper capability
func MissingCapability(name string) *Error {
	return &Error{
		Phase:  PhaseAPI,
		Kind:   KindMissingCapability,
		Path:   []string{name},
		Detail: fmt.Sprintf("wrapper does not expose %q", name),
	}
}

// MissingExport creates an error for a wrapper with no recognized export mechanism
func MissingExport(artifact string) *Error {
	return &Error{
		Phase:    PhaseAPI,
		Kind:     KindMissingExport,
		Artifact: artifact,
		Detail:   "no module export or global attachment found",
	}
}

// Measurement wraps a failed sample collection; these never fail the suite
func Measurement(detail string, cause error) *Error {
	return &Error{
		Phase:  PhaseBench,
		Kind:   KindMeasurement,
		Detail: detail,
		Cause:  cause,
	}
}
