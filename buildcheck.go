package buildcheck

import "path/filepath"

// Fixed artifact names and extensions of the build-output contract.
// Every target directory produced by the compilation pipeline is expected
// to contain a wrapper script, a metadata descriptor, at least one wasm
// binary module and at least one glue script (the wrapper counts as one).
const (
	// WrapperName is the glue wrapper every target must ship.
	WrapperName = "qemu-runner.js"

	// MetadataName is the packaging descriptor every target must ship.
	MetadataName = "package.json"

	// EntryPointField is the descriptor field referencing the module entry file.
	EntryPointField = "main"

	// BinaryModuleExt marks an artifact as a compiled wasm module.
	BinaryModuleExt = ".wasm"

	// GlueScriptExt marks an artifact as a glue script.
	GlueScriptExt = ".js"

	// DefaultRoot is the build-output root checked when none is configured.
	DefaultRoot = "build"
)

// ArtifactKind classifies a file within a target directory.
type ArtifactKind int

const (
	KindOther ArtifactKind = iota
	KindBinaryModule
	KindGlueScript
	KindMetadata
)

// String returns the kind's report label.
func (k ArtifactKind) String() string {
	switch k {
	case KindBinaryModule:
		return "binary-module"
	case KindGlueScript:
		return "glue-script"
	case KindMetadata:
		return "metadata-descriptor"
	default:
		return "other"
	}
}

// Artifact is a single file within a target directory. Artifacts are
// read-only to every validator.
type Artifact struct {
	Name string // base name within the target directory
	Path string // full path on disk
	Kind ArtifactKind
	Size int64
}

// Target is one build configuration's output directory. It is ephemeral:
// recomputed on each run and never persisted.
type Target struct {
	Name      string // directory name, the target identifier
	Dir       string // path to the directory
	Artifacts []Artifact
}

// ClassifyArtifact maps a file name to its artifact kind.
// The metadata descriptor is matched by exact name; binaries and glue
// scripts are matched by extension, so the wrapper classifies as a
// glue script like any other .js file.
func ClassifyArtifact(name string) ArtifactKind {
	if name == MetadataName {
		return KindMetadata
	}
	switch filepath.Ext(name) {
	case BinaryModuleExt:
		return KindBinaryModule
	case GlueScriptExt:
		return KindGlueScript
	}
	return KindOther
}

// Artifact returns the named artifact, if the target has one.
func (t *Target) Artifact(name string) (Artifact, bool) {
	for _, a := range t.Artifacts {
		if a.Name == name {
			return a, true
		}
	}
	return Artifact{}, false
}

// ByKind returns all artifacts of the given kind, in directory order.
func (t *Target) ByKind(kind ArtifactKind) []Artifact {
	var out []Artifact
	for _, a := range t.Artifacts {
		if a.Kind == kind {
			out = append(out, a)
		}
	}
	return out
}

// Wrapper returns the glue wrapper artifact, if present.
func (t *Target) Wrapper() (Artifact, bool) {
	return t.Artifact(WrapperName)
}

// Metadata returns the metadata descriptor artifact, if present.
func (t *Target) Metadata() (Artifact, bool) {
	return t.Artifact(MetadataName)
}
