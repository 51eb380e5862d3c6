package buildcheck

import (
	"os"
	"path/filepath"

	"github.com/qemu-wasm/buildcheck/errors"
)

// DiscoverTargets lists the immediate subdirectories of the build-output
// root, one Target per directory, ordered lexicographically by name.
// Files at the root level are ignored. The returned targets carry no
// artifacts yet; call LoadArtifacts to populate them.
//
// An unreadable or missing root is fatal to the whole run and is
// reported as an enumeration IO error.
func DiscoverTargets(root string) ([]Target, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, errors.IO(errors.PhaseEnumerate, root, err)
	}

	targets := make([]Target, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		targets = append(targets, Target{
			Name: entry.Name(),
			Dir:  filepath.Join(root, entry.Name()),
		})
	}
	return targets, nil
}

// LoadArtifacts reads the target directory and records every immediate
// regular file as a classified artifact, in directory order. Nested
// directories are not descended into; the build contract places all
// checked artifacts at the top level of a target.
func LoadArtifacts(target *Target) error {
	entries, err := os.ReadDir(target.Dir)
	if err != nil {
		return errors.IO(errors.PhaseEnumerate, target.Dir, err)
	}

	target.Artifacts = target.Artifacts[:0]
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return errors.IO(errors.PhaseEnumerate, filepath.Join(target.Dir, entry.Name()), err)
		}
		target.Artifacts = append(target.Artifacts, Artifact{
			Name: entry.Name(),
			Path: filepath.Join(target.Dir, entry.Name()),
			Kind: ClassifyArtifact(entry.Name()),
			Size: info.Size(),
		})
	}
	return nil
}
