package validate

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/qemu-wasm/buildcheck"
	"github.com/qemu-wasm/buildcheck/errors"
)

// requiredDescriptorFields are the descriptor fields every target must
// carry, checked in this order so reports stay stable across runs.
var requiredDescriptorFields = []string{"name", "version", "description", "main", "license"}

// Metadata checks the packaging descriptor: it must parse as a JSON
// object, carry every required field as a non-empty string, name the
// package with both the product and platform markers, and reference an
// entry point that exists inside the target directory. All violations
// are reported together, not just the first.
func Metadata(target *buildcheck.Target) error {
	path := filepath.Join(target.Dir, buildcheck.MetadataName)
	raw, readErr := os.ReadFile(path)
	if readErr != nil {
		return errors.IO(errors.PhaseMetadata, path, readErr)
	}

	var fields map[string]any
	if jsonErr := json.Unmarshal(raw, &fields); jsonErr != nil {
		return errors.MalformedMetadata(target.Name, jsonErr)
	}

	var err error
	for _, field := range requiredDescriptorFields {
		if s, ok := fields[field].(string); !ok || s == "" {
			err = multierr.Append(err, errors.MissingField(field))
		}
	}

	if name, ok := fields["name"].(string); ok && name != "" {
		lower := strings.ToLower(name)
		if !strings.Contains(lower, "qemu") || !strings.Contains(lower, "wasm") {
			err = multierr.Append(err, errors.NamingViolation(name))
		}
	}

	if entry, ok := fields[buildcheck.EntryPointField].(string); ok && entry != "" {
		if !entryResolves(target.Dir, entry) {
			err = multierr.Append(err, errors.DanglingReference(buildcheck.EntryPointField, entry))
		}
	}

	if err != nil {
		Logger().Debug("metadata check failed",
			zap.String("target", target.Name),
			zap.Int("violations", len(multierr.Errors(err))))
	}
	return err
}

// entryResolves reports whether the entry point names a regular file
// inside the target directory. References escaping the directory do
// not resolve.
func entryResolves(dir, entry string) bool {
	full := filepath.Join(dir, entry)
	rel, err := filepath.Rel(dir, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return false
	}
	info, err := os.Stat(full)
	return err == nil && info.Mode().IsRegular()
}
