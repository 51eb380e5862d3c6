package validate

import (
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/qemu-wasm/buildcheck"
	"github.com/qemu-wasm/buildcheck/errors"
)

// memoryMarkers are the emscripten memory-configuration settings a
// wrapper is expected to mention.
var memoryMarkers = []string{"INITIAL_MEMORY", "MAXIMUM_MEMORY", "ALLOW_MEMORY_GROWTH"}

// ResourceConfig scans the wrapper for emscripten memory-configuration
// markers. Absence is advisory: a wrapper with no marker at all draws a
// warning but the check never fails on content. Only an unreadable
// wrapper is an error.
func ResourceConfig(target *buildcheck.Target) ([]string, error) {
	wrapper, ok := target.Wrapper()
	if !ok {
		return []string{"wrapper not present, memory configuration unchecked"}, nil
	}

	raw, readErr := os.ReadFile(wrapper.Path)
	if readErr != nil {
		return nil, errors.IO(errors.PhaseAPI, wrapper.Path, readErr)
	}
	src := string(raw)

	var found []string
	for _, marker := range memoryMarkers {
		if strings.Contains(src, marker) {
			found = append(found, marker)
		}
	}

	Logger().Debug("memory markers scanned",
		zap.String("target", target.Name),
		zap.Strings("found", found))

	if len(found) == 0 {
		return []string{"no memory configuration marker found in the wrapper"}, nil
	}
	return nil, nil
}
