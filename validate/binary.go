package validate

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/qemu-wasm/buildcheck"
	"github.com/qemu-wasm/buildcheck/errors"
	"github.com/qemu-wasm/buildcheck/wasmscan"
)

// Size advisory bounds for binary modules. Emulator builds land well
// inside this envelope; crossing it warns but never fails.
const (
	SizeAdvisoryFloor   int64 = 1 << 20   // 1 MiB
	SizeAdvisoryCeiling int64 = 100 << 20 // 100 MiB
)

// BinaryFormat checks every binary-module artifact's preamble and size
// envelope. A zero-length module or a wrong magic number fails the
// check; size advisories and a non-1 version field only warn. Only the
// 8-byte header is read from disk, so the check stays cheap for large
// modules.
func BinaryFormat(target *buildcheck.Target) ([]string, error) {
	var (
		warnings []string
		err      error
	)

	for _, a := range target.ByKind(buildcheck.KindBinaryModule) {
		if a.Size == 0 {
			err = multierr.Append(err, errors.EmptyArtifact(a.Name))
			continue
		}

		header, headerErr := readHeader(a.Path)
		if headerErr != nil {
			err = multierr.Append(err, headerErr)
			continue
		}
		if header.Version != wasmscan.Version {
			warnings = append(warnings, fmt.Sprintf(
				"%s: binary version %d, toolchains currently emit version %d",
				a.Name, header.Version, wasmscan.Version))
		}

		if a.Size < SizeAdvisoryFloor {
			warnings = append(warnings, fmt.Sprintf(
				"%s: %s is suspiciously small for an emulator module (advisory floor %s)",
				a.Name, buildcheck.FormatBytes(a.Size), buildcheck.FormatBytes(SizeAdvisoryFloor)))
		}
		if a.Size > SizeAdvisoryCeiling {
			warnings = append(warnings, fmt.Sprintf(
				"%s: %s exceeds the %s advisory ceiling",
				a.Name, buildcheck.FormatBytes(a.Size), buildcheck.FormatBytes(SizeAdvisoryCeiling)))
		}

		Logger().Debug("binary header verified",
			zap.String("target", target.Name),
			zap.String("artifact", a.Name),
			zap.Int64("size", a.Size))
	}

	return warnings, err
}

// readHeader reads and verifies the 8-byte module preamble.
func readHeader(path string) (wasmscan.Header, error) {
	f, err := os.Open(path)
	if err != nil {
		return wasmscan.Header{}, errors.IO(errors.PhaseBinary, path, err)
	}
	defer f.Close()

	buf := make([]byte, wasmscan.HeaderSize)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF {
		return wasmscan.Header{}, errors.IO(errors.PhaseBinary, path, err)
	}

	header, err := wasmscan.ParseHeader(buf[:n])
	switch {
	case err == wasmscan.ErrShortHeader:
		return wasmscan.Header{}, errors.New(errors.PhaseBinary, errors.KindInvalidMagic).
			Artifact(filepath.Base(path)).
			Detail("header truncated at %d bytes", n).
			Build()
	case err != nil:
		got := buf[:n]
		if len(got) > 4 {
			got = got[:4]
		}
		return wasmscan.Header{}, errors.InvalidMagicNumber(filepath.Base(path), got)
	}
	return header, nil
}
