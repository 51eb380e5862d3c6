package validate

import (
	"context"
	"os"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/experimental"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/qemu-wasm/buildcheck"
	"github.com/qemu-wasm/buildcheck/errors"
	"github.com/qemu-wasm/buildcheck/wasmscan"
)

// BinaryDeep fully scans and compiles every binary module. The section
// layout must be well formed and in canonical order, and the compiled
// module must expose at least one linear memory and at least one
// exported function. This reads and compiles whole binaries, so it is
// opt-in rather than part of the default suite.
func BinaryDeep(ctx context.Context, target *buildcheck.Target) error {
	var err error
	for _, a := range target.ByKind(buildcheck.KindBinaryModule) {
		if deepErr := deepCheckArtifact(ctx, target.Name, a); deepErr != nil {
			err = multierr.Append(err, deepErr)
		}
	}
	return err
}

func deepCheckArtifact(ctx context.Context, targetName string, a buildcheck.Artifact) error {
	data, readErr := os.ReadFile(a.Path)
	if readErr != nil {
		return errors.IO(errors.PhaseBinary, a.Path, readErr)
	}

	inv, scanErr := wasmscan.Scan(data)
	if scanErr != nil {
		if scanErr == wasmscan.ErrInvalidMagic || scanErr == wasmscan.ErrShortHeader {
			got := data
			if len(got) > 4 {
				got = got[:4]
			}
			return errors.InvalidMagicNumber(a.Name, got)
		}
		return errors.New(errors.PhaseBinary, errors.KindMalformedModule).
			Artifact(a.Name).
			Cause(scanErr).
			Detail("section scan failed").
			Build()
	}

	// Emulator builds use post-MVP features, threads included.
	cfg := wazero.NewRuntimeConfig().
		WithCoreFeatures(api.CoreFeaturesV2 | experimental.CoreFeaturesThreads)
	r := wazero.NewRuntimeWithConfig(ctx, cfg)
	defer r.Close(ctx)

	compiled, compileErr := r.CompileModule(ctx, data)
	if compileErr != nil {
		return errors.New(errors.PhaseBinary, errors.KindMalformedModule).
			Artifact(a.Name).
			Cause(compileErr).
			Detail("module does not compile").
			Build()
	}
	defer compiled.Close(ctx)

	if !inv.HasMemory() && len(compiled.ExportedMemories()) == 0 {
		return errors.New(errors.PhaseBinary, errors.KindMalformedModule).
			Artifact(a.Name).
			Detail("module exposes no linear memory").
			Build()
	}
	if len(compiled.ExportedFunctions()) == 0 {
		return errors.New(errors.PhaseBinary, errors.KindMissingExport).
			Artifact(a.Name).
			Detail("module exports no function").
			Build()
	}

	Logger().Debug("deep check passed",
		zap.String("target", targetName),
		zap.String("artifact", a.Name),
		zap.Int("sections", len(inv.Sections)),
		zap.Int("exports", len(inv.Exports)))
	return nil
}
