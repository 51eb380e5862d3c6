package validate

import (
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/qemu-wasm/buildcheck"
	"github.com/qemu-wasm/buildcheck/errors"
)

// Structure checks that a target holds the complete artifact set the
// build contract requires: the glue wrapper, the metadata descriptor,
// at least one binary module and at least one glue script. Every
// missing artifact is reported, not only the first.
func Structure(target *buildcheck.Target) error {
	var err error

	if _, ok := target.Wrapper(); !ok {
		err = multierr.Append(err, errors.MissingArtifact(target.Name, buildcheck.WrapperName))
	}
	if _, ok := target.Metadata(); !ok {
		err = multierr.Append(err, errors.MissingArtifact(target.Name, buildcheck.MetadataName))
	}
	if len(target.ByKind(buildcheck.KindBinaryModule)) == 0 {
		err = multierr.Append(err, errors.MissingArtifact(target.Name, "*"+buildcheck.BinaryModuleExt))
	}
	if len(target.ByKind(buildcheck.KindGlueScript)) == 0 {
		err = multierr.Append(err, errors.MissingArtifact(target.Name, "*"+buildcheck.GlueScriptExt))
	}

	if err != nil {
		Logger().Debug("structure check failed",
			zap.String("target", target.Name),
			zap.Int("missing", len(multierr.Errors(err))))
	}
	return err
}
