package suite

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/qemu-wasm/buildcheck"
	"github.com/qemu-wasm/buildcheck/bench"
	"github.com/qemu-wasm/buildcheck/validate"
)

// Options selects optional parts of the standard suite.
type Options struct {
	// Deep enables full section scans and compilation of every binary
	// module. Off by default: it reads whole binaries.
	Deep bool

	// SkipBench leaves benchmark collection out of Execute.
	SkipBench bool
}

// RegisterStandardChecks registers the full check sequence for every
// target, in target order: artifact listing first, then structure,
// binary format, syntax, metadata, API contract and resource
// configuration, plus the deep binary check when enabled. Case names
// are "<target>/<check>".
func RegisterStandardChecks(r *Runner, targets []buildcheck.Target, opts Options) {
	for i := range targets {
		target := &targets[i]

		r.Register(target.Name+"/artifacts", func(ctx context.Context) ([]string, error) {
			return nil, buildcheck.LoadArtifacts(target)
		})
		r.Register(target.Name+"/structure", func(ctx context.Context) ([]string, error) {
			return nil, validate.Structure(target)
		})
		r.Register(target.Name+"/binary-format", func(ctx context.Context) ([]string, error) {
			return validate.BinaryFormat(target)
		})
		r.Register(target.Name+"/syntax", func(ctx context.Context) ([]string, error) {
			return nil, validate.Syntax(target)
		})
		r.Register(target.Name+"/metadata", func(ctx context.Context) ([]string, error) {
			return nil, validate.Metadata(target)
		})
		r.Register(target.Name+"/api-contract", func(ctx context.Context) ([]string, error) {
			return nil, validate.APIContract(target)
		})
		r.Register(target.Name+"/resource-config", func(ctx context.Context) ([]string, error) {
			return validate.ResourceConfig(target)
		})
		if opts.Deep {
			r.Register(target.Name+"/binary-deep", func(ctx context.Context) ([]string, error) {
				return nil, validate.BinaryDeep(ctx, target)
			})
		}
	}
}

// Execute runs the standard suite over the given targets: all checks
// in registration order, then benchmark collection per target unless
// skipped. Artifact listings are shared between the checks and the
// benchmarker through the target values.
func Execute(ctx context.Context, targets []buildcheck.Target, opts Options) Summary {
	runner := NewRunner()
	RegisterStandardChecks(runner, targets, opts)

	Logger().Info("suite starting",
		zap.Int("targets", len(targets)),
		zap.Int("cases", runner.Len()),
		zap.Bool("deep", opts.Deep))

	started := time.Now()
	summary := runner.Run(ctx)

	if !opts.SkipBench {
		for i := range targets {
			target := &targets[i]
			c := bench.Run(ctx, target)
			summary.Bench = append(summary.Bench, BenchReport{
				Target:   target.Name,
				Samples:  c.Samples,
				Warnings: c.Warnings,
				Errors:   c.Errors,
			})
		}
	}

	summary.Duration = time.Since(started)

	Logger().Info("suite finished",
		zap.Int("passed", summary.Passed()),
		zap.Int("failed", summary.Failed()),
		zap.Duration("elapsed", summary.Duration))

	return summary
}
