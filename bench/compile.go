package bench

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"github.com/tetratelabs/wazero/experimental"
	"go.uber.org/zap"

	"github.com/qemu-wasm/buildcheck"
	"github.com/qemu-wasm/buildcheck/errors"
)

// collectCompile measures cold compilation of every binary module. A
// runtime is created and closed per measurement and no compilation
// cache is configured, so each sample reflects a from-scratch compile.
func collectCompile(ctx context.Context, target *buildcheck.Target, c *Collection) {
	for _, a := range target.ByKind(buildcheck.KindBinaryModule) {
		data, err := os.ReadFile(a.Path)
		if err != nil {
			c.Errors = append(c.Errors, errors.Measurement(fmt.Sprintf("read %s", a.Name), err))
			continue
		}

		elapsed, compileErr := compileOnce(ctx, data)
		if compileErr != nil {
			c.Errors = append(c.Errors, errors.Measurement(fmt.Sprintf("compile %s", a.Name), compileErr))
			continue
		}

		c.add(target.Name, fmt.Sprintf("module_compile_time(%s)", a.Name), elapsed.Seconds()*1000, UnitMillis)

		Logger().Debug("module compiled",
			zap.String("target", target.Name),
			zap.String("artifact", a.Name),
			zap.Duration("elapsed", elapsed))
	}
}

func compileOnce(ctx context.Context, data []byte) (time.Duration, error) {
	cfg := wazero.NewRuntimeConfig().
		WithCoreFeatures(api.CoreFeaturesV2 | experimental.CoreFeaturesThreads)

	start := time.Now()
	r := wazero.NewRuntimeWithConfig(ctx, cfg)
	defer r.Close(ctx)

	compiled, err := r.CompileModule(ctx, data)
	if err != nil {
		return 0, err
	}
	elapsed := time.Since(start)
	compiled.Close(ctx)
	return elapsed, nil
}
