package bench

import (
	"os"
	"runtime"
	"time"

	"github.com/dop251/goja"
	"go.uber.org/zap"

	"github.com/qemu-wasm/buildcheck"
	"github.com/qemu-wasm/buildcheck/errors"
)

// collectGlueLoad measures a cold wrapper load: a fresh interpreter
// seeded with a minimal CommonJS environment, no cache of any kind.
// Elapsed wall clock and allocation growth are both recorded. A wrapper
// that fails to load produces a collection error, not a suite failure.
func collectGlueLoad(target *buildcheck.Target, c *Collection) {
	wrapper, ok := target.Wrapper()
	if !ok {
		c.Errors = append(c.Errors, errors.Measurement("wrapper not present, load not measured", nil))
		return
	}

	src, err := os.ReadFile(wrapper.Path)
	if err != nil {
		c.Errors = append(c.Errors, errors.Measurement("read wrapper", err))
		return
	}

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	start := time.Now()

	loadErr := loadModule(wrapper.Name, string(src))

	elapsed := time.Since(start)
	runtime.ReadMemStats(&after)

	if loadErr != nil {
		c.Errors = append(c.Errors, errors.Measurement("load wrapper", loadErr))
		return
	}

	heapDelta := float64(after.TotalAlloc - before.TotalAlloc)
	c.add(target.Name, "glue_load_time", elapsed.Seconds()*1000, UnitMillis)
	c.add(target.Name, "glue_heap_delta", heapDelta, UnitBytes)

	Logger().Debug("wrapper loaded",
		zap.String("target", target.Name),
		zap.Duration("elapsed", elapsed),
		zap.Float64("heap_delta", heapDelta))
}

// loadModule runs the wrapper source in a fresh interpreter with
// module, exports and a node-style global alias defined. Each call
// builds the environment from scratch.
func loadModule(name, src string) error {
	vm := goja.New()

	module := vm.NewObject()
	exports := vm.NewObject()
	if err := module.Set("exports", exports); err != nil {
		return err
	}
	if err := vm.Set("module", module); err != nil {
		return err
	}
	if err := vm.Set("exports", exports); err != nil {
		return err
	}
	if err := vm.Set("global", vm.GlobalObject()); err != nil {
		return err
	}

	_, err := vm.RunScript(name, src)
	return err
}
