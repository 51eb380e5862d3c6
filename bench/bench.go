package bench

import (
	"context"

	"github.com/qemu-wasm/buildcheck"
)

// Unit tags for samples.
const (
	UnitBytes  = "bytes"
	UnitMillis = "ms"
)

// Sample is one benchmark observation. Samples are append-only:
// produced here, consumed by the reporter, never updated.
type Sample struct {
	Target string  `json:"target"`
	Metric string  `json:"metric"`
	Value  float64 `json:"value"`
	Unit   string  `json:"unit"`
}

// Collection is the benchmark output for one target. Errors are
// sample-collection errors: they surface in the report but never fail
// a suite run.
type Collection struct {
	Samples  []Sample
	Warnings []string
	Errors   []error
}

func (c *Collection) add(target, metric string, value float64, unit string) {
	c.Samples = append(c.Samples, Sample{Target: target, Metric: metric, Value: value, Unit: unit})
}

// Run collects every benchmark for one target: size sums partitioned
// by artifact kind, wrapper load latency and heap growth, and the
// compile latency of each binary module. Measurements are taken cold,
// one after another; nothing is cached between runs.
func Run(ctx context.Context, target *buildcheck.Target) Collection {
	var c Collection
	collectSizes(target, &c)
	collectGlueLoad(target, &c)
	collectCompile(ctx, target, &c)
	return c
}
