package bench_test

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/qemu-wasm/buildcheck"
	"github.com/qemu-wasm/buildcheck/bench"
	"github.com/qemu-wasm/buildcheck/errors"
)

const loadableWrapper = `const runtimeOptions = { INITIAL_MEMORY: 268435456 };

class QemuRunner {
  constructor() {
    this.status = "created";
  }

  async init() {
    this.status = "ready";
  }

  async start(options) {
    this.args = this.buildArgs(options);
    this.status = "running";
  }

  stop() {
    this.status = "stopped";
  }

  getStatus() {
    return this.status;
  }

  buildArgs(options) {
    return ["-machine", options.machine];
  }
}

module.exports = QemuRunner;
`

// compilableModule is a minimal module wazero accepts: one empty
// exported function plus a one-page memory.
var compilableModule = []byte{
	0x00, 0x61, 0x73, 0x6D, 0x01, 0x00, 0x00, 0x00, // header
	0x01, 0x04, 0x01, 0x60, 0x00, 0x00, // type: () -> ()
	0x03, 0x02, 0x01, 0x00, // function: one func of type 0
	0x05, 0x03, 0x01, 0x00, 0x01, // memory: min 1 page
	0x07, 0x0A, 0x01, 0x06, '_', 's', 't', 'a', 'r', 't', 0x00, 0x00, // export _start
	0x0A, 0x04, 0x01, 0x02, 0x00, 0x0B, // code: empty body
}

func newTarget(t *testing.T, files map[string][]byte) *buildcheck.Target {
	t.Helper()
	dir := t.TempDir()
	for name, data := range files {
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	target := &buildcheck.Target{Name: "i386-softmmu", Dir: dir}
	if err := buildcheck.LoadArtifacts(target); err != nil {
		t.Fatalf("LoadArtifacts: %v", err)
	}
	return target
}

func findSample(c bench.Collection, metric string) (bench.Sample, bool) {
	for _, s := range c.Samples {
		if s.Metric == metric {
			return s, true
		}
	}
	return bench.Sample{}, false
}

func TestRun_SizeSamples(t *testing.T) {
	target := newTarget(t, map[string][]byte{
		"qemu-system-i386.wasm": compilableModule,
		"qemu-system-i386.js":   make([]byte, 1024),
		buildcheck.WrapperName:  []byte(loadableWrapper),
		buildcheck.MetadataName: []byte(`{"name": "qemu-i386-wasm"}`),
	})

	c := bench.Run(context.Background(), target)

	total, ok := findSample(c, "total_size")
	if !ok || total.Unit != bench.UnitBytes {
		t.Fatalf("total_size sample missing or mis-tagged: %+v", c.Samples)
	}
	var wantTotal float64
	for _, a := range target.Artifacts {
		wantTotal += float64(a.Size)
	}
	if total.Value != wantTotal {
		t.Errorf("total_size = %v, want %v", total.Value, wantTotal)
	}

	binary, _ := findSample(c, "binary_size")
	if binary.Value != float64(len(compilableModule)) {
		t.Errorf("binary_size = %v, want %v", binary.Value, len(compilableModule))
	}

	script, _ := findSample(c, "script_size")
	if script.Value != float64(1024+len(loadableWrapper)) {
		t.Errorf("script_size = %v, want %v", script.Value, 1024+len(loadableWrapper))
	}
}

func TestRun_ThresholdWarnings(t *testing.T) {
	// Sizes come from the artifact listing, so oversized artifacts can
	// be declared without writing hundreds of megabytes to disk.
	target := &buildcheck.Target{
		Name: "x86_64-softmmu",
		Artifacts: []buildcheck.Artifact{
			{Name: "qemu-system-x86_64.wasm", Kind: buildcheck.KindBinaryModule, Size: 150 << 20},
			{Name: "qemu-system-x86_64.js", Kind: buildcheck.KindGlueScript, Size: 60 << 20},
		},
	}

	c := bench.Run(context.Background(), target)

	if len(c.Warnings) != 3 {
		t.Errorf("got %d warnings, want 3 (total, binary, script): %v", len(c.Warnings), c.Warnings)
	}
}

func TestRun_NoThresholdWarningsUnderLimits(t *testing.T) {
	target := &buildcheck.Target{
		Name: "i386-softmmu",
		Artifacts: []buildcheck.Artifact{
			{Name: "qemu-system-i386.wasm", Kind: buildcheck.KindBinaryModule, Size: 40 << 20},
			{Name: "qemu-system-i386.js", Kind: buildcheck.KindGlueScript, Size: 2 << 20},
		},
	}

	c := bench.Run(context.Background(), target)

	if len(c.Warnings) != 0 {
		t.Errorf("unexpected warnings: %v", c.Warnings)
	}
}

func TestRun_GlueLoad(t *testing.T) {
	target := newTarget(t, map[string][]byte{
		buildcheck.WrapperName: []byte(loadableWrapper),
	})

	c := bench.Run(context.Background(), target)

	if len(c.Errors) != 0 {
		t.Fatalf("unexpected collection errors: %v", c.Errors)
	}
	loadTime, ok := findSample(c, "glue_load_time")
	if !ok || loadTime.Unit != bench.UnitMillis {
		t.Fatalf("glue_load_time sample missing or mis-tagged: %+v", c.Samples)
	}
	if loadTime.Value < 0 {
		t.Errorf("glue_load_time negative: %v", loadTime.Value)
	}
	heap, ok := findSample(c, "glue_heap_delta")
	if !ok || heap.Unit != bench.UnitBytes {
		t.Fatalf("glue_heap_delta sample missing or mis-tagged: %+v", c.Samples)
	}
	if heap.Value < 0 {
		t.Errorf("glue_heap_delta negative: %v", heap.Value)
	}
}

func TestRun_LoadFailureIsCollectionError(t *testing.T) {
	target := newTarget(t, map[string][]byte{
		buildcheck.WrapperName: []byte(`throw new Error("wrapper refuses to load");`),
	})

	c := bench.Run(context.Background(), target)

	if len(c.Errors) == 0 {
		t.Fatal("expected a collection error for a throwing wrapper")
	}
	if !stderrors.Is(c.Errors[0], &errors.Error{Phase: errors.PhaseBench, Kind: errors.KindMeasurement}) {
		t.Errorf("error = %v, want bench measurement_failed", c.Errors[0])
	}
	if _, ok := findSample(c, "glue_load_time"); ok {
		t.Error("glue_load_time sampled despite load failure")
	}
	// Size samples are still collected.
	if _, ok := findSample(c, "total_size"); !ok {
		t.Error("size samples missing after load failure")
	}
}

func TestRun_CompileLatency(t *testing.T) {
	target := newTarget(t, map[string][]byte{
		"qemu-system-i386.wasm": compilableModule,
	})

	c := bench.Run(context.Background(), target)

	sample, ok := findSample(c, "module_compile_time(qemu-system-i386.wasm)")
	if !ok || sample.Unit != bench.UnitMillis {
		t.Fatalf("compile sample missing or mis-tagged: %+v", c.Samples)
	}
	if sample.Value < 0 {
		t.Errorf("compile time negative: %v", sample.Value)
	}
	if len(c.Errors) != 0 {
		t.Errorf("unexpected collection errors: %v", c.Errors)
	}
}

func TestRun_CompileFailureIsCollectionError(t *testing.T) {
	target := newTarget(t, map[string][]byte{
		"qemu-system-i386.wasm": {0x00, 0x61, 0x73, 0x6D, 0x01, 0x00, 0x00, 0x00, 0xFF, 0xFF},
	})

	c := bench.Run(context.Background(), target)

	var found bool
	for _, err := range c.Errors {
		if stderrors.Is(err, &errors.Error{Phase: errors.PhaseBench, Kind: errors.KindMeasurement}) {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a measurement error, got %v", c.Errors)
	}
	if _, ok := findSample(c, "module_compile_time(qemu-system-i386.wasm)"); ok {
		t.Error("compile time sampled despite compile failure")
	}
}

func BenchmarkRun(b *testing.B) {
	dir := b.TempDir()
	if err := os.WriteFile(filepath.Join(dir, buildcheck.WrapperName), []byte(loadableWrapper), 0o644); err != nil {
		b.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "qemu-system-i386.wasm"), compilableModule, 0o644); err != nil {
		b.Fatal(err)
	}
	target := &buildcheck.Target{Name: "i386-softmmu", Dir: dir}
	if err := buildcheck.LoadArtifacts(target); err != nil {
		b.Fatal(err)
	}

	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c := bench.Run(ctx, target)
		if len(c.Errors) != 0 {
			b.Fatalf("collection errors: %v", c.Errors)
		}
	}
}
