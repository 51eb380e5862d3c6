// Package buildcheck validates and benchmarks the build output of the
// wasm compilation pipeline.
//
// Each build configuration (system emulator, user-mode target) compiles
// into its own directory under a shared build root. This library walks
// those directories and checks that every one of them is complete,
// structurally sound, and within its expected size envelope before the
// output is packaged or published.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	buildcheck/          Root package with the target and artifact model
//	├── suite/           Check registry, sequential runner, result aggregation
//	├── validate/        Per-target validators (structure, binary, syntax, metadata, API)
//	├── bench/           Size accounting and load/compile latency sampling
//	├── wasmscan/        Wasm binary header and section inventory scanner
//	├── report/          Terminal and JSON rendering of suite results
//	├── tui/             Interactive results browser
//	└── errors/          Structured error types for diagnostics
//
// # Quick Start
//
// Run the full validation suite over a build root:
//
//	targets, err := buildcheck.DiscoverTargets("build")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	summary := suite.Execute(ctx, targets, suite.Options{})
//	report.WriteText(os.Stdout, &summary, report.Options{})
//	if !summary.AllPassed() {
//	    os.Exit(1)
//	}
//
// # Validation Model
//
// Every check is an isolated case: a failing case records its error and
// the suite moves on, so a single broken target never hides problems in
// the others. Cases run sequentially in registration order and the
// verdict of a run is the conjunction of all case outcomes.
//
// Benchmarks ride along with validation but never gate it. A failed
// measurement is reported as a sample-collection error and the suite
// verdict is unaffected.
//
// # Target Layout
//
// A target directory is expected to contain at least one .wasm binary
// module, at least one .js glue script, the qemu-runner.js wrapper, and
// a package.json descriptor. Artifacts are read-only to every check;
// the library never mutates the build tree.
package buildcheck
