// Package bench collects per-target size and latency samples.
//
// Three metric families are produced: artifact size sums partitioned
// by kind, wrapper load latency and heap growth in a fresh interpreter,
// and cold compile latency per binary module. All measurements are
// cold-path: a new interpreter or wazero runtime per measurement, no
// caches. Samples carry a unit tag and are append-only.
//
// Benchmarks never gate a suite run. A measurement that cannot be
// taken records a collection error and the remaining metrics are still
// gathered. Size thresholds (200 MiB total, 100 MiB binary, 50 MiB
// script) produce warnings only.
package bench
