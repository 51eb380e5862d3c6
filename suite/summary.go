package suite

import (
	"time"

	"github.com/qemu-wasm/buildcheck/bench"
)

// BenchReport groups one target's benchmark output.
type BenchReport struct {
	Target   string
	Samples  []bench.Sample
	Warnings []string
	Errors   []error
}

// Summary is the aggregate outcome of a run: every case result in
// execution order plus the per-target benchmark reports. It is a plain
// value; two runs produce two independent summaries.
type Summary struct {
	Results  []Result
	Bench    []BenchReport
	Duration time.Duration
}

// AllPassed reports whether every case passed. The suite verdict is
// the conjunction of all cases; benchmark errors do not participate.
func (s *Summary) AllPassed() bool {
	for _, r := range s.Results {
		if !r.Passed {
			return false
		}
	}
	return true
}

// Passed returns the number of passing cases.
func (s *Summary) Passed() int {
	n := 0
	for _, r := range s.Results {
		if r.Passed {
			n++
		}
	}
	return n
}

// Failed returns the number of failing cases.
func (s *Summary) Failed() int {
	return len(s.Results) - s.Passed()
}

// SuccessRate returns the fraction of passing cases in percent.
// An empty run counts as fully successful.
func (s *Summary) SuccessRate() float64 {
	if len(s.Results) == 0 {
		return 100
	}
	return float64(s.Passed()) / float64(len(s.Results)) * 100
}

// WarningCount sums case and benchmark warnings.
func (s *Summary) WarningCount() int {
	n := 0
	for _, r := range s.Results {
		n += len(r.Warnings)
	}
	for _, b := range s.Bench {
		n += len(b.Warnings)
	}
	return n
}
