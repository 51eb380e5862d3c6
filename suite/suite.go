package suite

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Check is one registered case: a name and the function that runs it.
// The function returns advisory warnings and the case error, if any.
type Check struct {
	Name string
	Run  func(ctx context.Context) ([]string, error)
}

// Result is the recorded outcome of one case. It is written exactly
// once, when the case executes, and read by reporters afterwards.
type Result struct {
	Name     string
	Passed   bool
	Err      error
	Warnings []string
	Duration time.Duration
}

// Runner executes registered checks strictly in registration order,
// one at a time. A failing case is recorded and the run continues;
// nothing short-circuits.
type Runner struct {
	checks []Check
}

// NewRunner creates an empty runner.
func NewRunner() *Runner {
	return &Runner{}
}

// Register appends a check. Execution order is registration order.
func (r *Runner) Register(name string, run func(ctx context.Context) ([]string, error)) {
	r.checks = append(r.checks, Check{Name: name, Run: run})
}

// Len returns the number of registered checks.
func (r *Runner) Len() int {
	return len(r.checks)
}

// Run executes every check sequentially and returns the summary. Each
// case's wall-clock duration and outcome are captured; a panic inside
// a check fails that case only.
func (r *Runner) Run(ctx context.Context) Summary {
	started := time.Now()
	results := make([]Result, 0, len(r.checks))

	for _, check := range r.checks {
		caseStart := time.Now()
		warnings, err := runSafely(ctx, check)
		result := Result{
			Name:     check.Name,
			Passed:   err == nil,
			Err:      err,
			Warnings: warnings,
			Duration: time.Since(caseStart),
		}
		results = append(results, result)

		if err != nil {
			Logger().Debug("case failed",
				zap.String("case", check.Name),
				zap.Error(err))
		}
	}

	return Summary{Results: results, Duration: time.Since(started)}
}

// runSafely invokes the check and converts a panic into a case error.
func runSafely(ctx context.Context, check Check) (warnings []string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("check panicked: %v", rec)
		}
	}()
	return check.Run(ctx)
}
