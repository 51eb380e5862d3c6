package report_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/qemu-wasm/buildcheck/bench"
	"github.com/qemu-wasm/buildcheck/report"
	"github.com/qemu-wasm/buildcheck/suite"
)

func sampleSummary() *suite.Summary {
	return &suite.Summary{
		Results: []suite.Result{
			{Name: "i386-softmmu/structure", Passed: true, Duration: 120 * time.Microsecond},
			{Name: "i386-softmmu/binary-format", Passed: true,
				Warnings: []string{"qemu-system-i386.wasm: 42 B is suspiciously small for an emulator module (advisory floor 1.0 MiB)"},
				Duration: 80 * time.Microsecond},
			{Name: "aarch64-softmmu/structure", Passed: false,
				Err:      errors.New(`[structure] missing_artifact: target aarch64-softmmu - required artifact "qemu-runner.js" not found`),
				Duration: 95 * time.Microsecond},
		},
		Bench: []suite.BenchReport{
			{
				Target: "i386-softmmu",
				Samples: []bench.Sample{
					{Target: "i386-softmmu", Metric: "total_size", Value: 44040192, Unit: bench.UnitBytes},
					{Target: "i386-softmmu", Metric: "glue_load_time", Value: 1.25, Unit: bench.UnitMillis},
				},
				Warnings: []string{"total size 210.0 MiB exceeds 200.0 MiB"},
				Errors:   []error{errors.New("compile qemu-system-i386.wasm: invalid section")},
			},
		},
		Duration: 3 * time.Millisecond,
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	if err := report.WriteText(&buf, sampleSummary(), report.Options{}); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"CASE",
		"i386-softmmu/structure",
		"pass",
		"FAIL",
		`required artifact "qemu-runner.js" not found`,
		"Warnings:",
		"suspiciously small",
		"total size 210.0 MiB exceeds 200.0 MiB",
		"Benchmarks:",
		"total_size",
		"42.0 MiB",
		"1.25 ms",
		"collection error:",
		"3 cases: 2 passed, 1 failed",
		"RESULT: FAIL",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestWriteText_PlainHasNoEscapes(t *testing.T) {
	var buf bytes.Buffer
	if err := report.WriteText(&buf, sampleSummary(), report.Options{Color: false}); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	if strings.Contains(buf.String(), "\x1b[") {
		t.Error("plain output contains ANSI escapes")
	}
}

func TestWriteText_AllPassed(t *testing.T) {
	s := &suite.Summary{
		Results: []suite.Result{
			{Name: "i386-softmmu/structure", Passed: true},
		},
	}

	var buf bytes.Buffer
	if err := report.WriteText(&buf, s, report.Options{}); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "RESULT: PASS") {
		t.Errorf("output missing pass verdict:\n%s", out)
	}
	if strings.Contains(out, "Warnings:") {
		t.Error("warning section rendered with no warnings")
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := report.WriteJSON(&buf, sampleSummary()); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	var decoded struct {
		AllPassed   bool    `json:"all_passed"`
		Passed      int     `json:"passed"`
		Failed      int     `json:"failed"`
		SuccessRate float64 `json:"success_rate"`
		Cases       []struct {
			Name   string `json:"name"`
			Passed bool   `json:"passed"`
			Error  string `json:"error"`
		} `json:"cases"`
		Bench []struct {
			Target string `json:"target"`
			Samples []struct {
				Metric string  `json:"metric"`
				Value  float64 `json:"value"`
				Unit   string  `json:"unit"`
			} `json:"samples"`
			Errors []string `json:"errors"`
		} `json:"bench"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, buf.String())
	}

	if decoded.AllPassed {
		t.Error("all_passed = true with a failing case")
	}
	if decoded.Passed != 2 || decoded.Failed != 1 {
		t.Errorf("passed/failed = %d/%d, want 2/1", decoded.Passed, decoded.Failed)
	}
	if len(decoded.Cases) != 3 {
		t.Fatalf("got %d cases, want 3", len(decoded.Cases))
	}
	if decoded.Cases[2].Error == "" {
		t.Error("failing case has no error message")
	}
	if len(decoded.Bench) != 1 || len(decoded.Bench[0].Samples) != 2 {
		t.Fatalf("bench encoding incomplete: %+v", decoded.Bench)
	}
	if decoded.Bench[0].Samples[0].Unit != "bytes" {
		t.Errorf("unit = %q, want bytes", decoded.Bench[0].Samples[0].Unit)
	}
	if len(decoded.Bench[0].Errors) != 1 {
		t.Errorf("collection errors = %v, want 1 message", decoded.Bench[0].Errors)
	}
}
