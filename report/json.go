package report

import (
	"encoding/json"
	"io"

	"github.com/qemu-wasm/buildcheck/bench"
	"github.com/qemu-wasm/buildcheck/suite"
)

// jsonSummary is the CI-facing encoding of a suite run.
type jsonSummary struct {
	AllPassed   bool        `json:"all_passed"`
	Passed      int         `json:"passed"`
	Failed      int         `json:"failed"`
	SuccessRate float64     `json:"success_rate"`
	DurationMS  float64     `json:"duration_ms"`
	Cases       []jsonCase  `json:"cases"`
	Bench       []jsonBench `json:"bench,omitempty"`
}

type jsonCase struct {
	Name       string   `json:"name"`
	Passed     bool     `json:"passed"`
	Error      string   `json:"error,omitempty"`
	Warnings   []string `json:"warnings,omitempty"`
	DurationMS float64  `json:"duration_ms"`
}

type jsonBench struct {
	Target   string         `json:"target"`
	Samples  []bench.Sample `json:"samples,omitempty"`
	Warnings []string       `json:"warnings,omitempty"`
	Errors   []string       `json:"errors,omitempty"`
}

// WriteJSON renders the summary as indented JSON. Error values are
// flattened to their messages; everything else maps one to one.
func WriteJSON(w io.Writer, s *suite.Summary) error {
	out := jsonSummary{
		AllPassed:   s.AllPassed(),
		Passed:      s.Passed(),
		Failed:      s.Failed(),
		SuccessRate: s.SuccessRate(),
		DurationMS:  float64(s.Duration.Microseconds()) / 1000,
		Cases:       make([]jsonCase, 0, len(s.Results)),
	}

	for _, r := range s.Results {
		c := jsonCase{
			Name:       r.Name,
			Passed:     r.Passed,
			Warnings:   r.Warnings,
			DurationMS: float64(r.Duration.Microseconds()) / 1000,
		}
		if r.Err != nil {
			c.Error = r.Err.Error()
		}
		out.Cases = append(out.Cases, c)
	}

	for _, br := range s.Bench {
		out.Bench = append(out.Bench, toJSONBench(br))
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// WriteBenchJSON renders benchmark reports alone as an indented JSON
// array, one element per target.
func WriteBenchJSON(w io.Writer, reports []suite.BenchReport) error {
	out := make([]jsonBench, 0, len(reports))
	for _, br := range reports {
		out = append(out, toJSONBench(br))
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func toJSONBench(br suite.BenchReport) jsonBench {
	jb := jsonBench{
		Target:   br.Target,
		Samples:  br.Samples,
		Warnings: br.Warnings,
	}
	for _, err := range br.Errors {
		jb.Errors = append(jb.Errors, err.Error())
	}
	return jb
}
