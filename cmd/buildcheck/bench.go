package main

import (
	"github.com/spf13/cobra"

	"github.com/qemu-wasm/buildcheck"
	"github.com/qemu-wasm/buildcheck/bench"
	"github.com/qemu-wasm/buildcheck/report"
	"github.com/qemu-wasm/buildcheck/suite"
)

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Collect size and load metrics without validating",
	Long: `bench lists each target's artifacts and measures aggregate sizes,
glue script load time and wasm compile latency. Threshold crossings
come out as warnings; nothing bench measures affects the exit
status.`,
	RunE: runBench,
}

func runBench(cmd *cobra.Command, args []string) error {
	if err := checkFormat(); err != nil {
		return err
	}
	cmd.SilenceUsage = true

	root := cfg.GetString("root")
	targets, err := buildcheck.DiscoverTargets(root)
	if err != nil {
		return err
	}

	reports := make([]suite.BenchReport, 0, len(targets))
	for i := range targets {
		target := &targets[i]
		if err := buildcheck.LoadArtifacts(target); err != nil {
			return err
		}
		c := bench.Run(cmd.Context(), target)
		reports = append(reports, suite.BenchReport{
			Target:   target.Name,
			Samples:  c.Samples,
			Warnings: c.Warnings,
			Errors:   c.Errors,
		})
	}

	out := cmd.OutOrStdout()
	if format == "json" {
		return report.WriteBenchJSON(out, reports)
	}
	return report.WriteBenchText(out, reports, report.Options{Color: colorFor(out)})
}
