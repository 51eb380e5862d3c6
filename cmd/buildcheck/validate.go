package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/qemu-wasm/buildcheck"
	"github.com/qemu-wasm/buildcheck/report"
	"github.com/qemu-wasm/buildcheck/suite"
	"github.com/qemu-wasm/buildcheck/tui"
)

var (
	deep        bool
	interactive bool

	validateCmd = &cobra.Command{
		Use:   "validate",
		Short: "Run the full check suite over the build tree",
		Long: `validate discovers every target under the root and runs the standard
check sequence per target: artifact listing, structure, binary
format, syntax, metadata, API contract and resource configuration,
plus benchmark collection. The process exits 0 only when every case
passes; benchmark warnings never affect the verdict.`,
		RunE: runValidate,
	}
)

func init() {
	validateCmd.Flags().BoolVar(&deep, "deep", false, "scan sections and compile every binary module")
	validateCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "browse results in a terminal UI")
}

func runValidate(cmd *cobra.Command, args []string) error {
	if err := checkFormat(); err != nil {
		return err
	}
	cmd.SilenceUsage = true

	root := cfg.GetString("root")
	targets, err := buildcheck.DiscoverTargets(root)
	if err != nil {
		return err
	}

	opts := suite.Options{Deep: deep}

	var summary suite.Summary
	if interactive {
		browsed, err := tui.Browse(root, targets, opts)
		if err != nil {
			return err
		}
		if browsed == nil {
			// Quit before the checks finished; nothing to judge.
			return nil
		}
		summary = *browsed
	} else {
		summary = suite.Execute(cmd.Context(), targets, opts)
		if err := writeReport(cmd.OutOrStdout(), &summary); err != nil {
			return err
		}
	}

	if !summary.AllPassed() {
		return &ExitError{
			Code: 1,
			Err:  fmt.Errorf("%d of %d cases failed", summary.Failed(), len(summary.Results)),
		}
	}
	return nil
}

func writeReport(w io.Writer, summary *suite.Summary) error {
	if format == "json" {
		return report.WriteJSON(w, summary)
	}
	return report.WriteText(w, summary, report.Options{Color: colorFor(w)})
}
