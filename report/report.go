package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/qemu-wasm/buildcheck"
	"github.com/qemu-wasm/buildcheck/bench"
	"github.com/qemu-wasm/buildcheck/suite"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA"))

	passStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	failStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// Options controls text rendering.
type Options struct {
	// Color enables lipgloss styling. Leave off when the writer is not
	// a terminal.
	Color bool
}

func (o Options) style(s lipgloss.Style, text string) string {
	if !o.Color {
		return text
	}
	return s.Render(text)
}

// WriteText renders the summary as a case table, a warning list, the
// per-target benchmark metrics and an aggregate verdict line. Failures
// and warnings are kept visually distinct; the verdict reflects cases
// only.
func WriteText(w io.Writer, s *suite.Summary, opts Options) error {
	nameWidth := len("CASE")
	for _, r := range s.Results {
		if len(r.Name) > nameWidth {
			nameWidth = len(r.Name)
		}
	}

	var b strings.Builder
	b.WriteString(opts.style(headerStyle, fmt.Sprintf("  %-*s  %-6s  %s", nameWidth, "CASE", "STATUS", "DURATION")))
	b.WriteByte('\n')

	for _, r := range s.Results {
		status := opts.style(passStyle, "pass")
		if !r.Passed {
			status = opts.style(failStyle, "FAIL")
		}
		// The styled status carries invisible escape bytes, so pad the
		// name column instead of the status column.
		fmt.Fprintf(&b, "  %-*s  %s    %s\n",
			nameWidth, r.Name, status, formatDuration(r.Duration))
		if r.Err != nil {
			fmt.Fprintf(&b, "      %s\n", opts.style(failStyle, r.Err.Error()))
		}
	}

	writeWarnings(&b, s, opts)
	writeBench(&b, s, opts)

	b.WriteByte('\n')
	fmt.Fprintf(&b, "%d cases: %d passed, %d failed (%.1f%% success) in %s\n",
		len(s.Results), s.Passed(), s.Failed(), s.SuccessRate(), formatDuration(s.Duration))
	if s.AllPassed() {
		fmt.Fprintf(&b, "RESULT: %s\n", opts.style(passStyle, "PASS"))
	} else {
		fmt.Fprintf(&b, "RESULT: %s\n", opts.style(failStyle, "FAIL"))
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeWarnings(b *strings.Builder, s *suite.Summary, opts Options) {
	if s.WarningCount() == 0 {
		return
	}
	b.WriteByte('\n')
	b.WriteString(opts.style(headerStyle, "Warnings:"))
	b.WriteByte('\n')
	for _, r := range s.Results {
		for _, w := range r.Warnings {
			fmt.Fprintf(b, "  %s\n", opts.style(warnStyle, r.Name+": "+w))
		}
	}
	for _, br := range s.Bench {
		for _, w := range br.Warnings {
			fmt.Fprintf(b, "  %s\n", opts.style(warnStyle, "bench "+br.Target+": "+w))
		}
	}
}

// WriteBenchText renders benchmark reports alone, one block per
// target, for runs that collect metrics without validating.
func WriteBenchText(w io.Writer, reports []suite.BenchReport, opts Options) error {
	var b strings.Builder
	for _, br := range reports {
		writeBenchReport(&b, br, opts, true)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeBench(b *strings.Builder, s *suite.Summary, opts Options) {
	if len(s.Bench) == 0 {
		return
	}
	b.WriteByte('\n')
	b.WriteString(opts.style(headerStyle, "Benchmarks:"))
	b.WriteByte('\n')
	for _, br := range s.Bench {
		// Warnings already went into the warning section above.
		writeBenchReport(b, br, opts, false)
	}
}

func writeBenchReport(b *strings.Builder, br suite.BenchReport, opts Options, withWarnings bool) {
	fmt.Fprintf(b, "  %s\n", br.Target)
	for _, sample := range br.Samples {
		fmt.Fprintf(b, "    %-40s %s\n", sample.Metric, formatSample(sample))
	}
	if withWarnings {
		for _, w := range br.Warnings {
			fmt.Fprintf(b, "    %s\n", opts.style(warnStyle, "warning: "+w))
		}
	}
	for _, err := range br.Errors {
		fmt.Fprintf(b, "    %s\n", opts.style(dimStyle, "collection error: "+err.Error()))
	}
}

func formatSample(s bench.Sample) string {
	switch s.Unit {
	case bench.UnitBytes:
		return buildcheck.FormatBytes(int64(s.Value))
	case bench.UnitMillis:
		return fmt.Sprintf("%.2f ms", s.Value)
	default:
		return fmt.Sprintf("%v %s", s.Value, s.Unit)
	}
}

func formatDuration(d time.Duration) string {
	return d.Round(10 * time.Microsecond).String()
}
