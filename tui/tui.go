package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/qemu-wasm/buildcheck"
	"github.com/qemu-wasm/buildcheck/bench"
	"github.com/qemu-wasm/buildcheck/suite"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	passStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	failStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700"))

	metricStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type browserModel struct {
	root     string
	targets  []buildcheck.Target
	opts     suite.Options
	summary  *suite.Summary
	filter   textinput.Model
	visible  []int
	selected int
	state    modelState
}

type modelState int

const (
	stateCaseList modelState = iota
	stateCaseDetail
	stateBenchView
	stateFilter
)

func newBrowserModel(root string, targets []buildcheck.Target, opts suite.Options) *browserModel {
	filter := textinput.New()
	filter.Placeholder = "case name"
	filter.Prompt = "filter: "
	filter.Width = 40

	return &browserModel{
		root:    root,
		targets: targets,
		opts:    opts,
		filter:  filter,
		state:   stateCaseList,
	}
}

type summaryMsg struct {
	summary *suite.Summary
}

func (m *browserModel) Init() tea.Cmd {
	return m.runChecks
}

func (m *browserModel) runChecks() tea.Msg {
	summary := suite.Execute(context.Background(), m.targets, m.opts)
	return summaryMsg{summary: &summary}
}

func (m *browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.state == stateFilter {
			return m.updateFilter(msg)
		}

		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case "up", "k":
			if m.state == stateCaseList && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateCaseList && m.selected < len(m.visible)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateCaseList:
				if len(m.visible) > 0 {
					m.state = stateCaseDetail
				}
			case stateCaseDetail, stateBenchView:
				m.state = stateCaseList
			}

		case "b":
			if m.state == stateCaseList && m.summary != nil && len(m.summary.Bench) > 0 {
				m.state = stateBenchView
			}

		case "/":
			if m.state == stateCaseList && m.summary != nil {
				m.state = stateFilter
				m.filter.Focus()
				return m, textinput.Blink
			}

		case "esc":
			if m.state == stateCaseDetail || m.state == stateBenchView {
				m.state = stateCaseList
			}
		}

	case summaryMsg:
		m.summary = msg.summary
		m.applyFilter()
	}

	return m, nil
}

// updateFilter owns every keystroke while the filter input has focus,
// so plain letters land in the input instead of the list bindings.
func (m *browserModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "enter":
		m.filter.Blur()
		m.state = stateCaseList
		m.applyFilter()
		return m, nil

	case "esc":
		m.filter.Blur()
		m.filter.SetValue("")
		m.state = stateCaseList
		m.applyFilter()
		return m, nil
	}

	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	m.applyFilter()
	return m, cmd
}

func (m *browserModel) applyFilter() {
	if m.summary == nil {
		return
	}
	query := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	m.visible = m.visible[:0]
	for i, r := range m.summary.Results {
		if query == "" || strings.Contains(strings.ToLower(r.Name), query) {
			m.visible = append(m.visible, i)
		}
	}
	if m.selected >= len(m.visible) {
		m.selected = 0
	}
}

func (m *browserModel) View() string {
	if m.summary == nil {
		return "Running checks..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("Build Check"))
	b.WriteString(" ")
	b.WriteString(m.root)
	b.WriteString("\n\n")

	switch m.state {
	case stateCaseDetail:
		m.viewDetail(&b)
	case stateBenchView:
		m.viewBench(&b)
	default:
		m.viewList(&b)
	}

	return b.String()
}

func (m *browserModel) viewList(b *strings.Builder) {
	if m.state == stateFilter {
		b.WriteString(m.filter.View())
		b.WriteString("\n\n")
	} else if m.filter.Value() != "" {
		b.WriteString(helpStyle.Render("filter: " + m.filter.Value()))
		b.WriteString("\n\n")
	}

	if len(m.visible) == 0 {
		b.WriteString(helpStyle.Render("no matching cases"))
		b.WriteString("\n")
	}

	for i, idx := range m.visible {
		r := m.summary.Results[idx]
		line := caseLine(r)
		switch {
		case i == m.selected && m.state == stateCaseList:
			b.WriteString(selectedStyle.Render("> " + line))
		case r.Passed:
			b.WriteString("  " + line)
		default:
			b.WriteString("  " + failStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("%d/%d passed", m.summary.Passed(), len(m.summary.Results)))
	if n := m.summary.WarningCount(); n == 1 {
		b.WriteString(warnStyle.Render(" • 1 warning"))
	} else if n > 1 {
		b.WriteString(warnStyle.Render(fmt.Sprintf(" • %d warnings", n)))
	}
	b.WriteString(helpStyle.Render(" • " + m.summary.Duration.Round(time.Millisecond).String()))
	b.WriteString("\n\n")

	if m.state == stateFilter {
		b.WriteString(helpStyle.Render("enter apply • esc clear"))
	} else {
		b.WriteString(helpStyle.Render("↑/↓ select • enter details • b benchmarks • / filter • q quit"))
	}
}

func caseLine(r suite.Result) string {
	status := "pass"
	if !r.Passed {
		status = "FAIL"
	}
	line := status + "  " + r.Name
	switch n := len(r.Warnings); {
	case n == 1:
		line += "  (1 warning)"
	case n > 1:
		line += fmt.Sprintf("  (%d warnings)", n)
	}
	return line
}

func (m *browserModel) viewDetail(b *strings.Builder) {
	r := m.summary.Results[m.visible[m.selected]]

	b.WriteString(r.Name)
	b.WriteString("\n\n")

	if r.Passed {
		b.WriteString(passStyle.Render("pass"))
	} else {
		b.WriteString(failStyle.Render("FAIL"))
	}
	b.WriteString(helpStyle.Render("  " + r.Duration.Round(10*time.Microsecond).String()))
	b.WriteString("\n")

	if r.Err != nil {
		b.WriteString("\n")
		b.WriteString(failStyle.Render(r.Err.Error()))
		b.WriteString("\n")
	}
	if len(r.Warnings) > 0 {
		b.WriteString("\n")
		for _, w := range r.Warnings {
			b.WriteString(warnStyle.Render("warning: " + w))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(helpStyle.Render("enter back • q quit"))
}

func (m *browserModel) viewBench(b *strings.Builder) {
	b.WriteString("Benchmarks\n\n")

	for _, br := range m.summary.Bench {
		b.WriteString(br.Target)
		b.WriteString("\n")
		for _, s := range br.Samples {
			b.WriteString(fmt.Sprintf("  %-30s %s\n", s.Metric, metricStyle.Render(sampleValue(s))))
		}
		for _, w := range br.Warnings {
			b.WriteString(warnStyle.Render("  warning: " + w))
			b.WriteString("\n")
		}
		for _, err := range br.Errors {
			b.WriteString(failStyle.Render("  error: " + err.Error()))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("enter back • q quit"))
}

func sampleValue(s bench.Sample) string {
	if s.Unit == bench.UnitBytes {
		return buildcheck.FormatBytes(int64(s.Value))
	}
	return fmt.Sprintf("%.2f %s", s.Value, s.Unit)
}

// Browse executes the standard suite for the given targets inside an
// alternate-screen terminal browser and blocks until the user exits.
// The returned summary is nil when the user quits before the checks
// finish; verdicts are never changed by browsing.
func Browse(root string, targets []buildcheck.Target, opts suite.Options) (*suite.Summary, error) {
	p := tea.NewProgram(newBrowserModel(root, targets, opts), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return nil, err
	}
	if m, ok := final.(*browserModel); ok {
		return m.summary, nil
	}
	return nil, nil
}
