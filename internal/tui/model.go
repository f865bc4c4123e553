package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pathwarden/pathwarden/internal/cache"
	"github.com/pathwarden/pathwarden/internal/types"
)

var (
	tableBorderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240"))

	detailPaneBorderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240"))

	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true).
			Padding(0, 1)

	keyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("7")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("7"))

	emptyTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("15")).
			Align(lipgloss.Center)

	catDirStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	catNameStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	catExtStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

func categoryStyle(c types.Category) lipgloss.Style {
	switch c {
	case types.CatDirectory:
		return catDirStyle
	case types.CatFilename:
		return catNameStyle
	default:
		return catExtStyle
	}
}

// categoryText returns plain text for a category (ANSI codes break table
// truncation).
func categoryText(c types.Category) string {
	switch c {
	case types.CatDirectory:
		return "DIR"
	case types.CatFilename:
		return "NAME"
	case types.CatExtension:
		return "EXT"
	default:
		return string(c)
	}
}

type statusMsg string
type reportMsg types.Report

// Model is the interactive browser over the skipped-file section of a scan
// report.
type Model struct {
	table         table.Model
	viewport      viewport.Model
	spinner       spinner.Model
	report        types.Report
	acknowledged  map[string]bool // paths already present in the baseline
	rescanFunc    func() (types.Report, error)
	quitting      bool
	ready         bool // terminal dimensions known
	scanning      bool
	showHelp      bool
	height        int
	width         int
	statusMessage string
	statusTimeout *time.Time
}

// NewModel initializes the TUI over a finished scan report. baseline marks
// paths the user has already reviewed; rescanFunc re-runs the scan on demand.
func NewModel(rep types.Report, baseline cache.Baseline, rescanFunc func() (types.Report, error)) Model {
	acknowledged := make(map[string]bool, len(baseline.Entries))
	for path := range baseline.Entries {
		acknowledged[path] = true
	}

	t := table.New(
		table.WithColumns(skippedColumns()),
		table.WithRows(skippedRows(rep.Skipped, acknowledged)),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = lipgloss.NewStyle().
		Background(lipgloss.Color("235")).
		Foreground(lipgloss.Color("15")).
		Bold(true).
		Padding(0, 1).
		Align(lipgloss.Left)
	s.Selected = lipgloss.NewStyle().
		Foreground(lipgloss.Color("232")).
		Background(lipgloss.Color("208")).
		Bold(true).
		Padding(0, 1)
	s.Cell = lipgloss.NewStyle().
		Padding(0, 1)
	t.SetStyles(s)

	// Line spinner avoids Braille characters that render poorly on some terminals
	sp := spinner.New()
	sp.Spinner = spinner.Line
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	m := Model{
		table:        t,
		spinner:      sp,
		report:       rep,
		acknowledged: acknowledged,
		rescanFunc:   rescanFunc,
	}
	m.statusMessage = "q: quit | ?: help | j/k: navigate | c: copy path | a: acknowledge | r: rescan"
	if len(rep.Skipped) == 0 {
		m.statusMessage = "q: quit | r: rescan"
	}
	return m
}

func skippedColumns() []table.Column {
	return []table.Column{
		{Title: "Type", Width: 6},
		{Title: "Path", Width: 48},
		{Title: "Reason", Width: 36},
	}
}

func skippedRows(skipped []types.SkippedFile, acknowledged map[string]bool) []table.Row {
	rows := make([]table.Row, len(skipped))
	for i, sf := range skipped {
		cat := categoryText(sf.Category)
		if acknowledged[sf.Path] {
			cat = "(a) " + cat
		}
		rows[i] = table.Row{cat, sf.Path, sf.Reason}
	}
	return rows
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *Model) selectedSkipped() *types.SkippedFile {
	i := m.table.Cursor()
	if i < 0 || i >= len(m.report.Skipped) {
		return nil
	}
	return &m.report.Skipped[i]
}

func (m *Model) rescan() tea.Cmd {
	return func() tea.Msg {
		if m.rescanFunc == nil {
			return statusMsg("Rescan not available")
		}
		rep, err := m.rescanFunc()
		if err != nil {
			return statusMsg(fmt.Sprintf("Scan error: %v", err))
		}
		return reportMsg(rep)
	}
}

func (m *Model) copyPath() tea.Cmd {
	sf := m.selectedSkipped()
	if sf == nil {
		return nil
	}
	if err := clipboard.WriteAll(sf.Path); err != nil {
		return func() tea.Msg { return statusMsg(fmt.Sprintf("Clipboard error: %v", err)) }
	}
	return func() tea.Msg { return statusMsg("Copied path to clipboard") }
}

// acknowledge records the selected path in the on-disk baseline so the next
// audit treats it as reviewed.
func (m *Model) acknowledge() tea.Cmd {
	sf := m.selectedSkipped()
	if sf == nil {
		return nil
	}
	path, reason := sf.Path, sf.Reason
	m.acknowledged[path] = true
	m.table.SetRows(skippedRows(m.report.Skipped, m.acknowledged))
	return func() tea.Msg {
		b, _ := cache.LoadBaseline(m.report.Root)
		b.Entries[path] = reason
		if err := cache.SaveBaseline(m.report.Root, b); err != nil {
			return statusMsg(fmt.Sprintf("Baseline error: %v", err))
		}
		return statusMsg("Acknowledged " + path)
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		tableHeight := m.height/2 - 4
		if tableHeight < 4 {
			tableHeight = 4
		}
		m.table.SetHeight(tableHeight)
		m.table.SetWidth(m.width - 2)
		if !m.ready {
			m.viewport = viewport.New(m.width-4, m.height-tableHeight-7)
			m.ready = true
		} else {
			m.viewport.Width = m.width - 4
			m.viewport.Height = m.height - tableHeight - 7
		}
		m.viewport.SetContent(m.detailContent())
		return m, nil

	case statusMsg:
		m.statusMessage = string(msg)
		t := time.Now().Add(3 * time.Second)
		m.statusTimeout = &t
		return m, nil

	case reportMsg:
		m.scanning = false
		m.report = types.Report(msg)
		m.table.SetRows(skippedRows(m.report.Skipped, m.acknowledged))
		m.table.SetCursor(0)
		m.viewport.SetContent(m.detailContent())
		m.statusMessage = fmt.Sprintf("Rescan complete: %d skipped, %d scanned",
			len(m.report.Skipped), m.report.FilesScanned)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if m.showHelp {
			m.showHelp = false
			return m, nil
		}
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "?":
			m.showHelp = true
			return m, nil
		case "r":
			if !m.scanning {
				m.scanning = true
				m.statusMessage = "Rescanning..."
				return m, tea.Batch(m.spinner.Tick, m.rescan())
			}
			return m, nil
		case "c":
			return m, m.copyPath()
		case "a":
			return m, m.acknowledge()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	m.viewport.SetContent(m.detailContent())
	return m, cmd
}

func (m Model) detailContent() string {
	sf := m.selectedSkipped()
	if sf == nil {
		return "Nothing selected."
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s\n\n", keyStyle.Render("Path:"), sf.Path)
	fmt.Fprintf(&sb, "%s %s\n", keyStyle.Render("Rule:"), categoryStyle(sf.Category).Render(string(sf.Category)))
	fmt.Fprintf(&sb, "%s %s\n", keyStyle.Render("Reason:"), sf.Reason)
	if m.acknowledged[sf.Path] {
		fmt.Fprintf(&sb, "\n%s\n", "Acknowledged in baseline")
	}
	sb.WriteString("\nFile content was never read during the scan.\n")
	return sb.String()
}

func (m Model) helpView() string {
	lines := []string{
		titleStyle.Render("Pathwarden keys"),
		"",
		"  j/k, arrows   navigate skipped files",
		"  c             copy selected path",
		"  a             acknowledge (add to baseline)",
		"  r             rescan the project",
		"  ?             toggle this help",
		"  q             quit",
		"",
		"Press any key to close.",
	}
	return strings.Join(lines, "\n")
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Initializing..."
	}
	if m.showHelp {
		return m.helpView()
	}

	title := titleStyle.Render(fmt.Sprintf("pathwarden — %s", m.report.Root))
	counts := fmt.Sprintf("%d skipped | %d scanned | %d inaccessible",
		len(m.report.Skipped), m.report.FilesScanned, m.report.Inaccessible)
	if m.report.Truncated {
		counts += " | truncated"
	}

	var body string
	if len(m.report.Skipped) == 0 {
		body = tableBorderStyle.Render(
			emptyTextStyle.Width(m.width - 4).Render("\nNo sensitive files were skipped ✅\n"))
	} else {
		body = tableBorderStyle.Render(m.table.View())
	}

	status := m.statusMessage
	if m.statusTimeout != nil && time.Now().After(*m.statusTimeout) {
		status = ""
	}
	if m.scanning {
		status = m.spinner.View() + " Rescanning..."
	}

	return strings.Join([]string{
		title,
		counts,
		body,
		detailPaneBorderStyle.Render(m.viewport.View()),
		statusStyle.Width(m.width).Render(status),
	}, "\n")
}
