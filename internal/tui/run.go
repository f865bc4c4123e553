package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pathwarden/pathwarden/internal/cache"
	"github.com/pathwarden/pathwarden/internal/types"
)

// Run starts the interactive browser over a scan report. rescanFunc re-runs
// the scan when the user asks for it.
func Run(rep types.Report, rescanFunc func() (types.Report, error)) error {
	baseline, _ := cache.LoadBaseline(rep.Root)
	m := NewModel(rep, baseline, rescanFunc)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}
	return nil
}
