package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mindpilot/commandhq/internal/models"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tickMsg:
		m.reload()
		return m, tick()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Tab):
			m.state = (m.state + 1) % SessionState(len(tabTitles))
		case key.Matches(msg, m.keys.ShiftTab):
			m.state = (m.state - 1 + SessionState(len(tabTitles))) % SessionState(len(tabTitles))
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, m.keys.Refresh):
			m.reload()
		}

		if m.state == StateOps {
			return m.updateOps(msg)
		}
	}

	return m, nil
}

func (m Model) updateOps(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Toggle):
		m.tomorrow = !m.tomorrow
		m.cursor = 0
		m.reload()
	case key.Matches(msg, m.keys.Secure):
		m.fileReport(models.StatusSuccess)
	case key.Matches(msg, m.keys.Fail):
		m.fileReport(models.StatusFail)
	}
	return m, nil
}

// fileReport finalizes the selected habit at medium difficulty. Detailed
// reports with difficulty and breach counts go through 'hq report'.
func (m *Model) fileReport(status models.CompletionStatus) {
	if m.tomorrow || m.cursor >= len(m.rows) {
		return
	}
	row := m.rows[m.cursor]
	if row.status != "" {
		m.status = fmt.Sprintf("Report for %s already filed today.", row.habit.Name)
		return
	}
	outcome, err := m.app.FinalizeMission(row.habit.ID, models.DifficultyMedium, "", status, 0)
	if err != nil {
		m.status = "Report failed: " + err.Error()
		return
	}
	m.status = outcome.Message
	m.reload()
}
