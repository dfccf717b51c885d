package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/mindpilot/commandhq/internal/models"
	"github.com/mindpilot/commandhq/internal/phases"
	"github.com/mindpilot/commandhq/internal/stats"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.loadErr != nil {
		return docStyle.Render(failedStyle.Render("Store error: " + m.loadErr.Error()))
	}

	var content string
	switch m.state {
	case StateOps:
		content = m.viewOps()
	case StateStats:
		content = m.viewStats()
	case StateIntel:
		content = m.viewIntel()
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewHeader(),
		m.viewTabs(),
		content,
		m.help.View(m.keys),
	)
}

func (m Model) viewHeader() string {
	left := headerStyle.Render(fmt.Sprintf("COMMAND HQ // OPERATOR %s", strings.ToUpper(m.profile.Name)))
	right := fmt.Sprintf("Motivation %d  Max streak %d", m.profile.MotivationScore, m.report.MaxStreak)
	return docStyle.Render(left + "\n" + dimStyle.Render(right))
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range tabTitles {
		if m.state == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewOps() string {
	var b strings.Builder

	day := "TODAY"
	if m.tomorrow {
		day = "TOMORROW"
	}
	b.WriteString(dimStyle.Render(day) + "\n")

	if len(m.rows) == 0 {
		b.WriteString("\nNo operations scheduled.\n")
		return docStyle.Render(b.String())
	}

	var lastPhase phases.Phase
	for i, row := range m.rows {
		if row.phase != lastPhase || i == 0 {
			b.WriteString("\n" + phaseStyle.Render(phases.Labels[row.phase]) + "\n")
			lastPhase = row.phase
		}

		cursor := "  "
		if i == m.cursor {
			cursor = cursorStyle.Render("> ")
		}
		mark := "  "
		switch row.status {
		case models.StatusSuccess:
			mark = securedStyle.Render("✓ ")
		case models.StatusFail:
			mark = failedStyle.Render("✗ ")
		}
		line := fmt.Sprintf("%s%s%s  %s", cursor, mark, row.habit.Time, row.habit.Name)
		if row.habit.Streak > 0 {
			line += streakStyle.Render(fmt.Sprintf("  %d", row.habit.Streak))
		}
		b.WriteString(line + "\n")
	}

	if !m.tomorrow {
		habits := make([]models.Habit, len(m.rows))
		for i, row := range m.rows {
			habits[i] = row.habit
		}
		if next, ok := phases.NextOperation(habits, time.Now()); ok {
			b.WriteString("\n" + statusStyle.Render(fmt.Sprintf("NEXT OPERATION: %s at %s", next.Name, next.Time)) + "\n")
		}
	}
	if m.status != "" {
		b.WriteString("\n" + statusStyle.Render(m.status) + "\n")
	}
	return docStyle.Render(b.String())
}

func (m Model) viewStats() string {
	var b strings.Builder
	r := m.report

	b.WriteString(fmt.Sprintf("Missions %d  Secured %d  Failed %d  Rate %d%%\n",
		r.MissionsTotal, r.Successes, r.Failures, r.GlobalRate))
	b.WriteString(fmt.Sprintf("Perfect days %d  Volatility %d\n\n", r.PerfectDays, r.Volatility))

	for _, s := range r.Heatmap {
		b.WriteString(fmt.Sprintf("%-10s %s\n", s.Period, heatBar(s)))
	}

	if len(r.Categories) > 0 {
		b.WriteString("\n")
		for _, c := range r.Categories {
			b.WriteString(fmt.Sprintf("%-20s %3d%%\n", c.Name, c.Rate))
		}
	}
	return docStyle.Render(b.String())
}

func heatBar(s stats.Sector) string {
	return securedStyle.Render(strings.Repeat("■", s.Successes)) +
		failedStyle.Render(strings.Repeat("■", s.Failures))
}

// viewIntel shows the tail of the coach transcript. Conversation happens
// through 'hq coach'.
func (m Model) viewIntel() string {
	var b strings.Builder
	chat := m.chat
	if len(chat) > 10 {
		chat = chat[len(chat)-10:]
	}
	for _, msg := range chat {
		who := "YOU  "
		text := msg.Text
		if msg.Role == models.RoleCoach {
			who = "COACH"
			text = statusStyle.Render(text)
		}
		b.WriteString(dimStyle.Render(msg.Timestamp.Format("Jan 02 15:04")+" "+who) + " " + text + "\n")
	}
	return docStyle.Render(b.String())
}
