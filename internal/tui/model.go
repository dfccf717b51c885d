// Package tui is the full-screen command dashboard.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mindpilot/commandhq/internal/constants"
	"github.com/mindpilot/commandhq/internal/models"
	"github.com/mindpilot/commandhq/internal/phases"
	"github.com/mindpilot/commandhq/internal/state"
	"github.com/mindpilot/commandhq/internal/stats"
)

type SessionState int

const (
	StateOps SessionState = iota
	StateStats
	StateIntel
)

var tabTitles = []string{"Ops", "Stats", "Intel"}

// opRow is one selectable line on the Ops tab. Phase headings are rendered
// between rows, so the row keeps its phase for grouping.
type opRow struct {
	habit  models.Habit
	phase  phases.Phase
	status models.CompletionStatus // empty when no report is filed today
}

type Model struct {
	app      *state.App
	state    SessionState
	keys     KeyMap
	help     help.Model
	profile  models.UserProfile
	rows     []opRow
	cursor   int
	tomorrow bool
	report   stats.Report
	chat     []models.ChatMessage
	status   string
	loadErr  error
	width    int
	height   int
	quitting bool
}

func NewModel(app *state.App) Model {
	m := Model{
		app:   app,
		state: StateOps,
		keys:  DefaultKeyMap(),
		help:  help.New(),
	}
	m.reload()
	return m
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(30*time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tick()
}

// reload pulls fresh data from the store into the model. Called on startup,
// after filing a report, and on the refresh tick.
func (m *Model) reload() {
	store := m.app.Store()

	profile, err := store.GetProfile()
	if err != nil {
		m.loadErr = err
		return
	}
	habits, err := store.GetAllHabits()
	if err != nil {
		m.loadErr = err
		return
	}
	logs, err := store.GetAllLogs()
	if err != nil {
		m.loadErr = err
		return
	}
	chat, err := store.GetChatHistory()
	if err != nil {
		m.loadErr = err
		return
	}

	now := time.Now()
	date := now
	if m.tomorrow {
		date = now.AddDate(0, 0, 1)
	}

	reported := map[string]models.CompletionStatus{}
	day := date.Format(constants.DateFormat)
	for _, l := range logs {
		if l.Timestamp.Format(constants.DateFormat) == day {
			reported[l.HabitID] = l.Status
		}
	}

	grouped := phases.Group(habits, date)
	var rows []opRow
	for _, p := range phases.Phases {
		for _, h := range grouped[p] {
			rows = append(rows, opRow{habit: h, phase: p, status: reported[h.ID]})
		}
	}

	m.loadErr = nil
	m.profile = profile
	m.rows = rows
	m.report = stats.Compute(habits, logs, now)
	m.chat = chat
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}
