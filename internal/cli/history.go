package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/mindpilot/commandhq/internal/models"
)

type HistoryCmd struct {
	Habit string `help:"Only show logs for this habit id or name."`
	Limit int    `help:"Maximum entries to show, newest first." default:"20"`
}

var (
	histSuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	histFailStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	histDimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

func (cmd *HistoryCmd) Run(ctx *Context) error {
	var logs []models.CompletionLog
	var err error
	if cmd.Habit != "" {
		h, rerr := ctx.ResolveHabit(cmd.Habit)
		if rerr != nil {
			return rerr
		}
		logs, err = ctx.Store.GetLogsForHabit(h.ID)
	} else {
		logs, err = ctx.Store.GetAllLogs()
	}
	if err != nil {
		return err
	}
	if len(logs) == 0 {
		fmt.Println("No mission logs on record.")
		return nil
	}

	habits, err := ctx.Store.GetAllHabits()
	if err != nil {
		return err
	}
	names := map[string]string{}
	for _, h := range habits {
		names[h.ID] = h.Name
	}

	shown := 0
	for i := len(logs) - 1; i >= 0 && shown < cmd.Limit; i-- {
		l := logs[i]
		name, ok := names[l.HabitID]
		if !ok {
			// The habit was decommissioned; the log outlives it.
			name = "Decommissioned Protocol"
		}
		status := histSuccessStyle.Render("SECURED")
		if l.Status == models.StatusFail {
			status = histFailStyle.Render("FAILED ")
		}
		line := fmt.Sprintf("%s  %s  %-8s %s", l.Timestamp.Format("2006-01-02 15:04"), status, l.Difficulty, name)
		if l.Notes != "" {
			line += histDimStyle.Render("  " + l.Notes)
		}
		fmt.Println(line)
		shown++
	}
	return nil
}
