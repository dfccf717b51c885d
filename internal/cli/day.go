package cli

import (
	"fmt"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/mindpilot/commandhq/internal/constants"
	"github.com/mindpilot/commandhq/internal/models"
	"github.com/mindpilot/commandhq/internal/phases"
)

type DayCmd struct {
	Tomorrow bool `help:"Show tomorrow's schedule instead of today's." short:"t"`
}

var (
	phaseHeadingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	dayDateStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	nextOpStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	doneMarkStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

func (cmd *DayCmd) Run(ctx *Context) error {
	habits, err := ctx.Store.GetAllHabits()
	if err != nil {
		return err
	}
	logs, err := ctx.Store.GetAllLogs()
	if err != nil {
		return err
	}

	now := time.Now()
	date := now
	if cmd.Tomorrow {
		date = now.AddDate(0, 0, 1)
	}

	fmt.Println(dayDateStyle.Render(date.Format("Monday, January 2 2006")))

	grouped := phases.Group(habits, date)
	reported := reportedOn(logs, date)
	empty := true
	for _, p := range phases.Phases {
		bucket := grouped[p]
		if len(bucket) == 0 {
			continue
		}
		empty = false
		fmt.Println()
		fmt.Println(phaseHeadingStyle.Render(phases.Labels[p]))
		for _, h := range bucket {
			mark := "  "
			if !cmd.Tomorrow {
				if status, ok := reported[h.ID]; ok {
					if status == models.StatusSuccess {
						mark = doneMarkStyle.Render("✓ ")
					} else {
						mark = "✗ "
					}
				}
			}
			line := fmt.Sprintf("%s%s  %s", mark, h.Time, h.Name)
			if h.DurationMin > 0 {
				line += fmt.Sprintf(" (%d min)", h.DurationMin)
			}
			fmt.Println(line)
		}
	}
	if empty {
		fmt.Println("\nNo operations scheduled.")
		return nil
	}

	if !cmd.Tomorrow {
		if next, ok := phases.NextOperation(habits, now); ok {
			fmt.Println()
			fmt.Println(nextOpStyle.Render(fmt.Sprintf("NEXT OPERATION: %s at %s", next.Name, next.Time)))
		}
	}
	return nil
}

// reportedOn maps habit ids to the status of their mission report filed on
// the given day, if any.
func reportedOn(logs []models.CompletionLog, date time.Time) map[string]models.CompletionStatus {
	day := date.Format(constants.DateFormat)
	out := map[string]models.CompletionStatus{}
	for _, l := range logs {
		if l.Timestamp.Format(constants.DateFormat) == day {
			out[l.HabitID] = l.Status
		}
	}
	return out
}
