package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mindpilot/commandhq/internal/models"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Register a new protocol."`
	Edit   HabitEditCmd   `cmd:"" help:"Amend an existing protocol."`
	Delete HabitDeleteCmd `cmd:"" help:"Decommission a protocol. Mission logs are retained."`
	List   HabitListCmd   `cmd:"" help:"List all registered protocols."`
}

type HabitAddCmd struct {
	Name      string `arg:"" help:"Protocol name."`
	Time      string `help:"Scheduled time (HH:MM)." required:""`
	Category  string `help:"Operational category." default:"General"`
	Duration  int    `help:"Duration in minutes." default:"0"`
	Notes     string `help:"Standing orders."`
	Intention string `help:"Mission intention shown on alerts."`
	Every     int    `help:"Repeat every N days instead of fixed weekdays." default:"0"`
	Days      string `help:"Comma-separated weekdays (mon,wed,fri). Empty means daily."`
	Blocker   bool   `help:"Engage the distraction blocker during focus sessions."`
	Alert     string `help:"Alert style: standard, phone_call, or voice_ai." default:"standard"`
}

func (cmd *HabitAddCmd) Run(ctx *Context) error {
	alert, err := ParseAlertType(cmd.Alert)
	if err != nil {
		return err
	}

	h := models.Habit{
		Name:               cmd.Name,
		Category:           cmd.Category,
		Time:               cmd.Time,
		DurationMin:        cmd.Duration,
		Notes:              cmd.Notes,
		Intention:          cmd.Intention,
		DistractionBlocker: cmd.Blocker,
		AlertType:          alert,
	}
	if cmd.Every > 0 {
		h.RecurrenceMode = models.RecurrenceInterval
		h.IntervalDays = cmd.Every
	} else {
		h.RecurrenceMode = models.RecurrenceFixed
		if cmd.Days != "" {
			days, err := ParseWeekdays(cmd.Days)
			if err != nil {
				return err
			}
			h.Days = days
		}
	}

	created, err := ctx.App.AddHabit(h)
	if err != nil {
		return err
	}
	fmt.Printf("Protocol %s registered (%s at %s).\n", created.Name, created.FormatRecurrence(), created.Time)
	ctx.PerformAutomaticBackup()
	return nil
}

type HabitEditCmd struct {
	Habit     string  `arg:"" help:"Habit id or name."`
	Name      *string `help:"New protocol name."`
	Time      *string `help:"New scheduled time (HH:MM)."`
	Category  *string `help:"New category."`
	Duration  *int    `help:"New duration in minutes."`
	Notes     *string `help:"New standing orders."`
	Intention *string `help:"New mission intention."`
	Every     *int    `help:"Repeat every N days. 0 switches back to fixed weekdays."`
	Days      *string `help:"Comma-separated weekdays. Empty string means daily."`
	Blocker   *bool   `help:"Engage or disengage the distraction blocker."`
	Alert     *string `help:"Alert style: standard, phone_call, or voice_ai."`
}

func (cmd *HabitEditCmd) Run(ctx *Context) error {
	h, err := ctx.ResolveHabit(cmd.Habit)
	if err != nil {
		return err
	}

	if cmd.Name != nil {
		h.Name = *cmd.Name
	}
	if cmd.Time != nil {
		h.Time = *cmd.Time
	}
	if cmd.Category != nil {
		h.Category = *cmd.Category
	}
	if cmd.Duration != nil {
		h.DurationMin = *cmd.Duration
	}
	if cmd.Notes != nil {
		h.Notes = *cmd.Notes
	}
	if cmd.Intention != nil {
		h.Intention = *cmd.Intention
	}
	if cmd.Every != nil {
		if *cmd.Every > 0 {
			h.RecurrenceMode = models.RecurrenceInterval
			h.IntervalDays = *cmd.Every
			h.Days = nil
		} else {
			h.RecurrenceMode = models.RecurrenceFixed
			h.IntervalDays = 0
		}
	}
	if cmd.Days != nil {
		days, err := ParseWeekdays(*cmd.Days)
		if err != nil {
			return err
		}
		h.RecurrenceMode = models.RecurrenceFixed
		h.IntervalDays = 0
		h.Days = days
	}
	if cmd.Blocker != nil {
		h.DistractionBlocker = *cmd.Blocker
	}
	if cmd.Alert != nil {
		alert, err := ParseAlertType(*cmd.Alert)
		if err != nil {
			return err
		}
		h.AlertType = alert
	}

	updated, err := ctx.App.UpdateHabit(h)
	if err != nil {
		return err
	}
	fmt.Printf("Protocol %s updated.\n", updated.Name)
	ctx.PerformAutomaticBackup()
	return nil
}

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
	Force bool   `help:"Skip the confirmation prompt." short:"f"`
}

func (cmd *HabitDeleteCmd) Run(ctx *Context) error {
	h, err := ctx.ResolveHabit(cmd.Habit)
	if err != nil {
		return err
	}
	if !cmd.Force {
		fmt.Printf("Decommission protocol %s? Mission logs are retained. [y/N] ", h.Name)
		var answer string
		fmt.Scanln(&answer)
		if strings.ToLower(strings.TrimSpace(answer)) != "y" {
			fmt.Println("Aborted.")
			return nil
		}
	}
	if err := ctx.App.DeleteHabit(h.ID); err != nil {
		return err
	}
	fmt.Printf("Protocol %s decommissioned.\n", h.Name)
	ctx.PerformAutomaticBackup()
	return nil
}

type HabitListCmd struct{}

var (
	listNameStyle   = lipgloss.NewStyle().Bold(true)
	listMetaStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	listStreakStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
)

func (cmd *HabitListCmd) Run(ctx *Context) error {
	habits, err := ctx.Store.GetAllHabits()
	if err != nil {
		return err
	}
	if len(habits) == 0 {
		fmt.Println("No protocols registered. Run 'hq habit add' or 'hq deploy' to begin.")
		return nil
	}

	for _, h := range habits {
		streak := ""
		if h.Streak > 0 {
			streak = listStreakStyle.Render(fmt.Sprintf("  streak %d", h.Streak))
		}
		fmt.Printf("%s%s\n", listNameStyle.Render(h.Name), streak)
		line := fmt.Sprintf("  %s  %s  %s", h.Time, h.FormatRecurrence(), h.Category)
		if h.AlertType != models.AlertStandard && h.AlertType != "" {
			line += "  [" + string(h.AlertType) + "]"
		}
		fmt.Println(listMetaStyle.Render(line))
		fmt.Println(listMetaStyle.Render("  id " + h.ID))
	}
	return nil
}
