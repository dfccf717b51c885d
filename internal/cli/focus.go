package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/mindpilot/commandhq/internal/coach"
	"github.com/mindpilot/commandhq/internal/logger"
	"github.com/mindpilot/commandhq/internal/models"
)

type FocusCmd struct {
	Habit    string `arg:"" help:"Habit id or name."`
	Duration int    `help:"Session length in minutes. Defaults to the habit's duration, or 25." default:"0"`
}

var (
	focusHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
	breachStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func (cmd *FocusCmd) Run(ctx *Context) error {
	habit, err := ctx.ResolveHabit(cmd.Habit)
	if err != nil {
		return err
	}

	minutes := cmd.Duration
	if minutes <= 0 {
		minutes = habit.DurationMin
	}
	if minutes <= 0 {
		minutes = 25
	}

	fmt.Println(focusHeaderStyle.Render(fmt.Sprintf("FOCUS SESSION ENGAGED: %s (%d min)", habit.Name, minutes)))
	if habit.DistractionBlocker {
		fmt.Println("Distraction blocker active. Every breach costs motivation.")
	}
	fmt.Println("Commands: b = report breach, done = finish early, abort = scrub the mission")

	var briefer *coach.Coach
	if key, err := coach.ResolveAPIKey(); err == nil {
		if c, err := coach.New(context.Background(), key); err == nil {
			briefer = c
		} else {
			logger.Debug("Coach unavailable for focus session", "error", err)
		}
	}

	lines := make(chan string)
	go func() {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			lines <- strings.ToLower(strings.TrimSpace(scanner.Text()))
		}
		close(lines)
	}()

	timer := time.NewTimer(time.Duration(minutes) * time.Minute)
	defer timer.Stop()

	violations := 0
	for {
		select {
		case <-timer.C:
			return cmd.finalize(ctx, habit, models.StatusSuccess, violations)
		case line, ok := <-lines:
			if !ok {
				// Terminal went away. Treat it as an abort.
				return cmd.finalize(ctx, habit, models.StatusFail, violations)
			}
			switch line {
			case "b", "breach":
				violations++
				profile, err := ctx.App.PenalizeViolation()
				if err != nil {
					return err
				}
				fmt.Println(breachStyle.Render(fmt.Sprintf("BREACH #%d LOGGED. Motivation: %d", violations, profile.MotivationScore)))
				fmt.Println(cmd.briefing(briefer, habit.Name))
			case "done":
				return cmd.finalize(ctx, habit, models.StatusSuccess, violations)
			case "abort":
				return cmd.finalize(ctx, habit, models.StatusFail, violations)
			case "":
			default:
				fmt.Println("Unknown command. Use b, done, or abort.")
			}
		}
	}
}

func (cmd *FocusCmd) briefing(briefer *coach.Coach, habitName string) string {
	if briefer == nil {
		return coach.ViolationFallback
	}
	text, err := briefer.ViolationBriefing(context.Background(), habitName)
	if err != nil {
		logger.Debug("Violation briefing failed", "error", err)
		return coach.ViolationFallback
	}
	return text
}

func (cmd *FocusCmd) finalize(ctx *Context, habit models.Habit, status models.CompletionStatus, violations int) error {
	outcome, err := ctx.App.FinalizeMission(habit.ID, models.DifficultyMedium, "Automated terminal completion", status, violations)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Println(outcome.Message)
	fmt.Printf("Streak: %d  Motivation: %d\n", outcome.Habit.Streak, outcome.Profile.MotivationScore)
	ctx.PerformAutomaticBackup()
	return nil
}
