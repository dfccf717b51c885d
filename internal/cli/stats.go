package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mindpilot/commandhq/internal/stats"
)

type StatsCmd struct {
	Achievements bool `help:"Show the commendation board instead of the readiness report." short:"a"`
}

var (
	statsHeadingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	statsDimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	badgeLockedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	badgeEarnedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
)

func (cmd *StatsCmd) Run(ctx *Context) error {
	habits, err := ctx.Store.GetAllHabits()
	if err != nil {
		return err
	}
	logs, err := ctx.Store.GetAllLogs()
	if err != nil {
		return err
	}

	report := stats.Compute(habits, logs, nowFunc())
	if cmd.Achievements {
		printAchievements(report)
		return nil
	}

	fmt.Println(statsHeadingStyle.Render("READINESS REPORT"))
	fmt.Printf("Missions: %d  Secured: %d  Failed: %d  Success rate: %d%%\n",
		report.MissionsTotal, report.Successes, report.Failures, report.GlobalRate)
	fmt.Printf("Max streak: %d  Perfect days: %d  Volatility: %d flatlined\n",
		report.MaxStreak, report.PerfectDays, report.Volatility)
	fmt.Printf("Adherence: %s\n", stats.AdherenceRate(logs))

	if len(report.Categories) > 0 {
		fmt.Println()
		fmt.Println(statsHeadingStyle.Render("CATEGORY PERFORMANCE"))
		for _, c := range report.Categories {
			fmt.Printf("%-20s %3d%%  %s\n", c.Name, c.Rate, bar(c.Rate))
		}
	}

	fmt.Println()
	fmt.Println(statsHeadingStyle.Render("TEMPORAL HEATMAP"))
	for _, s := range report.Heatmap {
		fmt.Printf("%-10s %d secured / %d failed\n", s.Period, s.Successes, s.Failures)
	}

	if len(report.Trend) > 0 {
		fmt.Println()
		fmt.Println(statsHeadingStyle.Render("7-DAY TREND"))
		for _, p := range report.Trend {
			fmt.Printf("%-4s %s %d\n", p.Day, strings.Repeat("█", p.Successes), p.Successes)
		}
	}
	return nil
}

func bar(rate int) string {
	filled := rate / 10
	return statsDimStyle.Render(strings.Repeat("■", filled) + strings.Repeat("·", 10-filled))
}

func printAchievements(report stats.Report) {
	fmt.Println(statsHeadingStyle.Render("COMMENDATION BOARD"))
	for _, cat := range stats.Achievements(report) {
		fmt.Println()
		fmt.Printf("%s (current: %d)\n", cat.Title, cat.Current)
		for _, b := range cat.Badges {
			if b.Unlocked {
				fmt.Println(badgeEarnedStyle.Render("  ★ " + b.Label))
			} else {
				fmt.Println(badgeLockedStyle.Render("  ☆ " + b.Label))
			}
		}
	}
}
