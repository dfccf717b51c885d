package cli

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/mindpilot/commandhq/internal/models"
)

type ReportCmd struct {
	Habit      string `arg:"" optional:"" help:"Habit id or name. Omit to pick interactively."`
	Status     string `help:"Mission outcome: success or fail." enum:"success,fail," default:""`
	Difficulty string `help:"Mission difficulty: easy, medium, or hard." enum:"easy,medium,hard," default:""`
	Notes      string `help:"Debrief notes."`
	Violations int    `help:"Focus breaches detected during the mission." default:"0"`
}

func (cmd *ReportCmd) Run(ctx *Context) error {
	habit, err := cmd.resolveHabit(ctx)
	if err != nil {
		return err
	}

	status, difficulty, notes, err := cmd.resolveReport(habit)
	if err != nil {
		return err
	}

	outcome, err := ctx.App.FinalizeMission(habit.ID, difficulty, notes, status, cmd.Violations)
	if err != nil {
		return err
	}
	fmt.Println(outcome.Message)
	fmt.Printf("Streak: %d  Motivation: %d\n", outcome.Habit.Streak, outcome.Profile.MotivationScore)
	ctx.PerformAutomaticBackup()
	return nil
}

func (cmd *ReportCmd) resolveHabit(ctx *Context) (models.Habit, error) {
	if cmd.Habit != "" {
		return ctx.ResolveHabit(cmd.Habit)
	}

	habits, err := ctx.Store.GetAllHabits()
	if err != nil {
		return models.Habit{}, err
	}
	if len(habits) == 0 {
		return models.Habit{}, fmt.Errorf("no protocols registered")
	}

	options := make([]huh.Option[string], len(habits))
	for i, h := range habits {
		options[i] = huh.NewOption(fmt.Sprintf("%s (%s)", h.Name, h.Time), h.ID)
	}
	var id string
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("File mission report for").
				Options(options...).
				Value(&id),
		),
	).WithTheme(huh.ThemeDracula())
	if err := form.Run(); err != nil {
		return models.Habit{}, err
	}
	return ctx.ResolveHabit(id)
}

func (cmd *ReportCmd) resolveReport(habit models.Habit) (models.CompletionStatus, models.Difficulty, string, error) {
	status := parseStatus(cmd.Status)
	difficulty := parseDifficulty(cmd.Difficulty)
	notes := cmd.Notes

	if status != "" && difficulty != "" {
		return status, difficulty, notes, nil
	}

	var groups []*huh.Group
	if status == "" {
		groups = append(groups, huh.NewGroup(
			huh.NewSelect[models.CompletionStatus]().
				Title(fmt.Sprintf("Mission outcome for %s", habit.Name)).
				Options(
					huh.NewOption("Mission accomplished", models.StatusSuccess),
					huh.NewOption("Mission failed", models.StatusFail),
				).
				Value(&status),
		))
	}
	if difficulty == "" {
		groups = append(groups, huh.NewGroup(
			huh.NewSelect[models.Difficulty]().
				Title("Difficulty").
				Options(
					huh.NewOption("Easy", models.DifficultyEasy),
					huh.NewOption("Medium", models.DifficultyMedium),
					huh.NewOption("Hard", models.DifficultyHard),
				).
				Value(&difficulty),
		))
	}
	if cmd.Notes == "" {
		groups = append(groups, huh.NewGroup(
			huh.NewInput().
				Title("Debrief notes (optional)").
				Value(&notes),
		))
	}

	form := huh.NewForm(groups...).WithTheme(huh.ThemeDracula())
	if err := form.Run(); err != nil {
		return "", "", "", err
	}
	return status, difficulty, notes, nil
}

func parseStatus(s string) models.CompletionStatus {
	switch s {
	case "success":
		return models.StatusSuccess
	case "fail":
		return models.StatusFail
	default:
		return ""
	}
}

func parseDifficulty(s string) models.Difficulty {
	switch s {
	case "easy":
		return models.DifficultyEasy
	case "medium":
		return models.DifficultyMedium
	case "hard":
		return models.DifficultyHard
	default:
		return ""
	}
}
