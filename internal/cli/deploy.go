package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/mindpilot/commandhq/internal/models"
)

type DeployCmd struct {
	Template string `arg:"" optional:"" help:"Template name from the library. Omit to pick interactively."`
	List     bool   `help:"List the template library without deploying." short:"l"`
}

func (cmd *DeployCmd) Run(ctx *Context) error {
	if cmd.List {
		for _, t := range models.HabitTemplates {
			fmt.Printf("%-22s %s at %s", t.Name, t.Category, t.Time)
			if t.DurationMin > 0 {
				fmt.Printf("  (%d min)", t.DurationMin)
			}
			fmt.Println()
		}
		return nil
	}

	tpl, err := pickTemplate(cmd.Template)
	if err != nil {
		return err
	}

	created, err := ctx.App.DeployTemplate(tpl)
	if err != nil {
		return err
	}
	fmt.Printf("Protocol %s deployed (daily at %s).\n", created.Name, created.Time)
	ctx.PerformAutomaticBackup()
	return nil
}

func pickTemplate(ref string) (models.HabitTemplate, error) {
	if ref != "" {
		lowered := strings.ToLower(ref)
		for _, t := range models.HabitTemplates {
			if strings.ToLower(t.Name) == lowered {
				return t, nil
			}
		}
		var match models.HabitTemplate
		count := 0
		for _, t := range models.HabitTemplates {
			if strings.HasPrefix(strings.ToLower(t.Name), lowered) {
				match = t
				count++
			}
		}
		if count == 1 {
			return match, nil
		}
		return models.HabitTemplate{}, fmt.Errorf("no template matching %q (try 'hq deploy --list')", ref)
	}

	options := make([]huh.Option[int], len(models.HabitTemplates))
	for i, t := range models.HabitTemplates {
		options[i] = huh.NewOption(fmt.Sprintf("%s (%s at %s)", t.Name, t.Category, t.Time), i)
	}
	var idx int
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Deploy from template library").
				Options(options...).
				Value(&idx),
		),
	).WithTheme(huh.ThemeDracula())
	if err := form.Run(); err != nil {
		return models.HabitTemplate{}, err
	}
	return models.HabitTemplates[idx], nil
}
