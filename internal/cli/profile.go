package cli

import (
	"fmt"

	"github.com/mindpilot/commandhq/internal/models"
)

type ProfileCmd struct {
	Show ProfileShowCmd `cmd:"" default:"1" help:"Show the operator profile."`
	Set  ProfileSetCmd  `cmd:"" help:"Update operator profile fields."`
}

type ProfileShowCmd struct{}

func (cmd *ProfileShowCmd) Run(ctx *Context) error {
	p, err := ctx.Store.GetProfile()
	if err != nil {
		return err
	}
	fmt.Printf("Operator:    %s\n", p.Name)
	fmt.Printf("Motivation:  %d\n", p.MotivationScore)
	fmt.Printf("Daily goal:  %d missions\n", p.DailyGoal)
	fmt.Printf("Timezone:    %s\n", p.Timezone)
	fmt.Printf("Joined:      %s\n", p.JoinedAt.Format("2006-01-02"))
	fmt.Printf("Language:    %s\n", p.Language)
	fmt.Printf("Voice:       %s\n", p.VoiceName)
	fmt.Printf("Alerts:      %s (sound %v)\n", p.NotifStyle, p.EnableSound)
	return nil
}

type ProfileSetCmd struct {
	Name      *string `help:"Operator callsign."`
	Age       *int    `help:"Operator age."`
	Timezone  *string `help:"IANA timezone name."`
	DailyGoal *int    `help:"Target missions per day."`
	Sound     *bool   `help:"Enable alert sounds."`
	Notify    *string `help:"Notification style: silent, banner, or persistent."`
	Language  *string `help:"Coach language tag (for example en-US)."`
	Voice     *string `help:"Coach voice name."`
	Theme     *string `help:"Dashboard theme."`
}

func (cmd *ProfileSetCmd) Run(ctx *Context) error {
	p, err := ctx.Store.GetProfile()
	if err != nil {
		return err
	}

	if cmd.Name != nil {
		p.Name = *cmd.Name
	}
	if cmd.Age != nil {
		p.Age = *cmd.Age
	}
	if cmd.Timezone != nil {
		p.Timezone = *cmd.Timezone
	}
	if cmd.DailyGoal != nil {
		p.DailyGoal = *cmd.DailyGoal
	}
	if cmd.Sound != nil {
		p.EnableSound = *cmd.Sound
	}
	if cmd.Notify != nil {
		switch models.NotificationStyle(*cmd.Notify) {
		case models.NotifySilent, models.NotifyBanner, models.NotifyPersistent:
			p.NotifStyle = models.NotificationStyle(*cmd.Notify)
		default:
			return fmt.Errorf("invalid notification style %q (silent, banner, persistent)", *cmd.Notify)
		}
	}
	if cmd.Language != nil {
		p.Language = *cmd.Language
	}
	if cmd.Voice != nil {
		p.VoiceName = *cmd.Voice
	}
	if cmd.Theme != nil {
		p.Theme = *cmd.Theme
	}

	if err := ctx.App.UpdateProfile(p); err != nil {
		return err
	}
	fmt.Println("Profile updated.")
	return nil
}
