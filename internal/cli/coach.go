package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mindpilot/commandhq/internal/coach"
	"github.com/mindpilot/commandhq/internal/logger"
	"github.com/mindpilot/commandhq/internal/models"
)

type CoachCmd struct {
	Chat     CoachChatCmd     `cmd:"" default:"withargs" help:"Exchange messages with the tactical coach."`
	Audit    CoachAuditCmd    `cmd:"" help:"Request a deep audit of your operational record."`
	Motivate CoachMotivateCmd `cmd:"" help:"Get a short motivational burst for one protocol."`
	Speak    CoachSpeakCmd    `cmd:"" help:"Synthesize coach speech to a PCM audio file."`
	History  CoachHistoryCmd  `cmd:"" help:"Show the coach transcript."`
	Reset    CoachResetCmd    `cmd:"" help:"Wipe the coach transcript."`
}

var (
	coachStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("81"))
	operatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

type CoachChatCmd struct {
	Message []string `arg:"" help:"Message for the coach."`
}

func (cmd *CoachChatCmd) Run(ctx *Context) error {
	message := strings.TrimSpace(strings.Join(cmd.Message, " "))
	if message == "" {
		return fmt.Errorf("message cannot be empty")
	}
	return converse(ctx, message, false)
}

type CoachAuditCmd struct{}

func (cmd *CoachAuditCmd) Run(ctx *Context) error {
	return converse(ctx, "Execute a deep tactical audit of my operational performance.", true)
}

// converse runs one request/reply exchange and records both sides in the
// transcript. API failures still produce a coach line so the transcript never
// dangles on an unanswered message.
func converse(ctx *Context, message string, deepAudit bool) error {
	snapshot, err := buildSnapshot(ctx, deepAudit)
	if err != nil {
		return err
	}
	if err := ctx.App.AppendChat(models.RoleUser, message); err != nil {
		return err
	}

	reply := coach.ChatOfflineLine
	key, err := coach.ResolveAPIKey()
	if err != nil {
		return err
	}
	c, err := coach.New(context.Background(), key)
	if err != nil {
		return err
	}
	text, err := c.Chat(context.Background(), message, snapshot)
	if err != nil {
		logger.Warn("Coach uplink failed", "error", err)
	} else {
		reply = text
	}

	if err := ctx.App.AppendChat(models.RoleCoach, reply); err != nil {
		return err
	}
	fmt.Println(coachStyle.Render(reply))
	return nil
}

func buildSnapshot(ctx *Context, deepAudit bool) (coach.Snapshot, error) {
	profile, err := ctx.Store.GetProfile()
	if err != nil {
		return coach.Snapshot{}, err
	}
	habits, err := ctx.Store.GetAllHabits()
	if err != nil {
		return coach.Snapshot{}, err
	}
	logs, err := ctx.Store.GetAllLogs()
	if err != nil {
		return coach.Snapshot{}, err
	}
	return coach.BuildSnapshot(profile, habits, logs, deepAudit, nowFunc()), nil
}

type CoachMotivateCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
}

func (cmd *CoachMotivateCmd) Run(ctx *Context) error {
	h, err := ctx.ResolveHabit(cmd.Habit)
	if err != nil {
		return err
	}
	key, err := coach.ResolveAPIKey()
	if err != nil {
		return err
	}
	c, err := coach.New(context.Background(), key)
	if err != nil {
		return err
	}
	text, err := c.Motivation(context.Background(), h.Name, h.Intention)
	if err != nil {
		return err
	}
	fmt.Println(coachStyle.Render(text))
	return nil
}

type CoachSpeakCmd struct {
	Text  []string `arg:"" help:"Text to synthesize."`
	Out   string   `help:"Output file for raw PCM audio." short:"o" default:"coach.pcm"`
	Voice string   `help:"Prebuilt voice name. Defaults to the profile's voice."`
}

func (cmd *CoachSpeakCmd) Run(ctx *Context) error {
	text := strings.TrimSpace(strings.Join(cmd.Text, " "))
	if text == "" {
		return fmt.Errorf("text cannot be empty")
	}

	profile, err := ctx.Store.GetProfile()
	if err != nil {
		return err
	}
	if !profile.EnableSound {
		return fmt.Errorf("sound is disabled in the profile, enable it with 'hq profile set --sound'")
	}
	voice := cmd.Voice
	if voice == "" {
		voice = profile.VoiceName
	}

	key, err := coach.ResolveAPIKey()
	if err != nil {
		return err
	}
	c, err := coach.New(context.Background(), key)
	if err != nil {
		return err
	}
	audio, err := c.Speech(context.Background(), text, voice)
	if err != nil {
		return err
	}
	if err := os.WriteFile(cmd.Out, audio, 0o644); err != nil {
		return err
	}
	fmt.Printf("Wrote %d bytes of PCM audio to %s (24kHz mono, 16-bit).\n", len(audio), cmd.Out)
	return nil
}

type CoachHistoryCmd struct{}

func (cmd *CoachHistoryCmd) Run(ctx *Context) error {
	history, err := ctx.Store.GetChatHistory()
	if err != nil {
		return err
	}
	for _, msg := range history {
		stamp := msg.Timestamp.Format("Jan 02 15:04")
		if msg.Role == models.RoleCoach {
			fmt.Printf("%s %s\n", operatorStyle.Render(stamp+" COACH"), coachStyle.Render(msg.Text))
		} else {
			fmt.Printf("%s %s\n", operatorStyle.Render(stamp+" YOU  "), msg.Text)
		}
	}
	return nil
}

type CoachResetCmd struct{}

func (cmd *CoachResetCmd) Run(ctx *Context) error {
	if err := ctx.App.ResetChat(); err != nil {
		return err
	}
	fmt.Println("Transcript wiped. Neural core reset.")
	return nil
}
