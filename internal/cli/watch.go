package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/mindpilot/commandhq/internal/coach"
	"github.com/mindpilot/commandhq/internal/logger"
	"github.com/mindpilot/commandhq/internal/models"
	"github.com/mindpilot/commandhq/internal/notifier"
	"github.com/mindpilot/commandhq/internal/scanner"
)

type WatchCmd struct{}

func (cmd *WatchCmd) Run(ctx *Context) error {
	profile, err := ctx.Store.GetProfile()
	if err != nil {
		return err
	}

	var scriptWriter *coach.Coach
	if key, err := coach.ResolveAPIKey(); err == nil {
		if c, err := coach.New(context.Background(), key); err == nil {
			scriptWriter = c
		}
	}
	if scriptWriter == nil {
		logger.Info("Alarm watch running without coach uplink. Voice alerts fall back to the mission intention.")
	}

	notify := notifier.New()
	handler := func(hctx context.Context, h models.Habit) error {
		alarm := h
		switch h.AlertType {
		case models.AlertVoiceAI, models.AlertPhoneCall:
			if scriptWriter != nil {
				script, err := scriptWriter.VoiceCallScript(hctx, h.Name, h.Intention)
				if err != nil {
					logger.Warn("Voice script generation failed", "habit", h.Name, "error", err)
				} else {
					alarm.Intention = script
				}
			}
		}
		fmt.Printf("ALARM %s %s\n", h.Time, notifier.DecorateTitle(h.Name, h.AlertType))
		return notify.NotifyHabit(alarm, profile.NotifStyle)
	}

	sigCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Println("Alarm watch engaged. Ctrl+C to stand down.")
	if err := scanner.New(ctx.App, handler).Run(sigCtx); err != nil && sigCtx.Err() == nil {
		return err
	}
	fmt.Println("\nAlarm watch standing down.")
	return nil
}
