// Package scanner runs the alarm loop: a periodic pass over all habits that
// raises at most one alarm per habit per day.
package scanner

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mindpilot/commandhq/internal/constants"
	"github.com/mindpilot/commandhq/internal/models"
	"github.com/mindpilot/commandhq/internal/recurrence"
	"github.com/mindpilot/commandhq/internal/state"
)

// TriggerFunc handles one raised alarm. It runs inline on the scan goroutine,
// so a slow handler suppresses further scanning until it returns. That is
// intentional: only one alarm is ever in flight.
type TriggerFunc func(ctx context.Context, h models.Habit) error

// Scan returns the habits whose alarm should fire at now, in stored order.
// A habit fires when its scheduled minute matches, it has not already fired
// today, and its recurrence makes it due.
func Scan(habits []models.Habit, now time.Time) []models.Habit {
	minute := now.Format(constants.TimeFormat)
	today := now.Format(constants.DateFormat)

	var due []models.Habit
	for _, h := range habits {
		if h.Time != minute {
			continue
		}
		if h.LastTriggered == today {
			continue
		}
		if !recurrence.IsDue(h, now) {
			continue
		}
		due = append(due, h)
	}
	return due
}

// Scanner drives Scan on a ticker and dispatches alarms.
type Scanner struct {
	app      *state.App
	handler  TriggerFunc
	interval time.Duration
	now      func() time.Time
}

func New(app *state.App, handler TriggerFunc) *Scanner {
	return &Scanner{
		app:      app,
		handler:  handler,
		interval: constants.ScanInterval,
		now:      time.Now,
	}
}

// Run scans until the context is cancelled. Ticks that arrive while a
// handler is still running are dropped by the ticker.
func (s *Scanner) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	// Scan immediately so a watch started on the scheduled minute still fires.
	if err := s.Tick(ctx); err != nil {
		log.Error("scan pass failed", "err", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := s.Tick(ctx); err != nil {
				log.Error("scan pass failed", "err", err)
			}
		}
	}
}

// Tick performs one scan pass. The trigger stamp is persisted before the
// handler runs, so a crash mid-dispatch can only lose an alarm, never repeat
// one.
func (s *Scanner) Tick(ctx context.Context) error {
	// Alarms only fire for an open session; a logout mid-watch quiets the loop.
	authed, err := s.app.Store().IsAuthenticated()
	if err != nil {
		return err
	}
	if !authed {
		return nil
	}

	habits, err := s.app.Store().GetAllHabits()
	if err != nil {
		return err
	}

	due := Scan(habits, s.now())
	if len(due) == 0 {
		return nil
	}

	// One alarm in flight at a time; the rest of this minute's habits fire on
	// later passes once their minute still matches, or are picked up tomorrow.
	h := due[0]
	if _, err := s.app.StampTriggered(h.ID, s.now()); err != nil {
		return err
	}
	if err := s.handler(ctx, h); err != nil {
		log.Error("alarm dispatch failed", "habit", h.Name, "err", err)
	}
	return nil
}
