// Package cli implements the hq command surface.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mindpilot/commandhq/internal/backup"
	"github.com/mindpilot/commandhq/internal/logger"
	"github.com/mindpilot/commandhq/internal/models"
	"github.com/mindpilot/commandhq/internal/state"
	"github.com/mindpilot/commandhq/internal/storage"
)

var nowFunc = time.Now

type Context struct {
	Store storage.Provider
	App   *state.App
	Debug bool
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors
func (c *Context) PerformAutomaticBackup() {
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.CreateBackup(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// ResolveHabit finds a habit by id, exact name, or unique name prefix.
func (c *Context) ResolveHabit(ref string) (models.Habit, error) {
	habits, err := c.Store.GetAllHabits()
	if err != nil {
		return models.Habit{}, err
	}

	for _, h := range habits {
		if h.ID == ref {
			return h, nil
		}
	}

	lowered := strings.ToLower(ref)
	var match models.Habit
	count := 0
	for _, h := range habits {
		name := strings.ToLower(h.Name)
		if name == lowered {
			return h, nil
		}
		if strings.HasPrefix(name, lowered) {
			match = h
			count++
		}
	}
	switch count {
	case 0:
		return models.Habit{}, fmt.Errorf("no habit matching %q", ref)
	case 1:
		return match, nil
	default:
		return models.Habit{}, fmt.Errorf("habit reference %q is ambiguous", ref)
	}
}

// ParseWeekdays parses a comma-separated list of weekdays
func ParseWeekdays(s string) ([]time.Weekday, error) {
	parts := strings.Split(s, ",")
	var weekdays []time.Weekday

	dayMap := map[string]time.Weekday{
		"sun":       time.Sunday,
		"sunday":    time.Sunday,
		"mon":       time.Monday,
		"monday":    time.Monday,
		"tue":       time.Tuesday,
		"tuesday":   time.Tuesday,
		"wed":       time.Wednesday,
		"wednesday": time.Wednesday,
		"thu":       time.Thursday,
		"thursday":  time.Thursday,
		"fri":       time.Friday,
		"friday":    time.Friday,
		"sat":       time.Saturday,
		"saturday":  time.Saturday,
	}

	for _, part := range parts {
		part = strings.TrimSpace(strings.ToLower(part))
		if part == "" {
			continue
		}
		if wd, ok := dayMap[part]; ok {
			weekdays = append(weekdays, wd)
		} else {
			// Try parsing as number (0=Sunday, 6=Saturday)
			num, err := strconv.Atoi(part)
			if err == nil && num >= 0 && num <= 6 {
				weekdays = append(weekdays, time.Weekday(num))
			} else {
				return nil, fmt.Errorf("invalid weekday: %s", part)
			}
		}
	}

	return weekdays, nil
}

// ParseAlertType validates an alert type flag value.
func ParseAlertType(s string) (models.AlertType, error) {
	switch models.AlertType(s) {
	case models.AlertStandard, models.AlertPhoneCall, models.AlertVoiceAI:
		return models.AlertType(s), nil
	case "":
		return models.AlertStandard, nil
	default:
		return "", fmt.Errorf("invalid alert type %q (standard, phone_call, voice_ai)", s)
	}
}
