package models

import (
	"fmt"
	"time"
)

// RecurrenceMode selects how a habit's schedule is evaluated. A habit is in
// exactly one mode at any time.
type RecurrenceMode string

const (
	// RecurrenceFixed fires on an explicit weekday set; an empty set means
	// every day.
	RecurrenceFixed RecurrenceMode = "fixed"
	// RecurrenceInterval fires every N calendar days counted from the
	// habit's creation date (day 0 is due).
	RecurrenceInterval RecurrenceMode = "interval"
)

// AlertType controls how the alarm for a habit is presented.
type AlertType string

const (
	AlertStandard  AlertType = "standard"
	AlertPhoneCall AlertType = "phone_call"
	AlertVoiceAI   AlertType = "voice_ai"
)

// Habit represents a recurring protocol to track.
type Habit struct {
	ID                 string         `json:"id"`
	Name               string         `json:"name"`
	Category           string         `json:"category"`
	Time               string         `json:"time"` // HH:MM format
	DurationMin        int            `json:"duration_min,omitempty"`
	Notes              string         `json:"notes,omitempty"`
	Intention          string         `json:"intention,omitempty"`
	RecurrenceMode     RecurrenceMode `json:"recurrence_mode"`
	IntervalDays       int            `json:"interval_days,omitempty"`
	Days               []time.Weekday `json:"days"`
	Streak             int            `json:"streak"`
	CreatedAt          time.Time      `json:"created_at"`
	DistractionBlocker bool           `json:"distraction_blocker,omitempty"`
	AlertType          AlertType      `json:"alert_type,omitempty"`
	LastTriggered      string         `json:"last_triggered,omitempty"` // YYYY-MM-DD
}

// Validate checks the habit's schedule configuration. Malformed time strings
// and non-positive intervals are rejected here so the scan loop never has to
// deal with them.
func (h *Habit) Validate() error {
	if h.Name == "" {
		return fmt.Errorf("habit name cannot be empty")
	}

	if _, err := time.Parse("15:04", h.Time); err != nil {
		return fmt.Errorf("invalid time format (expected HH:MM): %w", err)
	}

	switch h.RecurrenceMode {
	case RecurrenceFixed:
		for _, wd := range h.Days {
			if wd < time.Sunday || wd > time.Saturday {
				return fmt.Errorf("invalid weekday index: %d", wd)
			}
		}
	case RecurrenceInterval:
		if h.IntervalDays < 1 {
			return fmt.Errorf("interval must be at least 1 day")
		}
	default:
		return fmt.Errorf("invalid recurrence mode: %q", h.RecurrenceMode)
	}

	return nil
}

// HasDay reports whether the weekday is part of the habit's fixed-mode set.
func (h *Habit) HasDay(wd time.Weekday) bool {
	for _, d := range h.Days {
		if d == wd {
			return true
		}
	}
	return false
}

// FormatRecurrence returns a human-readable description of the schedule.
func (h *Habit) FormatRecurrence() string {
	switch h.RecurrenceMode {
	case RecurrenceInterval:
		if h.IntervalDays == 1 {
			return "Daily"
		}
		return fmt.Sprintf("Every %d days", h.IntervalDays)
	case RecurrenceFixed:
		if len(h.Days) == 0 {
			return "Daily"
		}
		days := make([]string, len(h.Days))
		for i, wd := range h.Days {
			days[i] = wd.String()[:3]
		}
		out := days[0]
		for _, d := range days[1:] {
			out += ", " + d
		}
		return out
	default:
		return "Unknown"
	}
}
