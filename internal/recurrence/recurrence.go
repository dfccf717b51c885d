// Package recurrence decides whether a habit is due on a given calendar date.
// All functions are pure; nothing here touches storage or the clock.
package recurrence

import (
	"errors"
	"time"

	"github.com/mindpilot/commandhq/internal/models"
)

// ErrInvalidSchedule is returned when a habit's recurrence configuration
// cannot be evaluated (e.g. a non-positive interval).
var ErrInvalidSchedule = errors.New("invalid schedule configuration")

// IsDue reports whether the habit is due on the given date.
//
// Fixed mode: due iff the date's weekday is in the habit's day set, or the
// set is empty (every day).
//
// Interval mode: due iff the number of whole calendar days between the
// habit's creation date and the target date is a multiple of the interval.
// Both endpoints are normalized to local midnight first, so the comparison is
// calendar-day granular rather than elapsed-duration granular. Dates before
// creation and intervals below 1 are never due.
func IsDue(h models.Habit, date time.Time) bool {
	switch h.RecurrenceMode {
	case models.RecurrenceFixed:
		if len(h.Days) == 0 {
			return true
		}
		return h.HasDay(date.Weekday())
	case models.RecurrenceInterval:
		if h.IntervalDays < 1 {
			return false
		}
		diff := daysBetween(h.CreatedAt, date)
		if diff < 0 {
			return false
		}
		return diff%h.IntervalDays == 0
	default:
		return false
	}
}

// Check validates that the habit's schedule can be evaluated at all.
// Creation and edit paths call this; IsDue itself stays defensive so a bad
// record that slipped into storage degrades to "never due" instead of firing
// every tick.
func Check(h models.Habit) error {
	if err := h.Validate(); err != nil {
		return errors.Join(ErrInvalidSchedule, err)
	}
	return nil
}

// daysBetween returns the whole calendar days from a to b, after normalizing
// both to local midnight. Negative when b precedes a's date.
func daysBetween(a, b time.Time) int {
	am := time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, a.Location())
	bm := time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, b.Location())
	return int(bm.Sub(am).Hours() / 24)
}
