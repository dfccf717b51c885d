// Package phases projects the day's scheduled habits into tactical windows
// for dashboard display.
package phases

import (
	"sort"
	"time"

	"github.com/mindpilot/commandhq/internal/models"
)

// Phase is a named window of the day.
type Phase string

const (
	Morning   Phase = "morning"
	Afternoon Phase = "afternoon"
	Night     Phase = "night"
)

// Phases lists the windows in display order.
var Phases = []Phase{Morning, Afternoon, Night}

// Labels maps each phase to its dashboard heading.
var Labels = map[Phase]string{
	Morning:   "MORNING DIRECTIVES",
	Afternoon: "AFTERNOON OPERATIONS",
	Night:     "NIGHT PROTOCOLS",
}

// Grouped holds a day's habits bucketed by phase, each bucket sorted by
// scheduled time.
type Grouped map[Phase][]models.Habit

// PhaseOf buckets a scheduled hour. Hours 4 to 11 are morning, 12 to 16
// afternoon, and everything else (17 through 3) night.
func PhaseOf(hour int) Phase {
	switch {
	case hour >= 4 && hour < 12:
		return Morning
	case hour >= 12 && hour < 17:
		return Afternoon
	default:
		return Night
	}
}

// Group projects habits scheduled for date into phase buckets. Fixed habits
// appear only on their configured weekdays; a fixed habit with no weekdays is
// never projected. Interval habits appear on every Nth day from creation.
// Habits with unparseable times are skipped.
func Group(habits []models.Habit, date time.Time) Grouped {
	out := Grouped{}
	for _, h := range habits {
		if !scheduledOn(h, date) {
			continue
		}
		t, err := time.Parse("15:04", h.Time)
		if err != nil {
			continue
		}
		p := PhaseOf(t.Hour())
		out[p] = append(out[p], h)
	}
	for _, bucket := range out {
		sort.SliceStable(bucket, func(i, j int) bool {
			return bucket[i].Time < bucket[j].Time
		})
	}
	return out
}

// scheduledOn is the display projection rule. It differs from the alarm
// scanner's recurrence.IsDue in one respect: a fixed habit with an empty
// weekday set shows on no day here, while the scanner treats it as daily.
func scheduledOn(h models.Habit, date time.Time) bool {
	if h.RecurrenceMode == models.RecurrenceFixed {
		return h.HasDay(date.Weekday())
	}
	if h.IntervalDays < 1 {
		return false
	}
	diff := daysBetween(h.CreatedAt, date)
	return diff >= 0 && diff%h.IntervalDays == 0
}

// NextOperation returns the earliest habit scheduled for today whose time has
// not yet passed. When the day's schedule is exhausted it wraps to the
// earliest scheduled habit. False means nothing is scheduled today at all.
func NextOperation(habits []models.Habit, now time.Time) (models.Habit, bool) {
	var next, first models.Habit
	found, any := false, false
	cur := now.Format("15:04")
	for _, h := range habits {
		if !scheduledOn(h, now) {
			continue
		}
		if !any || h.Time < first.Time {
			first = h
			any = true
		}
		if h.Time < cur {
			continue
		}
		if !found || h.Time < next.Time {
			next = h
			found = true
		}
	}
	if found {
		return next, true
	}
	return first, any
}

func daysBetween(from, to time.Time) int {
	a := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	b := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, to.Location())
	return int(b.Sub(a).Hours() / 24)
}
