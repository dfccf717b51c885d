package recurrence

import (
	"testing"
	"time"

	"github.com/mindpilot/commandhq/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestIsDue_FixedModeWeekdays(t *testing.T) {
	habit := models.Habit{
		Name:           "Workout",
		Time:           "17:30",
		RecurrenceMode: models.RecurrenceFixed,
		Days:           []time.Weekday{time.Monday, time.Wednesday, time.Friday},
	}

	// 2025-12-30 is a Tuesday, 2025-12-31 a Wednesday
	if IsDue(habit, date(2025, time.December, 30)) {
		t.Error("expected Tuesday to not be due for Mon/Wed/Fri habit")
	}
	if !IsDue(habit, date(2025, time.December, 31)) {
		t.Error("expected Wednesday to be due for Mon/Wed/Fri habit")
	}
}

func TestIsDue_FixedModeEmptyDaysMeansEveryDay(t *testing.T) {
	habit := models.Habit{
		Name:           "Hydrate",
		Time:           "10:00",
		RecurrenceMode: models.RecurrenceFixed,
	}

	d := date(2025, time.June, 1)
	for i := 0; i < 7; i++ {
		if !IsDue(habit, d.AddDate(0, 0, i)) {
			t.Errorf("expected empty day set to be due every day, failed on %s", d.AddDate(0, 0, i).Weekday())
		}
	}
}

func TestIsDue_IntervalMode(t *testing.T) {
	habit := models.Habit{
		Name:           "Deep Clean",
		Time:           "09:00",
		RecurrenceMode: models.RecurrenceInterval,
		IntervalDays:   3,
		CreatedAt:      date(2025, time.March, 10),
	}

	expected := map[int]bool{0: true, 1: false, 2: false, 3: true, 4: false, 5: false, 6: true}
	for offset, want := range expected {
		got := IsDue(habit, habit.CreatedAt.AddDate(0, 0, offset))
		if got != want {
			t.Errorf("day %d: IsDue = %v, want %v", offset, got, want)
		}
	}
}

func TestIsDue_IntervalModeIgnoresTimeOfDay(t *testing.T) {
	// Created late in the evening; the evaluation is calendar-day granular,
	// so the next morning still counts as day 1.
	habit := models.Habit{
		Name:           "Review",
		Time:           "08:00",
		RecurrenceMode: models.RecurrenceInterval,
		IntervalDays:   2,
		CreatedAt:      time.Date(2025, time.March, 10, 23, 45, 0, 0, time.Local),
	}

	if IsDue(habit, time.Date(2025, time.March, 11, 6, 0, 0, 0, time.Local)) {
		t.Error("day 1 should not be due for a 2-day interval")
	}
	if !IsDue(habit, time.Date(2025, time.March, 12, 6, 0, 0, 0, time.Local)) {
		t.Error("day 2 should be due for a 2-day interval")
	}
}

func TestIsDue_IntervalModeBeforeCreation(t *testing.T) {
	habit := models.Habit{
		Name:           "Report",
		Time:           "09:00",
		RecurrenceMode: models.RecurrenceInterval,
		IntervalDays:   1,
		CreatedAt:      date(2025, time.March, 10),
	}

	if IsDue(habit, date(2025, time.March, 9)) {
		t.Error("dates before creation must never be due")
	}
}

func TestIsDue_IntervalModeNonPositiveInterval(t *testing.T) {
	habit := models.Habit{
		Name:           "Broken",
		Time:           "09:00",
		RecurrenceMode: models.RecurrenceInterval,
		IntervalDays:   0,
		CreatedAt:      date(2025, time.March, 10),
	}

	// Must neither panic (modulo by zero) nor fire.
	if IsDue(habit, date(2025, time.March, 10)) {
		t.Error("non-positive interval must never be due")
	}
}

func TestCheck_RejectsBadSchedules(t *testing.T) {
	cases := []struct {
		name  string
		habit models.Habit
		valid bool
	}{
		{
			name: "valid fixed",
			habit: models.Habit{
				Name: "Read", Time: "21:00",
				RecurrenceMode: models.RecurrenceFixed,
				Days:           []time.Weekday{time.Sunday},
			},
			valid: true,
		},
		{
			name: "valid interval",
			habit: models.Habit{
				Name: "Stretch", Time: "07:00",
				RecurrenceMode: models.RecurrenceInterval,
				IntervalDays:   2,
			},
			valid: true,
		},
		{
			name: "interval below one",
			habit: models.Habit{
				Name: "Stretch", Time: "07:00",
				RecurrenceMode: models.RecurrenceInterval,
				IntervalDays:   0,
			},
		},
		{
			name: "malformed time",
			habit: models.Habit{
				Name: "Stretch", Time: "7am",
				RecurrenceMode: models.RecurrenceFixed,
			},
		},
		{
			name: "unknown mode",
			habit: models.Habit{
				Name: "Stretch", Time: "07:00",
				RecurrenceMode: "lunar",
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := Check(tc.habit)
			if tc.valid && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tc.valid && err == nil {
				t.Error("expected a schedule error")
			}
		})
	}
}
