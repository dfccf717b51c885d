package scanner

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/mindpilot/commandhq/internal/ident"
	"github.com/mindpilot/commandhq/internal/models"
	"github.com/mindpilot/commandhq/internal/state"
	"github.com/mindpilot/commandhq/internal/storage"
)

func dailyHabit(id, tm string) models.Habit {
	return models.Habit{
		ID:             id,
		Name:           "Habit " + id,
		Time:           tm,
		RecurrenceMode: models.RecurrenceFixed,
		CreatedAt:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestScanMatchesScheduledMinute(t *testing.T) {
	now := time.Date(2026, 3, 16, 7, 30, 12, 0, time.UTC)
	habits := []models.Habit{
		dailyHabit("h1", "07:30"),
		dailyHabit("h2", "07:31"),
		dailyHabit("h3", "07:30"),
	}

	due := Scan(habits, now)
	if len(due) != 2 || due[0].ID != "h1" || due[1].ID != "h3" {
		t.Errorf("unexpected due set: %+v", due)
	}
}

func TestScanSkipsAlreadyTriggeredToday(t *testing.T) {
	now := time.Date(2026, 3, 16, 7, 30, 0, 0, time.UTC)
	h := dailyHabit("h1", "07:30")
	h.LastTriggered = "2026-03-16"

	if due := Scan([]models.Habit{h}, now); len(due) != 0 {
		t.Errorf("expected no alarms, got %+v", due)
	}

	// A stamp from yesterday does not suppress today's alarm.
	h.LastTriggered = "2026-03-15"
	if due := Scan([]models.Habit{h}, now); len(due) != 1 {
		t.Errorf("expected alarm with stale stamp, got %+v", due)
	}
}

func TestScanHonorsRecurrence(t *testing.T) {
	// 2026-03-16 is a Monday.
	now := time.Date(2026, 3, 16, 7, 30, 0, 0, time.UTC)
	h := dailyHabit("h1", "07:30")
	h.Days = []time.Weekday{time.Tuesday}

	if due := Scan([]models.Habit{h}, now); len(due) != 0 {
		t.Errorf("expected no alarm on off day, got %+v", due)
	}
}

func newScannerFixture(t *testing.T, now *time.Time) (*Scanner, *state.App, *[]string) {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "commandhq.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("init store: %v", err)
	}
	app := state.New(store, &ident.Sequence{Prefix: "id"}, func() time.Time { return *now })
	if _, err := app.Login("OPERATOR"); err != nil {
		t.Fatalf("login: %v", err)
	}

	fired := &[]string{}
	s := New(app, func(ctx context.Context, h models.Habit) error {
		*fired = append(*fired, h.ID)
		return nil
	})
	s.now = func() time.Time { return *now }
	return s, app, fired
}

func TestTickStampsBeforeDispatchAndFiresOnce(t *testing.T) {
	now := time.Date(2026, 3, 16, 7, 30, 0, 0, time.UTC)
	s, app, fired := newScannerFixture(t, &now)

	added, err := app.AddHabit(models.Habit{
		Name: "Morning Run", Time: "07:30", RecurrenceMode: models.RecurrenceFixed,
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := s.Tick(context.Background()); err != nil {
		t.Fatalf("tick: %v", err)
	}
	if len(*fired) != 1 || (*fired)[0] != added.ID {
		t.Fatalf("expected one alarm, got %v", *fired)
	}

	stored, _ := app.Store().GetHabit(added.ID)
	if stored.LastTriggered != "2026-03-16" {
		t.Errorf("trigger stamp not persisted: %q", stored.LastTriggered)
	}

	// Subsequent passes within the same minute stay quiet.
	for i := 0; i < 3; i++ {
		now = now.Add(30 * time.Second)
		if err := s.Tick(context.Background()); err != nil {
			t.Fatalf("tick %d: %v", i, err)
		}
	}
	if len(*fired) != 1 {
		t.Errorf("alarm fired again within the same day: %v", *fired)
	}
}

func TestTickNeverFiresTwiceSameDay(t *testing.T) {
	now := time.Date(2026, 3, 16, 7, 30, 0, 0, time.UTC)
	s, app, fired := newScannerFixture(t, &now)

	added, err := app.AddHabit(models.Habit{
		Name: "Meditation", Time: "07:30", RecurrenceMode: models.RecurrenceFixed,
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := s.Tick(context.Background()); err != nil {
		t.Fatalf("tick: %v", err)
	}

	// The scheduled minute comes around again later the same day; for example
	// after the operator edits the time back and forth. Still one alarm.
	now = time.Date(2026, 3, 16, 7, 30, 45, 0, time.UTC)
	if err := s.Tick(context.Background()); err != nil {
		t.Fatalf("tick: %v", err)
	}
	if len(*fired) != 1 {
		t.Errorf("expected exactly one alarm today, got %v", *fired)
	}

	// Next day it fires again.
	now = time.Date(2026, 3, 17, 7, 30, 0, 0, time.UTC)
	if err := s.Tick(context.Background()); err != nil {
		t.Fatalf("tick: %v", err)
	}
	if len(*fired) != 2 || (*fired)[1] != added.ID {
		t.Errorf("expected a second alarm the next day, got %v", *fired)
	}
}

func TestTickSingleAlarmInFlight(t *testing.T) {
	now := time.Date(2026, 3, 16, 7, 30, 0, 0, time.UTC)
	s, app, fired := newScannerFixture(t, &now)

	first, _ := app.AddHabit(models.Habit{Name: "A", Time: "07:30", RecurrenceMode: models.RecurrenceFixed})
	second, _ := app.AddHabit(models.Habit{Name: "B", Time: "07:30", RecurrenceMode: models.RecurrenceFixed})

	if err := s.Tick(context.Background()); err != nil {
		t.Fatalf("tick: %v", err)
	}
	if len(*fired) != 1 || (*fired)[0] != first.ID {
		t.Fatalf("expected only the first habit to fire, got %v", *fired)
	}

	// The second habit fires on the next pass within the same minute.
	now = now.Add(30 * time.Second)
	if err := s.Tick(context.Background()); err != nil {
		t.Fatalf("tick: %v", err)
	}
	if len(*fired) != 2 || (*fired)[1] != second.ID {
		t.Errorf("expected the second habit on the next pass, got %v", *fired)
	}
}

func TestTickQuietWhenLoggedOut(t *testing.T) {
	now := time.Date(2026, 3, 16, 7, 30, 0, 0, time.UTC)
	s, app, fired := newScannerFixture(t, &now)

	if _, err := app.AddHabit(models.Habit{Name: "A", Time: "07:30", RecurrenceMode: models.RecurrenceFixed}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := app.Logout(); err != nil {
		t.Fatalf("logout: %v", err)
	}

	if err := s.Tick(context.Background()); err != nil {
		t.Fatalf("tick: %v", err)
	}
	if len(*fired) != 0 {
		t.Errorf("expected no alarms on a closed session, got %v", *fired)
	}
}
