package state_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/mindpilot/commandhq/internal/ident"
	"github.com/mindpilot/commandhq/internal/models"
	"github.com/mindpilot/commandhq/internal/state"
	"github.com/mindpilot/commandhq/internal/storage"
)

var stateNow = time.Date(2026, 3, 16, 9, 0, 0, 0, time.UTC)

func newTestApp(t *testing.T) *state.App {
	t.Helper()
	store := storage.NewJSONStore(filepath.Join(t.TempDir(), "commandhq.json"))
	if err := store.Init(); err != nil {
		t.Fatalf("init store: %v", err)
	}
	return state.New(store, &ident.Sequence{Prefix: "id"}, func() time.Time { return stateNow })
}

func validHabit() models.Habit {
	return models.Habit{
		Name:           "Morning Run",
		Category:       "Fitness",
		Time:           "07:00",
		RecurrenceMode: models.RecurrenceFixed,
		Days:           []time.Weekday{time.Monday},
	}
}

func TestAddHabitAssignsIdentity(t *testing.T) {
	app := newTestApp(t)

	h, err := app.AddHabit(validHabit())
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if h.ID != "id-1" {
		t.Errorf("unexpected id: %q", h.ID)
	}
	if !h.CreatedAt.Equal(stateNow) {
		t.Errorf("unexpected created_at: %v", h.CreatedAt)
	}
	if h.AlertType != models.AlertStandard {
		t.Errorf("expected default alert type, got %q", h.AlertType)
	}

	stored, err := app.Store().GetHabit("id-1")
	if err != nil {
		t.Fatalf("habit not persisted: %v", err)
	}
	if stored.Name != "Morning Run" {
		t.Errorf("unexpected stored habit: %+v", stored)
	}
}

func TestAddHabitRejectsInvalid(t *testing.T) {
	app := newTestApp(t)

	h := validHabit()
	h.Time = "25:99"
	if _, err := app.AddHabit(h); err == nil {
		t.Error("expected invalid time to be rejected")
	}

	h = validHabit()
	h.RecurrenceMode = models.RecurrenceInterval
	h.IntervalDays = 0
	if _, err := app.AddHabit(h); err == nil {
		t.Error("expected zero interval to be rejected")
	}
}

func TestUpdateHabitPreservesProgress(t *testing.T) {
	app := newTestApp(t)
	h, _ := app.AddHabit(validHabit())

	// Simulate progress accrued outside the edit path.
	stored, _ := app.Store().GetHabit(h.ID)
	stored.Streak = 9
	stored.LastTriggered = "2026-03-15"
	if err := app.Store().UpdateHabit(stored); err != nil {
		t.Fatalf("seed progress: %v", err)
	}

	edit := stored
	edit.Name = "Evening Run"
	edit.Streak = 999
	edit.LastTriggered = ""
	updated, err := app.UpdateHabit(edit)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Streak != 9 {
		t.Errorf("streak should be carried over, got %d", updated.Streak)
	}
	if updated.LastTriggered != "2026-03-15" {
		t.Errorf("trigger stamp should be carried over, got %q", updated.LastTriggered)
	}
	if updated.Name != "Evening Run" {
		t.Errorf("edit not applied: %+v", updated)
	}
}

func TestDeleteHabitRetainsLogs(t *testing.T) {
	app := newTestApp(t)
	h, _ := app.AddHabit(validHabit())

	if _, err := app.FinalizeMission(h.ID, models.DifficultyMedium, "", models.StatusSuccess, 0); err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if err := app.DeleteHabit(h.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	logs, err := app.Store().GetAllLogs()
	if err != nil || len(logs) != 1 {
		t.Errorf("expected orphaned log retained, got %v (%d)", err, len(logs))
	}
}

func TestDeployTemplate(t *testing.T) {
	app := newTestApp(t)

	h, err := app.DeployTemplate(models.HabitTemplates[0])
	if err != nil {
		t.Fatalf("deploy: %v", err)
	}
	if h.Name != "Sleep Schedule" || h.RecurrenceMode != models.RecurrenceFixed {
		t.Errorf("unexpected deployed habit: %+v", h)
	}
	if len(h.Days) != 0 {
		t.Errorf("templates should deploy as daily (empty weekday set): %v", h.Days)
	}
}

func TestStampTriggered(t *testing.T) {
	app := newTestApp(t)
	h, _ := app.AddHabit(validHabit())

	stamped, err := app.StampTriggered(h.ID, stateNow)
	if err != nil {
		t.Fatalf("stamp: %v", err)
	}
	if stamped.LastTriggered != "2026-03-16" {
		t.Errorf("unexpected stamp: %q", stamped.LastTriggered)
	}

	stored, _ := app.Store().GetHabit(h.ID)
	if stored.LastTriggered != "2026-03-16" {
		t.Errorf("stamp not persisted: %q", stored.LastTriggered)
	}
}

func TestFinalizeMissionPersistsAllThree(t *testing.T) {
	app := newTestApp(t)
	h, _ := app.AddHabit(validHabit())

	out, err := app.FinalizeMission(h.ID, models.DifficultyHard, "strong", models.StatusSuccess, 0)
	if err != nil {
		t.Fatalf("finalize: %v", err)
	}
	if out.Habit.Streak != 1 {
		t.Errorf("streak = %d", out.Habit.Streak)
	}

	stored, _ := app.Store().GetHabit(h.ID)
	if stored.Streak != 1 {
		t.Errorf("habit not persisted: %+v", stored)
	}
	logs, _ := app.Store().GetAllLogs()
	if len(logs) != 1 || logs[0].Notes != "strong" {
		t.Errorf("log not persisted: %+v", logs)
	}
	p, _ := app.Store().GetProfile()
	if p.MotivationScore != 125 {
		t.Errorf("profile not persisted: %+v", p)
	}
}

func TestFinalizeMissionUnknownHabit(t *testing.T) {
	app := newTestApp(t)
	if _, err := app.FinalizeMission("ghost", models.DifficultyEasy, "", models.StatusFail, 0); err == nil {
		t.Error("expected error for unknown habit")
	}
}

func TestPenalizeViolationFloorsAtZero(t *testing.T) {
	app := newTestApp(t)

	p, _ := app.Store().GetProfile()
	p.MotivationScore = 15
	if err := app.UpdateProfile(p); err != nil {
		t.Fatalf("seed profile: %v", err)
	}

	p, err := app.PenalizeViolation()
	if err != nil || p.MotivationScore != 5 {
		t.Errorf("expected 5 after first penalty, got %d (%v)", p.MotivationScore, err)
	}
	p, _ = app.PenalizeViolation()
	if p.MotivationScore != 0 {
		t.Errorf("expected floor at 0, got %d", p.MotivationScore)
	}
}

func TestChatTransitions(t *testing.T) {
	app := newTestApp(t)

	if err := app.AppendChat(models.RoleUser, "status report"); err != nil {
		t.Fatalf("append: %v", err)
	}
	chat, _ := app.Store().GetChatHistory()
	if len(chat) != 2 || chat[1].Text != "status report" {
		t.Errorf("unexpected transcript: %+v", chat)
	}

	if err := app.ResetChat(); err != nil {
		t.Fatalf("reset: %v", err)
	}
	chat, _ = app.Store().GetChatHistory()
	if len(chat) != 1 || chat[0].Role != models.RoleCoach {
		t.Errorf("expected seeded transcript after reset: %+v", chat)
	}
}

func TestLoginLogout(t *testing.T) {
	app := newTestApp(t)

	p, err := app.Login("VIPER")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if p.Name != "VIPER" {
		t.Errorf("unexpected profile name: %q", p.Name)
	}
	ok, _ := app.Store().IsAuthenticated()
	if !ok {
		t.Error("expected session flag set")
	}

	if err := app.Logout(); err != nil {
		t.Fatalf("logout: %v", err)
	}
	ok, _ = app.Store().IsAuthenticated()
	if ok {
		t.Error("expected session flag cleared")
	}
}
