// Package state is the single mutation surface for application data. Every
// transition validates its input, applies the change and persists it through
// the storage provider before returning.
package state

import (
	"fmt"
	"time"

	"github.com/mindpilot/commandhq/internal/constants"
	"github.com/mindpilot/commandhq/internal/ident"
	"github.com/mindpilot/commandhq/internal/mission"
	"github.com/mindpilot/commandhq/internal/models"
	"github.com/mindpilot/commandhq/internal/storage"
)

// App wires the stores and reducers behind named transitions.
type App struct {
	store storage.Provider
	ids   ident.Generator
	now   func() time.Time
}

func New(store storage.Provider, ids ident.Generator, now func() time.Time) *App {
	if now == nil {
		now = time.Now
	}
	return &App{store: store, ids: ids, now: now}
}

func (a *App) Store() storage.Provider { return a.store }

// AddHabit validates and persists a new habit, assigning its identity and
// creation time.
func (a *App) AddHabit(h models.Habit) (models.Habit, error) {
	h.ID = a.ids.NewID()
	h.CreatedAt = a.now()
	h.Streak = 0
	h.LastTriggered = ""
	if h.AlertType == "" {
		h.AlertType = models.AlertStandard
	}
	if err := h.Validate(); err != nil {
		return models.Habit{}, err
	}
	if err := a.store.AddHabit(h); err != nil {
		return models.Habit{}, err
	}
	return h, nil
}

// UpdateHabit replaces an existing habit's configuration. Streak, creation
// time and trigger stamp are carried over from the stored record so edits
// cannot forge progress.
func (a *App) UpdateHabit(h models.Habit) (models.Habit, error) {
	existing, err := a.store.GetHabit(h.ID)
	if err != nil {
		return models.Habit{}, err
	}
	h.Streak = existing.Streak
	h.CreatedAt = existing.CreatedAt
	h.LastTriggered = existing.LastTriggered
	if err := h.Validate(); err != nil {
		return models.Habit{}, err
	}
	if err := a.store.UpdateHabit(h); err != nil {
		return models.Habit{}, err
	}
	return h, nil
}

// DeleteHabit removes a habit. Its completion logs are retained for history
// and statistics.
func (a *App) DeleteHabit(id string) error {
	return a.store.DeleteHabit(id)
}

// DeployTemplate instantiates a habit from the built-in template library.
func (a *App) DeployTemplate(tpl models.HabitTemplate) (models.Habit, error) {
	return a.AddHabit(tpl.Habit())
}

// StampTriggered marks the habit as having fired its alarm today so the scan
// loop will not raise it again before midnight.
func (a *App) StampTriggered(id string, day time.Time) (models.Habit, error) {
	h, err := a.store.GetHabit(id)
	if err != nil {
		return models.Habit{}, err
	}
	h.LastTriggered = day.Format(constants.DateFormat)
	if err := a.store.UpdateHabit(h); err != nil {
		return models.Habit{}, err
	}
	return h, nil
}

// FinalizeMission runs the completion reducer for the habit and persists all
// three results atomically from the caller's point of view: habit, log and
// profile.
func (a *App) FinalizeMission(habitID string, difficulty models.Difficulty, notes string, status models.CompletionStatus, violations int) (mission.Outcome, error) {
	h, err := a.store.GetHabit(habitID)
	if err != nil {
		return mission.Outcome{}, err
	}
	profile, err := a.store.GetProfile()
	if err != nil {
		return mission.Outcome{}, err
	}

	reducer := mission.NewReducer(a.ids, a.now)
	out := reducer.Finalize(h, profile, difficulty, notes, status, violations)

	if err := a.store.UpdateHabit(out.Habit); err != nil {
		return mission.Outcome{}, err
	}
	if err := a.store.AppendLog(out.Log); err != nil {
		return mission.Outcome{}, err
	}
	if err := a.store.SaveProfile(out.Profile); err != nil {
		return mission.Outcome{}, err
	}
	return out, nil
}

// UpdateProfile persists operator profile changes.
func (a *App) UpdateProfile(p models.UserProfile) error {
	if p.Name == "" {
		return fmt.Errorf("operator name cannot be empty")
	}
	return a.store.SaveProfile(p)
}

// PenalizeViolation docks the motivation score for an integrity breach during
// an active focus session. The score never drops below zero.
func (a *App) PenalizeViolation() (models.UserProfile, error) {
	p, err := a.store.GetProfile()
	if err != nil {
		return models.UserProfile{}, err
	}
	p.MotivationScore = max(0, p.MotivationScore-constants.FocusViolationPenalty)
	if err := a.store.SaveProfile(p); err != nil {
		return models.UserProfile{}, err
	}
	return p, nil
}

// AppendChat records one transcript entry.
func (a *App) AppendChat(role models.ChatRole, text string) error {
	return a.store.AppendChatMessage(models.ChatMessage{
		Role:      role,
		Text:      text,
		Timestamp: a.now(),
	})
}

// ResetChat wipes the transcript back to the seed message.
func (a *App) ResetChat() error {
	return a.store.ClearChatHistory()
}

// Login bootstraps the profile if missing and flips the session flag.
func (a *App) Login(name string) (models.UserProfile, error) {
	p, err := a.store.GetProfile()
	if err != nil {
		p = models.DefaultProfile(a.now())
	}
	if name != "" {
		p.Name = name
	}
	if err := a.store.SaveProfile(p); err != nil {
		return models.UserProfile{}, err
	}
	if err := a.store.SetAuthenticated(true); err != nil {
		return models.UserProfile{}, err
	}
	return p, nil
}

// Logout clears the session flag. Stored data is untouched.
func (a *App) Logout() error {
	return a.store.SetAuthenticated(false)
}
