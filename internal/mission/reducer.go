// Package mission applies completion outcomes to habit streaks and the
// operator's motivation score.
package mission

import (
	"fmt"
	"time"

	"github.com/mindpilot/commandhq/internal/constants"
	"github.com/mindpilot/commandhq/internal/ident"
	"github.com/mindpilot/commandhq/internal/models"
)

// Outcome is the full result of finalizing one mission: exactly one mutated
// habit, one appended log, one mutated profile and a display message. The
// message is advisory only.
type Outcome struct {
	Habit   models.Habit
	Log     models.CompletionLog
	Profile models.UserProfile
	Message string
}

// Reducer computes mission outcomes. It is a pure state machine: callers
// persist the returned Outcome.
type Reducer struct {
	ids ident.Generator
	now func() time.Time
}

func NewReducer(ids ident.Generator, now func() time.Time) *Reducer {
	if now == nil {
		now = time.Now
	}
	return &Reducer{ids: ids, now: now}
}

// Finalize records one completion outcome.
//
// Streak: FAIL resets to 0. SUCCESS with more than three breaches degrades
// the streak by one (floored at 0); SUCCESS otherwise increments it.
//
// Motivation: SUCCESS earns 25 (Hard) or 15 points minus 5 per breach; FAIL
// costs 10. The resulting score is floored at 0 on both paths.
func (r *Reducer) Finalize(habit models.Habit, profile models.UserProfile, difficulty models.Difficulty, notes string, status models.CompletionStatus, violations int) Outcome {
	if violations > 0 {
		notes = fmt.Sprintf("%s [Breaches Detected: %d]", notes, violations)
	}

	log := models.CompletionLog{
		ID:         r.ids.NewID(),
		HabitID:    habit.ID,
		Timestamp:  r.now(),
		Difficulty: difficulty,
		Status:     status,
		Notes:      notes,
	}

	if status == models.StatusSuccess {
		if violations > constants.DegradedViolationThreshold {
			habit.Streak = max(0, habit.Streak-1)
		} else {
			habit.Streak++
		}
		gain := 15
		if difficulty == models.DifficultyHard {
			gain = 25
		}
		profile.MotivationScore = max(0, profile.MotivationScore+gain-violations*5)
	} else {
		habit.Streak = 0
		profile.MotivationScore = max(0, profile.MotivationScore-10)
	}

	return Outcome{
		Habit:   habit,
		Log:     log,
		Profile: profile,
		Message: outcomeMessage(habit.Name, status, violations),
	}
}

func outcomeMessage(name string, status models.CompletionStatus, violations int) string {
	switch {
	case violations > constants.DegradedViolationThreshold:
		return fmt.Sprintf("Mission Degraded. Protocol %s secured, but integrity breaches (>%d) resulted in streak reduction.", name, constants.DegradedViolationThreshold)
	case status == models.StatusSuccess:
		return fmt.Sprintf("Mission Secured. Protocol %s successfully logged.", name)
	default:
		return "Protocol Failure Logged. System integrity at risk."
	}
}
