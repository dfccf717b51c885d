package models

import "time"

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
)

type CompletionStatus string

const (
	StatusSuccess CompletionStatus = "SUCCESS"
	StatusFail    CompletionStatus = "FAIL"
)

// CompletionLog is an immutable record of one mission outcome. Logs are
// append-only and hold a weak reference to their habit: the habit may be
// deleted while the log survives.
type CompletionLog struct {
	ID         string           `json:"id"`
	HabitID    string           `json:"habit_id"`
	Timestamp  time.Time        `json:"timestamp"`
	Difficulty Difficulty       `json:"difficulty"`
	Status     CompletionStatus `json:"status"`
	Notes      string           `json:"notes,omitempty"`
}
