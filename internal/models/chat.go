package models

import "time"

type ChatRole string

const (
	RoleCoach ChatRole = "coach"
	RoleUser  ChatRole = "user"
)

// ChatMessage is one entry in the coach transcript.
type ChatMessage struct {
	Role      ChatRole  `json:"role"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// SeedMessage is the transcript entry shown before any exchange has happened.
func SeedMessage(now time.Time) ChatMessage {
	return ChatMessage{
		Role:      RoleCoach,
		Text:      "System online. Neural core activated. Ready for synchronization.",
		Timestamp: now,
	}
}
