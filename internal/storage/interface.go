package storage

import "github.com/mindpilot/commandhq/internal/models"

// Provider is the persistence contract. Implementations keep habits and logs
// in insertion order so scan and display passes are stable across loads.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Habits
	AddHabit(models.Habit) error
	GetHabit(id string) (models.Habit, error)
	GetAllHabits() ([]models.Habit, error)
	UpdateHabit(models.Habit) error
	DeleteHabit(id string) error

	// Completion logs
	AppendLog(models.CompletionLog) error
	GetAllLogs() ([]models.CompletionLog, error)
	GetLogsForHabit(habitID string) ([]models.CompletionLog, error)

	// Operator profile
	GetProfile() (models.UserProfile, error)
	SaveProfile(models.UserProfile) error

	// Coach transcript
	AppendChatMessage(models.ChatMessage) error
	GetChatHistory() ([]models.ChatMessage, error)
	ClearChatHistory() error

	// Session
	SetAuthenticated(bool) error
	IsAuthenticated() (bool, error)

	// Utils
	GetConfigPath() string
}
