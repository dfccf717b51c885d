package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mindpilot/commandhq/internal/models"
)

// Store is the on-disk JSON document. Habits, logs and chat are slices so the
// original ordering survives round trips.
type Store struct {
	Version       int                    `json:"version"`
	Profile       models.UserProfile     `json:"profile"`
	Habits        []models.Habit         `json:"habits"`
	Logs          []models.CompletionLog `json:"logs"`
	Chat          []models.ChatMessage   `json:"chat"`
	Authenticated bool                   `json:"authenticated"`
}

type JSONStore struct {
	path  string
	store *Store
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func defaultStore() *Store {
	return &Store{
		Version: 1,
		Profile: models.DefaultProfile(time.Now()),
		Chat:    []models.ChatMessage{models.SeedMessage(time.Now())},
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.store = defaultStore()
	return s.save()
}

// Load reads the document from disk. A corrupt document is replaced with
// defaults rather than blocking startup.
func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("storage not initialized, run 'hq init' first")
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.store = &Store{}
	if err := json.Unmarshal(data, s.store); err != nil {
		log.Warn("storage document corrupt, resetting to defaults", "path", s.path, "err", err)
		s.store = defaultStore()
		return s.save()
	}

	if len(s.store.Chat) == 0 {
		s.store.Chat = []models.ChatMessage{models.SeedMessage(time.Now())}
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.store, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) AddHabit(habit models.Habit) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	for _, h := range s.store.Habits {
		if h.ID == habit.ID {
			return fmt.Errorf("habit already exists: %s", habit.ID)
		}
	}

	s.store.Habits = append(s.store.Habits, habit)
	return s.save()
}

func (s *JSONStore) GetHabit(id string) (models.Habit, error) {
	if s.store == nil {
		return models.Habit{}, fmt.Errorf("storage not loaded")
	}

	for _, h := range s.store.Habits {
		if h.ID == id {
			return h, nil
		}
	}
	return models.Habit{}, fmt.Errorf("habit not found: %s", id)
}

func (s *JSONStore) GetAllHabits() ([]models.Habit, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	habits := make([]models.Habit, len(s.store.Habits))
	copy(habits, s.store.Habits)
	return habits, nil
}

func (s *JSONStore) UpdateHabit(habit models.Habit) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	for i, h := range s.store.Habits {
		if h.ID == habit.ID {
			s.store.Habits[i] = habit
			return s.save()
		}
	}
	return fmt.Errorf("habit not found: %s", habit.ID)
}

func (s *JSONStore) DeleteHabit(id string) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	for i, h := range s.store.Habits {
		if h.ID == id {
			s.store.Habits = append(s.store.Habits[:i], s.store.Habits[i+1:]...)
			return s.save()
		}
	}
	return fmt.Errorf("habit not found: %s", id)
}

func (s *JSONStore) AppendLog(entry models.CompletionLog) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.store.Logs = append(s.store.Logs, entry)
	return s.save()
}

func (s *JSONStore) GetAllLogs() ([]models.CompletionLog, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	logs := make([]models.CompletionLog, len(s.store.Logs))
	copy(logs, s.store.Logs)
	return logs, nil
}

func (s *JSONStore) GetLogsForHabit(habitID string) ([]models.CompletionLog, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	var logs []models.CompletionLog
	for _, l := range s.store.Logs {
		if l.HabitID == habitID {
			logs = append(logs, l)
		}
	}
	return logs, nil
}

func (s *JSONStore) GetProfile() (models.UserProfile, error) {
	if s.store == nil {
		return models.UserProfile{}, fmt.Errorf("storage not loaded")
	}
	return s.store.Profile, nil
}

func (s *JSONStore) SaveProfile(profile models.UserProfile) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Profile = profile
	return s.save()
}

func (s *JSONStore) AppendChatMessage(msg models.ChatMessage) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Chat = append(s.store.Chat, msg)
	return s.save()
}

func (s *JSONStore) GetChatHistory() ([]models.ChatMessage, error) {
	if s.store == nil {
		return nil, fmt.Errorf("storage not loaded")
	}

	chat := make([]models.ChatMessage, len(s.store.Chat))
	copy(chat, s.store.Chat)
	return chat, nil
}

func (s *JSONStore) ClearChatHistory() error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Chat = []models.ChatMessage{models.SeedMessage(time.Now())}
	return s.save()
}

func (s *JSONStore) SetAuthenticated(v bool) error {
	if s.store == nil {
		return fmt.Errorf("storage not loaded")
	}
	s.store.Authenticated = v
	return s.save()
}

func (s *JSONStore) IsAuthenticated() (bool, error) {
	if s.store == nil {
		return false, fmt.Errorf("storage not loaded")
	}
	return s.store.Authenticated, nil
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
