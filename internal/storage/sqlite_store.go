package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/mindpilot/commandhq/internal/migration"
	"github.com/mindpilot/commandhq/internal/models"
	"github.com/mindpilot/commandhq/internal/storage/migrations"
)

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	runner := migration.NewRunner(s.db, migrations.SQLite())
	if _, err := runner.ApplyMigrations(nil); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Seed defaults on first run
	if _, err := s.GetProfile(); err != nil {
		if err := s.SaveProfile(models.DefaultProfile(time.Now())); err != nil {
			return fmt.Errorf("failed to save default profile: %w", err)
		}
	}
	chat, err := s.GetChatHistory()
	if err != nil {
		return err
	}
	if len(chat) == 0 {
		if err := s.AppendChatMessage(models.SeedMessage(time.Now())); err != nil {
			return err
		}
	}

	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("storage not initialized, run 'hq init' first")
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	runner := migration.NewRunner(s.db, migrations.SQLite())
	return runner.ValidateVersion()
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func marshalDays(days []time.Weekday) (string, error) {
	if days == nil {
		days = []time.Weekday{}
	}
	b, err := json.Marshal(days)
	if err != nil {
		return "", fmt.Errorf("failed to serialize weekdays: %w", err)
	}
	return string(b), nil
}

func unmarshalDays(raw string) ([]time.Weekday, error) {
	var days []time.Weekday
	if err := json.Unmarshal([]byte(raw), &days); err != nil {
		return nil, fmt.Errorf("failed to parse weekdays: %w", err)
	}
	return days, nil
}

const habitColumns = "id, name, category, time, duration_min, notes, intention, recurrence_mode, interval_days, days, streak, created_at, distraction_blocker, alert_type, last_triggered"

func scanHabit(row interface{ Scan(...any) error }) (models.Habit, error) {
	var h models.Habit
	var days, createdAt string
	err := row.Scan(&h.ID, &h.Name, &h.Category, &h.Time, &h.DurationMin, &h.Notes, &h.Intention,
		&h.RecurrenceMode, &h.IntervalDays, &days, &h.Streak, &createdAt,
		&h.DistractionBlocker, &h.AlertType, &h.LastTriggered)
	if err != nil {
		return models.Habit{}, err
	}
	if h.Days, err = unmarshalDays(days); err != nil {
		return models.Habit{}, err
	}
	if h.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return models.Habit{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return h, nil
}

func (s *SQLiteStore) AddHabit(h models.Habit) error {
	days, err := marshalDays(h.Days)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`INSERT INTO habits (`+habitColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		h.ID, h.Name, h.Category, h.Time, h.DurationMin, h.Notes, h.Intention,
		string(h.RecurrenceMode), h.IntervalDays, days, h.Streak,
		h.CreatedAt.Format(time.RFC3339Nano), h.DistractionBlocker, string(h.AlertType), h.LastTriggered)
	if err != nil {
		return fmt.Errorf("failed to add habit: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetHabit(id string) (models.Habit, error) {
	row := s.db.QueryRow(`SELECT `+habitColumns+` FROM habits WHERE id = ?`, id)
	h, err := scanHabit(row)
	if err == sql.ErrNoRows {
		return models.Habit{}, fmt.Errorf("habit not found: %s", id)
	}
	return h, err
}

func (s *SQLiteStore) GetAllHabits() ([]models.Habit, error) {
	rows, err := s.db.Query(`SELECT ` + habitColumns + ` FROM habits ORDER BY rowid`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var habits []models.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, h)
	}
	return habits, rows.Err()
}

func (s *SQLiteStore) UpdateHabit(h models.Habit) error {
	days, err := marshalDays(h.Days)
	if err != nil {
		return err
	}
	res, err := s.db.Exec(`UPDATE habits SET name = ?, category = ?, time = ?, duration_min = ?, notes = ?, intention = ?,
		recurrence_mode = ?, interval_days = ?, days = ?, streak = ?, created_at = ?,
		distraction_blocker = ?, alert_type = ?, last_triggered = ? WHERE id = ?`,
		h.Name, h.Category, h.Time, h.DurationMin, h.Notes, h.Intention,
		string(h.RecurrenceMode), h.IntervalDays, days, h.Streak,
		h.CreatedAt.Format(time.RFC3339Nano), h.DistractionBlocker, string(h.AlertType), h.LastTriggered, h.ID)
	if err != nil {
		return fmt.Errorf("failed to update habit: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("habit not found: %s", h.ID)
	}
	return nil
}

func (s *SQLiteStore) DeleteHabit(id string) error {
	res, err := s.db.Exec(`DELETE FROM habits WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("habit not found: %s", id)
	}
	return nil
}

func (s *SQLiteStore) AppendLog(l models.CompletionLog) error {
	_, err := s.db.Exec(`INSERT INTO completion_logs (id, habit_id, timestamp, difficulty, status, notes) VALUES (?, ?, ?, ?, ?, ?)`,
		l.ID, l.HabitID, l.Timestamp.Format(time.RFC3339Nano), string(l.Difficulty), string(l.Status), l.Notes)
	if err != nil {
		return fmt.Errorf("failed to append log: %w", err)
	}
	return nil
}

func (s *SQLiteStore) queryLogs(query string, args ...any) ([]models.CompletionLog, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.CompletionLog
	for rows.Next() {
		var l models.CompletionLog
		var ts string
		if err := rows.Scan(&l.ID, &l.HabitID, &ts, &l.Difficulty, &l.Status, &l.Notes); err != nil {
			return nil, err
		}
		if l.Timestamp, err = time.Parse(time.RFC3339Nano, ts); err != nil {
			return nil, fmt.Errorf("failed to parse log timestamp: %w", err)
		}
		logs = append(logs, l)
	}
	return logs, rows.Err()
}

func (s *SQLiteStore) GetAllLogs() ([]models.CompletionLog, error) {
	return s.queryLogs(`SELECT id, habit_id, timestamp, difficulty, status, notes FROM completion_logs ORDER BY rowid`)
}

func (s *SQLiteStore) GetLogsForHabit(habitID string) ([]models.CompletionLog, error) {
	return s.queryLogs(`SELECT id, habit_id, timestamp, difficulty, status, notes FROM completion_logs WHERE habit_id = ? ORDER BY rowid`, habitID)
}

func (s *SQLiteStore) GetProfile() (models.UserProfile, error) {
	var data string
	err := s.db.QueryRow(`SELECT data FROM profile WHERE id = 1`).Scan(&data)
	if err == sql.ErrNoRows {
		return models.UserProfile{}, fmt.Errorf("profile not found")
	}
	if err != nil {
		return models.UserProfile{}, err
	}

	var p models.UserProfile
	if err := json.Unmarshal([]byte(data), &p); err != nil {
		return models.UserProfile{}, fmt.Errorf("failed to parse profile: %w", err)
	}
	return p, nil
}

func (s *SQLiteStore) SaveProfile(p models.UserProfile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to serialize profile: %w", err)
	}
	_, err = s.db.Exec(`INSERT INTO profile (id, data) VALUES (1, ?) ON CONFLICT (id) DO UPDATE SET data = excluded.data`, string(data))
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

func (s *SQLiteStore) AppendChatMessage(m models.ChatMessage) error {
	_, err := s.db.Exec(`INSERT INTO chat_messages (role, text, timestamp) VALUES (?, ?, ?)`,
		string(m.Role), m.Text, m.Timestamp.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to append chat message: %w", err)
	}
	return nil
}

func (s *SQLiteStore) GetChatHistory() ([]models.ChatMessage, error) {
	rows, err := s.db.Query(`SELECT role, text, timestamp FROM chat_messages ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var chat []models.ChatMessage
	for rows.Next() {
		var m models.ChatMessage
		var ts string
		if err := rows.Scan(&m.Role, &m.Text, &ts); err != nil {
			return nil, err
		}
		if m.Timestamp, err = time.Parse(time.RFC3339Nano, ts); err != nil {
			return nil, fmt.Errorf("failed to parse chat timestamp: %w", err)
		}
		chat = append(chat, m)
	}
	return chat, rows.Err()
}

func (s *SQLiteStore) ClearChatHistory() error {
	if _, err := s.db.Exec(`DELETE FROM chat_messages`); err != nil {
		return fmt.Errorf("failed to clear chat history: %w", err)
	}
	return s.AppendChatMessage(models.SeedMessage(time.Now()))
}

func (s *SQLiteStore) SetAuthenticated(v bool) error {
	value := "false"
	if v {
		value = "true"
	}
	_, err := s.db.Exec(`INSERT INTO session (key, value) VALUES ('authenticated', ?) ON CONFLICT (key) DO UPDATE SET value = excluded.value`, value)
	if err != nil {
		return fmt.Errorf("failed to set session flag: %w", err)
	}
	return nil
}

func (s *SQLiteStore) IsAuthenticated() (bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM session WHERE key = 'authenticated'`).Scan(&value)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return value == "true", nil
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}
