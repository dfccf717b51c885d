package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/lib/pq"

	"github.com/mindpilot/commandhq/internal/migration"
	"github.com/mindpilot/commandhq/internal/models"
	"github.com/mindpilot/commandhq/internal/storage/migrations"
)

// PostgresStore keeps state in a shared postgres database so one operator's
// terminal and workstation can point at the same command log. The connection
// string normally comes from the system keyring, not the config file.
type PostgresStore struct {
	connStr string
	db      *sql.DB
}

func NewPostgresStore(connStr string) *PostgresStore {
	return &PostgresStore{
		connStr: connStr,
	}
}

func (s *PostgresStore) Init() error {
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	runner := migration.NewRunner(s.db, migrations.Postgres())
	if _, err := runner.ApplyMigrations(nil); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

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

func (s *PostgresStore) Load() error {
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if err := s.db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	runner := migration.NewRunner(s.db, migrations.Postgres())
	return runner.ValidateVersion()
}

func (s *PostgresStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func (s *PostgresStore) AddHabit(h models.Habit) error {
	days, err := marshalDays(h.Days)
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`INSERT INTO habits (`+habitColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		h.ID, h.Name, h.Category, h.Time, h.DurationMin, h.Notes, h.Intention,
		string(h.RecurrenceMode), h.IntervalDays, days, h.Streak,
		h.CreatedAt.Format(time.RFC3339Nano), h.DistractionBlocker, string(h.AlertType), h.LastTriggered)
	if err != nil {
		return fmt.Errorf("failed to add habit: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetHabit(id string) (models.Habit, error) {
	row := s.db.QueryRow(`SELECT `+habitColumns+` FROM habits WHERE id = $1`, id)
	h, err := scanHabit(row)
	if err == sql.ErrNoRows {
		return models.Habit{}, fmt.Errorf("habit not found: %s", id)
	}
	return h, err
}

func (s *PostgresStore) GetAllHabits() ([]models.Habit, error) {
	rows, err := s.db.Query(`SELECT ` + habitColumns + ` FROM habits ORDER BY seq`)
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

func (s *PostgresStore) UpdateHabit(h models.Habit) error {
	days, err := marshalDays(h.Days)
	if err != nil {
		return err
	}
	res, err := s.db.Exec(`UPDATE habits SET name = $1, category = $2, time = $3, duration_min = $4, notes = $5, intention = $6,
		recurrence_mode = $7, interval_days = $8, days = $9, streak = $10, created_at = $11,
		distraction_blocker = $12, alert_type = $13, last_triggered = $14 WHERE id = $15`,
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

func (s *PostgresStore) DeleteHabit(id string) error {
	res, err := s.db.Exec(`DELETE FROM habits WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("habit not found: %s", id)
	}
	return nil
}

func (s *PostgresStore) AppendLog(l models.CompletionLog) error {
	_, err := s.db.Exec(`INSERT INTO completion_logs (id, habit_id, timestamp, difficulty, status, notes) VALUES ($1, $2, $3, $4, $5, $6)`,
		l.ID, l.HabitID, l.Timestamp.Format(time.RFC3339Nano), string(l.Difficulty), string(l.Status), l.Notes)
	if err != nil {
		return fmt.Errorf("failed to append log: %w", err)
	}
	return nil
}

func (s *PostgresStore) queryLogs(query string, args ...any) ([]models.CompletionLog, error) {
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

func (s *PostgresStore) GetAllLogs() ([]models.CompletionLog, error) {
	return s.queryLogs(`SELECT id, habit_id, timestamp, difficulty, status, notes FROM completion_logs ORDER BY seq`)
}

func (s *PostgresStore) GetLogsForHabit(habitID string) ([]models.CompletionLog, error) {
	return s.queryLogs(`SELECT id, habit_id, timestamp, difficulty, status, notes FROM completion_logs WHERE habit_id = $1 ORDER BY seq`, habitID)
}

func (s *PostgresStore) GetProfile() (models.UserProfile, error) {
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

func (s *PostgresStore) SaveProfile(p models.UserProfile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("failed to serialize profile: %w", err)
	}
	_, err = s.db.Exec(`INSERT INTO profile (id, data) VALUES (1, $1) ON CONFLICT (id) DO UPDATE SET data = excluded.data`, string(data))
	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

func (s *PostgresStore) AppendChatMessage(m models.ChatMessage) error {
	_, err := s.db.Exec(`INSERT INTO chat_messages (role, text, timestamp) VALUES ($1, $2, $3)`,
		string(m.Role), m.Text, m.Timestamp.Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to append chat message: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetChatHistory() ([]models.ChatMessage, error) {
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

func (s *PostgresStore) ClearChatHistory() error {
	if _, err := s.db.Exec(`DELETE FROM chat_messages`); err != nil {
		return fmt.Errorf("failed to clear chat history: %w", err)
	}
	return s.AppendChatMessage(models.SeedMessage(time.Now()))
}

func (s *PostgresStore) SetAuthenticated(v bool) error {
	value := "false"
	if v {
		value = "true"
	}
	_, err := s.db.Exec(`INSERT INTO session (key, value) VALUES ('authenticated', $1) ON CONFLICT (key) DO UPDATE SET value = excluded.value`, value)
	if err != nil {
		return fmt.Errorf("failed to set session flag: %w", err)
	}
	return nil
}

func (s *PostgresStore) IsAuthenticated() (bool, error) {
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

func (s *PostgresStore) GetConfigPath() string {
	return "postgres"
}
