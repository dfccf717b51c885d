package backup

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	_ "modernc.org/sqlite"

	"github.com/mindpilot/commandhq/internal/constants"
)

func setupTestDB(t *testing.T) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "commandhq.db")

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS habits (
		id TEXT PRIMARY KEY,
		name TEXT
	)`)
	if err != nil {
		t.Fatalf("failed to create test table: %v", err)
	}
	if _, err := db.Exec("INSERT INTO habits (id, name) VALUES ('h1', 'Morning Run')"); err != nil {
		t.Fatalf("failed to insert test data: %v", err)
	}
	db.Close()

	return dbPath
}

func TestCreateBackup(t *testing.T) {
	dbPath := setupTestDB(t)

	mgr := NewManager(dbPath)
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		t.Errorf("backup file was not created: %s", backupPath)
	}

	// The backup should be a readable database with the data intact.
	db, err := sql.Open("sqlite", backupPath)
	if err != nil {
		t.Fatalf("failed to open backup: %v", err)
	}
	defer db.Close()
	var name string
	if err := db.QueryRow("SELECT name FROM habits WHERE id = 'h1'").Scan(&name); err != nil {
		t.Fatalf("backup missing data: %v", err)
	}
	if name != "Morning Run" {
		t.Errorf("unexpected data in backup: %q", name)
	}
}

func TestCreateBackupMissingSource(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "absent.db"))
	if _, err := mgr.CreateBackup(); err == nil {
		t.Error("expected error for missing source database")
	}
}

func TestListBackupsEmptyDir(t *testing.T) {
	mgr := NewManager(setupTestDB(t))
	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) != 0 {
		t.Errorf("expected no backups, got %d", len(backups))
	}
}

func TestRotationKeepsMaxBackups(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	// Seed more than MaxBackups valid-looking backup files with distinct
	// minute timestamps.
	if err := os.MkdirAll(mgr.GetBackupDir(), 0700); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < constants.MaxBackups+5; i++ {
		name := fmt.Sprintf("%s202601%02d-0900%s", constants.BackupFilePrefix, i+1, constants.BackupFileSuffix)
		if err := os.WriteFile(filepath.Join(mgr.GetBackupDir(), name), []byte("x"), 0600); err != nil {
			t.Fatal(err)
		}
	}

	if _, err := mgr.CreateBackup(); err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatalf("ListBackups failed: %v", err)
	}
	if len(backups) > constants.MaxBackups {
		t.Errorf("rotation kept %d backups, limit is %d", len(backups), constants.MaxBackups)
	}
}

func TestRestoreBackup(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	// Mutate the live database after the backup.
	db, _ := sql.Open("sqlite", dbPath)
	if _, err := db.Exec("DELETE FROM habits"); err != nil {
		t.Fatalf("mutate: %v", err)
	}
	db.Close()

	if err := mgr.RestoreBackup(backupPath); err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}

	db, _ = sql.Open("sqlite", dbPath)
	defer db.Close()
	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM habits").Scan(&count); err != nil {
		t.Fatalf("query restored db: %v", err)
	}
	if count != 1 {
		t.Errorf("expected restored row, got %d", count)
	}
}

func TestRestoreBackupRejectsGarbage(t *testing.T) {
	dbPath := setupTestDB(t)
	mgr := NewManager(dbPath)

	garbage := filepath.Join(t.TempDir(), "commandhq-20260101-0900.db")
	if err := os.WriteFile(garbage, []byte("not a database"), 0600); err != nil {
		t.Fatal(err)
	}
	if err := mgr.RestoreBackup(garbage); err == nil {
		t.Error("expected invalid backup to be rejected")
	}
}

func TestJSONStoreBackup(t *testing.T) {
	jsonPath := filepath.Join(t.TempDir(), "commandhq.json")
	if err := os.WriteFile(jsonPath, []byte(`{"version":1}`), 0600); err != nil {
		t.Fatal(err)
	}

	mgr := NewManager(jsonPath)
	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	if filepath.Ext(backupPath) != ".json" {
		t.Errorf("json store backup should keep .json extension: %s", backupPath)
	}

	data, err := os.ReadFile(backupPath)
	if err != nil || string(data) != `{"version":1}` {
		t.Errorf("backup content mismatch: %s (%v)", data, err)
	}
}
