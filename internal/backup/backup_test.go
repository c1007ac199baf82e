package backup

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
)

// createTestDatabase makes a small real database so VACUUM INTO has
// something to snapshot.
func createTestDatabase(t *testing.T, path string) {
	t.Helper()

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec("CREATE TABLE habits (id INTEGER PRIMARY KEY, title TEXT)"); err != nil {
		t.Fatalf("failed to create test table: %v", err)
	}
	if _, err := db.Exec("INSERT INTO habits (title) VALUES ('Run')"); err != nil {
		t.Fatalf("failed to insert test row: %v", err)
	}
}

func setupTestManager(t *testing.T) (*Manager, string) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "habitkit.db")
	createTestDatabase(t, dbPath)
	return NewManager(dbPath), dbPath
}

func TestCreateBackup(t *testing.T) {
	mgr, _ := setupTestManager(t)

	path, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup() returned unexpected error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("backup file does not exist: %v", err)
	}
	if info.Size() == 0 {
		t.Error("backup file is empty")
	}

	// The snapshot is itself a valid database with the data.
	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("failed to open backup: %v", err)
	}
	defer db.Close()

	var title string
	if err := db.QueryRow("SELECT title FROM habits").Scan(&title); err != nil {
		t.Fatalf("failed to read backup contents: %v", err)
	}
	if title != "Run" {
		t.Errorf("backup habit title = %q, want Run", title)
	}
}

func TestCreateBackupMissingDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := mgr.CreateBackup(); err == nil {
		t.Error("CreateBackup() on missing database returned nil error, want error")
	}
}

func TestCreateBackupUniqueNames(t *testing.T) {
	mgr, _ := setupTestManager(t)

	seen := make(map[string]bool)
	for i := 0; i < 3; i++ {
		path, err := mgr.CreateBackup()
		if err != nil {
			t.Fatalf("CreateBackup() call %d returned unexpected error: %v", i, err)
		}
		if seen[path] {
			t.Errorf("CreateBackup() reused filename %s", path)
		}
		seen[path] = true
	}
}

func TestListBackups(t *testing.T) {
	mgr, _ := setupTestManager(t)

	t.Run("empty before any backup", func(t *testing.T) {
		backups, err := mgr.ListBackups()
		if err != nil {
			t.Fatalf("ListBackups() returned unexpected error: %v", err)
		}
		if len(backups) != 0 {
			t.Errorf("ListBackups() returned %d backups, want 0", len(backups))
		}
	})

	if _, err := mgr.CreateBackup(); err != nil {
		t.Fatalf("CreateBackup() returned unexpected error: %v", err)
	}

	t.Run("lists created backup", func(t *testing.T) {
		backups, err := mgr.ListBackups()
		if err != nil {
			t.Fatalf("ListBackups() returned unexpected error: %v", err)
		}
		if len(backups) != 1 {
			t.Fatalf("ListBackups() returned %d backups, want 1", len(backups))
		}
		if backups[0].Size == 0 {
			t.Error("listed backup reports size 0")
		}
	})

	t.Run("ignores foreign files", func(t *testing.T) {
		if err := os.WriteFile(filepath.Join(mgr.GetBackupDir(), "notes.txt"), []byte("x"), 0600); err != nil {
			t.Fatalf("failed to write foreign file: %v", err)
		}
		backups, err := mgr.ListBackups()
		if err != nil {
			t.Fatalf("ListBackups() returned unexpected error: %v", err)
		}
		if len(backups) != 1 {
			t.Errorf("ListBackups() returned %d backups with foreign file present, want 1", len(backups))
		}
	})
}

func TestRestoreBackup(t *testing.T) {
	mgr, dbPath := setupTestManager(t)

	backupPath, err := mgr.CreateBackup()
	if err != nil {
		t.Fatalf("CreateBackup() returned unexpected error: %v", err)
	}

	// Change the live database after the snapshot.
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	if _, err := db.Exec("INSERT INTO habits (title) VALUES ('Swim')"); err != nil {
		t.Fatalf("failed to insert row: %v", err)
	}
	db.Close()

	if err := mgr.RestoreBackup(backupPath); err != nil {
		t.Fatalf("RestoreBackup() returned unexpected error: %v", err)
	}

	db, err = sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("failed to reopen database: %v", err)
	}
	defer db.Close()

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM habits").Scan(&count); err != nil {
		t.Fatalf("failed to count rows: %v", err)
	}
	if count != 1 {
		t.Errorf("restored database has %d habits, want 1 (pre-snapshot state)", count)
	}
}

func TestRestoreBackupRejectsGarbage(t *testing.T) {
	mgr, _ := setupTestManager(t)

	garbage := filepath.Join(t.TempDir(), "garbage.db")
	if err := os.WriteFile(garbage, []byte("not a database at all"), 0600); err != nil {
		t.Fatalf("failed to write garbage file: %v", err)
	}

	if err := mgr.RestoreBackup(garbage); err == nil {
		t.Error("RestoreBackup() with garbage file returned nil error, want error")
	}
}

func TestRestoreBackupMissingFile(t *testing.T) {
	mgr, _ := setupTestManager(t)

	if err := mgr.RestoreBackup(filepath.Join(t.TempDir(), "nope.db")); err == nil {
		t.Error("RestoreBackup() with missing file returned nil error, want error")
	}
}
