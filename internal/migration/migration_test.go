package migration

import (
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})
	return db
}

func TestGetCurrentVersionFreshDB(t *testing.T) {
	runner := NewRunner(setupTestDB(t), fstest.MapFS{})

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion() returned unexpected error: %v", err)
	}
	if version != 0 {
		t.Errorf("GetCurrentVersion() = %d on fresh database, want 0", version)
	}
}

func TestReadMigrationFiles(t *testing.T) {
	t.Run("sorted by version", func(t *testing.T) {
		fsys := fstest.MapFS{
			"002_second.sql": {Data: []byte("CREATE TABLE b (id INTEGER);")},
			"001_first.sql":  {Data: []byte("CREATE TABLE a (id INTEGER);")},
			"010_tenth.sql":  {Data: []byte("CREATE TABLE c (id INTEGER);")},
		}
		runner := NewRunner(setupTestDB(t), fsys)

		migrations, err := runner.ReadMigrationFiles()
		if err != nil {
			t.Fatalf("ReadMigrationFiles() returned unexpected error: %v", err)
		}
		wantVersions := []int{1, 2, 10}
		if len(migrations) != len(wantVersions) {
			t.Fatalf("ReadMigrationFiles() returned %d migrations, want %d", len(migrations), len(wantVersions))
		}
		for i, want := range wantVersions {
			if migrations[i].Version != want {
				t.Errorf("migrations[%d].Version = %d, want %d", i, migrations[i].Version, want)
			}
		}
	})

	t.Run("rejects bad filename", func(t *testing.T) {
		fsys := fstest.MapFS{
			"badname.sql": {Data: []byte("SELECT 1;")},
		}
		runner := NewRunner(setupTestDB(t), fsys)
		if _, err := runner.ReadMigrationFiles(); err == nil {
			t.Error("ReadMigrationFiles() with bad filename returned nil error, want error")
		}
	})

	t.Run("rejects duplicate versions", func(t *testing.T) {
		fsys := fstest.MapFS{
			"001_first.sql":  {Data: []byte("SELECT 1;")},
			"001_dupe.sql":   {Data: []byte("SELECT 1;")},
			"002_second.sql": {Data: []byte("SELECT 1;")},
		}
		runner := NewRunner(setupTestDB(t), fsys)
		if _, err := runner.ReadMigrationFiles(); err == nil {
			t.Error("ReadMigrationFiles() with duplicate versions returned nil error, want error")
		}
	})

	t.Run("ignores non-sql files", func(t *testing.T) {
		fsys := fstest.MapFS{
			"001_first.sql": {Data: []byte("SELECT 1;")},
			"README.md":     {Data: []byte("notes")},
		}
		runner := NewRunner(setupTestDB(t), fsys)
		migrations, err := runner.ReadMigrationFiles()
		if err != nil {
			t.Fatalf("ReadMigrationFiles() returned unexpected error: %v", err)
		}
		if len(migrations) != 1 {
			t.Errorf("ReadMigrationFiles() returned %d migrations, want 1", len(migrations))
		}
	})
}

func TestApplyMigrations(t *testing.T) {
	fsys := fstest.MapFS{
		"001_create.sql": {Data: []byte("CREATE TABLE things (id INTEGER PRIMARY KEY, name TEXT);")},
		"002_column.sql": {Data: []byte("ALTER TABLE things ADD COLUMN color INTEGER;")},
	}
	db := setupTestDB(t)
	runner := NewRunner(db, fsys)

	applied, err := runner.ApplyMigrations(nil)
	if err != nil {
		t.Fatalf("ApplyMigrations() returned unexpected error: %v", err)
	}
	if applied != 2 {
		t.Errorf("ApplyMigrations() applied %d migrations, want 2", applied)
	}

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion() returned unexpected error: %v", err)
	}
	if version != 2 {
		t.Errorf("GetCurrentVersion() = %d after apply, want 2", version)
	}

	// The schema from both migrations is usable.
	if _, err := db.Exec("INSERT INTO things (name, color) VALUES ('x', 1)"); err != nil {
		t.Errorf("insert into migrated table failed: %v", err)
	}

	t.Run("idempotent on second run", func(t *testing.T) {
		applied, err := runner.ApplyMigrations(nil)
		if err != nil {
			t.Fatalf("ApplyMigrations() second run returned unexpected error: %v", err)
		}
		if applied != 0 {
			t.Errorf("ApplyMigrations() second run applied %d migrations, want 0", applied)
		}
	})
}

func TestApplyMigrationsRollsBackOnFailure(t *testing.T) {
	fsys := fstest.MapFS{
		"001_good.sql": {Data: []byte("CREATE TABLE ok (id INTEGER);")},
		"002_bad.sql":  {Data: []byte("THIS IS NOT SQL;")},
	}
	db := setupTestDB(t)
	runner := NewRunner(db, fsys)

	applied, err := runner.ApplyMigrations(nil)
	if err == nil {
		t.Fatal("ApplyMigrations() with broken SQL returned nil error, want error")
	}
	if applied != 1 {
		t.Errorf("ApplyMigrations() applied %d migrations before failing, want 1", applied)
	}

	version, vErr := runner.GetCurrentVersion()
	if vErr != nil {
		t.Fatalf("GetCurrentVersion() returned unexpected error: %v", vErr)
	}
	if version != 1 {
		t.Errorf("GetCurrentVersion() = %d after failed migration, want 1 (last good)", version)
	}
}

func TestValidateVersionRejectsNewerSchema(t *testing.T) {
	fsys := fstest.MapFS{
		"001_only.sql": {Data: []byte("CREATE TABLE ok (id INTEGER);")},
	}
	db := setupTestDB(t)
	runner := NewRunner(db, fsys)

	if err := runner.EnsureSchemaVersionTable(); err != nil {
		t.Fatalf("EnsureSchemaVersionTable() returned unexpected error: %v", err)
	}
	if _, err := db.Exec("INSERT INTO schema_version (version) VALUES (99)"); err != nil {
		t.Fatalf("failed to seed future version: %v", err)
	}

	if err := runner.ValidateVersion(); err == nil {
		t.Error("ValidateVersion() with future schema returned nil error, want error")
	}
}
