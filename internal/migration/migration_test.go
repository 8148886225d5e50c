package migration

import (
	"database/sql"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func setupTestMigrations(t *testing.T, migrations map[string]string) fs.FS {
	dir := t.TempDir()
	for filename, content := range migrations {
		if err := os.WriteFile(filepath.Join(dir, filename), []byte(content), 0644); err != nil {
			t.Fatalf("failed to write test migration %s: %v", filename, err)
		}
	}
	return os.DirFS(dir)
}

func TestCurrent(t *testing.T) {
	db := setupTestDB(t)
	runner := New(db, setupTestMigrations(t, map[string]string{
		"001_test.sql": "CREATE TABLE test (id INTEGER);",
	}), DriverSQLite)

	version, err := runner.Current()
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	if version != 0 {
		t.Errorf("expected version 0, got %d", version)
	}

	if err := runner.stamp(db, 5); err != nil {
		t.Fatalf("stamp failed: %v", err)
	}
	current, latest, err := runner.Versions()
	if err != nil {
		t.Fatalf("Versions failed: %v", err)
	}
	if current != 5 || latest != 1 {
		t.Errorf("Versions() = %d, %d, want 5, 1", current, latest)
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		want    []string
		wantErr string
	}{
		{
			name: "sorted by version",
			files: map[string]string{
				"002_update.sql": "SELECT 1;",
				"001_init.sql":   "SELECT 1;",
				"notes.txt":      "ignored",
			},
			want: []string{"init", "update"},
		},
		{
			name:    "bad filename",
			files:   map[string]string{"init.sql": "SELECT 1;"},
			wantErr: "want NNN_name.sql",
		},
		{
			name:    "zero version",
			files:   map[string]string{"000_init.sql": "SELECT 1;"},
			wantErr: "must be at least 1",
		},
		{
			name: "duplicate version",
			files: map[string]string{
				"001_a.sql": "SELECT 1;",
				"001_b.sql": "SELECT 1;",
			},
			wantErr: "duplicate migration version",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := New(setupTestDB(t), setupTestMigrations(t, tt.files), "")
			migrations, err := runner.Load()
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("expected error containing %q, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if len(migrations) != len(tt.want) {
				t.Fatalf("expected %d migrations, got %d", len(tt.want), len(migrations))
			}
			for i, name := range tt.want {
				if migrations[i].Name != name || migrations[i].Version != i+1 {
					t.Errorf("migration %d = %d/%s, want %d/%s", i, migrations[i].Version, migrations[i].Name, i+1, name)
				}
			}
		})
	}
}

func TestApply(t *testing.T) {
	db := setupTestDB(t)
	runner := New(db, setupTestMigrations(t, map[string]string{
		"001_kv.sql":      "CREATE TABLE kv (key TEXT PRIMARY KEY, value TEXT NOT NULL);",
		"002_updated.sql": "ALTER TABLE kv ADD COLUMN updated_at TEXT;",
	}), DriverSQLite)

	var logs []string
	applied, err := runner.Apply(func(msg string) { logs = append(logs, msg) })
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	if applied != 2 {
		t.Errorf("expected 2 migrations applied, got %d", applied)
	}
	if len(logs) == 0 {
		t.Error("expected progress messages")
	}

	if _, err := db.Exec("INSERT INTO kv (key, value, updated_at) VALUES ('a', '1', 'now')"); err != nil {
		t.Fatalf("migrated table is unusable: %v", err)
	}

	applied, err = runner.Apply(nil)
	if err != nil {
		t.Fatalf("second Apply failed: %v", err)
	}
	if applied != 0 {
		t.Errorf("expected no pending migrations, got %d", applied)
	}
}

func TestApply_FailureRollsBack(t *testing.T) {
	db := setupTestDB(t)
	runner := New(db, setupTestMigrations(t, map[string]string{
		"001_ok.sql":     "CREATE TABLE ok (id INTEGER);",
		"002_broken.sql": "CREATE TABLE nope (",
	}), DriverSQLite)

	applied, err := runner.Apply(nil)
	if err == nil {
		t.Fatal("expected broken migration to fail")
	}
	if applied != 1 {
		t.Errorf("expected 1 migration applied before failure, got %d", applied)
	}

	version, err := runner.Current()
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	if version != 1 {
		t.Errorf("expected version 1 after failed migration, got %d", version)
	}
}

func TestCheck(t *testing.T) {
	db := setupTestDB(t)
	runner := New(db, setupTestMigrations(t, map[string]string{
		"001_init.sql": "CREATE TABLE t (id INTEGER);",
	}), DriverSQLite)

	if err := runner.Check(); err != nil {
		t.Fatalf("fresh database should validate: %v", err)
	}
	if err := runner.stamp(db, 9); err != nil {
		t.Fatalf("stamp failed: %v", err)
	}
	if err := runner.Check(); !errors.Is(err, ErrNewerSchema) {
		t.Errorf("Check() = %v, want ErrNewerSchema", err)
	}
	if _, err := runner.Apply(nil); !errors.Is(err, ErrNewerSchema) {
		t.Errorf("Apply() = %v, want ErrNewerSchema", err)
	}
}

func TestPostgresApply(t *testing.T) {
	connStr := os.Getenv("POSTGRES_TEST_URL")
	if connStr == "" {
		t.Skip("POSTGRES_TEST_URL not set, skipping PostgreSQL integration test")
	}

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		t.Fatalf("failed to open postgres database: %v", err)
	}
	t.Cleanup(func() {
		db.Exec("DROP TABLE IF EXISTS schema_version")
		db.Exec("DROP TABLE IF EXISTS migration_test_kv")
		db.Close()
	})

	runner := New(db, setupTestMigrations(t, map[string]string{
		"001_kv.sql": "CREATE TABLE migration_test_kv (key TEXT PRIMARY KEY, value JSONB NOT NULL);",
	}), DriverPostgres)

	if _, err := runner.Apply(nil); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	version, err := runner.Current()
	if err != nil {
		t.Fatalf("Current failed: %v", err)
	}
	if version != 1 {
		t.Errorf("expected version 1, got %d", version)
	}
}
