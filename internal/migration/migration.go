// Package migration applies the numbered SQL files that create the
// key-value table behind the SQLite and PostgreSQL stores.
package migration

import (
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strconv"
	"strings"
)

// Driver selects the placeholder style for the version bookkeeping.
type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
)

// ErrNewerSchema means the store was migrated by a newer myroutine.
var ErrNewerSchema = errors.New("store schema is newer than this binary supports")

// Migration is one NNN_name.sql file.
type Migration struct {
	Version int
	Name    string
	SQL     string
}

type Runner struct {
	db     *sql.DB
	files  fs.FS
	driver Driver
}

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// New returns a runner over the migration files in files. An empty driver
// means SQLite.
func New(db *sql.DB, files fs.FS, driver Driver) *Runner {
	if driver == "" {
		driver = DriverSQLite
	}
	return &Runner{db: db, files: files, driver: driver}
}

// Load parses and orders the migration files. Other files are ignored.
func (r *Runner) Load() ([]Migration, error) {
	entries, err := fs.ReadDir(r.files, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations: %w", err)
	}

	var out []Migration
	for _, e := range entries {
		if e.IsDir() || path.Ext(e.Name()) != ".sql" {
			continue
		}
		prefix, name, ok := strings.Cut(strings.TrimSuffix(e.Name(), ".sql"), "_")
		if !ok {
			return nil, fmt.Errorf("invalid migration filename %s (want NNN_name.sql)", e.Name())
		}
		v, err := strconv.Atoi(prefix)
		if err != nil || v < 1 {
			return nil, fmt.Errorf("invalid migration filename %s: version must be at least 1", e.Name())
		}
		body, err := fs.ReadFile(r.files, e.Name())
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", e.Name(), err)
		}
		out = append(out, Migration{Version: v, Name: name, SQL: string(body)})
	}

	slices.SortFunc(out, func(a, b Migration) int { return a.Version - b.Version })
	for i := 1; i < len(out); i++ {
		if out[i].Version == out[i-1].Version {
			return nil, fmt.Errorf("duplicate migration version %d", out[i].Version)
		}
	}
	return out, nil
}

// Current returns the applied version, 0 for a fresh database.
func (r *Runner) Current() (int, error) {
	if _, err := r.db.Exec(`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY)`); err != nil {
		return 0, fmt.Errorf("failed to create schema_version: %w", err)
	}
	var v int
	err := r.db.QueryRow("SELECT version FROM schema_version").Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read schema version: %w", err)
	}
	return v, nil
}

// Versions returns the applied version and the newest one on disk.
func (r *Runner) Versions() (current, latest int, err error) {
	if current, err = r.Current(); err != nil {
		return 0, 0, err
	}
	ms, err := r.Load()
	if err != nil {
		return 0, 0, err
	}
	if len(ms) > 0 {
		latest = ms[len(ms)-1].Version
	}
	return current, latest, nil
}

// Check fails with ErrNewerSchema when the database is ahead of the files.
// A database that is behind is left for Apply.
func (r *Runner) Check() error {
	current, latest, err := r.Versions()
	if err != nil {
		return err
	}
	if current > latest {
		return fmt.Errorf("%w (store %d, binary %d); upgrade myroutine", ErrNewerSchema, current, latest)
	}
	return nil
}

// Apply runs every pending migration in its own transaction and returns how
// many were applied. progress may be nil.
func (r *Runner) Apply(progress func(string)) (int, error) {
	if progress == nil {
		progress = func(string) {}
	}
	if err := r.Check(); err != nil {
		return 0, err
	}
	current, err := r.Current()
	if err != nil {
		return 0, err
	}
	ms, err := r.Load()
	if err != nil {
		return 0, err
	}

	pending := slices.DeleteFunc(ms, func(m Migration) bool { return m.Version <= current })
	if len(pending) == 0 {
		progress(fmt.Sprintf("schema is up to date (version %d)", current))
		return 0, nil
	}

	applied := 0
	for _, m := range pending {
		progress(fmt.Sprintf("applying migration %d: %s", m.Version, m.Name))
		if err := r.applyOne(m); err != nil {
			return applied, err
		}
		applied++
	}
	progress(fmt.Sprintf("schema at version %d", pending[len(pending)-1].Version))
	return applied, nil
}

func (r *Runner) applyOne(m Migration) error {
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("migration %d: %w", m.Version, err)
	}
	if _, err := tx.Exec(m.SQL); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("migration %d (%s) failed: %w", m.Version, m.Name, err)
	}
	if err := r.stamp(tx, m.Version); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("migration %d: %w", m.Version, err)
	}
	return tx.Commit()
}

// stamp replaces the single schema_version row.
func (r *Runner) stamp(db execer, version int) error {
	if _, err := db.Exec("DELETE FROM schema_version"); err != nil {
		return fmt.Errorf("failed to clear schema version: %w", err)
	}
	insert := "INSERT INTO schema_version (version) VALUES (?)"
	if r.driver == DriverPostgres {
		insert = "INSERT INTO schema_version (version) VALUES ($1)"
	}
	if _, err := db.Exec(insert, version); err != nil {
		return fmt.Errorf("failed to record schema version: %w", err)
	}
	return nil
}
