package system

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/myroutine/internal/backup"
	"github.com/julianstephens/myroutine/internal/cli"
	"github.com/julianstephens/myroutine/internal/constants"
	"github.com/julianstephens/myroutine/internal/keyring"
	"github.com/julianstephens/myroutine/internal/portability"
	"github.com/julianstephens/myroutine/internal/storage"
	"github.com/julianstephens/myroutine/internal/storage/sqlite"
	"github.com/julianstephens/myroutine/internal/ui"
	"github.com/julianstephens/myroutine/internal/validation"
)

// warning is a check result that is reported but does not fail the run.
type warning struct{ msg string }

func (w warning) Error() string { return w.msg }

func warnf(format string, args ...any) error {
	return warning{fmt.Sprintf(format, args...)}
}

type check struct {
	name       string
	needsStore bool
	run        func(*cli.Context) error
}

var checks = []check{
	{"Store reachable", false, checkStoreReachable},
	{"Schema version", true, checkSchemaVersion},
	{"Stored values", true, checkStoredValues},
	{"Data validation", true, checkValidation},
	{"Active profile", true, checkActiveProfile},
	{"Backups present", false, checkBackupsPresent},
	{"Clock/timezone", false, checkClockTimezone},
	{"Keyring", false, checkKeyring},
}

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	reachable := true
	for _, c := range checks {
		if c.needsStore && !reachable {
			ui.Skip(ctx.Out, c.name+": SKIPPED (store not reachable)")
			continue
		}
		err := c.run(ctx)
		var w warning
		switch {
		case err == nil:
			ui.Ok(ctx.Out, c.name+": OK")
		case errors.As(err, &w):
			ui.Warn(ctx.Out, c.name+": WARNING")
			ctx.Printf("   %s\n", w.msg)
		default:
			ui.Fail(ctx.Out, c.name+": FAIL")
			ctx.Printf("   Error: %v\n", err)
			hasError = true
			if c.name == checks[0].name {
				reachable = false
			}
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	ctx.Println("All diagnostics passed!")
	return nil
}

func checkStoreReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load store: %w", err)
	}
	if s, ok := ctx.Store.(*sqlite.Store); ok {
		db := s.GetDB()
		if db == nil {
			return fmt.Errorf("database connection is nil")
		}
		var result int
		if err := db.QueryRow("SELECT 1").Scan(&result); err != nil {
			return fmt.Errorf("failed to query database: %w", err)
		}
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	v, ok := ctx.Store.(storage.Versioned)
	if !ok {
		// the JSON store has no schema
		return nil
	}
	current, latest, err := v.SchemaVersion()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("store schema %d is newer than this binary supports (%d); upgrade myroutine", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d; run 'myroutine migrate'", current, latest)
	}
	return nil
}

// checkStoredValues finds values that would be read as absent because they
// are not valid JSON.
func checkStoredValues(ctx *cli.Context) error {
	var bad []string
	for _, key := range constants.AllKeys {
		raw, ok, err := ctx.Store.Get(key)
		if err != nil {
			return fmt.Errorf("failed to read %q: %w", key, err)
		}
		if ok && !json.Valid(raw) {
			bad = append(bad, key)
		}
	}
	if len(bad) > 0 {
		return fmt.Errorf("malformed values under keys %v; restore a backup or import an export", bad)
	}
	return nil
}

func checkValidation(ctx *cli.Context) error {
	snap, err := portability.BuildSnapshot(ctx.Repo, ctx.Service.Now())
	if err != nil {
		return fmt.Errorf("failed to read data: %w", err)
	}
	result := validation.New().ValidateSnapshot(&snap)
	if result.HasErrors() {
		return errors.New(result.FormatReport())
	}
	if result.HasIssues() {
		return warnf("%s", result.FormatReport())
	}
	return nil
}

func checkActiveProfile(ctx *cli.Context) error {
	id, err := ctx.Repo.ActiveProfileID()
	if err != nil {
		return err
	}
	if id == "" {
		return nil
	}
	if _, err := ctx.Service.ActiveProfile(); err != nil {
		return warnf("active profile %s no longer exists; run 'myroutine profile use' or 'myroutine profile logout'", id)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if !ctx.IsFileStore() {
		return warnf("backups are not kept for postgres stores; use 'myroutine data export'")
	}
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return warnf("no backups found; consider creating one with 'myroutine backup create'")
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	if ctx.Service.Location() == nil {
		return fmt.Errorf("no timezone configured")
	}
	return nil
}

func checkKeyring(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		return warnf("system keyring unavailable; profile secrets are stored in the data store")
	}
	return nil
}
