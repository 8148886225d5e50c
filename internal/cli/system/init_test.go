package system

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/myroutine/internal/cli"
	"github.com/julianstephens/myroutine/internal/config"
	"github.com/julianstephens/myroutine/internal/routine"
	"github.com/julianstephens/myroutine/internal/storage"
	"github.com/julianstephens/myroutine/internal/storage/sqlite"
)

func newTestCtx(t *testing.T, store storage.Provider) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	t.Cleanup(func() { _ = store.Close() })
	ctx := cli.NewContext(&config.Config{}, store,
		routine.WithClock(func() time.Time { return time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC) }),
		routine.WithLocation(time.UTC),
		routine.WithSecrets(nil),
	)
	out := &bytes.Buffer{}
	ctx.Out = out
	return ctx, out
}

func setupTestInitDB(t *testing.T) (*cli.Context, string) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	ctx, _ := newTestCtx(t, sqlite.NewStore(dbPath))
	return ctx, dbPath
}

func TestInitCmd_Success(t *testing.T) {
	ctx, dbPath := setupTestInitDB(t)

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Errorf("init command failed: %v", err)
	}
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("database file was not created at %s", dbPath)
	}
}

func TestInitCmd_Idempotent(t *testing.T) {
	ctx, _ := setupTestInitDB(t)

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("first init failed: %v", err)
	}
	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Errorf("second init failed (should be idempotent): %v", err)
	}
}

func TestInitCmd_ForceDeletesExisting(t *testing.T) {
	ctx, _ := setupTestInitDB(t)

	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatalf("initial init failed: %v", err)
	}
	if _, err := ctx.Service.SetSleep("2024-03-15", 8); err != nil {
		t.Fatal(err)
	}

	if err := (&InitCmd{Force: true}).Run(ctx); err != nil {
		t.Fatalf("force init failed: %v", err)
	}
	keys, err := ctx.Store.Keys()
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 0 {
		t.Errorf("keys after force init = %v, want none", keys)
	}
}

func TestInitCmd_ForceSameSource(t *testing.T) {
	ctx, dbPath := setupTestInitDB(t)
	if err := (&InitCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	err := (&InitCmd{Force: true, Source: dbPath}).Run(ctx)
	if err == nil || !strings.Contains(err.Error(), "same") {
		t.Errorf("error = %v, want same source rejection", err)
	}
}

func TestInitCmd_CopiesFromSource(t *testing.T) {
	dir := t.TempDir()

	srcPath := filepath.Join(dir, "old.json")
	src := storage.NewJSONStore(srcPath)
	if err := src.Init(); err != nil {
		t.Fatal(err)
	}
	srcCtx, _ := newTestCtx(t, src)
	if _, err := srcCtx.Service.AddHabit("Read", "", ""); err != nil {
		t.Fatal(err)
	}
	if _, err := srcCtx.Service.SetSleep("2024-03-14", 7); err != nil {
		t.Fatal(err)
	}

	ctx, out := newTestCtx(t, sqlite.NewStore(filepath.Join(dir, "new.db")))
	if err := (&InitCmd{Source: srcPath}).Run(ctx); err != nil {
		t.Fatalf("init with source failed: %v", err)
	}
	if !strings.Contains(out.String(), "Copied 2 keys") {
		t.Errorf("output:\n%s", out.String())
	}

	habits, _ := ctx.Service.ListHabits()
	day, _ := ctx.Service.Day("2024-03-14")
	if len(habits) != 1 || day.Sleep == nil || day.Sleep.Hours != 7 {
		t.Errorf("copied habits = %+v, sleep = %+v", habits, day.Sleep)
	}
}

func TestInitCmd_MissingSource(t *testing.T) {
	ctx, _ := setupTestInitDB(t)
	err := (&InitCmd{Source: filepath.Join(t.TempDir(), "missing.db")}).Run(ctx)
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("error = %v, want not found", err)
	}
}
