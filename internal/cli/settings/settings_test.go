package settings

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/myroutine/internal/cli"
	"github.com/julianstephens/myroutine/internal/config"
	apperr "github.com/julianstephens/myroutine/internal/errors"
	"github.com/julianstephens/myroutine/internal/routine"
	"github.com/julianstephens/myroutine/internal/storage/sqlite"
)

func setupTestDB(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("failed to close store: %v", err)
		}
	})

	ctx := cli.NewContext(&config.Config{}, store,
		routine.WithClock(func() time.Time { return time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC) }),
		routine.WithLocation(time.UTC),
	)
	out := &bytes.Buffer{}
	ctx.Out = out
	return ctx, out
}

func TestSettingsCmd_ListDefaults(t *testing.T) {
	ctx, out := setupTestDB(t)

	if err := (&SettingsListCmd{}).Run(ctx); err != nil {
		t.Fatalf("settings list failed: %v", err)
	}
	got := out.String()
	for _, want := range []string{"0 (Sunday)", "8h", "true", "light"} {
		if !strings.Contains(got, want) {
			t.Errorf("list output missing %q:\n%s", want, got)
		}
	}
}

func TestSettingsCmd_Set(t *testing.T) {
	ctx, _ := setupTestDB(t)

	steps := []SettingsSetCmd{
		{Name: "first_day_of_week", Value: "1"},
		{Name: "default_sleep_goal", Value: "7.5"},
		{Name: "notifications", Value: "false"},
		{Name: "theme", Value: "Dark"},
	}
	for _, s := range steps {
		if err := s.Run(ctx); err != nil {
			t.Fatalf("set %s failed: %v", s.Name, err)
		}
	}

	got, err := ctx.Service.Settings()
	if err != nil {
		t.Fatal(err)
	}
	if got.FirstDayOfWeek != 1 || got.DefaultSleepGoal != 7.5 || got.Notifications || got.Theme != "dark" {
		t.Errorf("settings = %+v", got)
	}
}

func TestSettingsCmd_SetRejects(t *testing.T) {
	ctx, _ := setupTestDB(t)
	tests := []struct {
		name string
		cmd  SettingsSetCmd
		want error
	}{
		{"day out of range", SettingsSetCmd{Name: "first_day_of_week", Value: "7"}, apperr.ErrInvalidInput},
		{"day not a number", SettingsSetCmd{Name: "first_day_of_week", Value: "monday"}, apperr.ErrInvalidInput},
		{"sleep too low", SettingsSetCmd{Name: "default_sleep_goal", Value: "2"}, apperr.ErrInvalidInput},
		{"bad bool", SettingsSetCmd{Name: "notifications", Value: "sometimes"}, apperr.ErrInvalidInput},
		{"bad theme", SettingsSetCmd{Name: "theme", Value: "solarized"}, apperr.ErrInvalidInput},
		{"unknown", SettingsSetCmd{Name: "volume", Value: "11"}, apperr.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cmd.Run(ctx); !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}

	got, _ := ctx.Service.Settings()
	if got.FirstDayOfWeek != 0 || got.DefaultSleepGoal != 8 || got.Theme != "light" {
		t.Errorf("rejected values were saved: %+v", got)
	}
}
