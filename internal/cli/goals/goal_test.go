package goals

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
	"github.com/julianstephens/myroutine/internal/models"
	"github.com/julianstephens/myroutine/internal/routine"
	"github.com/julianstephens/myroutine/internal/storage/sqlite"
)

func setupTestCtx(t *testing.T) (*cli.Context, *bytes.Buffer) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to init store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	now := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	ctx := cli.NewContext(&config.Config{}, store,
		routine.WithClock(func() time.Time { return now }),
		routine.WithLocation(time.UTC),
		routine.WithSecrets(nil),
	)
	out := &bytes.Buffer{}
	ctx.Out = out
	return ctx, out
}

func TestGoalCommands(t *testing.T) {
	ctx, out := setupTestCtx(t)

	if _, err := ctx.Service.SetStudyMinutes("2024-03-14", 120, true); err != nil {
		t.Fatal(err)
	}
	if _, err := ctx.Service.SetStudyMinutes("2024-03-15", 90, true); err != nil {
		t.Fatal(err)
	}

	if err := (&GoalAddCmd{Title: "Study 5h", Category: "study", Target: 300, Period: "weekly"}).Run(ctx); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	goals, _ := ctx.Service.ListGoals()
	if len(goals) != 1 || goals[0].Category != "estudo" || goals[0].Period != models.GoalWeekly || goals[0].Unit != "minutos" {
		t.Fatalf("stored goal = %+v", goals)
	}

	out.Reset()
	if err := (&GoalListCmd{}).Run(ctx); err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out.String(), "210 / 300 min") || !strings.Contains(out.String(), " 70%") {
		t.Errorf("list output:\n%s", out.String())
	}

	if err := (&GoalEditCmd{Goal: "study 5h", Target: 200}).Run(ctx); err != nil {
		t.Fatalf("edit failed: %v", err)
	}
	out.Reset()
	if err := (&GoalListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "completed") || !strings.Contains(out.String(), "100%") {
		t.Errorf("list output after edit:\n%s", out.String())
	}

	if err := (&GoalDeleteCmd{Goal: "Study 5h", Yes: true}).Run(ctx); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	goals, _ = ctx.Service.ListGoals()
	if len(goals) != 0 {
		t.Errorf("goals after delete = %+v", goals)
	}
}

func TestGoalAddRejects(t *testing.T) {
	ctx, _ := setupTestCtx(t)
	tests := []struct {
		name string
		cmd  GoalAddCmd
		want error
	}{
		{"zero target", GoalAddCmd{Title: "x", Category: "sleep", Target: 0, Period: "weekly"}, apperr.ErrInvalidGoalTarget},
		{"meals category", GoalAddCmd{Title: "x", Category: "meals", Target: 3, Period: "weekly"}, apperr.ErrInvalidInput},
		{"empty title", GoalAddCmd{Title: " ", Category: "sleep", Target: 8, Period: "monthly"}, apperr.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cmd.Run(ctx); !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
		})
	}
}
