package system

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/myroutine/internal/cli"
	"github.com/julianstephens/myroutine/internal/models"
	"github.com/julianstephens/myroutine/internal/storage/sqlite"
)

func setupNotifyCtx(t *testing.T, enabled bool) (*cli.Context, *[]string) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	ctx, _ := newTestCtx(t, store)
	prefs := models.DefaultPreferences()
	prefs.Notifications = enabled
	if err := ctx.Repo.SavePreferences(prefs); err != nil {
		t.Fatal(err)
	}

	var sent []string
	orig := sendNotification
	sendNotification = func(_ context.Context, text string) error {
		sent = append(sent, text)
		return nil
	}
	t.Cleanup(func() { sendNotification = orig })
	return ctx, &sent
}

func TestNotifyCmd_Reminder(t *testing.T) {
	ctx, sent := setupNotifyCtx(t, true)
	if _, err := ctx.Service.SetWorkout("2024-03-15", true, 30); err != nil {
		t.Fatal(err)
	}
	if _, err := ctx.Service.SetSleep("2024-03-15", 7); err != nil {
		t.Fatal(err)
	}

	if err := (&NotifyCmd{}).Run(ctx); err != nil {
		t.Fatalf("notify failed: %v", err)
	}
	if len(*sent) != 1 {
		t.Fatalf("sent = %v, want one notification", *sent)
	}
	want := "Today is 50% done. Still open: study, meals."
	if (*sent)[0] != want {
		t.Errorf("message = %q, want %q", (*sent)[0], want)
	}
}

func TestNotifyCmd_DryRun(t *testing.T) {
	ctx, sent := setupNotifyCtx(t, true)
	out := ctx.Out.(interface{ String() string })

	if err := (&NotifyCmd{DryRun: true, Text: "hello"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if len(*sent) != 0 {
		t.Errorf("dry run sent %v", *sent)
	}
	if !strings.Contains(out.String(), "[DryRun] hello") {
		t.Errorf("output:\n%s", out.String())
	}
}

func TestNotifyCmd_Disabled(t *testing.T) {
	ctx, sent := setupNotifyCtx(t, false)
	if err := (&NotifyCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if len(*sent) != 0 {
		t.Errorf("disabled notifications sent %v", *sent)
	}

	// explicit text is a manual test and ignores the preference
	if err := (&NotifyCmd{Text: "test"}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if len(*sent) != 1 {
		t.Errorf("sent = %v, want the explicit text", *sent)
	}
}
