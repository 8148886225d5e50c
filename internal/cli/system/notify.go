package system

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/myroutine/internal/cli"
	"github.com/julianstephens/myroutine/internal/models"
	"github.com/julianstephens/myroutine/internal/notifier"
	"github.com/julianstephens/myroutine/internal/stats"
)

var sendNotification = func(ctx context.Context, text string) error {
	return notifier.New().Notify(ctx, text)
}

// NotifyCmd sends a reminder with today's progress. It is meant to run from
// cron or a systemd timer.
type NotifyCmd struct {
	DryRun bool   `help:"Print the notification instead of sending it."`
	Text   string `help:"Send this text instead of the progress reminder."`
}

func (c *NotifyCmd) Run(ctx *cli.Context) error {
	prefs, err := ctx.Repo.Preferences()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	if !prefs.Notifications && c.Text == "" {
		if c.DryRun {
			ctx.Println("Notifications are disabled in settings.")
		}
		return nil
	}

	msg := c.Text
	if msg == "" {
		if msg, err = reminder(ctx); err != nil {
			return err
		}
	}

	if c.DryRun {
		ctx.Println("[DryRun] " + msg)
		return nil
	}
	nctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sendNotification(nctx, msg); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	return nil
}

// reminder lists the daily checks still open today.
func reminder(ctx *cli.Context) (string, error) {
	o, err := ctx.Service.Overview()
	if err != nil {
		return "", err
	}
	day := &o.Day
	var pending []string
	for _, item := range []struct {
		name string
		done bool
	}{
		{"study", stats.StudyConcluded(day)},
		{"workout", stats.WorkoutDone(day)},
		{"sleep", stats.SleepHours(day) > 0},
		{"meals", stats.MealsCompleted(day) == len(models.AllMeals)},
	} {
		if !item.done {
			pending = append(pending, item.name)
		}
	}
	if len(pending) == 0 {
		return fmt.Sprintf("Today is %d%% done. Everything is checked off!", o.DailyProgress), nil
	}
	return fmt.Sprintf("Today is %d%% done. Still open: %s.", o.DailyProgress, strings.Join(pending, ", ")), nil
}
