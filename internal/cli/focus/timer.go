package focus

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/myroutine/internal/cli"
	"github.com/julianstephens/myroutine/internal/constants"
	apperr "github.com/julianstephens/myroutine/internal/errors"
	"github.com/julianstephens/myroutine/internal/logger"
	"github.com/julianstephens/myroutine/internal/notifier"
	"github.com/julianstephens/myroutine/internal/routine"
	"github.com/julianstephens/myroutine/internal/timer"
	"github.com/julianstephens/myroutine/internal/ui"
)

// Swapped in tests.
var (
	runTimer = timer.Run
	notify   = func(ctx context.Context, text string) error { return notifier.New().Notify(ctx, text) }
)

type TimerCmd struct {
	Start TimerStartCmd `cmd:"" help:"Run a focus countdown." default:"withargs"`
	Log   TimerLogCmd   `cmd:"" help:"Record focus minutes without running the timer."`
}

type TimerStartCmd struct {
	Category string `arg:"" optional:"" help:"estudo, trabalho or treino." default:"estudo"`
	Minutes  int    `short:"m" help:"Session length in minutes (1-120)." default:"${timer_minutes}"`
}

func (c *TimerStartCmd) Run(ctx *cli.Context) error {
	category, err := routine.ParseFocusCategory(c.Category)
	if err != nil {
		return err
	}
	if err := checkMinutes(c.Minutes); err != nil {
		return err
	}
	if !ui.IsStdinTTY() || !ui.IsStdoutTTY() {
		return fmt.Errorf("%w: use 'myroutine timer log' to record minutes", ui.ErrNotInteractive)
	}

	res, err := runTimer(context.Background(), category, time.Duration(c.Minutes)*time.Minute)
	if err != nil {
		return err
	}
	return finish(ctx, res)
}

// finish records a session according to how it ended.
func finish(ctx *cli.Context, res timer.Result) error {
	elapsed := res.Elapsed
	switch res.Outcome {
	case timer.Discarded:
		ctx.Println(ui.Muted.Render("Session discarded."))
		return nil
	case timer.Completed:
		elapsed = res.Planned
	}

	minutes, err := ctx.Service.RecordFocus(res.Category, elapsed)
	if err = ctx.Saved(err); err != nil {
		return err
	}
	msg := notifier.FocusMessage(string(res.Category), minutes)
	if minutes > 0 {
		ui.Ok(ctx.Out, msg)
	} else {
		ui.Skip(ctx.Out, msg)
	}
	sendNotification(ctx, msg)
	return nil
}

func sendNotification(ctx *cli.Context, msg string) {
	prefs, err := ctx.Repo.Preferences()
	if err != nil || !prefs.Notifications {
		return
	}
	nctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := notify(nctx, msg); err != nil {
		if errors.Is(err, notifier.ErrTrayNotRunning) {
			logger.Debug("Skipping notification", "reason", err)
			return
		}
		logger.Warn("Failed to send notification", "error", err)
	}
}

type TimerLogCmd struct {
	Category string `arg:"" help:"estudo, trabalho or treino."`
	Minutes  int    `arg:"" help:"Minutes to record."`
}

func (c *TimerLogCmd) Run(ctx *cli.Context) error {
	category, err := routine.ParseFocusCategory(c.Category)
	if err != nil {
		return err
	}
	if err := checkMinutes(c.Minutes); err != nil {
		return err
	}
	return finish(ctx, timer.Result{
		Category: category,
		Planned:  time.Duration(c.Minutes) * time.Minute,
		Outcome:  timer.Completed,
	})
}

func checkMinutes(m int) error {
	if m < constants.MinTimerMinutes || m > constants.MaxTimerMinutes {
		return apperr.Invalidf("duration must be between %d and %d minutes",
			constants.MinTimerMinutes, constants.MaxTimerMinutes)
	}
	return nil
}
