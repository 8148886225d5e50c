package settings

import (
	"fmt"
	"time"

	"github.com/julianstephens/myroutine/internal/cli"
	"github.com/julianstephens/myroutine/internal/constants"
	"github.com/julianstephens/myroutine/internal/ui"
)

type SettingsCmd struct {
	List SettingsListCmd `cmd:"" help:"Show current settings." default:"1"`
	Set  SettingsSetCmd  `cmd:"" help:"Change a setting."`
}

type SettingsListCmd struct{}

func (c *SettingsListCmd) Run(ctx *cli.Context) error {
	s, err := ctx.Service.Settings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	ui.Header(ctx.Out, "Preferences")
	ui.Kv(ctx.Out, constants.SettingFirstDayOfWeek, fmt.Sprintf("%d (%s)", s.FirstDayOfWeek, time.Weekday(s.FirstDayOfWeek)))
	ui.Kv(ctx.Out, constants.SettingDefaultSleepGoal, fmt.Sprintf("%gh", s.DefaultSleepGoal))
	ui.Kv(ctx.Out, constants.SettingNotifications, fmt.Sprint(s.Notifications))
	ui.Kv(ctx.Out, constants.SettingTheme, s.Theme)

	ctx.Println()
	ui.Header(ctx.Out, "Process")
	ui.Kv(ctx.Out, "storage", ctx.Store.GetConfigPath())
	ui.Kv(ctx.Out, "timezone", ctx.Service.Location().String())
	return nil
}

type SettingsSetCmd struct {
	Name  string `arg:"" help:"Setting name." enum:"first_day_of_week,default_sleep_goal,notifications,theme"`
	Value string `arg:"" help:"New value."`
}

func (c *SettingsSetCmd) Run(ctx *cli.Context) error {
	_, err := ctx.Service.SetSetting(c.Name, c.Value)
	if err = ctx.Saved(err); err != nil {
		return err
	}
	ctx.Printf("Set %s = %s\n", c.Name, c.Value)
	return nil
}
