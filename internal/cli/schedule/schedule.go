package schedule

import (
	"github.com/julianstephens/myroutine/internal/cli"
	"github.com/julianstephens/myroutine/internal/cli/days"
	"github.com/julianstephens/myroutine/internal/models"
	"github.com/julianstephens/myroutine/internal/routine"
)

type ScheduleCmd struct {
	Add      ScheduleAddCmd    `cmd:"" help:"Schedule an event."`
	Edit     ScheduleEditCmd   `cmd:"" help:"Edit an event."`
	Toggle   ScheduleToggleCmd `cmd:"" help:"Mark an event done or pending."`
	Remove   ScheduleRemoveCmd `cmd:"" help:"Remove an event."`
	List     ScheduleListCmd   `cmd:"" help:"Show the schedule for a day." default:"1"`
	Template TemplateCmd       `cmd:"" help:"Manage schedule templates."`
}

type ScheduleAddCmd struct {
	Time        string `arg:"" help:"Start time as HH:MM."`
	Title       string `arg:"" help:"Event title."`
	Description string `short:"d" help:"Event description."`
	Category    string `short:"c" help:"Event category." enum:"estudo,trabalho,treino,lazer,outro" default:"outro"`
	Date        string `help:"Date as YYYY-MM-DD (default today)."`
}

func (c *ScheduleAddCmd) Run(ctx *cli.Context) error {
	key, err := ctx.Service.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	e, err := ctx.Service.AddEvent(key, routine.EventInput{
		Time:        c.Time,
		Title:       c.Title,
		Description: c.Description,
		Category:    models.EventCategory(c.Category),
	})
	if err = ctx.Saved(err); err != nil {
		return err
	}
	ctx.Printf("Scheduled %s %s on %s\n", e.Time, e.Title, key)
	return nil
}

type ScheduleEditCmd struct {
	Event       string `arg:"" help:"Event ID or position."`
	Time        string `help:"New start time as HH:MM."`
	Title       string `help:"New title."`
	Description string `short:"d" help:"New description."`
	Category    string `short:"c" help:"New category." enum:",estudo,trabalho,treino,lazer,outro" default:""`
	Date        string `help:"Date as YYYY-MM-DD (default today)."`
}

func (c *ScheduleEditCmd) Run(ctx *cli.Context) error {
	key, err := ctx.Service.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	e, err := ctx.Service.UpdateEvent(key, c.Event, routine.EventInput{
		Time:        c.Time,
		Title:       c.Title,
		Description: c.Description,
		Category:    models.EventCategory(c.Category),
	})
	if err = ctx.Saved(err); err != nil {
		return err
	}
	ctx.Printf("Updated %s %s\n", e.Time, e.Title)
	return nil
}

type ScheduleToggleCmd struct {
	Event string `arg:"" help:"Event ID or position."`
	Date  string `help:"Date as YYYY-MM-DD (default today)."`
}

func (c *ScheduleToggleCmd) Run(ctx *cli.Context) error {
	key, err := ctx.Service.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	e, err := ctx.Service.ToggleEvent(key, c.Event)
	if err = ctx.Saved(err); err != nil {
		return err
	}
	if e.Done {
		ctx.Printf("Done: %s %s\n", e.Time, e.Title)
	} else {
		ctx.Printf("Pending: %s %s\n", e.Time, e.Title)
	}
	return nil
}

type ScheduleRemoveCmd struct {
	Event string `arg:"" help:"Event ID or position."`
	Date  string `help:"Date as YYYY-MM-DD (default today)."`
}

func (c *ScheduleRemoveCmd) Run(ctx *cli.Context) error {
	key, err := ctx.Service.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	e, err := ctx.Service.RemoveEvent(key, c.Event)
	if err = ctx.Saved(err); err != nil {
		return err
	}
	ctx.Printf("Removed %s %s\n", e.Time, e.Title)
	return nil
}

type ScheduleListCmd struct {
	Date string `arg:"" optional:"" help:"Date as YYYY-MM-DD (default today)."`
}

func (c *ScheduleListCmd) Run(ctx *cli.Context) error {
	key, err := ctx.Service.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	day, err := ctx.Service.Day(key)
	if err != nil {
		return err
	}
	if len(day.Schedule) == 0 {
		ctx.Printf("Nothing scheduled for %s.\n", key)
		return nil
	}
	ctx.Printf("Schedule for %s:\n", key)
	days.RenderSchedule(ctx.Out, day.Schedule)
	return nil
}
