package habits

import (
	"fmt"
	"strings"

	"github.com/julianstephens/myroutine/internal/cli"
	"github.com/julianstephens/myroutine/internal/models"
	"github.com/julianstephens/myroutine/internal/stats"
	"github.com/julianstephens/myroutine/internal/ui"
	"github.com/julianstephens/myroutine/internal/utils"
)

type HabitCmd struct {
	Add    HabitAddCmd    `cmd:"" help:"Add a new habit."`
	List   HabitListCmd   `cmd:"" help:"List habits with today's status and streaks." default:"1"`
	Toggle HabitToggleCmd `cmd:"" help:"Mark a habit done or not done for a day."`
	Rename HabitRenameCmd `cmd:"" help:"Rename a habit."`
	Delete HabitDeleteCmd `cmd:"" help:"Delete a habit and its history."`
	Log    HabitLogCmd    `cmd:"" help:"Show habit log (ASCII history)."`
}

type HabitAddCmd struct {
	Name  string `arg:"" help:"Habit name."`
	Icon  string `help:"Habit icon."`
	Color string `help:"Habit color as a hex code."`
}

func (c *HabitAddCmd) Run(ctx *cli.Context) error {
	h, err := ctx.Service.AddHabit(c.Name, c.Icon, c.Color)
	if err = ctx.Saved(err); err != nil {
		return err
	}
	ctx.Printf("Added habit: %s\n", h.Name)
	return nil
}

type HabitListCmd struct{}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	rows, err := ctx.Service.HabitStreaks()
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		ctx.Println("No habits found.")
		return nil
	}

	table := make([][]string, 0, len(rows))
	for i, r := range rows {
		table = append(table, []string{
			fmt.Sprint(i + 1),
			ui.Check(r.DoneNow),
			strings.TrimSpace(r.Habit.Icon + " " + r.Habit.Name),
			fmt.Sprintf("%d %s", r.Current, ui.IconFire),
			fmt.Sprint(r.Best),
		})
	}
	ctx.Println(ui.Table([]string{"#", "Today", "Habit", "Streak", "Best"}, table))
	return nil
}

type HabitToggleCmd struct {
	Habit string `arg:"" help:"Habit ID or name."`
	Date  string `help:"Date as YYYY-MM-DD (default today)."`
}

func (c *HabitToggleCmd) Run(ctx *cli.Context) error {
	key, err := ctx.Service.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	h, err := ctx.Service.FindHabit(c.Habit)
	if err != nil {
		return err
	}
	done, err := ctx.Service.ToggleHabit(string(h.ID), key)
	if err = ctx.Saved(err); err != nil {
		return err
	}
	if done {
		ctx.Printf("Marked %s done for %s\n", h.Name, key)
	} else {
		ctx.Printf("Unmarked %s for %s\n", h.Name, key)
	}
	return nil
}

type HabitRenameCmd struct {
	Habit string `arg:"" help:"Habit ID or name."`
	Name  string `arg:"" help:"New name."`
}

func (c *HabitRenameCmd) Run(ctx *cli.Context) error {
	h, err := ctx.Service.RenameHabit(c.Habit, c.Name)
	if err = ctx.Saved(err); err != nil {
		return err
	}
	ctx.Printf("Renamed habit to %s\n", h.Name)
	return nil
}

type HabitDeleteCmd struct {
	Habit string `arg:"" help:"Habit ID or name."`
	Yes   bool   `short:"y" help:"Skip confirmation."`
}

func (c *HabitDeleteCmd) Run(ctx *cli.Context) error {
	h, err := ctx.Service.FindHabit(c.Habit)
	if err != nil {
		return err
	}
	ok, err := ctx.Confirm(c.Yes, fmt.Sprintf("Delete %q and its check-ins on every day?", h.Name))
	if err != nil || !ok {
		return err
	}
	_, err = ctx.Service.DeleteHabit(string(h.ID))
	if err = ctx.Saved(err); err != nil {
		return err
	}
	ctx.Printf("Deleted habit: %s\n", h.Name)
	return nil
}

type HabitLogCmd struct {
	Days  int    `help:"Number of days to show." default:"14"`
	Habit string `help:"Show log for specific habit only."`
}

func (c *HabitLogCmd) Run(ctx *cli.Context) error {
	habits, err := ctx.Service.ListHabits()
	if err != nil {
		return err
	}
	if c.Habit != "" {
		h, err := ctx.Service.FindHabit(c.Habit)
		if err != nil {
			return err
		}
		habits = []models.Habit{h}
	}
	if len(habits) == 0 {
		ctx.Println("No habits found.")
		return nil
	}
	records, err := ctx.Service.Records()
	if err != nil {
		return err
	}

	window := stats.LastNDays(c.Days, ctx.Service.Now())
	ctx.Printf("Habit log (last %d days):\n\n", len(window))

	const nameWidth = 20
	ctx.Printf("%-*s", nameWidth, "Habit")
	for _, key := range window {
		d, err := utils.ParseDateKey(key, ctx.Service.Location())
		if err != nil {
			return err
		}
		ctx.Printf(" %5s", d.Format("01/02"))
	}
	ctx.Println()
	ctx.Println(strings.Repeat("-", nameWidth+6*len(window)))

	for _, h := range habits {
		name := []rune(h.Name)
		if len(name) > nameWidth {
			name = append(name[:nameWidth-3], []rune("...")...)
		}
		ctx.Printf("%-*s", nameWidth, string(name))
		for _, key := range window {
			mark := "."
			if records.Get(key).HabitDone(h.ID) {
				mark = "x"
			}
			ctx.Printf("  %s   ", mark)
		}
		ctx.Println()
	}
	return nil
}
