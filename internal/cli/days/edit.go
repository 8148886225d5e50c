package days

import (
	"strings"

	"github.com/julianstephens/myroutine/internal/cli"
	"github.com/julianstephens/myroutine/internal/models"
	"github.com/julianstephens/myroutine/internal/stats"
)

var mealAliases = map[string]models.Meal{
	"cafe":      models.MealBreakfast,
	"breakfast": models.MealBreakfast,
	"almoco":    models.MealLunch,
	"lunch":     models.MealLunch,
	"jantar":    models.MealDinner,
	"dinner":    models.MealDinner,
}

type StudyCmd struct {
	Add    StudyAddCmd    `cmd:"" help:"Add a study activity."`
	Toggle StudyToggleCmd `cmd:"" help:"Mark an activity done or pending."`
	Remove StudyRemoveCmd `cmd:"" help:"Remove an activity."`
	Set    StudySetCmd    `cmd:"" help:"Record studied minutes directly."`
}

type StudyAddCmd struct {
	Name    string `arg:"" help:"Activity name."`
	Minutes int    `short:"m" help:"Planned minutes." default:"${study_minutes}"`
	Date    string `help:"Date as YYYY-MM-DD (default today)."`
}

func (c *StudyAddCmd) Run(ctx *cli.Context) error {
	key, err := ctx.Service.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	a, err := ctx.Service.AddActivity(key, c.Name, c.Minutes)
	if err = ctx.Saved(err); err != nil {
		return err
	}
	ctx.Printf("Added %q (%d min) to %s\n", a.Name, a.PlannedMin, key)
	return nil
}

type StudyToggleCmd struct {
	Activity string `arg:"" help:"Activity ID or position."`
	Date     string `help:"Date as YYYY-MM-DD (default today)."`
}

func (c *StudyToggleCmd) Run(ctx *cli.Context) error {
	key, err := ctx.Service.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	day, err := ctx.Service.ToggleActivity(key, c.Activity)
	if err = ctx.Saved(err); err != nil {
		return err
	}
	printStudy(ctx, day)
	return nil
}

type StudyRemoveCmd struct {
	Activity string `arg:"" help:"Activity ID or position."`
	Date     string `help:"Date as YYYY-MM-DD (default today)."`
}

func (c *StudyRemoveCmd) Run(ctx *cli.Context) error {
	key, err := ctx.Service.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	day, err := ctx.Service.RemoveActivity(key, c.Activity)
	if err = ctx.Saved(err); err != nil {
		return err
	}
	printStudy(ctx, day)
	return nil
}

type StudySetCmd struct {
	Minutes int    `arg:"" help:"Minutes studied."`
	Done    bool   `help:"Mark the study goal as concluded."`
	Date    string `help:"Date as YYYY-MM-DD (default today)."`
}

func (c *StudySetCmd) Run(ctx *cli.Context) error {
	key, err := ctx.Service.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	day, err := ctx.Service.SetStudyMinutes(key, c.Minutes, c.Done)
	if err = ctx.Saved(err); err != nil {
		return err
	}
	printStudy(ctx, day)
	return nil
}

func printStudy(ctx *cli.Context, day models.DayRecord) {
	state := "pending"
	if stats.StudyConcluded(&day) {
		state = "concluded"
	}
	ctx.Printf("Study: %d min, %s\n", stats.StudyMinutes(&day), state)
}

type WorkoutCmd struct {
	Undo    bool   `help:"Mark the workout as not done."`
	Minutes int    `short:"m" help:"Workout duration in minutes; omit to keep the stored one." default:"-1"`
	Date    string `help:"Date as YYYY-MM-DD (default today)."`
}

func (c *WorkoutCmd) Run(ctx *cli.Context) error {
	key, err := ctx.Service.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	_, err = ctx.Service.SetWorkout(key, !c.Undo, c.Minutes)
	if err = ctx.Saved(err); err != nil {
		return err
	}
	if c.Undo {
		ctx.Printf("Workout cleared for %s\n", key)
	} else {
		ctx.Printf("Workout done on %s\n", key)
	}
	return nil
}

type SleepCmd struct {
	Hours float64 `arg:"" help:"Hours slept."`
	Date  string  `help:"Date as YYYY-MM-DD (default today)."`
}

func (c *SleepCmd) Run(ctx *cli.Context) error {
	key, err := ctx.Service.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	_, err = ctx.Service.SetSleep(key, c.Hours)
	if err = ctx.Saved(err); err != nil {
		return err
	}
	ctx.Printf("Slept %sh on %s\n", stats.FormatValue(stats.Sleep, c.Hours), key)
	return nil
}

type MealCmd struct {
	Meal string `arg:"" help:"breakfast|lunch|dinner (or cafe|almoco|jantar)."`
	Date string `help:"Date as YYYY-MM-DD (default today)."`
}

func (c *MealCmd) Run(ctx *cli.Context) error {
	key, err := ctx.Service.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	meal, ok := mealAliases[strings.ToLower(strings.TrimSpace(c.Meal))]
	if !ok {
		meal = models.Meal(c.Meal)
	}
	done, err := ctx.Service.ToggleMeal(key, meal)
	if err = ctx.Saved(err); err != nil {
		return err
	}
	if done {
		ctx.Printf("%s checked on %s\n", c.Meal, key)
	} else {
		ctx.Printf("%s unchecked on %s\n", c.Meal, key)
	}
	return nil
}

type NotesCmd struct {
	Text []string `arg:"" optional:"" help:"Note text; omit to clear."`
	Date string   `help:"Date as YYYY-MM-DD (default today)."`
}

func (c *NotesCmd) Run(ctx *cli.Context) error {
	key, err := ctx.Service.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	notes := strings.TrimSpace(strings.Join(c.Text, " "))
	_, err = ctx.Service.SetNotes(key, notes)
	if err = ctx.Saved(err); err != nil {
		return err
	}
	if notes == "" {
		ctx.Printf("Notes cleared for %s\n", key)
	} else {
		ctx.Printf("Notes saved for %s\n", key)
	}
	return nil
}
