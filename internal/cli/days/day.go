package days

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/julianstephens/myroutine/internal/cli"
	"github.com/julianstephens/myroutine/internal/models"
	"github.com/julianstephens/myroutine/internal/stats"
	"github.com/julianstephens/myroutine/internal/ui"
)

type DayCmd struct {
	Date string `arg:"" optional:"" help:"Date as YYYY-MM-DD (default today)."`
}

func (c *DayCmd) Run(ctx *cli.Context) error {
	key, err := ctx.Service.ResolveDate(c.Date)
	if err != nil {
		return err
	}
	habits, err := ctx.Service.ListHabits()
	if err != nil {
		return err
	}

	if key == ctx.Service.TodayKey() {
		ov, err := ctx.Service.Overview()
		if err != nil {
			return err
		}
		if p, err := ctx.Service.ActiveProfile(); err == nil {
			ctx.Printf("%s %s\n\n", p.Icon, p.Name)
		}
		ui.Header(ctx.Out, "Today "+ov.Date)
		ui.Kv(ctx.Out, "Daily", ui.ProgressBar(float64(ov.DailyProgress), ui.BarWidth(16)))
		ui.Kv(ctx.Out, "Weekly", ui.ProgressBar(float64(ov.Weekly), ui.BarWidth(16)))
		ctx.Printf("  %s\n", ui.Muted.Render(ov.Performance))
		ctx.Printf("  %s\n\n", ui.Info.Render(ov.Motivation))
		RenderDay(ctx.Out, ov.Day, habits)
		return nil
	}

	day, err := ctx.Service.Day(key)
	if err != nil {
		return err
	}
	ui.Header(ctx.Out, key)
	ui.Kv(ctx.Out, "Daily", ui.ProgressBar(float64(stats.DailyProgress(&day)), ui.BarWidth(16)))
	ctx.Println()
	RenderDay(ctx.Out, day, habits)
	return nil
}

// RenderDay writes every section of a day record.
func RenderDay(w io.Writer, day models.DayRecord, habits []models.Habit) {
	study := stats.StudyMinutes(&day)
	fmt.Fprintf(w, "%s Study        %d min\n", ui.Check(stats.StudyConcluded(&day)), study)
	if day.Study != nil {
		for i, a := range day.Study.Activities {
			fmt.Fprintf(w, "    %d. %s %s (%d min)\n", i+1, ui.Check(a.Done), a.Name, a.PlannedMin)
		}
	}

	workout := "not done"
	if stats.WorkoutDone(&day) {
		workout = "done"
		if day.Workout.DurationMin > 0 {
			workout = fmt.Sprintf("done, %d min", day.Workout.DurationMin)
		}
	}
	fmt.Fprintf(w, "%s Workout      %s\n", ui.Check(stats.WorkoutDone(&day)), workout)

	sleep := stats.SleepHours(&day)
	fmt.Fprintf(w, "%s Sleep        %sh\n", ui.Check(sleep > 0), stats.FormatValue(stats.Sleep, sleep))

	meals := stats.MealsCompleted(&day)
	var names []string
	if day.Meals != nil {
		for _, m := range []struct {
			name string
			done bool
		}{{"breakfast", day.Meals.Breakfast}, {"lunch", day.Meals.Lunch}, {"dinner", day.Meals.Dinner}} {
			if m.done {
				names = append(names, m.name)
			}
		}
	}
	fmt.Fprintf(w, "%s Meals        %d/%d %s\n", ui.Check(meals == len(models.AllMeals)), meals, len(models.AllMeals), strings.Join(names, ", "))

	if focus := stats.TotalFocusMinutes(&day); focus > 0 {
		buckets := make([]string, 0, len(day.Timer))
		for k, v := range day.Timer {
			buckets = append(buckets, fmt.Sprintf("%s %d", k, v))
		}
		sort.Strings(buckets)
		fmt.Fprintf(w, "%s Focus        %d min (%s)\n", ui.Check(true), focus, strings.Join(buckets, ", "))
	}

	if len(day.Schedule) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, ui.Title.Render("Schedule"))
		RenderSchedule(w, day.Schedule)
	}

	if len(habits) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, ui.Title.Render("Habits"))
		for _, h := range habits {
			fmt.Fprintf(w, "  %s %s %s\n", ui.Check(day.HabitDone(h.ID)), h.Icon, h.Name)
		}
	}

	if day.Notes != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, ui.Title.Render("Notes"))
		fmt.Fprintf(w, "  %s\n", day.Notes)
	}
}

// RenderSchedule writes events in order with their 1-based position.
func RenderSchedule(w io.Writer, events []models.Event) {
	for i, e := range events {
		fmt.Fprintf(w, "  %d. %s %s %s %s\n", i+1, ui.Check(e.Done), e.Time, e.Title, ui.Muted.Render("["+string(e.Category)+"]"))
		if e.Description != "" {
			fmt.Fprintf(w, "       %s\n", ui.Muted.Render(e.Description))
		}
	}
}
