package insights

import (
	"fmt"
	"os"
	"strings"

	"github.com/julianstephens/myroutine/internal/cli"
	"github.com/julianstephens/myroutine/internal/constants"
	"github.com/julianstephens/myroutine/internal/models"
	"github.com/julianstephens/myroutine/internal/portability"
	"github.com/julianstephens/myroutine/internal/stats"
	"github.com/julianstephens/myroutine/internal/ui"
)

type StatsCmd struct {
	Summary StatsSummaryCmd `cmd:"" help:"Totals and averages for the last 7 or 30 days." default:"1"`
	Streaks StatsStreaksCmd `cmd:"" help:"Current and best streak per category."`
	Report  StatsReportCmd  `cmd:"" help:"Export days, totals, streaks and goals as a spreadsheet."`
}

type StatsSummaryCmd struct {
	Days int  `short:"d" help:"Window length." enum:"7,30" default:"7"`
	Full bool `help:"Include the per-day series."`
}

func (c *StatsSummaryCmd) Run(ctx *cli.Context) error {
	s, window, err := ctx.Service.Summary(c.Days)
	if err != nil {
		return err
	}

	ui.Header(ctx.Out, fmt.Sprintf("Last %d days", c.Days))
	if s.Days < c.Days {
		ctx.Printf("  %s\n", ui.Muted.Render(fmt.Sprintf("(%d days since the profile was created)", s.Days)))
	}
	ui.Kv(ctx.Out, "Study", fmt.Sprintf("%d min (avg %d/day)", s.StudyMinutes, s.StudyAvg))
	ui.Kv(ctx.Out, "Workout", fmt.Sprintf("%d days (%d%%)", s.WorkoutDays, s.WorkoutPercent))
	ui.Kv(ctx.Out, "Sleep", fmt.Sprintf("%sh average", stats.FormatValue(stats.Sleep, s.SleepAvg)))
	ui.Kv(ctx.Out, "Focus", fmt.Sprintf("%d min (avg %d/day)", s.FocusMinutes, s.FocusAvg))
	ui.Kv(ctx.Out, "Progress", ui.ProgressBar(float64(s.Progress), ui.BarWidth(16)))
	ctx.Printf("  %s\n", ui.Info.Render(stats.PerformanceMessage(s.Progress)))

	if !c.Full || len(window) == 0 {
		return nil
	}
	records, err := ctx.Service.Records()
	if err != nil {
		return err
	}
	ctx.Println()
	rows := make([][]string, 0, len(window))
	study := stats.DailySeries(records, window, stats.Study)
	workout := stats.DailySeries(records, window, stats.Workout)
	sleep := stats.DailySeries(records, window, stats.Sleep)
	meals := stats.DailySeries(records, window, stats.Meals)
	focus := stats.DailySeries(records, window, stats.Focus)
	for i, key := range window {
		day := records.Get(key)
		rows = append(rows, []string{
			key,
			fmt.Sprintf("%d%%", stats.DailyProgress(&day)),
			stats.FormatValue(stats.Study, study[i]),
			ui.Check(workout[i] > 0),
			stats.FormatValue(stats.Sleep, sleep[i]),
			fmt.Sprintf("%.0f/%d", meals[i], len(models.AllMeals)),
			stats.FormatValue(stats.Focus, focus[i]),
		})
	}
	ctx.Println(ui.Table([]string{"Date", "Progress", "Study", "Workout", "Sleep", "Meals", "Focus"}, rows))
	return nil
}

type StatsStreaksCmd struct{}

func (c *StatsStreaksCmd) Run(ctx *cli.Context) error {
	streaks, err := ctx.Service.Streaks()
	if err != nil {
		return err
	}
	rows := make([][]string, 0, len(streaks))
	for _, r := range streaks {
		rows = append(rows, []string{
			r.Category.String(),
			fmt.Sprintf("%d %s", r.Current, ui.IconFire),
			fmt.Sprint(r.Best),
			r.Message,
		})
	}
	ctx.Println(ui.Table([]string{"Category", "Current", "Best", ""}, rows))

	habits, err := ctx.Service.HabitStreaks()
	if err != nil || len(habits) == 0 {
		return err
	}
	ctx.Println()
	rows = rows[:0]
	for _, h := range habits {
		rows = append(rows, []string{
			h.Habit.Name,
			ui.Check(h.DoneNow),
			fmt.Sprint(h.Current),
			fmt.Sprint(h.Best),
		})
	}
	ctx.Println(ui.Table([]string{"Habit", "Today", "Current", "Best"}, rows))
	return nil
}

type StatsReportCmd struct {
	Days   int    `short:"d" help:"Window length." enum:"7,30" default:"30"`
	Output string `short:"o" help:"Output file (default myroutine-report-<date>.xlsx)." type:"path"`
}

func (c *StatsReportCmd) Run(ctx *cli.Context) error {
	_, window, err := ctx.Service.Summary(c.Days)
	if err != nil {
		return err
	}
	records, err := ctx.Service.Records()
	if err != nil {
		return err
	}
	streaks, err := ctx.Service.Streaks()
	if err != nil {
		return err
	}
	goals, err := ctx.Service.GoalReport()
	if err != nil {
		return err
	}

	path := c.Output
	if path == "" {
		path = fmt.Sprintf("%sreport-%s.xlsx", constants.BackupFilePrefix, ctx.Service.TodayKey())
	}
	if !strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		path += ".xlsx"
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := portability.WriteReport(f, portability.NewReport(records, window, streaks, goals)); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	ctx.Printf("Report written to %s\n", path)
	return nil
}
