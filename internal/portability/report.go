package portability

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/julianstephens/myroutine/internal/models"
	"github.com/julianstephens/myroutine/internal/stats"
)

const (
	sheetDays    = "Days"
	sheetSummary = "Summary"
	sheetStreaks = "Streaks"
	sheetGoals   = "Goals"
)

var dayHeaders = []any{
	"Date", "Progress %", "Study (min)", "Study done", "Workout", "Workout (min)",
	"Sleep (h)", "Meals", "Focus (min)", "Events", "Notes",
}

// Report is the data behind a spreadsheet export.
type Report struct {
	Records models.DayRecords
	Window  []string
	Summary stats.Summary
	Streaks []stats.StreakRow
	Goals   []stats.GoalProgress
}

// NewReport evaluates the window, streaks and goals for records.
func NewReport(records models.DayRecords, window []string, streaks []stats.StreakRow, goals []stats.GoalProgress) Report {
	return Report{
		Records: records,
		Window:  window,
		Summary: stats.Summarize(records, window),
		Streaks: streaks,
		Goals:   goals,
	}
}

// WriteReport renders r as an XLSX workbook to w.
func WriteReport(w io.Writer, r Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetDays); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}
	for _, name := range []string{sheetSummary, sheetStreaks, sheetGoals} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create sheet %s: %w", name, err)
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("failed to create style: %w", err)
	}

	if err := writeRows(f, sheetDays, bold, dayHeaders, dayRows(r)); err != nil {
		return err
	}
	if err := writeRows(f, sheetSummary, bold, []any{"Metric", "Value"}, summaryRows(r.Summary)); err != nil {
		return err
	}
	if err := writeRows(f, sheetStreaks, bold, []any{"Category", "Current", "Best"}, streakRows(r.Streaks)); err != nil {
		return err
	}
	if err := writeRows(f, sheetGoals, bold, []any{"Goal", "Period", "Category", "Current", "Target", "Unit", "Percent", "Completed"}, goalRows(r.Goals)); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeRows(f *excelize.File, sheet string, headerStyle int, header []any, rows [][]any) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write %s header: %w", sheet, err)
	}
	if err := f.SetRowStyle(sheet, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("failed to style %s header: %w", sheet, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write %s row %d: %w", sheet, i+2, err)
		}
	}
	return nil
}

func dayRows(r Report) [][]any {
	rows := make([][]any, 0, len(r.Window))
	for _, key := range r.Window {
		day, ok := r.Records[key]
		if !ok {
			rows = append(rows, []any{key})
			continue
		}
		workoutMin := 0
		if day.Workout != nil {
			workoutMin = day.Workout.DurationMin
		}
		rows = append(rows, []any{
			key,
			stats.DailyProgress(&day),
			stats.StudyMinutes(&day),
			yesNo(stats.StudyConcluded(&day)),
			yesNo(stats.WorkoutDone(&day)),
			workoutMin,
			stats.SleepHours(&day),
			stats.MealsCompleted(&day),
			stats.TotalFocusMinutes(&day),
			len(day.Schedule),
			day.Notes,
		})
	}
	return rows
}

func summaryRows(s stats.Summary) [][]any {
	return [][]any{
		{"Days", s.Days},
		{"Study (min)", s.StudyMinutes},
		{"Study avg (min/day)", s.StudyAvg},
		{"Workout days", s.WorkoutDays},
		{"Workout %", s.WorkoutPercent},
		{"Sleep avg (h)", s.SleepAvg},
		{"Focus (min)", s.FocusMinutes},
		{"Focus avg (min/day)", s.FocusAvg},
		{"Progress %", s.Progress},
	}
}

func streakRows(rows []stats.StreakRow) [][]any {
	out := make([][]any, 0, len(rows))
	for _, r := range rows {
		out = append(out, []any{r.Category.String(), r.Current, r.Best})
	}
	return out
}

func goalRows(goals []stats.GoalProgress) [][]any {
	out := make([][]any, 0, len(goals))
	for _, g := range goals {
		out = append(out, []any{
			g.Goal.Title,
			string(g.Goal.Period),
			g.Category.String(),
			g.Display,
			g.Goal.Target,
			g.Goal.Unit,
			g.Percent,
			yesNo(g.Completed),
		})
	}
	return out
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
