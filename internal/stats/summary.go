package stats

import (
	"math"
	"time"

	"github.com/julianstephens/myroutine/internal/models"
)

// Summary aggregates every category over one window.
type Summary struct {
	Days           int
	StudyMinutes   int
	StudyAvg       int // minutes per window day
	WorkoutDays    int
	WorkoutPercent int
	SleepAvg       float64
	FocusMinutes   int
	FocusAvg       int
	Progress       int // average DailyProgress over recorded days
}

// Summarize totals the categories over window. Averages divide by the full
// window length except sleep, which only counts logged nights.
func Summarize(records models.DayRecords, window []string) Summary {
	s := Summary{Days: len(window)}
	for _, key := range window {
		day := lookup(records, key)
		s.StudyMinutes += StudyMinutes(day)
		s.FocusMinutes += TotalFocusMinutes(day)
		if WorkoutDone(day) {
			s.WorkoutDays++
		}
	}
	s.SleepAvg = AverageSleep(records, window)
	s.Progress = WeeklyProgress(records, window)
	if s.Days > 0 {
		s.StudyAvg = int(math.Round(float64(s.StudyMinutes) / float64(s.Days)))
		s.FocusAvg = int(math.Round(float64(s.FocusMinutes) / float64(s.Days)))
		s.WorkoutPercent = roundPercent(float64(s.WorkoutDays) / float64(s.Days) * 100)
	}
	return s
}

// StreakRow pairs the current and best streak of a category.
type StreakRow struct {
	Category Category
	Current  int
	Best     int
	Message  string
}

// Streaks computes a StreakRow for every category.
func Streaks(records models.DayRecords, today time.Time) []StreakRow {
	rows := make([]StreakRow, 0, len(AllCategories()))
	for _, c := range AllCategories() {
		cur := CurrentStreak(records, c, today)
		rows = append(rows, StreakRow{
			Category: c,
			Current:  cur,
			Best:     BestStreak(records, c),
			Message:  StreakMessage(cur),
		})
	}
	return rows
}
