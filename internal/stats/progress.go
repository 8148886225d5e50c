package stats

import (
	"math"

	"github.com/julianstephens/myroutine/internal/constants"
	"github.com/julianstephens/myroutine/internal/models"
)

// DailyProgress scores a day on four checks (study concluded, workout done,
// any sleep logged, all meals) and returns the rounded percentage.
func DailyProgress(day *models.DayRecord) int {
	if day == nil {
		return 0
	}
	completed := 0
	for _, ok := range []bool{
		StudyConcluded(day),
		WorkoutDone(day),
		SleepHours(day) > 0,
		MealsCompleted(day) == len(models.AllMeals),
	} {
		if ok {
			completed++
		}
	}
	return roundPercent(float64(completed) / constants.DailyChecks * 100)
}

// WeeklyProgress averages DailyProgress over the keys in window that have a
// stored record. Days without a record do not count toward the average.
func WeeklyProgress(records models.DayRecords, window []string) int {
	total, n := 0, 0
	for _, key := range window {
		if day := lookup(records, key); day != nil {
			total += DailyProgress(day)
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return roundPercent(float64(total) / float64(n))
}

// DailySeries returns the category metric for each key in window, zero for
// missing days.
func DailySeries(records models.DayRecords, window []string, c Category) []float64 {
	out := make([]float64, len(window))
	for i, key := range window {
		out[i] = c.Value(lookup(records, key))
	}
	return out
}

func roundPercent(v float64) int {
	return int(math.Round(v))
}
