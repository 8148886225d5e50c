package stats

import "github.com/julianstephens/myroutine/internal/models"

// StudyMinutes returns the stored study total when set, otherwise the planned
// time of completed activities. The stored total wins even if it disagrees
// with the activity list.
func StudyMinutes(day *models.DayRecord) int {
	if day == nil || day.Study == nil {
		return 0
	}
	if day.Study.StudiedMin > 0 {
		return day.Study.StudiedMin
	}
	total := 0
	for _, a := range day.Study.Activities {
		if a.Done {
			total += a.PlannedMin
		}
	}
	return total
}

func StudyConcluded(day *models.DayRecord) bool {
	return day != nil && day.Study != nil && day.Study.Concluded
}

func WorkoutDone(day *models.DayRecord) bool {
	return day != nil && day.Workout != nil && day.Workout.Done
}

func SleepHours(day *models.DayRecord) float64 {
	if day == nil || day.Sleep == nil {
		return 0
	}
	return day.Sleep.Hours
}

func MealsCompleted(day *models.DayRecord) int {
	if day == nil || day.Meals == nil {
		return 0
	}
	return day.Meals.Count()
}

func TotalFocusMinutes(day *models.DayRecord) int {
	if day == nil {
		return 0
	}
	return day.FocusMinutes()
}

// lookup returns a pointer to the stored record for key, or nil.
func lookup(records models.DayRecords, key string) *models.DayRecord {
	rec, ok := records[key]
	if !ok {
		return nil
	}
	return &rec
}
