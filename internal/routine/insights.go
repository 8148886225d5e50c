package routine

import (
	"github.com/julianstephens/myroutine/internal/constants"
	"github.com/julianstephens/myroutine/internal/models"
	"github.com/julianstephens/myroutine/internal/stats"
)

// Overview is what the dashboard shows for today.
type Overview struct {
	Date          string
	Day           models.DayRecord
	DailyProgress int
	Weekly        int
	Performance   string
	Motivation    string
}

func (s *Service) Overview() (Overview, error) {
	records, err := s.repo.DayRecords()
	if err != nil {
		return Overview{}, err
	}
	key := s.TodayKey()
	day := records.Get(key)
	weekly := stats.WeeklyProgress(records, s.window(constants.WeeklyWindowDays))
	return Overview{
		Date:          key,
		Day:           day,
		DailyProgress: stats.DailyProgress(&day),
		Weekly:        weekly,
		Performance:   stats.PerformanceMessage(weekly),
		Motivation:    stats.MotivationalMessage(),
	}, nil
}

// window returns up to n trailing days, starting no earlier than the active
// profile's creation.
func (s *Service) window(n int) []string {
	return stats.DaysSinceCreation(s.CreationDate(), n, s.Now())
}

// Summary totals the last n days.
func (s *Service) Summary(n int) (stats.Summary, []string, error) {
	records, err := s.repo.DayRecords()
	if err != nil {
		return stats.Summary{}, nil, err
	}
	w := s.window(n)
	return stats.Summarize(records, w), w, nil
}

// Streaks returns the streak table for every category.
func (s *Service) Streaks() ([]stats.StreakRow, error) {
	records, err := s.repo.DayRecords()
	if err != nil {
		return nil, err
	}
	return stats.Streaks(records, s.Now()), nil
}

type HabitStreak struct {
	Habit   models.Habit
	DoneNow bool
	Current int
	Best    int
}

func (s *Service) HabitStreaks() ([]HabitStreak, error) {
	habits, err := s.repo.Habits()
	if err != nil {
		return nil, err
	}
	records, err := s.repo.DayRecords()
	if err != nil {
		return nil, err
	}
	today := records.Get(s.TodayKey())
	out := make([]HabitStreak, 0, len(habits))
	for _, h := range habits {
		out = append(out, HabitStreak{
			Habit:   h,
			DoneNow: today.HabitDone(h.ID),
			Current: stats.HabitStreak(records, h.ID, s.Now()),
			Best:    stats.BestHabitStreak(records, h.ID),
		})
	}
	return out, nil
}
