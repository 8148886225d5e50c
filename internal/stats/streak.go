package stats

import (
	"sort"
	"time"

	"github.com/julianstephens/myroutine/internal/constants"
	"github.com/julianstephens/myroutine/internal/models"
	"github.com/julianstephens/myroutine/internal/utils"
)

type predicate func(*models.DayRecord) bool

// CurrentStreak counts consecutive days satisfying the category, walking back
// from today. A missing record ends the streak, so an empty store yields 0.
func CurrentStreak(records models.DayRecords, c Category, today time.Time) int {
	return currentRun(records, c.Done, today)
}

// BestStreak returns the longest run of calendar-adjacent days satisfying the
// category anywhere in the store.
func BestStreak(records models.DayRecords, c Category) int {
	return bestRun(records, c.Done)
}

// HabitStreak counts consecutive days, ending today, on which the habit was
// checked.
func HabitStreak(records models.DayRecords, habitID models.ID, today time.Time) int {
	return currentRun(records, habitDone(habitID), today)
}

func BestHabitStreak(records models.DayRecords, habitID models.ID) int {
	return bestRun(records, habitDone(habitID))
}

func habitDone(id models.ID) predicate {
	return func(d *models.DayRecord) bool { return d != nil && d.HabitDone(id) }
}

func currentRun(records models.DayRecords, done predicate, today time.Time) int {
	streak := 0
	day := utils.StartOfDay(today)
	// each step consumes a distinct stored key, so the walk is bounded by len(records)
	for streak < len(records) {
		rec := lookup(records, utils.DateKey(day))
		if rec == nil || !done(rec) {
			break
		}
		streak++
		day = utils.AddDays(day, -1)
	}
	return streak
}

func bestRun(records models.DayRecords, done predicate) int {
	keys := make([]string, 0, len(records))
	for k := range records {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	best, run := 0, 0
	var lastDone time.Time
	for _, key := range keys {
		date, err := time.Parse(constants.DateFormat, key)
		if err != nil {
			continue
		}
		rec := records[key]
		if !done(&rec) {
			run = 0
			continue
		}
		if !lastDone.IsZero() && utils.DaysBetween(lastDone, date) == 1 {
			run++
		} else {
			run = 1
		}
		best = max(best, run)
		lastDone = date
	}
	return best
}
