package stats

import (
	"math"
	"time"

	"github.com/julianstephens/myroutine/internal/utils"
)

// LastNDays returns n ascending date keys ending at anchor's calendar day.
func LastNDays(n int, anchor time.Time) []string {
	if n <= 0 {
		return []string{}
	}
	day := utils.StartOfDay(anchor)
	keys := make([]string, n)
	for i := 0; i < n; i++ {
		keys[i] = utils.DateKey(utils.AddDays(day, i-(n-1)))
	}
	return keys
}

// DaysSinceCreation returns the trailing window ending today for a profile
// created at created, capped at maxDays. Whole elapsed days size the window
// and a key is kept only when its local midnight is not before created. A
// profile created earlier today owns today. A zero creation instant falls
// back to LastNDays.
func DaysSinceCreation(created time.Time, maxDays int, now time.Time) []string {
	if created.IsZero() {
		return LastNDays(maxDays, now)
	}
	if created.After(now) {
		return []string{}
	}

	elapsed := int(math.Floor(now.Sub(created).Hours() / 24))
	actual := max(min(elapsed+1, maxDays), 0)

	out := []string{}
	for _, k := range LastNDays(actual, now) {
		midnight, err := utils.ParseDateKey(k, now.Location())
		if err == nil && !midnight.Before(created) {
			out = append(out, k)
		}
	}
	if len(out) == 0 && maxDays > 0 && utils.DateKey(created.In(now.Location())) == utils.DateKey(now) {
		return []string{utils.DateKey(now)}
	}
	return out
}
