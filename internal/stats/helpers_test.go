package stats

import (
	"time"

	"github.com/julianstephens/myroutine/internal/models"
)

func date(s string) time.Time {
	t, err := time.ParseInLocation("2006-01-02 15:04", s, time.UTC)
	if err != nil {
		t, err = time.ParseInLocation("2006-01-02", s, time.UTC)
		if err != nil {
			panic(err)
		}
	}
	return t
}

func workout(done bool) models.DayRecord {
	return models.DayRecord{Workout: &models.Workout{Done: done}}
}

func sleep(h float64) models.DayRecord {
	return models.DayRecord{Sleep: &models.Sleep{Hours: h}}
}
