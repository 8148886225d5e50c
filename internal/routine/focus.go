package routine

import (
	"slices"
	"time"

	apperr "github.com/julianstephens/myroutine/internal/errors"
	"github.com/julianstephens/myroutine/internal/models"
)

// ParseFocusCategory checks a timer category name.
func ParseFocusCategory(s string) (models.FocusCategory, error) {
	c := models.FocusCategory(s)
	if !slices.Contains(models.FocusCategories, c) {
		return "", apperr.Invalidf("unknown focus category %q (use estudo, trabalho or treino)", s)
	}
	return c, nil
}

// RecordFocus credits whole elapsed minutes to today's timer bucket and
// returns how many were added. Sessions shorter than a minute add nothing
// and write nothing.
func (s *Service) RecordFocus(c models.FocusCategory, elapsed time.Duration) (int, error) {
	if _, err := ParseFocusCategory(string(c)); err != nil {
		return 0, err
	}
	minutes := int(elapsed / time.Minute)
	if minutes <= 0 {
		return 0, nil
	}
	_, err := s.updateDay(s.TodayKey(), func(d *models.DayRecord) error {
		d.AddFocusMinutes(c, minutes)
		return nil
	})
	return minutes, err
}
