package routine

import (
	"fmt"
	"strings"

	apperr "github.com/julianstephens/myroutine/internal/errors"
	"github.com/julianstephens/myroutine/internal/models"
)

// AddActivity appends a planned study activity to date.
func (s *Service) AddActivity(date, name string, plannedMin int) (models.StudyActivity, error) {
	a := models.StudyActivity{ID: models.NewID(), Name: strings.TrimSpace(name), PlannedMin: plannedMin}
	if err := s.validator.ValidateActivity(a); err != nil {
		return models.StudyActivity{}, err
	}
	_, err := s.updateDay(date, func(d *models.DayRecord) error {
		d.AddActivity(a)
		return nil
	})
	return a, err
}

// ToggleActivity flips an activity's completion. ref is the activity id or
// its 1-based position in the day's list.
func (s *Service) ToggleActivity(date, ref string) (models.DayRecord, error) {
	return s.updateDay(date, func(d *models.DayRecord) error {
		id, err := activityID(d, ref)
		if err != nil {
			return err
		}
		d.ToggleActivity(id)
		return nil
	})
}

func (s *Service) RemoveActivity(date, ref string) (models.DayRecord, error) {
	return s.updateDay(date, func(d *models.DayRecord) error {
		id, err := activityID(d, ref)
		if err != nil {
			return err
		}
		d.RemoveActivity(id)
		return nil
	})
}

func activityID(d *models.DayRecord, ref string) (models.ID, error) {
	if d.Study != nil {
		for i, a := range d.Study.Activities {
			if string(a.ID) == ref || fmt.Sprint(i+1) == ref {
				return a.ID, nil
			}
		}
	}
	return "", fmt.Errorf("activity %q: %w", ref, apperr.ErrNotFound)
}

// SetStudyMinutes records studied time directly, for days tracked without
// an activity list.
func (s *Service) SetStudyMinutes(date string, minutes int, concluded bool) (models.DayRecord, error) {
	if err := s.validator.ValidateDuration(minutes); err != nil {
		return models.DayRecord{}, err
	}
	return s.updateDay(date, func(d *models.DayRecord) error {
		if d.Study == nil {
			d.Study = &models.Study{}
		}
		d.Study.StudiedMin = minutes
		d.Study.Concluded = concluded
		return nil
	})
}

// SetWorkout marks the workout. A negative duration keeps the stored one.
func (s *Service) SetWorkout(date string, done bool, durationMin int) (models.DayRecord, error) {
	return s.updateDay(date, func(d *models.DayRecord) error {
		d.SetWorkout(done, durationMin)
		return nil
	})
}

func (s *Service) SetSleep(date string, hours float64) (models.DayRecord, error) {
	if err := s.validator.ValidateSleepHours(hours); err != nil {
		return models.DayRecord{}, err
	}
	return s.updateDay(date, func(d *models.DayRecord) error {
		d.SetSleep(hours)
		return nil
	})
}

func (s *Service) ToggleMeal(date string, meal models.Meal) (bool, error) {
	var state bool
	_, err := s.updateDay(date, func(d *models.DayRecord) error {
		switch meal {
		case models.MealBreakfast, models.MealLunch, models.MealDinner:
		default:
			return apperr.Invalidf("unknown meal %q (use cafe, almoco or jantar)", meal)
		}
		state = d.ToggleMeal(meal)
		return nil
	})
	return state, err
}

func (s *Service) SetNotes(date, notes string) (models.DayRecord, error) {
	return s.updateDay(date, func(d *models.DayRecord) error {
		d.Notes = notes
		return nil
	})
}
