package routine

import (
	"fmt"
	"slices"
	"strings"

	"github.com/julianstephens/myroutine/internal/constants"
	apperr "github.com/julianstephens/myroutine/internal/errors"
	"github.com/julianstephens/myroutine/internal/models"
)

func (s *Service) ListHabits() ([]models.Habit, error) {
	return s.repo.Habits()
}

func (s *Service) FindHabit(ref string) (models.Habit, error) {
	habits, err := s.repo.Habits()
	if err != nil {
		return models.Habit{}, err
	}
	if i := indexHabit(habits, ref); i >= 0 {
		return habits[i], nil
	}
	return models.Habit{}, fmt.Errorf("habit %q: %w", ref, apperr.ErrNotFound)
}

func indexHabit(habits []models.Habit, ref string) int {
	if i := slices.IndexFunc(habits, func(h models.Habit) bool { return string(h.ID) == ref }); i >= 0 {
		return i
	}
	return slices.IndexFunc(habits, func(h models.Habit) bool { return strings.EqualFold(h.Name, ref) })
}

func (s *Service) AddHabit(name, icon, color string) (models.Habit, error) {
	habits, err := s.repo.Habits()
	if err != nil {
		return models.Habit{}, err
	}
	if err := s.validator.ValidateHabitName(name, habits); err != nil {
		return models.Habit{}, err
	}
	h := models.Habit{
		ID:        models.NewID(),
		Name:      strings.TrimSpace(name),
		Icon:      icon,
		Color:     color,
		CreatedAt: s.Now().UTC(),
	}
	habits = append(habits, h)
	return h, s.repo.SaveHabits(habits)
}

// RenameHabit changes a habit's display name. Day checks are keyed by id and
// keep pointing at it.
func (s *Service) RenameHabit(ref, name string) (models.Habit, error) {
	habits, err := s.repo.Habits()
	if err != nil {
		return models.Habit{}, err
	}
	i := indexHabit(habits, ref)
	if i < 0 {
		return models.Habit{}, fmt.Errorf("habit %q: %w", ref, apperr.ErrNotFound)
	}
	others := slices.Delete(slices.Clone(habits), i, i+1)
	if err := s.validator.ValidateHabitName(name, others); err != nil {
		return models.Habit{}, err
	}
	habits[i].Name = strings.TrimSpace(name)
	return habits[i], s.repo.SaveHabits(habits)
}

// ToggleHabit flips the habit's check on date and returns the new state.
func (s *Service) ToggleHabit(ref, date string) (bool, error) {
	h, err := s.FindHabit(ref)
	if err != nil {
		return false, err
	}
	var done bool
	_, err = s.updateDay(date, func(d *models.DayRecord) error {
		done = d.ToggleHabit(h.ID)
		return nil
	})
	return done, err
}

// DeleteHabit removes the habit and its check from every day, in a single
// write so the two never disagree.
func (s *Service) DeleteHabit(ref string) (models.Habit, error) {
	habits, err := s.repo.Habits()
	if err != nil {
		return models.Habit{}, err
	}
	i := indexHabit(habits, ref)
	if i < 0 {
		return models.Habit{}, fmt.Errorf("habit %q: %w", ref, apperr.ErrNotFound)
	}
	removed := habits[i]
	habits = slices.Delete(habits, i, i+1)

	records, err := s.repo.DayRecords()
	if err != nil {
		return models.Habit{}, err
	}
	for key, day := range records {
		if day.RemoveHabit(removed.ID) {
			records[key] = day
		}
	}

	return removed, s.repo.PutMany(map[string]any{
		constants.KeyHabits:      habits,
		constants.KeyRoutineData: records,
	})
}
