package routine

import (
	"fmt"
	"slices"
	"strings"

	apperr "github.com/julianstephens/myroutine/internal/errors"
	"github.com/julianstephens/myroutine/internal/models"
	"github.com/julianstephens/myroutine/internal/stats"
)

// goalUnits are the unit labels the browser app stores with each goal.
var goalUnits = map[stats.Category]string{
	stats.Study:   "minutos",
	stats.Workout: "dias",
	stats.Sleep:   "horas",
	stats.Focus:   "minutos",
}

type GoalInput struct {
	Title    string
	Period   models.GoalPeriod
	Category string
	Target   float64
}

func (s *Service) ListGoals() ([]models.Goal, error) {
	return s.repo.Goals()
}

func (s *Service) AddGoal(in GoalInput) (models.Goal, error) {
	g := models.Goal{
		ID:        models.NewID(),
		Title:     strings.TrimSpace(in.Title),
		Period:    in.Period,
		Category:  in.Category,
		Target:    in.Target,
		CreatedAt: s.Now().UTC(),
	}
	if err := s.normalizeGoal(&g); err != nil {
		return models.Goal{}, err
	}
	goals, err := s.repo.Goals()
	if err != nil {
		return models.Goal{}, err
	}
	goals = append(goals, g)
	return g, s.repo.SaveGoals(goals)
}

// UpdateGoal replaces the editable fields of a goal. Zero-valued fields keep
// their current value.
func (s *Service) UpdateGoal(ref string, in GoalInput) (models.Goal, error) {
	goals, err := s.repo.Goals()
	if err != nil {
		return models.Goal{}, err
	}
	i := indexGoal(goals, ref)
	if i < 0 {
		return models.Goal{}, fmt.Errorf("goal %q: %w", ref, apperr.ErrNotFound)
	}
	g := goals[i]
	if in.Title != "" {
		g.Title = strings.TrimSpace(in.Title)
	}
	if in.Period != "" {
		g.Period = in.Period
	}
	if in.Category != "" {
		g.Category = in.Category
	}
	if in.Target != 0 {
		g.Target = in.Target
	}
	if err := s.normalizeGoal(&g); err != nil {
		return models.Goal{}, err
	}
	goals[i] = g
	return g, s.repo.SaveGoals(goals)
}

// normalizeGoal validates g and rewrites its category to the stored key
// with the matching unit.
func (s *Service) normalizeGoal(g *models.Goal) error {
	if err := s.validator.ValidateGoal(*g); err != nil {
		return err
	}
	c, _ := stats.GoalCategory(*g)
	g.Category = c.Key()
	g.Unit = goalUnits[c]
	return nil
}

func (s *Service) DeleteGoal(ref string) (models.Goal, error) {
	goals, err := s.repo.Goals()
	if err != nil {
		return models.Goal{}, err
	}
	i := indexGoal(goals, ref)
	if i < 0 {
		return models.Goal{}, fmt.Errorf("goal %q: %w", ref, apperr.ErrNotFound)
	}
	removed := goals[i]
	goals = slices.Delete(goals, i, i+1)
	return removed, s.repo.SaveGoals(goals)
}

func indexGoal(goals []models.Goal, ref string) int {
	if i := slices.IndexFunc(goals, func(g models.Goal) bool { return string(g.ID) == ref }); i >= 0 {
		return i
	}
	return slices.IndexFunc(goals, func(g models.Goal) bool { return strings.EqualFold(g.Title, ref) })
}

// GoalReport evaluates every goal against the stored days, measured from the
// active profile's creation date. Goals the evaluator cannot measure are
// skipped.
func (s *Service) GoalReport() ([]stats.GoalProgress, error) {
	goals, err := s.repo.Goals()
	if err != nil {
		return nil, err
	}
	records, err := s.repo.DayRecords()
	if err != nil {
		return nil, err
	}
	created := s.CreationDate()
	now := s.Now()

	out := make([]stats.GoalProgress, 0, len(goals))
	for _, g := range goals {
		p, err := stats.EvaluateGoal(g, records, created, now)
		if err != nil {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}
