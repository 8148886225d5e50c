package stats

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/julianstephens/myroutine/internal/models"
)

var ErrUnsupportedGoalCategory = errors.New("unsupported goal category")

// GoalCategories are the categories a goal can target.
var GoalCategories = []Category{Study, Workout, Sleep, Focus}

// GoalProgress is the on-demand evaluation of a goal.
type GoalProgress struct {
	Goal      models.Goal
	Category  Category
	Window    []string
	Current   float64 // raw metric over the window
	Percent   float64 // 0..100
	Display   string  // Current rounded for display
	Completed bool
}

// GoalCategory resolves and checks a goal's category.
func GoalCategory(g models.Goal) (Category, error) {
	c, err := ParseCategory(g.Category)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnsupportedGoalCategory, g.Category)
	}
	for _, gc := range GoalCategories {
		if gc == c {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedGoalCategory, g.Category)
}

// EvaluateGoal measures a goal over the trailing window implied by its period,
// starting no earlier than the profile's creation date.
func EvaluateGoal(g models.Goal, records models.DayRecords, created, now time.Time) (GoalProgress, error) {
	c, err := GoalCategory(g)
	if err != nil {
		return GoalProgress{}, err
	}

	window := DaysSinceCreation(created, g.Period.Days(), now)
	current := goalValue(c, records, window)

	percent := 100.0
	if g.Target > 0 {
		percent = math.Min(100, 100*current/g.Target)
	}

	return GoalProgress{
		Goal:      g,
		Category:  c,
		Window:    window,
		Current:   current,
		Percent:   percent,
		Display:   FormatValue(c, current),
		Completed: percent >= 100,
	}, nil
}

func goalValue(c Category, records models.DayRecords, window []string) float64 {
	if c == Sleep {
		return AverageSleep(records, window)
	}
	total := 0.0
	for _, key := range window {
		total += c.Value(lookup(records, key))
	}
	return total
}

// AverageSleep averages sleep hours over the days in window that logged any.
func AverageSleep(records models.DayRecords, window []string) float64 {
	total, n := 0.0, 0
	for _, key := range window {
		if h := SleepHours(lookup(records, key)); h > 0 {
			total += h
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return total / float64(n)
}

// FormatValue rounds a metric for display: one decimal for sleep, whole
// numbers otherwise.
func FormatValue(c Category, v float64) string {
	if c == Sleep {
		return strconv.FormatFloat(math.Round(v*10)/10, 'f', 1, 64)
	}
	return strconv.FormatFloat(math.Round(v), 'f', 0, 64)
}
