package stats

import (
	"fmt"
	"strings"

	"github.com/julianstephens/myroutine/internal/constants"
	"github.com/julianstephens/myroutine/internal/models"
)

// Category is a tracked routine area. Each value carries its completion
// predicate and its daily metric.
type Category int

const (
	Study Category = iota
	Workout
	Sleep
	Meals
	Focus
)

type categoryDef struct {
	key   string
	label string
	unit  string
	done  func(*models.DayRecord) bool
	value func(*models.DayRecord) float64
}

var categoryDefs = [...]categoryDef{
	Study: {
		key:   "estudo",
		label: "Study",
		unit:  "min",
		done:  StudyConcluded,
		value: func(d *models.DayRecord) float64 { return float64(StudyMinutes(d)) },
	},
	Workout: {
		key:   "treino",
		label: "Workout",
		unit:  "days",
		done:  WorkoutDone,
		value: func(d *models.DayRecord) float64 {
			if WorkoutDone(d) {
				return 1
			}
			return 0
		},
	},
	Sleep: {
		key:   "sono",
		label: "Sleep",
		unit:  "h",
		done:  func(d *models.DayRecord) bool { return SleepHours(d) >= constants.SleepStreakMinHours },
		value: SleepHours,
	},
	Meals: {
		key:   "alimentacao",
		label: "Meals",
		unit:  "meals",
		done:  func(d *models.DayRecord) bool { return MealsCompleted(d) == len(models.AllMeals) },
		value: func(d *models.DayRecord) float64 { return float64(MealsCompleted(d)) },
	},
	Focus: {
		key:   "foco",
		label: "Focus",
		unit:  "min",
		done:  func(d *models.DayRecord) bool { return TotalFocusMinutes(d) > 0 },
		value: func(d *models.DayRecord) float64 { return float64(TotalFocusMinutes(d)) },
	},
}

var categoryAliases = map[string]Category{
	"estudo":      Study,
	"study":       Study,
	"treino":      Workout,
	"workout":     Workout,
	"sono":        Sleep,
	"sleep":       Sleep,
	"alimentacao": Meals,
	"meals":       Meals,
	"foco":        Focus,
	"focus":       Focus,
}

// AllCategories lists every category in display order.
func AllCategories() []Category {
	return []Category{Study, Workout, Sleep, Meals, Focus}
}

// ParseCategory accepts the stored key or the English name of a category.
func ParseCategory(s string) (Category, error) {
	c, ok := categoryAliases[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("unknown category %q", s)
	}
	return c, nil
}

func (c Category) Valid() bool {
	return c >= Study && c <= Focus
}

func (c Category) def() categoryDef {
	if !c.Valid() {
		panic(fmt.Sprintf("stats: invalid category %d", int(c)))
	}
	return categoryDefs[c]
}

// Key is the persisted identifier, matching the day record field names.
func (c Category) Key() string { return c.def().key }

func (c Category) String() string { return c.def().label }

func (c Category) Unit() string { return c.def().unit }

// Done reports whether day satisfies the category's streak predicate.
func (c Category) Done(day *models.DayRecord) bool { return c.def().done(day) }

// Value extracts the category's daily metric from day.
func (c Category) Value(day *models.DayRecord) float64 { return c.def().value(day) }
