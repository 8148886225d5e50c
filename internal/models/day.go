package models

import (
	"sort"
	"strings"
)

type EventCategory string

const (
	EventStudy   EventCategory = "estudo"
	EventWork    EventCategory = "trabalho"
	EventWorkout EventCategory = "treino"
	EventLeisure EventCategory = "lazer"
	EventOther   EventCategory = "outro"
)

var EventCategories = []EventCategory{EventStudy, EventWork, EventWorkout, EventLeisure, EventOther}

// FocusCategory names a timer bucket in DayRecord.Timer.
type FocusCategory string

const (
	FocusStudy   FocusCategory = "estudo"
	FocusWork    FocusCategory = "trabalho"
	FocusWorkout FocusCategory = "treino"
)

var FocusCategories = []FocusCategory{FocusStudy, FocusWork, FocusWorkout}

type Meal string

const (
	MealBreakfast Meal = "cafe"
	MealLunch     Meal = "almoco"
	MealDinner    Meal = "jantar"
)

var AllMeals = []Meal{MealBreakfast, MealLunch, MealDinner}

type StudyActivity struct {
	ID         ID     `json:"id" yaml:"id"`
	Name       string `json:"nome" yaml:"nome"`
	PlannedMin int    `json:"tempoPlanejado" yaml:"tempoPlanejado"`
	Done       bool   `json:"concluida" yaml:"concluida"`
}

type Study struct {
	Concluded  bool            `json:"concluido" yaml:"concluido"`
	StudiedMin int             `json:"tempoEstudado" yaml:"tempoEstudado"`
	Activities []StudyActivity `json:"atividades,omitempty" yaml:"atividades,omitempty"`
}

type Workout struct {
	Done        bool `json:"feito" yaml:"feito"`
	DurationMin int  `json:"duracao" yaml:"duracao"`
}

type Sleep struct {
	Hours float64 `json:"horas" yaml:"horas"`
}

type Meals struct {
	Breakfast bool `json:"cafe" yaml:"cafe"`
	Lunch     bool `json:"almoco" yaml:"almoco"`
	Dinner    bool `json:"jantar" yaml:"jantar"`
}

// Count returns how many meals are checked.
func (m Meals) Count() int {
	n := 0
	for _, v := range []bool{m.Breakfast, m.Lunch, m.Dinner} {
		if v {
			n++
		}
	}
	return n
}

type Event struct {
	ID          ID            `json:"id" yaml:"id"`
	Time        string        `json:"hora" yaml:"hora"` // HH:MM
	Title       string        `json:"titulo" yaml:"titulo"`
	Description string        `json:"descricao,omitempty" yaml:"descricao,omitempty"`
	Category    EventCategory `json:"categoria" yaml:"categoria"`
	Done        bool          `json:"concluido" yaml:"concluido"`
}

// DayRecord holds everything logged for a single calendar date. Every
// section is optional and absent sections count as "nothing logged".
type DayRecord struct {
	Study    *Study          `json:"estudo,omitempty" yaml:"estudo,omitempty"`
	Workout  *Workout        `json:"treino,omitempty" yaml:"treino,omitempty"`
	Sleep    *Sleep          `json:"sono,omitempty" yaml:"sono,omitempty"`
	Meals    *Meals          `json:"alimentacao,omitempty" yaml:"alimentacao,omitempty"`
	Timer    map[string]int  `json:"timer,omitempty" yaml:"timer,omitempty"` // minutes per FocusCategory
	Schedule []Event         `json:"cronograma,omitempty" yaml:"cronograma,omitempty"`
	Habits   map[string]bool `json:"habitos,omitempty" yaml:"habitos,omitempty"`
	Notes    string          `json:"notas,omitempty" yaml:"notas,omitempty"`
}

// DayRecords maps a YYYY-MM-DD date key to the record for that date.
type DayRecords map[string]DayRecord

// Get returns the record for key, or a zero record when nothing is stored.
func (d DayRecords) Get(key string) DayRecord {
	if d == nil {
		return DayRecord{}
	}
	return d[key]
}

func (d *DayRecord) AddActivity(a StudyActivity) {
	if d.Study == nil {
		d.Study = &Study{}
	}
	d.Study.Activities = append(d.Study.Activities, a)
	d.recomputeStudy()
}

// ToggleActivity flips the completion of an activity and reports whether it
// was found.
func (d *DayRecord) ToggleActivity(id ID) bool {
	if d.Study == nil {
		return false
	}
	for i := range d.Study.Activities {
		if d.Study.Activities[i].ID == id {
			d.Study.Activities[i].Done = !d.Study.Activities[i].Done
			d.recomputeStudy()
			return true
		}
	}
	return false
}

func (d *DayRecord) RemoveActivity(id ID) bool {
	if d.Study == nil {
		return false
	}
	for i, a := range d.Study.Activities {
		if a.ID == id {
			d.Study.Activities = append(d.Study.Activities[:i], d.Study.Activities[i+1:]...)
			d.recomputeStudy()
			return true
		}
	}
	return false
}

// recomputeStudy derives the study totals from the activity list: the day is
// concluded once every activity is done, and studied time is the sum of the
// planned time of completed activities.
func (d *DayRecord) recomputeStudy() {
	total := 0
	allDone := len(d.Study.Activities) > 0
	for _, a := range d.Study.Activities {
		if a.Done {
			total += a.PlannedMin
		} else {
			allDone = false
		}
	}
	d.Study.StudiedMin = total
	d.Study.Concluded = allDone
}

func (d *DayRecord) SetWorkout(done bool, durationMin int) {
	if d.Workout == nil {
		d.Workout = &Workout{}
	}
	d.Workout.Done = done
	if durationMin >= 0 {
		d.Workout.DurationMin = durationMin
	}
}

func (d *DayRecord) SetSleep(hours float64) {
	d.Sleep = &Sleep{Hours: hours}
}

// ToggleMeal flips a meal checkbox and returns its new state.
func (d *DayRecord) ToggleMeal(m Meal) bool {
	if d.Meals == nil {
		d.Meals = &Meals{}
	}
	switch m {
	case MealBreakfast:
		d.Meals.Breakfast = !d.Meals.Breakfast
		return d.Meals.Breakfast
	case MealLunch:
		d.Meals.Lunch = !d.Meals.Lunch
		return d.Meals.Lunch
	case MealDinner:
		d.Meals.Dinner = !d.Meals.Dinner
		return d.Meals.Dinner
	}
	return false
}

// AddFocusMinutes accumulates timer minutes for a category.
func (d *DayRecord) AddFocusMinutes(c FocusCategory, minutes int) {
	if minutes <= 0 {
		return
	}
	if d.Timer == nil {
		d.Timer = make(map[string]int)
	}
	d.Timer[string(c)] += minutes
}

// FocusMinutes sums every timer bucket.
func (d DayRecord) FocusMinutes() int {
	total := 0
	for _, m := range d.Timer {
		total += m
	}
	return total
}

// AddEvent inserts an event and keeps the schedule ordered by time.
func (d *DayRecord) AddEvent(e Event) {
	d.Schedule = append(d.Schedule, e)
	d.sortSchedule()
}

// UpdateEvent replaces the event with the same ID and reports whether it
// existed.
func (d *DayRecord) UpdateEvent(e Event) bool {
	for i := range d.Schedule {
		if d.Schedule[i].ID == e.ID {
			d.Schedule[i] = e
			d.sortSchedule()
			return true
		}
	}
	return false
}

func (d *DayRecord) ToggleEvent(id ID) bool {
	for i := range d.Schedule {
		if d.Schedule[i].ID == id {
			d.Schedule[i].Done = !d.Schedule[i].Done
			return true
		}
	}
	return false
}

func (d *DayRecord) RemoveEvent(id ID) bool {
	for i, e := range d.Schedule {
		if e.ID == id {
			d.Schedule = append(d.Schedule[:i], d.Schedule[i+1:]...)
			return true
		}
	}
	return false
}

func (d *DayRecord) sortSchedule() {
	sort.SliceStable(d.Schedule, func(i, j int) bool {
		return strings.Compare(d.Schedule[i].Time, d.Schedule[j].Time) < 0
	})
}

// ToggleHabit flips the habit check for this day and returns the new state.
func (d *DayRecord) ToggleHabit(id ID) bool {
	if d.Habits == nil {
		d.Habits = make(map[string]bool)
	}
	d.Habits[string(id)] = !d.Habits[string(id)]
	return d.Habits[string(id)]
}

func (d DayRecord) HabitDone(id ID) bool {
	return d.Habits[string(id)]
}

func (d *DayRecord) RemoveHabit(id ID) bool {
	if _, ok := d.Habits[string(id)]; !ok {
		return false
	}
	delete(d.Habits, string(id))
	return true
}
