package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestDayRecord_StudyActivities(t *testing.T) {
	var d DayRecord
	d.AddActivity(StudyActivity{ID: "a", Name: "Math", PlannedMin: 30})
	d.AddActivity(StudyActivity{ID: "b", Name: "History", PlannedMin: 45})

	if d.Study.Concluded || d.Study.StudiedMin != 0 {
		t.Fatalf("fresh activities should be pending, got %+v", d.Study)
	}

	if !d.ToggleActivity("a") {
		t.Fatal("ToggleActivity(a) = false")
	}
	if d.Study.StudiedMin != 30 || d.Study.Concluded {
		t.Errorf("after one toggle got %+v", d.Study)
	}

	d.ToggleActivity("b")
	if d.Study.StudiedMin != 75 || !d.Study.Concluded {
		t.Errorf("after all toggled got %+v", d.Study)
	}

	d.RemoveActivity("b")
	if d.Study.StudiedMin != 30 || !d.Study.Concluded {
		t.Errorf("after removal got %+v", d.Study)
	}

	d.RemoveActivity("a")
	if d.Study.Concluded {
		t.Error("an empty activity list should not count as concluded")
	}

	if d.ToggleActivity("missing") {
		t.Error("ToggleActivity(missing) = true")
	}
}

func TestDayRecord_ScheduleStaysSorted(t *testing.T) {
	var d DayRecord
	d.AddEvent(Event{ID: "1", Time: "14:00", Title: "Gym"})
	d.AddEvent(Event{ID: "2", Time: "08:30", Title: "Class"})
	d.AddEvent(Event{ID: "3", Time: "11:15", Title: "Lunch"})

	want := []ID{"2", "3", "1"}
	for i, e := range d.Schedule {
		if e.ID != want[i] {
			t.Fatalf("Schedule[%d] = %s, want %s", i, e.ID, want[i])
		}
	}

	d.UpdateEvent(Event{ID: "2", Time: "20:00", Title: "Class"})
	if d.Schedule[len(d.Schedule)-1].ID != "2" {
		t.Errorf("updated event should move to the end, got %+v", d.Schedule)
	}

	if !d.RemoveEvent("3") || len(d.Schedule) != 2 {
		t.Errorf("RemoveEvent failed, schedule = %+v", d.Schedule)
	}
}

func TestDayRecord_FocusAndMeals(t *testing.T) {
	var d DayRecord
	d.AddFocusMinutes(FocusStudy, 25)
	d.AddFocusMinutes(FocusWork, 10)
	d.AddFocusMinutes(FocusStudy, 5)
	d.AddFocusMinutes(FocusWorkout, 0)

	if got := d.FocusMinutes(); got != 40 {
		t.Errorf("FocusMinutes() = %d, want 40", got)
	}
	if d.Timer["estudo"] != 30 {
		t.Errorf("Timer[estudo] = %d, want 30", d.Timer["estudo"])
	}

	if !d.ToggleMeal(MealLunch) {
		t.Error("ToggleMeal(lunch) should turn it on")
	}
	d.ToggleMeal(MealDinner)
	if d.Meals.Count() != 2 {
		t.Errorf("Meals.Count() = %d, want 2", d.Meals.Count())
	}
}

func TestDayRecord_Habits(t *testing.T) {
	var d DayRecord
	if !d.ToggleHabit("h1") || !d.HabitDone("h1") {
		t.Fatal("habit should be done after first toggle")
	}
	if d.ToggleHabit("h1") {
		t.Error("second toggle should clear the habit")
	}
	if !d.RemoveHabit("h1") || d.RemoveHabit("h1") {
		t.Error("RemoveHabit should succeed once")
	}
}

func TestDayRecord_JSONShape(t *testing.T) {
	raw := `{"estudo":{"concluido":true,"tempoEstudado":60},"treino":{"feito":true,"duracao":45},` +
		`"sono":{"horas":7.5},"alimentacao":{"cafe":true,"almoco":false,"jantar":true},` +
		`"timer":{"estudo":25},"habitos":{"1712":true},"notas":"ok"}`

	var d DayRecord
	if err := json.Unmarshal([]byte(raw), &d); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !d.Study.Concluded || d.Workout.DurationMin != 45 || d.Sleep.Hours != 7.5 {
		t.Errorf("unexpected record %+v", d)
	}
	if d.Meals.Count() != 2 || !d.HabitDone("1712") || d.FocusMinutes() != 25 {
		t.Errorf("unexpected record %+v", d)
	}
}

func TestTemplate_RoundTrip(t *testing.T) {
	now := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	events := []Event{
		{ID: "e1", Time: "07:00", Title: "Run", Category: EventWorkout, Done: true},
		{ID: "e2", Time: "09:00", Title: "Study", Category: EventStudy},
	}

	tpl := TemplateFromEvents("Weekday", events, now)
	if len(tpl.Events) != 2 || tpl.Name != "Weekday" {
		t.Fatalf("unexpected template %+v", tpl)
	}

	got := tpl.Instantiate()
	for i, e := range got {
		if e.Done {
			t.Errorf("event %d should be pending", i)
		}
		if e.ID == events[i].ID || e.ID == "" {
			t.Errorf("event %d should get a fresh id, got %q", i, e.ID)
		}
		if e.Title != events[i].Title {
			t.Errorf("event %d title = %q", i, e.Title)
		}
	}
}
