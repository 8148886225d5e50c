package routine

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	apperr "github.com/julianstephens/myroutine/internal/errors"
	"github.com/julianstephens/myroutine/internal/models"
	"github.com/julianstephens/myroutine/internal/storage"
	"github.com/julianstephens/myroutine/internal/storage/sqlite"
)

func TestStudyActivities(t *testing.T) {
	svc := setupTestService(t)
	const date = "2024-03-15"

	a, err := svc.AddActivity(date, "Algebra", 45)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.AddActivity(date, "History", 30); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.AddActivity(date, "Nothing", 0); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Errorf("zero planned time error = %v", err)
	}

	day, err := svc.ToggleActivity(date, string(a.ID))
	if err != nil {
		t.Fatal(err)
	}
	if day.Study.StudiedMin != 45 || day.Study.Concluded {
		t.Errorf("after one toggle: %+v", day.Study)
	}

	day, err = svc.ToggleActivity(date, "2")
	if err != nil {
		t.Fatal(err)
	}
	if day.Study.StudiedMin != 75 || !day.Study.Concluded {
		t.Errorf("after both toggles: %+v", day.Study)
	}

	day, err = svc.RemoveActivity(date, "1")
	if err != nil {
		t.Fatal(err)
	}
	if len(day.Study.Activities) != 1 || day.Study.StudiedMin != 30 {
		t.Errorf("after remove: %+v", day.Study)
	}

	if _, err := svc.ToggleActivity(date, "9"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("missing activity error = %v", err)
	}
}

func TestDayEdits(t *testing.T) {
	svc := setupTestService(t)
	const date = "2024-03-15"

	if _, err := svc.SetWorkout(date, true, 40); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SetWorkout(date, true, -1); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SetSleep(date, 7.5); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SetSleep(date, 30); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Errorf("30h sleep error = %v", err)
	}
	for _, m := range models.AllMeals {
		if on, err := svc.ToggleMeal(date, m); err != nil || !on {
			t.Fatalf("ToggleMeal(%s) = %v, %v", m, on, err)
		}
	}
	if _, err := svc.ToggleMeal(date, "brunch"); !errors.Is(err, apperr.ErrInvalidInput) {
		t.Errorf("unknown meal error = %v", err)
	}
	if _, err := svc.SetNotes(date, "good day"); err != nil {
		t.Fatal(err)
	}

	day, err := svc.Day(date)
	if err != nil {
		t.Fatal(err)
	}
	if !day.Workout.Done || day.Workout.DurationMin != 40 {
		t.Errorf("workout = %+v", day.Workout)
	}
	if day.Sleep.Hours != 7.5 || day.Meals.Count() != 3 || day.Notes != "good day" {
		t.Errorf("day = %+v", day)
	}
}

func TestResolveDate(t *testing.T) {
	svc := setupTestService(t)
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "", want: "2024-03-15"},
		{in: "2024-02-29", want: "2024-02-29"},
		{in: "2023-02-29", wantErr: true},
		{in: "15/03/2024", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := svc.ResolveDate(tt.in)
			if (err != nil) != tt.wantErr || got != tt.want {
				t.Errorf("ResolveDate(%q) = %q, %v", tt.in, got, err)
			}
		})
	}
}

func TestTodayKeyUsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*60*60)
	late := time.Date(2024, 3, 16, 2, 0, 0, 0, time.UTC)
	svc := setupTestService(t, WithClock(func() time.Time { return late }), WithLocation(loc))
	if got := svc.TodayKey(); got != "2024-03-15" {
		t.Errorf("TodayKey() = %q, want 2024-03-15", got)
	}
}

// brokenProvider accepts reads and rejects every write.
type brokenProvider struct {
	storage.Provider
}

func (brokenProvider) Set(string, []byte) error        { return errors.New("disk full") }
func (brokenProvider) SetMany(map[string][]byte) error { return errors.New("disk full") }
func (brokenProvider) Remove(string) error             { return errors.New("disk full") }

func TestPersistenceFailureKeepsSession(t *testing.T) {
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	repo := storage.NewRepository(brokenProvider{store})
	svc := New(repo, WithClock(func() time.Time { return fixedNow }), WithLocation(time.UTC))

	_, err := svc.SetSleep("2024-03-15", 8)
	if !apperr.IsPersistence(err) {
		t.Fatalf("SetSleep() error = %v, want persistence error", err)
	}
	var pe *apperr.PersistenceError
	if !errors.As(err, &pe) {
		t.Fatalf("error is not a *PersistenceError: %T", err)
	}

	day, err := svc.Day("2024-03-15")
	if err != nil {
		t.Fatal(err)
	}
	if day.Sleep == nil || day.Sleep.Hours != 8 {
		t.Errorf("in-memory value lost: %+v", day.Sleep)
	}
	if pending := repo.Pending(); len(pending) != 1 {
		t.Errorf("Pending() = %v", pending)
	}

	if _, ok, _ := store.Get("routineData"); ok {
		t.Error("backing store should not have the value")
	}
}
