package storage

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/myroutine/internal/constants"
	apperr "github.com/julianstephens/myroutine/internal/errors"
	"github.com/julianstephens/myroutine/internal/models"
)

// flakyProvider wraps a real store and fails writes while broken is set.
type flakyProvider struct {
	Provider
	broken bool
}

func (f *flakyProvider) SetMany(entries map[string][]byte) error {
	if f.broken {
		return errors.New("quota exceeded")
	}
	return f.Provider.SetMany(entries)
}

func (f *flakyProvider) Remove(key string) error {
	if f.broken {
		return errors.New("quota exceeded")
	}
	return f.Provider.Remove(key)
}

func TestRepository_Defaults(t *testing.T) {
	repo := NewRepository(setupTestJSONStore(t))

	records, err := repo.DayRecords()
	if err != nil || records == nil || len(records) != 0 {
		t.Errorf("DayRecords() = %v, %v", records, err)
	}
	prefs, err := repo.Preferences()
	if err != nil || prefs != models.DefaultPreferences() {
		t.Errorf("Preferences() = %+v, %v", prefs, err)
	}
	theme, _ := repo.Theme()
	if theme != constants.DefaultTheme {
		t.Errorf("Theme() = %q", theme)
	}
	id, err := repo.ActiveProfileID()
	if err != nil || id != "" {
		t.Errorf("ActiveProfileID() = %q, %v", id, err)
	}
}

func TestRepository_RoundTrip(t *testing.T) {
	store := setupTestJSONStore(t)
	repo := NewRepository(store)

	records := models.DayRecords{"2024-01-01": {Sleep: &models.Sleep{Hours: 7.5}}}
	if err := repo.SaveDayRecords(records); err != nil {
		t.Fatalf("SaveDayRecords failed: %v", err)
	}
	if err := repo.SetActiveProfileID("p1"); err != nil {
		t.Fatalf("SetActiveProfileID failed: %v", err)
	}

	// a fresh repository reads through to the file
	reloaded := NewJSONStore(store.GetConfigPath())
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	fresh := NewRepository(reloaded)
	got, err := fresh.DayRecords()
	if err != nil {
		t.Fatalf("DayRecords failed: %v", err)
	}
	if got["2024-01-01"].Sleep.Hours != 7.5 {
		t.Errorf("DayRecords() = %+v", got)
	}
	if id, _ := fresh.ActiveProfileID(); id != "p1" {
		t.Errorf("ActiveProfileID() = %q", id)
	}

	if err := fresh.SetActiveProfileID(""); err != nil {
		t.Fatalf("clearing the active profile failed: %v", err)
	}
	if id, _ := fresh.ActiveProfileID(); id != "" {
		t.Errorf("ActiveProfileID() after clear = %q", id)
	}
}

func TestRepository_NumericActiveProfile(t *testing.T) {
	store := setupTestJSONStore(t)
	if err := store.Set(constants.KeyActiveProfile, []byte(`1712345678901`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	id, err := NewRepository(store).ActiveProfileID()
	if err != nil || id != "1712345678901" {
		t.Errorf("ActiveProfileID() = %q, %v", id, err)
	}
}

func TestRepository_MalformedValueFallsBack(t *testing.T) {
	store := setupTestJSONStore(t)
	if err := store.Set(constants.KeyGoals, []byte(`{"not":"a list"}`)); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	goals, err := NewRepository(store).Goals()
	if err != nil || len(goals) != 0 {
		t.Errorf("Goals() = %v, %v", goals, err)
	}
}

func TestRepository_PersistenceFailure(t *testing.T) {
	flaky := &flakyProvider{Provider: setupTestJSONStore(t), broken: true}
	repo := NewRepository(flaky)

	habits := []models.Habit{{ID: "h1", Name: "Stretch", CreatedAt: time.Now()}}
	err := repo.SaveHabits(habits)
	if !apperr.IsPersistence(err) {
		t.Fatalf("SaveHabits() error = %v, want persistence error", err)
	}

	// the attempted value stays visible in memory
	got, err := repo.Habits()
	if err != nil || len(got) != 1 || got[0].Name != "Stretch" {
		t.Errorf("Habits() after failed write = %v, %v", got, err)
	}
	if pending := repo.Pending(); len(pending) != 1 || pending[0] != constants.KeyHabits {
		t.Errorf("Pending() = %v", pending)
	}

	flaky.broken = false
	if err := repo.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}
	if len(repo.Pending()) != 0 {
		t.Errorf("Pending() after flush = %v", repo.Pending())
	}
	if _, ok, _ := flaky.Provider.Get(constants.KeyHabits); !ok {
		t.Error("habits were not written by Flush")
	}
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		target string
		want   string
	}{
		{target: filepath.Join(dir, "routine.db"), want: "sqlite"},
		{target: filepath.Join(dir, "routine.JSON"), want: "json"},
		{target: "postgres://me@localhost/routine", want: "postgres"},
	}
	for _, tt := range tests {
		if got := Backend(Open(tt.target)); got != tt.want {
			t.Errorf("Backend(Open(%q)) = %s, want %s", tt.target, got, tt.want)
		}
	}
}
