package storage

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/julianstephens/myroutine/internal/constants"
	apperr "github.com/julianstephens/myroutine/internal/errors"
	"github.com/julianstephens/myroutine/internal/logger"
	"github.com/julianstephens/myroutine/internal/models"
)

// Repository is a typed, write-through view over a Provider. A write that
// fails to persist stays in memory so the session keeps working, and is
// reported as a *errors.PersistenceError. Flush retries those writes.
type Repository struct {
	provider Provider

	mu    sync.Mutex
	cache map[string][]byte
	dirty map[string]bool
}

func NewRepository(p Provider) *Repository {
	return &Repository{
		provider: p,
		cache:    make(map[string][]byte),
		dirty:    make(map[string]bool),
	}
}

func (r *Repository) Provider() Provider {
	return r.provider
}

func (r *Repository) raw(key string) ([]byte, bool, error) {
	if v, ok := r.cache[key]; ok {
		return v, v != nil, nil
	}
	v, ok, err := r.provider.Get(key)
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %q: %w", key, err)
	}
	if ok {
		r.cache[key] = v
	}
	return v, ok, nil
}

// Get decodes the value stored under key into dst and reports whether the key
// existed. Unreadable values are logged and treated as absent.
func (r *Repository) Get(key string, dst any) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, ok, err := r.raw(key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		logger.Warn("Ignoring malformed stored value", "key", key, "error", err)
		return false, nil
	}
	return true, nil
}

// Put encodes v and stores it under key.
func (r *Repository) Put(key string, v any) error {
	return r.PutMany(map[string]any{key: v})
}

// PutMany stores every value in a single provider write.
func (r *Repository) PutMany(values map[string]any) error {
	encoded := make(map[string][]byte, len(values))
	for key, v := range values {
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode %q: %w", key, err)
		}
		encoded[key] = data
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for key, data := range encoded {
		r.cache[key] = data
	}
	if err := r.provider.SetMany(encoded); err != nil {
		keys := slices.Sorted(maps.Keys(encoded))
		for _, key := range keys {
			r.dirty[key] = true
		}
		logger.Error("Failed to persist values", "keys", keys, "error", err)
		return &apperr.PersistenceError{Key: keys[0], Err: err}
	}
	for key := range encoded {
		delete(r.dirty, key)
	}
	return nil
}

// Delete removes key from the store.
func (r *Repository) Delete(key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cache[key] = nil
	if err := r.provider.Remove(key); err != nil {
		r.dirty[key] = true
		return &apperr.PersistenceError{Key: key, Err: err}
	}
	delete(r.dirty, key)
	return nil
}

// Clear wipes every key.
func (r *Repository) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.provider.Clear(); err != nil {
		return &apperr.PersistenceError{Key: "*", Err: err}
	}
	r.cache = make(map[string][]byte)
	r.dirty = make(map[string]bool)
	return nil
}

// Pending lists keys whose latest value has not reached the store.
func (r *Repository) Pending() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return slices.Sorted(maps.Keys(r.dirty))
}

// Flush retries every pending write.
func (r *Repository) Flush() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.dirty) == 0 {
		return nil
	}
	writes := make(map[string][]byte)
	var removals []string
	for key := range r.dirty {
		if v := r.cache[key]; v != nil {
			writes[key] = v
		} else {
			removals = append(removals, key)
		}
	}
	if len(writes) > 0 {
		if err := r.provider.SetMany(writes); err != nil {
			return &apperr.PersistenceError{Key: "pending", Err: err}
		}
		for key := range writes {
			delete(r.dirty, key)
		}
	}
	for _, key := range removals {
		if err := r.provider.Remove(key); err != nil {
			return &apperr.PersistenceError{Key: key, Err: err}
		}
		delete(r.dirty, key)
	}
	return nil
}

// getOr loads key into a T, falling back to def when nothing usable is stored.
func getOr[T any](r *Repository, key string, def T) (T, error) {
	var v T
	ok, err := r.Get(key, &v)
	if err != nil {
		return def, err
	}
	if !ok {
		return def, nil
	}
	return v, nil
}

func (r *Repository) DayRecords() (models.DayRecords, error) {
	records, err := getOr(r, constants.KeyRoutineData, models.DayRecords{})
	if records == nil {
		records = models.DayRecords{}
	}
	return records, err
}

func (r *Repository) SaveDayRecords(records models.DayRecords) error {
	return r.Put(constants.KeyRoutineData, records)
}

func (r *Repository) Profiles() ([]models.Profile, error) {
	return getOr(r, constants.KeyProfiles, []models.Profile{})
}

func (r *Repository) SaveProfiles(profiles []models.Profile) error {
	return r.Put(constants.KeyProfiles, profiles)
}

// ActiveProfileID returns the selected profile, or "" when none is active.
func (r *Repository) ActiveProfileID() (models.ID, error) {
	var id *models.ID
	if _, err := r.Get(constants.KeyActiveProfile, &id); err != nil || id == nil {
		return "", err
	}
	return *id, nil
}

// SetActiveProfileID selects a profile; an empty id clears the selection.
func (r *Repository) SetActiveProfileID(id models.ID) error {
	if id == "" {
		return r.Put(constants.KeyActiveProfile, nil)
	}
	return r.Put(constants.KeyActiveProfile, id)
}

func (r *Repository) Habits() ([]models.Habit, error) {
	return getOr(r, constants.KeyHabits, []models.Habit{})
}

func (r *Repository) SaveHabits(habits []models.Habit) error {
	return r.Put(constants.KeyHabits, habits)
}

func (r *Repository) Goals() ([]models.Goal, error) {
	return getOr(r, constants.KeyGoals, []models.Goal{})
}

func (r *Repository) SaveGoals(goals []models.Goal) error {
	return r.Put(constants.KeyGoals, goals)
}

func (r *Repository) Templates() ([]models.Template, error) {
	return getOr(r, constants.KeyTemplates, []models.Template{})
}

func (r *Repository) SaveTemplates(templates []models.Template) error {
	return r.Put(constants.KeyTemplates, templates)
}

func (r *Repository) Preferences() (models.Preferences, error) {
	return getOr(r, constants.KeyPreferences, models.DefaultPreferences())
}

func (r *Repository) SavePreferences(p models.Preferences) error {
	return r.Put(constants.KeyPreferences, p)
}

func (r *Repository) Theme() (string, error) {
	return getOr(r, constants.KeyTheme, constants.DefaultTheme)
}

func (r *Repository) SetTheme(theme string) error {
	return r.Put(constants.KeyTheme, theme)
}
