// Package routine implements the operations that edit the tracked data:
// profiles, day records, habits, goals, the schedule and its templates.
// Every method reads through and writes back to a storage.Repository. A
// returned *errors.PersistenceError means the change was applied in memory
// but could not be saved.
package routine

import (
	"time"

	"github.com/julianstephens/myroutine/internal/models"
	"github.com/julianstephens/myroutine/internal/storage"
	"github.com/julianstephens/myroutine/internal/utils"
	"github.com/julianstephens/myroutine/internal/validation"
)

type Service struct {
	repo      *storage.Repository
	validator *validation.Validator
	secrets   SecretStore
	now       func() time.Time
	loc       *time.Location
}

type Option func(*Service)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithLocation sets the timezone used to derive date keys.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithSecrets sets where profile secrets are kept. A nil store keeps them
// in the profile record, as the browser app does.
func WithSecrets(secrets SecretStore) Option {
	return func(s *Service) { s.secrets = secrets }
}

func New(repo *storage.Repository, opts ...Option) *Service {
	s := &Service{
		repo:      repo,
		validator: validation.New(),
		now:       time.Now,
		loc:       time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) Repository() *storage.Repository {
	return s.repo
}

// Now returns the current time in the service's timezone.
func (s *Service) Now() time.Time {
	return s.now().In(s.loc)
}

func (s *Service) Location() *time.Location {
	return s.loc
}

// TodayKey returns today's date key.
func (s *Service) TodayKey() string {
	return utils.DateKey(s.Now())
}

// ResolveDate turns an optional YYYY-MM-DD argument into a date key,
// defaulting to today.
func (s *Service) ResolveDate(date string) (string, error) {
	if date == "" {
		return s.TodayKey(), nil
	}
	if err := s.validator.ValidateDateKey(date); err != nil {
		return "", err
	}
	return date, nil
}

// Records returns every stored day.
func (s *Service) Records() (models.DayRecords, error) {
	return s.repo.DayRecords()
}

// Day returns the record for date, zero when nothing was logged.
func (s *Service) Day(date string) (models.DayRecord, error) {
	records, err := s.repo.DayRecords()
	if err != nil {
		return models.DayRecord{}, err
	}
	return records.Get(date), nil
}

// updateDay applies fn to the record for date and saves the whole mapping.
// fn returning an error aborts without writing.
func (s *Service) updateDay(date string, fn func(*models.DayRecord) error) (models.DayRecord, error) {
	records, err := s.repo.DayRecords()
	if err != nil {
		return models.DayRecord{}, err
	}
	day := records.Get(date)
	if err := fn(&day); err != nil {
		return models.DayRecord{}, err
	}
	records[date] = day
	return day, s.repo.SaveDayRecords(records)
}
