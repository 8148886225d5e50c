package routine

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/julianstephens/myroutine/internal/constants"
	apperr "github.com/julianstephens/myroutine/internal/errors"
	"github.com/julianstephens/myroutine/internal/keyring"
	"github.com/julianstephens/myroutine/internal/logger"
	"github.com/julianstephens/myroutine/internal/models"
)

const (
	defaultProfileColor = "#3B82F6"
	defaultProfileIcon  = "👤"
)

// SecretStore keeps profile secrets outside the data file.
type SecretStore interface {
	Get(profileID string) (string, error)
	Set(profileID, secret string) error
	Delete(profileID string) error
}

// KeyringSecrets stores profile secrets in the OS keyring.
type KeyringSecrets struct{}

func (KeyringSecrets) Get(id string) (string, error) { return keyring.GetProfileSecret(id) }
func (KeyringSecrets) Set(id, secret string) error   { return keyring.SetProfileSecret(id, secret) }
func (KeyringSecrets) Delete(id string) error        { return keyring.DeleteProfileSecret(id) }

// DefaultSecrets returns the keyring store when the OS keyring works, nil
// otherwise.
func DefaultSecrets() SecretStore {
	if keyring.IsAvailable() {
		return KeyringSecrets{}
	}
	return nil
}

type ProfileInput struct {
	Name   string
	Color  string
	Icon   string
	Secret *string // nil leaves the secret unchanged on update; "" removes it
}

func (s *Service) ListProfiles() ([]models.Profile, error) {
	return s.repo.Profiles()
}

// FindProfile matches ref against profile ids first, then names without
// regard to case.
func (s *Service) FindProfile(ref string) (models.Profile, error) {
	profiles, err := s.repo.Profiles()
	if err != nil {
		return models.Profile{}, err
	}
	if p, ok := findProfile(profiles, ref); ok {
		return p, nil
	}
	return models.Profile{}, fmt.Errorf("profile %q: %w", ref, apperr.ErrNotFound)
}

func findProfile(profiles []models.Profile, ref string) (models.Profile, bool) {
	for _, p := range profiles {
		if string(p.ID) == ref {
			return p, true
		}
	}
	for _, p := range profiles {
		if strings.EqualFold(p.Name, ref) {
			return p, true
		}
	}
	return models.Profile{}, false
}

func (s *Service) CreateProfile(in ProfileInput) (models.Profile, error) {
	profiles, err := s.repo.Profiles()
	if err != nil {
		return models.Profile{}, err
	}
	if err := s.validator.ValidateProfileName(in.Name, profiles, ""); err != nil {
		return models.Profile{}, err
	}

	p := models.Profile{
		ID:        models.NewID(),
		Name:      strings.TrimSpace(in.Name),
		Color:     orDefault(in.Color, defaultProfileColor),
		Icon:      orDefault(in.Icon, defaultProfileIcon),
		CreatedAt: s.Now().UTC(),
	}
	if in.Secret != nil {
		if err := s.applySecret(&p, *in.Secret); err != nil {
			return models.Profile{}, err
		}
	}

	profiles = append(profiles, p)
	return p, s.repo.SaveProfiles(profiles)
}

// UpdateProfile edits name, color, icon and secret. Empty fields are left as
// they were. The creation date never changes.
func (s *Service) UpdateProfile(ref string, in ProfileInput) (models.Profile, error) {
	profiles, err := s.repo.Profiles()
	if err != nil {
		return models.Profile{}, err
	}
	target, ok := findProfile(profiles, ref)
	if !ok {
		return models.Profile{}, fmt.Errorf("profile %q: %w", ref, apperr.ErrNotFound)
	}
	idx := slices.IndexFunc(profiles, func(p models.Profile) bool { return p.ID == target.ID })
	p := profiles[idx]

	if in.Name != "" {
		if err := s.validator.ValidateProfileName(in.Name, profiles, p.ID); err != nil {
			return models.Profile{}, err
		}
		p.Name = strings.TrimSpace(in.Name)
	}
	p.Color = orDefault(in.Color, p.Color)
	p.Icon = orDefault(in.Icon, p.Icon)
	if in.Secret != nil {
		if err := s.applySecret(&p, *in.Secret); err != nil {
			return models.Profile{}, err
		}
	}

	profiles[idx] = p
	return p, s.repo.SaveProfiles(profiles)
}

// applySecret sets or clears the profile's secret, preferring the secret
// store when one is configured.
func (s *Service) applySecret(p *models.Profile, secret string) error {
	if err := s.validator.ValidateProfileSecret(secret); err != nil {
		return err
	}
	if secret == "" {
		if p.InKeyring && s.secrets != nil {
			if err := s.secrets.Delete(string(p.ID)); err != nil {
				return err
			}
		}
		p.Secret = nil
		p.InKeyring = false
		return nil
	}
	if s.secrets != nil {
		err := s.secrets.Set(string(p.ID), secret)
		if err == nil {
			p.Secret = nil
			p.InKeyring = true
			return nil
		}
		logger.Warn("Keyring write failed, keeping profile secret in the data file", "profile", p.ID, "error", err)
	}
	p.Secret = &secret
	p.InKeyring = false
	return nil
}

// DeleteProfile removes a profile. Deleting the active profile clears the
// selection. Tracked data is shared and left untouched.
func (s *Service) DeleteProfile(ref string) (models.Profile, error) {
	profiles, err := s.repo.Profiles()
	if err != nil {
		return models.Profile{}, err
	}
	target, ok := findProfile(profiles, ref)
	if !ok {
		return models.Profile{}, fmt.Errorf("profile %q: %w", ref, apperr.ErrNotFound)
	}
	profiles = slices.DeleteFunc(profiles, func(p models.Profile) bool { return p.ID == target.ID })

	if target.InKeyring && s.secrets != nil {
		if err := s.secrets.Delete(string(target.ID)); err != nil {
			return models.Profile{}, err
		}
	}

	active, err := s.repo.ActiveProfileID()
	if err != nil {
		return models.Profile{}, err
	}
	values := map[string]any{constants.KeyProfiles: profiles}
	if active == target.ID {
		values[constants.KeyActiveProfile] = nil
	}
	return target, s.repo.PutMany(values)
}

// UseProfile makes the profile active. Protected profiles require the
// matching secret and fail with ErrProfileLocked otherwise.
func (s *Service) UseProfile(ref, secret string) (models.Profile, error) {
	p, err := s.FindProfile(ref)
	if err != nil {
		return models.Profile{}, err
	}
	if p.IsProtected() {
		ok, err := s.checkSecret(p, secret)
		if err != nil {
			return models.Profile{}, err
		}
		if !ok {
			return models.Profile{}, fmt.Errorf("%w: incorrect secret for %q", apperr.ErrProfileLocked, p.Name)
		}
	}
	return p, s.repo.SetActiveProfileID(p.ID)
}

func (s *Service) checkSecret(p models.Profile, secret string) (bool, error) {
	var want string
	switch {
	case p.InKeyring:
		if s.secrets == nil {
			return false, fmt.Errorf("%w: secret for %q is in the OS keyring, which is unavailable", apperr.ErrProfileLocked, p.Name)
		}
		v, err := s.secrets.Get(string(p.ID))
		if err != nil {
			if errors.Is(err, keyring.ErrNotFound) {
				return false, fmt.Errorf("%w: secret for %q is missing from the keyring", apperr.ErrProfileLocked, p.Name)
			}
			return false, err
		}
		want = v
	case p.Secret != nil:
		want = *p.Secret
	}
	return subtle.ConstantTimeCompare([]byte(want), []byte(secret)) == 1, nil
}

// Logout clears the active profile.
func (s *Service) Logout() error {
	return s.repo.SetActiveProfileID("")
}

// ActiveProfile returns the selected profile or ErrNoActiveProfile.
func (s *Service) ActiveProfile() (models.Profile, error) {
	id, err := s.repo.ActiveProfileID()
	if err != nil {
		return models.Profile{}, err
	}
	if id == "" {
		return models.Profile{}, apperr.ErrNoActiveProfile
	}
	profiles, err := s.repo.Profiles()
	if err != nil {
		return models.Profile{}, err
	}
	for _, p := range profiles {
		if p.ID == id {
			return p, nil
		}
	}
	return models.Profile{}, apperr.ErrNoActiveProfile
}

// CreationDate returns when the active profile was created, or the zero time
// when no profile is active so windows fall back to plain trailing days.
func (s *Service) CreationDate() time.Time {
	p, err := s.ActiveProfile()
	if err != nil {
		return time.Time{}
	}
	return p.CreatedAt
}

func orDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}
