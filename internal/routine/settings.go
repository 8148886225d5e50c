package routine

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/julianstephens/myroutine/internal/constants"
	apperr "github.com/julianstephens/myroutine/internal/errors"
	"github.com/julianstephens/myroutine/internal/models"
)

var themes = []string{"light", "dark"}

// Settings is the stored preferences plus the display theme.
type Settings struct {
	models.Preferences
	Theme string
}

func (s *Service) Settings() (Settings, error) {
	prefs, err := s.repo.Preferences()
	if err != nil {
		return Settings{}, err
	}
	theme, err := s.repo.Theme()
	if err != nil {
		return Settings{}, err
	}
	return Settings{Preferences: prefs, Theme: theme}, nil
}

// SetSetting parses value for the named setting, validates it and saves it.
func (s *Service) SetSetting(name, value string) (Settings, error) {
	current, err := s.Settings()
	if err != nil {
		return Settings{}, err
	}
	value = strings.TrimSpace(value)
	prefs := current.Preferences

	switch name {
	case constants.SettingTheme:
		v := strings.ToLower(value)
		if !slices.Contains(themes, v) {
			return Settings{}, apperr.Invalidf("theme must be light or dark")
		}
		current.Theme = v
		return current, s.repo.SetTheme(v)
	case constants.SettingFirstDayOfWeek:
		n, err := strconv.Atoi(value)
		if err != nil {
			return Settings{}, apperr.Invalidf("first day of week must be a number from 0 to 6")
		}
		prefs.FirstDayOfWeek = n
	case constants.SettingDefaultSleepGoal:
		h, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return Settings{}, apperr.Invalidf("sleep goal must be a number of hours")
		}
		prefs.DefaultSleepGoal = h
	case constants.SettingNotifications:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return Settings{}, apperr.Invalidf("notifications must be true or false")
		}
		prefs.Notifications = b
	default:
		return Settings{}, fmt.Errorf("%w: unknown setting %q", apperr.ErrNotFound, name)
	}

	if err := s.validator.ValidatePreferences(prefs); err != nil {
		return Settings{}, err
	}
	current.Preferences = prefs
	return current, s.repo.SavePreferences(prefs)
}
