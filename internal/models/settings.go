package models

import "github.com/julianstephens/myroutine/internal/constants"

// Preferences are the per-profile display and goal defaults.
type Preferences struct {
	FirstDayOfWeek   int     `json:"firstDayOfWeek" yaml:"firstDayOfWeek"`     // 0 = Sunday
	DefaultSleepGoal float64 `json:"defaultSleepGoal" yaml:"defaultSleepGoal"` // hours
	Notifications    bool    `json:"notifications" yaml:"notifications"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		FirstDayOfWeek:   constants.DefaultFirstDayOfWeek,
		DefaultSleepGoal: constants.DefaultSleepGoal,
		Notifications:    constants.DefaultNotifications,
	}
}
