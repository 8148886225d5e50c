package constants

const (
	// Preference keys accepted by `myroutine settings set`
	SettingFirstDayOfWeek   = "first_day_of_week"
	SettingDefaultSleepGoal = "default_sleep_goal"
	SettingNotifications    = "notifications"
	SettingTheme            = "theme"

	// Default preference values
	DefaultFirstDayOfWeek   = 0 // Sunday
	DefaultSleepGoal        = 8.0
	DefaultNotifications    = true
	DefaultTheme            = "light"
	DefaultTimezone         = "Local" // Use system local timezone by default
	MinSleepGoal            = 4.0
	MaxSleepGoal            = 12.0
	DefaultTimerMinutes     = 25
	MinTimerMinutes         = 1
	MaxTimerMinutes         = 120
	DefaultStudyActivityMin = 30
)
