package constants

const (
	// WeeklyWindowDays and MonthlyWindowDays are the goal and summary window lengths
	WeeklyWindowDays  = 7
	MonthlyWindowDays = 30

	// SleepStreakMinHours is the minimum number of hours that counts as a good night
	SleepStreakMinHours = 6.0

	// DailyChecks is the number of binary checks behind the daily progress percentage
	DailyChecks = 4
)
