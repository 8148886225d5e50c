package stats

import (
	"fmt"
	"math/rand/v2"
)

// StreakMessage returns an encouragement tier for a streak length.
func StreakMessage(streak int) string {
	switch {
	case streak <= 0:
		return "Start your streak today!"
	case streak == 1:
		return "Day one! Keep it going!"
	case streak < 7:
		return fmt.Sprintf("%d days in a row! You're on the right track!", streak)
	case streak < 30:
		return fmt.Sprintf("%d days! Incredible, stay steady!", streak)
	case streak < 100:
		return fmt.Sprintf("%d days! You're unstoppable!", streak)
	default:
		return fmt.Sprintf("%d days! Legendary!", streak)
	}
}

// PerformanceMessage describes a weekly progress percentage.
func PerformanceMessage(weekly int) string {
	switch {
	case weekly >= 90:
		return "Outstanding week! Keep it up!"
	case weekly >= 70:
		return "Great work this week!"
	case weekly >= 50:
		return "You're on the right track!"
	case weekly >= 30:
		return "Let's push a little harder this week!"
	default:
		return "Every journey starts with a single step!"
	}
}

var motivationalMessages = []string{
	"Every day is a new opportunity.",
	"Success is the sum of small efforts, repeated.",
	"You're stronger than you think.",
	"Focus on the process, not only the result.",
	"Discipline is the road to freedom.",
	"Small steps every day.",
	"Excellence is a habit.",
	"You're building your future today.",
	"Progress, not perfection.",
	"Motivation gets you started, habit keeps you going.",
}

// MotivationalMessage picks a message at random.
func MotivationalMessage() string {
	return motivationalMessages[rand.IntN(len(motivationalMessages))]
}
