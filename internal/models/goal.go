package models

import (
	"time"

	"github.com/julianstephens/myroutine/internal/constants"
)

type GoalPeriod string

const (
	GoalWeekly  GoalPeriod = "semanal"
	GoalMonthly GoalPeriod = "mensal"
)

// Days returns the length of the trailing window the period covers.
func (p GoalPeriod) Days() int {
	if p == GoalMonthly {
		return constants.MonthlyWindowDays
	}
	return constants.WeeklyWindowDays
}

func (p GoalPeriod) Valid() bool {
	return p == GoalWeekly || p == GoalMonthly
}

type Goal struct {
	ID        ID         `json:"id" yaml:"id"`
	Title     string     `json:"titulo" yaml:"titulo"`
	Period    GoalPeriod `json:"tipo" yaml:"tipo"`
	Category  string     `json:"categoria" yaml:"categoria"`
	Target    float64    `json:"valorAlvo" yaml:"valorAlvo"`
	Unit      string     `json:"unidade,omitempty" yaml:"unidade,omitempty"`
	CreatedAt time.Time  `json:"criadaEm" yaml:"criadaEm"`
}
