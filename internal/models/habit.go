package models

import "time"

type Habit struct {
	ID        ID        `json:"id" yaml:"id"`
	Name      string    `json:"nome" yaml:"nome"`
	Icon      string    `json:"icone,omitempty" yaml:"icone,omitempty"`
	Color     string    `json:"cor,omitempty" yaml:"cor,omitempty"`
	CreatedAt time.Time `json:"criadoEm" yaml:"criadoEm"`
}
