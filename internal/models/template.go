package models

import "time"

// EventTemplate is a schedule event stripped of its identity and completion
// state.
type EventTemplate struct {
	Time        string        `json:"hora" yaml:"hora"`
	Title       string        `json:"titulo" yaml:"titulo"`
	Description string        `json:"descricao,omitempty" yaml:"descricao,omitempty"`
	Category    EventCategory `json:"categoria" yaml:"categoria"`
}

type Template struct {
	ID        ID              `json:"id" yaml:"id"`
	Name      string          `json:"nome" yaml:"nome"`
	Events    []EventTemplate `json:"eventos" yaml:"eventos"`
	CreatedAt time.Time       `json:"criadoEm" yaml:"criadoEm"`
}

// TemplateFromEvents captures a day's schedule as a reusable template.
func TemplateFromEvents(name string, events []Event, now time.Time) Template {
	t := Template{ID: NewID(), Name: name, CreatedAt: now}
	for _, e := range events {
		t.Events = append(t.Events, EventTemplate{
			Time:        e.Time,
			Title:       e.Title,
			Description: e.Description,
			Category:    e.Category,
		})
	}
	return t
}

// Instantiate turns the template back into events with fresh IDs, all
// pending.
func (t Template) Instantiate() []Event {
	events := make([]Event, 0, len(t.Events))
	for _, et := range t.Events {
		events = append(events, Event{
			ID:          NewID(),
			Time:        et.Time,
			Title:       et.Title,
			Description: et.Description,
			Category:    et.Category,
		})
	}
	return events
}
