package routine

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	apperr "github.com/julianstephens/myroutine/internal/errors"
	"github.com/julianstephens/myroutine/internal/models"
)

type EventInput struct {
	Time        string
	Title       string
	Description string
	Category    models.EventCategory
}

// AddEvent schedules an event on date; the day's schedule stays sorted by
// time.
func (s *Service) AddEvent(date string, in EventInput) (models.Event, error) {
	e := models.Event{
		ID:          models.NewID(),
		Time:        in.Time,
		Title:       strings.TrimSpace(in.Title),
		Description: in.Description,
		Category:    in.Category,
	}
	if e.Category == "" {
		e.Category = models.EventOther
	}
	if err := s.validator.ValidateEvent(e); err != nil {
		return models.Event{}, err
	}
	_, err := s.updateDay(date, func(d *models.DayRecord) error {
		d.AddEvent(e)
		return nil
	})
	return e, err
}

// UpdateEvent edits an event in place. Empty fields keep their value.
func (s *Service) UpdateEvent(date, ref string, in EventInput) (models.Event, error) {
	var updated models.Event
	_, err := s.updateDay(date, func(d *models.DayRecord) error {
		i, err := eventIndex(d, ref)
		if err != nil {
			return err
		}
		e := d.Schedule[i]
		if in.Time != "" {
			e.Time = in.Time
		}
		if in.Title != "" {
			e.Title = strings.TrimSpace(in.Title)
		}
		if in.Description != "" {
			e.Description = in.Description
		}
		if in.Category != "" {
			e.Category = in.Category
		}
		if err := s.validator.ValidateEvent(e); err != nil {
			return err
		}
		d.UpdateEvent(e)
		updated = e
		return nil
	})
	return updated, err
}

func (s *Service) ToggleEvent(date, ref string) (models.Event, error) {
	var toggled models.Event
	_, err := s.updateDay(date, func(d *models.DayRecord) error {
		i, err := eventIndex(d, ref)
		if err != nil {
			return err
		}
		d.ToggleEvent(d.Schedule[i].ID)
		toggled = d.Schedule[i]
		return nil
	})
	return toggled, err
}

func (s *Service) RemoveEvent(date, ref string) (models.Event, error) {
	var removed models.Event
	_, err := s.updateDay(date, func(d *models.DayRecord) error {
		i, err := eventIndex(d, ref)
		if err != nil {
			return err
		}
		removed = d.Schedule[i]
		d.RemoveEvent(removed.ID)
		return nil
	})
	return removed, err
}

// eventIndex resolves ref as an event ID first, then as a 1-based position.
func eventIndex(d *models.DayRecord, ref string) (int, error) {
	if i := slices.IndexFunc(d.Schedule, func(e models.Event) bool { return string(e.ID) == ref }); i >= 0 {
		return i, nil
	}
	if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(d.Schedule) {
		return n - 1, nil
	}
	return -1, fmt.Errorf("event %q: %w", ref, apperr.ErrNotFound)
}

func (s *Service) ListTemplates() ([]models.Template, error) {
	return s.repo.Templates()
}

func (s *Service) FindTemplate(ref string) (models.Template, error) {
	templates, err := s.repo.Templates()
	if err != nil {
		return models.Template{}, err
	}
	if i := indexTemplate(templates, ref); i >= 0 {
		return templates[i], nil
	}
	return models.Template{}, fmt.Errorf("template %q: %w", ref, apperr.ErrNotFound)
}

func indexTemplate(templates []models.Template, ref string) int {
	if i := slices.IndexFunc(templates, func(t models.Template) bool { return string(t.ID) == ref }); i >= 0 {
		return i
	}
	return slices.IndexFunc(templates, func(t models.Template) bool { return strings.EqualFold(t.Name, ref) })
}

// SaveTemplate captures date's schedule as a named template.
func (s *Service) SaveTemplate(name, date string) (models.Template, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Template{}, apperr.Invalidf("template name is required")
	}
	day, err := s.Day(date)
	if err != nil {
		return models.Template{}, err
	}
	if len(day.Schedule) == 0 {
		return models.Template{}, apperr.Invalidf("no events on %s to save as a template", date)
	}
	return s.addTemplate(models.TemplateFromEvents(name, day.Schedule, s.Now().UTC()))
}

func (s *Service) addTemplate(t models.Template) (models.Template, error) {
	templates, err := s.repo.Templates()
	if err != nil {
		return models.Template{}, err
	}
	templates = append(templates, t)
	return t, s.repo.SaveTemplates(templates)
}

// ApplyTemplate adds the template's events to date as new pending events,
// merged with whatever is already scheduled.
func (s *Service) ApplyTemplate(ref, date string) ([]models.Event, error) {
	t, err := s.FindTemplate(ref)
	if err != nil {
		return nil, err
	}
	events := t.Instantiate()
	_, err = s.updateDay(date, func(d *models.DayRecord) error {
		for _, e := range events {
			d.AddEvent(e)
		}
		return nil
	})
	return events, err
}

func (s *Service) DeleteTemplate(ref string) (models.Template, error) {
	templates, err := s.repo.Templates()
	if err != nil {
		return models.Template{}, err
	}
	i := indexTemplate(templates, ref)
	if i < 0 {
		return models.Template{}, fmt.Errorf("template %q: %w", ref, apperr.ErrNotFound)
	}
	removed := templates[i]
	templates = slices.Delete(templates, i, i+1)
	return removed, s.repo.SaveTemplates(templates)
}

// WriteTemplate encodes a template as YAML for sharing.
func (s *Service) WriteTemplate(ref string, w io.Writer) error {
	t, err := s.FindTemplate(ref)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(t); err != nil {
		return fmt.Errorf("failed to encode template: %w", err)
	}
	return enc.Close()
}

// ReadTemplate loads a YAML template and stores it under a fresh id.
func (s *Service) ReadTemplate(r io.Reader) (models.Template, error) {
	var t models.Template
	if err := yaml.NewDecoder(r).Decode(&t); err != nil {
		return models.Template{}, apperr.Invalidf("failed to decode template: %v", err)
	}
	if strings.TrimSpace(t.Name) == "" {
		return models.Template{}, apperr.Invalidf("template name is required")
	}
	for _, et := range t.Events {
		e := models.Event{Time: et.Time, Title: et.Title, Category: et.Category}
		if err := s.validator.ValidateEvent(e); err != nil {
			return models.Template{}, fmt.Errorf("template %q: %w", t.Name, err)
		}
	}
	t.ID = models.NewID()
	t.CreatedAt = s.Now().UTC()
	return s.addTemplate(t)
}
