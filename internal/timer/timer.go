// Package timer is the interactive focus countdown.
package timer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/timer"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/myroutine/internal/constants"
	"github.com/julianstephens/myroutine/internal/models"
)

// Outcome is how a session ended.
type Outcome int

const (
	Completed Outcome = iota // countdown reached zero
	Stopped                  // stopped early, elapsed time is kept
	Discarded                // cancelled, nothing is recorded
)

// Result is the elapsed time of a finished session.
type Result struct {
	Category models.FocusCategory
	Planned  time.Duration
	Elapsed  time.Duration
	Outcome  Outcome
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	clockStyle = lipgloss.NewStyle().Bold(true).Padding(1, 0)
	pauseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Italic(true)
	barStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	docStyle   = lipgloss.NewStyle().Padding(1, 2)
)

type Model struct {
	category models.FocusCategory
	planned  time.Duration
	timer    timer.Model
	state    constants.SessionState
	outcome  Outcome
	keys     KeyMap
	help     help.Model
	width    int
}

func New(category models.FocusCategory, planned time.Duration) Model {
	return Model{
		category: category,
		planned:  planned,
		timer:    timer.NewWithInterval(planned, time.Second),
		state:    constants.StateRunning,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		width:    40,
	}
}

func (m Model) Init() tea.Cmd {
	return m.timer.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case timer.TickMsg:
		var cmd tea.Cmd
		m.timer, cmd = m.timer.Update(msg)
		return m, cmd

	case timer.StartStopMsg:
		var cmd tea.Cmd
		m.timer, cmd = m.timer.Update(msg)
		if m.timer.Running() {
			m.state = constants.StateRunning
		} else if m.state != constants.StateFinished {
			m.state = constants.StatePaused
		}
		return m, cmd

	case timer.TimeoutMsg:
		if msg.ID != m.timer.ID() {
			return m, nil
		}
		m.state = constants.StateFinished
		m.outcome = Completed
		return m, tea.Quit

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Toggle):
			return m, m.timer.Toggle()
		case key.Matches(msg, m.keys.Stop):
			m.state = constants.StateFinished
			m.outcome = Stopped
			return m, tea.Quit
		case key.Matches(msg, m.keys.Cancel):
			m.state = constants.StateFinished
			m.outcome = Discarded
			return m, tea.Quit
		}
	}
	return m, nil
}

// Elapsed is the time counted down so far.
func (m Model) Elapsed() time.Duration {
	if m.outcome == Completed && m.state == constants.StateFinished {
		return m.planned
	}
	elapsed := m.planned - m.timer.Timeout
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

func (m Model) Result() Result {
	r := Result{Category: m.category, Planned: m.planned, Elapsed: m.Elapsed(), Outcome: m.outcome}
	if m.state != constants.StateFinished {
		r.Outcome = Discarded
	}
	return r
}

func (m Model) View() string {
	if m.state == constants.StateFinished {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Focus: %s", m.category)))
	b.WriteString("\n")
	b.WriteString(clockStyle.Render(formatClock(m.timer.Timeout)))
	if m.state == constants.StatePaused {
		b.WriteString("  " + pauseStyle.Render("paused"))
	}
	b.WriteString("\n")
	b.WriteString(m.bar())
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys))
	return docStyle.Render(b.String())
}

func (m Model) bar() string {
	width := min(max(m.width-10, 10), 60)
	filled := 0
	if m.planned > 0 {
		filled = int(float64(width) * float64(m.Elapsed()) / float64(m.planned))
	}
	filled = min(filled, width)
	return barStyle.Render(strings.Repeat("█", filled)) + dimStyle.Render(strings.Repeat("░", width-filled))
}

func formatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Second)
	return fmt.Sprintf("%02d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

// Run shows the countdown until it completes or the user stops it.
func Run(ctx context.Context, category models.FocusCategory, planned time.Duration) (Result, error) {
	p := tea.NewProgram(New(category, planned), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		return Result{Category: category, Planned: planned, Outcome: Discarded}, fmt.Errorf("timer failed: %w", err)
	}
	return final.(Model).Result(), nil
}
