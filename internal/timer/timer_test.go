package timer

import (
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/timer"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/myroutine/internal/constants"
	"github.com/julianstephens/myroutine/internal/models"
)

func tick(m Model, n int) Model {
	for i := 0; i < n; i++ {
		// bubbles/timer decrements Timeout by its interval on each tick
		m.timer.Timeout -= time.Second
	}
	return m
}

func TestOutcomes(t *testing.T) {
	tests := []struct {
		name        string
		key         tea.KeyMsg
		wantOutcome Outcome
	}{
		{name: "stop keeps elapsed", key: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("s")}, wantOutcome: Stopped},
		{name: "enter stops", key: tea.KeyMsg{Type: tea.KeyEnter}, wantOutcome: Stopped},
		{name: "q discards", key: tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")}, wantOutcome: Discarded},
		{name: "ctrl+c discards", key: tea.KeyMsg{Type: tea.KeyCtrlC}, wantOutcome: Discarded},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := tick(New(models.FocusStudy, 25*time.Minute), 90)
			next, cmd := m.Update(tt.key)
			if cmd == nil {
				t.Fatal("expected quit command")
			}
			res := next.(Model).Result()
			if res.Outcome != tt.wantOutcome {
				t.Errorf("Outcome = %v, want %v", res.Outcome, tt.wantOutcome)
			}
			if res.Elapsed != 90*time.Second {
				t.Errorf("Elapsed = %v, want 90s", res.Elapsed)
			}
			if res.Category != models.FocusStudy {
				t.Errorf("Category = %v", res.Category)
			}
		})
	}
}

func TestTimeoutCompletes(t *testing.T) {
	m := New(models.FocusWork, 15*time.Minute)
	m.timer.Timeout = 0

	next, cmd := m.Update(timer.TimeoutMsg{ID: m.timer.ID()})
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	res := next.(Model).Result()
	if res.Outcome != Completed || res.Elapsed != 15*time.Minute {
		t.Errorf("Result() = %+v", res)
	}

	// a timeout from another timer is ignored
	other, _ := New(models.FocusWork, time.Minute).Update(timer.TimeoutMsg{ID: -1})
	if other.(Model).state == constants.StateFinished {
		t.Error("foreign timeout should not finish the session")
	}
}

func TestUnfinishedIsDiscarded(t *testing.T) {
	m := tick(New(models.FocusWorkout, time.Hour), 600)
	if res := m.Result(); res.Outcome != Discarded {
		t.Errorf("interrupted session outcome = %v", res.Outcome)
	}
}

func TestView(t *testing.T) {
	m := New(models.FocusStudy, 25*time.Minute)
	if v := m.View(); v == "" {
		t.Error("View() is empty while running")
	}
	m.state = constants.StateFinished
	if v := m.View(); v != "" {
		t.Errorf("View() after finish = %q", v)
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{25 * time.Minute, "25:00"},
		{61 * time.Second, "01:01"},
		{0, "00:00"},
		{-time.Second, "00:00"},
		{120 * time.Minute, "120:00"},
	}
	for _, tt := range tests {
		if got := formatClock(tt.in); got != tt.want {
			t.Errorf("formatClock(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
