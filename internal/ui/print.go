package ui

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Header writes a section header.
func Header(w io.Writer, s string) {
	fmt.Fprintln(w, Title.Render(s))
	fmt.Fprintln(w, Muted.Render(strings.Repeat("─", lipgloss.Width(s))))
}

// Kv writes a padded key-value line.
func Kv(w io.Writer, key, value string) {
	fmt.Fprintf(w, "%s %s\n", KeyStyle.Render(fmt.Sprintf("  %-14s", key)), value)
}

func Ok(w io.Writer, msg string) {
	fmt.Fprintln(w, Success.Render(IconOk+msg))
}

func Warn(w io.Writer, msg string) {
	fmt.Fprintln(w, Warning.Render(IconWarn+msg))
}

func Fail(w io.Writer, msg string) {
	fmt.Fprintln(w, Danger.Render(IconFail+msg))
}

func Skip(w io.Writer, msg string) {
	fmt.Fprintln(w, Muted.Render(IconSkip+msg))
}

// Check renders a done/pending marker.
func Check(done bool) string {
	if done {
		return Success.Render(IconDone)
	}
	return Muted.Render(IconTodo)
}

// ProgressBar renders percent (clamped to 0..100) as a bar of width cells
// followed by the rounded percentage.
func ProgressBar(percent float64, width int) string {
	if width < 1 {
		width = 1
	}
	p := math.Max(0, math.Min(100, percent))
	filled := int(math.Round(p / 100 * float64(width)))
	bar := BarFull.Render(strings.Repeat("█", filled)) +
		BarEmpty.Render(strings.Repeat("░", width-filled))
	return fmt.Sprintf("%s %3.0f%%", bar, p)
}

// BarWidth sizes a progress bar to the terminal, leaving room for a label.
func BarWidth(label int) int {
	w := Width() - label - 8
	return max(10, min(w, 40))
}

// Table renders rows under headers with a rounded border.
func Table(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(Muted).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return KeyStyle.Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
	return t.Render()
}
