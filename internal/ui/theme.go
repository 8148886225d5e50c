package ui

import "github.com/charmbracelet/lipgloss"

var (
	Pink   = lipgloss.Color("205")
	Orange = lipgloss.Color("214")
	Red    = lipgloss.Color("196")
	Green  = lipgloss.Color("42")
	Blue   = lipgloss.Color("39")
	Gray   = lipgloss.Color("240")
	Shade  = lipgloss.Color("236")

	Title = lipgloss.NewStyle().
		Foreground(Pink).
		Bold(true)

	Success = lipgloss.NewStyle().
		Foreground(Green)

	Danger = lipgloss.NewStyle().
		Foreground(Red).
		Bold(true)

	Warning = lipgloss.NewStyle().
		Foreground(Orange).
		Italic(true)

	Info = lipgloss.NewStyle().
		Foreground(Blue)

	Muted = lipgloss.NewStyle().
		Foreground(Gray)

	KeyStyle = lipgloss.NewStyle().
			Foreground(Orange).
			Bold(true)

	BarFull = lipgloss.NewStyle().
		Foreground(Pink)

	BarEmpty = lipgloss.NewStyle().
			Foreground(Shade)

	Box = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Pink).
		Padding(0, 1)
)

const (
	IconOk    = "✓ "
	IconFail  = "✗ "
	IconWarn  = "⚠ "
	IconSkip  = "⊘ "
	IconFire  = "🔥"
	IconTodo  = "○"
	IconDone  = "●"
	IconArrow = "→"
)
