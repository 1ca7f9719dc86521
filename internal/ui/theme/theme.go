// Package theme holds the terminal palette and styles used by the CLI.
package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette
var (
	Primary   = lipgloss.Color("#8B5CF6") // Vivid Purple
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#F43F5E") // Rose
	Warning   = lipgloss.Color("#F97316") // Orange
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// ContentWidth is the wrap width for prose.
const ContentWidth = 76

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary)

	Heading = lipgloss.NewStyle().
		Bold(true).
		Foreground(Secondary).
		MarginTop(1)

	Body = lipgloss.NewStyle().
		Width(ContentWidth)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1).
		Width(ContentWidth)
)

// States
var (
	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Pass = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Fail = lipgloss.NewStyle().
		Foreground(Error).
		Bold(true)

	Capped = lipgloss.NewStyle().
		Foreground(Warning).
		Bold(true)
)
