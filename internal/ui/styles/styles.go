// Package styles provides shared lipgloss styles for terminal output.
package styles

import "github.com/charmbracelet/lipgloss"

// Colors used by the progress bar and run summaries
var (
	// Primary is the main accent color (cyan/teal)
	Primary lipgloss.TerminalColor = lipgloss.Color("62")

	// Accent is the highlight color (pink)
	Accent lipgloss.TerminalColor = lipgloss.Color("212")

	// Success is used for positive outcomes (green)
	Success lipgloss.TerminalColor = lipgloss.Color("82")

	// Error is used for failures (red)
	Error lipgloss.TerminalColor = lipgloss.Color("196")

	// Muted is used for de-emphasized text (gray)
	Muted lipgloss.TerminalColor = lipgloss.Color("240")
)

// Common styles
var (
	// SuccessStyle renders positive outcome markers
	SuccessStyle = lipgloss.NewStyle().Foreground(Success)

	// ErrorStyle renders failure markers
	ErrorStyle = lipgloss.NewStyle().Foreground(Error)

	// MutedStyle renders skipped/neutral markers
	MutedStyle = lipgloss.NewStyle().Foreground(Muted)
)
