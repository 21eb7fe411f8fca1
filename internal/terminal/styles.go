// Package terminal renders explorer results for a terminal.
package terminal

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles used for terminal output.
type Styles struct {
	Title   lipgloss.Style
	Error   lipgloss.Style
	Cache   lipgloss.Style
	Label   lipgloss.Style
	Muted   lipgloss.Style
	Active  lipgloss.Style
	Chip    lipgloss.Style
	Success lipgloss.Style
}

// DefaultStyles returns the palette shared by the CLI and the TUI.
func DefaultStyles() Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#3b82f6")),
		Error:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#dc2626")),
		Cache:   lipgloss.NewStyle().Foreground(lipgloss.Color("#9ca3af")),
		Label:   lipgloss.NewStyle().Bold(true),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("#6b7280")),
		Active:  lipgloss.NewStyle().Padding(0, 1).Background(lipgloss.Color("#3b82f6")).Foreground(lipgloss.Color("#ffffff")),
		Chip:    lipgloss.NewStyle().Padding(0, 1).Background(lipgloss.Color("#e5e7eb")).Foreground(lipgloss.Color("#374151")),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("#16a34a")),
	}
}

// PlainStyles returns styles that render text unchanged.
func PlainStyles() Styles {
	plain := lipgloss.NewStyle()
	return Styles{
		Title:   plain,
		Error:   plain,
		Cache:   plain,
		Label:   plain,
		Muted:   plain,
		Active:  plain,
		Chip:    plain,
		Success: plain,
	}
}
