package tui

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	OverdueColor = lipgloss.Color("#FF6B6B") // Red
	OnTrackColor = lipgloss.Color("#95E1A3") // Green

	Primary   = lipgloss.Color("#4ECDC4")
	Surface   = lipgloss.Color("#16213e")
	TextMuted = lipgloss.Color("#888888")
	Border    = lipgloss.Color("#333333")
)

// Styles
var (
	HeaderStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(Primary)

	ListStyle = lipgloss.NewStyle().
			Padding(1, 2)

	RowStyle = lipgloss.NewStyle().
			Padding(0, 1)

	RowSelectedStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Background(Surface).
				Bold(true)

	OverdueStyle = lipgloss.NewStyle().Foreground(OverdueColor).Bold(true)
	OnTrackStyle = lipgloss.NewStyle().Foreground(OnTrackColor)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextMuted).
			Padding(0, 1).
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true).
			BorderForeground(Border)

	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(1, 2)

	ErrorStyle = lipgloss.NewStyle().Foreground(OverdueColor)

	HelpStyle = lipgloss.NewStyle().
			Foreground(TextMuted)
)

// DaysStyle returns the style for the elapsed-days column
func DaysStyle(overdue bool) lipgloss.Style {
	if overdue {
		return OverdueStyle
	}
	return OnTrackStyle
}
