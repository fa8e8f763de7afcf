package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent      = lipgloss.Color("#8BC34A")
	muted       = lipgloss.Color("#6B7280")
	destructive = lipgloss.Color("#e53935")
	warning     = lipgloss.Color("#FFC107")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)

	phaseStyle = lipgloss.NewStyle().
			Padding(0, 1).
			Foreground(lipgloss.Color("#101F38")).
			Background(accent)

	recordingStyle = phaseStyle.Background(destructive).Foreground(lipgloss.Color("#f2f2f2"))

	bodyStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().Foreground(muted)

	noticeStyles = map[string]lipgloss.Style{
		"success": lipgloss.NewStyle().Foreground(accent),
		"warning": lipgloss.NewStyle().Foreground(warning),
		"error":   lipgloss.NewStyle().Foreground(destructive),
	}
)
