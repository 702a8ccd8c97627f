package tui

import "github.com/charmbracelet/lipgloss"

const historyPaneWidth = 38

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("63"))

	chatPaneStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	historyPaneStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240")).
				Padding(0, 1).
				Width(historyPaneWidth)

	userLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39"))

	assistantLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("141"))

	pendingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Italic(true)

	timestampStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	rowStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	rowSelectedStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("229")).
				Background(lipgloss.Color("57"))

	successDotStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failureDotStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	mutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))
)
