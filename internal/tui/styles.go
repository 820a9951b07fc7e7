package tui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	valueStyle = lipgloss.NewStyle().
			Bold(true)

	staleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("9"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Width(cardWidth)

	activeCardStyle = cardStyle.
			BorderForeground(lipgloss.Color("10"))

	offlineCardStyle = cardStyle.
				BorderForeground(lipgloss.Color("9"))

	statusOnlineStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("12"))
	statusActiveStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	statusOfflineStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))

	nodeStyle        = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.NormalBorder())
	activeNodeStyle  = nodeStyle.BorderForeground(lipgloss.Color("10"))
	offlineNodeStyle = nodeStyle.BorderForeground(lipgloss.Color("9")).Foreground(lipgloss.Color("241"))
	balancerStyle    = nodeStyle.BorderForeground(lipgloss.Color("62")).Bold(true)

	pulseStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true).
			MarginTop(1)
)
