package ui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("212"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245"))

	chartStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39"))

	noticeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	modalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("214")).
			Padding(0, 2)

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	batteryStyles = map[BatteryLevel]lipgloss.Style{
		BatteryCritical: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		BatteryLow:      lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
		BatteryMedium:   lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		BatteryHigh:     lipgloss.NewStyle().Foreground(lipgloss.Color("82")),
	}
)
