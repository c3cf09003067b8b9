package tui

import "github.com/charmbracelet/lipgloss"

var (
	green  = lipgloss.Color("#58cc02")
	red    = lipgloss.Color("#ff4b4b")
	blue   = lipgloss.Color("#1cb0f6")
	muted  = lipgloss.Color("#afafaf")
	border = lipgloss.Color("#e5e5e5")

	appStyle      = lipgloss.NewStyle().Padding(1, 2)
	titleStyle    = lipgloss.NewStyle().Foreground(green).Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(muted)
	promptStyle   = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	optionStyle   = lipgloss.NewStyle().Padding(0, 1).Border(lipgloss.RoundedBorder()).BorderForeground(border)
	selectedStyle = optionStyle.BorderForeground(blue).Foreground(blue)
	correctStyle  = lipgloss.NewStyle().Foreground(green).Bold(true)
	wrongStyle    = lipgloss.NewStyle().Foreground(red).Bold(true)
	barFull       = lipgloss.NewStyle().Foreground(green)
	barEmpty      = lipgloss.NewStyle().Foreground(border)
)
