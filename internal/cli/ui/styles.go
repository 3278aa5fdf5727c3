package ui

import "github.com/charmbracelet/lipgloss"

// Styles defines all lipgloss styles used in the CLI
var Styles = struct {
	Bold       lipgloss.Style
	Dim        lipgloss.Style
	Accent     lipgloss.Style
	Error      lipgloss.Style
	Prompt     lipgloss.Style
	UserBody   lipgloss.Style
	BotBody    lipgloss.Style
	Avatar     lipgloss.Style
	ImageChip  lipgloss.Style
	SuccessBox lipgloss.Style
	ErrorBox   lipgloss.Style
}{
	Bold:   lipgloss.NewStyle().Bold(true),
	Dim:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	Accent: lipgloss.NewStyle().Foreground(lipgloss.Color("86")),
	Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	Prompt: lipgloss.NewStyle().Foreground(lipgloss.Color("63")),

	UserBody: lipgloss.NewStyle().
		Foreground(lipgloss.Color("231")).
		Background(lipgloss.Color("61")).
		Padding(0, 1),

	BotBody: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("238")).
		Padding(0, 1),

	Avatar: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86")),

	ImageChip: lipgloss.NewStyle().
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("237")).
		Padding(0, 1),

	SuccessBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("42")).
		Padding(0, 1).
		Width(60),

	ErrorBox: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("196")).
		Padding(0, 1).
		Width(60),
}
