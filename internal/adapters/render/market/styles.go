package market

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title   lipgloss.Style
	header  lipgloss.Style
	kind    lipgloss.Style
	detail  lipgloss.Style
	seller  lipgloss.Style
	price   lipgloss.Style
	empty   lipgloss.Style
	success lipgloss.Style
	failure lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:   lipgloss.NewStyle().Bold(true),
		header:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		kind:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		detail:  lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
		seller:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		price:   lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		empty:   lipgloss.NewStyle().Faint(true),
		success: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		failure: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
	}
}
