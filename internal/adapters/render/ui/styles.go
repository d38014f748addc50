package ui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	title      lipgloss.Style
	header     lipgloss.Style
	balance    lipgloss.Style
	tabActive  lipgloss.Style
	tab        lipgloss.Style
	card       lipgloss.Style
	cardTitle  lipgloss.Style
	detail     lipgloss.Style
	cursor     lipgloss.Style
	price      lipgloss.Style
	statusOK   lipgloss.Style
	statusWarn lipgloss.Style
	statusBad  lipgloss.Style
	errText    lipgloss.Style
	notice     lipgloss.Style
	help       lipgloss.Style
	empty      lipgloss.Style
	overlay    lipgloss.Style
	input      lipgloss.Style
	button     lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true),
		header:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		balance:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("42")),
		tabActive:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")).Underline(true),
		tab:        lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		card:       lipgloss.NewStyle().PaddingLeft(2),
		cardTitle:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("252")),
		detail:     lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		cursor:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		price:      lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		statusOK:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		statusWarn: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		statusBad:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		errText:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		notice:     lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		help:       lipgloss.NewStyle().Faint(true).MarginTop(1),
		empty:      lipgloss.NewStyle().Faint(true),
		overlay:    lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(1, 2),
		input:      lipgloss.NewStyle().MarginTop(1),
		button:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
	}
}
