package status

import "github.com/charmbracelet/lipgloss"

const keyWidth = 20

type styles struct {
	title      lipgloss.Style
	header     lipgloss.Style
	panel      lipgloss.Style
	panelTitle lipgloss.Style
	key        lipgloss.Style
	value      lipgloss.Style
	good       lipgloss.Style
	bad        lipgloss.Style
	pending    lipgloss.Style
	empty      lipgloss.Style
	footer     lipgloss.Style
	barBracket lipgloss.Style
	barFill    lipgloss.Style
	barEmpty   lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:      lipgloss.NewStyle().Bold(true),
		header:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		panel:      lipgloss.NewStyle().MarginTop(1),
		panelTitle: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255")),
		key:        lipgloss.NewStyle().Width(keyWidth).Foreground(lipgloss.Color("250")),
		value:      lipgloss.NewStyle().Foreground(lipgloss.Color("255")),
		good:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("46")),
		bad:        lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		pending:    lipgloss.NewStyle().Foreground(lipgloss.Color("226")),
		empty:      lipgloss.NewStyle().Faint(true),
		footer:     lipgloss.NewStyle().MarginTop(1).Faint(true).Italic(true),
		barBracket: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		barFill:    lipgloss.NewStyle().Foreground(lipgloss.Color("159")),
		barEmpty:   lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	}
}
