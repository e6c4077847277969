package tui

import "github.com/charmbracelet/lipgloss"

var (
	accent      = lipgloss.Color("#8BC34A")
	muted       = lipgloss.Color("#7a8599")
	destructive = lipgloss.Color("#e53935")
)

type styles struct {
	Header   lipgloss.Style
	Card     lipgloss.Style
	Selected lipgloss.Style
	Title    lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Overlay  lipgloss.Style
	Modal    lipgloss.Style
	Counter  lipgloss.Style
	Help     lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		Header:   lipgloss.NewStyle().Bold(true).Foreground(accent).MarginBottom(1),
		Card:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(muted).Padding(0, 1),
		Selected: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(accent).Padding(0, 1),
		Title:    lipgloss.NewStyle().Bold(true),
		Muted:    lipgloss.NewStyle().Foreground(muted),
		Error:    lipgloss.NewStyle().Foreground(destructive),
		Overlay:  lipgloss.NewStyle().Border(lipgloss.DoubleBorder()).BorderForeground(accent).Padding(1, 2),
		Modal:    lipgloss.NewStyle().Border(lipgloss.ThickBorder()).BorderForeground(accent).Padding(1, 2),
		Counter:  lipgloss.NewStyle().Foreground(accent).Bold(true),
		Help:     lipgloss.NewStyle().Foreground(muted).MarginTop(1),
	}
}
