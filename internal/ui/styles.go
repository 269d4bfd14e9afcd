package ui

import "github.com/charmbracelet/lipgloss"

// Styles — стили lipgloss для TUI.
type Styles struct {
	Title    lipgloss.Style
	Label    lipgloss.Style
	Value    lipgloss.Style
	On       lipgloss.Style
	Off      lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style
	Timer    lipgloss.Style
	Success  lipgloss.Style
	Muted    lipgloss.Style
	Help     lipgloss.Style
	Settings lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#58A6FF")),
		Label:    lipgloss.NewStyle().Foreground(lipgloss.Color("#8B949E")),
		Value:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F0F6FC")),
		On:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#3FB950")),
		Off:      lipgloss.NewStyle().Foreground(lipgloss.Color("#6E7681")),
		Status:   lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F6FC")),
		Error:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F85149")),
		Timer:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF5722")),
		Success:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#3FB950")),
		Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("#6E7681")),
		Help:     lipgloss.NewStyle().Foreground(lipgloss.Color("#8B949E")).Background(lipgloss.Color("#161B22")).Padding(0, 1),
		Settings: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("#30363D")).Padding(0, 1),
	}
}
