package cli

import "github.com/charmbracelet/lipgloss"

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	statusStyles = map[string]lipgloss.Style{
		"open":        lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		"completed":   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		"archived":    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		"todo":        lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
		"in_progress": lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		"done":        lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	}
)

func styledStatus(status string) string {
	if style, ok := statusStyles[status]; ok {
		return style.Render(status)
	}
	return status
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
