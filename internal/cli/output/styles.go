package output

import "github.com/charmbracelet/lipgloss"

// Styles holds the lipgloss styles a Renderer uses. Styles are bound to the
// renderer's color profile, so non-TTY output carries no escape codes.
type Styles struct {
	Header1 lipgloss.Style
	Header2 lipgloss.Style
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
	Info    lipgloss.Style
	Code    lipgloss.Style
}

func newStyles(r *lipgloss.Renderer) *Styles {
	return &Styles{
		Header1: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4")),
		Header2: r.NewStyle().Bold(true).Foreground(lipgloss.Color("#87CEEB")),
		Bold:    r.NewStyle().Bold(true),
		Muted:   r.NewStyle().Foreground(lipgloss.Color("#666666")),
		Success: r.NewStyle().Foreground(lipgloss.Color("#90EE90")),
		Warning: r.NewStyle().Foreground(lipgloss.Color("#FFD700")),
		Error:   r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")),
		Info:    r.NewStyle().Foreground(lipgloss.Color("#87CEEB")),
		Code:    r.NewStyle().Foreground(lipgloss.Color("#98FB98")),
	}
}
