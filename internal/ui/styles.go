package ui

import "github.com/charmbracelet/lipgloss"

var (
	Brand       = lipgloss.Color("#FF6B35")
	Ink         = lipgloss.Color("#1F2937")
	Paper       = lipgloss.Color("#F9FAFB")
	Subtle      = lipgloss.Color("#9CA3AF")
	Border      = lipgloss.Color("#D1D5DB")
	Destructive = lipgloss.Color("#E53935")
	Warning     = lipgloss.Color("#FFC107")
)

// Styles groups the storefront's lipgloss styles.
type Styles struct {
	Header    lipgloss.Style
	CartBadge lipgloss.Style
	Banner    lipgloss.Style
	Subtitle  lipgloss.Style
	Search    lipgloss.Style
	SearchOn  lipgloss.Style
	Error     lipgloss.Style
	Note      lipgloss.Style
	Notice    lipgloss.Style
	Status    lipgloss.Style
	Help      lipgloss.Style
}

// DefaultStyles returns the storefront styles.
func DefaultStyles() Styles {
	search := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 1)

	return Styles{
		Header:    lipgloss.NewStyle().Bold(true).Foreground(Paper).Background(Brand).Padding(0, 1),
		CartBadge: lipgloss.NewStyle().Bold(true).Foreground(Ink).Background(Warning).Padding(0, 1),
		Banner:    lipgloss.NewStyle().Italic(true).Foreground(Brand).MarginTop(1),
		Subtitle:  lipgloss.NewStyle().Foreground(Subtle),
		Search:    search,
		SearchOn:  search.BorderForeground(Brand),
		Error:     lipgloss.NewStyle().Bold(true).Foreground(Destructive),
		Note:      lipgloss.NewStyle().Foreground(Destructive).Faint(true),
		Notice:    lipgloss.NewStyle().Foreground(Ink).Background(Paper).Padding(0, 1),
		Status:    lipgloss.NewStyle().Foreground(Brand),
		Help:      lipgloss.NewStyle().Foreground(Subtle),
	}
}
