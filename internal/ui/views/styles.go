package views

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the style definitions for the UI
type Styles struct {
	Title      lipgloss.Style
	Dim        lipgloss.Style
	Status     lipgloss.Style
	Help       lipgloss.Style
	Main       lipgloss.Style
	Indicator  lipgloss.Style
	Busy       lipgloss.Style
	Card       lipgloss.Style
	ActiveCard lipgloss.Style
	CardTitle  lipgloss.Style
	Preload    lipgloss.Style
	HelpBox    lipgloss.Style
	HelpTitle  lipgloss.Style
	HelpKey    lipgloss.Style
	HelpDesc   lipgloss.Style
	HelpHeader lipgloss.Style
}

// NewStyles creates a new Styles instance with default values
func NewStyles() *Styles {
	return &Styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("99")),
		Dim:       lipgloss.NewStyle().Faint(true),
		Status:    lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Help:      lipgloss.NewStyle().Faint(true),
		Main:      lipgloss.NewStyle().Padding(0, 1),
		Indicator: lipgloss.NewStyle().Foreground(lipgloss.Color("78")), // green
		Busy:      lipgloss.NewStyle().Foreground(lipgloss.Color("214")), // yellow
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(0, 1),
		ActiveCard: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("99")).
			Padding(0, 1),
		CardTitle: lipgloss.NewStyle().Bold(true),
		Preload:   lipgloss.NewStyle().Foreground(lipgloss.Color("51")).Italic(true), // cyan
		HelpBox: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("241")).
			Padding(1, 2),
		HelpTitle:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")).MarginBottom(1),
		HelpHeader: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		HelpKey:    lipgloss.NewStyle().Foreground(lipgloss.Color("220")),
		HelpDesc:   lipgloss.NewStyle().Foreground(lipgloss.Color("252")),
	}
}

var cardAccents = []string{"33", "78", "214", "203", "51", "170"}

// CardAccent returns the accent color for item i
func CardAccent(i int) lipgloss.Color {
	return lipgloss.Color(cardAccents[i%len(cardAccents)])
}
