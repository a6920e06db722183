package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color palette for the viewer.
type Theme struct {
	Name string

	Text    string
	Muted   string
	Accent  string
	Danger  string
	Surface string
	Border  string
}

var themes = []Theme{
	{
		Name:    "dark",
		Text:    "#c0caf5",
		Muted:   "#565f89",
		Accent:  "#7aa2f7",
		Danger:  "#f7768e",
		Surface: "#1a1b26",
		Border:  "#3b4261",
	},
	{
		Name:    "light",
		Text:    "#343b58",
		Muted:   "#8990b3",
		Accent:  "#2e7de9",
		Danger:  "#f52a65",
		Surface: "#e1e2e7",
		Border:  "#a8aecb",
	},
	{
		Name:    "forest",
		Text:    "#d3c6aa",
		Muted:   "#859289",
		Accent:  "#a7c080",
		Danger:  "#e67e80",
		Surface: "#2d353b",
		Border:  "#475258",
	},
}

// GetTheme returns the theme with the given name, falling back to the first
// theme when the name is unknown.
func GetTheme(name string) Theme {
	for _, t := range themes {
		if strings.EqualFold(t.Name, name) {
			return t
		}
	}
	return themes[0]
}

// NextTheme returns the name of the theme after the given one, wrapping
// around at the end of the list.
func NextTheme(name string) string {
	for i, t := range themes {
		if strings.EqualFold(t.Name, name) {
			return themes[(i+1)%len(themes)].Name
		}
	}
	return themes[0].Name
}

// Styles contains the pre-built lipgloss styles for a theme.
type Styles struct {
	Text       lipgloss.Style
	MutedText  lipgloss.Style
	AccentText lipgloss.Style
	DangerText lipgloss.Style
	Header     lipgloss.Style
	Footer     lipgloss.Style
}

// Styles builds the lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),
	}
}
