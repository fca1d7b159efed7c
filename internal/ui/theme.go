package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Theme defines the colors for the UI.
type Theme struct {
	Name string

	Surface       string // Header/footer background
	Text          string
	Muted         string
	Accent        string
	Success       string
	Warning       string
	Danger        string
	Border        string
	SelectionBg   string // Selected row background
	SelectionText string // Selected row text
}

// Styles returns lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

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

		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),

		Title: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true).
			Underline(true),

		Detail: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(t.Border)).
			Padding(1, 2),
	}
}

// Styles holds rendered lipgloss styles derived from a Theme.
type Styles struct {
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	Header      lipgloss.Style
	Footer      lipgloss.Style
	Logo        lipgloss.Style
	Selected    lipgloss.Style
	Title       lipgloss.Style
	Detail      lipgloss.Style
}

var themes = []Theme{
	{
		Name:          "Nebula",
		Surface:       "#1e1e2e",
		Text:          "#cdd6f4",
		Muted:         "#7f849c",
		Accent:        "#89b4fa",
		Success:       "#a6e3a1",
		Warning:       "#f9e2af",
		Danger:        "#f38ba8",
		Border:        "#45475a",
		SelectionBg:   "#45475a",
		SelectionText: "#cdd6f4",
	},
	{
		Name:          "Dune",
		Surface:       "#2b2b22",
		Text:          "#e8e4cf",
		Muted:         "#8f8a70",
		Accent:        "#d8a657",
		Success:       "#a9b665",
		Warning:       "#e78a4e",
		Danger:        "#ea6962",
		Border:        "#504d38",
		SelectionBg:   "#504d38",
		SelectionText: "#e8e4cf",
	},
}

// ThemeByName returns the named theme, falling back to the first theme when
// the name is unknown.
func ThemeByName(name string) Theme {
	for _, t := range themes {
		if t.Name == name {
			return t
		}
	}
	return themes[0]
}

// NextTheme returns the theme after the named one, wrapping around.
func NextTheme(name string) Theme {
	for i, t := range themes {
		if t.Name == name {
			return themes[(i+1)%len(themes)]
		}
	}
	return themes[0]
}
