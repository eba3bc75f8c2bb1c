// Package theme defines color themes for the salestable TUI.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the color roles used by the sales table.
type Theme struct {
	Name        string
	Background  lipgloss.Color // Main app background
	Surface     lipgloss.Color // Card backgrounds
	Selected    lipgloss.Color // Cursor row
	Border      lipgloss.Color // Card borders
	BorderFocus lipgloss.Color // Input and focused card borders
	TextDim     lipgloss.Color // Hints, disabled
	TextMuted   lipgloss.Color // Labels, metadata
	TextPrimary lipgloss.Color // Cell content
	Accent      lipgloss.Color // Headers, key hints
	Positive    lipgloss.Color // Variance above zero
	Negative    lipgloss.Color // Variance below zero
	Warning     lipgloss.Color // Rejected input, reload errors
}

// Active is the currently selected theme.
var Active = FlexokiDark

// FlexokiDark is the default theme.
var FlexokiDark = Theme{
	Name:        "flexoki-dark",
	Background:  lipgloss.Color("#100F0F"),
	Surface:     lipgloss.Color("#1C1B1A"),
	Selected:    lipgloss.Color("#343331"),
	Border:      lipgloss.Color("#403E3C"),
	BorderFocus: lipgloss.Color("#3AA99F"),
	TextDim:     lipgloss.Color("#575653"),
	TextMuted:   lipgloss.Color("#878580"),
	TextPrimary: lipgloss.Color("#FFFCF0"),
	Accent:      lipgloss.Color("#3AA99F"),
	Positive:    lipgloss.Color("#879A39"),
	Negative:    lipgloss.Color("#D14D41"),
	Warning:     lipgloss.Color("#DA702C"),
}

// CatppuccinMocha is a pastel theme.
var CatppuccinMocha = Theme{
	Name:        "catppuccin-mocha",
	Background:  lipgloss.Color("#1E1E2E"),
	Surface:     lipgloss.Color("#313244"),
	Selected:    lipgloss.Color("#585B70"),
	Border:      lipgloss.Color("#585B70"),
	BorderFocus: lipgloss.Color("#89B4FA"),
	TextDim:     lipgloss.Color("#6C7086"),
	TextMuted:   lipgloss.Color("#A6ADC8"),
	TextPrimary: lipgloss.Color("#CDD6F4"),
	Accent:      lipgloss.Color("#89B4FA"),
	Positive:    lipgloss.Color("#A6E3A1"),
	Negative:    lipgloss.Color("#F38BA8"),
	Warning:     lipgloss.Color("#FAB387"),
}

// TokyoNight is a cool blue theme.
var TokyoNight = Theme{
	Name:        "tokyo-night",
	Background:  lipgloss.Color("#1A1B26"),
	Surface:     lipgloss.Color("#24283B"),
	Selected:    lipgloss.Color("#414868"),
	Border:      lipgloss.Color("#565F89"),
	BorderFocus: lipgloss.Color("#7AA2F7"),
	TextDim:     lipgloss.Color("#565F89"),
	TextMuted:   lipgloss.Color("#A9B1D6"),
	TextPrimary: lipgloss.Color("#C0CAF5"),
	Accent:      lipgloss.Color("#7AA2F7"),
	Positive:    lipgloss.Color("#9ECE6A"),
	Negative:    lipgloss.Color("#F7768E"),
	Warning:     lipgloss.Color("#FF9E64"),
}

// Terminal uses ANSI 16 colors only.
var Terminal = Theme{
	Name:        "terminal",
	Background:  lipgloss.Color("0"),
	Surface:     lipgloss.Color("0"),
	Selected:    lipgloss.Color("8"),
	Border:      lipgloss.Color("8"),
	BorderFocus: lipgloss.Color("6"),
	TextDim:     lipgloss.Color("8"),
	TextMuted:   lipgloss.Color("7"),
	TextPrimary: lipgloss.Color("15"),
	Accent:      lipgloss.Color("6"),
	Positive:    lipgloss.Color("2"),
	Negative:    lipgloss.Color("1"),
	Warning:     lipgloss.Color("3"),
}

// All available themes.
var All = []Theme{FlexokiDark, CatppuccinMocha, TokyoNight, Terminal}

// ByName returns a theme by its name and whether it exists.
func ByName(name string) (Theme, bool) {
	for _, t := range All {
		if t.Name == name {
			return t, true
		}
	}
	return FlexokiDark, false
}

// SetActive sets the active theme by name. Unknown names select FlexokiDark.
func SetActive(name string) {
	Active, _ = ByName(name)
}

// Names lists the theme names in display order.
func Names() []string {
	names := make([]string, len(All))
	for i, t := range All {
		names[i] = t.Name
	}
	return names
}
