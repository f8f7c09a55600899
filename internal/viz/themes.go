package viz

import "github.com/charmbracelet/lipgloss"

// Theme colors the overlay panel and the domain border. Body colors always
// come from the snapshot.
type Theme struct {
	Name   string
	Title  lipgloss.Color
	Label  lipgloss.Color
	Value  lipgloss.Color
	Border lipgloss.Color
	Graph  lipgloss.Color
	Muted  lipgloss.Color
	Alert  lipgloss.Color
}

var (
	ThemeNight = Theme{
		Name:   "night",
		Title:  lipgloss.Color("#00ffff"),
		Label:  lipgloss.Color("#888899"),
		Value:  lipgloss.Color("#ffffff"),
		Border: lipgloss.Color("#444466"),
		Graph:  lipgloss.Color("#00ff88"),
		Muted:  lipgloss.Color("#666688"),
		Alert:  lipgloss.Color("#ff4444"),
	}

	ThemeRetro = Theme{
		Name:   "retro",
		Title:  lipgloss.Color("#88ff88"),
		Label:  lipgloss.Color("#00cc00"),
		Value:  lipgloss.Color("#00ff00"),
		Border: lipgloss.Color("#005500"),
		Graph:  lipgloss.Color("#88ff88"),
		Muted:  lipgloss.Color("#005500"),
		Alert:  lipgloss.Color("#ffff00"),
	}

	ThemeMinimal = Theme{
		Name:   "minimal",
		Title:  lipgloss.Color("#ffffff"),
		Label:  lipgloss.Color("#888888"),
		Value:  lipgloss.Color("#ffffff"),
		Border: lipgloss.Color("#444444"),
		Graph:  lipgloss.Color("#0088ff"),
		Muted:  lipgloss.Color("#666666"),
		Alert:  lipgloss.Color("#ffaa00"),
	}

	Themes = []Theme{ThemeNight, ThemeRetro, ThemeMinimal}
)

// GetTheme looks a theme up by name, falling back to the first one.
func GetTheme(name string) Theme {
	for _, t := range Themes {
		if t.Name == name {
			return t
		}
	}
	return Themes[0]
}

// NextTheme returns the theme after t in Themes, wrapping around.
func NextTheme(t Theme) Theme {
	for i := range Themes {
		if Themes[i].Name == t.Name {
			return Themes[(i+1)%len(Themes)]
		}
	}
	return Themes[0]
}

func ThemeNames() []string {
	names := make([]string, len(Themes))
	for i, t := range Themes {
		names[i] = t.Name
	}
	return names
}
