package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	darkTheme = Theme{
		Name:      "dark",
		Text:      "#FFFFFF",
		Muted:     "#888888",
		Accent:    "#8524a6",
		Border:    "#444444",
		ErrorText: "#FF5555",
	}

	lightTheme = Theme{
		Name:      "light",
		Text:      "#222222",
		Muted:     "#666666",
		Accent:    "#1976d2",
		Border:    "#CCCCCC",
		ErrorText: "#C62828",
	}
)

// returns the theme with the given name, dark for anything unknown
func themeByName(name string) Theme {
	if name == lightTheme.Name {
		return lightTheme
	}

	return darkTheme
}

func (t Theme) toggled() Theme {
	if t.Name == darkTheme.Name {
		return lightTheme
	}

	return darkTheme
}

func (t Theme) titleStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Accent))
}

func (t Theme) helpStyle() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(t.Muted)).Italic(true)
}

func (t Theme) userLabelStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Text))
}

func (t Theme) assistantLabelStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.Accent))
}

func (t Theme) errorStyle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(t.ErrorText))
}

func (t Theme) boxStyle(width int) lipgloss.Style {
	return lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color(t.Border)).
		Width(max(width-4, 10)).
		Padding(0, 1)
}
