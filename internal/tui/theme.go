package tui

import "github.com/charmbracelet/lipgloss"

// Theme defines the visual style for the form.
type Theme struct {
	Title       lipgloss.Style
	Label       lipgloss.Style
	Value       lipgloss.Style
	Unset       lipgloss.Style
	Selected    lipgloss.Style
	Price       lipgloss.Style
	Subtle      lipgloss.Style
	StatusError lipgloss.Style
	StatusInfo  lipgloss.Style
	StatusOK    lipgloss.Style
	StatusWarn  lipgloss.Style
	Panel       lipgloss.Style
	Primary     lipgloss.Color
	Muted       lipgloss.Color
	Border      lipgloss.Color
}

// DefaultTheme is the default look.
func DefaultTheme() Theme {
	primary := lipgloss.Color("#5FA8FF")
	muted := lipgloss.Color("#737373")
	border := lipgloss.Color("#404040")

	return Theme{
		Primary: primary,
		Muted:   muted,
		Border:  border,

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary).
			MarginBottom(1),
		Label: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#a3a3a3")),
		Value: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#fafafa")),
		Unset: lipgloss.NewStyle().
			Foreground(muted).
			Italic(true),
		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary),
		Price: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#10b981")),
		Subtle: lipgloss.NewStyle().
			Foreground(muted),
		StatusError: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ef4444")).
			Bold(true),
		StatusWarn: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#f59e0b")).
			Bold(true),
		StatusInfo: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3b82f6")),
		StatusOK: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10b981")).
			Bold(true),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(border).
			Padding(1, 2),
	}
}
