package ui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// UI chrome colors - structural elements
var (
	// Primary is the accent/focus color
	Primary = lipgloss.AdaptiveColor{Light: "#7D56F4", Dark: "#7D56F4"}

	// Border is the default border color
	Border = lipgloss.AdaptiveColor{Light: "#D1D5DB", Dark: "#3C3C3C"}

	// BorderFocus is the border color for focused elements. The sidebar
	// handle switches to it while a resize is in progress.
	BorderFocus = lipgloss.AdaptiveColor{Light: "#7D56F4", Dark: "#7D56F4"}

	// TextPrimary is the main text color
	TextPrimary = lipgloss.AdaptiveColor{Light: "#1a1a1a", Dark: "#dddddd"}

	// TextSecondary is for secondary text (descriptions, labels)
	TextSecondary = lipgloss.AdaptiveColor{Light: "#4B5563", Dark: "#9CA3AF"}

	// TextMuted is for hints and subtle text
	TextMuted = lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B7280"}

	// BackgroundSubtle is for cards, overlays, etc.
	BackgroundSubtle = lipgloss.AdaptiveColor{Light: "#F3F4F6", Dark: "#2a2a2a"}

	// BackgroundSelected is for selected items
	BackgroundSelected = lipgloss.AdaptiveColor{Light: "#dde4f0", Dark: "#3C3C4C"}

	// StatusWarning marks the minimum size warning.
	StatusWarning = lipgloss.AdaptiveColor{Light: "#F59E0B", Dark: "#F59E0B"}
)

// TextStyles contains pre-built styles for text elements
var TextStyles = struct {
	Primary   lipgloss.Style
	Secondary lipgloss.Style
	Muted     lipgloss.Style
	Warning   lipgloss.Style
}{
	Primary:   lipgloss.NewStyle().Foreground(TextPrimary),
	Secondary: lipgloss.NewStyle().Foreground(TextSecondary),
	Muted:     lipgloss.NewStyle().Foreground(TextMuted),
	Warning:   lipgloss.NewStyle().Foreground(StatusWarning).Bold(true),
}

// Theme selects which side of every AdaptiveColor is used.
type Theme int

const (
	ThemeDark Theme = iota
	ThemeLight
)

// String returns the theme name as stored in state and passed to glamour.
func (t Theme) String() string {
	if t == ThemeLight {
		return "light"
	}
	return "dark"
}

// Toggle returns the other theme.
func (t Theme) Toggle() Theme {
	if t == ThemeLight {
		return ThemeDark
	}
	return ThemeLight
}

// ParseTheme maps a stored theme name back to a Theme. Anything other than
// "light" or "dark" asks the terminal.
func ParseTheme(name string) Theme {
	switch name {
	case "light":
		return ThemeLight
	case "dark":
		return ThemeDark
	default:
		return DetectTheme()
	}
}

// DetectTheme queries the terminal background.
func DetectTheme() Theme {
	if termenv.HasDarkBackground() {
		return ThemeDark
	}
	return ThemeLight
}

// ApplyTheme points lipgloss's adaptive colors at the theme.
func ApplyTheme(t Theme) {
	lipgloss.SetHasDarkBackground(t == ThemeDark)
}
