package inspect

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

// ExtractStyleInfo extracts style information from a lipgloss style.
func ExtractStyleInfo(style lipgloss.Style, styleNames ...string) *StyleInfo {
	info := &StyleInfo{
		Foreground:    colorToString(style.GetForeground()),
		Background:    colorToString(style.GetBackground()),
		Bold:          style.GetBold(),
		Underline:     style.GetUnderline(),
		AppliedStyles: styleNames,
	}

	if style.GetBorderTop() || style.GetBorderRight() || style.GetBorderBottom() || style.GetBorderLeft() {
		info.BorderColor = colorToString(style.GetBorderTopForeground())
	}

	return info
}

// colorToString converts a lipgloss.TerminalColor to a string representation.
func colorToString(c lipgloss.TerminalColor) string {
	if c == nil {
		return ""
	}

	switch v := c.(type) {
	case lipgloss.NoColor:
		return ""
	case lipgloss.Color:
		return string(v)
	case lipgloss.AdaptiveColor:
		if lipgloss.HasDarkBackground() {
			return v.Dark
		}
		return v.Light
	default:
		return fmt.Sprintf("%v", c)
	}
}
