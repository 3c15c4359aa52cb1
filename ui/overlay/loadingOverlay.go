package overlay

import (
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
)

// LoadingOverlay shows a spinner while pages are rendered at startup or
// after a theme change.
type LoadingOverlay struct {
	// Title displayed at the top
	title string
	// Current status message
	status string
	// Spinner for the loading animation
	spinner *spinner.Model

	done, total int

	width int
}

// NewLoadingOverlay creates a new loading screen overlay
func NewLoadingOverlay(title string, spinner *spinner.Model) *LoadingOverlay {
	return &LoadingOverlay{
		title:   title,
		status:  "",
		spinner: spinner,
	}
}

// SetStatus updates the current status message
func (l *LoadingOverlay) SetStatus(status string) {
	l.status = status
}

// SetProgress records how many of total items are finished.
func (l *LoadingOverlay) SetProgress(done, total int) {
	l.done = done
	l.total = total
}

// SetWidth sets the overlay width
func (l *LoadingOverlay) SetWidth(width int) {
	l.width = width
}

// Render renders the loading overlay
func (l *LoadingOverlay) Render() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("62"))

	statusStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(1, 2).
		Width(l.width)

	content := titleStyle.Render(l.title) + "\n\n"
	if l.spinner != nil {
		content += l.spinner.View() + " "
	}
	status := l.status
	if l.total > 0 {
		status = fmt.Sprintf("%s (%d/%d)", status, l.done, l.total)
	}
	content += statusStyle.Render(status)

	return boxStyle.Render(content)
}
