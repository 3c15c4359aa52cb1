package overlay

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

// SectionOption is one entry of the section picker.
type SectionOption struct {
	Icon  string
	Title string
}

// SectionPickerOverlay lets the user jump to a section by typing part of
// its title.
type SectionPickerOverlay struct {
	Dismissed bool
	// Selected is the index into the options passed to the constructor, or
	// -1 when the picker was cancelled.
	Selected int

	options  []SectionOption
	filtered []int
	cursor   int
	input    textinput.Model
	width    int
}

// NewSectionPickerOverlay creates a picker over options with the cursor on
// the current section.
func NewSectionPickerOverlay(options []SectionOption, current int) *SectionPickerOverlay {
	ti := textinput.New()
	ti.Placeholder = "Jump to section"
	ti.Prompt = "/ "
	ti.CharLimit = 64
	ti.Focus()

	p := &SectionPickerOverlay{
		Selected: -1,
		options:  options,
		input:    ti,
		width:    40,
	}
	p.filter()
	if current >= 0 && current < len(options) {
		p.cursor = current
	}
	return p
}

// HandleKeyPress processes a key press and updates the state. Returns true
// when the picker should close.
func (p *SectionPickerOverlay) HandleKeyPress(msg tea.KeyMsg) bool {
	switch msg.String() {
	case "up", "ctrl+p":
		p.moveCursor(-1)
		return false
	case "down", "ctrl+n":
		p.moveCursor(1)
		return false
	case "enter":
		if len(p.filtered) == 0 {
			return false
		}
		p.Selected = p.filtered[p.cursor]
		p.Dismissed = true
		return true
	case "esc":
		p.Dismissed = true
		return true
	}

	before := p.input.Value()
	p.input, _ = p.input.Update(msg)
	if p.input.Value() != before {
		p.filter()
	}
	return false
}

// Query returns the current filter text.
func (p *SectionPickerOverlay) Query() string {
	return p.input.Value()
}

// Matches returns the option indexes that match the query, best first.
func (p *SectionPickerOverlay) Matches() []int {
	return p.filtered
}

// Highlighted returns the option under the cursor, or -1.
func (p *SectionPickerOverlay) Highlighted() int {
	if len(p.filtered) == 0 {
		return -1
	}
	return p.filtered[p.cursor]
}

// filter recomputes the matches. An empty query lists every option in order.
func (p *SectionPickerOverlay) filter() {
	p.cursor = 0
	query := strings.TrimSpace(p.input.Value())
	if query == "" {
		p.filtered = make([]int, len(p.options))
		for i := range p.options {
			p.filtered[i] = i
		}
		return
	}

	titles := make([]string, len(p.options))
	for i, opt := range p.options {
		titles[i] = opt.Title
	}

	matches := fuzzy.Find(query, titles)
	p.filtered = make([]int, 0, len(matches))
	for _, match := range matches {
		p.filtered = append(p.filtered, match.Index)
	}
}

// moveCursor moves the cursor up or down, wrapping around
func (p *SectionPickerOverlay) moveCursor(delta int) {
	if len(p.filtered) == 0 {
		return
	}
	p.cursor = (p.cursor + delta + len(p.filtered)) % len(p.filtered)
}

// Render renders the section picker overlay
func (p *SectionPickerOverlay) Render() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("#FFFFFF"))

	selectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#7aa2f7")).
		Bold(true)

	normalStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#AAAAAA"))

	hintStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))

	var content strings.Builder
	content.WriteString(titleStyle.Render("Go to section"))
	content.WriteString("\n\n")
	content.WriteString(p.input.View())
	content.WriteString("\n\n")

	if len(p.filtered) == 0 {
		content.WriteString(hintStyle.Render("  no matching sections"))
		content.WriteString("\n")
	}
	for i, idx := range p.filtered {
		opt := p.options[idx]
		if i == p.cursor {
			content.WriteString(selectedStyle.Render("> " + opt.Icon + " " + opt.Title))
		} else {
			content.WriteString(normalStyle.Render("  " + opt.Icon + " " + opt.Title))
		}
		content.WriteString("\n")
	}

	content.WriteString("\n")
	content.WriteString(hintStyle.Render("[Enter] Go  [Esc] Cancel  [↑/↓] Navigate"))

	borderStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("#7aa2f7")).
		Padding(1, 2).
		Width(p.width)

	return borderStyle.Render(content.String())
}

// SetWidth sets the width of the overlay
func (p *SectionPickerOverlay) SetWidth(width int) {
	p.width = width
}
