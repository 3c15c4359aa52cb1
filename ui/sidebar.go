package ui

import (
	"strings"

	"sidepane/pages"
	"sidepane/ui/layout"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/truncate"
)

const (
	sidebarTitle     = "Dashboard"
	sidebarIconTitle = "≡"

	handleRune         = "│"
	handleResizingRune = "┃"
)

var sidebarTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(Primary)

var itemStyle = lipgloss.NewStyle().Foreground(TextSecondary)

var selectedItemStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(TextPrimary).
	Background(BackgroundSelected)

var handleStyle = lipgloss.NewStyle().Foreground(Border)

var handleResizingStyle = lipgloss.NewStyle().Bold(true).Foreground(BorderFocus)

// Sidebar renders the section list. Its last column is the drag handle.
type Sidebar struct {
	items    []pages.Page
	selected int

	width, height int

	showLabels bool
	resizing   bool
}

// NewSidebar creates a sidebar listing items with the first one selected.
func NewSidebar(items []pages.Page) *Sidebar {
	return &Sidebar{
		items:      items,
		showLabels: true,
	}
}

// SetSize sets the rendered size. The width includes the handle column.
func (s *Sidebar) SetSize(width, height int) {
	s.width = max(0, width)
	s.height = max(0, height)
}

// SetShowLabels switches between titles and icons.
func (s *Sidebar) SetShowLabels(show bool) {
	s.showLabels = show
}

// SetResizing highlights the handle while a drag is in progress.
func (s *Sidebar) SetResizing(resizing bool) {
	s.resizing = resizing
}

// NumItems returns the number of sections.
func (s *Sidebar) NumItems() int {
	return len(s.items)
}

// SelectedIndex returns the index of the highlighted section.
func (s *Sidebar) SelectedIndex() int {
	return s.selected
}

// Selected returns the highlighted section.
func (s *Sidebar) Selected() pages.Page {
	if len(s.items) == 0 {
		return pages.Page{}
	}
	return s.items[s.selected]
}

// SetSelectedIndex highlights item idx. Out of range indexes are ignored.
func (s *Sidebar) SetSelectedIndex(idx int) bool {
	if idx < 0 || idx >= len(s.items) || idx == s.selected {
		return false
	}
	s.selected = idx
	return true
}

// Up moves the highlight up one item, stopping at the top.
func (s *Sidebar) Up() bool {
	return s.SetSelectedIndex(s.selected - 1)
}

// Down moves the highlight down one item, stopping at the bottom.
func (s *Sidebar) Down() bool {
	return s.SetSelectedIndex(s.selected + 1)
}

// ItemAt returns the index of the item drawn on row y, or -1.
func (s *Sidebar) ItemAt(y int) int {
	idx := y - layout.SidebarHeaderHeight
	if idx < 0 || idx >= len(s.items) || y >= s.height {
		return -1
	}
	return idx
}

// String renders the sidebar as exactly height lines of width cells.
func (s *Sidebar) String() string {
	if s.width == 0 || s.height == 0 {
		return ""
	}
	bodyWidth := s.width - 1

	handle := handleStyle.Render(handleRune)
	if s.resizing {
		handle = handleResizingStyle.Render(handleResizingRune)
	}

	lines := make([]string, 0, s.height)
	lines = append(lines, s.renderHeader(bodyWidth)+handle)
	for len(lines) < layout.SidebarHeaderHeight && len(lines) < s.height {
		lines = append(lines, strings.Repeat(" ", bodyWidth)+handle)
	}

	for i, item := range s.items {
		if len(lines) >= s.height {
			break
		}
		lines = append(lines, s.renderItem(i, item, bodyWidth)+handle)
	}
	for len(lines) < s.height {
		lines = append(lines, strings.Repeat(" ", bodyWidth)+handle)
	}

	return strings.Join(lines, "\n")
}

func (s *Sidebar) renderHeader(width int) string {
	if !s.showLabels {
		return sidebarTitleStyle.Render(center(sidebarIconTitle, width))
	}
	return sidebarTitleStyle.Render(fit(" "+sidebarTitle, width))
}

func (s *Sidebar) renderItem(i int, item pages.Page, width int) string {
	var text string
	if s.showLabels {
		text = fit(" "+item.Icon+" "+item.Title, width)
	} else {
		text = center(item.Icon, width)
	}

	if i == s.selected {
		return selectedItemStyle.Render(text)
	}
	return itemStyle.Render(text)
}

// fit truncates text to width cells with an ellipsis and pads it to exactly
// width cells.
func fit(text string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(text) > width {
		text = truncate.StringWithTail(text, uint(width), "…")
	}
	return text + strings.Repeat(" ", max(0, width-runewidth.StringWidth(text)))
}

// center places text in the middle of width cells.
func center(text string, width int) string {
	w := runewidth.StringWidth(text)
	if w >= width {
		return fit(text, width)
	}
	left := (width - w) / 2
	return strings.Repeat(" ", left) + text + strings.Repeat(" ", width-w-left)
}
