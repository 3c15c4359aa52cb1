package ui

import (
	"fmt"
	"strings"

	"sidepane/keys"
	"sidepane/ui/layout"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/ansi"
	"github.com/muesli/reflow/truncate"
)

var keyStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
	Light: "#655F5F",
	Dark:  "#7F7A7A",
})

var descStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
	Light: "#7A7474",
	Dark:  "#9C9494",
})

var sepStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{
	Light: "#DDDADA",
	Dark:  "#3C3C3C",
})

var actionGroupStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("99"))

var statusStyle = lipgloss.NewStyle().Foreground(TextMuted)

var resizingStatusStyle = lipgloss.NewStyle().Bold(true).Foreground(BorderFocus)

var noticeStyle = lipgloss.NewStyle().Foreground(Primary)

var separator = " • "
var verticalSeparator = " │ "

var menuStyle = lipgloss.NewStyle().
	Foreground(lipgloss.Color("205"))

// MenuState represents different states the menu can be in
type MenuState int

const (
	StateDefault MenuState = iota
	// StatePicker is shown while the section picker overlay is open.
	StatePicker
)

type menuGroup struct {
	start, end int
}

var navigationOptions = []keys.KeyName{keys.KeyUp, keys.KeyDown, keys.KeyPicker}
var sidebarOptions = []keys.KeyName{keys.KeyToggle, keys.KeyShrink, keys.KeyGrow}
var systemOptions = []keys.KeyName{keys.KeyTheme, keys.KeyCopy, keys.KeyQuit}
var pickerMenuOptions = []keys.KeyName{keys.KeyUp, keys.KeyDown, keys.KeyEnter, keys.KeyEsc}

type Menu struct {
	options       []keys.KeyName
	groups        []menuGroup
	height, width int
	state         MenuState

	// keyDown is the key which is pressed. The default is -1.
	keyDown keys.KeyName

	panel     layout.Handle
	hideHints bool

	// notice replaces the hints until cleared.
	notice string
}

func NewMenu() *Menu {
	m := &Menu{keyDown: -1}
	m.SetState(StateDefault)
	return m
}

func (m *Menu) Keydown(name keys.KeyName) {
	m.keyDown = name
}

func (m *Menu) ClearKeydown() {
	m.keyDown = -1
}

// SetState updates the menu state and options accordingly
func (m *Menu) SetState(state MenuState) {
	m.state = state
	m.updateOptions()
}

// SetPanel updates the sidebar status shown at the end of the menu.
func (m *Menu) SetPanel(h layout.Handle) {
	m.panel = h
}

// SetHideHints drops the key hints on narrow terminals, keeping the status.
func (m *Menu) SetHideHints(hide bool) {
	m.hideHints = hide
}

// SetNotice shows a short message in place of the key hints.
func (m *Menu) SetNotice(text string) {
	m.notice = text
}

// ClearNotice brings the key hints back.
func (m *Menu) ClearNotice() {
	m.notice = ""
}

// Notice returns the message currently shown, if any.
func (m *Menu) Notice() string {
	return m.notice
}

// updateOptions updates the menu options based on current state
func (m *Menu) updateOptions() {
	switch m.state {
	case StatePicker:
		m.options = pickerMenuOptions
		m.groups = []menuGroup{{0, len(pickerMenuOptions)}}
	default:
		var options []keys.KeyName
		options = append(options, navigationOptions...)
		options = append(options, sidebarOptions...)
		options = append(options, systemOptions...)
		m.options = options

		navEnd := len(navigationOptions)
		sidebarEnd := navEnd + len(sidebarOptions)
		m.groups = []menuGroup{
			{0, navEnd},
			{navEnd, sidebarEnd},
			{sidebarEnd, len(options)},
		}
	}
}

// SetSize sets the width of the window. The menu will be centered horizontally within this width.
func (m *Menu) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Status returns the sidebar status text: "resizing" during a drag,
// otherwise the collapse mode and width.
func (m *Menu) Status() string {
	switch {
	case m.panel.Resizing:
		return fmt.Sprintf("resizing %d", m.panel.Width)
	case m.panel.Collapsed:
		return "collapsed"
	default:
		return fmt.Sprintf("width %d", m.panel.Width)
	}
}

func (m *Menu) String() string {
	var s strings.Builder

	// Status goes first so truncation on narrow terminals only eats hints.
	if m.panel.Resizing {
		s.WriteString(resizingStatusStyle.Render(m.Status()))
	} else {
		s.WriteString(statusStyle.Render(m.Status()))
	}

	switch {
	case m.notice != "":
		s.WriteString(sepStyle.Render(verticalSeparator))
		s.WriteString(noticeStyle.Render(m.notice))
	case !m.hideHints:
		s.WriteString(sepStyle.Render(verticalSeparator))
		m.writeHints(&s)
	}

	centeredMenuText := menuStyle.Render(s.String())
	if m.width > 0 && ansi.PrintableRuneWidth(centeredMenuText) > m.width {
		centeredMenuText = truncate.StringWithTail(centeredMenuText, uint(m.width), "…")
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, centeredMenuText)
}

func (m *Menu) writeHints(s *strings.Builder) {
	for i, k := range m.options {
		binding := keys.GlobalkeyBindings[k]

		var (
			localActionStyle = actionGroupStyle
			localKeyStyle    = keyStyle
			localDescStyle   = descStyle
		)
		if m.keyDown == k {
			localActionStyle = localActionStyle.Underline(true)
			localKeyStyle = localKeyStyle.Underline(true)
			localDescStyle = localDescStyle.Underline(true)
		}

		// The sidebar group is the action group in the default state.
		inActionGroup := m.state == StateDefault && len(m.groups) > 1 &&
			i >= m.groups[1].start && i < m.groups[1].end

		if inActionGroup {
			s.WriteString(localActionStyle.Render(binding.Help().Key))
			s.WriteString(" ")
			s.WriteString(localActionStyle.Render(binding.Help().Desc))
		} else {
			s.WriteString(localKeyStyle.Render(binding.Help().Key))
			s.WriteString(" ")
			s.WriteString(localDescStyle.Render(binding.Help().Desc))
		}

		// Add appropriate separator
		if i != len(m.options)-1 {
			isGroupEnd := false
			for _, group := range m.groups {
				if i == group.end-1 {
					s.WriteString(sepStyle.Render(verticalSeparator))
					isGroupEnd = true
					break
				}
			}
			if !isGroupEnd {
				s.WriteString(sepStyle.Render(separator))
			}
		}
	}
}
