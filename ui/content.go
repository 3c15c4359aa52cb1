package ui

import (
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
)

var contentHeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(TextPrimary).
	Background(BackgroundSubtle)

// Content shows the selected page in a scrollable viewport under a one-line
// title bar.
type Content struct {
	viewport viewport.Model

	title      string
	body       string
	showHeader bool

	width, height int
}

// NewContent creates an empty content pane.
func NewContent() *Content {
	return &Content{
		viewport:   viewport.New(0, 0),
		showHeader: true,
	}
}

// SetSize sets the pane size including the title bar.
func (c *Content) SetSize(width, height int) {
	c.width = max(0, width)
	c.height = max(0, height)
	c.viewport.Width = c.width
	c.viewport.Height = max(0, c.height-c.headerHeight())
}

// SetShowHeader hides the title bar on short terminals.
func (c *Content) SetShowHeader(show bool) {
	if c.showHeader == show {
		return
	}
	c.showHeader = show
	c.SetSize(c.width, c.height)
}

// SetPage replaces the displayed page. The scroll position is kept when the
// title is unchanged so a re-render at a new width does not jump.
func (c *Content) SetPage(title, body string) {
	same := title == c.title
	c.title = title
	c.body = body
	c.viewport.SetContent(body)
	if !same {
		c.viewport.GotoTop()
	}
}

// Title returns the title of the displayed page.
func (c *Content) Title() string {
	return c.title
}

// Body returns the rendered body of the displayed page.
func (c *Content) Body() string {
	return c.body
}

// Width returns the pane width.
func (c *Content) Width() int {
	return c.width
}

// ScrollUp scrolls the page up by n lines.
func (c *Content) ScrollUp(n int) {
	c.viewport.LineUp(n)
}

// ScrollDown scrolls the page down by n lines.
func (c *Content) ScrollDown(n int) {
	c.viewport.LineDown(n)
}

// PageUp scrolls up by one screen.
func (c *Content) PageUp() {
	c.viewport.ViewUp()
}

// PageDown scrolls down by one screen.
func (c *Content) PageDown() {
	c.viewport.ViewDown()
}

// YOffset returns the current scroll position.
func (c *Content) YOffset() int {
	return c.viewport.YOffset
}

// String renders the pane as exactly height lines of width cells.
func (c *Content) String() string {
	if c.width == 0 || c.height == 0 {
		return ""
	}
	body := c.viewport.View()
	if c.headerHeight() == 0 {
		return body
	}
	header := contentHeaderStyle.Render(fit(" "+c.title, c.width))
	if c.viewport.Height == 0 {
		return header
	}
	return header + "\n" + body
}

func (c *Content) headerHeight() int {
	if !c.showHeader || c.height < 2 {
		return 0
	}
	return 1
}
