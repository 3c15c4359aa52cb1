package ui

import (
	"fmt"
	"math"
	"time"

	"sidepane/log"
	"sidepane/pages"
	"sidepane/ui/layout"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/harmonica"
	"github.com/charmbracelet/lipgloss"
)

const (
	frameRate = 60

	// A critically damped spring at this frequency settles in about 250ms.
	springFrequency = 20.0
	springDamping   = 1.0
)

// FrameMsg advances the sidebar offset animation by one frame.
type FrameMsg struct{}

func frame() tea.Cmd {
	return tea.Tick(time.Second/frameRate, func(time.Time) tea.Msg {
		return FrameMsg{}
	})
}

// Shell lays out the sidebar, the content pane and the menu. The content pane
// always starts where the sidebar ends. The displayed sidebar width follows
// the panel width: it snaps while the user drags and springs toward it
// otherwise.
type Shell struct {
	panel    *layout.Panel
	sidebar  *Sidebar
	content  *Content
	menu     *Menu
	renderer *pages.Renderer
	theme    Theme

	width, height int
	constraints   layout.Constraints
	degradation   layout.Degradation

	spring    harmonica.Spring
	offset    float64
	velocity  float64
	animating bool
	animate   bool

	// What the content pane currently shows, to skip redundant renders.
	renderedSlug   string
	renderedBucket int
	renderedTheme  Theme
}

// NewShell creates a shell around panel listing items.
func NewShell(panel *layout.Panel, items []pages.Page, renderer *pages.Renderer, theme Theme) *Shell {
	s := &Shell{
		panel:    panel,
		sidebar:  NewSidebar(items),
		content:  NewContent(),
		menu:     NewMenu(),
		renderer: renderer,
		theme:    theme,
		spring:   harmonica.NewSpring(harmonica.FPS(frameRate), springFrequency, springDamping),
		offset:   float64(panel.Width()),
		animate:  true,
	}
	ApplyTheme(theme)
	return s
}

// Sidebar returns the section list.
func (s *Shell) Sidebar() *Sidebar {
	return s.sidebar
}

// Content returns the content pane.
func (s *Shell) Content() *Content {
	return s.content
}

// Menu returns the bottom menu.
func (s *Shell) Menu() *Menu {
	return s.menu
}

// Theme returns the active theme.
func (s *Shell) Theme() Theme {
	return s.theme
}

// Constraints returns the layout of what is currently on screen.
func (s *Shell) Constraints() layout.Constraints {
	return s.constraints
}

// Degradation returns the features hidden at the current size.
func (s *Shell) Degradation() layout.Degradation {
	return s.degradation
}

// DisplayedWidth returns the sidebar width currently drawn, which trails the
// panel width while animating.
func (s *Shell) DisplayedWidth() int {
	return int(math.Round(s.offset))
}

// Animating reports whether the offset is still moving toward the panel width.
func (s *Shell) Animating() bool {
	return s.animating
}

// SetAnimate turns the width animation on or off. With it off the displayed
// width jumps straight to the panel width.
func (s *Shell) SetAnimate(animate bool) {
	s.animate = animate
	if !animate && s.animating {
		s.Settle()
	}
}

// SetSize sets the terminal size.
func (s *Shell) SetSize(width, height int) tea.Cmd {
	s.width = max(0, width)
	s.height = max(0, height)
	return s.Sync()
}

// Sync picks up panel changes. It returns a command that starts the offset
// animation when the panel width moved while no drag is in progress.
func (s *Shell) Sync() tea.Cmd {
	h := s.panel.Handle()
	s.menu.SetPanel(h)
	s.sidebar.SetResizing(h.Resizing)

	target := float64(h.Width)
	var cmd tea.Cmd
	switch {
	case h.Resizing, !s.animate:
		// Follow the pointer without lag.
		s.snap()
	case s.offset == target && s.velocity == 0:
	case !s.animating:
		s.animating = true
		cmd = frame()
	}

	s.relayout()
	return cmd
}

// Settle finishes any animation immediately.
func (s *Shell) Settle() {
	s.snap()
	s.relayout()
}

// Update handles animation frames.
func (s *Shell) Update(msg tea.Msg) tea.Cmd {
	if _, ok := msg.(FrameMsg); !ok || !s.animating {
		return nil
	}

	start := time.Now()
	defer func() { log.GetProfiler().RecordFrame(time.Since(start)) }()

	target := float64(s.panel.Width())
	if s.panel.Resizing() {
		s.snap()
		s.relayout()
		return nil
	}

	s.offset, s.velocity = s.spring.Update(s.offset, s.velocity, target)
	if math.Abs(target-s.offset) < 0.5 && math.Abs(s.velocity) < 2 {
		s.snap()
		s.relayout()
		return nil
	}

	s.relayout()
	return frame()
}

func (s *Shell) snap() {
	s.offset = float64(s.panel.Width())
	s.velocity = 0
	s.animating = false
}

// Select shows section idx.
func (s *Shell) Select(idx int) bool {
	if !s.sidebar.SetSelectedIndex(idx) {
		return false
	}
	s.refreshContent()
	return true
}

// Up selects the previous section.
func (s *Shell) Up() bool {
	return s.Select(s.sidebar.SelectedIndex() - 1)
}

// Down selects the next section.
func (s *Shell) Down() bool {
	return s.Select(s.sidebar.SelectedIndex() + 1)
}

// SelectedPage returns the section on screen.
func (s *Shell) SelectedPage() pages.Page {
	return s.sidebar.Selected()
}

// SetTheme switches the theme and re-renders the page for it.
func (s *Shell) SetTheme(t Theme) {
	s.theme = t
	ApplyTheme(t)
	s.refreshContent()
}

// relayout recomputes the constraints for the displayed width and resizes
// every component to match.
func (s *Shell) relayout() {
	c := layout.ComputeConstraints(s.width, s.height, s.DisplayedWidth())
	d := layout.ComputeDegradation(c, s.panel.Collapsed())
	s.constraints = c
	s.degradation = d

	s.sidebar.SetSize(c.SidebarWidth, c.SidebarHeight)
	s.sidebar.SetShowLabels(d.ShouldShowLabels())

	s.content.SetShowHeader(!d.HideContentHeader)
	s.content.SetSize(c.ContentWidth, c.ContentHeight)

	s.menu.SetSize(c.MenuWidth, c.MenuHeight)
	s.menu.SetHideHints(d.HideMenuHints)

	s.refreshContent()
}

// refreshContent renders the selected page for the content width. Renders
// are cached per width bucket, so this is cheap while the sidebar moves.
func (s *Shell) refreshContent() {
	page := s.sidebar.Selected()
	bucket := pages.BucketWidth(s.content.Width())
	if page.Slug == s.renderedSlug && bucket == s.renderedBucket && s.theme == s.renderedTheme {
		return
	}

	out, err := s.renderer.Render(page, bucket, s.theme.String())
	if err != nil {
		log.WarningLog.Printf("showing raw markdown: %v", err)
	}
	s.content.SetPage(page.Title, out)

	s.renderedSlug = page.Slug
	s.renderedBucket = bucket
	s.renderedTheme = s.theme
}

// View renders the whole screen.
func (s *Shell) View() string {
	done := log.GetProfiler().StartRender("shell")
	defer done()

	if s.width == 0 || s.height == 0 {
		return ""
	}
	if s.degradation.ShowMinWarning {
		msg := TextStyles.Warning.Render(fmt.Sprintf("Terminal too small (%dx%d)", s.width, s.height)) +
			"\n" + TextStyles.Muted.Render(fmt.Sprintf("need at least %dx%d", layout.MinWidth, layout.MinHeight))
		return lipgloss.Place(s.width, s.height, lipgloss.Center, lipgloss.Center, msg)
	}

	log.RenderTrace("shell", "sidebar=%d content=%d x=%d animating=%v",
		s.constraints.SidebarWidth, s.constraints.ContentWidth, s.constraints.ContentX, s.animating)

	var body string
	switch {
	case s.constraints.SidebarWidth == 0:
		body = s.content.String()
	case s.constraints.ContentWidth == 0:
		body = s.sidebar.String()
	default:
		body = lipgloss.JoinHorizontal(lipgloss.Top, s.sidebar.String(), s.content.String())
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, s.menu.String())
}
