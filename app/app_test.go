package app

import (
	"context"
	"errors"
	"testing"

	"sidepane/config"
	"sidepane/pages"
	"sidepane/testing/harness"
	"sidepane/testing/snapshot"
	"sidepane/ui"
	"sidepane/ui/layout"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memState is an in-memory config.AppState.
type memState struct {
	theme   string
	section string

	// disk is what RefreshFromDisk will load, when set.
	disk *memState
}

func (s *memState) GetTheme() string { return s.theme }

func (s *memState) SetTheme(theme string) error {
	s.theme = theme
	return nil
}

func (s *memState) GetLastSection() string { return s.section }

func (s *memState) SetLastSection(slug string) error {
	s.section = slug
	return nil
}

func (s *memState) RefreshFromDisk() (bool, error) {
	if s.disk == nil {
		return false, nil
	}
	s.theme, s.section = s.disk.theme, s.disk.section
	s.disk = nil
	return true, nil
}

type testApp struct {
	*harness.Harness
	home   *home
	state  *memState
	copied []string
}

func newTestApp(t *testing.T, width, height int, tweak ...func(*config.Config)) *testApp {
	t.Helper()
	return newTestAppWith(t, width, height, Options{}, tweak...)
}

func newTestAppWith(t *testing.T, width, height int, opts Options, tweak ...func(*config.Config)) *testApp {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Theme = config.ThemeDark
	cfg.ReduceMotion = true
	for _, fn := range tweak {
		fn(cfg)
	}

	st := &memState{theme: "dark"}
	h, err := newHome(context.Background(), cfg, st, opts)
	require.NoError(t, err)

	app := &testApp{home: h, state: st}
	h.copy = func(s string) error {
		app.copied = append(app.copied, s)
		return nil
	}

	app.Harness = harness.New(t, h, width, height)
	require.Equal(t, stateLoading, h.state, "the first size event starts the prerender")
	app.SendMsg(prerenderDoneMsg{})
	require.Equal(t, stateDefault, h.state)
	return app
}

func (a *testApp) handleX() int {
	return a.home.shell.Constraints().HandleX()
}

func TestAppMountsAtInitialWidth(t *testing.T) {
	a := newTestApp(t, 120, 30)

	assert.True(t, a.home.panel.Mounted())
	assert.Equal(t, layout.DefaultPanelWidth, a.home.panel.Width())
	assert.Equal(t, layout.DefaultPanelWidth, a.home.shell.Constraints().ContentX)
	assert.Equal(t, layout.DefaultPanelWidth-1, a.handleX())
}

func TestAppDragResizesSidebar(t *testing.T) {
	a := newTestApp(t, 120, 30)
	p := a.home.panel

	a.Press(a.handleX(), 5)
	require.True(t, p.Resizing())

	a.Motion(34, 5)
	assert.Equal(t, 35, p.Width(), "the handle follows the pointer")
	assert.Equal(t, 35, a.home.shell.Constraints().ContentX)
	assert.Equal(t, layout.DefaultPanelWidth, p.LastExpandedWidth(), "nothing is remembered mid-drag")
	assert.Contains(t, snapshot.StripANSI(a.View()), "resizing 35")

	a.Release(39, 5)
	assert.False(t, p.Resizing())
	assert.Equal(t, 40, p.Width())
	assert.Equal(t, 40, p.LastExpandedWidth())
	assert.Equal(t, 40, a.home.shell.DisplayedWidth())
}

func TestAppDragClampsToBounds(t *testing.T) {
	a := newTestApp(t, 120, 30)
	p := a.home.panel

	a.Drag(a.handleX(), 5, 60, 110)
	assert.Equal(t, layout.PanelMaxWidth, p.Width())

	a.Drag(a.handleX(), 5, 10, 1)
	assert.Equal(t, layout.PanelMinWidth, p.Width())
	assert.Equal(t, layout.PanelMinWidth, p.LastExpandedWidth())
}

func TestAppDragOwnsPointerOutsideSidebar(t *testing.T) {
	a := newTestApp(t, 120, 30)

	a.Press(a.handleX(), 5)
	// A press over a sidebar item while dragging does not select it.
	a.Press(3, 6)
	assert.Equal(t, 0, a.home.shell.Sidebar().SelectedIndex())
	a.Release(30, 5)
	assert.Equal(t, 31, a.home.panel.Width())
}

func TestAppBlurCancelsDrag(t *testing.T) {
	a := newTestApp(t, 120, 30)
	p := a.home.panel

	a.Press(a.handleX(), 5)
	a.Motion(40, 5)
	require.Equal(t, 41, p.Width())

	a.Blur()
	assert.False(t, p.Resizing())
	assert.Equal(t, layout.DefaultPanelWidth, p.Width(), "an interrupted drag restores the old width")

	a.Release(40, 5)
	assert.Equal(t, layout.DefaultPanelWidth, p.Width(), "a late release is ignored")
}

func TestAppToggleRestoresLastWidth(t *testing.T) {
	a := newTestApp(t, 120, 30)
	p := a.home.panel

	a.Drag(a.handleX(), 5, 32)
	require.Equal(t, 33, p.Width())

	a.SendCtrl(tea.KeyCtrlB)
	assert.True(t, p.Collapsed())
	assert.Equal(t, layout.CollapsedWidth, p.Width())
	assert.Equal(t, layout.CollapsedWidth, a.home.shell.Constraints().ContentX)
	assert.Contains(t, snapshot.StripANSI(a.View()), "collapsed")

	a.Press(a.handleX(), 5)
	assert.False(t, p.Resizing(), "a collapsed sidebar cannot be dragged")

	a.SendKey("[")
	assert.False(t, p.Collapsed())
	assert.Equal(t, 33, p.Width())
}

func TestAppToggleAbortsDrag(t *testing.T) {
	a := newTestApp(t, 120, 30)
	p := a.home.panel

	a.Press(a.handleX(), 5)
	a.Motion(40, 5)
	a.SendKey("[")
	assert.False(t, p.Resizing())
	assert.True(t, p.Collapsed())

	a.SendKey("[")
	assert.Equal(t, layout.DefaultPanelWidth, p.Width(), "the aborted drag width was not remembered")
}

func TestAppBreakpointForcesCollapse(t *testing.T) {
	a := newTestApp(t, 120, 30)
	p := a.home.panel

	a.Resize(70, 30)
	assert.True(t, p.Collapsed())
	assert.Equal(t, layout.CollapsedWidth, a.home.shell.Constraints().SidebarWidth)

	a.Resize(120, 30)
	assert.True(t, p.Collapsed(), "growing the terminal does not expand on its own")

	a.SendKey("[")
	assert.Equal(t, layout.DefaultPanelWidth, p.Width())
}

func TestAppStartsCollapsedBelowBreakpoint(t *testing.T) {
	a := newTestApp(t, 60, 24)
	assert.True(t, a.home.panel.Collapsed())
	assert.Equal(t, layout.CollapsedWidth, a.home.shell.DisplayedWidth())
}

func TestAppKeyboardResize(t *testing.T) {
	a := newTestApp(t, 120, 30)
	p := a.home.panel

	a.SendKey(">")
	a.SendKey(">")
	assert.Equal(t, 30, p.Width())
	a.SendKey("<")
	assert.Equal(t, 29, p.Width())
	assert.Equal(t, 29, p.LastExpandedWidth())

	a.SendKey("[")
	a.SendKey(">")
	assert.Equal(t, layout.CollapsedWidth, p.Width(), "width keys do nothing while collapsed")
}

func TestAppSelectsSections(t *testing.T) {
	a := newTestApp(t, 120, 30)

	a.SendKey("j")
	assert.Equal(t, "assistant", a.home.shell.SelectedPage().Slug)
	assert.Equal(t, "assistant", a.state.section)
	assert.Contains(t, snapshot.StripANSI(a.View()), "Suggested prompts")

	a.SendKey("k")
	a.SendKey("k")
	assert.Equal(t, "overview", a.state.section)

	billing := layout.SidebarHeaderHeight + 4
	a.Press(3, billing)
	assert.Equal(t, "billing", a.home.shell.SelectedPage().Slug)
	assert.Equal(t, "billing", a.state.section)
}

func TestAppRestoresLastSection(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Theme = config.ThemeDark
	st := &memState{theme: "light", section: "privacy"}

	h, err := newHome(context.Background(), cfg, st, Options{})
	require.NoError(t, err)
	assert.Equal(t, "privacy", h.shell.SelectedPage().Slug)
	assert.Equal(t, ui.ThemeLight, h.shell.Theme(), "the stored theme wins over the config")

	st = &memState{section: "gone"}
	cfg.DefaultSection = "usage"
	h, err = newHome(context.Background(), cfg, st, Options{})
	require.NoError(t, err)
	assert.Equal(t, "usage", h.shell.SelectedPage().Slug)
}

func TestAppSectionOptionIsNotStored(t *testing.T) {
	a := newTestAppWith(t, 120, 30, Options{Section: "billing"})
	a.state.section = "privacy"

	assert.Equal(t, "billing", a.home.shell.SelectedPage().Slug)
	a.SendKey("t")
	assert.Equal(t, "privacy", a.state.section, "opening a section from the command line is not a pick")

	a.SendKey("k")
	assert.NotEqual(t, "privacy", a.state.section, "moving the selection stores it")
}

func TestAppFitsCommonSizes(t *testing.T) {
	harness.RunWithCommonSizes(t, func(t *testing.T, size harness.TerminalSize) {
		a := newTestApp(t, size.Width, size.Height)

		view := a.View()
		assert.LessOrEqual(t, snapshot.Lines(view), size.Height)
		for i, w := range snapshot.LineWidths(view) {
			assert.LessOrEqual(t, w, size.Width, "line %d", i)
		}
		assert.Equal(t, size.Width < layout.CollapseBreakpoint, a.home.panel.Collapsed())
	})
}

func TestAppPickerJumpsToSection(t *testing.T) {
	a := newTestApp(t, 120, 30)

	a.SendKey("/")
	require.Equal(t, statePicker, a.home.state)
	assert.Contains(t, snapshot.StripANSI(a.View()), "Go to section")

	for _, r := range "bil" {
		a.SendKey(string(r))
	}
	a.SendSpecialKey(tea.KeyEnter)

	assert.Equal(t, stateDefault, a.home.state)
	assert.Nil(t, a.home.picker)
	assert.Equal(t, "billing", a.home.shell.SelectedPage().Slug)
	assert.Equal(t, "billing", a.state.section)
}

func TestAppPickerEscKeepsSection(t *testing.T) {
	a := newTestApp(t, 120, 30)

	a.SendKey("/")
	a.SendKey("q")
	assert.Equal(t, statePicker, a.home.state, "q is typed into the filter")
	a.SendSpecialKey(tea.KeyEsc)

	assert.Equal(t, stateDefault, a.home.state)
	assert.Equal(t, "overview", a.home.shell.SelectedPage().Slug)
}

func TestAppThemeToggle(t *testing.T) {
	a := newTestApp(t, 120, 30)

	cmd := a.SendKey("t")
	assert.NotNil(t, cmd, "the new theme is prerendered in the background")
	assert.Equal(t, ui.ThemeLight, a.home.shell.Theme())
	assert.Equal(t, "light", a.state.theme)
}

func TestAppFocusPicksUpThemeFromDisk(t *testing.T) {
	a := newTestApp(t, 120, 30)
	a.state.disk = &memState{theme: "light", section: "overview"}

	a.SendMsg(tea.FocusMsg{})
	assert.Equal(t, ui.ThemeLight, a.home.shell.Theme())
}

func TestAppCopySection(t *testing.T) {
	a := newTestApp(t, 120, 30)
	a.SendKey("j")

	cmd := a.SendKey("y")
	require.NotNil(t, cmd)
	require.Len(t, a.copied, 1)
	assert.Equal(t, a.home.shell.SelectedPage().Body, a.copied[0])
	assert.Equal(t, "copied Assistant", a.home.shell.Menu().Notice())

	a.SendMsg(hideNoticeMsg{})
	assert.Empty(t, a.home.shell.Menu().Notice())
}

func TestAppCopyFailureShowsNotice(t *testing.T) {
	a := newTestApp(t, 120, 30)
	a.home.copy = func(string) error { return errors.New("no clipboard") }

	a.SendKey("y")
	assert.Equal(t, "copy failed: no clipboard", a.home.shell.Menu().Notice())
}

func TestAppLoadingBlocksKeys(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Theme = config.ThemeDark
	h, err := newHome(context.Background(), cfg, &memState{}, Options{})
	require.NoError(t, err)

	hs := harness.New(t, h, 120, 30)
	require.Equal(t, stateLoading, h.state)
	assert.Contains(t, snapshot.StripANSI(hs.View()), "Loading sections")

	hs.SendKey("[")
	assert.False(t, h.panel.Collapsed())

	hs.SendMsg(prerenderDoneMsg{results: []pages.RenderResult{{Page: h.pages[0], Err: errors.New("boom")}}})
	assert.Equal(t, stateDefault, h.state)
	assert.Nil(t, h.loadingOverlay)
}

func TestAppConfigReload(t *testing.T) {
	a := newTestApp(t, 120, 30)

	cfg := config.DefaultConfig()
	cfg.Layout.InitialWidth = 32
	cfg.Layout.MinWidth = 30
	cfg.Layout.MaxWidth = 40
	cfg.ReduceMotion = true
	a.SendMsg(configReloadedMsg{cfg: cfg})

	assert.Equal(t, 30, a.home.panel.Width(), "the width is clamped into the new bounds")
	a.Drag(a.handleX(), 5, 80)
	assert.Equal(t, 40, a.home.panel.Width())

	bad := config.DefaultConfig()
	bad.Layout.MinWidth = 50
	a.SendMsg(configReloadedMsg{cfg: bad})
	assert.Equal(t, 40, a.home.panel.Options().MaxWidth, "invalid bounds are ignored")
}

func TestAppConfigReloadKeepsOverrides(t *testing.T) {
	opts := Options{Overrides: config.Overrides{
		Layout:       layout.Options{InitialWidth: 32, MinWidth: 30, MaxWidth: 40},
		ReduceMotion: true,
	}}
	a := newTestAppWith(t, 120, 30, opts, func(c *config.Config) { c.ReduceMotion = false })
	require.Equal(t, 32, a.home.panel.Width())

	a.SendMsg(configReloadedMsg{cfg: config.DefaultConfig()})

	bounds := a.home.panel.Options()
	assert.Equal(t, 30, bounds.MinWidth)
	assert.Equal(t, 40, bounds.MaxWidth)
	a.Drag(a.handleX(), 5, 80)
	assert.Equal(t, 40, a.home.panel.Width(), "the flag maximum still applies")

	a.SendKey("[")
	assert.False(t, a.home.shell.Animating(), "reduce motion from the flag survives the reload")
}

func TestAppAnimatesCollapse(t *testing.T) {
	a := newTestApp(t, 120, 30, func(c *config.Config) { c.ReduceMotion = false })

	cmd := a.SendKey("[")
	require.NotNil(t, cmd)
	assert.True(t, a.home.shell.Animating())

	for i := 0; i < 300 && a.home.shell.Animating(); i++ {
		a.SendMsg(ui.FrameMsg{})
	}
	assert.False(t, a.home.shell.Animating())
	assert.Equal(t, layout.CollapsedWidth, a.home.shell.DisplayedWidth())
}

func TestAppWheelScrollsContent(t *testing.T) {
	a := newTestApp(t, 120, 12)
	content := a.home.shell.Content()

	a.Wheel(60, 3, tea.MouseButtonWheelDown)
	scrolled := content.YOffset()
	assert.Positive(t, scrolled, "overview is longer than the viewport")

	a.Wheel(3, 3, tea.MouseButtonWheelUp)
	assert.Equal(t, scrolled, content.YOffset(), "the wheel over the sidebar does not scroll content")

	a.Wheel(60, 3, tea.MouseButtonWheelUp)
	assert.Equal(t, 0, content.YOffset())
}

func TestAppQuitUnmounts(t *testing.T) {
	a := newTestApp(t, 120, 30)
	a.Press(a.handleX(), 5)

	cmd := a.SendKey("q")
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.False(t, a.home.panel.Mounted())
	assert.False(t, a.home.panel.Resizing())
}

func TestAppSnapshot(t *testing.T) {
	a := newTestApp(t, 120, 30)
	a.SendKey("/")

	s := a.home.snapshot()
	assert.Equal(t, "picker", s.AppState.State)
	assert.True(t, s.AppState.HasOverlay)
	assert.Equal(t, "overview", s.AppState.Section)
	assert.Equal(t, "expanded", s.Panel.State)
	assert.Equal(t, layout.DefaultPanelWidth, s.Layout.ContentX)
	require.NotNil(t, s.Components)
	assert.NotNil(t, s.Components.Find("Handle"))
}
