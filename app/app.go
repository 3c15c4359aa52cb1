package app

import (
	"context"
	"fmt"
	"time"

	"sidepane/config"
	"sidepane/inspect"
	"sidepane/keys"
	"sidepane/log"
	"sidepane/pages"
	"sidepane/ui"
	"sidepane/ui/layout"
	"sidepane/ui/overlay"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// wheelStep is how many lines one wheel notch scrolls the content.
const wheelStep = 3

// Options are the per-run settings that come from the command line.
type Options struct {
	// ConfigPath is watched for changes when set.
	ConfigPath string
	// Overrides are re-applied to every reloaded config.
	Overrides config.Overrides
	// Section opens this section for this run only; the stored last
	// section is not touched until the user picks one.
	Section string
}

// Run is the main entrypoint into the application. When opts.ConfigPath is
// set the file is watched and bound changes are applied while running.
func Run(ctx context.Context, cfg *config.Config, state config.AppState, opts Options) error {
	h, err := newHome(ctx, cfg, state, opts)
	if err != nil {
		return err
	}

	if opts.ConfigPath != "" {
		w, err := config.NewWatcher(opts.ConfigPath, config.DefaultDebounce)
		if err != nil {
			log.WarningLog.Printf("config reload disabled: %v", err)
		} else if err := w.Start(ctx); err != nil {
			log.WarningLog.Printf("config reload disabled: %v", err)
			w.Stop()
		} else {
			defer w.Stop()
			h.configUpdates = w.Updates()
		}
	}

	p := tea.NewProgram(
		h,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // Drag motion and wheel
		tea.WithReportFocus(),     // Blur cancels a drag
		tea.WithContext(ctx),
	)
	_, err = p.Run()
	return err
}

type state int

const (
	stateDefault state = iota
	// statePicker is the state when the section picker is open.
	statePicker
	// stateLoading is the state while pages are rendered at startup.
	stateLoading
)

func (s state) String() string {
	switch s {
	case statePicker:
		return "picker"
	case stateLoading:
		return "loading"
	default:
		return "default"
	}
}

// refresher is implemented by app states that can pick up writes made by
// another process.
type refresher interface {
	RefreshFromDisk() (bool, error)
}

type home struct {
	ctx context.Context

	// -- Storage and Configuration --

	appConfig *config.Config
	// appState stores the theme and last section between sessions
	appState config.AppState
	// configUpdates delivers reloaded configs; nil when not watching
	configUpdates <-chan *config.Config
	// overrides win over every config, reloaded ones included
	overrides config.Overrides

	// -- State --

	state state
	pages []pages.Page

	// -- UI Components --

	panel    *layout.Panel
	renderer *pages.Renderer
	shell    *ui.Shell
	spinner  spinner.Model
	// picker is the section picker overlay
	picker *overlay.SectionPickerOverlay
	// loadingOverlay shows page prerender progress
	loadingOverlay *overlay.LoadingOverlay

	// copy writes to the system clipboard
	copy func(string) error
}

func newHome(ctx context.Context, cfg *config.Config, appState config.AppState, opts Options) (*home, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := opts.Overrides.Apply(cfg); err != nil {
		return nil, err
	}
	panel, err := layout.NewPanel(cfg.Layout)
	if err != nil {
		return nil, err
	}
	items, err := pages.Load()
	if err != nil {
		return nil, err
	}

	theme := ui.ParseTheme(cfg.Theme)
	if stored := appState.GetTheme(); stored != "" {
		theme = ui.ParseTheme(stored)
	}

	renderer := pages.NewRenderer()
	h := &home{
		ctx:       ctx,
		appConfig: cfg,
		appState:  appState,
		overrides: opts.Overrides,
		state:     stateDefault,
		pages:     items,
		panel:     panel,
		renderer:  renderer,
		shell:     ui.NewShell(panel, items, renderer, theme),
		spinner:   spinner.New(spinner.WithSpinner(spinner.MiniDot)),
		copy:      clipboard.WriteAll,
	}
	h.shell.SetAnimate(!cfg.ReduceMotion)

	section := opts.Section
	if pages.Index(items, section) < 0 {
		section = appState.GetLastSection()
	}
	if pages.Index(items, section) < 0 {
		section = cfg.DefaultSection
	}
	if idx := pages.Index(items, section); idx >= 0 {
		h.shell.Select(idx)
	}

	return h, nil
}

// updateHandleWindowSizeEvent mounts the panel on the first size event and
// applies the collapse breakpoint on every later one.
func (m *home) updateHandleWindowSizeEvent(msg tea.WindowSizeMsg) tea.Cmd {
	if !m.panel.Mounted() {
		m.panel.Mount(msg.Width)
		m.shell.SetSize(msg.Width, msg.Height)
		// Nothing to animate from on the first frame.
		m.shell.Settle()
		return m.startLoading()
	}

	m.panel.EnforceBreakpoint(msg.Width)
	cmd := m.shell.SetSize(msg.Width, msg.Height)
	m.sizeOverlays(msg.Width, msg.Height)
	return cmd
}

func (m *home) sizeOverlays(width, height int) {
	w, _ := layout.ComputeOverlaySize(width, height, 50, 12)
	if m.picker != nil {
		m.picker.SetWidth(w)
	}
	if m.loadingOverlay != nil {
		m.loadingOverlay.SetWidth(w)
	}
}

// startLoading shows the loading overlay and renders every page for the
// current content width in the background.
func (m *home) startLoading() tea.Cmd {
	c := m.shell.Constraints()
	m.loadingOverlay = overlay.NewLoadingOverlay("Loading sections", &m.spinner)
	m.loadingOverlay.SetStatus("Rendering")
	m.loadingOverlay.SetProgress(0, len(m.pages))
	m.sizeOverlays(c.TerminalWidth, c.TerminalHeight)
	m.state = stateLoading
	return tea.Batch(m.spinner.Tick, m.prerender())
}

func (m *home) prerender() tea.Cmd {
	ctx := m.ctx
	renderer := m.renderer
	items := m.pages
	width := pages.BucketWidth(m.shell.Content().Width())
	style := m.shell.Theme().String()
	return func() tea.Msg {
		results, err := pages.Prerender(ctx, renderer, items, width, style)
		return prerenderDoneMsg{results: results, err: err}
	}
}

func (m *home) Init() tea.Cmd {
	return m.waitForConfig()
}

func (m *home) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := m.update(msg)
	if _, ok := msg.(ui.FrameMsg); !ok || !m.shell.Animating() {
		m.writeSnapshot()
	}
	return model, cmd
}

func (m *home) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ui.FrameMsg:
		return m, m.shell.Update(msg)
	case keyupMsg:
		m.shell.Menu().ClearKeydown()
		return m, nil
	case hideNoticeMsg:
		m.shell.Menu().ClearNotice()
		return m, nil
	case prerenderDoneMsg:
		return m, m.handlePrerenderDone(msg)
	case configReloadedMsg:
		return m, tea.Batch(m.applyConfig(msg.cfg), m.waitForConfig())
	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		return m, m.updateHandleWindowSizeEvent(msg)
	case tea.BlurMsg:
		// The release may never arrive once the terminal loses focus.
		if m.panel.CancelDrag() {
			log.InfoLog.Printf("drag cancelled on focus loss, width %d", m.panel.Width())
			return m, m.shell.Sync()
		}
		return m, nil
	case tea.FocusMsg:
		m.refreshState()
		return m, nil
	case spinner.TickMsg:
		if m.state != stateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *home) handlePrerenderDone(msg prerenderDoneMsg) tea.Cmd {
	failed := 0
	for _, r := range msg.results {
		if r.Err != nil {
			failed++
			log.WarningLog.Printf("failed to render %s: %v", r.Page.Slug, r.Err)
		}
	}
	if msg.err != nil {
		log.WarningLog.Printf("prerender stopped: %v", msg.err)
	}
	log.InfoLog.Printf("prerendered %d sections, %d failed", len(msg.results), failed)

	m.loadingOverlay = nil
	if m.state == stateLoading {
		m.state = stateDefault
	}
	return nil
}

// applyConfig applies the parts of a reloaded config that can change while
// running: the width bounds and reduce motion. Command line overrides are
// merged over the file first.
func (m *home) applyConfig(cfg *config.Config) tea.Cmd {
	if cfg == nil {
		return nil
	}
	if err := m.overrides.Apply(cfg); err != nil {
		log.WarningLog.Printf("ignoring reloaded config: %v", err)
		return nil
	}
	if err := m.panel.SetBounds(cfg.Layout.MinWidth, cfg.Layout.MaxWidth); err != nil {
		log.WarningLog.Printf("ignoring reloaded bounds: %v", err)
		return nil
	}
	m.appConfig = cfg
	m.shell.SetAnimate(!cfg.ReduceMotion)
	log.InfoLog.Printf("applied config: bounds [%d, %d]", cfg.Layout.MinWidth, cfg.Layout.MaxWidth)
	return m.shell.Sync()
}

func (m *home) waitForConfig() tea.Cmd {
	ch := m.configUpdates
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		cfg, ok := <-ch
		if !ok {
			return nil
		}
		return configReloadedMsg{cfg: cfg}
	}
}

// refreshState picks up a theme picked in another instance.
func (m *home) refreshState() {
	r, ok := m.appState.(refresher)
	if !ok {
		return
	}
	refreshed, err := r.RefreshFromDisk()
	if err != nil {
		log.WarningLog.Printf("failed to refresh state: %v", err)
		return
	}
	if !refreshed {
		return
	}
	if name := m.appState.GetTheme(); name != "" {
		if t := ui.ParseTheme(name); t != m.shell.Theme() {
			m.shell.SetTheme(t)
		}
	}
}

// handleMouse routes pointer events. While a drag is active the panel owns
// every motion and release, wherever the pointer is.
func (m *home) handleMouse(msg tea.MouseMsg) tea.Cmd {
	c := m.shell.Constraints()
	// The handle is the sidebar's last column, so a pointer on column x
	// asks for a width of x+1.
	clientX := msg.X + 1

	if m.panel.Resizing() {
		switch msg.Action {
		case tea.MouseActionMotion:
			m.panel.DragTo(clientX)
		case tea.MouseActionRelease:
			m.panel.DragTo(clientX)
			m.panel.EndDrag()
			log.InfoLog.Printf("sidebar resized to %d", m.panel.Width())
		}
		return m.shell.Sync()
	}

	if m.state != stateDefault || msg.Action != tea.MouseActionPress {
		return nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		if c.InContent(msg.X, msg.Y) {
			m.shell.Content().ScrollUp(wheelStep)
		}
	case tea.MouseButtonWheelDown:
		if c.InContent(msg.X, msg.Y) {
			m.shell.Content().ScrollDown(wheelStep)
		}
	case tea.MouseButtonLeft:
		switch {
		case c.OnHandle(msg.X, msg.Y):
			if m.panel.BeginDrag() {
				return m.shell.Sync()
			}
		case c.InSidebar(msg.X, msg.Y):
			if idx := m.shell.Sidebar().ItemAt(msg.Y); idx >= 0 {
				m.selectSection(idx)
			}
		}
	}
	return nil
}

// handleMenuHighlighting returns a command to highlight the pressed key in the menu.
func (m *home) handleMenuHighlighting(msg tea.KeyMsg) tea.Cmd {
	if m.state == stateLoading {
		return nil
	}
	name, ok := keys.GlobalKeyStringsMap[msg.String()]
	if !ok {
		return nil
	}
	if m.state == statePicker && name != keys.KeyUp && name != keys.KeyDown &&
		name != keys.KeyEnter && name != keys.KeyEsc {
		return nil
	}
	return m.keydownCallback(name)
}

func (m *home) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case stateLoading:
		if msg.String() == "ctrl+c" {
			return m.handleQuit()
		}
		return m, nil
	case statePicker:
		return m.handlePickerKey(msg)
	}

	highlightCmd := m.handleMenuHighlighting(msg)

	name, ok := keys.GlobalKeyStringsMap[msg.String()]
	if !ok {
		return m, nil
	}

	var cmd tea.Cmd
	switch name {
	case keys.KeyQuit:
		return m.handleQuit()
	case keys.KeyUp:
		if m.shell.Up() {
			m.persistSection()
		}
	case keys.KeyDown:
		if m.shell.Down() {
			m.persistSection()
		}
	case keys.KeyToggle:
		if m.panel.Toggle() {
			log.InfoLog.Printf("sidebar %s, width %d", m.panel.State(), m.panel.Width())
			cmd = m.shell.Sync()
		}
	case keys.KeyShrink:
		if m.panel.SetWidth(m.panel.Width() - 1) {
			cmd = m.shell.Sync()
		}
	case keys.KeyGrow:
		if m.panel.SetWidth(m.panel.Width() + 1) {
			cmd = m.shell.Sync()
		}
	case keys.KeyPageUp:
		m.shell.Content().PageUp()
	case keys.KeyPageDown:
		m.shell.Content().PageDown()
	case keys.KeyPicker:
		m.openPicker()
	case keys.KeyTheme:
		cmd = m.toggleTheme()
	case keys.KeyCopy:
		cmd = m.copySection()
	}

	return m, tea.Batch(highlightCmd, cmd)
}

func (m *home) handlePickerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	highlightCmd := m.handleMenuHighlighting(msg)
	if !m.picker.HandleKeyPress(msg) {
		return m, highlightCmd
	}

	if m.picker.Selected >= 0 {
		m.selectSection(m.picker.Selected)
	}
	m.picker = nil
	m.state = stateDefault
	m.shell.Menu().SetState(ui.StateDefault)
	return m, highlightCmd
}

func (m *home) openPicker() {
	options := make([]overlay.SectionOption, len(m.pages))
	for i, p := range m.pages {
		options[i] = overlay.SectionOption{Icon: p.Icon, Title: p.Title}
	}
	m.picker = overlay.NewSectionPickerOverlay(options, m.shell.Sidebar().SelectedIndex())
	c := m.shell.Constraints()
	m.sizeOverlays(c.TerminalWidth, c.TerminalHeight)
	m.state = statePicker
	m.shell.Menu().SetState(ui.StatePicker)
}

func (m *home) selectSection(idx int) {
	if m.shell.Select(idx) {
		m.persistSection()
	}
}

func (m *home) persistSection() {
	if err := m.appState.SetLastSection(m.shell.SelectedPage().Slug); err != nil {
		log.WarningLog.Printf("failed to save last section: %v", err)
	}
}

// toggleTheme switches the theme, remembers it and warms the render cache
// for the new theme in the background.
func (m *home) toggleTheme() tea.Cmd {
	t := m.shell.Theme().Toggle()
	m.shell.SetTheme(t)
	if err := m.appState.SetTheme(t.String()); err != nil {
		log.WarningLog.Printf("failed to save theme: %v", err)
	}
	return m.prerender()
}

func (m *home) copySection() tea.Cmd {
	page := m.shell.SelectedPage()
	if err := m.copy(page.Body); err != nil {
		return m.showNotice(fmt.Sprintf("copy failed: %v", err))
	}
	return m.showNotice("copied " + page.Title)
}

func (m *home) handleQuit() (tea.Model, tea.Cmd) {
	// Unmounting releases any pointer capture before the program exits.
	m.panel.Unmount()
	return m, tea.Quit
}

type keyupMsg struct{}

// keydownCallback clears the menu option highlighting after 500ms.
func (m *home) keydownCallback(name keys.KeyName) tea.Cmd {
	m.shell.Menu().Keydown(name)
	return func() tea.Msg {
		select {
		case <-m.ctx.Done():
		case <-time.After(500 * time.Millisecond):
		}

		return keyupMsg{}
	}
}

// hideNoticeMsg clears the menu notice.
type hideNoticeMsg struct{}

// showNotice shows text in the menu and returns a command that clears it
// after 2 seconds.
func (m *home) showNotice(text string) tea.Cmd {
	m.shell.Menu().SetNotice(text)
	return func() tea.Msg {
		select {
		case <-m.ctx.Done():
		case <-time.After(2 * time.Second):
		}

		return hideNoticeMsg{}
	}
}

// prerenderDoneMsg is sent when the background page renders finish.
type prerenderDoneMsg struct {
	results []pages.RenderResult
	err     error
}

// configReloadedMsg carries a config the watcher reloaded from disk.
type configReloadedMsg struct {
	cfg *config.Config
}

func (m *home) writeSnapshot() {
	if !inspect.IsEnabled() {
		return
	}
	if err := inspect.WriteSnapshot(m.snapshot()); err != nil {
		log.WarningLog.Printf("failed to write inspect snapshot: %v", err)
	}
}

func (m *home) snapshot() *inspect.Snapshot {
	info := inspect.AppStateInfo{
		State:   m.state.String(),
		Section: m.shell.SelectedPage().Slug,
		Theme:   m.shell.Theme().String(),
	}
	switch m.state {
	case statePicker:
		info.HasOverlay, info.OverlayType = true, "picker"
	case stateLoading:
		info.HasOverlay, info.OverlayType = true, "loading"
	}
	return m.shell.Snapshot().WithAppState(info)
}

func (m *home) View() string {
	mainView := m.shell.View()

	switch m.state {
	case statePicker:
		if m.picker == nil {
			log.ErrorLog.Printf("picker overlay is nil")
			return mainView
		}
		return overlay.PlaceOverlay(0, 0, m.picker.Render(), mainView, true, true)
	case stateLoading:
		if m.loadingOverlay == nil {
			log.ErrorLog.Printf("loading overlay is nil")
			return mainView
		}
		return overlay.PlaceOverlay(0, 0, m.loadingOverlay.Render(), mainView, true, true)
	}

	return mainView
}
