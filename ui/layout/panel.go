package layout

import (
	"sidepane/log"
)

// PanelState is the collapse mode of a panel.
type PanelState int

const (
	// Expanded panels show labels and can be dragged between the bounds.
	Expanded PanelState = iota
	// Collapsed panels are pinned to the collapsed width.
	Collapsed
)

// String returns the string representation of the panel state.
func (s PanelState) String() string {
	switch s {
	case Expanded:
		return "expanded"
	case Collapsed:
		return "collapsed"
	default:
		return "unknown"
	}
}

// Handle is the view of a panel a host layout needs to render it.
type Handle struct {
	Width     int
	Resizing  bool
	Collapsed bool
}

// Panel owns the width of a collapsible, resizable sidebar. It is the single
// owner of the collapse state and the remembered expanded width; the drag is
// only consulted for the width it computes.
//
// Invariant: while expanded and not resizing, Width() == LastExpandedWidth().
// While collapsed, Width() == CollapsedWidth.
type Panel struct {
	opts Options

	state        PanelState
	width        int
	lastExpanded int
	drag         *Drag

	mounted  bool
	viewport int
}

// NewPanel validates opts and returns an expanded, unmounted panel at the
// initial width.
func NewPanel(opts Options) (*Panel, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Panel{
		opts:         opts,
		state:        Expanded,
		width:        opts.InitialWidth,
		lastExpanded: opts.InitialWidth,
		drag:         NewDrag(opts.Bounds()),
	}, nil
}

// Options returns the options the panel currently runs with.
func (p *Panel) Options() Options {
	return p.opts
}

// Width returns the current panel width.
func (p *Panel) Width() int {
	return p.width
}

// LastExpandedWidth returns the width an expand will restore.
func (p *Panel) LastExpandedWidth() int {
	return p.lastExpanded
}

// State returns the collapse mode.
func (p *Panel) State() PanelState {
	return p.state
}

// Collapsed reports whether the panel is in collapsed mode.
func (p *Panel) Collapsed() bool {
	return p.state == Collapsed
}

// Resizing reports whether a drag gesture is in progress.
func (p *Panel) Resizing() bool {
	return p.drag.Resizing()
}

// Mounted reports whether the panel is attached to a host.
func (p *Panel) Mounted() bool {
	return p.mounted
}

// Viewport returns the last viewport width seen by EnforceBreakpoint.
func (p *Panel) Viewport() int {
	return p.viewport
}

// Handle returns the host-facing view of the panel.
func (p *Panel) Handle() Handle {
	return Handle{
		Width:     p.width,
		Resizing:  p.Resizing(),
		Collapsed: p.Collapsed(),
	}
}

// Drag exposes the drag controller, mainly for rebasing its origin.
func (p *Panel) Drag() *Drag {
	return p.drag
}

// Mount attaches the panel to a host with the given viewport width and
// applies the collapse breakpoint immediately.
func (p *Panel) Mount(viewportWidth int) {
	p.mounted = true
	log.LayoutTrace("panel mount viewport=%d width=%d", viewportWidth, p.width)
	p.EnforceBreakpoint(viewportWidth)
}

// Unmount detaches the panel and releases any pointer capture.
func (p *Panel) Unmount() {
	if !p.mounted {
		return
	}
	p.abortDrag()
	p.mounted = false
	log.LayoutTrace("panel unmount")
}

// Toggle flips between expanded and collapsed. Collapsing pins the width to
// the collapsed width; expanding restores the last expanded width. A drag in
// progress is aborted first. Returns false when unmounted.
func (p *Panel) Toggle() bool {
	if !p.mounted {
		return false
	}
	p.abortDrag()

	switch p.state {
	case Expanded:
		p.collapse()
	case Collapsed:
		p.state = Expanded
		p.setWidth(p.lastExpanded)
	}
	log.LayoutTrace("panel toggle state=%s width=%d last=%d", p.state, p.width, p.lastExpanded)
	return true
}

// EnforceBreakpoint records the viewport width and forces the panel collapsed
// when it is below the breakpoint, overriding user intent and aborting any
// drag. Returns true when it forced a collapse.
func (p *Panel) EnforceBreakpoint(viewportWidth int) bool {
	if !p.mounted {
		return false
	}
	p.viewport = viewportWidth
	if viewportWidth >= p.opts.Breakpoint {
		return false
	}
	p.abortDrag()
	p.collapse()
	log.LayoutTrace("panel breakpoint viewport=%d < %d, collapsed", viewportWidth, p.opts.Breakpoint)
	return true
}

// BeginDrag starts a resize gesture. Collapsed panels have no drag handle,
// so this returns false for them, when unmounted, or when already dragging.
func (p *Panel) BeginDrag() bool {
	if !p.mounted || p.state == Collapsed {
		return false
	}
	return p.drag.Begin()
}

// DragTo applies a pointer move. The width follows the pointer, clamped to the
// bounds; nothing is remembered until the drag ends. Returns false when no
// drag is active.
func (p *Panel) DragTo(clientX int) bool {
	width, ok := p.drag.Move(clientX)
	if !ok {
		return false
	}
	p.setWidth(width)
	return true
}

// EndDrag finishes the gesture and remembers the settled width.
func (p *Panel) EndDrag() bool {
	if !p.drag.End() {
		return false
	}
	p.recordExpandedWidth()
	return true
}

// CancelDrag aborts the gesture (focus loss, pointer cancel) and restores the
// width the panel had before the drag started.
func (p *Panel) CancelDrag() bool {
	if !p.Resizing() {
		return false
	}
	p.abortDrag()
	return true
}

// SetWidth sets the expanded width directly, clamped to the bounds. It is
// ignored while collapsed.
func (p *Panel) SetWidth(width int) bool {
	if p.state == Collapsed {
		return false
	}
	p.setWidth(p.opts.Bounds().Clamp(width))
	return true
}

// SetBounds changes the clamp range. Widths outside the new range are
// clamped and an active drag continues under the new range.
func (p *Panel) SetBounds(minWidth, maxWidth int) error {
	next := p.opts
	next.MinWidth = minWidth
	next.MaxWidth = maxWidth
	next.InitialWidth = next.Bounds().Clamp(next.InitialWidth)
	if err := next.Validate(); err != nil {
		return err
	}
	p.opts = next
	b := next.Bounds()
	p.drag.SetBounds(b)

	p.lastExpanded = b.Clamp(p.lastExpanded)
	if p.state == Expanded {
		p.setWidth(b.Clamp(p.width))
	}
	log.LayoutTrace("panel bounds=[%d,%d] width=%d last=%d", b.Min, b.Max, p.width, p.lastExpanded)
	return nil
}

// setWidth assigns the width and applies the record rule.
func (p *Panel) setWidth(width int) {
	if width == p.width {
		return
	}
	p.width = width
	p.recordExpandedWidth()
}

// recordExpandedWidth remembers the width only while it is a settled,
// expanded width.
func (p *Panel) recordExpandedWidth() {
	if p.state == Collapsed || p.Resizing() {
		return
	}
	p.lastExpanded = p.width
}

func (p *Panel) collapse() {
	p.state = Collapsed
	p.width = p.opts.CollapsedWidth
}

// abortDrag ends a drag without remembering its width.
func (p *Panel) abortDrag() {
	if !p.drag.End() {
		return
	}
	if p.state == Expanded {
		p.width = p.lastExpanded
	}
}
