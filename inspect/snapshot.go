package inspect

import (
	"fmt"
	"strings"
	"time"

	"sidepane/ui/layout"
)

// Snapshot represents a complete UI state at a point in time.
type Snapshot struct {
	Timestamp time.Time `json:"timestamp"`

	// Version of the snapshot format.
	Version string `json:"version"`

	Terminal TerminalInfo `json:"terminal"`
	AppState AppStateInfo `json:"app_state"`
	Panel    PanelInfo    `json:"panel"`
	Layout   LayoutInfo   `json:"layout"`

	// Components is the root of the component tree.
	Components *Node `json:"components,omitempty"`

	Breakpoints []BreakpointInfo `json:"breakpoints"`
}

// TerminalInfo contains terminal dimensions.
type TerminalInfo struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// AppStateInfo contains application-level state.
type AppStateInfo struct {
	// State is the menu state ("default" or "picker").
	State string `json:"state"`

	HasOverlay  bool   `json:"has_overlay"`
	OverlayType string `json:"overlay_type,omitempty"`

	// Section is the slug of the page on screen.
	Section string `json:"section"`
	Theme   string `json:"theme"`
}

// PanelInfo is the sidebar panel's width state.
type PanelInfo struct {
	// State is "expanded" or "collapsed".
	State             string `json:"state"`
	Width             int    `json:"width"`
	LastExpandedWidth int    `json:"last_expanded_width"`
	Resizing          bool   `json:"resizing"`
	Mounted           bool   `json:"mounted"`

	MinWidth       int `json:"min_width"`
	MaxWidth       int `json:"max_width"`
	CollapsedWidth int `json:"collapsed_width"`
	Breakpoint     int `json:"breakpoint"`
	// Viewport is the terminal width the breakpoint was last checked against.
	Viewport int `json:"viewport"`

	// DisplayedWidth trails Width while the sidebar animates.
	DisplayedWidth int  `json:"displayed_width"`
	Animating      bool `json:"animating"`
}

// LayoutInfo contains the computed layout.
type LayoutInfo struct {
	Mode string `json:"mode"`

	SidebarWidth  int `json:"sidebar_width"`
	SidebarHeight int `json:"sidebar_height"`
	HandleX       int `json:"handle_x"`
	ContentX      int `json:"content_x"`
	ContentWidth  int `json:"content_width"`
	ContentHeight int `json:"content_height"`
	MenuHeight    int `json:"menu_height"`

	Degradation DegradationInfo `json:"degradation"`
}

// DegradationInfo contains active UI degradation flags.
type DegradationInfo struct {
	HideSidebarLabels bool `json:"hide_sidebar_labels"`
	HideContentHeader bool `json:"hide_content_header"`
	SingleLineMenu    bool `json:"single_line_menu"`
	HideMenuHints     bool `json:"hide_menu_hints"`
	ShowMinWarning    bool `json:"show_min_warning"`
}

// BreakpointInfo contains information about a responsive breakpoint.
type BreakpointInfo struct {
	Name      string `json:"name"`
	Threshold int    `json:"threshold"`
	Active    bool   `json:"active"`

	// Dimension is "width" or "height".
	Dimension string `json:"dimension"`
}

// NewSnapshot creates a new snapshot with current timestamp.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Timestamp: time.Now(),
		Version:   "1.0.0",
	}
}

// WithTerminal sets terminal info and returns the snapshot for chaining.
func (s *Snapshot) WithTerminal(width, height int) *Snapshot {
	s.Terminal = TerminalInfo{Width: width, Height: height}
	return s
}

// WithAppState sets the application state and returns the snapshot.
func (s *Snapshot) WithAppState(info AppStateInfo) *Snapshot {
	s.AppState = info
	return s
}

// WithPanel records the panel state. displayed is the width on screen.
func (s *Snapshot) WithPanel(p *layout.Panel, displayed int, animating bool) *Snapshot {
	opts := p.Options()
	s.Panel = PanelInfo{
		State:             p.State().String(),
		Width:             p.Width(),
		LastExpandedWidth: p.LastExpandedWidth(),
		Resizing:          p.Resizing(),
		Mounted:           p.Mounted(),
		MinWidth:          opts.MinWidth,
		MaxWidth:          opts.MaxWidth,
		CollapsedWidth:    opts.CollapsedWidth,
		Breakpoint:        opts.Breakpoint,
		Viewport:          p.Viewport(),
		DisplayedWidth:    displayed,
		Animating:         animating,
	}
	return s
}

// WithLayout sets layout info from constraints and degradation.
func (s *Snapshot) WithLayout(c layout.Constraints, d layout.Degradation) *Snapshot {
	s.Layout = LayoutInfo{
		Mode:          c.Mode.String(),
		SidebarWidth:  c.SidebarWidth,
		SidebarHeight: c.SidebarHeight,
		HandleX:       c.HandleX(),
		ContentX:      c.ContentX,
		ContentWidth:  c.ContentWidth,
		ContentHeight: c.ContentHeight,
		MenuHeight:    c.MenuHeight,
		Degradation: DegradationInfo{
			HideSidebarLabels: d.HideSidebarLabels,
			HideContentHeader: d.HideContentHeader,
			SingleLineMenu:    d.SingleLineMenu,
			HideMenuHints:     d.HideMenuHints,
			ShowMinWarning:    d.ShowMinWarning,
		},
	}

	breakpoint := layout.CollapseBreakpoint
	if s.Panel.Breakpoint > 0 {
		breakpoint = s.Panel.Breakpoint
	}
	s.Breakpoints = []BreakpointInfo{
		{Name: "collapse_sidebar", Threshold: breakpoint, Active: c.TerminalWidth < breakpoint, Dimension: "width"},
		{Name: "hide_labels", Threshold: layout.LabelMinWidth, Active: d.HideSidebarLabels, Dimension: "sidebar"},
		{Name: "hide_menu_hints", Threshold: layout.CompactWidth, Active: d.HideMenuHints, Dimension: "width"},
		{Name: "hide_content_header", Threshold: layout.HeaderHideHeight, Active: d.HideContentHeader, Dimension: "height"},
		{Name: "single_line_menu", Threshold: layout.SingleLineMenuHeight, Active: d.SingleLineMenu, Dimension: "height"},
	}

	return s
}

// WithComponents sets the component tree root.
func (s *Snapshot) WithComponents(root *Node) *Snapshot {
	s.Components = root
	return s
}

// ToText returns a human-readable text representation.
func (s *Snapshot) ToText() string {
	var b strings.Builder

	b.WriteString("=== UI Snapshot ===\n")
	b.WriteString(fmt.Sprintf("Time: %s\n", s.Timestamp.Format(time.RFC3339)))
	b.WriteString(fmt.Sprintf("Terminal: %dx%d\n", s.Terminal.Width, s.Terminal.Height))
	b.WriteString(fmt.Sprintf("State: %s\n", s.AppState.State))
	if s.AppState.Section != "" {
		b.WriteString(fmt.Sprintf("Section: %s\n", s.AppState.Section))
	}

	b.WriteString("\n--- Panel ---\n")
	b.WriteString(fmt.Sprintf("State: %s\n", s.Panel.State))
	b.WriteString(fmt.Sprintf("Width: %d (last expanded %d, displayed %d)\n",
		s.Panel.Width, s.Panel.LastExpandedWidth, s.Panel.DisplayedWidth))
	b.WriteString(fmt.Sprintf("Bounds: [%d, %d] collapsed %d breakpoint %d (viewport %d)\n",
		s.Panel.MinWidth, s.Panel.MaxWidth, s.Panel.CollapsedWidth, s.Panel.Breakpoint, s.Panel.Viewport))
	b.WriteString(fmt.Sprintf("Resizing: %v\n", s.Panel.Resizing))

	b.WriteString("\n--- Layout ---\n")
	b.WriteString(fmt.Sprintf("Mode: %s\n", s.Layout.Mode))
	b.WriteString(fmt.Sprintf("Sidebar: %dx%d (handle at %d)\n",
		s.Layout.SidebarWidth, s.Layout.SidebarHeight, s.Layout.HandleX))
	b.WriteString(fmt.Sprintf("Content: %dx%d at x=%d\n",
		s.Layout.ContentWidth, s.Layout.ContentHeight, s.Layout.ContentX))

	b.WriteString("\n--- Active Breakpoints ---\n")
	for _, bp := range s.Breakpoints {
		status := "[ ]"
		if bp.Active {
			status = "[X]"
		}
		b.WriteString(fmt.Sprintf("  %s %s (threshold: %d %s)\n", status, bp.Name, bp.Threshold, bp.Dimension))
	}

	if s.Components != nil {
		b.WriteString("\n--- Components ---\n")
		writeNodeText(&b, s.Components, 0)
	}

	return b.String()
}

func writeNodeText(b *strings.Builder, node *Node, indent int) {
	prefix := strings.Repeat("  ", indent)

	b.WriteString(fmt.Sprintf("%s%s", prefix, node.Type))
	if node.ID != "" {
		b.WriteString(fmt.Sprintf(" [%s]", node.ID))
	}
	b.WriteString(fmt.Sprintf(" (%dx%d at %d,%d)", node.Bounds.Width, node.Bounds.Height, node.Bounds.X, node.Bounds.Y))

	if node.Truncated != nil {
		b.WriteString(fmt.Sprintf(" TRUNCATED(%d->%d)",
			node.Truncated.OriginalLength,
			node.Truncated.DisplayLength))
	}

	b.WriteString("\n")

	for _, child := range node.Children {
		writeNodeText(b, child, indent+1)
	}
}
