package layout

// Width breakpoints
const (
	// MinWidth is the absolute minimum terminal width.
	MinWidth = 40

	// CompactWidth is the threshold for compact layout.
	CompactWidth = 80

	// StandardWidth is the threshold for standard layout.
	StandardWidth = 120

	// FullWidth is the threshold for full layout with all features.
	FullWidth = 160
)

// Height breakpoints
const (
	// MinHeight is the absolute minimum terminal height.
	MinHeight = 12

	// CompactHeight triggers compact mode features.
	CompactHeight = 24

	// StandardHeight is the threshold for standard layout.
	StandardHeight = 40

	// FullHeight is the threshold for full layout.
	FullHeight = 50
)

// Sidebar panel constraints, in cells.
const (
	// DefaultPanelWidth is the expanded width a panel starts with.
	DefaultPanelWidth = 28

	// PanelMinWidth is the narrowest an expanded panel can be dragged.
	PanelMinWidth = 20

	// PanelMaxWidth is the widest an expanded panel can be dragged.
	PanelMaxWidth = 48

	// CollapsedWidth is the icons-only width (icon column + handle).
	CollapsedWidth = 6

	// CollapseBreakpoint is the terminal width below which the panel is
	// forced into collapsed mode.
	CollapseBreakpoint = 80

	// LabelMinWidth is the narrowest sidebar that still shows labels.
	LabelMinWidth = 10
)

// Menu constraints
const (
	// MenuMinHeight is the single-line menu height.
	MenuMinHeight = 1

	// MenuStandardHeight is the menu height with a separate status row.
	MenuStandardHeight = 2
)

// Component constraints
const (
	// ContentHeaderHeight is the page title bar above the content viewport.
	ContentHeaderHeight = 1

	// SidebarHeaderHeight is the brand row plus the spacer under it.
	SidebarHeaderHeight = 2

	// HeaderHideHeight hides the content header on very short terminals.
	HeaderHideHeight = 16

	// SingleLineMenuHeight collapses the menu to one row.
	SingleLineMenuHeight = 20
)

// Overlay constraints
const (
	// OverlayMaxWidth is the maximum overlay width.
	OverlayMaxWidth = 60

	// OverlayMaxHeight is the maximum overlay height.
	OverlayMaxHeight = 20

	// OverlayMinWidth is the minimum overlay width.
	OverlayMinWidth = 24

	// OverlayMinHeight is the minimum overlay height.
	OverlayMinHeight = 6

	// OverlayMargin is the minimum margin from terminal edges.
	OverlayMargin = 2
)
