package layout

// Constraints holds the computed layout constraints for all components.
type Constraints struct {
	// Terminal dimensions
	TerminalWidth  int
	TerminalHeight int

	// Computed mode
	Mode LayoutMode

	// Sidebar occupies columns [0, SidebarWidth). The last of those columns
	// is the drag handle.
	SidebarWidth  int
	SidebarHeight int

	// ContentX is the content pane's left offset. It always equals
	// SidebarWidth so the two panes never overlap or leave a gap.
	ContentX      int
	ContentWidth  int
	ContentHeight int

	MenuWidth  int
	MenuHeight int

	ShowMinWarning bool
}

// ComputeConstraints calculates layout constraints for the given terminal
// dimensions and the sidebar width currently on screen.
func ComputeConstraints(width, height, panelWidth int) Constraints {
	width = max(0, width)
	height = max(0, height)

	c := Constraints{
		TerminalWidth:  width,
		TerminalHeight: height,
		Mode:           DetermineMode(width, height),
		ShowMinWarning: width < MinWidth || height < MinHeight,
	}

	c.MenuWidth = width
	c.MenuHeight = computeMenuHeight(height)

	bodyHeight := max(0, height-c.MenuHeight)

	c.SidebarWidth = clamp(panelWidth, 0, width)
	c.SidebarHeight = bodyHeight

	c.ContentX = c.SidebarWidth
	c.ContentWidth = width - c.SidebarWidth
	c.ContentHeight = bodyHeight

	return c
}

// HandleX returns the column of the sidebar's drag handle, or -1 when the
// sidebar has no width.
func (c Constraints) HandleX() int {
	if c.SidebarWidth <= 0 {
		return -1
	}
	return c.SidebarWidth - 1
}

// InSidebar reports whether the cell (x, y) is inside the sidebar body,
// excluding the handle column.
func (c Constraints) InSidebar(x, y int) bool {
	return x >= 0 && x < c.HandleX() && y >= 0 && y < c.SidebarHeight
}

// OnHandle reports whether the cell (x, y) is on the drag handle.
func (c Constraints) OnHandle(x, y int) bool {
	return c.SidebarWidth > 0 && x == c.HandleX() && y >= 0 && y < c.SidebarHeight
}

// InContent reports whether the cell (x, y) is inside the content pane.
func (c Constraints) InContent(x, y int) bool {
	return x >= c.ContentX && x < c.TerminalWidth && y >= 0 && y < c.ContentHeight
}

// computeMenuHeight calculates the menu height based on terminal height.
func computeMenuHeight(totalHeight int) int {
	if totalHeight < SingleLineMenuHeight {
		return MenuMinHeight
	}
	return MenuStandardHeight
}

// ComputeOverlaySize calculates constrained overlay dimensions.
func ComputeOverlaySize(termWidth, termHeight int, preferredWidth, preferredHeight int) (int, int) {
	maxW := termWidth - OverlayMargin*2
	maxH := termHeight - OverlayMargin*2

	w := clamp(preferredWidth, OverlayMinWidth, min(maxW, OverlayMaxWidth))
	h := clamp(preferredHeight, OverlayMinHeight, min(maxH, OverlayMaxHeight))

	return w, h
}

// Helper functions

func clamp(value, minVal, maxVal int) int {
	if value < minVal {
		return minVal
	}
	if value > maxVal {
		return maxVal
	}
	return value
}
