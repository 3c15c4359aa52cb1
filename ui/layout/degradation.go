package layout

// Degradation holds flags indicating which UI features should be hidden or simplified.
type Degradation struct {
	// Sidebar shows icons only (collapsed, or too narrow for labels)
	HideSidebarLabels bool

	// Component simplification
	HideContentHeader bool // height < HeaderHideHeight
	SingleLineMenu    bool // height < SingleLineMenuHeight
	HideMenuHints     bool // width < CompactWidth

	// Critical degradation
	ShowMinWarning bool
}

// ComputeDegradation calculates which UI features should be degraded.
func ComputeDegradation(c Constraints, collapsed bool) Degradation {
	return Degradation{
		HideSidebarLabels: collapsed || c.SidebarWidth < LabelMinWidth,
		HideContentHeader: c.TerminalHeight < HeaderHideHeight,
		SingleLineMenu:    c.MenuHeight <= MenuMinHeight,
		HideMenuHints:     c.TerminalWidth < CompactWidth,
		ShowMinWarning:    c.ShowMinWarning,
	}
}

// ShouldShowLabels returns true if sidebar items render their titles.
func (d Degradation) ShouldShowLabels() bool {
	return !d.HideSidebarLabels
}

// ContentHeaderHeight returns the rows taken by the content header bar.
func (d Degradation) ContentHeaderHeight() int {
	if d.HideContentHeader {
		return 0
	}
	return ContentHeaderHeight
}
