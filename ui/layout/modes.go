// Package layout provides the resizable sidebar state machine and the
// responsive layout calculations built on top of it.
package layout

// LayoutMode represents the current layout mode based on terminal dimensions.
type LayoutMode int

const (
	// LayoutFull is for large terminals (>= 160w x 50h).
	LayoutFull LayoutMode = iota

	// LayoutStandard is for medium terminals (>= 120w x 40h).
	LayoutStandard

	// LayoutCompact is for smaller terminals (>= 80w x 24h).
	// The sidebar is usable but the menu may drop to one row.
	LayoutCompact

	// LayoutMinimal is for terminals below the collapse breakpoint or
	// below the absolute minimum height.
	LayoutMinimal
)

// String returns the string representation of the layout mode.
func (m LayoutMode) String() string {
	switch m {
	case LayoutFull:
		return "full"
	case LayoutStandard:
		return "standard"
	case LayoutCompact:
		return "compact"
	case LayoutMinimal:
		return "minimal"
	default:
		return "unknown"
	}
}

// DetermineMode calculates the appropriate layout mode for the given dimensions.
func DetermineMode(width, height int) LayoutMode {
	if width < CompactWidth || height < MinHeight {
		return LayoutMinimal
	}

	// Use the more restrictive dimension
	widthMode := determineWidthMode(width)
	heightMode := determineHeightMode(height)
	if widthMode > heightMode {
		return widthMode
	}
	return heightMode
}

func determineWidthMode(width int) LayoutMode {
	switch {
	case width >= FullWidth:
		return LayoutFull
	case width >= StandardWidth:
		return LayoutStandard
	case width >= CompactWidth:
		return LayoutCompact
	default:
		return LayoutMinimal
	}
}

func determineHeightMode(height int) LayoutMode {
	switch {
	case height >= FullHeight:
		return LayoutFull
	case height >= StandardHeight:
		return LayoutStandard
	case height >= MinHeight:
		return LayoutCompact
	default:
		return LayoutMinimal
	}
}
