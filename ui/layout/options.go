package layout

import (
	"errors"
	"fmt"
)

// ErrInvalidOptions is wrapped by every panel configuration error.
var ErrInvalidOptions = errors.New("invalid panel options")

// Options configures a Panel. All widths are in cells.
type Options struct {
	// InitialWidth is the expanded width on mount and the first remembered width.
	InitialWidth int `json:"initial_width"`
	// MinWidth and MaxWidth bound every expanded width, dragged or set.
	MinWidth int `json:"min_width"`
	MaxWidth int `json:"max_width"`
	// CollapsedWidth is the fixed icons-only width.
	CollapsedWidth int `json:"collapsed_width"`
	// Breakpoint is the viewport width below which the panel is forced collapsed.
	Breakpoint int `json:"breakpoint"`
}

// DefaultOptions returns the terminal-scale defaults.
func DefaultOptions() Options {
	return Options{
		InitialWidth:   DefaultPanelWidth,
		MinWidth:       PanelMinWidth,
		MaxWidth:       PanelMaxWidth,
		CollapsedWidth: CollapsedWidth,
		Breakpoint:     CollapseBreakpoint,
	}
}

// Bounds returns the clamp range for expanded widths.
func (o Options) Bounds() Bounds {
	return Bounds{Min: o.MinWidth, Max: o.MaxWidth}
}

// Validate checks the options for a panel that can actually be used.
func (o Options) Validate() error {
	if err := o.Bounds().Validate(); err != nil {
		return err
	}
	if o.CollapsedWidth < 0 {
		return fmt.Errorf("%w: collapsed width %d is negative", ErrInvalidOptions, o.CollapsedWidth)
	}
	if o.CollapsedWidth > o.MinWidth {
		return fmt.Errorf("%w: collapsed width %d exceeds min width %d",
			ErrInvalidOptions, o.CollapsedWidth, o.MinWidth)
	}
	if o.InitialWidth < o.MinWidth || o.InitialWidth > o.MaxWidth {
		return fmt.Errorf("%w: initial width %d outside [%d, %d]",
			ErrInvalidOptions, o.InitialWidth, o.MinWidth, o.MaxWidth)
	}
	if o.Breakpoint < 0 {
		return fmt.Errorf("%w: breakpoint %d is negative", ErrInvalidOptions, o.Breakpoint)
	}
	return nil
}

// Merge returns o with every non-zero field of override applied.
func (o Options) Merge(override Options) Options {
	if override.InitialWidth != 0 {
		o.InitialWidth = override.InitialWidth
	}
	if override.MinWidth != 0 {
		o.MinWidth = override.MinWidth
	}
	if override.MaxWidth != 0 {
		o.MaxWidth = override.MaxWidth
	}
	if override.CollapsedWidth != 0 {
		o.CollapsedWidth = override.CollapsedWidth
	}
	if override.Breakpoint != 0 {
		o.Breakpoint = override.Breakpoint
	}
	return o
}
