package layout

import (
	"fmt"

	"sidepane/log"
)

// Bounds is the inclusive [Min, Max] range an expanded panel width is clamped to.
type Bounds struct {
	Min int
	Max int
}

// Validate rejects ranges that would pin every width to a single value or below zero.
func (b Bounds) Validate() error {
	if b.Min < 0 {
		return fmt.Errorf("%w: min width %d is negative", ErrInvalidOptions, b.Min)
	}
	if b.Min > b.Max {
		return fmt.Errorf("%w: min width %d exceeds max width %d", ErrInvalidOptions, b.Min, b.Max)
	}
	return nil
}

// Clamp saturates x into the range.
func (b Bounds) Clamp(x int) int {
	return clamp(x, b.Min, b.Max)
}

// ResizeWidth maps a pointer column to a panel width. origin is the column
// of the panel's left edge; a flush-left panel has origin 0.
func ResizeWidth(b Bounds, origin, clientX int) int {
	return b.Clamp(clientX - origin)
}

// Capture is the pointer grab held for the duration of one drag. While it is
// active every motion and release event belongs to the drag, wherever the
// pointer is.
type Capture struct {
	bounds   Bounds
	origin   int
	released bool
}

// Active reports whether the capture still owns the pointer.
func (c *Capture) Active() bool {
	return c != nil && !c.released
}

// Width returns the clamped width for a pointer column.
func (c *Capture) Width(clientX int) int {
	return ResizeWidth(c.bounds, c.origin, clientX)
}

// Release detaches the capture. Releasing twice is harmless.
func (c *Capture) Release() {
	if c == nil {
		return
	}
	c.released = true
}

// Drag tracks pointer-driven width changes for a panel. It only produces
// widths between Begin and End.
type Drag struct {
	bounds  Bounds
	origin  int
	capture *Capture

	// attached counts captures ever acquired; tests use it to observe
	// re-attachment after a bounds change.
	attached int
}

// NewDrag returns an idle drag clamped to b.
func NewDrag(b Bounds) *Drag {
	return &Drag{bounds: b}
}

// Resizing reports whether a drag gesture is in progress.
func (d *Drag) Resizing() bool {
	return d.capture.Active()
}

// Bounds returns the current clamp range.
func (d *Drag) Bounds() Bounds {
	return d.bounds
}

// Origin returns the panel's left edge column.
func (d *Drag) Origin() int {
	return d.origin
}

// SetOrigin rebases the clamp calculation against the panel's left edge.
func (d *Drag) SetOrigin(origin int) {
	d.origin = origin
	if d.Resizing() {
		d.reattach()
	}
}

// SetBounds changes the clamp range. An active capture is released and a
// new one acquired so later moves use the new range.
func (d *Drag) SetBounds(b Bounds) {
	d.bounds = b
	if d.Resizing() {
		d.reattach()
	}
}

// Begin starts a drag gesture. It returns false if one is already active.
func (d *Drag) Begin() bool {
	if d.Resizing() {
		return false
	}
	d.acquire()
	log.InputTrace("drag begin bounds=[%d,%d] origin=%d", d.bounds.Min, d.bounds.Max, d.origin)
	return true
}

// Move returns the clamped width for clientX. ok is false when no drag is active.
func (d *Drag) Move(clientX int) (width int, ok bool) {
	if !d.Resizing() {
		return 0, false
	}
	return d.capture.Width(clientX), true
}

// End finishes the drag gesture. It returns false if none was active.
func (d *Drag) End() bool {
	if !d.Resizing() {
		return false
	}
	d.capture.Release()
	d.capture = nil
	log.InputTrace("drag end")
	return true
}

func (d *Drag) acquire() {
	d.capture = &Capture{bounds: d.bounds, origin: d.origin}
	d.attached++
}

func (d *Drag) reattach() {
	d.capture.Release()
	d.acquire()
}
