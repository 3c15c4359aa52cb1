package pages

import (
	"fmt"
	"sync"

	"sidepane/log"

	"github.com/charmbracelet/glamour"
)

// WidthBucket is the granularity of cached renders. Widths are rounded down
// to a multiple of it so that dragging the sidebar a cell or two reuses the
// cached output instead of re-rendering every frame.
const WidthBucket = 4

// MinRenderWidth is the narrowest width a page is wrapped at.
const MinRenderWidth = 20

// Styles understood by Render.
const (
	StyleDark  = "dark"
	StyleLight = "light"
)

type renderKey struct {
	slug  string
	width int
	style string
}

// Renderer turns page markdown into ANSI output and caches the result per
// page, width bucket and style. It is safe for concurrent use.
type Renderer struct {
	mu    sync.Mutex
	cache map[renderKey]string
}

// NewRenderer returns an empty renderer.
func NewRenderer() *Renderer {
	return &Renderer{cache: make(map[renderKey]string)}
}

// BucketWidth rounds width down to the cache granularity.
func BucketWidth(width int) int {
	if width < MinRenderWidth {
		return MinRenderWidth
	}
	return width - width%WidthBucket
}

// Cached returns a previously rendered page without rendering.
func (r *Renderer) Cached(p Page, width int, style string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out, ok := r.cache[renderKey{p.Slug, BucketWidth(width), normalizeStyle(style)}]
	return out, ok
}

// Render returns the page rendered for the given width and style. On a
// glamour failure the raw markdown is returned along with the error so the
// caller still has something to show.
func (r *Renderer) Render(p Page, width int, style string) (string, error) {
	key := renderKey{p.Slug, BucketWidth(width), normalizeStyle(style)}

	r.mu.Lock()
	if out, ok := r.cache[key]; ok {
		r.mu.Unlock()
		return out, nil
	}
	r.mu.Unlock()

	// A TermRenderer keeps per-render state, so concurrent renders each
	// build their own.
	tr, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(key.style),
		glamour.WithWordWrap(key.width),
	)
	if err != nil {
		return p.Body, fmt.Errorf("failed to create renderer: %w", err)
	}
	out, err := tr.Render(p.Body)
	if err != nil {
		return p.Body, fmt.Errorf("failed to render page %s: %w", p.Slug, err)
	}

	r.mu.Lock()
	r.cache[key] = out
	r.mu.Unlock()

	log.RenderTrace("pages", "rendered %s width=%d style=%s", key.slug, key.width, key.style)
	return out, nil
}

// Len returns the number of cached renders.
func (r *Renderer) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.cache)
}

// Reset drops every cached render.
func (r *Renderer) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache = make(map[renderKey]string)
}

func normalizeStyle(style string) string {
	if style == StyleLight {
		return StyleLight
	}
	return StyleDark
}
