package pages

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// RenderResult is the outcome of rendering one page.
type RenderResult struct {
	Page    Page
	Content string
	Err     error
}

// Prerender renders all pages concurrently so switching sections never waits
// on glamour. Concurrency is limited to the number of CPUs. A render failure
// is reported in its result and does not stop the others; only cancellation
// of ctx aborts the batch.
func Prerender(ctx context.Context, r *Renderer, pages []Page, width int, style string) ([]RenderResult, error) {
	results := make([]RenderResult, len(pages))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, p := range pages {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := r.Render(p, width, style)
			results[i] = RenderResult{Page: p, Content: out, Err: err}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
