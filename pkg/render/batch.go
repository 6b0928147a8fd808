package render

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/cardforge/pkg/records"
)

// DefaultConcurrency bounds the render worker pool. Compositing is CPU
// bound, so a small fixed pool keeps memory predictable for large lists.
const DefaultConcurrency = 4

// File is one rendered invitation.
type File struct {
	// Name is the archive-safe file name, e.g. "003-jane-smith.png".
	Name string

	// Data is the encoded PNG.
	Data []byte
}

// RenderBatch renders one invitation per record concurrently and returns
// the files in record order. File names carry a 1-based index prefix so
// duplicate invitee names cannot collide and the archive lists in the
// same order as the uploaded list.
//
// The first render error cancels the remaining work.
func (r *Renderer) RenderBatch(ctx context.Context, recs []records.Record, concurrency int) ([]File, error) {
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	files := make([]File, len(recs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, rec := range recs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := r.Render(rec.Name, rec.Table)
			if err != nil {
				return fmt.Errorf("render %q: %w", rec.Name, err)
			}
			files[i] = File{
				Name: fmt.Sprintf("%03d-%s.png", i+1, Slugify(rec.Name)),
				Data: data,
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}
