package triage

import (
	"context"
	"fmt"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cognicore/triage/pkg/triage/ingest"
)

// Item is the outcome of one report in a batch. Err is set, and Result left
// zero, when the report failed validation.
type Item struct {
	Report ingest.Report
	Result Result
	Err    error
}

// AnalyzeBatch analyzes reports on up to workers goroutines and returns one
// Item per report, in input order. workers <= 0 means GOMAXPROCS. An invalid
// report fails only its own item; the batch itself fails only when ctx is done.
func (e *Engine) AnalyzeBatch(ctx context.Context, reports []ingest.Report, workers int) ([]Item, error) {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	items := make([]Item, len(reports))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, r := range reports {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			items[i].Report = r
			if err := r.Validate(); err != nil {
				items[i].Err = fmt.Errorf("report %d: %w", i, err)
				return nil
			}
			items[i].Result = e.Analyze(r.Title, r.Description)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("analyze batch: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("analyze batch: %w", err)
	}

	e.log.Debug("analyzed batch", zap.Int("reports", len(reports)), zap.Int("workers", workers))
	return items, nil
}
