package services

import (
	"context"
	"errors"
	"fmt"
	"nearest-route-service/internal/domain"
	"slices"

	"golang.org/x/sync/errgroup"
)

type SolveRequest struct {
	Start  *domain.Point
	End    *domain.Point
	Points []domain.Point
}

// Outcome of one batch item. Exactly one of Route and Err is meaningful.
type SolveResult struct {
	Index int
	Route domain.Route
	Err   error
}

// SolveBatch solves independent requests with at most limit concurrent workers.
//
// Item failures are reported in their SolveResult and do not stop the batch.
// Only context cancellation aborts scheduling; items never started carry the
// context error. Results are returned in request order.
func (s *Solver) SolveBatch(ctx context.Context, reqs []SolveRequest, limit int) ([]SolveResult, error) {
	if limit < 1 {
		return nil, fmt.Errorf("solve batch: limit must be at least 1, got %d", limit)
	}

	results := make([]SolveResult, len(reqs))
	for i := range results {
		results[i] = SolveResult{Index: i, Err: context.Canceled}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)

	for i, req := range reqs {
		if gctx.Err() != nil {
			break
		}

		// Each worker gets a private copy of its point list.
		start, end, points := req.Start, req.End, slices.Clone(req.Points)

		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}

			route, err := s.Solve(gctx, start, end, points)
			results[i] = SolveResult{Index: i, Route: route, Err: err}
			return nil
		})
	}

	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		for i := range results {
			if results[i].Err != nil && errors.Is(results[i].Err, context.Canceled) {
				results[i].Err = err
			}
		}
		return results, fmt.Errorf("solve batch: %w", err)
	}

	return results, nil
}
