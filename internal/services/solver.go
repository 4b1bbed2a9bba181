package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"nearest-route-service/internal/domain"
	"nearest-route-service/internal/platform/obs"
	"nearest-route-service/internal/ports"
	"slices"
)

// Solver runs RouteBuilder behind an optional route cache and records counters.
// Cache and Counters may be nil.
type Solver struct {
	Builder  *RouteBuilder
	Cache    ports.RouteCache
	Counters *obs.Counters
}

func NewSolver(builder *RouteBuilder, cache ports.RouteCache, counters *obs.Counters) *Solver {
	if builder == nil {
		builder = NewRouteBuilder()
	}
	return &Solver{Builder: builder, Cache: cache, Counters: counters}
}

// Solve returns the route for the given input, consulting the cache first.
// Cache failures degrade to building the route; they are never returned.
func (s *Solver) Solve(
	ctx context.Context,
	start, end *domain.Point,
	points []domain.Point,
) (_ domain.Route, err error) {
	defer obs.Time(ctx, "route.Solve")(&err)

	if err := ctx.Err(); err != nil {
		return domain.Route{}, fmt.Errorf("solve route: %w", err)
	}

	// A cached route never bypasses the input checks of the current builder.
	if err := s.Builder.validate(start, end, points); err != nil {
		s.count(func(c *obs.Counters) { c.Failures.Inc() })
		return domain.Route{}, fmt.Errorf("solve route: %w", err)
	}

	var key string
	if s.Cache != nil {
		key = RouteKey(start, end, points)

		cached, ok, err := s.Cache.Get(ctx, key)
		switch {
		case err != nil:
			log.Printf("route cache read failed: key=%s err=%v", key, err)
		case ok && len(cached.Points) == len(points)+2:
			s.count(func(c *obs.Counters) { c.CacheHits.Inc(); c.Solves.Inc() })
			return cached, nil
		default:
			s.count(func(c *obs.Counters) { c.CacheMisses.Inc() })
		}
	}

	route, err := s.Builder.Build(start, end, points)
	if err != nil {
		s.count(func(c *obs.Counters) { c.Failures.Inc() })
		return domain.Route{}, fmt.Errorf("solve route: %w", err)
	}
	s.count(func(c *obs.Counters) { c.Solves.Inc() })

	if key != "" {
		if err := s.Cache.Put(ctx, key, route); err != nil {
			log.Printf("route cache write failed: key=%s err=%v", key, err)
		}
	}

	return route, nil
}

// SolveBoard computes and applies a route for the board.
// A solved board keeps its existing route; clear it to solve again.
func (s *Solver) SolveBoard(ctx context.Context, board *domain.Board) (*domain.Route, error) {
	if board == nil {
		return nil, errors.New("solve board: board must be non-nil")
	}

	if board.Solved && board.Route != nil {
		return board.Route, nil
	}

	// Hand the builder its own copy so later board edits cannot alias the route input.
	route, err := s.Solve(ctx, board.Start, board.End, slices.Clone(board.Points))
	if err != nil {
		return nil, fmt.Errorf("solve board %s: %w", board.ID, err)
	}

	if err := board.ApplyRoute(&route); err != nil {
		return nil, fmt.Errorf("solve board %s: %w", board.ID, err)
	}
	return board.Route, nil
}

func (s *Solver) count(f func(c *obs.Counters)) {
	if s.Counters != nil {
		f(s.Counters)
	}
}
