package services

import (
	"fmt"
	"math"
	"nearest-route-service/internal/domain"
	"nearest-route-service/internal/ports"
)

// DefaultMinPoints is the smallest number of intermediate points a solve accepts.
const DefaultMinPoints = 2

// RouteBuilder orders intermediate points using a greedy nearest-neighbor rule.
//
// The zero value is not usable; construct with NewRouteBuilder. A RouteBuilder
// holds no state between calls and is safe for concurrent use as long as its
// Metric is.
type RouteBuilder struct {
	Metric    ports.DistanceMetric
	MinPoints int
}

func NewRouteBuilder() *RouteBuilder {
	return &RouteBuilder{
		Metric:    Euclidean,
		MinPoints: DefaultMinPoints,
	}
}

// BuildRoute uses a default RouteBuilder.
func BuildRoute(start, end *domain.Point, points []domain.Point) (domain.Route, error) {
	return NewRouteBuilder().Build(start, end, points)
}

// Plan a route from start through every point to end.
//
// At each step the builder moves to the closest remaining point. Ties go to
// the point that appears first in the input. Points are identified by
// position, so coordinate duplicates are each visited once.
// It does not attempt global route optimization.
// The caller's slice is never modified.
func (b *RouteBuilder) Build(start, end *domain.Point, points []domain.Point) (domain.Route, error) {
	metric := b.Metric
	if metric == nil {
		metric = Euclidean
	}

	if err := b.validate(start, end, points); err != nil {
		return domain.Route{}, fmt.Errorf("build route: %w", err)
	}

	// remaining holds indexes into points, in input order.
	remaining := make([]int, len(points))
	for i := range points {
		remaining[i] = i
	}

	visited := make([]domain.Point, 0, len(points)+2)
	visited = append(visited, *start)
	current := *start

	for len(remaining) > 0 {
		best := -1
		shortest := math.Inf(1)

		// Select next stop by minimum distance (greedy step).
		// Strict comparison keeps the earliest point on ties.
		for pos, idx := range remaining {
			if d := metric.Distance(current, points[idx]); d < shortest {
				shortest = d
				best = pos
			}
		}

		if best == -1 {
			return domain.Route{}, fmt.Errorf(
				"build route: no reachable point from (%g, %g) with %d remaining: %w",
				current.X, current.Y, len(remaining), ErrNoPathFound,
			)
		}

		current = points[remaining[best]]
		visited = append(visited, current)
		remaining = append(remaining[:best], remaining[best+1:]...)
	}

	visited = append(visited, *end)

	return domain.Route{
		Points: visited,
		Length: routeLength(metric, visited),
	}, nil
}

// validate checks the point count before the endpoints.
func (b *RouteBuilder) validate(start, end *domain.Point, points []domain.Point) error {
	if len(points) < b.MinPoints {
		return fmt.Errorf("got %d points, need at least %d: %w", len(points), b.MinPoints, ErrInsufficientPoints)
	}
	if start == nil || end == nil {
		return fmt.Errorf("start and end must be set: %w", ErrMissingEndpoint)
	}
	return nil
}
