package ports

import "nearest-route-service/internal/domain"

// Contract for measuring the straight-line cost between two points.
// Implementations must be pure and safe for concurrent use.
type DistanceMetric interface {
	Distance(a, b domain.Point) float64
}

// Adapter allowing an ordinary function to act as a DistanceMetric.
type DistanceFunc func(a, b domain.Point) float64

func (f DistanceFunc) Distance(a, b domain.Point) float64 { return f(a, b) }
