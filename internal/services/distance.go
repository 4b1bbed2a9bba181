package services

import (
	"math"
	"nearest-route-service/internal/domain"
	"nearest-route-service/internal/ports"
)

// EuclideanDistance returns the straight-line distance between a and b.
func EuclideanDistance(a, b domain.Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return math.Sqrt(dx*dx + dy*dy)
}

// Euclidean is the default metric used by RouteBuilder.
var Euclidean ports.DistanceMetric = ports.DistanceFunc(EuclideanDistance)

// RouteLength sums the metric over each consecutive pair of route points,
// in order. Routes with fewer than two points have length 0.
func RouteLength(route []domain.Point) float64 {
	return routeLength(Euclidean, route)
}

func routeLength(metric ports.DistanceMetric, route []domain.Point) float64 {
	total := 0.0
	for i := 1; i < len(route); i++ {
		total += metric.Distance(route[i-1], route[i])
	}
	return total
}
