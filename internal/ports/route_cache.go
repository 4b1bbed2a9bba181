package ports

import (
	"context"
	"nearest-route-service/internal/domain"
)

// Contract for caching solved routes by input digest.
type RouteCache interface {
	// Return the cached route and whether the key was present.
	Get(ctx context.Context, key string) (domain.Route, bool, error)
	Put(ctx context.Context, key string, route domain.Route) error
}
