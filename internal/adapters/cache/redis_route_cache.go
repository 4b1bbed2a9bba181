package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"nearest-route-service/internal/domain"
	"nearest-route-service/internal/platform/obs"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "route:"

type routeRecord struct {
	Points [][2]float64 `json:"points"`
	Length float64      `json:"length"`
}

// RedisRouteCache is a Redis-backed cache of solved routes keyed by input digest.
// Entries expire after TTL; a zero TTL keeps them until evicted.
type RedisRouteCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewRedisRouteCache(client *redis.Client, ttl time.Duration) *RedisRouteCache {
	return &RedisRouteCache{Client: client, TTL: ttl}
}

// Fetch a cached route. A missing key is not an error.
func (c *RedisRouteCache) Get(ctx context.Context, key string) (_ domain.Route, _ bool, err error) {
	defer obs.Time(ctx, "route.cache.Get")(&err)

	if c.Client == nil {
		return domain.Route{}, false, errors.New("route cache: client is nil")
	}

	if strings.TrimSpace(key) == "" {
		return domain.Route{}, false, errors.New("get route cache: key must not be empty")
	}

	raw, err := c.Client.Get(ctx, keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Route{}, false, nil
	}
	if err != nil {
		return domain.Route{}, false, fmt.Errorf("get route cache key=%q: %w", key, err)
	}

	var rec routeRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return domain.Route{}, false, fmt.Errorf("get route cache key=%q: decode: %w", key, err)
	}

	points := make([]domain.Point, 0, len(rec.Points))
	for _, p := range rec.Points {
		points = append(points, domain.Point{X: p[0], Y: p[1]})
	}

	return domain.Route{Points: points, Length: rec.Length}, true, nil
}

// Store a solved route under key.
func (c *RedisRouteCache) Put(ctx context.Context, key string, route domain.Route) error {
	if c.Client == nil {
		return errors.New("route cache: client is nil")
	}

	if strings.TrimSpace(key) == "" {
		return errors.New("insert route cache: key must not be empty")
	}

	rec := routeRecord{
		Points: make([][2]float64, 0, len(route.Points)),
		Length: route.Length,
	}
	for _, p := range route.Points {
		rec.Points = append(rec.Points, [2]float64{p.X, p.Y})
	}

	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("insert route cache key=%q: encode: %w", key, err)
	}

	if err := c.Client.Set(ctx, keyPrefix+key, raw, c.TTL).Err(); err != nil {
		return fmt.Errorf("insert route cache key=%q: %w", key, err)
	}

	return nil
}
