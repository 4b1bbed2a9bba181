package obs

import "go.uber.org/atomic"

// Counters tracks process-wide solve activity.
type Counters struct {
	Solves      atomic.Int64
	CacheHits   atomic.Int64
	CacheMisses atomic.Int64
	Failures    atomic.Int64
}

// Snapshot is a point-in-time copy of Counters.
type Snapshot struct {
	Solves      int64 `json:"solves"`
	CacheHits   int64 `json:"cache_hits"`
	CacheMisses int64 `json:"cache_misses"`
	Failures    int64 `json:"failures"`
}

func (c *Counters) Snapshot() Snapshot {
	return Snapshot{
		Solves:      c.Solves.Load(),
		CacheHits:   c.CacheHits.Load(),
		CacheMisses: c.CacheMisses.Load(),
		Failures:    c.Failures.Load(),
	}
}
