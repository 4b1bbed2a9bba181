package services

import (
	"context"
	"nearest-route-service/internal/domain"
	"nearest-route-service/internal/ports"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
)

func TestSolveBatchKeepsOrderAndItemErrors(t *testing.T) {
	origin := pt(0, 0)
	reqs := []SolveRequest{
		{Start: &origin, End: &origin, Points: []domain.Point{pt(1, 0), pt(2, 0), pt(3, 0)}},
		{Start: &origin, End: nil, Points: []domain.Point{pt(1, 0), pt(2, 0)}},
		{Start: &origin, End: &origin, Points: []domain.Point{pt(3, 4)}},
		{Start: &origin, End: &origin, Points: []domain.Point{pt(3, 4), pt(3, 4)}},
	}

	results, err := NewSolver(nil, nil, nil).SolveBatch(context.Background(), reqs, 2)
	require.NoError(t, err)
	require.Len(t, results, 4)

	for i, r := range results {
		require.Equal(t, i, r.Index)
	}

	require.NoError(t, results[0].Err)
	require.Equal(t, 6.0, results[0].Route.Length)
	require.ErrorIs(t, results[1].Err, ErrMissingEndpoint)
	require.ErrorIs(t, results[2].Err, ErrInsufficientPoints)
	require.NoError(t, results[3].Err)
	require.Equal(t, 10.0, results[3].Route.Length)
}

func TestSolveBatchRespectsLimit(t *testing.T) {
	var inFlight, peak atomic.Int64
	var mu sync.Mutex

	metric := ports.DistanceFunc(func(a, b domain.Point) float64 {
		n := inFlight.Inc()
		mu.Lock()
		if n > peak.Load() {
			peak.Store(n)
		}
		mu.Unlock()
		defer inFlight.Dec()
		return EuclideanDistance(a, b)
	})
	s := NewSolver(&RouteBuilder{Metric: metric, MinPoints: DefaultMinPoints}, nil, nil)

	origin := pt(0, 0)
	reqs := make([]SolveRequest, 8)
	for i := range reqs {
		reqs[i] = SolveRequest{Start: &origin, End: &origin, Points: []domain.Point{pt(1, 0), pt(2, 0)}}
	}

	results, err := s.SolveBatch(context.Background(), reqs, 3)
	require.NoError(t, err)
	for _, r := range results {
		require.NoError(t, r.Err)
	}
	require.LessOrEqual(t, peak.Load(), int64(3))
}

func TestSolveBatchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	origin := pt(0, 0)
	reqs := []SolveRequest{
		{Start: &origin, End: &origin, Points: []domain.Point{pt(1, 0), pt(2, 0)}},
		{Start: &origin, End: &origin, Points: []domain.Point{pt(1, 0), pt(2, 0)}},
	}

	results, err := NewSolver(nil, nil, nil).SolveBatch(ctx, reqs, 1)
	require.ErrorIs(t, err, context.Canceled)
	require.Len(t, results, 2)
	for _, r := range results {
		require.ErrorIs(t, r.Err, context.Canceled)
	}
}

func TestSolveBatchRejectsBadLimit(t *testing.T) {
	_, err := NewSolver(nil, nil, nil).SolveBatch(context.Background(), nil, 0)
	require.Error(t, err)
}

func TestSolveBatchDoesNotShareInput(t *testing.T) {
	origin := pt(0, 0)
	shared := []domain.Point{pt(3, 0), pt(1, 0), pt(2, 0)}
	reqs := []SolveRequest{
		{Start: &origin, End: &origin, Points: shared},
		{Start: &origin, End: &origin, Points: shared},
	}

	results, err := NewSolver(nil, nil, nil).SolveBatch(context.Background(), reqs, 2)
	require.NoError(t, err)
	require.Equal(t, results[0].Route, results[1].Route)
	require.Equal(t, []domain.Point{pt(3, 0), pt(1, 0), pt(2, 0)}, shared)
}
