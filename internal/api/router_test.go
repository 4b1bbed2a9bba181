package api

import (
	"bytes"
	"encoding/json"
	"nearest-route-service/internal/adapters/repositories"
	"nearest-route-service/internal/api/dto"
	"nearest-route-service/internal/platform/obs"
	"nearest-route-service/internal/services"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) (*httptest.Server, *obs.Counters) {
	t.Helper()

	counters := &obs.Counters{}
	solver := services.NewSolver(services.NewRouteBuilder(), nil, counters)
	router := NewRouter(repositories.NewMemoryBoardRepository(), solver, counters, 2)

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, counters
}

func do(t *testing.T, srv *httptest.Server, method, path, body string) *http.Response {
	t.Helper()

	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}

	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = res.Body.Close() })
	return res
}

func decode[T any](t *testing.T, res *http.Response) T {
	t.Helper()

	var v T
	require.NoError(t, json.NewDecoder(res.Body).Decode(&v))
	return v
}

func TestRoutesSolve(t *testing.T) {
	srv, counters := newTestServer(t)

	res := do(t, srv, http.MethodPost, "/routes", `{
		"start": {"x": 0, "y": 0},
		"end": {"x": 10, "y": 0},
		"points": [{"x": 5, "y": 5}, {"x": 5, "y": -5}]
	}`)
	require.Equal(t, http.StatusOK, res.StatusCode)

	body := decode[dto.RouteResponse](t, res)
	require.Equal(t, []dto.PointResponse{{X: 0, Y: 0}, {X: 5, Y: 5}, {X: 5, Y: -5}, {X: 10, Y: 0}}, body.Route)
	require.InDelta(t, 2*7.0710678118654755+10, body.TotalDistance, 1e-9)
	require.Equal(t, "24.14", body.TotalDistanceText)

	require.Equal(t, int64(1), counters.Snapshot().Solves)
}

func TestRoutesSolveValidation(t *testing.T) {
	srv, _ := newTestServer(t)

	cases := []struct {
		name   string
		body   string
		status int
	}{
		{"one point", `{"start": {"x": 0, "y": 0}, "end": {"x": 0, "y": 0}, "points": [{"x": 3, "y": 4}]}`, http.StatusUnprocessableEntity},
		{"missing end", `{"start": {"x": 0, "y": 0}, "points": [{"x": 1, "y": 0}, {"x": 2, "y": 0}]}`, http.StatusUnprocessableEntity},
		{"point missing y", `{"start": {"x": 0, "y": 0}, "end": {"x": 0, "y": 0}, "points": [{"x": 1}, {"x": 2, "y": 0}]}`, http.StatusBadRequest},
		{"unknown field", `{"begin": {"x": 0, "y": 0}}`, http.StatusBadRequest},
		{"not json", `start=0,0`, http.StatusBadRequest},
		{"two objects", `{} {}`, http.StatusBadRequest},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := do(t, srv, http.MethodPost, "/routes", tc.body)
			require.Equal(t, tc.status, res.StatusCode)
			require.NotEmpty(t, decode[map[string]string](t, res)["error"])
		})
	}

	res := do(t, srv, http.MethodGet, "/routes", "")
	require.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)
	require.Equal(t, http.MethodPost, res.Header.Get("Allow"))
}

func TestRoutesBatch(t *testing.T) {
	srv, _ := newTestServer(t)

	res := do(t, srv, http.MethodPost, "/routes/batch", `{"requests": [
		{"start": {"x": 0, "y": 0}, "end": {"x": 0, "y": 0}, "points": [{"x": 1, "y": 0}, {"x": 2, "y": 0}, {"x": 3, "y": 0}]},
		{"start": {"x": 0, "y": 0}, "points": [{"x": 1, "y": 0}, {"x": 2, "y": 0}]}
	]}`)
	require.Equal(t, http.StatusOK, res.StatusCode)

	body := decode[dto.BatchRouteResponse](t, res)
	require.Len(t, body.Results, 2)
	require.NotNil(t, body.Results[0].Route)
	require.Equal(t, 6.0, body.Results[0].Route.TotalDistance)
	require.Empty(t, body.Results[0].Error)
	require.Nil(t, body.Results[1].Route)
	require.NotEmpty(t, body.Results[1].Error)

	res = do(t, srv, http.MethodPost, "/routes/batch", `{"requests": []}`)
	require.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestBoardWorkflow(t *testing.T) {
	srv, _ := newTestServer(t)

	res := do(t, srv, http.MethodPost, "/boards", "")
	require.Equal(t, http.StatusCreated, res.StatusCode)
	board := decode[dto.BoardResponse](t, res)
	require.Equal(t, "place", board.Mode)
	require.Equal(t, "/boards/"+board.ID, res.Header.Get("Location"))
	base := "/boards/" + board.ID

	// Solving an empty board fails with the user-facing message.
	res = do(t, srv, http.MethodPost, base+"/solve", "")
	require.Equal(t, http.StatusUnprocessableEntity, res.StatusCode)

	steps := []struct {
		path, body string
	}{
		{"/mode", `{"mode": "start"}`},
		{"/points", `{"x": 0, "y": 0}`},
		{"/mode", `{"mode": "end"}`},
		{"/points", `{"x": 0, "y": 0}`},
		{"/points", `{"x": 3, "y": 0}`},
		{"/points", `{"x": 1, "y": 0}`},
		{"/points", `{"x": 2, "y": 0}`},
	}
	for _, s := range steps {
		res = do(t, srv, http.MethodPost, base+s.path, s.body)
		require.Equal(t, http.StatusOK, res.StatusCode, "step %s %s", s.path, s.body)
	}

	res = do(t, srv, http.MethodPost, base+"/mode", `{"mode": "start"}`)
	require.Equal(t, http.StatusOK, res.StatusCode)
	res = do(t, srv, http.MethodPost, base+"/points", `{"x": 9, "y": 9}`)
	require.Equal(t, http.StatusConflict, res.StatusCode)

	res = do(t, srv, http.MethodPost, base+"/mode", `{"mode": "place"}`)
	require.Equal(t, http.StatusOK, res.StatusCode)

	res = do(t, srv, http.MethodPost, base+"/solve", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	board = decode[dto.BoardResponse](t, res)
	require.True(t, board.Solved)
	require.NotNil(t, board.Route)
	require.Equal(t, []dto.PointResponse{{X: 0}, {X: 1}, {X: 2}, {X: 3}, {X: 0}}, board.Route.Route)
	require.Equal(t, "6.00", board.Route.TotalDistanceText)

	// Clicks are ignored once solved.
	res = do(t, srv, http.MethodPost, base+"/points", `{"x": 4, "y": 0}`)
	require.Equal(t, http.StatusConflict, res.StatusCode)

	res = do(t, srv, http.MethodGet, base, "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	board = decode[dto.BoardResponse](t, res)
	require.Len(t, board.Points, 3)
	require.True(t, board.Solved)

	res = do(t, srv, http.MethodPost, base+"/clear", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	board = decode[dto.BoardResponse](t, res)
	require.False(t, board.Solved)
	require.Nil(t, board.Start)
	require.Nil(t, board.End)
	require.Empty(t, board.Points)
	require.Nil(t, board.Route)

	res = do(t, srv, http.MethodGet, "/boards", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Len(t, decode[dto.ListBoardsResponse](t, res).Boards, 1)

	res = do(t, srv, http.MethodDelete, base, "")
	require.Equal(t, http.StatusNoContent, res.StatusCode)

	res = do(t, srv, http.MethodGet, base, "")
	require.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestBoardRejectsBadInput(t *testing.T) {
	srv, _ := newTestServer(t)

	res := do(t, srv, http.MethodPost, "/boards", "")
	board := decode[dto.BoardResponse](t, res)
	base := "/boards/" + board.ID

	res = do(t, srv, http.MethodPost, base+"/mode", `{"mode": "erase"}`)
	require.Equal(t, http.StatusBadRequest, res.StatusCode)

	res = do(t, srv, http.MethodPost, base+"/points", `{"x": 1}`)
	require.Equal(t, http.StatusBadRequest, res.StatusCode)

	res = do(t, srv, http.MethodPost, "/boards/nope/points", `{"x": 1, "y": 1}`)
	require.Equal(t, http.StatusNotFound, res.StatusCode)

	res = do(t, srv, http.MethodPut, base, "")
	require.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)
}

func TestHealthStatsAndRequestID(t *testing.T) {
	srv, _ := newTestServer(t)

	res := do(t, srv, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, "ok", decode[map[string]string](t, res)["status"])
	_, err := uuid.Parse(res.Header.Get("X-Request-ID"))
	require.NoError(t, err)

	res = do(t, srv, http.MethodPost, "/health", "")
	require.Equal(t, http.StatusMethodNotAllowed, res.StatusCode)

	res = do(t, srv, http.MethodGet, "/stats", "")
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.Equal(t, obs.Snapshot{}, decode[obs.Snapshot](t, res))

	id := uuid.NewString()
	req, err := http.NewRequest(http.MethodGet, srv.URL+"/health", nil)
	require.NoError(t, err)
	req.Header.Set("X-Request-ID", id)
	res, err = srv.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, id, res.Header.Get("X-Request-ID"))
}
