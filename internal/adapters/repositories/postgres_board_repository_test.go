package repositories

import (
	"context"
	"database/sql"
	"nearest-route-service/internal/domain"
	"nearest-route-service/internal/platform/db"
	"nearest-route-service/internal/ports"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// openTestDB connects to TEST_DATABASE_URL or skips the test.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	conn, err := db.Open(context.Background(), url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	require.NoError(t, InitSchema(context.Background(), conn))
	return conn
}

func TestPostgresBoardRepositoryRoundTrip(t *testing.T) {
	repo := NewPostgresBoardRepository(openTestDB(t))
	ctx := context.Background()

	b := domain.NewBoard(uuid.NewString())
	b.SelectStart()
	require.NoError(t, b.Place(domain.Point{X: 0, Y: 0}))
	require.NoError(t, b.Place(domain.Point{X: 1, Y: 0}))
	require.NoError(t, b.Place(domain.Point{X: 2, Y: 0}))
	require.NoError(t, repo.Create(ctx, b))
	t.Cleanup(func() { _ = repo.Delete(context.Background(), b.ID) })

	got, err := repo.Get(ctx, b.ID)
	require.NoError(t, err)
	require.Equal(t, b.Start, got.Start)
	require.Nil(t, got.End)
	require.Equal(t, b.Points, got.Points)
	require.Nil(t, got.Route)

	end := domain.Point{X: 3, Y: 0}
	got.End = &end
	route := &domain.Route{Points: []domain.Point{{X: 0}, {X: 1}, {X: 2}, {X: 3}}, Length: 3}
	require.NoError(t, got.ApplyRoute(route))
	require.NoError(t, repo.Save(ctx, got))

	solved, err := repo.Get(ctx, b.ID)
	require.NoError(t, err)
	require.True(t, solved.Solved)
	require.Equal(t, route, solved.Route)

	require.NoError(t, repo.Delete(ctx, b.ID))
	_, err = repo.Get(ctx, b.ID)
	require.ErrorIs(t, err, ports.ErrBoardNotFound)
}

func TestNullCoordHelpers(t *testing.T) {
	x, y := nullCoords(nil)
	require.False(t, x.Valid)
	require.Nil(t, pointFromNull(x, y))

	x, y = nullCoords(&domain.Point{X: 1.5, Y: -2})
	require.Equal(t, &domain.Point{X: 1.5, Y: -2}, pointFromNull(x, y))

	require.False(t, routeLength(nil).Valid)
	require.Equal(t, 7.0, routeLength(&domain.Route{Length: 7}).Float64)
}

func TestPostgresBoardRepositoryRejectsUnknownMode(t *testing.T) {
	conn := openTestDB(t)
	repo := NewPostgresBoardRepository(conn)
	ctx := context.Background()

	id := uuid.NewString()
	_, err := conn.ExecContext(ctx, `INSERT INTO boards (id, mode, updated_at) VALUES ($1, 'erase', now());`, id)
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Delete(context.Background(), id) })

	_, err = repo.Get(ctx, id)
	require.ErrorIs(t, err, domain.ErrInvalidMode)
}

func TestPostgresBoardRepositoryDeleteMissing(t *testing.T) {
	repo := NewPostgresBoardRepository(openTestDB(t))

	err := repo.Delete(context.Background(), uuid.NewString())
	require.ErrorIs(t, err, ports.ErrBoardNotFound)

	err = (&PostgresBoardRepository{}).Delete(context.Background(), "x")
	require.Error(t, err)
}
