package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"nearest-route-service/internal/domain"
	"nearest-route-service/internal/platform/obs"
	"nearest-route-service/internal/ports"
	"time"
)

const (
	kindStop  = "stop"
	kindRoute = "route"
)

// PostgreSQL-backed implementation of the BoardRepository port.
// Expects the schema created by InitSchema.
type PostgresBoardRepository struct{ DB *sql.DB }

func NewPostgresBoardRepository(db *sql.DB) *PostgresBoardRepository {
	return &PostgresBoardRepository{DB: db}
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func (p *PostgresBoardRepository) Create(ctx context.Context, board *domain.Board) (err error) {
	defer obs.Time(ctx, "boards.Create")(&err)

	if p.DB == nil {
		return errors.New("postgres board repository: DB is nil")
	}
	if board == nil || board.ID == "" {
		return errors.New("create board: board with id is required")
	}

	tx, err := p.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("create board: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	startX, startY := nullCoords(board.Start)
	endX, endY := nullCoords(board.End)

	_, err = tx.ExecContext(ctx, `
	INSERT INTO boards (id, start_x, start_y, end_x, end_y, mode, solved, route_length, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`, board.ID, startX, startY, endX, endY, string(board.Mode), board.Solved, routeLength(board.Route), board.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create board %q: insert board row: %w", board.ID, err)
	}

	if err := writePoints(ctx, tx, board); err != nil {
		return fmt.Errorf("create board %q: %w", board.ID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("create board %q: commit tx: %w", board.ID, err)
	}
	return nil
}

func (p *PostgresBoardRepository) Get(ctx context.Context, id string) (_ *domain.Board, err error) {
	defer obs.Time(ctx, "boards.Get")(&err)

	if p.DB == nil {
		return nil, errors.New("postgres board repository: DB is nil")
	}
	return loadBoard(ctx, p.DB, id)
}

func (p *PostgresBoardRepository) Save(ctx context.Context, board *domain.Board) (err error) {
	defer obs.Time(ctx, "boards.Save")(&err)

	if p.DB == nil {
		return errors.New("postgres board repository: DB is nil")
	}
	if board == nil {
		return errors.New("save board: board must be non-nil")
	}

	tx, err := p.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save board: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	startX, startY := nullCoords(board.Start)
	endX, endY := nullCoords(board.End)

	res, err := tx.ExecContext(ctx, `
	UPDATE boards
	SET start_x = $2, start_y = $3, end_x = $4, end_y = $5,
		mode = $6, solved = $7, route_length = $8, updated_at = $9
	WHERE id = $1;
	`, board.ID, startX, startY, endX, endY, string(board.Mode), board.Solved, routeLength(board.Route), board.UpdatedAt)
	if err != nil {
		return fmt.Errorf("save board %q: update board row: %w", board.ID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("save board %q: %w", board.ID, ports.ErrBoardNotFound)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM board_points WHERE board_id = $1;`, board.ID); err != nil {
		return fmt.Errorf("save board %q: clear points: %w", board.ID, err)
	}

	if err := writePoints(ctx, tx, board); err != nil {
		return fmt.Errorf("save board %q: %w", board.ID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("save board %q: commit tx: %w", board.ID, err)
	}
	return nil
}

func (p *PostgresBoardRepository) Delete(ctx context.Context, id string) (err error) {
	defer obs.Time(ctx, "boards.Delete")(&err)

	if p.DB == nil {
		return errors.New("postgres board repository: DB is nil")
	}

	// board_points rows go with the board via ON DELETE CASCADE.
	res, err := p.DB.ExecContext(ctx, `DELETE FROM boards WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("delete board %q: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("delete board %q: %w", id, ports.ErrBoardNotFound)
	}
	return nil
}

func (p *PostgresBoardRepository) List(ctx context.Context) (_ []*domain.Board, err error) {
	defer obs.Time(ctx, "boards.List")(&err)

	if p.DB == nil {
		return nil, errors.New("postgres board repository: DB is nil")
	}

	rows, err := p.DB.QueryContext(ctx, `SELECT id FROM boards ORDER BY id;`)
	if err != nil {
		return nil, fmt.Errorf("list boards: query boards table: %w", err)
	}
	defer rows.Close()

	ids := make([]string, 0, 16)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("list boards: scan row: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list boards: row iteration: %w", err)
	}

	boards := make([]*domain.Board, 0, len(ids))
	for _, id := range ids {
		b, err := loadBoard(ctx, p.DB, id)
		if errors.Is(err, ports.ErrBoardNotFound) {
			// Deleted between the id scan and the load.
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("list boards: %w", err)
		}
		boards = append(boards, b)
	}
	return boards, nil
}

func loadBoard(ctx context.Context, q queryer, id string) (*domain.Board, error) {
	var (
		startX, startY, endX, endY sql.NullFloat64
		routeLen                   sql.NullFloat64
		mode                       string
		solved                     bool
		updatedAt                  time.Time
	)

	err := q.QueryRowContext(ctx, `
	SELECT start_x, start_y, end_x, end_y, mode, solved, route_length, updated_at
	FROM boards
	WHERE id = $1;
	`, id).Scan(&startX, &startY, &endX, &endY, &mode, &solved, &routeLen, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get board %q: %w", id, ports.ErrBoardNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get board %q: query boards table: %w", id, err)
	}

	m, err := domain.ParseMode(mode)
	if err != nil {
		return nil, fmt.Errorf("get board %q: %w", id, err)
	}

	b := &domain.Board{
		ID:        id,
		Start:     pointFromNull(startX, startY),
		End:       pointFromNull(endX, endY),
		Points:    []domain.Point{},
		Mode:      m,
		Solved:    solved,
		UpdatedAt: updatedAt,
	}

	rows, err := q.QueryContext(ctx, `
	SELECT kind, x, y
	FROM board_points
	WHERE board_id = $1
	ORDER BY kind, position;
	`, id)
	if err != nil {
		return nil, fmt.Errorf("get board %q: query board_points table: %w", id, err)
	}
	defer rows.Close()

	var route []domain.Point
	for rows.Next() {
		var kind string
		var x, y float64
		if err := rows.Scan(&kind, &x, &y); err != nil {
			return nil, fmt.Errorf("get board %q: scan point: %w", id, err)
		}
		switch kind {
		case kindStop:
			b.Points = append(b.Points, domain.Point{X: x, Y: y})
		case kindRoute:
			route = append(route, domain.Point{X: x, Y: y})
		default:
			return nil, fmt.Errorf("get board %q: unknown point kind %q", id, kind)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get board %q: row iteration: %w", id, err)
	}

	if routeLen.Valid {
		b.Route = &domain.Route{Points: route, Length: routeLen.Float64}
	}
	return b, nil
}

func writePoints(ctx context.Context, tx *sql.Tx, board *domain.Board) error {
	stmt, err := tx.PrepareContext(ctx, `
	INSERT INTO board_points (board_id, kind, position, x, y)
	VALUES ($1, $2, $3, $4, $5);
	`)
	if err != nil {
		return fmt.Errorf("write points: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, pt := range board.Points {
		if _, err := stmt.ExecContext(ctx, board.ID, kindStop, i, pt.X, pt.Y); err != nil {
			return fmt.Errorf("write points: insert stop #%d: %w", i, err)
		}
	}

	if board.Route != nil {
		for i, pt := range board.Route.Points {
			if _, err := stmt.ExecContext(ctx, board.ID, kindRoute, i, pt.X, pt.Y); err != nil {
				return fmt.Errorf("write points: insert route point #%d: %w", i, err)
			}
		}
	}
	return nil
}

func nullCoords(p *domain.Point) (sql.NullFloat64, sql.NullFloat64) {
	if p == nil {
		return sql.NullFloat64{}, sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: p.X, Valid: true}, sql.NullFloat64{Float64: p.Y, Valid: true}
}

func pointFromNull(x, y sql.NullFloat64) *domain.Point {
	if !x.Valid || !y.Valid {
		return nil
	}
	return &domain.Point{X: x.Float64, Y: y.Float64}
}

func routeLength(r *domain.Route) sql.NullFloat64 {
	if r == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: r.Length, Valid: true}
}
