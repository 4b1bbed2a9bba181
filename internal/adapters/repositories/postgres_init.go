package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the PostgreSQL database schema.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createBoardsQuery := `
	CREATE TABLE IF NOT EXISTS boards (
		id TEXT PRIMARY KEY,
		start_x DOUBLE PRECISION,
		start_y DOUBLE PRECISION,
		end_x DOUBLE PRECISION,
		end_y DOUBLE PRECISION,
		mode TEXT NOT NULL DEFAULT 'place',
		solved BOOLEAN NOT NULL DEFAULT FALSE,
		route_length DOUBLE PRECISION,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createBoardPointsQuery := `
	CREATE TABLE IF NOT EXISTS board_points (
		board_id TEXT NOT NULL REFERENCES boards(id) ON DELETE CASCADE,
		kind TEXT NOT NULL,
		position INTEGER NOT NULL,
		x DOUBLE PRECISION NOT NULL,
		y DOUBLE PRECISION NOT NULL,
		PRIMARY KEY (board_id, kind, position)
	);
	`

	statements := []string{
		createBoardsQuery,
		createBoardPointsQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
