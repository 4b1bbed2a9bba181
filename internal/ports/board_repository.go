package ports

import (
	"context"
	"errors"
	"nearest-route-service/internal/domain"
)

var ErrBoardNotFound = errors.New("board not found")

// Port: a boundary for storing and retrieving Board aggregates.
// Implementations return copies; callers own what they receive.
type BoardRepository interface {
	Create(ctx context.Context, board *domain.Board) error
	// Return ErrBoardNotFound (wrapped) when no board has the id.
	Get(ctx context.Context, id string) (*domain.Board, error)
	Save(ctx context.Context, board *domain.Board) error
	Delete(ctx context.Context, id string) error
	// Retrieve all boards ordered by id.
	List(ctx context.Context) ([]*domain.Board, error)
}
