package repositories

import (
	"context"
	"errors"
	"fmt"
	"nearest-route-service/internal/domain"
	"nearest-route-service/internal/ports"
	"sort"
	"sync"
)

// In-memory implementation of the BoardRepository port.
// Boards are cloned on the way in and out so callers never share state.
type MemoryBoardRepository struct {
	mu     sync.RWMutex
	boards map[string]*domain.Board
}

func NewMemoryBoardRepository() *MemoryBoardRepository {
	return &MemoryBoardRepository{boards: make(map[string]*domain.Board)}
}

func (m *MemoryBoardRepository) Create(ctx context.Context, board *domain.Board) error {
	if board == nil || board.ID == "" {
		return errors.New("create board: board with id is required")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.boards[board.ID]; ok {
		return fmt.Errorf("create board: id %q already exists", board.ID)
	}
	m.boards[board.ID] = board.Clone()
	return nil
}

func (m *MemoryBoardRepository) Get(ctx context.Context, id string) (*domain.Board, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.boards[id]
	if !ok {
		return nil, fmt.Errorf("get board %q: %w", id, ports.ErrBoardNotFound)
	}
	return b.Clone(), nil
}

func (m *MemoryBoardRepository) Save(ctx context.Context, board *domain.Board) error {
	if board == nil {
		return errors.New("save board: board must be non-nil")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.boards[board.ID]; !ok {
		return fmt.Errorf("save board %q: %w", board.ID, ports.ErrBoardNotFound)
	}
	m.boards[board.ID] = board.Clone()
	return nil
}

func (m *MemoryBoardRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.boards[id]; !ok {
		return fmt.Errorf("delete board %q: %w", id, ports.ErrBoardNotFound)
	}
	delete(m.boards, id)
	return nil
}

func (m *MemoryBoardRepository) List(ctx context.Context) ([]*domain.Board, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*domain.Board, 0, len(m.boards))
	for _, b := range m.boards {
		out = append(out, b.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
