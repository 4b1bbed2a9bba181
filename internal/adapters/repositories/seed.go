package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"nearest-route-service/internal/domain"
	"nearest-route-service/internal/ports"
	"os"
	"strings"
)

type PointSeed struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type BoardSeed struct {
	ID     string      `json:"id"`
	Start  *PointSeed  `json:"start"`
	End    *PointSeed  `json:"end"`
	Points []PointSeed `json:"points"`
}

// Populate a repository with boards from a JSON file.
// Existing boards with the same id are overwritten.
func SeedBoardsFromJSON(ctx context.Context, repo ports.BoardRepository, jsonPath string) (int, error) {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return 0, fmt.Errorf("seed boards: read %q: %w", jsonPath, err)
	}

	var data []BoardSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return 0, fmt.Errorf("seed boards: parse json: %w", err)
	}

	boards := make([]*domain.Board, 0, len(data))
	for i, item := range data {
		id := strings.TrimSpace(item.ID)
		if id == "" {
			return 0, fmt.Errorf("seed boards: item at index %d: id cannot be empty", i+1)
		}

		b := domain.NewBoard(id)
		if item.Start != nil {
			b.Start = &domain.Point{X: item.Start.X, Y: item.Start.Y}
		}
		if item.End != nil {
			b.End = &domain.Point{X: item.End.X, Y: item.End.Y}
		}
		for _, p := range item.Points {
			b.Points = append(b.Points, domain.Point{X: p.X, Y: p.Y})
		}
		boards = append(boards, b)
	}

	for _, b := range boards {
		err := repo.Save(ctx, b)
		if errors.Is(err, ports.ErrBoardNotFound) {
			err = repo.Create(ctx, b)
		}
		if err != nil {
			return 0, fmt.Errorf("seed boards: store board %q: %w", b.ID, err)
		}
	}

	return len(boards), nil
}
