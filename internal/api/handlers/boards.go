package handlers

import (
	"nearest-route-service/internal/api/dto"
	"nearest-route-service/internal/domain"
	"nearest-route-service/internal/ports"
	"nearest-route-service/internal/services"
	"net/http"

	"github.com/google/uuid"
)

// BoardHandler exposes the interactive board workflow: choose a mode, place
// points, solve, clear. Every request loads the board, applies one action
// and saves it back.
type BoardHandler struct {
	Repo   ports.BoardRepository
	Solver *services.Solver
}

func (h *BoardHandler) Create(w http.ResponseWriter, r *http.Request) {
	b := domain.NewBoard(uuid.NewString())
	if err := h.Repo.Create(r.Context(), b); err != nil {
		writeDomainError(w, r, err)
		return
	}

	w.Header().Set("Location", "/boards/"+b.ID)
	writeJSON(w, r, http.StatusCreated, toBoardResponse(b))
}

func (h *BoardHandler) List(w http.ResponseWriter, r *http.Request) {
	boards, err := h.Repo.List(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	res := dto.ListBoardsResponse{Boards: make([]dto.BoardResponse, 0, len(boards))}
	for _, b := range boards {
		res.Boards = append(res.Boards, toBoardResponse(b))
	}
	writeJSON(w, r, http.StatusOK, res)
}

func (h *BoardHandler) Get(w http.ResponseWriter, r *http.Request) {
	b, err := h.Repo.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toBoardResponse(b))
}

func (h *BoardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Repo.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *BoardHandler) SetMode(w http.ResponseWriter, r *http.Request) {
	var req dto.ModeRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	mode, err := domain.ParseMode(req.Mode)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	h.update(w, r, func(b *domain.Board) error { return b.SetMode(mode) })
}

func (h *BoardHandler) Place(w http.ResponseWriter, r *http.Request) {
	var req dto.PointRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	p, err := toPoint(req)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	h.update(w, r, func(b *domain.Board) error { return b.Place(p) })
}

func (h *BoardHandler) Clear(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, func(b *domain.Board) error {
		b.Clear()
		return nil
	})
}

func (h *BoardHandler) Solve(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, func(b *domain.Board) error {
		_, err := h.Solver.SolveBoard(r.Context(), b)
		return err
	})
}

// update loads the board named in the path, applies fn and persists the result.
// The board is not saved when fn fails.
func (h *BoardHandler) update(w http.ResponseWriter, r *http.Request, fn func(b *domain.Board) error) {
	b, err := h.Repo.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	if err := fn(b); err != nil {
		writeDomainError(w, r, err)
		return
	}

	if err := h.Repo.Save(r.Context(), b); err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toBoardResponse(b))
}
