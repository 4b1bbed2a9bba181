package handlers

import (
	"nearest-route-service/internal/api/dto"
	"nearest-route-service/internal/services"
	"net/http"
)

const maxBatchSize = 100

// RouteHandler solves routes directly from request input without storing anything.
type RouteHandler struct {
	Solver     *services.Solver
	BatchLimit int
}

func (h *RouteHandler) Solve(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.RouteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	in, err := toSolveRequest(req)
	if err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	route, err := h.Solver.Solve(r.Context(), in.Start, in.End, in.Points)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toRouteResponse(route))
}

// Batch solves up to maxBatchSize independent routes concurrently.
// Item failures are reported per item; the response is 200 unless the
// request itself is malformed.
func (h *RouteHandler) Batch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.BatchRouteRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if len(req.Requests) == 0 || len(req.Requests) > maxBatchSize {
		writeError(w, r, http.StatusBadRequest, "requests must contain between 1 and 100 items")
		return
	}

	reqs := make([]services.SolveRequest, 0, len(req.Requests))
	for _, item := range req.Requests {
		in, err := toSolveRequest(item)
		if err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		reqs = append(reqs, in)
	}

	limit := h.BatchLimit
	if limit < 1 {
		limit = 1
	}

	results, err := h.Solver.SolveBatch(r.Context(), reqs, limit)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	res := dto.BatchRouteResponse{Results: make([]dto.BatchItemResponse, 0, len(results))}
	for _, item := range results {
		out := dto.BatchItemResponse{Index: item.Index}
		if item.Err != nil {
			_, out.Error = errorStatus(r, item.Err)
		} else {
			route := toRouteResponse(item.Route)
			out.Route = &route
		}
		res.Results = append(res.Results, out)
	}

	writeJSON(w, r, http.StatusOK, res)
}
