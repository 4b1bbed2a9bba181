package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"nearest-route-service/internal/api/dto"
	"nearest-route-service/internal/domain"
	"nearest-route-service/internal/ports"
	"nearest-route-service/internal/services"
	"net/http"
)

const maxBodyBytes = 1 << 20

// statusClientClosedRequest is the non-standard code for a request the
// client abandoned before the response was written.
const statusClientClosedRequest = 499

const (
	msgNeedPoints = "please add at least two cities and specify both start and end points"
	msgNoPath     = "no path found between the start and end points"
)

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	writeJSON(w, r, status, map[string]string{"error": msg})
}

// decodeJSON reads exactly one JSON object from the body into v.
// It writes the 400 response itself and reports whether decoding succeeded.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return false
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return false
	}
	return true
}

func toPoint(p dto.PointRequest) (domain.Point, error) {
	if p.X == nil || p.Y == nil {
		return domain.Point{}, errors.New("point requires both x and y")
	}
	return domain.Point{X: *p.X, Y: *p.Y}, nil
}

func toEndpoint(p *dto.PointRequest, name string) (*domain.Point, error) {
	if p == nil {
		return nil, nil
	}
	pt, err := toPoint(*p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return &pt, nil
}

func toSolveRequest(req dto.RouteRequest) (services.SolveRequest, error) {
	start, err := toEndpoint(req.Start, "start")
	if err != nil {
		return services.SolveRequest{}, err
	}
	end, err := toEndpoint(req.End, "end")
	if err != nil {
		return services.SolveRequest{}, err
	}

	points := make([]domain.Point, 0, len(req.Points))
	for i, p := range req.Points {
		pt, err := toPoint(p)
		if err != nil {
			return services.SolveRequest{}, fmt.Errorf("points[%d]: %w", i, err)
		}
		points = append(points, pt)
	}

	return services.SolveRequest{Start: start, End: end, Points: points}, nil
}

func toPointResponse(p domain.Point) dto.PointResponse {
	return dto.PointResponse{X: p.X, Y: p.Y}
}

func toPointResponses(points []domain.Point) []dto.PointResponse {
	out := make([]dto.PointResponse, 0, len(points))
	for _, p := range points {
		out = append(out, toPointResponse(p))
	}
	return out
}

func toRouteResponse(r domain.Route) dto.RouteResponse {
	return dto.RouteResponse{
		Route:             toPointResponses(r.Points),
		TotalDistance:     r.Length,
		TotalDistanceText: fmt.Sprintf("%.2f", r.Length),
	}
}

func toBoardResponse(b *domain.Board) dto.BoardResponse {
	res := dto.BoardResponse{
		ID:        b.ID,
		Points:    toPointResponses(b.Points),
		Mode:      string(b.Mode),
		Solved:    b.Solved,
		UpdatedAt: b.UpdatedAt,
	}
	if b.Start != nil {
		p := toPointResponse(*b.Start)
		res.Start = &p
	}
	if b.End != nil {
		p := toPointResponse(*b.End)
		res.End = &p
	}
	if b.Route != nil {
		route := toRouteResponse(*b.Route)
		res.Route = &route
	}
	return res
}

// errorStatus maps domain and solver errors to an HTTP status and a
// user-facing message. Unknown errors are logged and reported as 500.
func errorStatus(r *http.Request, err error) (int, string) {
	switch {
	case errors.Is(err, services.ErrInsufficientPoints), errors.Is(err, services.ErrMissingEndpoint):
		return http.StatusUnprocessableEntity, msgNeedPoints
	case errors.Is(err, services.ErrNoPathFound):
		return http.StatusUnprocessableEntity, msgNoPath
	case errors.Is(err, ports.ErrBoardNotFound):
		return http.StatusNotFound, "board not found"
	case errors.Is(err, domain.ErrBoardSolved):
		return http.StatusConflict, domain.ErrBoardSolved.Error()
	case errors.Is(err, domain.ErrStartAlreadySet):
		return http.StatusConflict, domain.ErrStartAlreadySet.Error()
	case errors.Is(err, domain.ErrEndAlreadySet):
		return http.StatusConflict, domain.ErrEndAlreadySet.Error()
	case errors.Is(err, domain.ErrInvalidMode):
		return http.StatusBadRequest, "mode must be one of place, start, end"
	case errors.Is(err, context.Canceled):
		return statusClientClosedRequest, "request canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "request timed out"
	}

	log.Printf("request failed: method=%s path=%s err=%v", r.Method, r.URL.Path, err)
	return http.StatusInternalServerError, "internal server error"
}

func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := errorStatus(r, err)
	writeError(w, r, status, msg)
}
