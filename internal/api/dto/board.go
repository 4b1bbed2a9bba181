package dto

import "time"

type ModeRequest struct {
	Mode string `json:"mode"`
}

type BoardResponse struct {
	ID        string          `json:"id"`
	Start     *PointResponse  `json:"start"`
	End       *PointResponse  `json:"end"`
	Points    []PointResponse `json:"points"`
	Mode      string          `json:"mode"`
	Solved    bool            `json:"solved"`
	Route     *RouteResponse  `json:"route,omitempty"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type ListBoardsResponse struct {
	Boards []BoardResponse `json:"boards"`
}
