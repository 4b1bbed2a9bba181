package dto

type PointRequest struct {
	X *float64 `json:"x"`
	Y *float64 `json:"y"`
}

type PointResponse struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type RouteRequest struct {
	Start  *PointRequest  `json:"start"`
	End    *PointRequest  `json:"end"`
	Points []PointRequest `json:"points"`
}

type RouteResponse struct {
	Route             []PointResponse `json:"route"`
	TotalDistance     float64         `json:"total_distance"`
	TotalDistanceText string          `json:"total_distance_text"`
}

type BatchRouteRequest struct {
	Requests []RouteRequest `json:"requests"`
}

type BatchItemResponse struct {
	Index int            `json:"index"`
	Route *RouteResponse `json:"route,omitempty"`
	Error string         `json:"error,omitempty"`
}

type BatchRouteResponse struct {
	Results []BatchItemResponse `json:"results"`
}
