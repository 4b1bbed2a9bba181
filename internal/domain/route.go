package domain

// Represents the visiting order computed for one solve.
// Points begins with the start point, continues through every intermediate
// point exactly once and ends with the end point. Length is the total
// Euclidean length of the polyline through Points.
// A Route is immutable planning data and contains no side effects.
type Route struct {
	Points []Point
	Length float64
}

// Return the intermediate stops, excluding start and end.
func (r Route) Stops() []Point {
	if len(r.Points) < 2 {
		return nil
	}
	return r.Points[1 : len(r.Points)-1]
}
