package domain

// Immutable position on the 2D surface.
// A Point has no identity beyond its coordinates.
type Point struct {
	X float64
	Y float64
}
