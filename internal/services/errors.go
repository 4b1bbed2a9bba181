package services

import "errors"

var (
	// Fewer intermediate points than the builder requires.
	ErrInsufficientPoints = errors.New("insufficient points")
	// Start or end point is absent.
	ErrMissingEndpoint = errors.New("missing endpoint")
	// No remaining point could be reached from the current one.
	// With a finite-coordinate input the implicit graph is complete, so this
	// only surfaces when distances are NaN or infinite.
	ErrNoPathFound = errors.New("no path found")
)
