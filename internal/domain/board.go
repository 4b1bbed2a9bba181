package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrBoardSolved     = errors.New("board is already solved; clear it to place new points")
	ErrStartAlreadySet = errors.New("start point already selected; clear it to select a new one")
	ErrEndAlreadySet   = errors.New("end point already selected; clear it to select a new one")
	ErrInvalidMode     = errors.New("invalid placement mode")
)

// Mode decides what the next placed point becomes.
type Mode string

const (
	ModePlace Mode = "place"
	ModeStart Mode = "start"
	ModeEnd   Mode = "end"
)

// ParseMode validates a mode received from a caller.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(s); m {
	case ModePlace, ModeStart, ModeEnd:
		return m, nil
	}
	return "", fmt.Errorf("parse mode %q: %w", s, ErrInvalidMode)
}

// Drawing surface aggregate holding the user's points and, once solved, the route.
// All interaction state lives here and is passed explicitly between the
// presentation layer and the route builder.
type Board struct {
	ID        string
	Start     *Point
	End       *Point
	Points    []Point
	Mode      Mode
	Solved    bool
	Route     *Route
	UpdatedAt time.Time
}

func NewBoard(id string) *Board {
	return &Board{
		ID:        id,
		Points:    []Point{},
		Mode:      ModePlace,
		UpdatedAt: time.Now().UTC(),
	}
}

// Arm the board so the next placed point becomes the start point.
func (b *Board) SelectStart() {
	b.Mode = ModeStart
}

// Arm the board so the next placed point becomes the end point.
func (b *Board) SelectEnd() {
	b.Mode = ModeEnd
}

// Switch the placement mode.
func (b *Board) SetMode(m Mode) error {
	switch m {
	case ModeStart:
		b.SelectStart()
	case ModeEnd:
		b.SelectEnd()
	case ModePlace:
		b.Mode = ModePlace
	default:
		return fmt.Errorf("set mode: board %s: %w", b.ID, ErrInvalidMode)
	}
	return nil
}

// Place a point according to the current mode.
// The start and end modes are one-shot: after a successful placement the
// board returns to placing intermediate points.
func (b *Board) Place(p Point) error {
	if b.Solved {
		return fmt.Errorf("place point: board %s: %w", b.ID, ErrBoardSolved)
	}

	switch b.Mode {
	case ModeStart:
		if b.Start != nil {
			return fmt.Errorf("place point: board %s: %w", b.ID, ErrStartAlreadySet)
		}
		b.Start = &p
		b.Mode = ModePlace
	case ModeEnd:
		if b.End != nil {
			return fmt.Errorf("place point: board %s: %w", b.ID, ErrEndAlreadySet)
		}
		b.End = &p
		b.Mode = ModePlace
	default:
		b.Points = append(b.Points, p)
	}

	b.touch()
	return nil
}

// Record a computed route on the board and mark it solved.
func (b *Board) ApplyRoute(route *Route) error {
	if route == nil {
		return fmt.Errorf("apply route: board %s: route must be non-nil", b.ID)
	}
	if want := len(b.Points) + 2; len(route.Points) != want {
		return fmt.Errorf("apply route: board %s: route has %d points, want %d", b.ID, len(route.Points), want)
	}

	b.Route = route
	b.Solved = true
	b.touch()
	return nil
}

// Reset the board to its empty state.
func (b *Board) Clear() {
	b.Start = nil
	b.End = nil
	b.Points = []Point{}
	b.Mode = ModePlace
	b.Solved = false
	b.Route = nil
	b.touch()
}

// Clone returns a deep copy that shares no memory with b.
func (b *Board) Clone() *Board {
	if b == nil {
		return nil
	}

	out := *b
	if b.Start != nil {
		s := *b.Start
		out.Start = &s
	}
	if b.End != nil {
		e := *b.End
		out.End = &e
	}
	out.Points = append([]Point{}, b.Points...)
	if b.Route != nil {
		r := Route{
			Points: append([]Point{}, b.Route.Points...),
			Length: b.Route.Length,
		}
		out.Route = &r
	}
	return &out
}

func (b *Board) touch() {
	b.UpdatedAt = time.Now().UTC()
}
