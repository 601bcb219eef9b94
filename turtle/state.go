package turtle

import (
	"math"
	"strconv"

	"github.com/aabizri/lsys"
)

// Point is a position on the drawing plane, y pointing up.
type Point struct {
	X, Y float64
}

func (p Point) String() string {
	return "(" + strconv.FormatFloat(p.X, 'f', -1, 64) + ", " + strconv.FormatFloat(p.Y, 'f', -1, 64) + ")"
}

// State is the position and heading of the turtle. Heading is in degrees,
// counterclockwise from the x axis.
type State struct {
	Position Point
	Heading  float64
}

// Advance returns the state moved by distance along its heading.
func (s State) Advance(distance float64) State {
	dx, dy := direction(s.Heading)
	s.Position = Point{
		X: s.Position.X + distance*dx,
		Y: s.Position.Y + distance*dy,
	}
	return s
}

// Rotate returns the state turned counterclockwise by angle degrees, its
// heading normalized to [0, 360).
func (s State) Rotate(angle float64) State {
	s.Heading = normalize(s.Heading + angle)
	return s
}

func normalize(heading float64) float64 {
	h := math.Mod(heading, 360)
	if h < 0 {
		h += 360
	}
	return h
}

// direction returns the unit vector for heading. Right angles are exact so
// that axis-aligned drawings land on exact coordinates.
func direction(heading float64) (dx, dy float64) {
	switch h := normalize(heading); h {
	case 0:
		return 1, 0
	case 90:
		return 0, 1
	case 180:
		return -1, 0
	case 270:
		return 0, -1
	default:
		dy, dx = math.Sincos(h * math.Pi / 180)
		return dx, dy
	}
}

// Stack is a LIFO of saved states.
type Stack struct {
	states []State
}

func (s *Stack) Push(st State) {
	s.states = append(s.states, st)
}

// Pop removes and returns the most recently pushed state. It fails with
// lsys.ErrUnbalancedStack when the stack is empty.
func (s *Stack) Pop() (State, error) {
	if len(s.states) == 0 {
		return State{}, lsys.ErrUnbalancedStack
	}
	st := s.states[len(s.states)-1]
	s.states = s.states[:len(s.states)-1]
	return st, nil
}

func (s *Stack) Len() int {
	return len(s.states)
}
