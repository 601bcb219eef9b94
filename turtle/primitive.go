package turtle

import "fmt"

// Kind tells a Sink what a Primitive describes.
type Kind uint8

const (
	// Line is a drawn segment from From to To.
	Line Kind = iota
	// Move is a pen-up displacement from From to To.
	Move
	// Turn changes the heading only and carries no geometry.
	Turn
	// Push saves the state at From.
	Push
	// Pop restores the state at To, From being where the turtle was.
	Pop
)

func (k Kind) String() string {
	switch k {
	case Line:
		return "line"
	case Move:
		return "move"
	case Turn:
		return "turn"
	case Push:
		return "push"
	case Pop:
		return "pop"
	default:
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
}

// Primitive is an abstract drawing command emitted by the turtle.
// Heading is the heading after the command.
type Primitive struct {
	Kind     Kind
	From, To Point
	Heading  float64
}

func (p Primitive) String() string {
	switch p.Kind {
	case Turn:
		return fmt.Sprintf("turn %g", p.Heading)
	case Push:
		return fmt.Sprintf("push %s", p.From)
	default:
		return fmt.Sprintf("%s %s -> %s", p.Kind, p.From, p.To)
	}
}

// Sink consumes the primitives of an interpretation run.
type Sink interface {
	Emit(p Primitive) error
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(p Primitive) error

func (f SinkFunc) Emit(p Primitive) error {
	return f(p)
}

type discard struct{}

func (discard) Emit(Primitive) error { return nil }

// Discard drops every primitive.
var Discard Sink = discard{}
