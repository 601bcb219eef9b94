// Package turtle interprets words as drawing commands for a cursor with a
// position, a heading and a stack of saved states.
package turtle

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aabizri/lsys"
	"github.com/pkg/errors"
)

// Turtle is the state of one interpretation run, handed to every Action.
type Turtle struct {
	State State

	stack Stack
	sink  Sink
}

// New returns a Turtle starting at initial and emitting to sink.
// A nil sink discards primitives.
func New(initial State, sink Sink) *Turtle {
	if sink == nil {
		sink = Discard
	}
	return &Turtle{State: initial, sink: sink}
}

// Forward moves along the heading and emits a Line.
func (t *Turtle) Forward(distance float64) error {
	from := t.State.Position
	t.State = t.State.Advance(distance)
	return t.sink.Emit(Primitive{Kind: Line, From: from, To: t.State.Position, Heading: t.State.Heading})
}

// Jump moves along the heading and emits a Move.
func (t *Turtle) Jump(distance float64) error {
	from := t.State.Position
	t.State = t.State.Advance(distance)
	return t.sink.Emit(Primitive{Kind: Move, From: from, To: t.State.Position, Heading: t.State.Heading})
}

// Turn rotates counterclockwise by angle degrees.
func (t *Turtle) Turn(angle float64) error {
	t.State = t.State.Rotate(angle)
	p := t.State.Position
	return t.sink.Emit(Primitive{Kind: Turn, From: p, To: p, Heading: t.State.Heading})
}

// Push saves the current state.
func (t *Turtle) Push() error {
	t.stack.Push(t.State)
	p := t.State.Position
	return t.sink.Emit(Primitive{Kind: Push, From: p, To: p, Heading: t.State.Heading})
}

// Pop restores the most recently saved state.
func (t *Turtle) Pop() error {
	saved, err := t.stack.Pop()
	if err != nil {
		return err
	}
	from := t.State.Position
	t.State = saved
	return t.sink.Emit(Primitive{Kind: Pop, From: from, To: saved.Position, Heading: saved.Heading})
}

// Depth returns the number of saved states.
func (t *Turtle) Depth() int {
	return t.stack.Len()
}

// UnbalancedStackError reports a pop without a matching push.
type UnbalancedStackError struct {
	Position int         // Index of the letter in the word
	Letter   lsys.Letter // Letter bound to the pop
}

func (e *UnbalancedStackError) Error() string {
	return fmt.Sprintf("%q at %d: %v", rune(e.Letter), e.Position, lsys.ErrUnbalancedStack)
}

func (e *UnbalancedStackError) Is(target error) bool {
	return target == lsys.ErrUnbalancedStack
}

// Result summarizes an interpretation run.
type Result struct {
	Final        State
	OpenBranches int // Saved states left on the stack at the end of the run
	Actions      int // Letters that had an action
}

// Interpreter runs words against a Registry.
type Interpreter struct {
	Registry *Registry

	// Strict makes a run ending with saved states on the stack fail with
	// lsys.ErrUnclosedBranch. Otherwise it is only reported in Result.
	Strict bool

	// Logger defaults to discarding.
	Logger *slog.Logger
}

// NewInterpreter returns a lenient Interpreter for r.
func NewInterpreter(r *Registry) *Interpreter {
	return &Interpreter{Registry: r}
}

func (in *Interpreter) logger() *slog.Logger {
	if in.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return in.Logger
}

// Run executes the action of every letter of word, left to right, starting
// from initial. The run stops at the first failing action.
func (in *Interpreter) Run(word lsys.Word, initial State, sink Sink) (Result, error) {
	t := New(initial, sink)
	res := Result{}

	for i, l := range word {
		action, ok := in.Registry.Lookup(l)
		if !ok {
			continue
		}
		res.Actions++
		if err := action(t); err != nil {
			res.Final = t.State
			res.OpenBranches = t.Depth()
			if errors.Is(err, lsys.ErrUnbalancedStack) {
				return res, &UnbalancedStackError{Position: i, Letter: l}
			}
			return res, errors.Wrapf(err, "letter %q at %d", rune(l), i)
		}
	}

	res.Final = t.State
	res.OpenBranches = t.Depth()
	if res.OpenBranches > 0 {
		in.logger().LogAttrs(context.Background(), slog.LevelWarn, "run ended with open branches",
			slog.Int("open_branches", res.OpenBranches),
			slog.Int("length", len(word)),
		)
		if in.Strict {
			return res, errors.Wrapf(lsys.ErrUnclosedBranch, "%d saved states left", res.OpenBranches)
		}
	}
	return res, nil
}
