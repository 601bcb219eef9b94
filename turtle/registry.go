package turtle

import (
	"sort"

	"github.com/aabizri/lsys"
)

// Letters bound by DefaultRegistry.
const (
	LetterForward lsys.Letter = 'F'
	LetterLeft    lsys.Letter = '-'
	LetterRight   lsys.Letter = '+'
	LetterPush    lsys.Letter = '['
	LetterPop     lsys.Letter = ']'
)

// Action is the operation bound to a letter.
type Action func(t *Turtle) error

// Forward draws a segment of length distance along the heading.
func Forward(distance float64) Action {
	return func(t *Turtle) error {
		return t.Forward(distance)
	}
}

// Jump moves by distance along the heading without drawing.
func Jump(distance float64) Action {
	return func(t *Turtle) error {
		return t.Jump(distance)
	}
}

// Left turns counterclockwise by angle degrees.
func Left(angle float64) Action {
	return func(t *Turtle) error {
		return t.Turn(angle)
	}
}

// Right turns clockwise by angle degrees.
func Right(angle float64) Action {
	return func(t *Turtle) error {
		return t.Turn(-angle)
	}
}

func PushState(t *Turtle) error {
	return t.Push()
}

func PopState(t *Turtle) error {
	return t.Pop()
}

func Noop(*Turtle) error {
	return nil
}

// Registry maps letters to actions. Letters without an action are skipped by
// the interpreter. A Registry must not be modified while a run uses it.
type Registry struct {
	actions map[lsys.Letter]Action
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{actions: make(map[lsys.Letter]Action)}
}

// DefaultRegistry binds
//
//	F  Forward(distance)
//	-  Left(left)
//	+  Right(right)
//	[  PushState
//	]  PopState
func DefaultRegistry(left, right, distance float64) *Registry {
	r := NewRegistry()
	r.Set(LetterForward, Forward(distance))
	r.Set(LetterLeft, Left(left))
	r.Set(LetterRight, Right(right))
	r.Set(LetterPush, PushState)
	r.Set(LetterPop, PopState)
	return r
}

// Set binds a to l, replacing any previous action. A nil action removes the
// binding.
func (r *Registry) Set(l lsys.Letter, a Action) {
	if a == nil {
		delete(r.actions, l)
		return
	}
	r.actions[l] = a
}

func (r *Registry) Delete(l lsys.Letter) {
	delete(r.actions, l)
}

func (r *Registry) Lookup(l lsys.Letter) (Action, bool) {
	if r == nil {
		return nil, false
	}
	a, ok := r.actions[l]
	return a, ok
}

// Letters returns the bound letters in ascending order.
func (r *Registry) Letters() []lsys.Letter {
	out := make([]lsys.Letter, 0, len(r.actions))
	for l := range r.actions {
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Clone returns an independent copy of r.
func (r *Registry) Clone() *Registry {
	c := &Registry{actions: make(map[lsys.Letter]Action, len(r.actions))}
	for l, a := range r.actions {
		c.actions[l] = a
	}
	return c
}
