// Package interchange imports & defines an L-system drawing program from an
// interchange format
package interchange

import (
	"context"

	"github.com/aabizri/lsys"
	"github.com/aabizri/lsys/turtle"
)

type Format interface {
	Import() (*Program, error)
}

// Program is everything needed to expand an axiom and draw the result.
type Program struct {
	Name       string
	Axiom      lsys.Word
	Table      *lsys.Table
	Iterations uint

	Registry *turtle.Registry
	Start    turtle.State
}

// Expand derives the axiom up to the program's iteration count.
func (p *Program) Expand(ctx context.Context) (lsys.Word, error) {
	ls := lsys.New(p.Axiom, p.Table)
	if err := ls.DerivateUntil(ctx, p.Iterations); err != nil {
		return nil, err
	}
	return ls.Export(), nil
}

// CheckLength fails with lsys.ErrLengthExceeded if the expanded word would be
// longer than ceiling.
func (p *Program) CheckLength(ceiling uint64) error {
	return lsys.CheckLength(p.Axiom, p.Table, p.Iterations, ceiling)
}

// Draw interprets word from the program's start state, with the program's
// registry unless in has its own. in is not modified.
func (p *Program) Draw(in *turtle.Interpreter, word lsys.Word, sink turtle.Sink) (turtle.Result, error) {
	run := *in
	if run.Registry == nil {
		run.Registry = p.Registry
	}
	return run.Run(word, p.Start, sink)
}
