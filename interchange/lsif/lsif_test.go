package lsif

import (
	"context"
	"io"
	"math"
	"strings"
	"testing"

	"github.com/aabizri/lsys"
	"github.com/aabizri/lsys/turtle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const stream = `
name: plant
axiom: X
rules:
  - X -> F-[[X]+X]+F[+FX]-X
  - F -> FF
iterations: 2
angle: 90
distance: 2
---
name: sierpinski
axiom: B
rules: ['A -> B-A-B', 'B -> A+B+A']
iterations: 2
distance: 1
constants: {step: 0.2}
start: {x: -1, y: "2 * 3", heading: 0}
actions:
  A: forward step
  B: forward step
  "-": right 60
  "+": left 360 / 6
`

func decodeAll(t *testing.T, in string) []*Format {
	t.Helper()
	dec := NewDecoder(strings.NewReader(in))
	var out []*Format
	for {
		f, err := dec.Decode()
		if err == io.EOF {
			return out
		}
		require.NoError(t, err)
		out = append(out, f)
	}
}

func TestDecode(t *testing.T) {
	formats := decodeAll(t, stream)
	require.Len(t, formats, 2)

	assert.Equal(t, "plant", formats[0].Name)
	assert.Equal(t, []string{"X -> F-[[X]+X]+F[+FX]-X", "F -> FF"}, formats[0].Rules)
	assert.Equal(t, Expr("90"), formats[0].Angle)
	assert.Equal(t, uint(2), formats[0].Iterations)

	assert.Equal(t, Expr("2 * 3"), formats[1].Start.Y)
	assert.Equal(t, "forward step", formats[1].Actions["A"])
}

func TestDecode_UnknownField(t *testing.T) {
	_, err := NewDecoder(strings.NewReader("axiom: X\nangel: 90\n")).Decode()
	assert.Error(t, err)
}

func TestImport_Plant(t *testing.T) {
	p, err := decodeAll(t, stream)[0].Import()
	require.NoError(t, err)

	assert.Equal(t, "X", p.Axiom.String())
	assert.Equal(t, 2, p.Table.Len())
	assert.Equal(t, turtle.State{Heading: DefaultHeading}, p.Start)

	word, err := p.Expand(context.Background())
	require.NoError(t, err)
	assert.Equal(t, lsys.Expand(p.Axiom, p.Table, 2).String(), word.String())

	res, err := p.Draw(turtle.NewInterpreter(nil), word, nil)
	require.NoError(t, err)
	assert.Equal(t, turtle.State{Position: turtle.Point{X: -4, Y: 8}, Heading: 270}, res.Final)
}

func TestImport_ActionOverrides(t *testing.T) {
	p, err := decodeAll(t, stream)[1].Import()
	require.NoError(t, err)
	assert.Equal(t, turtle.State{Position: turtle.Point{X: -1, Y: 6}, Heading: 0}, p.Start)

	// B -> A+B+A: three steps of 0.2 turning left 60 twice
	tu := turtle.New(turtle.State{}, nil)
	for _, l := range lsys.ParseWord("A+B+A") {
		a, ok := p.Registry.Lookup(l)
		require.True(t, ok)
		require.NoError(t, a(tu))
	}
	assert.InDelta(t, 0.2+0.1-0.1, tu.State.Position.X, 1e-12)
	assert.InDelta(t, 2*0.2*math.Sqrt(3)/2, tu.State.Position.Y, 1e-12)
	assert.Equal(t, 120.0, tu.State.Heading)

	a, ok := p.Registry.Lookup('-')
	require.True(t, ok)
	require.NoError(t, a(tu))
	assert.InDelta(t, 60.0, tu.State.Heading, 1e-12)
}

func TestImport_Errors(t *testing.T) {
	tests := map[string]string{
		"missing axiom":       "rules: [F -> FF]",
		"malformed rule":      "axiom: F\nrules: ['FF -> F']",
		"undefined constant":  "axiom: F\nangle: 360 / n",
		"bad expression":      "axiom: F\ndistance: 2 *",
		"non numeric":         "axiom: F\ndistance: 1 > 0",
		"long action letter":  "axiom: F\nactions: {AB: noop}",
		"unknown action":      "axiom: F\nactions: {A: fly 2}",
		"missing argument":    "axiom: F\nactions: {A: forward}",
		"extraneous argument": "axiom: F\nactions: {A: push 2}",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			formats := decodeAll(t, doc)
			require.Len(t, formats, 1)
			_, err := formats[0].Import()
			assert.Error(t, err)
		})
	}
}

func TestImport_MalformedRuleIsReported(t *testing.T) {
	_, err := decodeAll(t, "axiom: F\nrules: ['X Z']")[0].Import()
	assert.ErrorIs(t, err, lsys.ErrMalformedRule)
}

func TestExpr_Evaluate(t *testing.T) {
	env := Constants{"n": 4}
	tests := []struct {
		expr Expr
		want float64
	}{
		{"", 7},
		{"12.5", 12.5},
		{"360 / n", 90},
		{"sqrt(n) * 3", 6},
		{"pow(2, n)", 16},
		{"cos(60)", 0.5},
		{"pi", math.Pi},
	}
	for _, tt := range tests {
		got, err := tt.expr.Evaluate(env, 7)
		require.NoError(t, err, tt.expr)
		assert.InDelta(t, tt.want, got, 1e-12, tt.expr)
	}
}
