package turtle

import (
	"math"
	"testing"

	"github.com/aabizri/lsys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestState_AdvanceRightAngles(t *testing.T) {
	tests := []struct {
		heading float64
		want    Point
	}{
		{0, Point{3, 0}},
		{90, Point{0, 3}},
		{180, Point{-3, 0}},
		{270, Point{0, -3}},
		{-90, Point{0, -3}},
		{450, Point{0, 3}},
	}
	for _, tt := range tests {
		got := State{Heading: tt.heading}.Advance(3)
		assert.Equal(t, tt.want, got.Position, "heading %v", tt.heading)
		assert.Equal(t, tt.heading, got.Heading)
	}
}

func TestState_AdvanceOblique(t *testing.T) {
	got := State{Heading: 60}.Advance(2)
	assert.InDelta(t, 1, got.Position.X, 1e-12)
	assert.InDelta(t, math.Sqrt(3), got.Position.Y, 1e-12)
}

func TestState_Rotate(t *testing.T) {
	assert.Equal(t, 0.0, State{Heading: 270}.Rotate(90).Heading)
	assert.Equal(t, 300.0, State{Heading: 0}.Rotate(-60).Heading)
	assert.Equal(t, 45.0, State{Heading: 90}.Rotate(-45-360).Heading)
}

func TestStack(t *testing.T) {
	var s Stack
	_, err := s.Pop()
	assert.ErrorIs(t, err, lsys.ErrUnbalancedStack)

	a := State{Position: Point{1, 2}, Heading: 30}
	b := State{Position: Point{-1, 0}, Heading: 90}
	s.Push(a)
	s.Push(b)
	assert.Equal(t, 2, s.Len())

	got, err := s.Pop()
	require.NoError(t, err)
	assert.Equal(t, b, got)
	got, err = s.Pop()
	require.NoError(t, err)
	assert.Equal(t, a, got)
	assert.Equal(t, 0, s.Len())
}
