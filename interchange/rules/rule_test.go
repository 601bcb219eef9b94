package rules

import (
	"testing"

	"github.com/aabizri/lsys"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		on   lsys.Letter
		body string
	}{
		{"X -> F-[[X]+X]+F[+FX]-X", 'X', "F-[[X]+X]+F[+FX]-X"},
		{"F->FF", 'F', "FF"},
		{"  A   ->   B-A-B  ", 'A', "B-A-B"},
		{"\tλ -> λλ\n", 'λ', "λλ"},
		{"+ -> +", '+', "+"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			r, err := Parse(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.on, r.On)
			assert.Equal(t, tt.body, r.Body.String())
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	for _, in := range []string{
		"XY -> Z",
		"X -> ",
		"X Z",
		" -> F",
		"X -> F -> G",
		"",
	} {
		t.Run(in, func(t *testing.T) {
			_, err := Parse(in)
			require.Error(t, err)
			assert.ErrorIs(t, err, lsys.ErrMalformedRule)

			var mre *MalformedRuleError
			require.True(t, errors.As(err, &mre))
			assert.Equal(t, in, mre.Rule)
			assert.Equal(t, -1, mre.Index)
		})
	}
}

func TestParseAll(t *testing.T) {
	tab, err := ParseAll([]string{"X -> F-[[X]+X]+F[+FX]-X", "F -> FF"})
	require.NoError(t, err)
	assert.Equal(t, 2, tab.Len())

	body, ok := tab.Lookup('F')
	require.True(t, ok)
	assert.Equal(t, "FF", body.String())
}

func TestParseAll_LastRuleWins(t *testing.T) {
	ss := []string{"F -> FF", "X -> FX", "F -> F+F"}
	tab, err := ParseAll(ss)
	require.NoError(t, err)

	body, _ := tab.Lookup('F')
	assert.Equal(t, "F+F", body.String())
	assert.Equal(t, []lsys.Letter{'F'}, Duplicates(ss))
}

func TestParseAll_RejectsWholeSet(t *testing.T) {
	tab, err := ParseAll([]string{"F -> FF", "XY -> Z", "X -> F"})
	assert.Nil(t, tab)
	assert.ErrorIs(t, err, lsys.ErrMalformedRule)
	assert.Contains(t, err.Error(), "rule #1")

	var mre *MalformedRuleError
	require.True(t, errors.As(err, &mre))
	assert.Equal(t, 1, mre.Index)
	assert.Equal(t, "XY -> Z", mre.Rule)
}
