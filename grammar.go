package lsys

import (
	"sort"
	"strings"
)

// Letter is a single symbol of an L-system alphabet.
type Letter rune

// Word is an ordered sequence of letters, the subject of rewriting and of
// interpretation.
type Word []Letter

// ParseWord converts a string into a Word, one letter per rune.
func ParseWord(s string) Word {
	w := make(Word, 0, len(s))
	for _, r := range s {
		w = append(w, Letter(r))
	}
	return w
}

// Word stringifier
func (w Word) String() string {
	var sb strings.Builder
	sb.Grow(len(w))
	for _, l := range w {
		sb.WriteRune(rune(l))
	}
	return sb.String()
}

// Rule is a production rewriting a single letter into a non-empty body.
type Rule struct {
	On   Letter
	Body Word
}

func (r Rule) String() string {
	return string(r.On) + " -> " + r.Body.String()
}

// Table maps each letter to the body of its production.
// It is immutable once built and safe for concurrent reads.
type Table struct {
	bodies map[Letter]Word
}

// NewTable builds a Table from the given rules. A later rule for the same
// letter replaces an earlier one.
func NewTable(rules ...Rule) *Table {
	t := &Table{bodies: make(map[Letter]Word, len(rules))}
	for _, r := range rules {
		body := make(Word, len(r.Body))
		copy(body, r.Body)
		t.bodies[r.On] = body
	}
	return t
}

// Lookup returns the body associated with l, if any.
// The returned word must not be modified.
func (t *Table) Lookup(l Letter) (Word, bool) {
	if t == nil {
		return nil, false
	}
	body, ok := t.bodies[l]
	return body, ok
}

// Len returns the number of productions.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.bodies)
}

// Rules returns the productions ordered by letter.
func (t *Table) Rules() []Rule {
	out := make([]Rule, 0, t.Len())
	if t == nil {
		return out
	}
	for l, body := range t.bodies {
		out = append(out, Rule{On: l, Body: body})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].On < out[j].On
	})
	return out
}
