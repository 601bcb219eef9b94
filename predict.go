package lsys

import (
	"math/bits"

	"github.com/pkg/errors"
)

// PredictLength returns the length of Expand(axiom, table, n) without
// building the word, by tracking how many of each letter every generation
// holds. ok is false if the length does not fit in an uint64.
func PredictLength(axiom Word, table *Table, n uint) (length uint64, ok bool) {
	counts := letterCounts(axiom)

	// Letter counts of each body, reused in all generations
	bodyCounts := make(map[Letter]map[Letter]uint64, table.Len())
	for _, r := range table.Rules() {
		bodyCounts[r.On] = letterCounts(r.Body)
	}

	for i := uint(0); i < n; i++ {
		next := make(map[Letter]uint64, len(counts))
		for l, c := range counts {
			produced, rewritten := bodyCounts[l]
			if !rewritten {
				if next[l], ok = add(next[l], c); !ok {
					return 0, false
				}
				continue
			}
			for pl, pc := range produced {
				p, ok := mul(c, pc)
				if !ok {
					return 0, false
				}
				if next[pl], ok = add(next[pl], p); !ok {
					return 0, false
				}
			}
		}
		counts = next
	}

	for _, c := range counts {
		if length, ok = add(length, c); !ok {
			return 0, false
		}
	}
	return length, true
}

// CheckLength returns an error matching ErrLengthExceeded when expanding axiom
// n times would produce a word longer than ceiling.
func CheckLength(axiom Word, table *Table, n uint, ceiling uint64) error {
	length, ok := PredictLength(axiom, table, n)
	if !ok {
		return errors.Wrapf(ErrLengthExceeded, "generation %d overflows", n)
	}
	if length > ceiling {
		return errors.Wrapf(ErrLengthExceeded, "generation %d has %d letters, ceiling is %d", n, length, ceiling)
	}
	return nil
}

func letterCounts(w Word) map[Letter]uint64 {
	counts := make(map[Letter]uint64)
	for _, l := range w {
		counts[l]++
	}
	return counts
}

func add(a, b uint64) (uint64, bool) {
	s, carry := bits.Add64(a, b, 0)
	return s, carry == 0
}

func mul(a, b uint64) (uint64, bool) {
	hi, lo := bits.Mul64(a, b)
	return lo, hi == 0
}
