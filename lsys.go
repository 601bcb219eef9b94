// Package lsys implements deterministic context-free L-systems: an axiom is
// rewritten generation after generation by substituting, in parallel, every
// letter that has a production in a Table.
package lsys

import (
	"context"
	"runtime"
	"sync"

	"golang.org/x/sync/errgroup"
)

// DefaultSubsectionMinimumSize is the smallest section of a word handed to a
// single worker during a derivation.
const DefaultSubsectionMinimumSize = 1024

var DefaultMaxWorkers = runtime.NumCPU()

// Expand rewrites axiom n times using table and returns the resulting word.
// Every letter of a generation is rewritten against the previous generation
// only: a body inserted during a pass is never rewritten in that same pass.
// With n == 0 a copy of axiom is returned.
//
// The length of the result can grow exponentially with n; callers should
// bound it beforehand, see PredictLength.
func Expand(axiom Word, table *Table, n uint) Word {
	current := make(Word, len(axiom))
	copy(current, axiom)
	for i := uint(0); i < n; i++ {
		next := make(Word, outputSize(current, table))
		rewrite(next, current, table)
		current = next
	}
	return current
}

// outputSize returns the length input will have once rewritten.
func outputSize(input Word, table *Table) int {
	var val int
	for _, l := range input {
		if body, ok := table.Lookup(l); ok {
			val += len(body)
		} else {
			val++
		}
	}
	return val
}

// rewrite writes the rewriting of input into output, which must have been
// sized with outputSize.
func rewrite(output Word, input Word, table *Table) {
	outputCursor := 0
	for _, l := range input {
		if body, ok := table.Lookup(l); ok {
			outputCursor += copy(output[outputCursor:], body)
		} else {
			output[outputCursor] = l
			outputCursor++
		}
	}
}

// LSystem holds the current generation of an axiom being derived with a
// Table. Derivations of large words are split in sections rewritten
// concurrently.
type LSystem struct {
	axiom Word
	table *Table

	generation uint
	word       Word

	mu sync.Mutex

	subsectionMinimumSize int
	maxWorkers            int
}

// New returns an LSystem at generation 0.
func New(axiom Word, table *Table) *LSystem {
	own := make(Word, len(axiom))
	copy(own, axiom)
	word := make(Word, len(axiom))
	copy(word, axiom)

	return &LSystem{
		axiom:                 own,
		table:                 table,
		word:                  word,
		subsectionMinimumSize: DefaultSubsectionMinimumSize,
		maxWorkers:            DefaultMaxWorkers,
	}
}

func (ls *LSystem) SetSubsectionMinimumSize(size uint) {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	if size == 0 {
		size = 1
	}
	ls.subsectionMinimumSize = int(size)
}

func (ls *LSystem) SetMaxWorkers(n uint) {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	if n == 0 {
		n = 1
	}
	ls.maxWorkers = int(n)
}

// splits calculates the number of sections for the current word, the size of
// each one and how many of the first sections get one more letter.
func (ls *LSystem) splits() (splits int, size int, rem int) {
	l := len(ls.word)

	if v := l / ls.subsectionMinimumSize; v == 0 {
		splits = 1
	} else if v < ls.maxWorkers {
		splits = v
	} else {
		splits = ls.maxWorkers
	}

	return splits, l / splits, l % splits
}

// Derivate runs one generation of the rewriting:
//   - split the current word into sections
//   - calculate the output size of each section, concurrently
//   - allocate a common output word and reslice it per section
//   - rewrite each section into its slice of the output, concurrently
func (ls *LSystem) Derivate(ctx context.Context) error {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	// 0. Sections bounds
	splits, size, rem := ls.splits()
	bounds := make([]int, splits+1)
	for i := 0; i < splits; i++ {
		thisSize := size
		if i < rem {
			thisSize++
		}
		bounds[i+1] = bounds[i] + thisSize
	}

	// 1. Output sizes
	sectionOutputSizes := make([]int, splits)
	var sizing errgroup.Group
	for i := 0; i < splits; i++ {
		sizing.Go(func() error {
			sectionOutputSizes[i] = outputSize(ls.word[bounds[i]:bounds[i+1]], ls.table)
			return nil
		})
	}
	if err := sizing.Wait(); err != nil {
		return err
	}

	// 2. Common output
	var total int
	for _, s := range sectionOutputSizes {
		total += s
	}
	output := make(Word, total)

	// 3. Rewrite
	var rewriting errgroup.Group
	cursor := 0
	for i := 0; i < splits; i++ {
		outputSlice := output[cursor : cursor+sectionOutputSizes[i]]
		cursor += sectionOutputSizes[i]
		rewriting.Go(func() error {
			rewrite(outputSlice, ls.word[bounds[i]:bounds[i+1]], ls.table)
			return nil
		})
	}
	if err := rewriting.Wait(); err != nil {
		return err
	}

	ls.word = output
	ls.generation++

	return nil
}

// DerivateUntil runs derivations until the given generation is reached.
// It stops early when ctx is done.
func (ls *LSystem) DerivateUntil(ctx context.Context, generation uint) error {
	for ls.Generation() < generation {
		if err := ls.Derivate(ctx); err != nil {
			return err
		}
	}
	return nil
}

// Reset brings the LSystem back to its axiom.
func (ls *LSystem) Reset() {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	ls.word = make(Word, len(ls.axiom))
	copy(ls.word, ls.axiom)
	ls.generation = 0
}

// Export returns a copy of the current word.
func (ls *LSystem) Export() Word {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	out := make(Word, len(ls.word))
	copy(out, ls.word)
	return out
}

func (ls *LSystem) Generation() uint {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	return ls.generation
}
