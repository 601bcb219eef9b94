package sink

import (
	"bufio"
	"io"

	"github.com/aabizri/lsys/turtle"
)

// Recorder keeps every primitive of a run, in order.
type Recorder struct {
	Primitives []turtle.Primitive
}

func (r *Recorder) Emit(p turtle.Primitive) error {
	r.Primitives = append(r.Primitives, p)
	return nil
}

// Lines returns the Line primitives only.
func (r *Recorder) Lines() []Segment {
	var out []Segment
	for _, p := range r.Primitives {
		if p.Kind == turtle.Line {
			out = append(out, Segment{From: p.From, To: p.To})
		}
	}
	return out
}

// WriteTo writes one primitive per line.
func (r *Recorder) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	bw := bufio.NewWriter(cw)
	for _, p := range r.Primitives {
		if _, err := bw.WriteString(p.String() + "\n"); err != nil {
			return cw.n, err
		}
	}
	err := bw.Flush()
	return cw.n, err
}
