// Package sink provides output backends consuming the primitives emitted by
// a turtle run.
//
// Encoders buffer the lines of a run and encode them, fitted into a page,
// when WriteTo is called.
package sink

import (
	"io"
	"math"
	"sort"
	"strings"

	"github.com/aabizri/lsys/turtle"
	"github.com/pkg/errors"
)

// Segment is a drawn line.
type Segment struct {
	From, To turtle.Point
}

// Box is an axis-aligned bounding box.
type Box struct {
	Min, Max turtle.Point
}

func (b Box) Width() float64  { return b.Max.X - b.Min.X }
func (b Box) Height() float64 { return b.Max.Y - b.Min.Y }

// Drawing collects the lines of a run. It is embedded by every Encoder.
type Drawing struct {
	segments []Segment
}

func (d *Drawing) Emit(p turtle.Primitive) error {
	if p.Kind == turtle.Line {
		d.segments = append(d.segments, Segment{From: p.From, To: p.To})
	}
	return nil
}

func (d *Drawing) Segments() []Segment {
	return d.segments
}

// Bounds returns the box holding every line. ok is false when nothing was
// drawn.
func (d *Drawing) Bounds() (b Box, ok bool) {
	if len(d.segments) == 0 {
		return Box{}, false
	}
	b = Box{
		Min: turtle.Point{X: math.Inf(1), Y: math.Inf(1)},
		Max: turtle.Point{X: math.Inf(-1), Y: math.Inf(-1)},
	}
	for _, s := range d.segments {
		for _, p := range [2]turtle.Point{s.From, s.To} {
			b.Min.X = math.Min(b.Min.X, p.X)
			b.Min.Y = math.Min(b.Min.Y, p.Y)
			b.Max.X = math.Max(b.Max.X, p.X)
			b.Max.Y = math.Max(b.Max.Y, p.Y)
		}
	}
	return b, true
}

// paths groups consecutive segments sharing an end point into polylines.
func (d *Drawing) paths() [][]turtle.Point {
	var out [][]turtle.Point
	for i, s := range d.segments {
		if i > 0 && d.segments[i-1].To == s.From {
			out[len(out)-1] = append(out[len(out)-1], s.To)
			continue
		}
		out = append(out, []turtle.Point{s.From, s.To})
	}
	return out
}

// Style controls how encoders lay out and paint a drawing.
type Style struct {
	Width, Height float64 // Page size
	Margin        float64 // Blank border around the drawing
	LineWidth     float64
	Stroke        string // Hex color of the lines
	Background    string // Hex color of the page, empty for none
}

var DefaultStyle = Style{
	Width:      800,
	Height:     800,
	Margin:     20,
	LineWidth:  1,
	Stroke:     "#000000",
	Background: "#ffffff",
}

// transform maps drawing coordinates onto a page with y pointing down.
type transform struct {
	scale      float64
	minX, maxY float64
	offX, offY float64
}

// fit scales b to fit the page left by the margins of s and centers it.
func fit(b Box, s Style) transform {
	aw := math.Max(s.Width-2*s.Margin, 0)
	ah := math.Max(s.Height-2*s.Margin, 0)

	scale := math.Inf(1)
	if w := b.Width(); w > 0 {
		scale = aw / w
	}
	if h := b.Height(); h > 0 {
		scale = math.Min(scale, ah/h)
	}
	if math.IsInf(scale, 1) {
		scale = 1
	}

	return transform{
		scale: scale,
		minX:  b.Min.X,
		maxY:  b.Max.Y,
		offX:  s.Margin + (aw-b.Width()*scale)/2,
		offY:  s.Margin + (ah-b.Height()*scale)/2,
	}
}

func (t transform) apply(p turtle.Point) (x, y float64) {
	return t.offX + (p.X-t.minX)*t.scale, t.offY + (t.maxY-p.Y)*t.scale
}

// Encoder is a Sink able to write what it received.
type Encoder interface {
	turtle.Sink
	io.WriterTo
}

var encoders = map[string]func(Style) Encoder{
	"svg":        func(s Style) Encoder { return NewSVG(s) },
	"eps":        func(s Style) Encoder { return NewEPS(s) },
	"png":        func(s Style) Encoder { return NewPNG(s) },
	"primitives": func(Style) Encoder { return &Recorder{} },
}

// New returns the Encoder registered under format, which is also the usual
// file extension of its output.
func New(format string, s Style) (Encoder, error) {
	f, ok := encoders[strings.ToLower(format)]
	if !ok {
		return nil, errors.Errorf("unknown output format %q (known: %s)", format, strings.Join(Formats(), ", "))
	}
	return f(s), nil
}

// Formats lists the formats known to New.
func Formats() []string {
	out := make([]string, 0, len(encoders))
	for f := range encoders {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

// countingWriter counts the bytes written through it.
type countingWriter struct {
	w io.Writer
	n int64
}

func (cw *countingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}
