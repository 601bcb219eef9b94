package sink

import (
	"bufio"
	"fmt"
	"io"
	"math"

	"github.com/gogpu/gg"
)

// EPS encodes a drawing as Encapsulated PostScript.
type EPS struct {
	Drawing
	Style Style
}

func NewEPS(s Style) *EPS {
	return &EPS{Style: s}
}

func (e *EPS) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	bw := bufio.NewWriter(cw)

	fmt.Fprintf(bw, "%%!PS-Adobe-3.0 EPSF-3.0\n%%%%BoundingBox: 0 0 %d %d\n%%%%EndComments\n",
		int(math.Ceil(e.Style.Width)), int(math.Ceil(e.Style.Height)))

	if e.Style.Background != "" {
		bg := gg.Hex(e.Style.Background)
		fmt.Fprintf(bw, "%s %s %s setrgbcolor\n0 0 %s %s rectfill\n",
			num(bg.R), num(bg.G), num(bg.B), num(e.Style.Width), num(e.Style.Height))
	}

	if b, ok := e.Bounds(); ok {
		t := fit(b, e.Style)
		fg := gg.Hex(e.Style.Stroke)
		fmt.Fprintf(bw, "%s %s %s setrgbcolor\n%s setlinewidth\n1 setlinecap\n1 setlinejoin\nnewpath\n",
			num(fg.R), num(fg.G), num(fg.B), num(e.Style.LineWidth))
		for _, path := range e.paths() {
			for j, p := range path {
				x, y := t.apply(p)
				// PostScript has y pointing up
				y = e.Style.Height - y
				op := "lineto"
				if j == 0 {
					op = "moveto"
				}
				fmt.Fprintf(bw, "%s %s %s\n", num(x), num(y), op)
			}
		}
		bw.WriteString("stroke\n")
	}

	bw.WriteString("showpage\n%%EOF\n")
	err := bw.Flush()
	return cw.n, err
}
