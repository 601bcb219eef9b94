package sink

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"
)

// SVG encodes a drawing as a single stroked path.
type SVG struct {
	Drawing
	Style Style
}

func NewSVG(s Style) *SVG {
	return &SVG{Style: s}
}

func (e *SVG) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	bw := bufio.NewWriter(cw)

	width, height := int(math.Ceil(e.Style.Width)), int(math.Ceil(e.Style.Height))
	canvas := svg.New(bw)
	canvas.Start(width, height, fmt.Sprintf(`viewBox="0 0 %d %d"`, width, height))
	if e.Style.Background != "" {
		canvas.Rect(0, 0, width, height, `fill="`+e.Style.Background+`"`)
	}

	if b, ok := e.Bounds(); ok {
		canvas.Path(e.pathData(fit(b, e.Style)),
			`fill="none"`,
			`stroke="`+e.Style.Stroke+`"`,
			`stroke-width="`+num(e.Style.LineWidth)+`"`,
			`stroke-linecap="round"`,
			`stroke-linejoin="round"`,
		)
	}

	canvas.End()
	err := bw.Flush()
	return cw.n, err
}

// pathData returns the "d" attribute of the drawing's path.
func (e *SVG) pathData(t transform) string {
	var sb strings.Builder
	for i, path := range e.paths() {
		if i > 0 {
			sb.WriteByte(' ')
		}
		for j, p := range path {
			x, y := t.apply(p)
			cmd := "L"
			if j == 0 {
				cmd = "M"
			} else {
				sb.WriteByte(' ')
			}
			sb.WriteString(cmd + num(x) + " " + num(y))
		}
	}
	return sb.String()
}

// num formats f with at most 3 decimals, never as "-0".
func num(f float64) string {
	s := strconv.FormatFloat(f, 'f', 3, 64)
	for len(s) > 1 && s[len(s)-1] == '0' {
		s = s[:len(s)-1]
	}
	s = trimDot(s)
	if s == "-0" {
		return "0"
	}
	return s
}

func trimDot(s string) string {
	if s[len(s)-1] == '.' {
		return s[:len(s)-1]
	}
	return s
}
