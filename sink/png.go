package sink

import (
	"io"
	"math"

	"github.com/gogpu/gg"
)

// PNG rasterizes a drawing with gg.
type PNG struct {
	Drawing
	Style Style
}

func NewPNG(s Style) *PNG {
	return &PNG{Style: s}
}

// Context renders the drawing on a new gg context sized after the style.
// The caller must Close it.
func (e *PNG) Context() (*gg.Context, error) {
	dc := gg.NewContext(int(math.Ceil(e.Style.Width)), int(math.Ceil(e.Style.Height)))
	if e.Style.Background != "" {
		dc.ClearWithColor(gg.Hex(e.Style.Background))
	}

	b, ok := e.Bounds()
	if !ok {
		return dc, nil
	}

	t := fit(b, e.Style)
	dc.SetHexColor(e.Style.Stroke)
	dc.SetLineWidth(e.Style.LineWidth)
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)
	for _, path := range e.paths() {
		for j, p := range path {
			x, y := t.apply(p)
			if j == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
	}
	if err := dc.Stroke(); err != nil {
		dc.Close()
		return nil, err
	}
	return dc, nil
}

func (e *PNG) WriteTo(w io.Writer) (int64, error) {
	dc, err := e.Context()
	if err != nil {
		return 0, err
	}
	defer dc.Close()

	cw := &countingWriter{w: w}
	err = dc.EncodePNG(cw)
	return cw.n, err
}
