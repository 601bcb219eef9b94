package sink

import (
	"bytes"
	"encoding/xml"
	"image/png"
	"strings"
	"testing"

	"github.com/aabizri/lsys"
	"github.com/aabizri/lsys/turtle"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// draw runs word with the default registry, unit steps and right angles,
// starting at the origin heading right.
func draw(t *testing.T, word string, s turtle.Sink) {
	t.Helper()
	_, err := turtle.NewInterpreter(turtle.DefaultRegistry(90, 90, 1)).Run(lsys.ParseWord(word), turtle.State{}, s)
	require.NoError(t, err)
}

var square = Style{Width: 100, Height: 100, Margin: 10, LineWidth: 2, Stroke: "#ff0000"}

func TestDrawing_Bounds(t *testing.T) {
	var d Drawing
	_, ok := d.Bounds()
	assert.False(t, ok)

	draw(t, "F-F[-FF]+F", &d)
	b, ok := d.Bounds()
	require.True(t, ok)
	assert.Equal(t, Box{Min: turtle.Point{X: -1, Y: 0}, Max: turtle.Point{X: 2, Y: 1}}, b)
}

func TestDrawing_Paths(t *testing.T) {
	var d Drawing
	draw(t, "FF[-F]F", &d)
	assert.Len(t, d.Segments(), 4)
	assert.Equal(t, [][]turtle.Point{
		{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}},
		{{X: 2, Y: 0}, {X: 3, Y: 0}},
	}, d.paths())
}

func TestFit(t *testing.T) {
	tr := fit(Box{Max: turtle.Point{X: 4, Y: 2}}, square)
	assert.Equal(t, 20.0, tr.scale)

	x, y := tr.apply(turtle.Point{X: 0, Y: 2})
	assert.Equal(t, 10.0, x)
	assert.Equal(t, 30.0, y)
	x, y = tr.apply(turtle.Point{X: 4, Y: 0})
	assert.Equal(t, 90.0, x)
	assert.Equal(t, 70.0, y)

	// A single point is centered
	tr = fit(Box{Min: turtle.Point{X: 3, Y: 3}, Max: turtle.Point{X: 3, Y: 3}}, square)
	x, y = tr.apply(turtle.Point{X: 3, Y: 3})
	assert.Equal(t, 50.0, x)
	assert.Equal(t, 50.0, y)
}

func TestSVG(t *testing.T) {
	e := NewSVG(square)
	draw(t, "F-F-F-F", e)

	var buf bytes.Buffer
	n, err := e.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)

	var doc struct {
		Width   string     `xml:"width,attr"`
		Height  string     `xml:"height,attr"`
		ViewBox string     `xml:"viewBox,attr"`
		Rects   []struct{} `xml:"rect"`
		Paths   []struct {
			D           string `xml:"d,attr"`
			Fill        string `xml:"fill,attr"`
			Stroke      string `xml:"stroke,attr"`
			StrokeWidth string `xml:"stroke-width,attr"`
		} `xml:"path"`
	}
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "100", doc.Width)
	assert.Equal(t, "100", doc.Height)
	assert.Equal(t, "0 0 100 100", doc.ViewBox)
	assert.Empty(t, doc.Rects)
	require.Len(t, doc.Paths, 1)
	assert.Equal(t, "M10 90 L90 90 L90 10 L10 10 L10 90", doc.Paths[0].D)
	assert.Equal(t, "none", doc.Paths[0].Fill)
	assert.Equal(t, "#ff0000", doc.Paths[0].Stroke)
	assert.Equal(t, "2", doc.Paths[0].StrokeWidth)
	assert.True(t, strings.HasSuffix(buf.String(), "</svg>\n"))
}

func TestSVG_Empty(t *testing.T) {
	var buf bytes.Buffer
	_, err := NewSVG(DefaultStyle).WriteTo(&buf)
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "<path")
	assert.Contains(t, buf.String(), `fill="#ffffff"`)
}

func TestEPS(t *testing.T) {
	e := NewEPS(square)
	draw(t, "F-F-F-F", e)

	var buf bytes.Buffer
	_, err := e.WriteTo(&buf)
	require.NoError(t, err)

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "%!PS-Adobe-3.0 EPSF-3.0\n%%BoundingBox: 0 0 100 100\n"))
	assert.Contains(t, out, "1 0 0 setrgbcolor\n2 setlinewidth\n")
	assert.Contains(t, out, "10 10 moveto\n90 10 lineto\n90 90 lineto\n10 90 lineto\n10 10 lineto\nstroke\n")
	assert.True(t, strings.HasSuffix(out, "%%EOF\n"))
}

func TestPNG(t *testing.T) {
	style := square
	style.Background = "#ffffff"
	e := NewPNG(style)
	draw(t, "F-F-F-F", e)

	var buf bytes.Buffer
	_, err := e.WriteTo(&buf)
	require.NoError(t, err)

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 100, img.Bounds().Dy())

	// Center is background, the square's edge is not
	r, g, b, _ := img.At(50, 50).RGBA()
	assert.Equal(t, [3]uint32{0xffff, 0xffff, 0xffff}, [3]uint32{r, g, b})

	painted := false
	for x := 20; x < 80; x++ {
		r, g, b, _ := img.At(x, 90).RGBA()
		if r > g && r > b {
			painted = true
			break
		}
	}
	assert.True(t, painted)
}

func TestRecorder(t *testing.T) {
	var r Recorder
	draw(t, "F[+F]", &r)
	require.Len(t, r.Primitives, 5)
	assert.Equal(t, []Segment{
		{From: turtle.Point{X: 0, Y: 0}, To: turtle.Point{X: 1, Y: 0}},
		{From: turtle.Point{X: 1, Y: 0}, To: turtle.Point{X: 1, Y: -1}},
	}, r.Lines())

	var buf bytes.Buffer
	_, err := r.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, "line (0, 0) -> (1, 0)\npush (1, 0)\nturn 270\nline (1, 0) -> (1, -1)\npop (1, -1) -> (1, 0)\n", buf.String())
}

func TestNew(t *testing.T) {
	assert.Equal(t, []string{"eps", "png", "primitives", "svg"}, Formats())

	e, err := New("SVG", DefaultStyle)
	require.NoError(t, err)
	assert.IsType(t, &SVG{}, e)

	_, err = New("gif", DefaultStyle)
	assert.ErrorContains(t, err, "unknown output format")
}
