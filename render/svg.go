package render

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/plus3/gridmap/geom"
	"github.com/plus3/gridmap/scene"
)

// WriteSVG renders the visible entities inside source as a vector document,
// painted in the same stacking order as the rasterizer: background, zones,
// grid lines, objects. Coordinates are scene units; the viewBox maps them
// onto a document sized 1:1 with the source rectangle.
func WriteSVG(w io.Writer, s *scene.Scene, source geom.Rect) error {
	bw := bufio.NewWriter(w)

	width := int(math.Ceil(math.Max(1, source.W)))
	height := int(math.Ceil(math.Max(1, source.H)))
	fmt.Fprintf(bw, "<svg xmlns=\"http://www.w3.org/2000/svg\" width=\"%d\" height=\"%d\" viewBox=\"%g %g %g %g\">\n",
		width, height, source.X, source.Y, source.W, source.H)

	svgRect(bw, source, scene.Color{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, scene.Color{}, 0)

	for z := range s.Registry().Zones() {
		if !z.Visible() {
			continue
		}
		svgRect(bw, z.Bounds(), z.Spec.Fill, z.Spec.Edge, 2)
	}

	if s.ShowGrid() {
		svgGridLines(bw, s, source)
	}

	for o := range s.Registry().Objects() {
		if !o.Visible() {
			continue
		}
		svgRect(bw, o.Bounds(), o.Spec.Fill, scene.Color{A: 0xff}, 1)
	}

	fmt.Fprintln(bw, "</svg>")
	return bw.Flush()
}

func svgRect(w io.Writer, r geom.Rect, fill, edge scene.Color, strokeWidth int) {
	fmt.Fprintf(w, `  <rect x="%g" y="%g" width="%g" height="%g"`, r.X, r.Y, r.W, r.H)
	if fill.A == 0 {
		fmt.Fprint(w, ` fill="none"`)
	} else {
		fmt.Fprintf(w, ` fill="%s"`, svgPaint(fill))
		if op := svgOpacity(fill); op != "" {
			fmt.Fprintf(w, ` fill-opacity="%s"`, op)
		}
	}
	if strokeWidth > 0 && edge.A > 0 {
		fmt.Fprintf(w, ` stroke="%s" stroke-width="%d"`, svgPaint(edge), strokeWidth)
		if op := svgOpacity(edge); op != "" {
			fmt.Fprintf(w, ` stroke-opacity="%s"`, op)
		}
	}
	fmt.Fprintln(w, "/>")
}

func svgGridLines(w io.Writer, s *scene.Scene, source geom.Rect) {
	g := s.Grid()
	cs := float64(g.CellSize)
	clip := source.Intersect(g.Bounds())
	if clip.Empty() {
		return
	}

	left := int(math.Floor(clip.X / cs))
	right := int(math.Ceil(clip.Right() / cs))
	top := int(math.Floor(clip.Y / cs))
	bottom := int(math.Ceil(clip.Bottom() / cs))

	line := func(cell int, vertical, thick bool) {
		px := float64(cell) * cs
		col, width := GridLine, 1
		if thick {
			col, width = GridThickLine, 2
		}
		paint := fmt.Sprintf("#%02x%02x%02x", col.R, col.G, col.B)
		if vertical {
			fmt.Fprintf(w, "  <line x1=\"%g\" y1=\"%g\" x2=\"%g\" y2=\"%g\" stroke=\"%s\" stroke-width=\"%d\"/>\n",
				px, clip.Y, px, clip.Bottom(), paint, width)
		} else {
			fmt.Fprintf(w, "  <line x1=\"%g\" y1=\"%g\" x2=\"%g\" y2=\"%g\" stroke=\"%s\" stroke-width=\"%d\"/>\n",
				clip.X, px, clip.Right(), px, paint, width)
		}
	}

	for x := left; x <= right; x++ {
		line(x, true, false)
	}
	for y := top; y <= bottom; y++ {
		line(y, false, false)
	}
	for x := left; x <= right; x++ {
		if x%thickEvery == 0 {
			line(x, true, true)
		}
	}
	for y := top; y <= bottom; y++ {
		if y%thickEvery == 0 {
			line(y, false, true)
		}
	}
}

func svgPaint(c scene.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func svgOpacity(c scene.Color) string {
	if c.A == 0xff {
		return ""
	}
	return strconv.FormatFloat(float64(c.A)/255, 'f', 3, 64)
}
