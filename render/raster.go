// Package render draws the map: an offline rasterizer for image export and
// an ebiten adapter for the live editor view.
package render

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/plus3/gridmap/geom"
	"github.com/plus3/gridmap/scene"
)

// Grid line and background colors.
var (
	Background    = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	GridLine      = color.NRGBA{R: 0xa0, G: 0xa0, B: 0xa4, A: 0xff}
	GridThickLine = color.NRGBA{R: 0x80, G: 0x80, B: 0x80, A: 0xff}
	ObjectBorder  = color.NRGBA{A: 0xff}
)

// Every tenth grid line is drawn thicker.
const thickEvery = 10

// Options controls a raster render.
type Options struct {
	// Width is the output width in pixels; height follows the source
	// rectangle's aspect ratio. Zero means 1:1 with the source rect.
	Width int
	// Transparent leaves the background unfilled instead of white.
	Transparent bool
}

// Raster renders the visible entities inside source to a new image. Zones
// are painted first, grid lines above them, objects on top, matching the
// editor's stacking order. Hidden entities, including draw-distance culled
// ones, are skipped.
func Raster(s *scene.Scene, source geom.Rect, opts Options) *image.RGBA {
	srcW := math.Max(1, source.W)
	srcH := math.Max(1, source.H)
	width := opts.Width
	if width <= 0 {
		width = int(math.Ceil(srcW))
	}
	if width < 1 {
		width = 1
	}
	scale := float64(width) / srcW
	height := int(math.Round(srcH * scale))
	if height < 1 {
		height = 1
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	c := &canvas{img: img, source: source, scale: scale}

	if !opts.Transparent {
		draw.Draw(img, img.Bounds(), image.NewUniform(Background), image.Point{}, draw.Src)
	}

	for z := range s.Registry().Zones() {
		if !z.Visible() {
			continue
		}
		b := z.Bounds()
		c.fillRect(b, z.Spec.Fill)
		c.strokeRect(b, z.Spec.Edge, 2)
	}

	if s.ShowGrid() {
		c.drawGridLines(s)
	}

	for o := range s.Registry().Objects() {
		if !o.Visible() {
			continue
		}
		b := o.Bounds()
		c.fillRect(b, o.Spec.Fill)
		c.strokeRect(b, scene.Color{A: 0xff}, 1)
	}

	return img
}

// canvas maps scene coordinates onto the output image.
type canvas struct {
	img    *image.RGBA
	source geom.Rect
	scale  float64
}

func (c *canvas) toImage(r geom.Rect) image.Rectangle {
	x0 := int(math.Round((r.X - c.source.X) * c.scale))
	y0 := int(math.Round((r.Y - c.source.Y) * c.scale))
	x1 := int(math.Round((r.Right() - c.source.X) * c.scale))
	y1 := int(math.Round((r.Bottom() - c.source.Y) * c.scale))
	return image.Rect(x0, y0, x1, y1)
}

func (c *canvas) fillRect(r geom.Rect, fill scene.Color) {
	c.fillPixels(c.toImage(r), fill)
}

func (c *canvas) fillPixels(r image.Rectangle, fill scene.Color) {
	r = r.Intersect(c.img.Bounds())
	if r.Empty() || fill.A == 0 {
		return
	}
	src := image.NewUniform(color.NRGBA{R: fill.R, G: fill.G, B: fill.B, A: fill.A})
	draw.Draw(c.img, r, src, image.Point{}, draw.Over)
}

func (c *canvas) strokeRect(r geom.Rect, edge scene.Color, widthPx int) {
	ir := c.toImage(r)
	if ir.Dx() <= 0 || ir.Dy() <= 0 {
		return
	}
	w := widthPx
	if w > ir.Dx() {
		w = ir.Dx()
	}
	if w > ir.Dy() {
		w = ir.Dy()
	}
	c.fillPixels(image.Rect(ir.Min.X, ir.Min.Y, ir.Max.X, ir.Min.Y+w), edge)
	c.fillPixels(image.Rect(ir.Min.X, ir.Max.Y-w, ir.Max.X, ir.Max.Y), edge)
	c.fillPixels(image.Rect(ir.Min.X, ir.Min.Y+w, ir.Min.X+w, ir.Max.Y-w), edge)
	c.fillPixels(image.Rect(ir.Max.X-w, ir.Min.Y+w, ir.Max.X, ir.Max.Y-w), edge)
}

func (c *canvas) drawGridLines(s *scene.Scene) {
	g := s.Grid()
	cs := float64(g.CellSize)
	bounds := g.Bounds()
	clip := c.source.Intersect(bounds)
	if clip.Empty() {
		return
	}

	left := int(math.Floor(clip.X / cs))
	right := int(math.Ceil(clip.Right() / cs))
	top := int(math.Floor(clip.Y / cs))
	bottom := int(math.Ceil(clip.Bottom() / cs))

	line := func(cell int, vertical, thick bool) {
		px := float64(cell) * cs
		lineCol := GridLine
		w := 1
		if thick {
			lineCol = GridThickLine
			w = 2
		}
		var r image.Rectangle
		if vertical {
			x := int(math.Round((px - c.source.X) * c.scale))
			y0 := int(math.Round((clip.Y - c.source.Y) * c.scale))
			y1 := int(math.Round((clip.Bottom() - c.source.Y) * c.scale))
			r = image.Rect(x, y0, x+w, y1)
		} else {
			y := int(math.Round((px - c.source.Y) * c.scale))
			x0 := int(math.Round((clip.X - c.source.X) * c.scale))
			x1 := int(math.Round((clip.Right() - c.source.X) * c.scale))
			r = image.Rect(x0, y, x1, y+w)
		}
		c.fillPixels(r, scene.Color{R: lineCol.R, G: lineCol.G, B: lineCol.B, A: lineCol.A})
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
