package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/gridmap/geom"
	"github.com/plus3/gridmap/scene"
)

// Camera maps scene coordinates onto the screen: translate then zoom.
type Camera struct {
	Offset geom.Point // scene point at the screen origin
	Zoom   float64
}

// NewCamera returns a camera at the scene origin with 1:1 zoom.
func NewCamera() Camera {
	return Camera{Zoom: 1}
}

// ToScreen converts a scene point to screen pixels.
func (c Camera) ToScreen(p geom.Point) (float32, float32) {
	return float32((p.X - c.Offset.X) * c.Zoom), float32((p.Y - c.Offset.Y) * c.Zoom)
}

// ToScene converts a screen position to scene coordinates.
func (c Camera) ToScene(x, y float64) geom.Point {
	return geom.Point{X: x/c.Zoom + c.Offset.X, Y: y/c.Zoom + c.Offset.Y}
}

// ViewRect returns the scene rectangle covered by a screen of the given
// size. The host feeds this to the culler after every pan or zoom.
func (c Camera) ViewRect(screenW, screenH int) geom.Rect {
	return geom.Rect{
		X: c.Offset.X,
		Y: c.Offset.Y,
		W: float64(screenW) / c.Zoom,
		H: float64(screenH) / c.Zoom,
	}
}

// Pan moves the camera by a screen-pixel delta.
func (c *Camera) Pan(dx, dy float64) {
	c.Offset.X -= dx / c.Zoom
	c.Offset.Y -= dy / c.Zoom
}

// ZoomAt scales the zoom by factor, keeping the scene point under the
// given screen position fixed.
func (c *Camera) ZoomAt(factor, screenX, screenY float64) {
	anchor := c.ToScene(screenX, screenY)
	c.Zoom *= factor
	if c.Zoom < 0.02 {
		c.Zoom = 0.02
	}
	if c.Zoom > 50 {
		c.Zoom = 50
	}
	c.Offset.X = anchor.X - screenX/c.Zoom
	c.Offset.Y = anchor.Y - screenY/c.Zoom
}

// HandleSizePx is the on-screen size of a zone resize handle.
const HandleSizePx = 8

// Drawer paints a scene onto an ebiten image through a camera. It draws
// the same stacking order as the raster exporter plus the interactive
// overlays: placement preview, zone drag rectangle, hover marker, selection
// outlines and resize handles.
type Drawer struct {
	// Selected is the entity whose selection outline and handles are
	// drawn, 0 for none.
	Selected scene.EntityId
}

func nrgba(c scene.Color) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// Draw paints the full frame.
func (d *Drawer) Draw(dst *ebiten.Image, s *scene.Scene, cam Camera) {
	dst.Fill(Background)

	for z := range s.Registry().Zones() {
		if !z.Visible() {
			continue
		}
		d.rect(dst, cam, z.Bounds(), nrgba(z.Spec.Fill))
		d.stroke(dst, cam, z.Bounds(), nrgba(z.Spec.Edge), 2)
	}

	if s.ShowGrid() {
		d.gridLines(dst, s, cam)
	}

	for o := range s.Registry().Objects() {
		if !o.Visible() {
			continue
		}
		d.rect(dst, cam, o.Bounds(), nrgba(o.Spec.Fill))
		d.stroke(dst, cam, o.Bounds(), ObjectBorder, 1)
	}

	d.overlays(dst, s, cam)
}

func (d *Drawer) rect(dst *ebiten.Image, cam Camera, r geom.Rect, c color.NRGBA) {
	x, y := cam.ToScreen(r.TopLeft())
	vector.DrawFilledRect(dst, x, y, float32(r.W*cam.Zoom), float32(r.H*cam.Zoom), c, false)
}

func (d *Drawer) stroke(dst *ebiten.Image, cam Camera, r geom.Rect, c color.NRGBA, width float32) {
	x, y := cam.ToScreen(r.TopLeft())
	vector.StrokeRect(dst, x, y, float32(r.W*cam.Zoom), float32(r.H*cam.Zoom), width, c, false)
}

func (d *Drawer) gridLines(dst *ebiten.Image, s *scene.Scene, cam Camera) {
	g := s.Grid()
	cs := float64(g.CellSize)
	bounds := g.Bounds()
	w, h := dst.Bounds().Dx(), dst.Bounds().Dy()
	view := cam.ViewRect(w, h).Intersect(bounds)
	if view.Empty() {
		return
	}

	left := int(math.Floor(view.X / cs))
	right := int(math.Ceil(view.Right() / cs))
	top := int(math.Floor(view.Y / cs))
	bottom := int(math.Ceil(view.Bottom() / cs))

	x0, y0 := cam.ToScreen(view.TopLeft())
	x1, y1 := cam.ToScreen(geom.Point{X: view.Right(), Y: view.Bottom()})

	for x := left; x <= right; x++ {
		sx, _ := cam.ToScreen(geom.Point{X: float64(x) * cs})
		col, width := GridLine, float32(1)
		if x%thickEvery == 0 {
			col, width = GridThickLine, 2
		}
		vector.StrokeLine(dst, sx, y0, sx, y1, width, col, false)
	}
	for y := top; y <= bottom; y++ {
		_, sy := cam.ToScreen(geom.Point{Y: float64(y) * cs})
		col, width := GridLine, float32(1)
		if y%thickEvery == 0 {
			col, width = GridThickLine, 2
		}
		vector.StrokeLine(dst, x0, sy, x1, sy, width, col, false)
	}
}

func (d *Drawer) overlays(dst *ebiten.Image, s *scene.Scene, cam Camera) {
	// Placement preview, translucent over everything.
	if rect, ok := s.Placement().PreviewRect(); ok {
		fill := s.Placement().Active().Fill
		fill.A /= 2
		d.rect(dst, cam, rect, nrgba(fill))
		d.stroke(dst, cam, rect, ObjectBorder, 1)
	}

	// Zone drag rectangle and hover marker.
	zd := s.ZoneDraw()
	if rect, ok := zd.PreviewRect(); ok {
		d.rect(dst, cam, rect, nrgba(scene.DefaultZoneFill))
		d.stroke(dst, cam, rect, nrgba(scene.DefaultZoneEdge), 2)
	}
	if p, ok := zd.HoverMarker(); ok {
		x, y := cam.ToScreen(p)
		vector.DrawFilledCircle(dst, x, y, 4, nrgba(scene.DefaultZoneEdge), true)
	}

	// Selection outline and resize handles.
	if d.Selected == 0 {
		return
	}
	e, ok := s.Registry().Entity(d.Selected)
	if !ok || !e.Visible() {
		return
	}
	sel := color.NRGBA{R: 0x21, G: 0x96, B: 0xf3, A: 0xff}
	d.stroke(dst, cam, e.Bounds(), sel, 2)
	if z, ok := s.Registry().Zone(d.Selected); ok {
		for _, role := range scene.HandleRoles {
			p := scene.HandlePosition(z, role)
			x, y := cam.ToScreen(p)
			half := float32(HandleSizePx) / 2
			vector.DrawFilledRect(dst, x-half, y-half, HandleSizePx, HandleSizePx, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, false)
			vector.StrokeRect(dst, x-half, y-half, HandleSizePx, HandleSizePx, 1, ObjectBorder, false)
		}
	}
}
