// Package geom provides the pixel-space point and rectangle primitives used
// throughout the map editor core.
package geom

import "math"

// Point is a position in scene (pixel) coordinates.
type Point struct {
	X, Y float64
}

// Add returns p translated by d.
func (p Point) Add(d Point) Point {
	return Point{p.X + d.X, p.Y + d.Y}
}

// Sub returns p minus d.
func (p Point) Sub(d Point) Point {
	return Point{p.X - d.X, p.Y - d.Y}
}

// Rect is an axis-aligned rectangle in scene coordinates.
// W and H are always non-negative for rects built through the constructors.
type Rect struct {
	X, Y, W, H float64
}

// RectFromCorners returns the normalized rectangle spanning two opposite
// corners, in any order.
func RectFromCorners(a, b Point) Rect {
	x := math.Min(a.X, b.X)
	y := math.Min(a.Y, b.Y)
	return Rect{x, y, math.Abs(a.X - b.X), math.Abs(a.Y - b.Y)}
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.W }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point {
	return Point{r.X + r.W/2, r.Y + r.H/2}
}

// TopLeft returns the top-left corner.
func (r Rect) TopLeft() Point { return Point{r.X, r.Y} }

// Empty reports whether the rectangle has zero (or negative) area.
func (r Rect) Empty() bool {
	return r.W <= 0 || r.H <= 0
}

// Overlaps reports whether r and o share interior area. Edge-touching
// rectangles do not overlap. This is the test used for object collision.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.Right() && o.X < r.Right() &&
		r.Y < o.Bottom() && o.Y < r.Bottom()
}

// Touches reports whether r and o intersect when edges count, so two
// rectangles sharing only a boundary still touch. This is the test used for
// draw-distance visibility.
func (r Rect) Touches(o Rect) bool {
	return r.X <= o.Right() && o.X <= r.Right() &&
		r.Y <= o.Bottom() && o.Y <= r.Bottom()
}

// Intersect returns the overlapping region of r and o. The result may be
// empty.
func (r Rect) Intersect(o Rect) Rect {
	x := math.Max(r.X, o.X)
	y := math.Max(r.Y, o.Y)
	right := math.Min(r.Right(), o.Right())
	bottom := math.Min(r.Bottom(), o.Bottom())
	if right < x || bottom < y {
		return Rect{}
	}
	return Rect{x, y, right - x, bottom - y}
}

// Contains reports whether p lies inside r (closed on all edges).
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}
