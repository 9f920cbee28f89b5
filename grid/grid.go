// Package grid maps between grid cell indices and continuous scene (pixel)
// coordinates, and implements the snap rules every editor tool shares.
package grid

import (
	"math"

	"github.com/plus3/gridmap/geom"
)

// Defaults for a freshly created map.
const (
	DefaultCellSize = 20
	DefaultExtent   = 1000
)

// Grid describes the cell raster: a square of Extent x Extent cells, each
// CellSize pixels on a side. Grid is a value type; rescaling produces a new
// Grid and the registry re-derives entity positions from it.
type Grid struct {
	CellSize int // pixels per cell, positive
	Extent   int // cells per side, positive
}

// Default returns the standard 1000x1000 grid at 20 px per cell.
func Default() Grid {
	return Grid{CellSize: DefaultCellSize, Extent: DefaultExtent}
}

// SceneWidth returns the total scene width in pixels.
func (g Grid) SceneWidth() float64 { return float64(g.Extent * g.CellSize) }

// SceneHeight returns the total scene height in pixels.
func (g Grid) SceneHeight() float64 { return float64(g.Extent * g.CellSize) }

// Bounds returns the full scene rectangle.
func (g Grid) Bounds() geom.Rect {
	return geom.Rect{W: g.SceneWidth(), H: g.SceneHeight()}
}

// CellToScene converts a cell index to the scene coordinate of its near edge.
func (g Grid) CellToScene(cell int) float64 {
	return float64(cell * g.CellSize)
}

// SceneToCell converts a scene coordinate to the cell index containing it.
func (g Grid) SceneToCell(px float64) int {
	return int(math.Floor(px / float64(g.CellSize)))
}

// SnapAxis rounds a scene coordinate to the nearest grid line.
func (g Grid) SnapAxis(px float64) float64 {
	cs := float64(g.CellSize)
	return math.Round(px/cs) * cs
}

// SnapTopLeft rounds a position to the nearest grid line on both axes,
// without clamping.
func (g Grid) SnapTopLeft(p geom.Point) geom.Point {
	return geom.Point{X: g.SnapAxis(p.X), Y: g.SnapAxis(p.Y)}
}

// ClampTopLeft constrains a top-left position so a w x h pixel rectangle at
// that position lies entirely inside the scene.
func (g Grid) ClampTopLeft(p geom.Point, w, h float64) geom.Point {
	x := math.Max(0, math.Min(g.SceneWidth()-w, p.X))
	y := math.Max(0, math.Min(g.SceneHeight()-h, p.Y))
	return geom.Point{X: x, Y: y}
}

// SnapCenter computes the grid-aligned top-left for a wCells x hCells
// template whose center should sit under the cursor. The desired top-left is
// snapped per axis and then clamped into the scene. Object placement and its
// live preview are positioned this way: center under cursor, not corner.
func (g Grid) SnapCenter(cursor geom.Point, wCells, hCells int) geom.Point {
	w := float64(wCells * g.CellSize)
	h := float64(hCells * g.CellSize)
	desired := geom.Point{X: cursor.X - w/2, Y: cursor.Y - h/2}
	return g.ClampTopLeft(g.SnapTopLeft(desired), w, h)
}

// SnapCorner rounds the cursor to the nearest grid line intersection and
// clamps it into [0, extent*cellSize] on both axes. Zone-draw endpoints snap
// to grid lines, not cell centers.
func (g Grid) SnapCorner(cursor geom.Point) geom.Point {
	p := g.SnapTopLeft(cursor)
	p.X = math.Max(0, math.Min(g.SceneWidth(), p.X))
	p.Y = math.Max(0, math.Min(g.SceneHeight(), p.Y))
	return p
}

// CellRect returns the scene rectangle of a wCells x hCells block whose
// top-left cell is (cellX, cellY).
func (g Grid) CellRect(cellX, cellY, wCells, hCells int) geom.Rect {
	return geom.Rect{
		X: g.CellToScene(cellX),
		Y: g.CellToScene(cellY),
		W: float64(wCells * g.CellSize),
		H: float64(hCells * g.CellSize),
	}
}

// Rescale re-derives a grid-aligned top-left after the cell size changed
// from `from` to `to`. The cell index is recovered by rounding against the
// old cell size and reprojected at the new one, then clamped so a
// wCells x hCells entity stays inside the scene. Positions are always kept
// grid-aligned, so the entity keeps its cell index except when clamping has
// to pull it back in bounds; this is a best-effort remap, not an exact
// invariant when extents change too.
func Rescale(from, to Grid, topLeft geom.Point, wCells, hCells int) geom.Point {
	cellX := int(math.Round(topLeft.X / float64(from.CellSize)))
	cellY := int(math.Round(topLeft.Y / float64(from.CellSize)))
	w := float64(wCells * to.CellSize)
	h := float64(hCells * to.CellSize)
	p := geom.Point{X: to.CellToScene(cellX), Y: to.CellToScene(cellY)}
	return to.ClampTopLeft(p, w, h)
}
