package grid_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plus3/gridmap/geom"
	"github.com/plus3/gridmap/grid"
)

func TestCellSceneRoundTrip(t *testing.T) {
	g := grid.Grid{CellSize: 20, Extent: 1000}

	assert.Equal(t, 80.0, g.CellToScene(4))
	assert.Equal(t, 4, g.SceneToCell(80))
	assert.Equal(t, 4, g.SceneToCell(99.9))
	assert.Equal(t, 5, g.SceneToCell(100))
}

func TestSnapCenter(t *testing.T) {
	g := grid.Grid{CellSize: 20, Extent: 1000}

	// 3x3 template, cursor at (105, 203): desired top-left is (75, 173),
	// which rounds to (80, 180), cell (4, 9).
	got := g.SnapCenter(geom.Point{X: 105, Y: 203}, 3, 3)
	assert.Equal(t, geom.Point{X: 80, Y: 180}, got)
	assert.Equal(t, 4, g.SceneToCell(got.X))
	assert.Equal(t, 9, g.SceneToCell(got.Y))
}

func TestSnapCenterClamps(t *testing.T) {
	g := grid.Grid{CellSize: 20, Extent: 10} // 200x200 px scene

	// Cursor near origin: the 4x4 template cannot go negative.
	assert.Equal(t, geom.Point{X: 0, Y: 0}, g.SnapCenter(geom.Point{X: 1, Y: 1}, 4, 4))

	// Cursor near the far corner: clamped so the rect stays inside.
	assert.Equal(t, geom.Point{X: 120, Y: 120}, g.SnapCenter(geom.Point{X: 199, Y: 199}, 4, 4))
}

func TestSnapCenterIdempotent(t *testing.T) {
	g := grid.Grid{CellSize: 20, Extent: 1000}

	points := []geom.Point{
		{X: 105, Y: 203},
		{X: 0, Y: 0},
		{X: 19999, Y: 19999},
		{X: 50, Y: 70},
	}
	for _, p := range points {
		once := g.SnapCenter(p, 3, 3)
		// Snapping the center of the snapped rect must be a fixed point.
		center := geom.Point{X: once.X + 30, Y: once.Y + 30}
		assert.Equal(t, once, g.SnapCenter(center, 3, 3), "cursor %+v", p)
	}
}

func TestSnapCorner(t *testing.T) {
	g := grid.Grid{CellSize: 20, Extent: 1000}

	assert.Equal(t, geom.Point{X: 200, Y: 200}, g.SnapCorner(geom.Point{X: 205, Y: 195}))
	assert.Equal(t, geom.Point{X: 220, Y: 200}, g.SnapCorner(geom.Point{X: 211, Y: 200}))

	// Clamped to scene bounds, which include the far grid line.
	assert.Equal(t, geom.Point{X: 0, Y: 0}, g.SnapCorner(geom.Point{X: -50, Y: -1}))
	assert.Equal(t, geom.Point{X: 20000, Y: 20000}, g.SnapCorner(geom.Point{X: 99999, Y: 20010}))
}

func TestSnapCornerIdempotent(t *testing.T) {
	g := grid.Grid{CellSize: 20, Extent: 1000}

	for _, p := range []geom.Point{{X: 205, Y: 195}, {X: 0, Y: 0}, {X: 20000, Y: 3}} {
		once := g.SnapCorner(p)
		assert.Equal(t, once, g.SnapCorner(once))
	}
}

func TestRescalePreservesCellIndex(t *testing.T) {
	from := grid.Grid{CellSize: 20, Extent: 1000}
	to := grid.Grid{CellSize: 30, Extent: 1000}

	// Object top-left at cell (4, 9): pixel (80, 180) at 20 px cells.
	got := grid.Rescale(from, to, geom.Point{X: 80, Y: 180}, 3, 3)
	assert.Equal(t, geom.Point{X: 120, Y: 270}, got)
	assert.Equal(t, 4, to.SceneToCell(got.X))
	assert.Equal(t, 9, to.SceneToCell(got.Y))
}

func TestRescaleClampsAtFarEdge(t *testing.T) {
	from := grid.Grid{CellSize: 10, Extent: 100} // 1000 px scene
	to := grid.Grid{CellSize: 20, Extent: 40}    // 800 px scene

	// Cell (98, 98) does not exist on the smaller target grid; the entity is
	// pulled back so its 2x2 rect fits.
	got := grid.Rescale(from, to, geom.Point{X: 980, Y: 980}, 2, 2)
	assert.Equal(t, geom.Point{X: 760, Y: 760}, got)
}

func TestClampTopLeft(t *testing.T) {
	g := grid.Grid{CellSize: 20, Extent: 10}

	assert.Equal(t, geom.Point{X: 0, Y: 0}, g.ClampTopLeft(geom.Point{X: -40, Y: -1}, 60, 60))
	assert.Equal(t, geom.Point{X: 140, Y: 140}, g.ClampTopLeft(geom.Point{X: 500, Y: 500}, 60, 60))
	assert.Equal(t, geom.Point{X: 40, Y: 80}, g.ClampTopLeft(geom.Point{X: 40, Y: 80}, 60, 60))
}

func TestCellRect(t *testing.T) {
	g := grid.Grid{CellSize: 20, Extent: 1000}
	assert.Equal(t, geom.Rect{X: 80, Y: 180, W: 60, H: 60}, g.CellRect(4, 9, 3, 3))
}
