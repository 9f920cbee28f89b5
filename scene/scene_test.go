package scene_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/gridmap/geom"
	"github.com/plus3/gridmap/grid"
	"github.com/plus3/gridmap/scene"
)

func TestSetCellSizePreservesCellAlignment(t *testing.T) {
	s := newTestScene()
	spec := scene.NewObjectSpec("Base", 3, 3, scene.DefaultObjectFill)

	// Cell (4,9) at 20px/cell.
	obj := placeAt(t, s, spec, geom.Point{X: 105, Y: 203})
	require.Equal(t, geom.Point{X: 80, Y: 180}, obj.TopLeft())

	s.SetCellSize(30)
	assert.Equal(t, geom.Point{X: 120, Y: 270}, obj.TopLeft(), "cell (4,9) at the new size")
	assert.Equal(t, geom.Rect{X: 120, Y: 270, W: 90, H: 90}, obj.Bounds())

	s.SetCellSize(20)
	assert.Equal(t, geom.Point{X: 80, Y: 180}, obj.TopLeft(), "round trip restores the original")
}

func TestSetCellSizeRescalesZones(t *testing.T) {
	s := newTestScene()
	z := newTestZone(t, s) // 5x3 at (100,40), cells (5,2)

	s.SetCellSize(40)
	assert.Equal(t, geom.Rect{X: 200, Y: 80, W: 200, H: 120}, z.Bounds())
}

func TestSetCellSizeIgnoresNonPositive(t *testing.T) {
	s := newTestScene()
	s.SetCellSize(0)
	assert.Equal(t, 20, s.Grid().CellSize)
	s.SetCellSize(-5)
	assert.Equal(t, 20, s.Grid().CellSize)
}

func TestSetZoneCoordinates(t *testing.T) {
	s := newTestScene()
	z := newTestZone(t, s)

	// Bottom-left (10,10) to top-right (14,12) inclusive: 5x3 cells. With a
	// bottom-left Y origin on a 1000-cell grid, the top row is cell 987.
	require.NoError(t, s.SetZoneCoordinates(z, 10, 10, 14, 12))
	assert.Equal(t, 5, z.Spec.WidthCells)
	assert.Equal(t, 3, z.Spec.HeightCells)
	assert.Equal(t, geom.Point{X: 200, Y: 19740}, z.TopLeft())
}

func TestSetZoneCoordinatesRejectsInverted(t *testing.T) {
	s := newTestScene()
	z := newTestZone(t, s)
	before := z.Bounds()

	err := s.SetZoneCoordinates(z, 14, 10, 10, 12)
	assert.ErrorIs(t, err, scene.ErrInvalidCoordinates)
	assert.Equal(t, before, z.Bounds())

	err = s.SetZoneCoordinates(z, 10, -1, 14, 12)
	assert.ErrorIs(t, err, scene.ErrOutOfBounds)
	err = s.SetZoneCoordinates(z, 10, 10, 1000, 12)
	assert.ErrorIs(t, err, scene.ErrOutOfBounds)
}

func TestExportRectFromCells(t *testing.T) {
	s := newTestScene()

	rect, err := s.ExportRectFromCells(0, 0, 9, 4)
	require.NoError(t, err)
	assert.Equal(t, geom.Rect{X: 0, Y: 19900, W: 200, H: 100}, rect)

	_, err = s.ExportRectFromCells(9, 0, 0, 4)
	assert.ErrorIs(t, err, scene.ErrInvalidCoordinates)
	_, err = s.ExportRectFromCells(0, 0, 1000, 4)
	assert.ErrorIs(t, err, scene.ErrOutOfBounds)
}

func TestRemoveEntity(t *testing.T) {
	s := newTestScene()
	spec := scene.NewObjectSpec("Base", 3, 3, scene.DefaultObjectFill)
	obj := placeAt(t, s, spec, geom.Point{X: 30, Y: 30})

	var removed int
	s.Registry().Subscribe(&scene.ObserverFuncs{
		OnObjectRemoved: func(*scene.Object) { removed++ },
	})

	assert.True(t, s.RemoveEntity(obj.Id()))
	assert.False(t, s.RemoveEntity(obj.Id()), "already gone")
	assert.Equal(t, 1, removed)
	assert.Equal(t, 0, s.Registry().ObjectCount())
}

func TestRemoveObjectsByTemplate(t *testing.T) {
	s := newTestScene()
	member := scene.NewObjectSpec("Alice", 3, 3, scene.DefaultObjectFill)
	member.Limit = 1
	other := scene.NewObjectSpec("Base", 3, 3, scene.DefaultObjectFill)

	placeAt(t, s, member, geom.Point{X: 30, Y: 30})
	placeAt(t, s, other, geom.Point{X: 430, Y: 30})

	assert.Equal(t, 1, s.Registry().RemoveObjectsByTemplate(member.TemplateID))
	assert.Equal(t, 1, s.Registry().ObjectCount())
	assert.Equal(t, 0, s.Registry().RemoveObjectsByTemplate("no-such-template"))
}

func TestSetViewRectCulls(t *testing.T) {
	s := newTestScene()
	s.SetDrawDistance(5)
	far := addObjectAt(s, 3000, 3000, 3, 3)

	s.SetViewRect(geom.Rect{X: 950, Y: 950, W: 100, H: 100})
	assert.False(t, far.Visible())

	s.SetViewRect(geom.Rect{X: 2950, Y: 2950, W: 100, H: 100})
	assert.True(t, far.Visible())
}

func TestNewSceneDefaults(t *testing.T) {
	s := scene.NewScene(grid.Grid{CellSize: grid.DefaultCellSize, Extent: grid.DefaultExtent})
	assert.True(t, s.ShowGrid())
	assert.Equal(t, 0, s.Culler().Radius())
	assert.Equal(t, 20, s.Grid().CellSize)
}

func TestColorHexRoundTrip(t *testing.T) {
	c := scene.Color{R: 0x12, G: 0x34, B: 0x56, A: 0x78}
	assert.Equal(t, "#78123456", c.Hex())
	assert.Equal(t, c, scene.ParseColor(c.Hex(), scene.Color{}))
}

func TestParseColorFallbacks(t *testing.T) {
	fallback := scene.DefaultZoneFill

	assert.Equal(t, scene.Color{R: 0xb0, G: 0xbe, B: 0xc5, A: 0xff},
		scene.ParseColor("#b0bec5", fallback))
	assert.Equal(t, scene.Color{R: 0xff, A: 0x3c}, scene.ParseColor("#3cff0000", fallback))

	for _, bad := range []string{"", "red", "#12345", "#zzzzzz", "12345678"} {
		assert.Equal(t, fallback, scene.ParseColor(bad, fallback), "input %q", bad)
	}
}
