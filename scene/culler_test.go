package scene_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/gridmap/geom"
	"github.com/plus3/gridmap/scene"
)

// refRect is a one-cell rectangle centered on (1000,1000).
var refRect = geom.Rect{X: 990, Y: 990, W: 20, H: 20}

func addObjectAt(s *scene.Scene, x, y float64, wCells, hCells int) *scene.Object {
	spec := scene.NewObjectSpec("Base", wCells, hCells, scene.DefaultObjectFill)
	return s.Registry().AddObject(spec, geom.Point{X: x, Y: y})
}

func TestCullerBoundary(t *testing.T) {
	s := newTestScene()
	// Radius 5 cells at 20px/cell: the allowed square spans 900..1100 on
	// both axes around the reference center.
	s.Culler().SetRadius(5)

	touching := addObjectAt(s, 840, 980, 3, 3) // right edge exactly at 900
	inside := addObjectAt(s, 960, 960, 3, 3)
	outside := addObjectAt(s, 820, 980, 3, 3) // right edge at 880

	s.Culler().Apply(refRect)

	assert.True(t, touching.Visible(), "touching the boundary counts as within range")
	assert.False(t, touching.AutoHidden())
	assert.True(t, inside.Visible())
	assert.False(t, outside.Visible())
	assert.True(t, outside.AutoHidden())
}

func TestCullerRadiusZeroShowsEverything(t *testing.T) {
	s := newTestScene()
	s.Culler().SetRadius(5)
	far := addObjectAt(s, 0, 0, 3, 3)

	s.Culler().Apply(refRect)
	require.False(t, far.Visible())

	assert.True(t, s.Culler().SetRadius(0))
	s.Culler().Apply(refRect)
	assert.True(t, far.Visible())
	assert.False(t, far.AutoHidden())
}

func TestCullerHugeRadiusShowsEverything(t *testing.T) {
	s := newTestScene()
	s.Culler().SetRadius(5)
	far := addObjectAt(s, 0, 0, 3, 3)
	s.Culler().Apply(refRect)
	require.False(t, far.Visible())

	// A radius covering the whole scene behaves like disabled.
	s.Culler().SetRadius(2000)
	s.Culler().Apply(refRect)
	assert.True(t, far.Visible())
}

func TestCullerLeavesManualHidesAlone(t *testing.T) {
	s := newTestScene()
	s.Culler().SetRadius(5)

	manual := addObjectAt(s, 960, 960, 3, 3)
	manual.SetVisible(false)

	// In range, but hidden by hand: culling must not reveal it.
	s.Culler().Apply(refRect)
	assert.False(t, manual.Visible())
	assert.False(t, manual.AutoHidden())

	// Disabling culling must not reveal it either.
	s.Culler().SetRadius(0)
	s.Culler().Apply(refRect)
	assert.False(t, manual.Visible())
}

func TestCullerRehidesWhenReferenceMoves(t *testing.T) {
	s := newTestScene()
	s.Culler().SetRadius(5)
	o := addObjectAt(s, 960, 960, 3, 3)

	s.Culler().Apply(refRect)
	require.True(t, o.Visible())

	s.Culler().Apply(geom.Rect{X: 2990, Y: 2990, W: 20, H: 20})
	assert.False(t, o.Visible())
	assert.True(t, o.AutoHidden())

	s.Culler().Apply(refRect)
	assert.True(t, o.Visible())
	assert.False(t, o.AutoHidden())
}

func TestCullerAppliesToZones(t *testing.T) {
	s := newTestScene()
	s.Culler().SetRadius(5)
	zd := s.ZoneDraw()
	zd.SetEnabled(true)
	zd.BeginDrag(geom.Point{X: 0, Y: 0})
	z := zd.FinishDrag(geom.Point{X: 100, Y: 100})
	require.NotNil(t, z)

	s.Culler().Apply(refRect)
	assert.False(t, z.Visible())
}

func TestCullerEmptyReferenceIsNoOp(t *testing.T) {
	s := newTestScene()
	s.Culler().SetRadius(5)
	o := addObjectAt(s, 0, 0, 3, 3)

	s.Culler().Apply(geom.Rect{})
	assert.True(t, o.Visible())
}

func TestWithOverrideRestoresState(t *testing.T) {
	s := newTestScene()
	s.Culler().SetRadius(5)

	near := addObjectAt(s, 960, 960, 3, 3)
	far := addObjectAt(s, 3000, 3000, 3, 3)
	manual := addObjectAt(s, 980, 900, 3, 3)
	manual.SetVisible(false)
	s.Culler().Apply(refRect)
	require.True(t, near.Visible())
	require.False(t, far.Visible())

	exportRect := geom.Rect{X: 2900, Y: 2900, W: 200, H: 200}
	err := s.Culler().WithOverride(exportRect, 10, func() error {
		assert.True(t, far.Visible(), "export region sees its own entities")
		assert.False(t, near.Visible())
		assert.False(t, manual.Visible(), "manual hide holds during the override")
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, 5, s.Culler().Radius())
	assert.True(t, near.Visible())
	assert.False(t, far.Visible())
	assert.True(t, far.AutoHidden())
	assert.False(t, manual.Visible())
}

func TestWithOverrideRestoresOnError(t *testing.T) {
	s := newTestScene()
	s.Culler().SetRadius(5)
	near := addObjectAt(s, 960, 960, 3, 3)
	s.Culler().Apply(refRect)

	boom := errors.New("disk full")
	err := s.Culler().WithOverride(geom.Rect{X: 2900, Y: 2900, W: 200, H: 200}, 10, func() error {
		return boom
	})
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 5, s.Culler().Radius())
	assert.True(t, near.Visible())
}

func TestApplyOverrideNegativeRadiusKeepsCurrent(t *testing.T) {
	s := newTestScene()
	s.Culler().SetRadius(5)
	near := addObjectAt(s, 960, 960, 3, 3)

	ov := s.Culler().ApplyOverride(refRect, -1)
	assert.Equal(t, 5, s.Culler().Radius())
	assert.True(t, near.Visible())
	ov.Restore()
	assert.Equal(t, 5, s.Culler().Radius())
}

func TestCullingAppliedOnArrival(t *testing.T) {
	s := newTestScene()
	s.SetViewRect(geom.Rect{X: 0, Y: 0, W: 100, H: 100})
	s.SetDrawDistance(5) // allowed square spans -50..150 around (50,50)

	spec := scene.NewObjectSpec("Tower", 3, 3, scene.DefaultObjectFill)
	s.Placement().Activate(spec)
	far, err := s.Placement().Place(geom.Point{X: 900, Y: 900}, false)
	require.NoError(t, err)
	assert.False(t, far.Visible(), "hidden the moment it lands out of range")
	assert.True(t, far.AutoHidden())

	s.Placement().Activate(spec)
	near, err := s.Placement().Place(geom.Point{X: 60, Y: 60}, false)
	require.NoError(t, err)
	assert.True(t, near.Visible())

	zd := s.ZoneDraw()
	zd.SetEnabled(true)
	zd.BeginDrag(geom.Point{X: 800, Y: 800})
	z := zd.FinishDrag(geom.Point{X: 900, Y: 900})
	require.NotNil(t, z)
	assert.False(t, z.Visible(), "drawn out of range, hidden immediately")
	assert.True(t, z.AutoHidden())

	// Redrawing it into range shows it again without a pan or zoom.
	s.BeginZoneRedraw(z)
	zd.BeginDrag(geom.Point{X: 0, Y: 0})
	got := zd.FinishDrag(geom.Point{X: 100, Y: 100})
	require.Same(t, z, got)
	assert.True(t, z.Visible())
	assert.False(t, z.AutoHidden())
}
