// Package scene implements the spatial placement core of the map editor:
// the entity registry, collision checks, the placement and zone-draw state
// machines, interactive zone resize, and draw-distance culling. Everything
// is synchronous and single-threaded; state changes happen inside the
// handler of the input event that triggered them.
package scene

import (
	"errors"

	"github.com/plus3/gridmap/geom"
	"github.com/plus3/gridmap/grid"
)

// Errors for zone coordinate edits and export rectangles.
var (
	ErrInvalidCoordinates = errors.New("top-right coordinates must be greater than or equal to bottom-left")
	ErrOutOfBounds        = errors.New("coordinates extend beyond the map bounds")
)

// Scene is the composition root: one registry plus the controllers that
// mutate it. The host application owns exactly one Scene per open map and
// routes every input event to exactly one controller at a time.
type Scene struct {
	reg      *Registry
	collide  *CollisionIndex
	place    *PlacementEngine
	zoneDraw *ZoneDrawController
	resize   *ResizeHandleController
	culler   *Culler

	showGrid bool
	viewRect geom.Rect
}

// NewScene builds a scene on the given grid.
func NewScene(g grid.Grid) *Scene {
	reg := NewRegistry(g)
	collide := NewCollisionIndex(reg)
	s := &Scene{
		reg:      reg,
		collide:  collide,
		place:    NewPlacementEngine(reg, collide),
		zoneDraw: NewZoneDrawController(reg),
		resize:   NewResizeHandleController(reg),
		culler:   NewCuller(reg),
		showGrid: true,
	}
	// Entities are culled the moment they land or are redrawn, the same
	// way RemoveEntity re-culls on removal.
	reg.Subscribe(&ObserverFuncs{
		OnObjectPlaced:       func(*Object) { s.RefreshVisibility() },
		OnZoneCreated:        func(*Zone) { s.RefreshVisibility() },
		OnZoneRedrawFinished: func(*Zone) { s.RefreshVisibility() },
	})
	return s
}

// Registry returns the entity registry.
func (s *Scene) Registry() *Registry { return s.reg }

// Collision returns the collision index.
func (s *Scene) Collision() *CollisionIndex { return s.collide }

// Placement returns the object placement engine.
func (s *Scene) Placement() *PlacementEngine { return s.place }

// ZoneDraw returns the zone drawing controller.
func (s *Scene) ZoneDraw() *ZoneDrawController { return s.zoneDraw }

// Resize returns the zone resize controller.
func (s *Scene) Resize() *ResizeHandleController { return s.resize }

// Culler returns the draw-distance culler.
func (s *Scene) Culler() *Culler { return s.culler }

// Grid returns the current grid configuration.
func (s *Scene) Grid() grid.Grid { return s.reg.Grid() }

// ShowGrid reports whether grid lines should be painted.
func (s *Scene) ShowGrid() bool { return s.showGrid }

// SetShowGrid toggles grid line painting.
func (s *Scene) SetShowGrid(v bool) { s.showGrid = v }

// ViewRect returns the live viewport rectangle last reported by the host.
func (s *Scene) ViewRect() geom.Rect { return s.viewRect }

// SetViewRect records the live viewport and re-applies draw-distance
// culling against it. The host calls this on every pan, zoom or resize.
func (s *Scene) SetViewRect(r geom.Rect) {
	s.viewRect = r
	s.culler.Apply(r)
}

// RefreshVisibility re-applies culling against the live viewport. Called
// after entities are added, removed or moved.
func (s *Scene) RefreshVisibility() {
	s.culler.Apply(s.viewRect)
}

// SetDrawDistance sets the culling radius in cells and re-applies
// visibility.
func (s *Scene) SetDrawDistance(cells int) {
	if s.culler.SetRadius(cells) {
		s.culler.Apply(s.viewRect)
	}
}

// SetCellSize changes the pixel size of a cell. Every entity's pixel
// position is re-derived from its cell alignment under the old size, then
// re-clamped; visibility is recomputed afterwards.
func (s *Scene) SetCellSize(px int) {
	if px <= 0 {
		return
	}
	g := s.reg.Grid()
	g.CellSize = px
	s.reg.SetGrid(g)
	s.culler.Apply(s.viewRect)
}

// BeginZoneRedraw enters zone draw mode targeting an existing zone, so the
// next completed drag re-specifies that zone instead of creating a new one.
func (s *Scene) BeginZoneRedraw(z *Zone) {
	s.zoneDraw.BeginRedraw(z)
}

// RemoveEntity removes an object or zone and refreshes visibility.
func (s *Scene) RemoveEntity(id EntityId) bool {
	ok := s.reg.Remove(id)
	if ok {
		s.RefreshVisibility()
	}
	return ok
}

// SetZoneCoordinates repositions and resizes a zone from 0-based cell
// coordinates with a bottom-left origin for Y: (blX, blY) is the zone's
// bottom-left cell and (trX, trY) its top-right cell, both inclusive.
func (s *Scene) SetZoneCoordinates(z *Zone, blX, blY, trX, trY int) error {
	g := s.reg.Grid()
	if trX < blX || trY < blY {
		return ErrInvalidCoordinates
	}
	if blX < 0 || blY < 0 || trX >= g.Extent || trY >= g.Extent {
		return ErrOutOfBounds
	}

	wCells := trX - blX + 1
	hCells := trY - blY + 1
	topCells := g.Extent - trY - 1
	if topCells < 0 {
		return ErrOutOfBounds
	}

	z.Spec.WidthCells = wCells
	z.Spec.HeightCells = hCells
	z.cellSize = g.CellSize
	w := float64(wCells * g.CellSize)
	h := float64(hCells * g.CellSize)
	pos := geom.Point{X: g.CellToScene(blX), Y: g.CellToScene(topCells)}
	z.topLeft = g.ClampTopLeft(pos, w, h)

	s.reg.emitZoneUpdated(z)
	return nil
}

// ExportRectFromCells converts an inclusive bottom-left-origin cell
// rectangle to the scene rectangle covering it, clipped to scene bounds.
// Export by coordinates goes through this.
func (s *Scene) ExportRectFromCells(blX, blY, trX, trY int) (geom.Rect, error) {
	g := s.reg.Grid()
	if trX < blX || trY < blY {
		return geom.Rect{}, ErrInvalidCoordinates
	}
	topCells := g.Extent - trY - 1
	if topCells < 0 || blX < 0 || blY < 0 || trX >= g.Extent || trY >= g.Extent {
		return geom.Rect{}, ErrOutOfBounds
	}
	rect := g.CellRect(blX, topCells, trX-blX+1, trY-blY+1)
	return rect.Intersect(g.Bounds()), nil
}
