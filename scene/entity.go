package scene

import "github.com/plus3/gridmap/geom"

// EntityId is the stable identity of a placed object or zone within one
// registry. Ids are never reused.
type EntityId uint64

// Entity is the common surface of placed objects and zones that the culler
// and rendering adapters operate on: geometry plus visibility state.
type Entity interface {
	Id() EntityId
	Bounds() geom.Rect
	Visible() bool
	SetVisible(bool)
	// AutoHidden reports whether the draw-distance culler hid this entity.
	// It is distinct from Visible so culling never clobbers a manual hide.
	AutoHidden() bool

	setAutoHidden(bool)
	topLeftPx() geom.Point
	setTopLeftPx(geom.Point)
	sizeCells() (w, h int)
	setCellSize(px int)
}

// Object is a placed map object: a cloned template snapshot plus a
// grid-aligned top-left position. Its bounding rectangle never overlaps
// another object's.
type Object struct {
	id       EntityId
	Spec     *ObjectSpec
	topLeft  geom.Point
	cellSize int

	// lastValid is the rollback anchor for failed drags and resizes.
	lastValid geom.Point

	visible    bool
	autoHidden bool
}

// Id returns the object's registry identity.
func (o *Object) Id() EntityId { return o.id }

// TopLeft returns the grid-aligned top-left position in pixels.
func (o *Object) TopLeft() geom.Point { return o.topLeft }

// Bounds returns the object's axis-aligned bounding rectangle in pixels.
func (o *Object) Bounds() geom.Rect {
	return geom.Rect{
		X: o.topLeft.X,
		Y: o.topLeft.Y,
		W: float64(o.Spec.WidthCells * o.cellSize),
		H: float64(o.Spec.HeightCells * o.cellSize),
	}
}

// Visible reports whether the object is currently shown.
func (o *Object) Visible() bool { return o.visible }

// SetVisible shows or hides the object (a manual decision, not culling).
func (o *Object) SetVisible(v bool) { o.visible = v }

// AutoHidden reports whether the draw-distance culler hid this object.
func (o *Object) AutoHidden() bool { return o.autoHidden }

// LastValidPosition returns the position a failed drag reverts to.
func (o *Object) LastValidPosition() geom.Point { return o.lastValid }

func (o *Object) setAutoHidden(v bool) { o.autoHidden = v }
func (o *Object) topLeftPx() geom.Point { return o.topLeft }
func (o *Object) setTopLeftPx(p geom.Point) { o.topLeft = p }
func (o *Object) sizeCells() (int, int) { return o.Spec.WidthCells, o.Spec.HeightCells }
func (o *Object) setCellSize(px int) { o.cellSize = px }

// Zone is a placed zone. Zones may overlap each other and objects freely;
// only the 1x1 minimum and scene bounds constrain them.
type Zone struct {
	id       EntityId
	Spec     *ZoneSpec
	topLeft  geom.Point
	cellSize int

	visible    bool
	autoHidden bool

	// hiddenForRedraw is set while a redraw drag targets this zone, so a
	// cancelled or degenerate redraw can restore it.
	hiddenForRedraw bool
}

// Id returns the zone's registry identity.
func (z *Zone) Id() EntityId { return z.id }

// TopLeft returns the grid-aligned top-left position in pixels.
func (z *Zone) TopLeft() geom.Point { return z.topLeft }

// Bounds returns the zone's rectangle in pixels.
func (z *Zone) Bounds() geom.Rect {
	return geom.Rect{
		X: z.topLeft.X,
		Y: z.topLeft.Y,
		W: float64(z.Spec.WidthCells * z.cellSize),
		H: float64(z.Spec.HeightCells * z.cellSize),
	}
}

// Visible reports whether the zone is currently shown.
func (z *Zone) Visible() bool { return z.visible }

// SetVisible shows or hides the zone.
func (z *Zone) SetVisible(v bool) { z.visible = v }

// AutoHidden reports whether the draw-distance culler hid this zone.
func (z *Zone) AutoHidden() bool { return z.autoHidden }

// HiddenForRedraw reports whether a redraw drag is hiding this zone.
func (z *Zone) HiddenForRedraw() bool { return z.hiddenForRedraw }

func (z *Zone) setAutoHidden(v bool) { z.autoHidden = v }
func (z *Zone) topLeftPx() geom.Point { return z.topLeft }
func (z *Zone) setTopLeftPx(p geom.Point) { z.topLeft = p }
func (z *Zone) sizeCells() (int, int) { return z.Spec.WidthCells, z.Spec.HeightCells }
func (z *Zone) setCellSize(px int) { z.cellSize = px }
