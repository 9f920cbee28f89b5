package scene

import (
	"errors"
	"fmt"

	"github.com/plus3/gridmap/geom"
)

// RejectReason classifies why a placement or resize was refused.
type RejectReason int

const (
	// RejectOverlap means the candidate rectangle intersects another object.
	RejectOverlap RejectReason = iota + 1
	// RejectLimitReached means the template's placement cap is exhausted.
	RejectLimitReached
)

// PlaceError is the recoverable, user-surfaced rejection of a placement,
// drag or resize. No entity state changes when one is returned.
type PlaceError struct {
	Reason RejectReason
	Limit  int    // the offending cap, for RejectLimitReached
	Key    string // the limit key the cap is grouped under
}

func (e *PlaceError) Error() string {
	switch e.Reason {
	case RejectLimitReached:
		return fmt.Sprintf("cannot place more than %d instance(s) of %s", e.Limit, e.Key)
	default:
		return "cannot place object on top of another object"
	}
}

// ErrNoActiveTemplate is returned by Place when no template is active.
var ErrNoActiveTemplate = errors.New("no active placement template")

// PlacementEngine is the active-template state machine: Idle until a
// template is activated, then a translucent preview follows the cursor and
// Place stamps clones onto the map subject to limit and collision checks.
type PlacementEngine struct {
	reg     *Registry
	collide *CollisionIndex

	active       *ObjectSpec
	previewPos   geom.Point
	previewValid bool

	dragStart map[EntityId]geom.Point
}

// NewPlacementEngine wires the engine to a registry and collision index.
func NewPlacementEngine(reg *Registry, collide *CollisionIndex) *PlacementEngine {
	return &PlacementEngine{reg: reg, collide: collide}
}

// Activate enters the Active state with the given template. The preview
// appears on the next UpdatePreview.
func (p *PlacementEngine) Activate(spec *ObjectSpec) {
	p.active = spec
	p.previewValid = false
}

// Active returns the template being placed, or nil when idle.
func (p *PlacementEngine) Active() *ObjectSpec { return p.active }

// Cancel discards the active template and preview.
func (p *PlacementEngine) Cancel() {
	p.active = nil
	p.previewValid = false
}

// UpdatePreview recomputes the preview position for the cursor. The preview
// is purely visual: it may show an overlapping position, legality is only
// checked at Place.
func (p *PlacementEngine) UpdatePreview(cursor geom.Point) {
	if p.active == nil {
		return
	}
	g := p.reg.Grid()
	p.previewPos = g.SnapCenter(cursor, p.active.WidthCells, p.active.HeightCells)
	p.previewValid = true
}

// PreviewRect returns the preview rectangle, if one is showing.
func (p *PlacementEngine) PreviewRect() (geom.Rect, bool) {
	if p.active == nil || !p.previewValid {
		return geom.Rect{}, false
	}
	g := p.reg.Grid()
	return geom.Rect{
		X: p.previewPos.X,
		Y: p.previewPos.Y,
		W: float64(p.active.WidthCells * g.CellSize),
		H: float64(p.active.HeightCells * g.CellSize),
	}, true
}

// Place stamps the active template centered under the cursor. With multi
// true (the host's modifier key) the engine stays active for repeated
// placement; otherwise it returns to idle after a successful place.
//
// A limit-1 template replaces its existing instance, but only once both the
// limit and collision checks are known to pass: a rejection never deletes
// the old instance without placing the new one.
func (p *PlacementEngine) Place(cursor geom.Point, multi bool) (*Object, error) {
	if p.active == nil {
		return nil, ErrNoActiveTemplate
	}

	g := p.reg.Grid()
	spec := p.active
	pos := g.SnapCenter(cursor, spec.WidthCells, spec.HeightCells)
	rect := geom.Rect{
		X: pos.X,
		Y: pos.Y,
		W: float64(spec.WidthCells * g.CellSize),
		H: float64(spec.HeightCells * g.CellSize),
	}

	var replace []*Object
	if spec.Limit > 0 {
		key := spec.EffectiveLimitKey()
		existing := p.reg.ObjectsWithKey(key)
		if spec.Limit == 1 {
			// Single-instance replace: the old instance must not block the
			// new position, but it is only removed after the collision
			// check passes.
			replace = existing
		} else if len(existing) >= spec.Limit {
			return nil, &PlaceError{Reason: RejectLimitReached, Limit: spec.Limit, Key: key}
		}
	}

	ignore := make([]EntityId, len(replace))
	for i, o := range replace {
		ignore[i] = o.id
	}
	if !p.collide.IsFree(rect, ignore...) {
		return nil, &PlaceError{Reason: RejectOverlap, Key: spec.EffectiveLimitKey()}
	}

	for _, o := range replace {
		p.reg.Remove(o.id)
	}
	obj := p.reg.AddObject(spec.Clone(), pos)
	if !multi {
		p.Cancel()
	}
	return obj, nil
}

// BeginDrag records the drag-start positions of the objects about to move,
// so a failed release can revert each one independently.
func (p *PlacementEngine) BeginDrag(objs ...*Object) {
	p.dragStart = make(map[EntityId]geom.Point, len(objs))
	for _, o := range objs {
		p.dragStart[o.id] = o.topLeft
	}
}

// DragBy translates the dragged objects by a pixel delta, unsnapped.
// Alignment and collision are resolved at EndDrag.
func (p *PlacementEngine) DragBy(delta geom.Point) {
	for id := range p.dragStart {
		if o, ok := p.reg.Object(id); ok {
			p.reg.Translate(o, delta)
		}
	}
}

// EndDrag snaps every dragged object and commits or reverts each one
// independently: an object whose snapped rectangle collides goes back to
// its drag-start position (or last valid position), siblings are unaffected.
// The reverted objects are returned so the host can notify the user.
func (p *PlacementEngine) EndDrag() (reverted []*Object) {
	for id, start := range p.dragStart {
		o, ok := p.reg.Object(id)
		if !ok {
			continue
		}
		p.reg.SnapEntity(o)
		if !p.collide.IsObjectPositionFree(o) {
			o.topLeft = start
			p.reg.SnapEntity(o)
			reverted = append(reverted, o)
		}
		o.lastValid = o.topLeft
	}
	p.dragStart = nil
	return reverted
}

// ResizeObject changes an object's size in cells at its current position.
// If the grown rectangle would overlap another object the old size and
// position are restored and an overlap rejection is returned.
func (p *PlacementEngine) ResizeObject(o *Object, wCells, hCells int) error {
	oldW, oldH := o.Spec.WidthCells, o.Spec.HeightCells
	oldPos := o.topLeft

	o.Spec.WidthCells = wCells
	o.Spec.HeightCells = hCells
	p.reg.SnapEntity(o)
	if !p.collide.IsObjectPositionFree(o) {
		o.Spec.WidthCells = oldW
		o.Spec.HeightCells = oldH
		o.topLeft = oldPos
		p.reg.SnapEntity(o)
		return &PlaceError{Reason: RejectOverlap, Key: o.Spec.EffectiveLimitKey()}
	}
	o.lastValid = o.topLeft
	return nil
}
