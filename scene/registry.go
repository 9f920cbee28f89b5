package scene

import (
	"iter"
	"slices"

	"github.com/kamstrup/intmap"

	"github.com/plus3/gridmap/geom"
	"github.com/plus3/gridmap/grid"
)

// Registry owns every placed object and zone together with the grid they are
// aligned to. It is plain data: input controllers mutate it through ids and
// rendering adapters read it, nothing here knows about any UI framework.
//
// Registry is not safe for concurrent use; the editor is single-threaded and
// all mutation happens inside the handler of the triggering input event.
type Registry struct {
	grid grid.Grid

	nextId  EntityId
	objects *intmap.Map[EntityId, *Object]
	zones   *intmap.Map[EntityId, *Zone]

	// Insertion order, for deterministic iteration.
	objectOrder []EntityId
	zoneOrder   []EntityId

	observers []Observer
}

// NewRegistry returns an empty registry on the given grid.
func NewRegistry(g grid.Grid) *Registry {
	return &Registry{
		grid:    g,
		objects: intmap.New[EntityId, *Object](256),
		zones:   intmap.New[EntityId, *Zone](64),
	}
}

// Grid returns the current grid configuration.
func (r *Registry) Grid() grid.Grid { return r.grid }

// Subscribe registers an observer for entity lifecycle events.
func (r *Registry) Subscribe(o Observer) {
	r.observers = append(r.observers, o)
}

func (r *Registry) allocId() EntityId {
	r.nextId++
	return r.nextId
}

// AddObject inserts an object at the given top-left without snapping or any
// legality checks. PlacementEngine performs those before calling this; the
// load path calls it directly, which is the documented trust boundary: a
// hand-edited save may contain overlaps the core does not correct.
func (r *Registry) AddObject(spec *ObjectSpec, topLeft geom.Point) *Object {
	o := &Object{
		id:        r.allocId(),
		Spec:      spec,
		topLeft:   topLeft,
		lastValid: topLeft,
		cellSize:  r.grid.CellSize,
		visible:   true,
	}
	r.objects.Put(o.id, o)
	r.objectOrder = append(r.objectOrder, o.id)
	for _, obs := range r.observers {
		obs.ObjectPlaced(o)
	}
	return o
}

// AddZone inserts a zone at the given top-left without snapping.
func (r *Registry) AddZone(spec *ZoneSpec, topLeft geom.Point) *Zone {
	z := &Zone{
		id:       r.allocId(),
		Spec:     spec,
		topLeft:  topLeft,
		cellSize: r.grid.CellSize,
		visible:  true,
	}
	r.zones.Put(z.id, z)
	r.zoneOrder = append(r.zoneOrder, z.id)
	for _, obs := range r.observers {
		obs.ZoneCreated(z)
	}
	return z
}

// Object looks up an object by id.
func (r *Registry) Object(id EntityId) (*Object, bool) {
	return r.objects.Get(id)
}

// Zone looks up a zone by id.
func (r *Registry) Zone(id EntityId) (*Zone, bool) {
	return r.zones.Get(id)
}

// Entity looks up either kind by id.
func (r *Registry) Entity(id EntityId) (Entity, bool) {
	if o, ok := r.objects.Get(id); ok {
		return o, true
	}
	if z, ok := r.zones.Get(id); ok {
		return z, true
	}
	return nil, false
}

// Remove deletes an entity by id and reports whether anything was removed.
func (r *Registry) Remove(id EntityId) bool {
	if o, ok := r.objects.Get(id); ok {
		r.objects.Del(id)
		r.objectOrder = deleteId(r.objectOrder, id)
		for _, obs := range r.observers {
			obs.ObjectRemoved(o)
		}
		return true
	}
	if z, ok := r.zones.Get(id); ok {
		r.zones.Del(id)
		r.zoneOrder = deleteId(r.zoneOrder, id)
		for _, obs := range r.observers {
			obs.ZoneRemoved(z)
		}
		return true
	}
	return false
}

func deleteId(order []EntityId, id EntityId) []EntityId {
	if i := slices.Index(order, id); i >= 0 {
		return slices.Delete(order, i, i+1)
	}
	return order
}

// RemoveObjectsByTemplate removes every object stamped from the given
// template and returns how many were removed.
func (r *Registry) RemoveObjectsByTemplate(templateId string) int {
	removed := 0
	for _, id := range slices.Clone(r.objectOrder) {
		if o, ok := r.objects.Get(id); ok && o.Spec.TemplateID == templateId {
			r.Remove(id)
			removed++
		}
	}
	return removed
}

// Objects iterates placed objects in insertion order.
func (r *Registry) Objects() iter.Seq[*Object] {
	return func(yield func(*Object) bool) {
		for _, id := range r.objectOrder {
			if o, ok := r.objects.Get(id); ok {
				if !yield(o) {
					return
				}
			}
		}
	}
}

// Zones iterates placed zones in insertion order.
func (r *Registry) Zones() iter.Seq[*Zone] {
	return func(yield func(*Zone) bool) {
		for _, id := range r.zoneOrder {
			if z, ok := r.zones.Get(id); ok {
				if !yield(z) {
					return
				}
			}
		}
	}
}

// Entities iterates zones first and then objects, matching paint order.
func (r *Registry) Entities() iter.Seq[Entity] {
	return func(yield func(Entity) bool) {
		for z := range r.Zones() {
			if !yield(z) {
				return
			}
		}
		for o := range r.Objects() {
			if !yield(o) {
				return
			}
		}
	}
}

// ObjectCount returns the number of placed objects.
func (r *Registry) ObjectCount() int { return len(r.objectOrder) }

// ZoneCount returns the number of placed zones.
func (r *Registry) ZoneCount() int { return len(r.zoneOrder) }

// ObjectsWithKey returns the objects whose limit key equals key.
func (r *Registry) ObjectsWithKey(key string) []*Object {
	if key == "" {
		return nil
	}
	var matches []*Object
	for o := range r.Objects() {
		if o.Spec.EffectiveLimitKey() == key {
			matches = append(matches, o)
		}
	}
	return matches
}

// CountObjectsWithKey returns how many objects share the limit key.
func (r *Registry) CountObjectsWithKey(key string) int {
	return len(r.ObjectsWithKey(key))
}

// Translate moves an entity by a pixel delta without snapping. Used for live
// dragging; SnapEntity aligns and clamps at release.
func (r *Registry) Translate(e Entity, delta geom.Point) {
	e.setTopLeftPx(e.topLeftPx().Add(delta))
}

// SnapEntity snaps an entity's top-left to the grid and clamps it into the
// scene at its current size.
func (r *Registry) SnapEntity(e Entity) {
	w, h := e.sizeCells()
	wPx := float64(w * r.grid.CellSize)
	hPx := float64(h * r.grid.CellSize)
	p := r.grid.SnapTopLeft(e.topLeftPx())
	e.setTopLeftPx(r.grid.ClampTopLeft(p, wPx, hPx))
}

// SetGrid swaps the grid configuration and re-derives every entity's pixel
// position from its existing cell alignment under the old configuration.
func (r *Registry) SetGrid(g grid.Grid) {
	old := r.grid
	r.grid = g
	if old == g {
		return
	}
	for e := range r.Entities() {
		w, h := e.sizeCells()
		e.setCellSize(g.CellSize)
		e.setTopLeftPx(grid.Rescale(old, g, e.topLeftPx(), w, h))
	}
}

func (r *Registry) emitZoneUpdated(z *Zone) {
	for _, obs := range r.observers {
		obs.ZoneUpdated(z)
	}
}

func (r *Registry) emitZoneRedrawFinished(z *Zone) {
	for _, obs := range r.observers {
		obs.ZoneRedrawFinished(z)
	}
}
