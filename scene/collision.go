package scene

import "github.com/plus3/gridmap/geom"

// CollisionIndex answers whether a rectangle is free of placed objects.
// Zones are never consulted and never block anything.
//
// Every query is a linear scan over all objects. At editor entity counts
// this is fine; it is the scaling limit of the core, not hidden behind an
// index structure. A grid-bucket index could replace it without changing
// observable behavior.
type CollisionIndex struct {
	reg *Registry
}

// NewCollisionIndex builds an index over the registry's objects.
func NewCollisionIndex(reg *Registry) *CollisionIndex {
	return &CollisionIndex{reg: reg}
}

// IsFree reports whether no object other than the ignored ones intersects
// candidate. Edge-touching does not count as overlap.
func (c *CollisionIndex) IsFree(candidate geom.Rect, ignore ...EntityId) bool {
	for o := range c.reg.Objects() {
		if idIn(o.id, ignore) {
			continue
		}
		if candidate.Overlaps(o.Bounds()) {
			return false
		}
	}
	return true
}

// IsObjectPositionFree reports whether the object's current rectangle is
// free of every other object.
func (c *CollisionIndex) IsObjectPositionFree(o *Object) bool {
	return c.IsFree(o.Bounds(), o.id)
}

func idIn(id EntityId, ids []EntityId) bool {
	for _, other := range ids {
		if id == other {
			return true
		}
	}
	return false
}
