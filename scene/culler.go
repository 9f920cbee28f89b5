package scene

import (
	"math"

	"github.com/kamstrup/intmap"

	"github.com/plus3/gridmap/geom"
)

// Culler hides entities far from a reference rectangle ("draw distance").
// Each entity carries its own auto-hidden flag, separate from its raw
// visibility, so culling can be toggled without clobbering manual hide/show
// decisions made outside the core.
type Culler struct {
	reg         *Registry
	radiusCells int
}

// NewCuller wires the culler to a registry with culling disabled.
func NewCuller(reg *Registry) *Culler {
	return &Culler{reg: reg}
}

// Radius returns the draw distance in cells; 0 means disabled.
func (c *Culler) Radius() int { return c.radiusCells }

// SetRadius sets the draw distance in cells, clamped at 0, and reports
// whether it changed. The caller re-applies visibility afterwards.
func (c *Culler) SetRadius(cells int) bool {
	if cells < 0 {
		cells = 0
	}
	if cells == c.radiusCells {
		return false
	}
	c.radiusCells = cells
	return true
}

// Apply recomputes visibility against the reference rectangle: an entity is
// visible iff its bounding rectangle touches the allowed square centered on
// the reference rect's center with half-width radius*cellSize (touching
// counts as visible). With radius 0, or an allowed square covering the whole
// scene, every auto-hidden entity is shown again.
//
// Only entities whose visibility matches their auto-hidden flag are toggled:
// an entity hidden manually stays hidden no matter where it sits.
func (c *Culler) Apply(ref geom.Rect) {
	if c.radiusCells <= 0 {
		c.showAllAutoHidden()
		return
	}
	if ref.Empty() {
		return
	}

	g := c.reg.Grid()
	radiusPx := float64(c.radiusCells * g.CellSize)
	if radiusPx >= math.Max(g.SceneWidth(), g.SceneHeight()) {
		c.showAllAutoHidden()
		return
	}

	center := ref.Center()
	allowed := geom.Rect{
		X: center.X - radiusPx,
		Y: center.Y - radiusPx,
		W: radiusPx * 2,
		H: radiusPx * 2,
	}.Intersect(g.Bounds())

	for e := range c.reg.Entities() {
		hidden := e.AutoHidden()
		if !hidden && !e.Visible() {
			// Manually hidden; not ours to touch.
			continue
		}
		if e.Bounds().Touches(allowed) {
			if hidden {
				e.setAutoHidden(false)
				e.SetVisible(true)
			}
		} else if !hidden && e.Visible() {
			e.SetVisible(false)
			e.setAutoHidden(true)
		}
	}
}

func (c *Culler) showAllAutoHidden() {
	for e := range c.reg.Entities() {
		if e.AutoHidden() {
			e.setAutoHidden(false)
			e.SetVisible(true)
		}
	}
}

type visState struct {
	visible    bool
	autoHidden bool
}

// VisibilitySnapshot captures per-entity visible/auto-hidden flags so a
// scoped override can restore them exactly.
type VisibilitySnapshot struct {
	flags *intmap.Map[EntityId, visState]
}

// CaptureState records the visibility flags of every entity.
func (c *Culler) CaptureState() VisibilitySnapshot {
	flags := intmap.New[EntityId, visState](c.reg.ObjectCount() + c.reg.ZoneCount())
	for e := range c.reg.Entities() {
		flags.Put(e.Id(), visState{visible: e.Visible(), autoHidden: e.AutoHidden()})
	}
	return VisibilitySnapshot{flags: flags}
}

// RestoreState reinstates a captured snapshot. Entities added since the
// capture are left alone.
func (c *Culler) RestoreState(s VisibilitySnapshot) {
	if s.flags == nil {
		return
	}
	for e := range c.reg.Entities() {
		if st, ok := s.flags.Get(e.Id()); ok {
			e.setAutoHidden(st.autoHidden)
			e.SetVisible(st.visible)
		}
	}
}

// Override is the saved state of an ApplyOverride, enough to fully restore
// the prior radius and per-entity visibility.
type Override struct {
	culler     *Culler
	prevRadius int
	state      VisibilitySnapshot
}

// ApplyOverride temporarily substitutes a different radius and recomputes
// visibility against rect instead of the live viewport. Image export uses
// this so an export region larger than the viewport is not clipped. Restore
// must be called afterwards, even when the export fails in between; prefer
// WithOverride, which guarantees the pairing.
func (c *Culler) ApplyOverride(rect geom.Rect, radiusCells int) *Override {
	ov := &Override{
		culler:     c,
		prevRadius: c.radiusCells,
		state:      c.CaptureState(),
	}
	if radiusCells < 0 {
		radiusCells = ov.prevRadius
	}
	c.radiusCells = radiusCells
	c.Apply(rect)
	return ov
}

// Restore reinstates exactly the radius and visibility flags captured when
// the override was applied.
func (ov *Override) Restore() {
	ov.culler.radiusCells = ov.prevRadius
	ov.culler.RestoreState(ov.state)
}

// WithOverride runs fn with the override applied and always restores the
// prior state, whether or not fn fails.
func (c *Culler) WithOverride(rect geom.Rect, radiusCells int, fn func() error) error {
	ov := c.ApplyOverride(rect, radiusCells)
	defer ov.Restore()
	return fn()
}
