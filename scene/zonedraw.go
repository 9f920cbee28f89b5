package scene

import (
	"fmt"
	"math"

	"github.com/plus3/gridmap/geom"
)

// ZoneDrawState is the zone drawing state machine's current state.
type ZoneDrawState int

const (
	// ZoneDrawIdle means draw mode is off.
	ZoneDrawIdle ZoneDrawState = iota
	// ZoneDrawHovering means draw mode is on and a snapped cursor marker is
	// showing, but no drag is in progress.
	ZoneDrawHovering
	// ZoneDrawDragging means the button is held and a rectangle is tracked
	// between the fixed start corner and the live corner.
	ZoneDrawDragging
)

// ZoneDrawController creates zones with click-drag rectangles whose corners
// snap to grid lines. A distinguished redraw mode re-specifies one existing
// zone in place instead of creating a new one.
type ZoneDrawController struct {
	reg *Registry

	enabled  bool
	dragging bool
	start    geom.Point
	end      geom.Point
	hover    geom.Point
	hovering bool

	redrawTarget *Zone

	// counter backs the auto-incremented "Zone N" names. It never reuses a
	// freed number, including across removals.
	counter int
}

// NewZoneDrawController wires the controller to a registry.
func NewZoneDrawController(reg *Registry) *ZoneDrawController {
	return &ZoneDrawController{reg: reg}
}

// State returns the current state of the draw state machine.
func (c *ZoneDrawController) State() ZoneDrawState {
	switch {
	case !c.enabled:
		return ZoneDrawIdle
	case c.dragging:
		return ZoneDrawDragging
	default:
		return ZoneDrawHovering
	}
}

// Enabled reports whether draw mode is on.
func (c *ZoneDrawController) Enabled() bool { return c.enabled }

// SetEnabled toggles draw mode. Turning it off cancels any drag in progress
// and restores a hidden redraw target.
func (c *ZoneDrawController) SetEnabled(enabled bool) {
	if c.enabled == enabled {
		return
	}
	c.enabled = enabled
	if !enabled {
		c.CancelDrag()
		c.hovering = false
	}
}

// BeginRedraw targets an existing zone: the next completed drag mutates its
// geometry in place. The target is hidden once the drag starts, and made
// visible again if the redraw is cancelled or degenerate.
func (c *ZoneDrawController) BeginRedraw(z *Zone) {
	c.enabled = true
	c.redrawTarget = z
	c.dragging = false
}

// RedrawTarget returns the zone a redraw is aimed at, or nil.
func (c *ZoneDrawController) RedrawTarget() *Zone { return c.redrawTarget }

// Hover tracks the cursor while not dragging and returns the snapped corner
// the hover marker sits on.
func (c *ZoneDrawController) Hover(cursor geom.Point) geom.Point {
	c.hover = c.reg.Grid().SnapCorner(cursor)
	c.hovering = c.enabled && !c.dragging
	return c.hover
}

// HoverMarker returns the snapped hover position, if the marker is showing.
func (c *ZoneDrawController) HoverMarker() (geom.Point, bool) {
	return c.hover, c.hovering
}

// BeginDrag starts tracking a rectangle from the snapped start corner.
func (c *ZoneDrawController) BeginDrag(cursor geom.Point) {
	if !c.enabled {
		return
	}
	if c.redrawTarget != nil && !c.redrawTarget.hiddenForRedraw {
		c.redrawTarget.hiddenForRedraw = true
		c.redrawTarget.SetVisible(false)
	}
	c.start = c.reg.Grid().SnapCorner(cursor)
	c.end = c.start
	c.dragging = true
	c.hovering = false
}

// UpdateDrag moves the live corner and returns the preview rectangle.
func (c *ZoneDrawController) UpdateDrag(cursor geom.Point) geom.Rect {
	if !c.dragging {
		return geom.Rect{}
	}
	c.end = c.reg.Grid().SnapCorner(cursor)
	return geom.RectFromCorners(c.start, c.end)
}

// PreviewRect returns the rectangle being dragged out, if any. A degenerate
// preview (both corners equal) is the single-point marker, not a zone.
func (c *ZoneDrawController) PreviewRect() (geom.Rect, bool) {
	if !c.dragging {
		return geom.Rect{}, false
	}
	return geom.RectFromCorners(c.start, c.end), true
}

// FinishDrag completes the drag at the given cursor. It returns the created
// zone, the redrawn zone, or nil when the rectangle was degenerate (a plain
// click is a normal cancel, not an error; it abandons a pending redraw). On a successful redraw the target
// is mutated in place and made visible again; no new entity is created.
func (c *ZoneDrawController) FinishDrag(cursor geom.Point) *Zone {
	if !c.dragging {
		return nil
	}
	g := c.reg.Grid()
	end := g.SnapCorner(cursor)
	start := c.start
	c.dragging = false
	c.hovering = c.enabled
	c.hover = end

	if start == end {
		c.restoreRedrawTarget()
		return nil
	}

	rect := geom.RectFromCorners(start, end)
	wCells := int(math.Round(rect.W / float64(g.CellSize)))
	hCells := int(math.Round(rect.H / float64(g.CellSize)))
	if wCells == 0 || hCells == 0 {
		c.restoreRedrawTarget()
		return nil
	}

	if target := c.redrawTarget; target != nil {
		target.Spec.WidthCells = wCells
		target.Spec.HeightCells = hCells
		target.cellSize = g.CellSize
		w := float64(wCells * g.CellSize)
		h := float64(hCells * g.CellSize)
		target.topLeft = g.ClampTopLeft(rect.TopLeft(), w, h)
		target.SetVisible(true)
		target.hiddenForRedraw = false
		c.redrawTarget = nil
		c.reg.emitZoneUpdated(target)
		c.reg.emitZoneRedrawFinished(target)
		return target
	}

	spec := &ZoneSpec{
		Name:        c.nextZoneName(),
		WidthCells:  wCells,
		HeightCells: hCells,
		Fill:        DefaultZoneFill,
		Edge:        DefaultZoneEdge,
	}
	return c.reg.AddZone(spec, rect.TopLeft())
}

// CancelDrag aborts the drag in progress, restoring a hidden redraw target.
// Draw mode stays on.
func (c *ZoneDrawController) CancelDrag() {
	c.dragging = false
	c.hovering = c.enabled
	c.restoreRedrawTarget()
}

// RightClick applies the right-button semantics: cancel the drag only when
// one is in progress, otherwise leave draw mode entirely. It reports whether
// draw mode is still on.
func (c *ZoneDrawController) RightClick() bool {
	if c.dragging {
		c.CancelDrag()
		return true
	}
	c.SetEnabled(false)
	return false
}

// restoreRedrawTarget un-hides the redraw target and disarms it. Every path
// that ends a redraw without committing it goes through here.
func (c *ZoneDrawController) restoreRedrawTarget() {
	if c.redrawTarget == nil {
		return
	}
	if c.redrawTarget.hiddenForRedraw {
		c.redrawTarget.SetVisible(true)
		c.redrawTarget.hiddenForRedraw = false
	}
	c.redrawTarget = nil
}

func (c *ZoneDrawController) nextZoneName() string {
	c.counter++
	return fmt.Sprintf("Zone %d", c.counter)
}

// ZoneCounter returns the running zone-name counter.
func (c *ZoneDrawController) ZoneCounter() int { return c.counter }

// SetZoneCounter replaces the counter, used when loading a saved map. It is
// raised to at least the current zone count so names stay unique.
func (c *ZoneDrawController) SetZoneCounter(n int) {
	if n < c.reg.ZoneCount() {
		n = c.reg.ZoneCount()
	}
	c.counter = n
}
