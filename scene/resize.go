package scene

import (
	"math"

	"github.com/plus3/gridmap/geom"
)

// HandleRole identifies one of the eight resize handles by the edges it
// moves. Corner handles carry two edge bits.
type HandleRole uint8

const (
	HandleLeft HandleRole = 1 << iota
	HandleRight
	HandleTop
	HandleBottom

	HandleTopLeft     = HandleTop | HandleLeft
	HandleTopRight    = HandleTop | HandleRight
	HandleBottomLeft  = HandleBottom | HandleLeft
	HandleBottomRight = HandleBottom | HandleRight
)

// HandleRoles lists all eight handles clockwise from the top-left corner.
var HandleRoles = []HandleRole{
	HandleTopLeft, HandleTop, HandleTopRight, HandleRight,
	HandleBottomRight, HandleBottom, HandleBottomLeft, HandleLeft,
}

// HandlePosition returns where the handle sits on the zone's rectangle:
// corners at corners, edge handles at edge midpoints.
func HandlePosition(z *Zone, role HandleRole) geom.Point {
	b := z.Bounds()
	p := geom.Point{X: b.X + b.W/2, Y: b.Y + b.H/2}
	if role&HandleLeft != 0 {
		p.X = b.X
	}
	if role&HandleRight != 0 {
		p.X = b.Right()
	}
	if role&HandleTop != 0 {
		p.Y = b.Y
	}
	if role&HandleBottom != 0 {
		p.Y = b.Bottom()
	}
	return p
}

// HitHandle returns the handle under the cursor within tolerance pixels, if
// any. Corners win over edges when both are in range.
func HitHandle(z *Zone, cursor geom.Point, tolerance float64) (HandleRole, bool) {
	best := HandleRole(0)
	bestDist := tolerance
	for _, role := range HandleRoles {
		p := HandlePosition(z, role)
		d := math.Hypot(cursor.X-p.X, cursor.Y-p.Y)
		if d <= bestDist {
			// Prefer corner handles on ties.
			if best == 0 || d < bestDist || popcount(role) > popcount(best) {
				best = role
				bestDist = d
			}
		}
	}
	return best, best != 0
}

func popcount(r HandleRole) int {
	n := 0
	for ; r != 0; r &= r - 1 {
		n++
	}
	return n
}

// ResizeHandleController performs the interactive eight-handle resize of a
// single selected zone. The rectangle is recomputed from its four logical
// cell edges on every move and can never collapse below 1x1 cells. Zones
// are exempt from collision, so there is no overlap check.
type ResizeHandleController struct {
	reg *Registry

	zone *Zone
	role HandleRole

	// Current logical edges in cell coordinates.
	left, top, right, bottom int
	// Edges at drag start, to decide whether anything changed on release.
	startLeft, startTop, startRight, startBottom int

	changed bool
	active  bool
}

// NewResizeHandleController wires the controller to a registry.
func NewResizeHandleController(reg *Registry) *ResizeHandleController {
	return &ResizeHandleController{reg: reg}
}

// Active reports whether a resize drag is in progress.
func (c *ResizeHandleController) Active() bool { return c.active }

// Zone returns the zone being resized, or nil.
func (c *ResizeHandleController) Zone() *Zone {
	if !c.active {
		return nil
	}
	return c.zone
}

// Begin starts a resize drag on one handle of the zone.
func (c *ResizeHandleController) Begin(z *Zone, role HandleRole) {
	g := c.reg.Grid()
	cs := float64(g.CellSize)
	left := int(math.Round(z.topLeft.X / cs))
	top := int(math.Round(z.topLeft.Y / cs))

	c.zone = z
	c.role = role
	c.left, c.top = left, top
	c.right = left + z.Spec.WidthCells
	c.bottom = top + z.Spec.HeightCells
	c.startLeft, c.startTop = c.left, c.top
	c.startRight, c.startBottom = c.right, c.bottom
	c.changed = false
	c.active = true
}

// Move updates the dragged edges from the cursor. Each moving edge is
// converted to a cell index and clamped against its opposite edge and the
// grid extent so the zone keeps at least one cell on both axes.
func (c *ResizeHandleController) Move(cursor geom.Point) {
	if !c.active {
		return
	}
	g := c.reg.Grid()
	cs := float64(g.CellSize)

	left, top, right, bottom := c.left, c.top, c.right, c.bottom
	if c.role&HandleLeft != 0 {
		left = clampInt(int(math.Round(cursor.X/cs)), 0, right-1)
	}
	if c.role&HandleRight != 0 {
		right = clampInt(int(math.Round(cursor.X/cs)), left+1, g.Extent)
	}
	if c.role&HandleTop != 0 {
		top = clampInt(int(math.Round(cursor.Y/cs)), 0, bottom-1)
	}
	if c.role&HandleBottom != 0 {
		bottom = clampInt(int(math.Round(cursor.Y/cs)), top+1, g.Extent)
	}
	right = clampInt(right, left+1, g.Extent)
	bottom = clampInt(bottom, top+1, g.Extent)

	if left == c.left && top == c.top && right == c.right && bottom == c.bottom {
		return
	}

	c.left, c.top, c.right, c.bottom = left, top, right, bottom
	c.zone.Spec.WidthCells = right - left
	c.zone.Spec.HeightCells = bottom - top
	c.zone.cellSize = g.CellSize
	c.zone.topLeft = geom.Point{X: g.CellToScene(left), Y: g.CellToScene(top)}
	c.changed = true
}

// End finishes the drag. When the final geometry differs from the geometry
// at drag start a single updated notification is emitted; otherwise nothing
// is emitted. Returns whether the zone changed.
func (c *ResizeHandleController) End() bool {
	if !c.active {
		return false
	}
	changed := c.changed &&
		(c.left != c.startLeft || c.top != c.startTop ||
			c.right != c.startRight || c.bottom != c.startBottom)
	if changed {
		c.reg.emitZoneUpdated(c.zone)
	}
	c.active = false
	c.zone = nil
	c.changed = false
	return changed
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
