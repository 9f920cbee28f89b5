package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/plus3/gridmap/editorui"
	"github.com/plus3/gridmap/geom"
	"github.com/plus3/gridmap/persist"
	"github.com/plus3/gridmap/render"
	"github.com/plus3/gridmap/scene"
)

// inputState tracks what the pressed mouse button is currently doing, so a
// press routes to exactly one controller and the matching release finishes
// on the same one.
type inputState struct {
	mode     dragMode
	last     geom.Point // cursor scene position at the previous frame
	panLastX int
	panLastY int
}

type dragMode int

const (
	dragNone dragMode = iota
	dragZoneDraw
	dragObjects
	dragResize
	dragPan
)

func (g *Game) handleInput() {
	s := g.state.Scene
	mx, my := ebiten.CursorPosition()
	cursor := g.cam.ToScene(float64(mx), float64(my))

	if !editorui.WantCaptureKeyboard() {
		g.handleKeys()
	}
	if editorui.WantCaptureMouse() {
		return
	}

	// Wheel zoom, anchored under the cursor. Ctrl gives fine steps.
	if _, wy := ebiten.Wheel(); wy != 0 {
		step := 0.20
		if ebiten.IsKeyPressed(ebiten.KeyControl) {
			step = 0.05
		}
		g.cam.ZoomAt(1+step*wy, float64(mx), float64(my))
		s.SetViewRect(g.cam.ViewRect(g.screenW, g.screenH))
	}

	zd := s.ZoneDraw()
	place := s.Placement()

	// Hover feedback while nothing is held.
	if g.input.mode == dragNone {
		if zd.Enabled() {
			zd.Hover(cursor)
		} else if place.Active() != nil {
			place.UpdatePreview(cursor)
		}
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		g.rightClick(cursor)
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.leftPress(cursor, mx, my)
	}
	if g.input.mode != dragNone && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.leftDrag(cursor, mx, my)
	}
	if g.input.mode != dragNone && inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.leftRelease(cursor)
	}

	g.input.last = cursor
}

func (g *Game) handleKeys() {
	s := g.state.Scene
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.Placement().Cancel()
		if s.ZoneDraw().Enabled() {
			s.ZoneDraw().CancelDrag()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDelete) && g.selected != 0 {
		if s.RemoveEntity(g.selected) {
			g.setSelected(0)
		}
	}
	if ebiten.IsKeyPressed(ebiten.KeyControl) && inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.saveCurrent()
	}
}

// saveCurrent writes the explicit save target, falling back to the
// autosave path for a map that was never saved by name.
func (g *Game) saveCurrent() {
	path := g.paths.CurrentFile
	if path == "" {
		path = g.paths.Autosave
	}
	if err := persist.Save(path, g.state); err != nil {
		g.setStatus(fmt.Sprintf("Save failed: %v", err))
		return
	}
	g.setStatus(fmt.Sprintf("Saved map to %s", path))
}

// rightClick: cancel the zone drag if one is running, else leave zone draw
// mode, else cancel the active placement template.
func (g *Game) rightClick(cursor geom.Point) {
	s := g.state.Scene
	zd := s.ZoneDraw()
	if zd.Enabled() {
		if zd.RightClick() {
			zd.Hover(cursor)
			g.input.mode = dragNone
		}
		return
	}
	s.Placement().Cancel()
}

// leftPress classifies the press: zone draw wins over placement, placement
// over resize handles, handles over selection and drag, and an empty spot
// pans the view.
func (g *Game) leftPress(cursor geom.Point, mx, my int) {
	s := g.state.Scene
	zd := s.ZoneDraw()
	place := s.Placement()

	if zd.Enabled() {
		zd.BeginDrag(cursor)
		g.input.mode = dragZoneDraw
		return
	}

	if place.Active() != nil {
		multi := ebiten.IsKeyPressed(ebiten.KeyShift)
		if _, err := place.Place(cursor, multi); err != nil {
			g.setStatus(err.Error())
		}
		return
	}

	if z, ok := s.Registry().Zone(g.selected); ok && z.Visible() {
		tolerance := float64(render.HandleSizePx) / g.cam.Zoom
		if role, hit := scene.HitHandle(z, cursor, tolerance); hit {
			s.Resize().Begin(z, role)
			g.input.mode = dragResize
			return
		}
	}

	if e := g.entityAt(cursor); e != nil {
		g.setSelected(e.Id())
		if o, ok := s.Registry().Object(e.Id()); ok {
			place.BeginDrag(o)
			g.input.mode = dragObjects
		}
		return
	}

	g.setSelected(0)
	g.input.mode = dragPan
	g.input.panLastX, g.input.panLastY = mx, my
}

func (g *Game) leftDrag(cursor geom.Point, mx, my int) {
	s := g.state.Scene
	switch g.input.mode {
	case dragZoneDraw:
		s.ZoneDraw().UpdateDrag(cursor)
	case dragObjects:
		s.Placement().DragBy(cursor.Sub(g.input.last))
	case dragResize:
		s.Resize().Move(cursor)
	case dragPan:
		g.cam.Pan(float64(mx-g.input.panLastX), float64(my-g.input.panLastY))
		g.input.panLastX, g.input.panLastY = mx, my
		s.SetViewRect(g.cam.ViewRect(g.screenW, g.screenH))
	}
}

func (g *Game) leftRelease(cursor geom.Point) {
	s := g.state.Scene
	switch g.input.mode {
	case dragZoneDraw:
		if z := s.ZoneDraw().FinishDrag(cursor); z != nil {
			g.setSelected(z.Id())
		}
	case dragObjects:
		if reverted := s.Placement().EndDrag(); len(reverted) > 0 {
			g.setStatus("Cannot place object on top of another object")
		}
		s.RefreshVisibility()
	case dragResize:
		s.Resize().End()
	}
	g.input.mode = dragNone
}

// entityAt returns the topmost visible entity under the cursor, objects
// before zones.
func (g *Game) entityAt(cursor geom.Point) scene.Entity {
	s := g.state.Scene
	var hit scene.Entity
	for e := range s.Registry().Entities() {
		if e.Visible() && e.Bounds().Contains(cursor) {
			hit = e // later entities draw on top
		}
	}
	return hit
}

func exportPath(root string, format render.Format) string {
	name := fmt.Sprintf("map-%s%s", time.Now().Format("20060102-150405"), format.Ext())
	return filepath.Join(root, strings.ToUpper(string(format)), name)
}
