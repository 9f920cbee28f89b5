package main

import (
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/plus3/gridmap/editorui"
	"github.com/plus3/gridmap/palette"
	"github.com/plus3/gridmap/persist"
	"github.com/plus3/gridmap/render"
	"github.com/plus3/gridmap/scene"
)

// Game is the ebiten shell around the editor: it owns the state, routes
// input to exactly one controller per event and renders canvas plus panels.
type Game struct {
	mu sync.Mutex

	state  persist.State
	colors *palette.RankColors
	paths  Paths

	cam      render.Camera
	drawer   render.Drawer
	input    inputState
	selected scene.EntityId

	backend   *editorui.Backend
	ui        *editorui.EditorUI
	autosaver *persist.Autosaver

	screenW, screenH int
	status           string
	statusUntil      time.Time
}

// NewGame wires the editor state to the window, panels and autosaver.
func NewGame(st persist.State, paths Paths, autosaveDelay time.Duration) *Game {
	g := &Game{
		state:  st,
		colors: palette.NewRankColors(),
		paths:  paths,
		cam:    render.NewCamera(),
	}
	g.autosaver = persist.NewAutosaver(autosaveDelay, g.writeAutosave)

	host := &editorui.Host{
		RequestAutosave: g.autosaver.Request,
		SelectEntity:    g.setSelected,
		RequestExport:   g.exportView,
		SetStatus:       g.setStatus,
	}
	g.backend = editorui.NewBackend()
	g.backend.CreateWindow("Alliance Map Editor", 1440, 900)
	imgui.CurrentIO().SetIniFilename("")
	g.ui = editorui.NewEditorUI(st, g.colors, host)

	st.Scene.Registry().Subscribe(&scene.ObserverFuncs{
		OnObjectPlaced:  func(*scene.Object) { g.autosaver.Request() },
		OnObjectRemoved: func(*scene.Object) { g.autosaver.Request() },
		OnZoneCreated:   func(*scene.Zone) { g.autosaver.Request() },
		OnZoneUpdated:   func(*scene.Zone) { g.autosaver.Request() },
		OnZoneRemoved:   func(*scene.Zone) { g.autosaver.Request() },
		OnZoneRedrawFinished: func(z *scene.Zone) {
			g.setStatus(fmt.Sprintf("Redrew %s", z.Spec.Name))
		},
	})
	return g
}

func (g *Game) setSelected(id scene.EntityId) {
	g.selected = id
	g.drawer.Selected = id
}

func (g *Game) setStatus(msg string) {
	g.status = msg
	g.statusUntil = time.Now().Add(5 * time.Second)
}

func (g *Game) writeAutosave() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if err := persist.Save(g.paths.Autosave, g.state); err != nil {
		log.Printf("autosave: %v", err)
	}
}

func (g *Game) exportView() {
	s := g.state.Scene
	view := g.cam.ViewRect(g.screenW, g.screenH).Intersect(s.Grid().Bounds())
	if view.Empty() {
		g.setStatus("Nothing to export: the view is outside the map.")
		return
	}
	path := exportPath(g.paths.ExportRoot, render.FormatSVG)
	err := render.Export(s, path, view, render.ExportOptions{
		Format:              render.FormatSVG,
		RescaleDrawDistance: true,
	})
	if err != nil {
		g.setStatus(fmt.Sprintf("Export failed: %v", err))
		return
	}
	g.setStatus(fmt.Sprintf("Exported image to %s", path))
}

// Update runs one frame: panels first so they can capture input, then the
// canvas controllers.
func (g *Game) Update() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.backend.BeginFrame()
	g.ui.Render()
	g.backend.EndFrame()

	g.handleInput()

	if !g.statusUntil.IsZero() && time.Now().After(g.statusUntil) {
		g.status = ""
		g.statusUntil = time.Time{}
	}
	return nil
}

// Draw paints the canvas, the status line and then the ImGui overlay.
func (g *Game) Draw(screen *ebiten.Image) {
	g.mu.Lock()
	g.drawer.Draw(screen, g.state.Scene, g.cam)
	if g.status != "" {
		ebitenutil.DebugPrintAt(screen, g.status, 8, g.screenH-20)
	}
	g.mu.Unlock()
	g.backend.Draw(screen)
}

// Layout tracks the window size; the view rectangle follows it.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.backend.Layout(outsideWidth, outsideHeight)
	if outsideWidth != g.screenW || outsideHeight != g.screenH {
		g.screenW, g.screenH = outsideWidth, outsideHeight
		g.state.Scene.SetViewRect(g.cam.ViewRect(outsideWidth, outsideHeight))
	}
	return outsideWidth, outsideHeight
}
