// Package editorui renders the editor's Dear ImGui panels: the template
// palette, the zone list, the alliance roster and the grid settings. Panels
// mutate the scene and roster directly and report everything that should
// trigger an autosave through the Host callbacks.
package editorui

import (
	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/gridmap/palette"
	"github.com/plus3/gridmap/persist"
	"github.com/plus3/gridmap/scene"
)

// Host is what the panels need from the application shell.
type Host struct {
	// RequestAutosave is called after any edit worth persisting.
	RequestAutosave func()
	// SelectEntity moves the canvas selection, 0 clears it.
	SelectEntity func(scene.EntityId)
	// RequestExport opens the export flow for the current view.
	RequestExport func()
	// SetStatus shows a transient message in the status line.
	SetStatus func(string)
}

func (h *Host) autosave() {
	if h.RequestAutosave != nil {
		h.RequestAutosave()
	}
}

func (h *Host) status(msg string) {
	if h.SetStatus != nil {
		h.SetStatus(msg)
	}
}

// EditorUI owns all panels and renders them each frame.
type EditorUI struct {
	Palette  *PalettePanel
	Zones    *ZonePanel
	Roster   *RosterPanel
	Settings *SettingsPanel
}

// NewEditorUI builds the panel set over one editor state.
func NewEditorUI(st persist.State, colors *palette.RankColors, host *Host) *EditorUI {
	return &EditorUI{
		Palette:  NewPalettePanel(st.Scene, st.Palette, host),
		Zones:    NewZonePanel(st.Scene, host),
		Roster:   NewRosterPanel(st.Scene, st.Roster, colors, host),
		Settings: NewSettingsPanel(st.Scene, host),
	}
}

// Render draws every panel for the current frame.
func (ui *EditorUI) Render() {
	ui.Palette.Render()
	ui.Zones.Render()
	ui.Roster.Render()
	ui.Settings.Render()
}

// WantCaptureMouse reports whether ImGui is consuming mouse input this
// frame; the canvas ignores clicks while a panel has them.
func WantCaptureMouse() bool {
	return imgui.CurrentIO().WantCaptureMouse()
}

// WantCaptureKeyboard reports whether ImGui is consuming keyboard input.
func WantCaptureKeyboard() bool {
	return imgui.CurrentIO().WantCaptureKeyboard()
}

// Backend wraps the Ebiten-specific Dear ImGui backend. The game loop calls
// BeginFrame before rendering panels and EndFrame/Draw after.
type Backend struct {
	*ebitenbackend.EbitenBackend
}

// NewBackend creates the ImGui context and its ebiten backend.
func NewBackend() *Backend {
	return &Backend{EbitenBackend: ebitenbackend.NewEbitenBackend()}
}
