package editorui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/gridmap/scene"
)

// Cell size bounds the settings panel accepts, in pixels.
const (
	MinCellSize = 5
	MaxCellSize = 200
)

// SettingsPanel edits the grid configuration: cell size, grid visibility
// and draw distance, plus the export entry point.
type SettingsPanel struct {
	scene *scene.Scene
	host  *Host
}

func NewSettingsPanel(s *scene.Scene, host *Host) *SettingsPanel {
	return &SettingsPanel{scene: s, host: host}
}

func (sp *SettingsPanel) Render() {
	if !imgui.BeginV("Grid", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	g := sp.scene.Grid()

	cellSize := int32(g.CellSize)
	if imgui.InputInt("Cell size (px)", &cellSize) {
		v := int(cellSize)
		if v < MinCellSize {
			v = MinCellSize
		}
		if v > MaxCellSize {
			v = MaxCellSize
		}
		if v != g.CellSize {
			sp.scene.SetCellSize(v)
			sp.host.autosave()
		}
	}

	showGrid := sp.scene.ShowGrid()
	if imgui.Checkbox("Show grid lines", &showGrid) {
		sp.scene.SetShowGrid(showGrid)
		sp.host.autosave()
	}

	dd := int32(sp.scene.Culler().Radius())
	if imgui.InputInt("Draw distance (cells, 0 = off)", &dd) {
		v := int(dd)
		if v < 0 {
			v = 0
		}
		if v > g.Extent {
			v = g.Extent
		}
		sp.scene.SetDrawDistance(v)
		sp.host.autosave()
	}

	imgui.Separator()
	imgui.Text(fmt.Sprintf("Map: %d x %d cells", g.Extent, g.Extent))
	imgui.Text(fmt.Sprintf("Objects: %d  Zones: %d",
		sp.scene.Registry().ObjectCount(), sp.scene.Registry().ZoneCount()))

	if imgui.Button("Export image...") && sp.host.RequestExport != nil {
		sp.host.RequestExport()
	}

	imgui.End()
}
