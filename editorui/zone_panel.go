package editorui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/gridmap/scene"
)

// ZonePanel lists the zones on the map with rename, redraw, coordinate
// editing and removal.
type ZonePanel struct {
	scene *scene.Scene
	host  *Host

	selected   scene.EntityId
	renameText string
	coords     [4]int32 // bottom-left x,y then top-right x,y
}

func NewZonePanel(s *scene.Scene, host *Host) *ZonePanel {
	return &ZonePanel{scene: s, host: host}
}

func (zp *ZonePanel) Render() {
	if !imgui.BeginV("Zones", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	drawMode := zp.scene.ZoneDraw().Enabled()
	if imgui.Checkbox("Draw zones", &drawMode) {
		zp.scene.Placement().Cancel()
		zp.scene.ZoneDraw().SetEnabled(drawMode)
	}

	imgui.Separator()

	var selected *scene.Zone
	for z := range zp.scene.Registry().Zones() {
		label := fmt.Sprintf("%s (%dx%d)##%d", z.Spec.Name, z.Spec.WidthCells, z.Spec.HeightCells, z.Id())
		isSel := z.Id() == zp.selected
		if imgui.SelectableBoolV(label, isSel, imgui.SelectableFlagsNone, imgui.NewVec2(0, 0)) {
			zp.selectZone(z)
			if zp.host.SelectEntity != nil {
				zp.host.SelectEntity(z.Id())
			}
		}
		if z.Id() == zp.selected {
			selected = z
		}
	}

	if selected != nil {
		imgui.Separator()
		zp.renderZoneEditor(selected)
	}

	imgui.End()
}

func (zp *ZonePanel) selectZone(z *scene.Zone) {
	zp.selected = z.Id()
	zp.renameText = z.Spec.Name
	g := zp.scene.Grid()
	cs := float64(g.CellSize)
	left := int32(z.TopLeft().X / cs)
	top := int32(z.TopLeft().Y / cs)
	// Convert the stored top-left into bottom-left-origin cell coordinates.
	zp.coords[0] = left
	zp.coords[1] = int32(g.Extent) - (top + int32(z.Spec.HeightCells))
	zp.coords[2] = left + int32(z.Spec.WidthCells) - 1
	zp.coords[3] = int32(g.Extent) - top - 1
}

func (zp *ZonePanel) renderZoneEditor(z *scene.Zone) {
	if imgui.InputTextWithHint("Name##zone", "", &zp.renameText, imgui.InputTextFlagsEnterReturnsTrue, nil) {
		if zp.renameText != "" {
			z.Spec.Name = zp.renameText
			zp.host.autosave()
		}
	}

	visible := z.Visible()
	if imgui.Checkbox("Visible", &visible) {
		z.SetVisible(visible)
		zp.host.autosave()
	}

	imgui.Text("Coordinates (bottom-left / top-right)")
	imgui.InputInt("BL X", &zp.coords[0])
	imgui.InputInt("BL Y", &zp.coords[1])
	imgui.InputInt("TR X", &zp.coords[2])
	imgui.InputInt("TR Y", &zp.coords[3])
	if imgui.Button("Apply coordinates") {
		err := zp.scene.SetZoneCoordinates(z,
			int(zp.coords[0]), int(zp.coords[1]), int(zp.coords[2]), int(zp.coords[3]))
		if err != nil {
			zp.host.status(err.Error())
			zp.selectZone(z)
		} else {
			zp.host.autosave()
		}
	}

	if imgui.Button("Redraw") {
		zp.scene.Placement().Cancel()
		zp.scene.BeginZoneRedraw(z)
		zp.host.status(fmt.Sprintf("Drag a new rectangle for %s", z.Spec.Name))
	}
	imgui.SameLine()
	if imgui.Button("Remove") {
		if zp.scene.RemoveEntity(z.Id()) {
			if zp.host.SelectEntity != nil {
				zp.host.SelectEntity(0)
			}
			zp.selected = 0
			zp.host.autosave()
		}
	}
}
