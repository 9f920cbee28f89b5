package editorui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/AllenDang/cimgui-go/imgui"

	"github.com/plus3/gridmap/palette"
	"github.com/plus3/gridmap/scene"
)

// PalettePanel lists the object templates by category. Clicking a template
// activates placement; the edit section below changes the selected
// template's size, color and limit.
type PalettePanel struct {
	scene   *scene.Scene
	palette *palette.Palette
	host    *Host

	selected  *scene.ObjectSpec
	limitText string
	newName   string
}

func NewPalettePanel(s *scene.Scene, p *palette.Palette, host *Host) *PalettePanel {
	return &PalettePanel{scene: s, palette: p, host: host}
}

// Selected returns the template highlighted in the panel, or nil.
func (pp *PalettePanel) Selected() *scene.ObjectSpec { return pp.selected }

func (pp *PalettePanel) Render() {
	if !imgui.BeginV("Palette", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	if imgui.BeginTabBar("##categories") {
		for _, cat := range pp.palette.Categories() {
			if !imgui.BeginTabItem(cat.Name) {
				continue
			}
			pp.renderCategory(cat)
			imgui.EndTabItem()
		}
		imgui.EndTabBar()
	}

	if pp.selected != nil {
		imgui.Separator()
		pp.renderEditor()
	}

	imgui.End()
}

func (pp *PalettePanel) renderCategory(cat *palette.Category) {
	active := pp.scene.Placement().Active()
	for _, spec := range cat.Specs {
		label := fmt.Sprintf("%s (%dx%d)", spec.Name, spec.WidthCells, spec.HeightCells)
		if spec.Limit > 0 {
			count := pp.scene.Registry().CountObjectsWithKey(spec.EffectiveLimitKey())
			label += fmt.Sprintf(" [%d/%d]", count, spec.Limit)
		}
		isActive := active != nil && active.TemplateID == spec.TemplateID
		if imgui.SelectableBoolV(label+"##"+spec.TemplateID, isActive, imgui.SelectableFlagsNone, imgui.NewVec2(0, 0)) {
			pp.select_(spec)
			pp.scene.ZoneDraw().SetEnabled(false)
			pp.scene.Placement().Activate(spec)
		}
	}

	if imgui.Button("New template") {
		spec := scene.NewObjectSpec("Object", 1, 1, scene.DefaultObjectFill)
		pp.palette.Add(cat.Name, spec)
		pp.select_(spec)
		pp.host.autosave()
	}
}

func (pp *PalettePanel) select_(spec *scene.ObjectSpec) {
	pp.selected = spec
	pp.newName = spec.Name
	if spec.Limit > 0 {
		pp.limitText = strconv.Itoa(spec.Limit)
	} else {
		pp.limitText = ""
	}
}

func (pp *PalettePanel) renderEditor() {
	spec := pp.selected

	imgui.Text("Edit template")
	if imgui.InputTextWithHint("Name", "", &pp.newName, imgui.InputTextFlagsEnterReturnsTrue, nil) {
		if name := strings.TrimSpace(pp.newName); name != "" {
			spec.Name = name
			pp.host.autosave()
		}
	}

	w := int32(spec.WidthCells)
	if imgui.InputInt("Width", &w) && w >= 1 {
		spec.WidthCells = int(w)
		pp.host.autosave()
	}
	h := int32(spec.HeightCells)
	if imgui.InputInt("Height", &h) && h >= 1 {
		spec.HeightCells = int(h)
		pp.host.autosave()
	}

	fill := [4]float32{
		float32(spec.Fill.R) / 255,
		float32(spec.Fill.G) / 255,
		float32(spec.Fill.B) / 255,
		float32(spec.Fill.A) / 255,
	}
	if imgui.ColorEdit4("Fill", &fill) {
		spec.Fill = scene.Color{
			R: uint8(fill[0] * 255),
			G: uint8(fill[1] * 255),
			B: uint8(fill[2] * 255),
			A: uint8(fill[3] * 255),
		}
		pp.host.autosave()
	}

	if imgui.InputTextWithHint("Limit", "blank = unlimited", &pp.limitText, imgui.InputTextFlagsEnterReturnsTrue, nil) {
		pp.applyLimit(spec)
	}

	if imgui.Button("Remove placed instances") {
		n := pp.scene.Registry().RemoveObjectsByTemplate(spec.TemplateID)
		pp.scene.RefreshVisibility()
		pp.host.status(fmt.Sprintf("Removed %d instance(s) of %s", n, spec.Name))
		if n > 0 {
			pp.host.autosave()
		}
	}
}

func (pp *PalettePanel) applyLimit(spec *scene.ObjectSpec) {
	text := strings.TrimSpace(pp.limitText)
	if text == "" {
		spec.Limit = 0
		pp.host.autosave()
		return
	}
	n, err := strconv.Atoi(text)
	if err != nil || n <= 0 {
		pp.host.status("Limit must be greater than zero or left blank to remove the cap.")
		pp.select_(spec)
		return
	}
	spec.Limit = n
	if spec.LimitKey == "" {
		spec.LimitKey = spec.Name
	}
	pp.host.autosave()
}
