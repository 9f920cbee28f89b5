package render_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/gridmap/geom"
	"github.com/plus3/gridmap/render"
	"github.com/plus3/gridmap/scene"
)

func TestWriteSVGStackingAndColors(t *testing.T) {
	s := newTestScene()

	zone := &scene.ZoneSpec{
		Name:        "Farm",
		WidthCells:  5,
		HeightCells: 3,
		Fill:        scene.Color{B: 0xff, A: 0x3c},
		Edge:        scene.DefaultZoneEdge,
	}
	s.Registry().AddZone(zone, geom.Point{X: 20, Y: 20})

	green := scene.NewObjectSpec("Base", 3, 3, scene.Color{G: 0xff, A: 0xff})
	s.Registry().AddObject(green, geom.Point{X: 40, Y: 40})

	hidden := scene.NewObjectSpec("Ghost", 2, 2, scene.Color{R: 0x12, G: 0x34, B: 0x56, A: 0xff})
	s.Registry().AddObject(hidden, geom.Point{X: 100, Y: 100}).SetVisible(false)

	var buf bytes.Buffer
	require.NoError(t, render.WriteSVG(&buf, s, geom.Rect{X: 0, Y: 0, W: 200, H: 200}))
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "<svg "))
	assert.Contains(t, out, `viewBox="0 0 200 200"`)
	assert.Contains(t, out, `fill="#ffffff"`, "white background")

	zoneIdx := strings.Index(out, `fill="#0000ff" fill-opacity="0.235"`)
	gridIdx := strings.Index(out, `stroke="#a0a0a4"`)
	thickIdx := strings.Index(out, `stroke="#808080"`)
	objIdx := strings.Index(out, `fill="#00ff00"`)
	require.NotEqual(t, -1, zoneIdx)
	require.NotEqual(t, -1, gridIdx)
	require.NotEqual(t, -1, thickIdx)
	require.NotEqual(t, -1, objIdx)

	// Zones under the grid, objects on top of it.
	assert.Less(t, zoneIdx, gridIdx)
	assert.Less(t, gridIdx, objIdx)

	assert.Contains(t, out, `x="40" y="40" width="60" height="60"`)
	assert.NotContains(t, out, "#123456", "hidden entities are skipped")

	s.SetShowGrid(false)
	buf.Reset()
	require.NoError(t, render.WriteSVG(&buf, s, geom.Rect{X: 0, Y: 0, W: 200, H: 200}))
	assert.NotContains(t, buf.String(), "<line", "grid lines follow the grid-visible flag")
}

func TestExportSVG(t *testing.T) {
	s := newTestScene()
	s.Registry().AddObject(scene.NewObjectSpec("Base", 3, 3, scene.Color{R: 0xff, A: 0xff}),
		geom.Point{X: 40, Y: 40})

	path := filepath.Join(t.TempDir(), "out", "map.svg")
	err := render.Export(s, path, geom.Rect{X: 0, Y: 0, W: 200, H: 200}, render.ExportOptions{
		Format: render.FormatSVG,
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "<svg "))
	assert.True(t, strings.HasSuffix(strings.TrimSpace(string(data)), "</svg>"))
	assert.Contains(t, string(data), `fill="#ff0000"`)
}