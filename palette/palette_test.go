package palette_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plus3/gridmap/palette"
	"github.com/plus3/gridmap/scene"
)

func TestDefaultPalette(t *testing.T) {
	p := palette.DefaultPalette()

	require.Len(t, p.Categories(), 1)
	alliance := p.Category("Alliance")
	require.Len(t, alliance.Specs, 8)

	r4 := alliance.Spec("R4")
	require.NotNil(t, r4)
	assert.Equal(t, 10, r4.Limit)
	assert.Equal(t, "R4", r4.EffectiveLimitKey())
	assert.Equal(t, 3, r4.WidthCells)

	r5 := alliance.Spec("R5")
	require.NotNil(t, r5)
	assert.Equal(t, 1, r5.Limit)

	furnace := alliance.Spec("Furnace")
	require.NotNil(t, furnace)
	assert.Equal(t, 4, furnace.WidthCells)
	assert.Equal(t, 4, furnace.HeightCells)
	assert.Equal(t, 1, furnace.Limit)

	base := alliance.Spec("Base")
	require.NotNil(t, base)
	assert.Equal(t, 0, base.Limit)
	assert.Equal(t, "Base", base.EffectiveLimitKey())
}

func TestPaletteAddRemove(t *testing.T) {
	p := palette.NewPalette()
	spec := scene.NewObjectSpec("Depot", 2, 2, scene.DefaultObjectFill)
	p.Add("Custom", spec)

	assert.Same(t, spec, p.FindSpec(spec.TemplateID))
	assert.Same(t, spec, p.Category("Custom").Spec("Depot"))

	assert.True(t, p.RemoveSpec(spec.TemplateID))
	assert.Nil(t, p.FindSpec(spec.TemplateID))
	assert.False(t, p.RemoveSpec(spec.TemplateID))
}

func TestCategoryCreatedOnDemand(t *testing.T) {
	p := palette.NewPalette()
	c := p.Category("Enemies")
	assert.Same(t, c, p.Category("Enemies"))
	assert.Len(t, p.Categories(), 1)
}

func TestRankColors(t *testing.T) {
	rc := palette.NewRankColors()

	assert.Equal(t, scene.Color{R: 0xf4, G: 0x8f, B: 0xb1, A: 0xff}, rc.Color(palette.RankR5))
	assert.Equal(t, scene.DefaultObjectFill, rc.Color(palette.Rank("R9")))

	custom := scene.Color{R: 1, G: 2, B: 3, A: 0xff}
	rc.SetOverride(palette.RankR5, custom)
	assert.Equal(t, custom, rc.Color(palette.RankR5))

	rc.ClearOverride(palette.RankR5)
	assert.Equal(t, scene.Color{R: 0xf4, G: 0x8f, B: 0xb1, A: 0xff}, rc.Color(palette.RankR5))
}

func TestValidRank(t *testing.T) {
	assert.True(t, palette.ValidRank("R1"))
	assert.True(t, palette.ValidRank("R5"))
	assert.False(t, palette.ValidRank("R6"))
	assert.False(t, palette.ValidRank(""))
}
