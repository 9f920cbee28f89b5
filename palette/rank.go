package palette

import "github.com/plus3/gridmap/scene"

// Rank is an alliance rank, R1 (lowest) through R5 (leader).
type Rank string

const (
	RankR1 Rank = "R1"
	RankR2 Rank = "R2"
	RankR3 Rank = "R3"
	RankR4 Rank = "R4"
	RankR5 Rank = "R5"
)

// Ranks lists all ranks from lowest to highest.
var Ranks = []Rank{RankR1, RankR2, RankR3, RankR4, RankR5}

// ValidRank reports whether s names a known rank.
func ValidRank(s string) bool {
	for _, r := range Ranks {
		if Rank(s) == r {
			return true
		}
	}
	return false
}

var defaultRankColors = map[Rank]scene.Color{
	RankR1: {R: 0xb0, G: 0xbe, B: 0xc5, A: 0xff},
	RankR2: {R: 0x90, G: 0xca, B: 0xf9, A: 0xff},
	RankR3: {R: 0xa5, G: 0xd6, B: 0xa7, A: 0xff},
	RankR4: {R: 0xff, G: 0xe0, B: 0x82, A: 0xff},
	RankR5: {R: 0xf4, G: 0x8f, B: 0xb1, A: 0xff},
}

// RankColors resolves the fill color members of each rank are drawn with.
// An override set from a palette edit wins over the built-in defaults.
// It is an explicit service passed to whoever needs it, not shared global
// state.
type RankColors struct {
	overrides map[Rank]scene.Color
}

// NewRankColors returns the built-in rank color table with no overrides.
func NewRankColors() *RankColors {
	return &RankColors{overrides: make(map[Rank]scene.Color)}
}

// Color returns the effective color for a rank. Unknown ranks get the
// default object fill.
func (rc *RankColors) Color(r Rank) scene.Color {
	if c, ok := rc.overrides[r]; ok {
		return c
	}
	if c, ok := defaultRankColors[r]; ok {
		return c
	}
	return scene.DefaultObjectFill
}

// SetOverride pins a rank to a specific color.
func (rc *RankColors) SetOverride(r Rank, c scene.Color) {
	rc.overrides[r] = c
}

// ClearOverride removes a pinned color, falling back to the default.
func (rc *RankColors) ClearOverride(r Rank) {
	delete(rc.overrides, r)
}
