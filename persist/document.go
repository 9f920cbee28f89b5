// Package persist reads and writes the editor's JSON save format. The
// format is deliberately lenient on load: malformed positions, colors,
// limits or ids degrade to defaults instead of aborting, so a hand-edited
// or truncated save recovers as much of the map as possible.
package persist

import (
	"encoding/json"
	"strconv"
)

// FormatVersion is written into every save file.
const FormatVersion = 1

// Document is the top-level save file structure.
type Document struct {
	Version     int           `json:"version"`
	Grid        GridState     `json:"grid"`
	Categories  []CategoryDoc `json:"categories"`
	Members     []MemberDoc   `json:"members"`
	Roles       []RoleDoc     `json:"roles"`
	Objects     []ObjectDoc   `json:"objects"`
	Zones       []ZoneDoc     `json:"zones"`
	ZoneCounter int           `json:"zone_counter"`
	Cells       int           `json:"cells"`
}

// GridState holds the grid configuration of a saved map. ShowGrid is a
// pointer so a file that omits it defaults to visible rather than hidden.
type GridState struct {
	CellSize     FlexInt `json:"cell_size"`
	ShowGrid     *bool   `json:"show_grid"`
	DrawDistance FlexInt `json:"draw_distance"`
}

// CategoryDoc is one palette category.
type CategoryDoc struct {
	Name  string    `json:"name"`
	Specs []SpecDoc `json:"specs"`
}

// SpecDoc is a serialized object template. Fill is #AARRGGBB.
type SpecDoc struct {
	TemplateID string  `json:"template_id"`
	Name       string  `json:"name"`
	SizeW      FlexInt `json:"size_w"`
	SizeH      FlexInt `json:"size_h"`
	Fill       string  `json:"fill"`
	Limit      FlexInt `json:"limit"`
	LimitKey   string  `json:"limit_key"`
}

// MemberDoc is a serialized roster member.
type MemberDoc struct {
	Name     string   `json:"name"`
	MemberID string   `json:"member_id"`
	Rank     string   `json:"rank"`
	Roles    []string `json:"roles"`
}

// RoleDoc is a serialized duty role. AllowedRanks nil means any rank.
type RoleDoc struct {
	Name         string   `json:"name"`
	RoleID       string   `json:"role_id"`
	MemberID     string   `json:"member_id"`
	AllowedRanks []string `json:"allowed_ranks"`
	Standard     bool     `json:"standard"`
}

// ObjectDoc is a placed object: its owned spec clone plus a scene position.
type ObjectDoc struct {
	Spec SpecDoc  `json:"spec"`
	Pos  Position `json:"pos"`
}

// ZoneSpecDoc is a serialized zone template.
type ZoneSpecDoc struct {
	Name  string  `json:"name"`
	SizeW FlexInt `json:"size_w"`
	SizeH FlexInt `json:"size_h"`
	Fill  string  `json:"fill"`
	Edge  string  `json:"edge"`
}

// ZoneDoc is a placed zone.
type ZoneDoc struct {
	Spec ZoneSpecDoc `json:"spec"`
	Pos  Position    `json:"pos"`
}

// FlexInt is an int that tolerates JSON numbers, numeric strings, floats
// and null. Anything unparseable decodes to zero.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(b []byte) error {
	s := string(b)
	if s == "null" {
		*f = 0
		return nil
	}
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	if v, err := strconv.Atoi(s); err == nil {
		*f = FlexInt(v)
		return nil
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		*f = FlexInt(int(v))
		return nil
	}
	*f = 0
	return nil
}

// Position is an [x, y] scene coordinate pair. A malformed or missing pair
// decodes to the origin.
type Position struct {
	X, Y float64
}

func (p Position) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{p.X, p.Y})
}

func (p *Position) UnmarshalJSON(b []byte) error {
	var raw []float64
	if err := json.Unmarshal(b, &raw); err != nil || len(raw) < 2 {
		*p = Position{}
		return nil
	}
	p.X, p.Y = raw[0], raw[1]
	return nil
}
