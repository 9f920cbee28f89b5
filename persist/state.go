package persist

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/plus3/gridmap/geom"
	"github.com/plus3/gridmap/grid"
	"github.com/plus3/gridmap/palette"
	"github.com/plus3/gridmap/scene"
)

// State bundles everything a save file covers: the scene, the palette and
// the alliance roster.
type State struct {
	Scene   *scene.Scene
	Palette *palette.Palette
	Roster  *palette.Roster
}

// NewState builds a fresh default state: an empty scene on the default
// grid, the stock palette and the standard roles.
func NewState() State {
	st := State{
		Scene:   scene.NewScene(grid.Grid{CellSize: grid.DefaultCellSize, Extent: grid.DefaultExtent}),
		Palette: palette.DefaultPalette(),
		Roster:  palette.NewRoster(),
	}
	for _, role := range palette.DefaultRoles() {
		st.Roster.AddRole(role)
	}
	return st
}

// Capture serializes the state into a document.
func Capture(st State) *Document {
	s := st.Scene
	g := s.Grid()
	showGrid := s.ShowGrid()

	doc := &Document{
		Version: FormatVersion,
		Grid: GridState{
			CellSize:     FlexInt(g.CellSize),
			ShowGrid:     &showGrid,
			DrawDistance: FlexInt(s.Culler().Radius()),
		},
		ZoneCounter: s.ZoneDraw().ZoneCounter(),
		Cells:       g.Extent,
	}

	for _, c := range st.Palette.Categories() {
		cat := CategoryDoc{Name: c.Name}
		for _, spec := range c.Specs {
			cat.Specs = append(cat.Specs, specToDoc(spec))
		}
		doc.Categories = append(doc.Categories, cat)
	}

	for _, m := range st.Roster.Members() {
		doc.Members = append(doc.Members, MemberDoc{
			Name:     m.Name,
			MemberID: m.MemberID,
			Rank:     string(m.Rank),
			Roles:    append([]string(nil), m.Roles...),
		})
	}

	for _, role := range st.Roster.Roles() {
		rd := RoleDoc{
			Name:     role.Name,
			RoleID:   role.RoleID,
			MemberID: role.MemberID,
			Standard: role.Standard,
		}
		if role.AllowedRanks != nil {
			rd.AllowedRanks = make([]string, 0, len(role.AllowedRanks))
			for _, r := range role.AllowedRanks {
				rd.AllowedRanks = append(rd.AllowedRanks, string(r))
			}
		}
		doc.Roles = append(doc.Roles, rd)
	}

	for o := range s.Registry().Objects() {
		doc.Objects = append(doc.Objects, ObjectDoc{
			Spec: specToDoc(o.Spec),
			Pos:  Position{X: o.TopLeft().X, Y: o.TopLeft().Y},
		})
	}

	for z := range s.Registry().Zones() {
		doc.Zones = append(doc.Zones, ZoneDoc{
			Spec: ZoneSpecDoc{
				Name:  z.Spec.Name,
				SizeW: FlexInt(z.Spec.WidthCells),
				SizeH: FlexInt(z.Spec.HeightCells),
				Fill:  z.Spec.Fill.Hex(),
				Edge:  z.Spec.Edge.Hex(),
			},
			Pos: Position{X: z.TopLeft().X, Y: z.TopLeft().Y},
		})
	}

	return doc
}

// Restore builds a fully populated state from a document. It never fails on
// bad entity data: malformed fields fall back to defaults field by field.
func Restore(doc *Document) State {
	cells := doc.Cells
	if cells <= 0 {
		cells = grid.DefaultExtent
	}
	cellSize := int(doc.Grid.CellSize)
	if cellSize <= 0 {
		cellSize = grid.DefaultCellSize
	}

	st := State{
		Scene:   scene.NewScene(grid.Grid{CellSize: cellSize, Extent: cells}),
		Roster:  palette.NewRoster(),
		Palette: restorePalette(doc.Categories),
	}
	s := st.Scene

	if doc.Grid.ShowGrid != nil {
		s.SetShowGrid(*doc.Grid.ShowGrid)
	}

	for _, md := range doc.Members {
		memberID := md.MemberID
		if memberID == "" {
			memberID = uuid.New().String()
		}
		rank := palette.Rank(md.Rank)
		if !palette.ValidRank(md.Rank) {
			rank = palette.RankR1
		}
		m := &palette.Member{
			Name:     md.Name,
			MemberID: memberID,
			Rank:     rank,
			Roles:    append([]string(nil), md.Roles...),
		}
		st.Roster.AddMemberUnchecked(m)
	}

	if len(doc.Roles) == 0 {
		for _, role := range palette.DefaultRoles() {
			st.Roster.AddRole(role)
		}
	} else {
		for _, rd := range doc.Roles {
			roleID := rd.RoleID
			if roleID == "" {
				roleID = uuid.New().String()
			}
			role := &palette.Role{
				Name:     rd.Name,
				RoleID:   roleID,
				MemberID: rd.MemberID,
				Standard: rd.Standard,
			}
			if rd.AllowedRanks != nil {
				role.AllowedRanks = make([]palette.Rank, 0, len(rd.AllowedRanks))
				for _, r := range rd.AllowedRanks {
					role.AllowedRanks = append(role.AllowedRanks, palette.Rank(r))
				}
			}
			st.Roster.AddRole(role)
		}
	}

	for _, od := range doc.Objects {
		spec := specFromDoc(od.Spec)
		s.Registry().AddObject(spec, geom.Point{X: od.Pos.X, Y: od.Pos.Y})
	}

	for i, zd := range doc.Zones {
		name := zd.Spec.Name
		if name == "" {
			name = fmt.Sprintf("Zone %d", i+1)
		}
		spec := &scene.ZoneSpec{
			Name:        name,
			WidthCells:  sizeOrOne(zd.Spec.SizeW),
			HeightCells: sizeOrOne(zd.Spec.SizeH),
			Fill:        scene.ParseColor(zd.Spec.Fill, scene.DefaultZoneFill),
			Edge:        scene.ParseColor(zd.Spec.Edge, scene.DefaultZoneEdge),
		}
		s.Registry().AddZone(spec, geom.Point{X: zd.Pos.X, Y: zd.Pos.Y})
	}

	s.ZoneDraw().SetZoneCounter(doc.ZoneCounter)

	dd := int(doc.Grid.DrawDistance)
	if dd > cells {
		dd = cells
	}
	s.SetDrawDistance(dd)

	return st
}

func restorePalette(categories []CategoryDoc) *palette.Palette {
	if len(categories) == 0 {
		return palette.DefaultPalette()
	}
	p := palette.NewPalette()
	for _, cd := range categories {
		name := cd.Name
		if name == "" {
			name = "Category"
		}
		c := p.Category(name)
		for _, sd := range cd.Specs {
			c.Specs = append(c.Specs, specFromDoc(sd))
		}
	}
	return p
}

func specToDoc(spec *scene.ObjectSpec) SpecDoc {
	return SpecDoc{
		TemplateID: spec.TemplateID,
		Name:       spec.Name,
		SizeW:      FlexInt(spec.WidthCells),
		SizeH:      FlexInt(spec.HeightCells),
		Fill:       spec.Fill.Hex(),
		Limit:      FlexInt(spec.Limit),
		LimitKey:   spec.LimitKey,
	}
}

func specFromDoc(sd SpecDoc) *scene.ObjectSpec {
	name := sd.Name
	if name == "" {
		name = "Object"
	}
	templateID := sd.TemplateID
	if templateID == "" {
		templateID = uuid.New().String()
	}
	return &scene.ObjectSpec{
		Name:        name,
		WidthCells:  sizeOrOne(sd.SizeW),
		HeightCells: sizeOrOne(sd.SizeH),
		Fill:        scene.ParseColor(sd.Fill, scene.DefaultObjectFill),
		Limit:       int(sd.Limit),
		LimitKey:    sd.LimitKey,
		TemplateID:  templateID,
	}
}

func sizeOrOne(v FlexInt) int {
	if v < 1 {
		return 1
	}
	return int(v)
}
