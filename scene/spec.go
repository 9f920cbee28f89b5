package scene

import "github.com/google/uuid"

// ObjectSpec is the reusable template an object is stamped from. Palette
// entries hold specs by reference; every placed object owns its own clone,
// so later palette edits never touch what is already on the map.
type ObjectSpec struct {
	Name        string
	WidthCells  int
	HeightCells int
	Fill        Color

	// Limit caps how many objects sharing LimitKey may exist at once.
	// 0 means unlimited. Limit 1 has replace semantics: placing again moves
	// the single instance instead of being rejected.
	Limit    int
	LimitKey string

	// TemplateID is the stable identity of the template this spec came
	// from. It survives cloning and is immutable after creation.
	TemplateID string
}

// NewObjectSpec builds a template with a fresh template id.
func NewObjectSpec(name string, wCells, hCells int, fill Color) *ObjectSpec {
	return &ObjectSpec{
		Name:        name,
		WidthCells:  wCells,
		HeightCells: hCells,
		Fill:        fill,
		TemplateID:  uuid.New().String(),
	}
}

// EffectiveLimitKey returns the key placement caps are grouped under,
// defaulting to the template name.
func (s *ObjectSpec) EffectiveLimitKey() string {
	if s.LimitKey != "" {
		return s.LimitKey
	}
	return s.Name
}

// Clone returns an independent copy sharing the same template id.
func (s *ObjectSpec) Clone() *ObjectSpec {
	c := *s
	return &c
}

// ZoneSpec describes a zone's name, size and colors. Zones have no limits
// and are exempt from collision.
type ZoneSpec struct {
	Name        string
	WidthCells  int
	HeightCells int
	Fill        Color
	Edge        Color
}

// Clone returns an independent copy.
func (s *ZoneSpec) Clone() *ZoneSpec {
	c := *s
	return &c
}
