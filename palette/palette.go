// Package palette holds the reusable object templates the editor places
// from: buildable categories, alliance members and their rank colors, and
// the roster rules governing rank assignment.
package palette

import (
	"slices"

	"github.com/plus3/gridmap/scene"
)

// Category groups related templates under one palette heading.
type Category struct {
	Name  string
	Specs []*scene.ObjectSpec
}

// Spec returns the template with the given name, or nil.
func (c *Category) Spec(name string) *scene.ObjectSpec {
	for _, s := range c.Specs {
		if s.Name == name {
			return s
		}
	}
	return nil
}

// Palette is the ordered set of categories shown in the editor's side panel.
type Palette struct {
	categories []*Category
}

// NewPalette returns an empty palette.
func NewPalette() *Palette {
	return &Palette{}
}

// Categories returns the categories in display order.
func (p *Palette) Categories() []*Category { return p.categories }

// Category returns the category with the given name, creating it at the end
// of the display order if missing.
func (p *Palette) Category(name string) *Category {
	for _, c := range p.categories {
		if c.Name == name {
			return c
		}
	}
	c := &Category{Name: name}
	p.categories = append(p.categories, c)
	return c
}

// Add appends a template to a category.
func (p *Palette) Add(category string, spec *scene.ObjectSpec) {
	c := p.Category(category)
	c.Specs = append(c.Specs, spec)
}

// RemoveSpec deletes a template from every category and reports whether it
// was present. Instances already placed are untouched; callers remove them
// through the registry if they want a full purge.
func (p *Palette) RemoveSpec(templateId string) bool {
	removed := false
	for _, c := range p.categories {
		c.Specs = slices.DeleteFunc(c.Specs, func(s *scene.ObjectSpec) bool {
			if s.TemplateID == templateId {
				removed = true
				return true
			}
			return false
		})
	}
	return removed
}

// FindSpec looks a template up by id across all categories.
func (p *Palette) FindSpec(templateId string) *scene.ObjectSpec {
	for _, c := range p.categories {
		for _, s := range c.Specs {
			if s.TemplateID == templateId {
				return s
			}
		}
	}
	return nil
}

// DefaultPalette builds the stock alliance category: rank markers R1-R5,
// the plain base plus the unique alliance buildings. R5, MG and Furnace are
// single-instance with replace semantics, R4 is capped at ten.
func DefaultPalette() *Palette {
	p := NewPalette()

	add := func(name string, w, h, limit int, key string) {
		spec := scene.NewObjectSpec(name, w, h, scene.DefaultObjectFill)
		spec.Limit = limit
		spec.LimitKey = key
		p.Add("Alliance", spec)
	}

	add("R1", 3, 3, 0, "")
	add("R2", 3, 3, 0, "")
	add("R3", 3, 3, 0, "")
	add("R4", 3, 3, 10, "R4")
	add("R5", 3, 3, 1, "R5")
	add("Base", 3, 3, 0, "")
	add("MG", 3, 3, 1, "MG")
	add("Furnace", 4, 4, 1, "Furnace")

	return p
}
