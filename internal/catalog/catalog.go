// Package catalog holds the factory defaults for component types and variants.
package catalog

import (
	"github.com/teresa-solution/site-builder-service/internal/model"
)

// FieldType is the editor widget of a template field.
type FieldType string

const (
	FieldText     FieldType = "text"
	FieldTextarea FieldType = "textarea"
	FieldURL      FieldType = "url"
	FieldColor    FieldType = "color"
	FieldNumber   FieldType = "number"
	FieldArray    FieldType = "array"
	FieldSelect   FieldType = "select"
)

// FormField describes one editable data key of a component.
type FormField struct {
	Name        string    `json:"name"`
	Label       string    `json:"label"`
	Type        FieldType `json:"type"`
	Required    bool      `json:"required,omitempty"`
	Placeholder string    `json:"placeholder,omitempty"`
	Options     []string  `json:"options,omitempty"`
}

// Template is the factory default for a (type, variant) pair.
type Template struct {
	Type        string              `json:"type"`
	Variant     string              `json:"variant"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	DefaultData model.ComponentData `json:"defaultData"`
	Fields      []FormField         `json:"fields"`
}

// Variant describes a rendering behaviour offered to the dashboard.
type Variant struct {
	Type        string `json:"type"`
	Variant     string `json:"variant"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Preview     string `json:"preview,omitempty"`
}

// Catalog is a read-only set of templates and variants.
type Catalog struct {
	templates []Template
	variants  []Variant
}

// New returns a catalog over the given templates and variants.
func New(templates []Template, variants []Variant) *Catalog {
	return &Catalog{templates: templates, variants: variants}
}

// Default returns the built-in catalog.
func Default() *Catalog {
	return New(defaultTemplates(), defaultVariants())
}

// Lookup returns the template for (typ, variant). Unlike rendering, there is
// no fallback to the default variant.
func (c *Catalog) Lookup(typ, variant string) (Template, error) {
	for _, t := range c.templates {
		if t.Type == typ && t.Variant == variant {
			t.DefaultData = cloneData(t.DefaultData)
			return t, nil
		}
	}
	return Template{}, model.ErrTemplateNotFound
}

// Templates returns every template.
func (c *Catalog) Templates() []Template {
	return append([]Template(nil), c.templates...)
}

// Variants returns every variant descriptor.
func (c *Catalog) Variants() []Variant {
	return append([]Variant(nil), c.variants...)
}

// VariantsOf returns the variant descriptors of typ.
func (c *Catalog) VariantsOf(typ string) []Variant {
	var out []Variant
	for _, v := range c.variants {
		if v.Type == typ {
			out = append(out, v)
		}
	}
	return out
}

// cloneData deep-copies maps and slices so a new component never shares
// default data with the catalog or with another component.
func cloneData(d model.ComponentData) model.ComponentData {
	out := make(model.ComponentData, len(d))
	for k, v := range d {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, e := range t {
			m[k] = cloneValue(e)
		}
		return m
	case []any:
		s := make([]any, len(t))
		for i, e := range t {
			s[i] = cloneValue(e)
		}
		return s
	default:
		return v
	}
}
