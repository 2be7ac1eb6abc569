package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/teresa-solution/site-builder-service/internal/model"
)

// Func renders one component with the tenant theme.
type Func func(c model.ComponentConfig, theme model.Theme) (template.HTML, error)

// Key identifies a rendering behaviour.
type Key struct {
	Type    string
	Variant string
}

// Registry maps (type, variant) pairs to render functions. A variant that is
// not registered falls back to (type, "default").
type Registry struct {
	funcs map[Key]Func
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{funcs: make(map[Key]Func)}
}

// Register binds fn to (typ, variant), replacing any previous binding.
func (r *Registry) Register(typ, variant string, fn Func) {
	r.funcs[Key{Type: typ, Variant: variant}] = fn
}

// Lookup returns the render function for (typ, variant), falling back to
// the type's default variant.
func (r *Registry) Lookup(typ, variant string) (Func, bool) {
	if fn, ok := r.funcs[Key{Type: typ, Variant: variant}]; ok {
		return fn, true
	}
	fn, ok := r.funcs[Key{Type: typ, Variant: model.DefaultVariant}]
	return fn, ok
}

// Render renders c. Inactive components and unknown types render nothing.
func (r *Registry) Render(c model.ComponentConfig, theme model.Theme) (template.HTML, error) {
	if !c.IsActive {
		return "", nil
	}
	fn, ok := r.Lookup(c.Type, c.Variant)
	if !ok {
		return "", nil
	}
	return fn(c, theme)
}

// componentView is the data every component template receives.
type componentView struct {
	ID    string
	Name  string
	Data  model.ComponentData
	Theme model.Theme
}

// templateFunc renders the named template of set.
func templateFunc(set *template.Template, name string) Func {
	return func(c model.ComponentConfig, theme model.Theme) (template.HTML, error) {
		var buf bytes.Buffer
		view := componentView{ID: c.ID, Name: c.Name, Data: c.Data, Theme: theme}
		if err := set.ExecuteTemplate(&buf, name, view); err != nil {
			return "", fmt.Errorf("render %s: %w", name, err)
		}
		return template.HTML(buf.String()), nil
	}
}

// Default returns the registry of built-in component templates.
func Default() *Registry {
	r := NewRegistry()
	for _, key := range []Key{
		{model.TypeNavbar, "default"},
		{model.TypeNavbar, "centered"},
		{model.TypeNavbar, "sidebar"},
		{model.TypeHero, "default"},
		{model.TypeHero, "centered"},
		{model.TypeHero, "fullscreen"},
		{model.TypeFeatures, "default"},
		{model.TypeContact, "default"},
		{model.TypeFooter, "default"},
		{model.TypeAbout, "default"},
	} {
		r.Register(key.Type, key.Variant, templateFunc(componentTemplates, key.Type+"/"+key.Variant))
	}
	return r
}
