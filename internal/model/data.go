package model

import (
	"fmt"
)

// ComponentData is the open, type-dependent payload of a component. Known
// keys are read through accessors that fall back to defaults, so malformed
// values render instead of failing.
type ComponentData map[string]any

// Link is a navigation entry.
type Link struct {
	Name string `json:"name" bson:"name"`
	Href string `json:"href" bson:"href"`
}

// FeatureItem is one card of a features section.
type FeatureItem struct {
	Title       string `json:"title" bson:"title"`
	Description string `json:"description" bson:"description"`
	Icon        string `json:"icon" bson:"icon"`
}

// String returns the value of key when it is a non-empty string, def otherwise.
func (d ComponentData) String(key, def string) string {
	if d == nil {
		return def
	}
	switch v := d[key].(type) {
	case string:
		if v != "" {
			return v
		}
	case fmt.Stringer:
		if s := v.String(); s != "" {
			return s
		}
	}
	return def
}

// Has reports whether key is present with a non-empty string value.
func (d ComponentData) Has(key string) bool {
	return d.String(key, "") != ""
}

// Links decodes the "links" entry. Entries that are not objects are skipped.
func (d ComponentData) Links() []Link {
	var links []Link
	for _, m := range d.objects("links") {
		links = append(links, Link{
			Name: stringField(m, "name"),
			Href: stringField(m, "href"),
		})
	}
	return links
}

// Items decodes the "items" entry as feature cards.
func (d ComponentData) Items() []FeatureItem {
	var items []FeatureItem
	for _, m := range d.objects("items") {
		items = append(items, FeatureItem{
			Title:       stringField(m, "title"),
			Description: stringField(m, "description"),
			Icon:        stringField(m, "icon"),
		})
	}
	return items
}

// Merge copies every key of patch into d and returns d. A nil d is allocated.
func (d ComponentData) Merge(patch ComponentData) ComponentData {
	if d == nil {
		d = ComponentData{}
	}
	for k, v := range patch {
		d[k] = v
	}
	return d
}

// Clone returns a shallow copy of d.
func (d ComponentData) Clone() ComponentData {
	out := make(ComponentData, len(d))
	for k, v := range d {
		out[k] = v
	}
	return out
}

func (d ComponentData) objects(key string) []map[string]any {
	if d == nil {
		return nil
	}
	switch v := d[key].(type) {
	case []map[string]any:
		return v
	case []any:
		out := make([]map[string]any, 0, len(v))
		for _, e := range v {
			switch m := e.(type) {
			case map[string]any:
				out = append(out, m)
			case ComponentData:
				out = append(out, m)
			}
		}
		return out
	case []Link:
		out := make([]map[string]any, 0, len(v))
		for _, l := range v {
			out = append(out, map[string]any{"name": l.Name, "href": l.Href})
		}
		return out
	case []FeatureItem:
		out := make([]map[string]any, 0, len(v))
		for _, f := range v {
			out = append(out, map[string]any{"title": f.Title, "description": f.Description, "icon": f.Icon})
		}
		return out
	}
	return nil
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}
