package model

import (
	"time"
)

// Component types
const (
	TypeNavbar   = "navbar"
	TypeHero     = "hero"
	TypeFeatures = "features"
	TypeFooter   = "footer"
	TypeContact  = "contact"
	TypeAbout    = "about"
)

// DefaultVariant is the fallback variant of every component type.
const DefaultVariant = "default"

// HomeSlug is the slug of a tenant's home page.
const HomeSlug = "/"

// Tenant is one customer site. Components and pages are embedded in the
// tenant document and always read and written as whole collections.
type Tenant struct {
	ID         string            `json:"_id,omitempty" bson:"-"`
	Name       string            `json:"name" bson:"name"`
	Domain     string            `json:"domain" bson:"domain"`
	Subdomain  string            `json:"subdomain" bson:"subdomain"`
	IsActive   bool              `json:"isActive" bson:"isActive"`
	Theme      Theme             `json:"theme" bson:"theme"`
	Components []ComponentConfig `json:"components" bson:"components"`
	Pages      []PageConfig      `json:"pages" bson:"pages"`
	CreatedAt  time.Time         `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt" bson:"updatedAt"`
}

// Theme holds opaque styling values passed through to rendering.
type Theme struct {
	PrimaryColor   string `json:"primaryColor" bson:"primaryColor"`
	SecondaryColor string `json:"secondaryColor" bson:"secondaryColor"`
	FontFamily     string `json:"fontFamily" bson:"fontFamily"`
}

// ComponentConfig is one configurable UI block belonging to a tenant.
type ComponentConfig struct {
	ID       string        `json:"id" bson:"id"`
	Type     string        `json:"type" bson:"type"`
	Variant  string        `json:"variant" bson:"variant"`
	Name     string        `json:"name" bson:"name"`
	IsActive bool          `json:"isActive" bson:"isActive"`
	Data     ComponentData `json:"data" bson:"data"`
	Position int           `json:"position" bson:"position"`
}

// PageConfig is one routable page. Components holds ComponentConfig ids in
// render order.
type PageConfig struct {
	ID             string   `json:"id" bson:"id"`
	Name           string   `json:"name" bson:"name"`
	Slug           string   `json:"slug" bson:"slug"`
	IsActive       bool     `json:"isActive" bson:"isActive"`
	Components     []string `json:"components" bson:"components"`
	SEOTitle       string   `json:"seoTitle,omitempty" bson:"seoTitle,omitempty"`
	SEODescription string   `json:"seoDescription,omitempty" bson:"seoDescription,omitempty"`
}

// TenantSummary is the listing view of a tenant.
type TenantSummary struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	Domain          string `json:"domain"`
	Subdomain       string `json:"subdomain"`
	IsActive        bool   `json:"isActive"`
	ComponentsCount int    `json:"componentsCount"`
	PagesCount      int    `json:"pagesCount"`
}

// Summary returns the listing view of t.
func (t *Tenant) Summary() TenantSummary {
	return TenantSummary{
		ID:              t.ID,
		Name:            t.Name,
		Domain:          t.Domain,
		Subdomain:       t.Subdomain,
		IsActive:        t.IsActive,
		ComponentsCount: len(t.Components),
		PagesCount:      len(t.Pages),
	}
}

// Normalize replaces nil collections with empty ones so that documents
// written without components or pages read back consistently.
func (t *Tenant) Normalize() {
	if t.Components == nil {
		t.Components = []ComponentConfig{}
	}
	if t.Pages == nil {
		t.Pages = []PageConfig{}
	}
	for i := range t.Components {
		if t.Components[i].Data == nil {
			t.Components[i].Data = ComponentData{}
		}
	}
	for i := range t.Pages {
		if t.Pages[i].Components == nil {
			t.Pages[i].Components = []string{}
		}
	}
}

// Component returns the component with the given id.
func (t *Tenant) Component(id string) (*ComponentConfig, bool) {
	for i := range t.Components {
		if t.Components[i].ID == id {
			return &t.Components[i], true
		}
	}
	return nil, false
}

// Page returns the page with the given id.
func (t *Tenant) Page(id string) (*PageConfig, bool) {
	for i := range t.Pages {
		if t.Pages[i].ID == id {
			return &t.Pages[i], true
		}
	}
	return nil, false
}

// HomePage returns the page whose slug is "/", active or not.
func (t *Tenant) HomePage() (*PageConfig, bool) {
	for i := range t.Pages {
		if t.Pages[i].Slug == HomeSlug {
			return &t.Pages[i], true
		}
	}
	return nil, false
}
