package model

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotFound marks an absent or hidden tenant, page or template.
	ErrNotFound = errors.New("not found")
	// ErrTemplateNotFound is returned when no ComponentTemplate matches a (type, variant) pair.
	ErrTemplateNotFound = fmt.Errorf("component template %w", ErrNotFound)
)

// TenantPatch is a partial tenant update. Nil fields are left untouched.
type TenantPatch struct {
	Name       *string            `json:"name,omitempty"`
	Domain     *string            `json:"domain,omitempty"`
	Subdomain  *string            `json:"subdomain,omitempty"`
	IsActive   *bool              `json:"isActive,omitempty"`
	Theme      *Theme             `json:"theme,omitempty"`
	Components *[]ComponentConfig `json:"components,omitempty"`
	Pages      *[]PageConfig      `json:"pages,omitempty"`
}

// Empty reports whether the patch sets no field.
func (p TenantPatch) Empty() bool {
	return p.Name == nil && p.Domain == nil && p.Subdomain == nil && p.IsActive == nil &&
		p.Theme == nil && p.Components == nil && p.Pages == nil
}

// Fields returns the set fields keyed by their document names.
func (p TenantPatch) Fields() map[string]any {
	fields := make(map[string]any)
	if p.Name != nil {
		fields["name"] = *p.Name
	}
	if p.Domain != nil {
		fields["domain"] = *p.Domain
	}
	if p.Subdomain != nil {
		fields["subdomain"] = *p.Subdomain
	}
	if p.IsActive != nil {
		fields["isActive"] = *p.IsActive
	}
	if p.Theme != nil {
		fields["theme"] = *p.Theme
	}
	if p.Components != nil {
		fields["components"] = *p.Components
	}
	if p.Pages != nil {
		fields["pages"] = *p.Pages
	}
	return fields
}

// Apply merges the patch into t and refreshes UpdatedAt.
func (p TenantPatch) Apply(t *Tenant, now time.Time) {
	if p.Name != nil {
		t.Name = *p.Name
	}
	if p.Domain != nil {
		t.Domain = *p.Domain
	}
	if p.Subdomain != nil {
		t.Subdomain = *p.Subdomain
	}
	if p.IsActive != nil {
		t.IsActive = *p.IsActive
	}
	if p.Theme != nil {
		t.Theme = *p.Theme
	}
	if p.Components != nil {
		t.Components = *p.Components
	}
	if p.Pages != nil {
		t.Pages = *p.Pages
	}
	t.UpdatedAt = now
	t.Normalize()
}

// ComponentPatch is a partial component update. Data is merged key by key.
type ComponentPatch struct {
	Name     *string       `json:"name,omitempty"`
	Variant  *string       `json:"variant,omitempty"`
	IsActive *bool         `json:"isActive,omitempty"`
	Position *int          `json:"position,omitempty"`
	Data     ComponentData `json:"data,omitempty"`
}

// Apply merges the patch into c.
func (p ComponentPatch) Apply(c *ComponentConfig) {
	if p.Name != nil {
		c.Name = *p.Name
	}
	if p.Variant != nil {
		c.Variant = *p.Variant
	}
	if p.IsActive != nil {
		c.IsActive = *p.IsActive
	}
	if p.Position != nil {
		c.Position = *p.Position
	}
	if len(p.Data) > 0 {
		c.Data = c.Data.Merge(p.Data)
	}
}

// PagePatch is a partial page update.
type PagePatch struct {
	Name           *string   `json:"name,omitempty"`
	Slug           *string   `json:"slug,omitempty"`
	IsActive       *bool     `json:"isActive,omitempty"`
	Components     *[]string `json:"components,omitempty"`
	SEOTitle       *string   `json:"seoTitle,omitempty"`
	SEODescription *string   `json:"seoDescription,omitempty"`
}

// Apply merges the patch into pg.
func (p PagePatch) Apply(pg *PageConfig) {
	if p.Name != nil {
		pg.Name = *p.Name
	}
	if p.Slug != nil {
		pg.Slug = *p.Slug
	}
	if p.IsActive != nil {
		pg.IsActive = *p.IsActive
	}
	if p.Components != nil {
		pg.Components = append([]string{}, *p.Components...)
	}
	if p.SEOTitle != nil {
		pg.SEOTitle = *p.SEOTitle
	}
	if p.SEODescription != nil {
		pg.SEODescription = *p.SEODescription
	}
}
