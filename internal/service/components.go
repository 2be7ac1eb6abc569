package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/teresa-solution/site-builder-service/internal/model"
	"github.com/teresa-solution/site-builder-service/internal/site"
)

// AddComponent appends a component built from the (typ, variant) template
// and returns it. It fails with model.ErrTemplateNotFound before touching
// the tenant when no template matches.
func (s *TenantService) AddComponent(ctx context.Context, tenantID, typ, variant string) (model.ComponentConfig, error) {
	tpl, err := s.catalog.Lookup(typ, variant)
	if err != nil {
		return model.ComponentConfig{}, fmt.Errorf("%s/%s: %w", typ, variant, err)
	}

	var added model.ComponentConfig
	_, err = s.mutate(ctx, "add_component", tenantID, func(t *model.Tenant) (model.TenantPatch, error) {
		added = t.AppendComponent(model.ComponentConfig{
			ID:       s.componentID(t, tpl.Type, tpl.Variant),
			Type:     tpl.Type,
			Variant:  tpl.Variant,
			Name:     tpl.Name,
			IsActive: true,
			Data:     tpl.DefaultData,
		})
		return model.TenantPatch{Components: &t.Components}, nil
	})
	if err != nil {
		return model.ComponentConfig{}, err
	}
	log.Info().Str("tenant_id", tenantID).Str("component_id", added.ID).Msg("Component added")
	return added, nil
}

// UpdateComponent merges patch into the component. An absent component id
// leaves the tenant unmodified and is not an error.
func (s *TenantService) UpdateComponent(ctx context.Context, tenantID, componentID string, patch model.ComponentPatch) (*model.Tenant, error) {
	return s.mutate(ctx, "update_component", tenantID, func(t *model.Tenant) (model.TenantPatch, error) {
		if !t.UpdateComponent(componentID, patch) {
			log.Warn().Str("tenant_id", tenantID).Str("component_id", componentID).Msg("Component not found, nothing updated")
			return model.TenantPatch{}, nil
		}
		return model.TenantPatch{Components: &t.Components}, nil
	})
}

// RemoveComponent deactivates the component. It stays in the collection and
// in every page that references it.
func (s *TenantService) RemoveComponent(ctx context.Context, tenantID, componentID string) (*model.Tenant, error) {
	return s.mutate(ctx, "remove_component", tenantID, func(t *model.Tenant) (model.TenantPatch, error) {
		if !t.DeactivateComponent(componentID) {
			return model.TenantPatch{}, nil
		}
		return model.TenantPatch{Components: &t.Components}, nil
	})
}

// PageDraft holds the optional fields of a new page.
type PageDraft struct {
	Name           string `json:"name"`
	Slug           string `json:"slug"`
	SEOTitle       string `json:"seoTitle"`
	SEODescription string `json:"seoDescription"`
}

// AddPage appends an active, empty page. Missing name and slug are
// synthesized; an explicit slug must not be in use.
func (s *TenantService) AddPage(ctx context.Context, tenantID string, draft PageDraft) (model.PageConfig, error) {
	if draft.Slug != "" {
		if err := validateSlug(draft.Slug); err != nil {
			return model.PageConfig{}, err
		}
	}

	var added model.PageConfig
	_, err := s.mutate(ctx, "add_page", tenantID, func(t *model.Tenant) (model.TenantPatch, error) {
		if draft.Slug != "" && t.HasSlug(draft.Slug) {
			return model.TenantPatch{}, fmt.Errorf("%w: %s", ErrSlugTaken, draft.Slug)
		}
		id, slug := s.pageIdentity(t)
		if draft.Slug != "" {
			slug = draft.Slug
		}
		name := draft.Name
		if name == "" {
			name = "New Page"
		}
		added = t.AppendPage(model.PageConfig{
			ID:             id,
			Name:           name,
			Slug:           slug,
			IsActive:       true,
			SEOTitle:       draft.SEOTitle,
			SEODescription: draft.SEODescription,
		})
		return model.TenantPatch{Pages: &t.Pages}, nil
	})
	if err != nil {
		return model.PageConfig{}, err
	}
	log.Info().Str("tenant_id", tenantID).Str("page_id", added.ID).Str("slug", added.Slug).Msg("Page added")
	return added, nil
}

// UpdatePage merges patch into the page. An absent page id leaves the tenant
// unmodified and is not an error.
func (s *TenantService) UpdatePage(ctx context.Context, tenantID, pageID string, patch model.PagePatch) (*model.Tenant, error) {
	if patch.Slug != nil {
		if err := validateSlug(*patch.Slug); err != nil {
			return nil, err
		}
	}
	return s.mutate(ctx, "update_page", tenantID, func(t *model.Tenant) (model.TenantPatch, error) {
		page, ok := t.Page(pageID)
		if !ok {
			log.Warn().Str("tenant_id", tenantID).Str("page_id", pageID).Msg("Page not found, nothing updated")
			return model.TenantPatch{}, nil
		}
		if patch.Slug != nil && *patch.Slug != page.Slug && t.HasSlug(*patch.Slug) {
			return model.TenantPatch{}, fmt.Errorf("%w: %s", ErrSlugTaken, *patch.Slug)
		}
		t.UpdatePage(pageID, patch)
		return model.TenantPatch{Pages: &t.Pages}, nil
	})
}

// AddComponentToPage appends a component reference to the page unless it is
// already present.
func (s *TenantService) AddComponentToPage(ctx context.Context, tenantID, pageID, componentID string) (*model.Tenant, error) {
	return s.mutate(ctx, "add_page_component", tenantID, func(t *model.Tenant) (model.TenantPatch, error) {
		if !t.AddComponentToPage(pageID, componentID) {
			return model.TenantPatch{}, nil
		}
		return model.TenantPatch{Pages: &t.Pages}, nil
	})
}

// RemoveComponentFromPage drops a component reference from the page.
// Removing an absent reference is a no-op.
func (s *TenantService) RemoveComponentFromPage(ctx context.Context, tenantID, pageID, componentID string) (*model.Tenant, error) {
	return s.mutate(ctx, "remove_page_component", tenantID, func(t *model.Tenant) (model.TenantPatch, error) {
		if !t.RemoveComponentFromPage(pageID, componentID) {
			return model.TenantPatch{}, nil
		}
		return model.TenantPatch{Pages: &t.Pages}, nil
	})
}

// validateSlug accepts only slugs the public router can reach: a leading
// slash and no trailing one, except for the root.
func validateSlug(slug string) error {
	if !strings.HasPrefix(slug, "/") || site.NormalizePath(slug) != slug {
		return fmt.Errorf("%w: slug %q must start with / and not end with /", ErrInvalid, slug)
	}
	return nil
}

// componentID returns type_variant_<unix ms>, moving the timestamp forward
// until the id is free within t.
func (s *TenantService) componentID(t *model.Tenant, typ, variant string) string {
	ms := s.now().UnixMilli()
	for {
		id := fmt.Sprintf("%s_%s_%d", typ, variant, ms)
		if _, taken := t.Component(id); !taken {
			return id
		}
		ms++
	}
}

// pageIdentity returns page_<unix ms> and /page-<unix ms> with the first
// timestamp for which both are free within t.
func (s *TenantService) pageIdentity(t *model.Tenant) (string, string) {
	ms := s.now().UnixMilli()
	for {
		id := fmt.Sprintf("page_%d", ms)
		slug := fmt.Sprintf("/page-%d", ms)
		_, taken := t.Page(id)
		if !taken && !t.HasSlug(slug) {
			return id, slug
		}
		ms++
	}
}
