package site

import (
	"sort"

	"github.com/teresa-solution/site-builder-service/internal/model"
)

// ResolvePage returns the first active page whose slug equals path exactly.
// The path must already be normalized.
func ResolvePage(tenant *model.Tenant, path string) (*model.PageConfig, error) {
	for i := range tenant.Pages {
		p := &tenant.Pages[i]
		if p.Slug == path && p.IsActive {
			return p, nil
		}
	}
	return nil, ErrPageNotFound
}

// ComposePage returns the components referenced by page, in the page's
// order. Dangling references and inactive components are skipped; position
// is ignored.
func ComposePage(tenant *model.Tenant, page *model.PageConfig) []model.ComponentConfig {
	byID := make(map[string]int, len(tenant.Components))
	for i := len(tenant.Components) - 1; i >= 0; i-- {
		byID[tenant.Components[i].ID] = i
	}

	out := make([]model.ComponentConfig, 0, len(page.Components))
	for _, id := range page.Components {
		i, ok := byID[id]
		if !ok {
			continue
		}
		if c := tenant.Components[i]; c.IsActive {
			out = append(out, c)
		}
	}
	return out
}

// ComposeTenant returns every active component of tenant, ordered by
// position. Equal positions keep collection order.
func ComposeTenant(tenant *model.Tenant) []model.ComponentConfig {
	out := make([]model.ComponentConfig, 0, len(tenant.Components))
	for _, c := range tenant.Components {
		if c.IsActive {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Position < out[j].Position
	})
	return out
}
