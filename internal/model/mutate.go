package model

// In-memory mutations over a tenant's embedded collections. Callers persist
// the whole collection afterwards.

// AppendComponent adds c at the end of the tenant's components, with
// position set to the current component count.
func (t *Tenant) AppendComponent(c ComponentConfig) ComponentConfig {
	c.Position = len(t.Components)
	if c.Data == nil {
		c.Data = ComponentData{}
	}
	t.Components = append(t.Components, c)
	return c
}

// UpdateComponent merges patch into the component with the given id. It
// reports false, leaving t unmodified, when the id is absent.
func (t *Tenant) UpdateComponent(id string, patch ComponentPatch) bool {
	c, ok := t.Component(id)
	if !ok {
		return false
	}
	patch.Apply(c)
	return true
}

// DeactivateComponent marks the component inactive. The component stays in
// the collection so that it can be re-enabled.
func (t *Tenant) DeactivateComponent(id string) bool {
	inactive := false
	return t.UpdateComponent(id, ComponentPatch{IsActive: &inactive})
}

// AppendPage adds p at the end of the tenant's pages.
func (t *Tenant) AppendPage(p PageConfig) PageConfig {
	if p.Components == nil {
		p.Components = []string{}
	}
	t.Pages = append(t.Pages, p)
	return p
}

// UpdatePage merges patch into the page with the given id.
func (t *Tenant) UpdatePage(id string, patch PagePatch) bool {
	p, ok := t.Page(id)
	if !ok {
		return false
	}
	patch.Apply(p)
	return true
}

// AddComponentToPage appends componentID to the page's component list unless
// it is already referenced. It reports whether the page changed.
func (t *Tenant) AddComponentToPage(pageID, componentID string) bool {
	p, ok := t.Page(pageID)
	if !ok {
		return false
	}
	for _, id := range p.Components {
		if id == componentID {
			return false
		}
	}
	p.Components = append(p.Components, componentID)
	return true
}

// RemoveComponentFromPage drops every reference to componentID from the page.
// Removing an absent id is a no-op.
func (t *Tenant) RemoveComponentFromPage(pageID, componentID string) bool {
	p, ok := t.Page(pageID)
	if !ok {
		return false
	}
	kept := make([]string, 0, len(p.Components))
	for _, id := range p.Components {
		if id != componentID {
			kept = append(kept, id)
		}
	}
	changed := len(kept) != len(p.Components)
	p.Components = kept
	return changed
}

// HasSlug reports whether any page uses slug.
func (t *Tenant) HasSlug(slug string) bool {
	for _, p := range t.Pages {
		if p.Slug == slug {
			return true
		}
	}
	return false
}
