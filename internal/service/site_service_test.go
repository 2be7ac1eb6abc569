package service

import (
	"context"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teresa-solution/site-builder-service/internal/model"
)

func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	os.Exit(v)
}

func setupSite(t *testing.T) (*SiteService, *TenantService, *model.Tenant, func()) {
	svc, repo, teardown := setupTestService(t)
	demo, _, err := svc.SeedDemo(context.Background())
	require.NoError(t, err)
	return NewSiteService(repo, nil), svc, demo, teardown
}

func TestSiteService_RootComposesWholeTenant(t *testing.T) {
	site, _, _, teardown := setupSite(t)
	defer teardown()

	page := site.Render(context.Background(), "demo:3000", "/")
	require.Equal(t, http.StatusOK, page.Status)
	html := string(page.HTML)

	assert.Contains(t, html, "<title>Demo Corp - Innovation at its finest</title>")
	assert.Contains(t, html, `content="Welcome to Demo Corp, where we provide cutting-edge solutions for modern businesses."`)
	order := []string{`id="navbar_demo"`, `id="hero_demo"`, `id="features_demo"`, `id="contact_demo"`, `id="footer_demo"`}
	for i := 1; i < len(order); i++ {
		assert.Less(t, strings.Index(html, order[i-1]), strings.Index(html, order[i]))
	}
	snaps.WithConfig(snaps.Ext(".html")).MatchSnapshot(t, html)
}

func TestSiteService_PageUsesPageOrder(t *testing.T) {
	site, svc, demo, teardown := setupSite(t)
	defer teardown()
	ctx := context.Background()

	order := []string{"footer_demo", "missing_id", "navbar_demo"}
	_, err := svc.UpdatePage(ctx, demo.ID, "about_page", model.PagePatch{Components: &order})
	require.NoError(t, err)

	page := site.Render(ctx, "demo", "/about/")
	require.Equal(t, http.StatusOK, page.Status)
	html := string(page.HTML)

	assert.Contains(t, html, "<title>About Us - Demo Corp</title>")
	assert.Less(t, strings.Index(html, `id="footer_demo"`), strings.Index(html, `id="navbar_demo"`))
	assert.NotContains(t, html, `id="hero_demo"`)
}

func TestSiteService_InactiveComponentsAreSkipped(t *testing.T) {
	site, svc, demo, teardown := setupSite(t)
	defer teardown()
	ctx := context.Background()

	_, err := svc.RemoveComponent(ctx, demo.ID, "hero_demo")
	require.NoError(t, err)

	for _, path := range []string{"/", "/about"} {
		page := site.Render(ctx, "demo", path)
		require.Equal(t, http.StatusOK, page.Status)
		assert.NotContains(t, string(page.HTML), `id="hero_demo"`, path)
		assert.Contains(t, string(page.HTML), `id="navbar_demo"`, path)
	}
}

func TestSiteService_NotFound(t *testing.T) {
	site, svc, demo, teardown := setupSite(t)
	defer teardown()
	ctx := context.Background()

	missingHost := site.Render(ctx, "nobody.example.com", "/")
	assert.Equal(t, http.StatusNotFound, missingHost.Status)
	assert.Contains(t, string(missingHost.HTML), "Site Not Found")

	missingPage := site.Render(ctx, "demo", "/services")
	assert.Equal(t, http.StatusNotFound, missingPage.Status)

	inactive := false
	_, err := svc.UpdatePage(ctx, demo.ID, "contact_page", model.PagePatch{IsActive: &inactive})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, site.Render(ctx, "demo", "/contact").Status)

	require.NoError(t, svc.UpdateTenant(ctx, demo.ID, model.TenantPatch{IsActive: &inactive}))
	hidden := site.Render(ctx, "demo", "/")
	assert.Equal(t, missingHost, hidden, "inactive tenants look exactly like absent ones")
}

func TestSiteService_UnderConstruction(t *testing.T) {
	site, svc, _, teardown := setupSite(t)
	defer teardown()
	ctx := context.Background()

	tenant, err := svc.CreateTenant(ctx, &model.Tenant{Name: "Empty Co", Domain: "empty.example.com", IsActive: true})
	require.NoError(t, err)
	_, err = svc.AddPage(ctx, tenant.ID, PageDraft{Name: "Blog", Slug: "/blog"})
	require.NoError(t, err)

	root := site.Render(ctx, "EMPTY.example.com", "/")
	assert.Equal(t, http.StatusOK, root.Status)
	assert.Contains(t, string(root.HTML), "<title>Empty Co - Welcome</title>")
	assert.Contains(t, string(root.HTML), "Welcome to Empty Co")
	assert.Contains(t, string(root.HTML), "This site is under construction. Please check back later.")

	blog := site.Render(ctx, "empty.example.com", "/blog")
	assert.Equal(t, http.StatusOK, blog.Status)
	assert.Contains(t, string(blog.HTML), "<h1>Blog</h1>")
	assert.Contains(t, string(blog.HTML), "This page is under construction.")
}

func TestSiteService_StoreFailure(t *testing.T) {
	_, repo, _ := setupTestService(t)
	require.NoError(t, repo.Close())

	page := NewSiteService(repo, nil).Render(context.Background(), "demo", "/")
	assert.Equal(t, http.StatusInternalServerError, page.Status)
	assert.Contains(t, string(page.HTML), "Error Loading Site")
}
