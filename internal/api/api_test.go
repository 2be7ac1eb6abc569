package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/teresa-solution/site-builder-service/internal/catalog"
	"github.com/teresa-solution/site-builder-service/internal/lock"
	"github.com/teresa-solution/site-builder-service/internal/model"
	"github.com/teresa-solution/site-builder-service/internal/service"
	"github.com/teresa-solution/site-builder-service/internal/store"
)

func setupRouter(t *testing.T) (*mux.Router, *store.BoltStore) {
	repo, err := store.NewBoltStore(filepath.Join(t.TempDir(), "tenants.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	tenants := service.NewTenantService(repo, catalog.Default(), lock.NewLocalLocker())
	sites := service.NewSiteService(repo, nil)
	return NewRouter(tenants, sites, repo), repo
}

func doRequest(t *testing.T, router http.Handler, method, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func seed(t *testing.T, router http.Handler) string {
	t.Helper()
	rec := doRequest(t, router, http.MethodPost, "/api/init-db", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var resp struct {
		TenantID string `json:"tenantId"`
	}
	decode(t, rec, &resp)
	return resp.TenantID
}

func TestInitDB_Idempotent(t *testing.T) {
	router, _ := setupRouter(t)

	first := seed(t, router)
	rec := doRequest(t, router, http.MethodPost, "/api/init-db", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]interface{}
	decode(t, rec, &resp)
	assert.Equal(t, true, resp["success"])
	assert.Equal(t, "Demo tenant already exists", resp["message"])
	assert.Equal(t, first, resp["tenantId"])
}

func TestListTenants(t *testing.T) {
	router, _ := setupRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/tenants", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	id := seed(t, router)
	rec = doRequest(t, router, http.MethodGet, "/api/tenants", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var summaries []model.TenantSummary
	decode(t, rec, &summaries)
	require.Len(t, summaries, 1)
	assert.Equal(t, model.TenantSummary{
		ID: id, Name: "Demo Company", Subdomain: "demo", IsActive: true, ComponentsCount: 5, PagesCount: 3,
	}, summaries[0])

	rec = doRequest(t, router, http.MethodGet, "/api/debug/tenants", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var debug struct {
		Success bool                  `json:"success"`
		Count   int                   `json:"count"`
		Tenants []model.TenantSummary `json:"tenants"`
	}
	decode(t, rec, &debug)
	assert.True(t, debug.Success)
	assert.Equal(t, 1, debug.Count)
}

func TestListTenants_StoreFailureReadsEmpty(t *testing.T) {
	router, repo := setupRouter(t)
	require.NoError(t, repo.Close())

	rec := doRequest(t, router, http.MethodGet, "/api/tenants", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String())

	rec = doRequest(t, router, http.MethodGet, "/api/tenants/anything", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/api/tenants", map[string]string{"name": "x"})
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"Failed to create tenant","success":false}`, rec.Body.String())

	rec = doRequest(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestTenantCRUD(t *testing.T) {
	router, _ := setupRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/tenants", map[string]interface{}{
		"name": "Acme", "domain": "acme.example.com", "isActive": true,
		"theme": map[string]string{"primaryColor": "#ff0000"},
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var created model.Tenant
	decode(t, rec, &created)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, []model.ComponentConfig{}, created.Components)
	assert.Equal(t, []model.PageConfig{}, created.Pages)

	rec = doRequest(t, router, http.MethodGet, "/api/tenants/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got model.Tenant
	decode(t, rec, &got)
	assert.Equal(t, "Acme", got.Name)
	assert.Equal(t, "#ff0000", got.Theme.PrimaryColor)

	rec = doRequest(t, router, http.MethodPut, "/api/tenants/"+created.ID, map[string]interface{}{"name": "Acme Inc", "isActive": false})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	rec = doRequest(t, router, http.MethodGet, "/api/tenants/"+created.ID, nil)
	decode(t, rec, &got)
	assert.Equal(t, "Acme Inc", got.Name)
	assert.False(t, got.IsActive)
	assert.Equal(t, "acme.example.com", got.Domain)

	rec = doRequest(t, router, http.MethodPut, "/api/tenants/missing", map[string]interface{}{"name": "x"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/api/tenants", map[string]interface{}{"name": "Copy", "domain": "acme.example.com"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), `"error":"Tenant already exists"`)

	rec = doRequest(t, router, http.MethodDelete, "/api/tenants/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	rec = doRequest(t, router, http.MethodDelete, "/api/tenants/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	rec = doRequest(t, router, http.MethodGet, "/api/tenants/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Tenant not found","success":false}`, rec.Body.String())
}

func TestCreateTenant_BadRequests(t *testing.T) {
	router, _ := setupRouter(t)

	rec := doRequest(t, router, http.MethodPost, "/api/tenants", "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, router, http.MethodPost, "/api/tenants", map[string]string{"name": "Bad", "subdomain": "Not_Valid"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReplaceCollections(t *testing.T) {
	router, _ := setupRouter(t)
	id := seed(t, router)

	rec := doRequest(t, router, http.MethodPut, "/api/tenants/"+id+"/components", map[string]interface{}{
		"components": []model.ComponentConfig{{ID: "hero_1", Type: model.TypeHero, Variant: "fullscreen", IsActive: true}},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodPut, "/api/tenants/"+id+"/pages", map[string]interface{}{
		"pages": []model.PageConfig{{ID: "home", Name: "Home", Slug: "/", IsActive: true, Components: []string{"hero_1"}}},
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/tenants/"+id, nil)
	var got model.Tenant
	decode(t, rec, &got)
	require.Len(t, got.Components, 1)
	assert.Equal(t, "fullscreen", got.Components[0].Variant)
	require.Len(t, got.Pages, 1)

	rec = doRequest(t, router, http.MethodPut, "/api/tenants/missing/components", map[string]interface{}{"components": []interface{}{}})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestComponentEndpoints(t *testing.T) {
	router, _ := setupRouter(t)
	id := seed(t, router)
	base := "/api/tenants/" + id + "/components"

	rec := doRequest(t, router, http.MethodPost, base, map[string]string{"type": "hero", "variant": "unknown-variant"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Component template not found")

	rec = doRequest(t, router, http.MethodPost, base, map[string]string{"type": "hero", "variant": "default"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var added model.ComponentConfig
	decode(t, rec, &added)
	assert.Equal(t, 5, added.Position)
	assert.True(t, strings.HasPrefix(added.ID, "hero_default_"))

	rec = doRequest(t, router, http.MethodPatch, base+"/"+added.ID, map[string]interface{}{"data": map[string]string{"title": "X"}})
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doRequest(t, router, http.MethodPatch, base+"/"+added.ID, map[string]interface{}{"data": map[string]string{"subtitle": "Y"}})
	require.Equal(t, http.StatusOK, rec.Code)
	var tenant model.Tenant
	decode(t, rec, &tenant)
	c, ok := tenant.Component(added.ID)
	require.True(t, ok)
	assert.Equal(t, "X", c.Data.String("title", ""))
	assert.Equal(t, "Y", c.Data.String("subtitle", ""))

	rec = doRequest(t, router, http.MethodDelete, base+"/"+added.ID, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &tenant)
	c, ok = tenant.Component(added.ID)
	require.True(t, ok, "removal deactivates")
	assert.False(t, c.IsActive)
}

func TestPageEndpoints(t *testing.T) {
	router, _ := setupRouter(t)
	id := seed(t, router)
	base := "/api/tenants/" + id + "/pages"

	rec := doRequest(t, router, http.MethodPost, base, nil)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var page model.PageConfig
	decode(t, rec, &page)
	assert.Equal(t, "New Page", page.Name)
	assert.True(t, strings.HasPrefix(page.Slug, "/page-"))

	rec = doRequest(t, router, http.MethodPost, base, map[string]string{"name": "About again", "slug": "/about"})
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = doRequest(t, router, http.MethodPatch, base+"/"+page.ID, map[string]string{"slug": "/services", "name": "Services"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, router, http.MethodPut, base+"/"+page.ID+"/components/navbar_demo", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	rec = doRequest(t, router, http.MethodPut, base+"/"+page.ID+"/components/navbar_demo", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var tenant model.Tenant
	decode(t, rec, &tenant)
	p, ok := tenant.Page(page.ID)
	require.True(t, ok)
	assert.Equal(t, []string{"navbar_demo"}, p.Components)

	rec = doRequest(t, router, http.MethodGet, "/tenant/demo/services", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `id="navbar_demo"`)

	rec = doRequest(t, router, http.MethodDelete, base+"/"+page.ID+"/components/navbar_demo", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decode(t, rec, &tenant)
	p, _ = tenant.Page(page.ID)
	assert.Empty(t, p.Components)
}

func TestListTemplates(t *testing.T) {
	router, _ := setupRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/api/templates?type=hero", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Variants  []catalog.Variant  `json:"variants"`
		Templates []catalog.Template `json:"templates"`
	}
	decode(t, rec, &resp)
	assert.Len(t, resp.Variants, 3)
	assert.Len(t, resp.Templates, 3)
}

func TestPublicSite(t *testing.T) {
	router, _ := setupRouter(t)
	seed(t, router)

	req := httptest.NewRequest(http.MethodGet, "/about", nil)
	req.Host = "demo:8080"
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "<title>About Us - Demo Corp</title>")
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Host = "unknown.example.com"
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Site Not Found")

	rec = doRequest(t, router, http.MethodGet, "/tenant/demo", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "<title>Demo Corp - Innovation at its finest</title>")

	rec = doRequest(t, router, http.MethodGet, "/tenant/demo/missing", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouting(t *testing.T) {
	router, _ := setupRouter(t)

	rec := doRequest(t, router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())

	rec = doRequest(t, router, http.MethodGet, "/api/unknown", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"Not found","success":false}`, rec.Body.String())

	rec = doRequest(t, router, http.MethodPatch, "/api/tenants", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.JSONEq(t, `{"error":"Method not allowed","success":false}`, rec.Body.String())

	rec = doRequest(t, router, http.MethodPost, "/api/tenants/x", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/api/tenants/x/components", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)

	rec = doRequest(t, router, http.MethodGet, "/metrics", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}
