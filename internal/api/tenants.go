// Package api exposes the admin JSON API and the public site renderer over
// HTTP.
package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"github.com/teresa-solution/site-builder-service/internal/catalog"
	"github.com/teresa-solution/site-builder-service/internal/model"
	"github.com/teresa-solution/site-builder-service/internal/service"
)

// TenantAPI provides the admin endpoints.
type TenantAPI struct {
	tenants *service.TenantService
}

func NewTenantAPI(tenants *service.TenantService) *TenantAPI {
	return &TenantAPI{tenants: tenants}
}

// RegisterRoutes registers the admin routes under /api.
func (api *TenantAPI) RegisterRoutes(router *mux.Router) {
	r := router.PathPrefix("/api").Subrouter()

	// Tenants
	r.HandleFunc("/tenants", api.handleListTenants).Methods("GET")
	r.HandleFunc("/tenants", api.handleCreateTenant).Methods("POST")
	r.HandleFunc("/tenants/{id}", api.handleGetTenant).Methods("GET")
	r.HandleFunc("/tenants/{id}", api.handleUpdateTenant).Methods("PUT")
	r.HandleFunc("/tenants/{id}", api.handleDeleteTenant).Methods("DELETE")

	// Components
	r.HandleFunc("/tenants/{id}/components", api.handleReplaceComponents).Methods("PUT")
	r.HandleFunc("/tenants/{id}/components", api.handleAddComponent).Methods("POST")
	r.HandleFunc("/tenants/{id}/components/{componentId}", api.handleUpdateComponent).Methods("PATCH")
	r.HandleFunc("/tenants/{id}/components/{componentId}", api.handleRemoveComponent).Methods("DELETE")

	// Pages
	r.HandleFunc("/tenants/{id}/pages", api.handleReplacePages).Methods("PUT")
	r.HandleFunc("/tenants/{id}/pages", api.handleAddPage).Methods("POST")
	r.HandleFunc("/tenants/{id}/pages/{pageId}", api.handleUpdatePage).Methods("PATCH")
	r.HandleFunc("/tenants/{id}/pages/{pageId}/components/{componentId}", api.handleAddPageComponent).Methods("PUT")
	r.HandleFunc("/tenants/{id}/pages/{pageId}/components/{componentId}", api.handleRemovePageComponent).Methods("DELETE")

	// Catalog, seeding and debugging
	r.HandleFunc("/templates", api.handleListTemplates).Methods("GET")
	r.HandleFunc("/init-db", api.handleInitDB).Methods("POST")
	r.HandleFunc("/debug/tenants", api.handleDebugTenants).Methods("GET")

	methodNotAllowed := func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed", nil)
	}
	r.MethodNotAllowedHandler = http.HandlerFunc(methodNotAllowed)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if methodMismatch(r, req) {
			methodNotAllowed(w, req)
			return
		}
		writeError(w, http.StatusNotFound, "Not found", nil)
	})

	log.Info().Msg("Admin API routes registered")
}

// methodMismatch reports whether a route of router matches the request path
// under another method.
func methodMismatch(router *mux.Router, req *http.Request) bool {
	mismatch := false
	_ = router.Walk(func(route *mux.Route, _ *mux.Router, _ []*mux.Route) error {
		var match mux.RouteMatch
		if !route.Match(req, &match) && match.MatchErr == mux.ErrMethodMismatch {
			mismatch = true
		}
		return nil
	})
	return mismatch
}

// =============================================================================
// Tenant Endpoints
// =============================================================================

func (api *TenantAPI) handleListTenants(w http.ResponseWriter, r *http.Request) {
	tenants, err := api.tenants.ListTenants(r.Context())
	if err != nil {
		// Reads degrade to an empty listing.
		tenants = nil
	}
	summaries := make([]model.TenantSummary, 0, len(tenants))
	for i := range tenants {
		summaries = append(summaries, tenants[i].Summary())
	}
	writeJSON(w, http.StatusOK, summaries)
}

func (api *TenantAPI) handleCreateTenant(w http.ResponseWriter, r *http.Request) {
	var draft model.Tenant
	if !decodeBody(w, r, &draft) {
		return
	}
	tenant, err := api.tenants.CreateTenant(r.Context(), &draft)
	if err != nil {
		writeServiceError(w, err, "Failed to create tenant")
		return
	}
	writeJSON(w, http.StatusCreated, tenant)
}

func (api *TenantAPI) handleGetTenant(w http.ResponseWriter, r *http.Request) {
	tenant, err := api.tenants.GetTenant(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		// Store failures read as absent.
		writeError(w, http.StatusNotFound, "Tenant not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, tenant)
}

func (api *TenantAPI) handleUpdateTenant(w http.ResponseWriter, r *http.Request) {
	var patch model.TenantPatch
	if !decodeBody(w, r, &patch) {
		return
	}
	if err := api.tenants.UpdateTenant(r.Context(), mux.Vars(r)["id"], patch); err != nil {
		writeServiceError(w, err, "Failed to update tenant")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (api *TenantAPI) handleDeleteTenant(w http.ResponseWriter, r *http.Request) {
	if err := api.tenants.DeleteTenant(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeServiceError(w, err, "Failed to delete tenant")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// =============================================================================
// Component Endpoints
// =============================================================================

func (api *TenantAPI) handleReplaceComponents(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Components []model.ComponentConfig `json:"components"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if err := api.tenants.ReplaceComponents(r.Context(), mux.Vars(r)["id"], req.Components); err != nil {
		writeServiceError(w, err, "Failed to update components")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (api *TenantAPI) handleAddComponent(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type    string `json:"type"`
		Variant string `json:"variant"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Variant == "" {
		req.Variant = model.DefaultVariant
	}
	component, err := api.tenants.AddComponent(r.Context(), mux.Vars(r)["id"], req.Type, req.Variant)
	if err != nil {
		writeServiceError(w, err, "Failed to add component")
		return
	}
	writeJSON(w, http.StatusCreated, component)
}

func (api *TenantAPI) handleUpdateComponent(w http.ResponseWriter, r *http.Request) {
	var patch model.ComponentPatch
	if !decodeBody(w, r, &patch) {
		return
	}
	vars := mux.Vars(r)
	tenant, err := api.tenants.UpdateComponent(r.Context(), vars["id"], vars["componentId"], patch)
	if err != nil {
		writeServiceError(w, err, "Failed to update component")
		return
	}
	writeJSON(w, http.StatusOK, tenant)
}

func (api *TenantAPI) handleRemoveComponent(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	tenant, err := api.tenants.RemoveComponent(r.Context(), vars["id"], vars["componentId"])
	if err != nil {
		writeServiceError(w, err, "Failed to remove component")
		return
	}
	writeJSON(w, http.StatusOK, tenant)
}

// =============================================================================
// Page Endpoints
// =============================================================================

func (api *TenantAPI) handleReplacePages(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Pages []model.PageConfig `json:"pages"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if err := api.tenants.ReplacePages(r.Context(), mux.Vars(r)["id"], req.Pages); err != nil {
		writeServiceError(w, err, "Failed to update pages")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (api *TenantAPI) handleAddPage(w http.ResponseWriter, r *http.Request) {
	var draft service.PageDraft
	if r.ContentLength != 0 && !decodeBody(w, r, &draft) {
		return
	}
	page, err := api.tenants.AddPage(r.Context(), mux.Vars(r)["id"], draft)
	if err != nil {
		writeServiceError(w, err, "Failed to add page")
		return
	}
	writeJSON(w, http.StatusCreated, page)
}

func (api *TenantAPI) handleUpdatePage(w http.ResponseWriter, r *http.Request) {
	var patch model.PagePatch
	if !decodeBody(w, r, &patch) {
		return
	}
	vars := mux.Vars(r)
	tenant, err := api.tenants.UpdatePage(r.Context(), vars["id"], vars["pageId"], patch)
	if err != nil {
		writeServiceError(w, err, "Failed to update page")
		return
	}
	writeJSON(w, http.StatusOK, tenant)
}

func (api *TenantAPI) handleAddPageComponent(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	tenant, err := api.tenants.AddComponentToPage(r.Context(), vars["id"], vars["pageId"], vars["componentId"])
	if err != nil {
		writeServiceError(w, err, "Failed to update page")
		return
	}
	writeJSON(w, http.StatusOK, tenant)
}

func (api *TenantAPI) handleRemovePageComponent(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	tenant, err := api.tenants.RemoveComponentFromPage(r.Context(), vars["id"], vars["pageId"], vars["componentId"])
	if err != nil {
		writeServiceError(w, err, "Failed to update page")
		return
	}
	writeJSON(w, http.StatusOK, tenant)
}

// =============================================================================
// Catalog, Seeding and Debug Endpoints
// =============================================================================

func (api *TenantAPI) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	cat := api.tenants.Catalog()
	variants := cat.Variants()
	templates := cat.Templates()
	if typ := r.URL.Query().Get("type"); typ != "" {
		variants = cat.VariantsOf(typ)
		filtered := make([]catalog.Template, 0, len(templates))
		for _, t := range templates {
			if t.Type == typ {
				filtered = append(filtered, t)
			}
		}
		templates = filtered
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"variants":  variants,
		"templates": templates,
	})
}

func (api *TenantAPI) handleInitDB(w http.ResponseWriter, r *http.Request) {
	tenant, created, err := api.tenants.SeedDemo(r.Context())
	if err != nil {
		writeServiceError(w, err, "Failed to initialize database")
		return
	}
	message := "Demo tenant already exists"
	if created {
		message = "Database initialized successfully with demo data"
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success":  true,
		"message":  message,
		"tenantId": tenant.ID,
	})
}

func (api *TenantAPI) handleDebugTenants(w http.ResponseWriter, r *http.Request) {
	tenants, err := api.tenants.ListTenants(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch tenants", err)
		return
	}
	summaries := make([]model.TenantSummary, 0, len(tenants))
	for i := range tenants {
		summaries = append(summaries, tenants[i].Summary())
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"count":   len(summaries),
		"tenants": summaries,
	})
}
