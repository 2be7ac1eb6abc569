package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"
	"github.com/teresa-solution/site-builder-service/internal/service"
)

// SiteAPI serves tenant sites. Tenants are picked by Host header, or by
// the domain segment of /tenant/{domain} preview URLs.
type SiteAPI struct {
	sites *service.SiteService
}

func NewSiteAPI(sites *service.SiteService) *SiteAPI {
	return &SiteAPI{sites: sites}
}

// RegisterRoutes registers the preview routes and the host-based catch-all.
// It must be called after every other route is registered.
func (api *SiteAPI) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/tenant/{domain}", api.handlePreview).Methods("GET", "HEAD")
	router.HandleFunc("/tenant/{domain}/{slug:.*}", api.handlePreview).Methods("GET", "HEAD")
	router.PathPrefix("/").HandlerFunc(api.handleHost).Methods("GET", "HEAD")

	log.Info().Msg("Public site routes registered")
}

func (api *SiteAPI) handleHost(w http.ResponseWriter, r *http.Request) {
	writePage(w, api.sites.Render(r.Context(), r.Host, r.URL.Path))
}

func (api *SiteAPI) handlePreview(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	writePage(w, api.sites.Render(r.Context(), vars["domain"], "/"+vars["slug"]))
}

func writePage(w http.ResponseWriter, page service.Page) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(page.Status)
	if _, err := w.Write(page.HTML); err != nil {
		log.Debug().Err(err).Msg("Failed to write page")
	}
}
