package service

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/teresa-solution/site-builder-service/internal/model"
	"github.com/teresa-solution/site-builder-service/internal/monitoring"
	"github.com/teresa-solution/site-builder-service/internal/render"
	"github.com/teresa-solution/site-builder-service/internal/site"
)

// Page is a rendered public response.
type Page struct {
	Status int
	HTML   []byte
}

// SiteService renders tenant sites for public requests. It reads the store
// once per request and keeps no state between requests.
type SiteService struct {
	resolver *site.Resolver
	renderer *render.Renderer
}

func NewSiteService(finder site.TenantFinder, renderer *render.Renderer) *SiteService {
	if renderer == nil {
		renderer = render.NewRenderer(nil)
	}
	return &SiteService{
		resolver: site.NewResolver(finder),
		renderer: renderer,
	}
}

// Render resolves host to a tenant and renders path. The bare root composes
// every active component by position; any other path renders the matching
// page's components in page order. The result is always an HTML document.
func (s *SiteService) Render(ctx context.Context, host, path string) Page {
	start := time.Now()
	defer func() {
		monitoring.RenderDuration.Observe(time.Since(start).Seconds())
	}()

	path = site.NormalizePath(path)
	logger := log.With().Str("host", host).Str("path", path).Logger()

	tenant, err := s.resolver.ResolveTenant(ctx, host)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			logger.Debug().Msg("No active tenant for host")
			return s.notFound()
		}
		monitoring.StoreAlert("find by host", err, map[string]string{"host": site.NormalizeHost(host)})
		return s.failure()
	}

	doc := render.Document{Theme: tenant.Theme}
	if path == model.HomeSlug {
		doc.Components = site.ComposeTenant(tenant)
		doc.Title = tenant.Name + " - Welcome"
		doc.Description = "Welcome to " + tenant.Name
		if home, ok := tenant.HomePage(); ok {
			doc.Title = orDefault(home.SEOTitle, doc.Title)
			doc.Description = orDefault(home.SEODescription, doc.Description)
		}
		doc.EmptyHeading = "Welcome to " + tenant.Name
		doc.EmptyMessage = "This site is under construction. Please check back later."
	} else {
		page, err := site.ResolvePage(tenant, path)
		if err != nil {
			logger.Debug().Str("tenant_id", tenant.ID).Msg("No active page for path")
			return s.notFound()
		}
		doc.Components = site.ComposePage(tenant, page)
		doc.Title = orDefault(page.SEOTitle, page.Name)
		doc.Description = page.SEODescription
		doc.EmptyHeading = page.Name
		doc.EmptyMessage = "This page is under construction."
	}

	var buf bytes.Buffer
	if err := s.renderer.Page(&buf, doc); err != nil {
		logger.Error().Err(err).Str("tenant_id", tenant.ID).Msg("Failed to render page")
		return s.failure()
	}

	outcome := monitoring.OutcomeRendered
	if len(doc.Components) == 0 {
		outcome = monitoring.OutcomeEmpty
	}
	monitoring.SiteRequests.WithLabelValues(outcome).Inc()
	return Page{Status: http.StatusOK, HTML: buf.Bytes()}
}

func (s *SiteService) notFound() Page {
	monitoring.SiteRequests.WithLabelValues(monitoring.OutcomeNotFound).Inc()
	var buf bytes.Buffer
	if err := s.renderer.NotFound(&buf); err != nil {
		log.Error().Err(err).Msg("Failed to render not found page")
	}
	return Page{Status: http.StatusNotFound, HTML: buf.Bytes()}
}

func (s *SiteService) failure() Page {
	monitoring.SiteRequests.WithLabelValues(monitoring.OutcomeError).Inc()
	var buf bytes.Buffer
	if err := s.renderer.Failure(&buf); err != nil {
		log.Error().Err(err).Msg("Failed to render error page")
	}
	return Page{Status: http.StatusInternalServerError, HTML: buf.Bytes()}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
