// Package site maps an inbound host and path to a tenant, a page and the
// ordered list of components to render.
package site

import (
	"context"
	"fmt"
	"net"
	"strings"

	"github.com/teresa-solution/site-builder-service/internal/model"
)

var (
	// ErrTenantNotFound covers both absent and inactive tenants.
	ErrTenantNotFound = fmt.Errorf("tenant %w", model.ErrNotFound)
	// ErrPageNotFound covers both absent and inactive pages.
	ErrPageNotFound = fmt.Errorf("page %w", model.ErrNotFound)
)

// TenantFinder looks a tenant up by domain or subdomain. It returns
// (nil, nil) when nothing matches.
type TenantFinder interface {
	FindByDomainOrSubdomain(ctx context.Context, key string) (*model.Tenant, error)
}

// Resolver resolves hostnames to active tenants. It performs exactly one
// store read per call and keeps no state between calls.
type Resolver struct {
	finder TenantFinder
}

// NewResolver returns a Resolver backed by finder.
func NewResolver(finder TenantFinder) *Resolver {
	return &Resolver{finder: finder}
}

// ResolveTenant returns the active tenant serving host. Store failures are
// returned as-is; everything else that is not a visible tenant yields
// ErrTenantNotFound.
func (r *Resolver) ResolveTenant(ctx context.Context, host string) (*model.Tenant, error) {
	key := NormalizeHost(host)
	if key == "" {
		return nil, ErrTenantNotFound
	}
	tenant, err := r.finder.FindByDomainOrSubdomain(ctx, key)
	if err != nil {
		return nil, err
	}
	if tenant == nil || !tenant.IsActive {
		return nil, ErrTenantNotFound
	}
	return tenant, nil
}

// NormalizeHost strips the port and trailing dot from a Host header value
// and lower-cases it.
func NormalizeHost(host string) string {
	host = strings.TrimSpace(host)
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	} else if strings.HasPrefix(host, "[") && strings.HasSuffix(host, "]") {
		host = host[1 : len(host)-1]
	}
	host = strings.TrimSuffix(host, ".")
	return strings.ToLower(host)
}

// NormalizePath gives path a leading slash and drops trailing slashes,
// except for the root path itself.
func NormalizePath(path string) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	for len(path) > 1 && strings.HasSuffix(path, "/") {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}
