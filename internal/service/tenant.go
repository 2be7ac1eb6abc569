package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/teresa-solution/site-builder-service/internal/catalog"
	"github.com/teresa-solution/site-builder-service/internal/lock"
	"github.com/teresa-solution/site-builder-service/internal/model"
	"github.com/teresa-solution/site-builder-service/internal/monitoring"
	"github.com/teresa-solution/site-builder-service/internal/store"
)

var (
	// ErrTenantNotFound is returned when no tenant has the requested identifier.
	ErrTenantNotFound = fmt.Errorf("tenant %w", model.ErrNotFound)
	// ErrInvalid marks a rejected request body.
	ErrInvalid = errors.New("invalid request")
	// ErrSlugTaken is returned when a page slug is already used by another page.
	ErrSlugTaken = errors.New("slug already in use")
	// ErrTenantExists is returned when a domain or subdomain already serves
	// another tenant.
	ErrTenantExists = errors.New("tenant with this domain or subdomain already exists")
)

// hostsLockKey serializes every write that claims a domain or subdomain.
const hostsLockKey = "hosts"

// TenantService implements the admin operations over tenants and their
// embedded components and pages. Every read-modify-write of a tenant runs
// under that tenant's lock.
type TenantService struct {
	store   store.TenantStore
	catalog *catalog.Catalog
	locker  lock.Locker
	now     func() time.Time
}

func NewTenantService(s store.TenantStore, cat *catalog.Catalog, locker lock.Locker) *TenantService {
	if cat == nil {
		cat = catalog.Default()
	}
	if locker == nil {
		locker = lock.NewLocalLocker()
	}
	return &TenantService{
		store:   s,
		catalog: cat,
		locker:  locker,
		now:     time.Now,
	}
}

// Catalog returns the component catalog used by AddComponent.
func (s *TenantService) Catalog() *catalog.Catalog {
	return s.catalog
}

// ListTenants returns every tenant, in store order.
func (s *TenantService) ListTenants(ctx context.Context) ([]model.Tenant, error) {
	tenants, err := s.store.FindAll(ctx)
	if err != nil {
		s.storeFailure("find all", err, nil)
		return nil, err
	}
	return tenants, nil
}

// GetTenant returns the tenant with the given identifier, active or not.
func (s *TenantService) GetTenant(ctx context.Context, id string) (*model.Tenant, error) {
	tenant, err := s.store.FindByID(ctx, id)
	if err != nil {
		s.storeFailure("find by id", err, map[string]string{"tenant_id": id})
		return nil, err
	}
	if tenant == nil {
		return nil, ErrTenantNotFound
	}
	return tenant, nil
}

// CreateTenant persists draft with empty collections where unspecified and
// returns it with its assigned identifier.
func (s *TenantService) CreateTenant(ctx context.Context, draft *model.Tenant) (_ *model.Tenant, err error) {
	defer func() { monitoring.RecordMutation("create_tenant", err) }()

	if err := validateTenant(draft.Domain, draft.Subdomain); err != nil {
		return nil, err
	}

	unlock, err := s.locker.Lock(ctx, hostsLockKey)
	if err != nil {
		return nil, err
	}
	defer unlock()
	if err := s.checkHostsFree(ctx, "", draft.Domain, draft.Subdomain); err != nil {
		return nil, err
	}

	draft.Normalize()
	if _, err := s.store.Insert(ctx, draft); err != nil {
		s.storeFailure("insert", err, map[string]string{"subdomain": draft.Subdomain})
		return nil, err
	}
	log.Info().Str("tenant_id", draft.ID).Str("subdomain", draft.Subdomain).Msg("Tenant created")
	return draft, nil
}

// UpdateTenant merges patch into the stored tenant.
func (s *TenantService) UpdateTenant(ctx context.Context, id string, patch model.TenantPatch) (err error) {
	defer func() { monitoring.RecordMutation("update_tenant", err) }()

	if patch.Domain != nil || patch.Subdomain != nil {
		var domain, subdomain string
		if patch.Domain != nil {
			domain = *patch.Domain
		}
		if patch.Subdomain != nil {
			subdomain = *patch.Subdomain
		}
		if err := validateTenant(domain, subdomain); err != nil {
			return err
		}
	}

	unlock, err := s.locker.Lock(ctx, id)
	if err != nil {
		return err
	}
	defer unlock()

	if patch.Domain != nil || patch.Subdomain != nil {
		unlockHosts, err := s.locker.Lock(ctx, hostsLockKey)
		if err != nil {
			return err
		}
		defer unlockHosts()

		var domain, subdomain string
		if patch.Domain != nil {
			domain = *patch.Domain
		}
		if patch.Subdomain != nil {
			subdomain = *patch.Subdomain
		}
		if err := s.checkHostsFree(ctx, id, domain, subdomain); err != nil {
			return err
		}
	}
	return s.updatePartial(ctx, id, patch)
}

// DeleteTenant removes the tenant document.
func (s *TenantService) DeleteTenant(ctx context.Context, id string) (err error) {
	defer func() { monitoring.RecordMutation("delete_tenant", err) }()

	unlock, err := s.locker.Lock(ctx, id)
	if err != nil {
		return err
	}
	defer unlock()

	deleted, err := s.store.Delete(ctx, id)
	if err != nil {
		s.storeFailure("delete", err, map[string]string{"tenant_id": id})
		return err
	}
	if !deleted {
		return ErrTenantNotFound
	}
	log.Info().Str("tenant_id", id).Msg("Tenant deleted")
	return nil
}

// ReplaceComponents overwrites the whole components collection.
func (s *TenantService) ReplaceComponents(ctx context.Context, id string, components []model.ComponentConfig) error {
	if components == nil {
		components = []model.ComponentConfig{}
	}
	return s.UpdateTenant(ctx, id, model.TenantPatch{Components: &components})
}

// ReplacePages overwrites the whole pages collection.
func (s *TenantService) ReplacePages(ctx context.Context, id string, pages []model.PageConfig) error {
	if pages == nil {
		pages = []model.PageConfig{}
	}
	return s.UpdateTenant(ctx, id, model.TenantPatch{Pages: &pages})
}

// SeedDemo inserts the demo tenant unless a tenant with the demo subdomain
// exists. It reports whether a tenant was created.
func (s *TenantService) SeedDemo(ctx context.Context) (*model.Tenant, bool, error) {
	unlock, err := s.locker.Lock(ctx, "seed:"+DemoSubdomain)
	if err != nil {
		return nil, false, err
	}
	defer unlock()

	existing, err := s.store.FindByDomainOrSubdomain(ctx, DemoSubdomain)
	if err != nil {
		s.storeFailure("find by host", err, map[string]string{"host": DemoSubdomain})
		return nil, false, err
	}
	if existing != nil && existing.Subdomain == DemoSubdomain {
		log.Info().Str("tenant_id", existing.ID).Msg("Demo tenant already exists")
		return existing, false, nil
	}

	tenant, err := s.CreateTenant(ctx, demoTenant())
	if err != nil {
		return nil, false, err
	}
	return tenant, true, nil
}

// mutate loads the tenant under its lock, applies fn and persists the patch
// fn returns. An empty patch skips the write.
func (s *TenantService) mutate(ctx context.Context, op, id string, fn func(t *model.Tenant) (model.TenantPatch, error)) (_ *model.Tenant, err error) {
	defer func() { monitoring.RecordMutation(op, err) }()

	unlock, err := s.locker.Lock(ctx, id)
	if err != nil {
		return nil, err
	}
	defer unlock()

	tenant, err := s.GetTenant(ctx, id)
	if err != nil {
		return nil, err
	}
	patch, err := fn(tenant)
	if err != nil {
		return nil, err
	}
	if patch.Empty() {
		return tenant, nil
	}
	if err := s.updatePartial(ctx, id, patch); err != nil {
		return nil, err
	}
	tenant.UpdatedAt = s.now().UTC()
	return tenant, nil
}

func (s *TenantService) updatePartial(ctx context.Context, id string, patch model.TenantPatch) error {
	ok, err := s.store.UpdatePartial(ctx, id, patch)
	if err != nil {
		s.storeFailure("update", err, map[string]string{"tenant_id": id})
		return err
	}
	if !ok {
		return ErrTenantNotFound
	}
	return nil
}

// checkHostsFree fails with ErrTenantExists when any non-empty host already
// resolves to a tenant other than selfID.
func (s *TenantService) checkHostsFree(ctx context.Context, selfID string, hosts ...string) error {
	for _, host := range hosts {
		if host == "" {
			continue
		}
		existing, err := s.store.FindByDomainOrSubdomain(ctx, host)
		if err != nil {
			s.storeFailure("find by host", err, map[string]string{"host": host})
			return err
		}
		if existing != nil && existing.ID != selfID {
			return fmt.Errorf("%w: %s", ErrTenantExists, host)
		}
	}
	return nil
}

func (s *TenantService) storeFailure(op string, err error, labels map[string]string) {
	if errors.Is(err, store.ErrStore) {
		monitoring.StoreAlert(op, err, labels)
		return
	}
	log.Error().Err(err).Str("op", op).Msg("Tenant store call failed")
}

func validateTenant(domain, subdomain string) error {
	if subdomain != "" && !isValidSubdomain(subdomain) {
		return fmt.Errorf("%w: invalid subdomain format", ErrInvalid)
	}
	if domain != "" && !isValidDomain(domain) {
		return fmt.Errorf("%w: invalid domain format", ErrInvalid)
	}
	return nil
}

// isValidSubdomain checks the subdomain against ^[a-z0-9]([a-z0-9\-]{0,61}[a-z0-9])?$
func isValidSubdomain(subdomain string) bool {
	if len(subdomain) < 1 || len(subdomain) > 63 {
		return false
	}
	for i, r := range subdomain {
		alnum := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
		if !alnum && (r != '-' || i == 0 || i == len(subdomain)-1) {
			return false
		}
	}
	return true
}

// isValidDomain accepts dot-separated lower-case labels, the form hosts are
// matched in after normalization.
func isValidDomain(domain string) bool {
	if len(domain) > 253 {
		return false
	}
	start := 0
	for i := 0; i <= len(domain); i++ {
		if i == len(domain) || domain[i] == '.' {
			if !isValidSubdomain(domain[start:i]) {
				return false
			}
			start = i + 1
		}
	}
	return true
}
