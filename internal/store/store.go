package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/teresa-solution/site-builder-service/internal/config"
	"github.com/teresa-solution/site-builder-service/internal/model"
)

// ErrStore marks connectivity and serialization failures of a TenantStore.
var ErrStore = errors.New("tenant store failure")

// Error wraps a backend failure with the store operation that produced it.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return fmt.Sprintf("tenant store %s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Is makes every Error match ErrStore.
func (e *Error) Is(target error) bool { return target == ErrStore }

func wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Op: op, Err: err}
}

// TenantStore persists tenant documents. Lookups return (nil, nil) when no
// document matches; malformed identifiers are treated as absent.
type TenantStore interface {
	FindAll(ctx context.Context) ([]model.Tenant, error)
	FindByID(ctx context.Context, id string) (*model.Tenant, error)
	// FindByDomainOrSubdomain returns the first tenant whose domain or
	// subdomain equals key.
	FindByDomainOrSubdomain(ctx context.Context, key string) (*model.Tenant, error)
	// Insert assigns the identifier and timestamps of tenant and stores it.
	Insert(ctx context.Context, tenant *model.Tenant) (string, error)
	// UpdatePartial merges the set fields of patch into the stored document
	// and refreshes updatedAt. It reports whether the document existed.
	UpdatePartial(ctx context.Context, id string, patch model.TenantPatch) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
	Ping(ctx context.Context) error
	Close() error
}

// Open connects the backend selected by cfg.
func Open(ctx context.Context, cfg *config.Config) (TenantStore, error) {
	switch cfg.Backend {
	case config.BackendBolt:
		return NewBoltStore(cfg.BoltPath)
	case config.BackendMongo:
		return NewMongoStore(ctx, cfg.MongoURI, cfg.MongoDatabase)
	case config.BackendPostgres:
		return NewPostgresStore(ctx, cfg.PostgresDSN())
	default:
		return nil, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
}

// now truncates to milliseconds, the precision every backend round-trips.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
