package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/teresa-solution/site-builder-service/internal/model"
)

// PostgresStore keeps each tenant as a jsonb document row. Domain and
// subdomain are mirrored into plain columns for lookup.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates the connection pool. Connections are established
// on first use.
func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, wrap("parse dsn", err)
	}
	config.MaxConns = 20
	config.MinConns = 0
	config.MaxConnLifetime = 30 * time.Minute
	config.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, wrap("connect", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) Ping(ctx context.Context) error {
	return wrap("ping", s.pool.Ping(ctx))
}

const selectTenant = `SELECT id::text, document, created_at, updated_at FROM tenants`

func (s *PostgresStore) FindAll(ctx context.Context) ([]model.Tenant, error) {
	rows, err := s.pool.Query(ctx, selectTenant+` ORDER BY created_at`)
	if err != nil {
		return nil, wrap("find all", err)
	}
	defer rows.Close()

	tenants := []model.Tenant{}
	for rows.Next() {
		tenant, err := scanTenant(rows)
		if err != nil {
			return nil, wrap("find all", err)
		}
		tenants = append(tenants, *tenant)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("find all", err)
	}
	return tenants, nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id string) (*model.Tenant, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}
	return s.queryOne(ctx, "find by id", selectTenant+` WHERE id = $1`, uid)
}

func (s *PostgresStore) FindByDomainOrSubdomain(ctx context.Context, key string) (*model.Tenant, error) {
	query := selectTenant + ` WHERE domain = $1 OR subdomain = $1 ORDER BY created_at LIMIT 1`
	return s.queryOne(ctx, "find by domain", query, key)
}

func (s *PostgresStore) queryOne(ctx context.Context, op, query string, arg any) (*model.Tenant, error) {
	tenant, err := scanTenant(s.pool.QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap(op, err)
	}
	return tenant, nil
}

func (s *PostgresStore) Insert(ctx context.Context, tenant *model.Tenant) (string, error) {
	id := uuid.New()
	ts := now()
	stored := *tenant
	stored.ID = id.String()
	stored.CreatedAt = ts
	stored.UpdatedAt = ts
	stored.Normalize()

	doc, err := json.Marshal(&stored)
	if err != nil {
		return "", wrap("insert", err)
	}
	query := `INSERT INTO tenants (id, domain, subdomain, document, created_at, updated_at)
              VALUES ($1, $2, $3, $4, $5, $6)`
	if _, err := s.pool.Exec(ctx, query, id, stored.Domain, stored.Subdomain, doc, stored.CreatedAt, stored.UpdatedAt); err != nil {
		return "", wrap("insert", err)
	}
	*tenant = stored
	return stored.ID, nil
}

// UpdatePartial locks the row for the read-merge-write so concurrent patches
// of different fields do not overwrite each other.
func (s *PostgresStore) UpdatePartial(ctx context.Context, id string, patch model.TenantPatch) (bool, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return false, nil
	}
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return false, wrap("update", err)
	}
	defer tx.Rollback(ctx)

	tenant, err := scanTenant(tx.QueryRow(ctx, selectTenant+` WHERE id = $1 FOR UPDATE`, uid))
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, wrap("update", err)
	}

	patch.Apply(tenant, now())
	doc, err := json.Marshal(tenant)
	if err != nil {
		return false, wrap("update", err)
	}
	query := `UPDATE tenants SET domain = $2, subdomain = $3, document = $4, updated_at = $5 WHERE id = $1`
	if _, err := tx.Exec(ctx, query, uid, tenant.Domain, tenant.Subdomain, doc, tenant.UpdatedAt); err != nil {
		return false, wrap("update", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return false, wrap("update", err)
	}
	return true, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) (bool, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return false, nil
	}
	tag, err := s.pool.Exec(ctx, `DELETE FROM tenants WHERE id = $1`, uid)
	if err != nil {
		return false, wrap("delete", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanTenant(row pgx.Row) (*model.Tenant, error) {
	var (
		id        string
		doc       []byte
		createdAt time.Time
		updatedAt time.Time
	)
	if err := row.Scan(&id, &doc, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	tenant := &model.Tenant{}
	if err := json.Unmarshal(doc, tenant); err != nil {
		return nil, err
	}
	tenant.ID = id
	tenant.CreatedAt = createdAt.UTC()
	tenant.UpdatedAt = updatedAt.UTC()
	tenant.Normalize()
	return tenant, nil
}
