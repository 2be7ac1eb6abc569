package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/teresa-solution/site-builder-service/internal/model"
	bolt "go.etcd.io/bbolt"
)

var tenantsBucket = []byte("tenants")

// BoltStore keeps tenant documents as JSON values in a single bbolt file,
// keyed by a generated uuid. Every write runs in its own transaction.
type BoltStore struct {
	db *bolt.DB
}

// NewBoltStore opens (or creates) the database file at path.
func NewBoltStore(path string) (*BoltStore, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, wrap("open", err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(tenantsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, wrap("open", err)
	}
	return &BoltStore{db: db}, nil
}

func (s *BoltStore) Close() error {
	return s.db.Close()
}

func (s *BoltStore) Ping(_ context.Context) error {
	return wrap("ping", s.db.View(func(tx *bolt.Tx) error { return nil }))
}

func (s *BoltStore) FindAll(_ context.Context) ([]model.Tenant, error) {
	tenants := []model.Tenant{}
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(tenantsBucket).ForEach(func(k, v []byte) error {
			tenant, err := decodeBolt(k, v)
			if err != nil {
				return err
			}
			tenants = append(tenants, *tenant)
			return nil
		})
	})
	if err != nil {
		return nil, wrap("find all", err)
	}
	return tenants, nil
}

func (s *BoltStore) FindByID(_ context.Context, id string) (*model.Tenant, error) {
	var tenant *model.Tenant
	err := s.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket(tenantsBucket).Get([]byte(id))
		if v == nil {
			return nil
		}
		var err error
		tenant, err = decodeBolt([]byte(id), v)
		return err
	})
	if err != nil {
		return nil, wrap("find by id", err)
	}
	return tenant, nil
}

func (s *BoltStore) FindByDomainOrSubdomain(_ context.Context, key string) (*model.Tenant, error) {
	var found *model.Tenant
	err := s.db.View(func(tx *bolt.Tx) error {
		c := tx.Bucket(tenantsBucket).Cursor()
		for k, v := c.First(); k != nil; k, v = c.Next() {
			tenant, err := decodeBolt(k, v)
			if err != nil {
				return err
			}
			if tenant.Domain == key || tenant.Subdomain == key {
				found = tenant
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, wrap("find by domain", err)
	}
	return found, nil
}

func (s *BoltStore) Insert(_ context.Context, tenant *model.Tenant) (string, error) {
	id := uuid.NewString()
	ts := now()
	stored := *tenant
	stored.ID = id
	stored.CreatedAt = ts
	stored.UpdatedAt = ts
	stored.Normalize()

	err := s.db.Update(func(tx *bolt.Tx) error {
		data, err := json.Marshal(&stored)
		if err != nil {
			return err
		}
		return tx.Bucket(tenantsBucket).Put([]byte(id), data)
	})
	if err != nil {
		return "", wrap("insert", err)
	}
	*tenant = stored
	return id, nil
}

func (s *BoltStore) UpdatePartial(_ context.Context, id string, patch model.TenantPatch) (bool, error) {
	updated := false
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(tenantsBucket)
		v := b.Get([]byte(id))
		if v == nil {
			return nil
		}
		tenant, err := decodeBolt([]byte(id), v)
		if err != nil {
			return err
		}
		patch.Apply(tenant, now())
		data, err := json.Marshal(tenant)
		if err != nil {
			return err
		}
		updated = true
		return b.Put([]byte(id), data)
	})
	if err != nil {
		return false, wrap("update", err)
	}
	return updated, nil
}

func (s *BoltStore) Delete(_ context.Context, id string) (bool, error) {
	deleted := false
	err := s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(tenantsBucket)
		if b.Get([]byte(id)) == nil {
			return nil
		}
		deleted = true
		return b.Delete([]byte(id))
	})
	if err != nil {
		return false, wrap("delete", err)
	}
	return deleted, nil
}

func decodeBolt(k, v []byte) (*model.Tenant, error) {
	tenant := &model.Tenant{}
	if err := json.Unmarshal(v, tenant); err != nil {
		return nil, err
	}
	tenant.ID = string(k)
	tenant.Normalize()
	return tenant, nil
}
