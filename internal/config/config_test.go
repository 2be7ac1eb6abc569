package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("server", nil)
	require.NoError(t, err)

	assert.Equal(t, BackendBolt, cfg.Backend)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, 50051, cfg.GRPCPort)
	assert.Equal(t, 5*time.Second, cfg.LockTTL)
	assert.Equal(t, "host=localhost port=5432 user=admin password=securepassword dbname=site_builder sslmode=disable", cfg.PostgresDSN())
}

func TestLoad_EnvOverridesDefaultsAndFlagsOverrideEnv(t *testing.T) {
	t.Setenv("SITEBUILDER_BACKEND", "mongo")
	t.Setenv("SITEBUILDER_MONGO_DB", "sites")
	t.Setenv("SITEBUILDER_DB_PORT", "6543")
	t.Setenv("SITEBUILDER_LOCK_TTL", "2s")

	cfg, err := Load("server", []string{"-mongo-db", "override"})
	require.NoError(t, err)

	assert.Equal(t, BackendMongo, cfg.Backend)
	assert.Equal(t, "override", cfg.MongoDatabase)
	assert.Equal(t, 6543, cfg.Database.Port)
	assert.Equal(t, 2*time.Second, cfg.LockTTL)
}

func TestLoad_Invalid(t *testing.T) {
	_, err := Load("server", []string{"-backend", "sqlite"})
	assert.Error(t, err)

	_, err = Load("server", []string{"-backend", "bolt", "-bolt-path", ""})
	assert.Error(t, err)

	_, err = Load("server", []string{"-lock-ttl", "0s"})
	assert.Error(t, err)
}

func TestLoad_PositionalArgs(t *testing.T) {
	cfg, err := Load("migrate", []string{"-backend", "postgres", "force", "1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"force", "1"}, cfg.Args)
}
