package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"
)

// Store backends
const (
	BackendBolt     = "bolt"
	BackendMongo    = "mongo"
	BackendPostgres = "postgres"
)

// EnvPrefix prefixes every environment variable that overrides a flag default.
const EnvPrefix = "SITEBUILDER_"

// DatabaseConfig holds the Postgres connection settings.
type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// RedisConfig holds the settings of the optional mutation lock backend.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Config is the process configuration of the site builder service.
type Config struct {
	Backend       string
	MongoURI      string
	MongoDatabase string
	BoltPath      string
	Database      DatabaseConfig
	Redis         RedisConfig
	LockTTL       time.Duration
	HTTPAddr      string
	GRPCPort      int
	LogLevel      string
	LogFormat     string
	Migrations    string

	// Args holds the positional arguments left after the flags.
	Args []string
}

// PostgresDSN composes the Postgres connection string.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host, c.Database.Port, c.Database.User, c.Database.Password, c.Database.Name, c.Database.SSLMode)
}

// Validate checks the settings that cannot be defaulted.
func (c *Config) Validate() error {
	switch c.Backend {
	case BackendBolt:
		if c.BoltPath == "" {
			return fmt.Errorf("bolt-path is required for the %s backend", c.Backend)
		}
	case BackendMongo:
		if c.MongoURI == "" || c.MongoDatabase == "" {
			return fmt.Errorf("mongo-uri and mongo-db are required for the %s backend", c.Backend)
		}
	case BackendPostgres:
		if c.Database.Host == "" || c.Database.Name == "" {
			return fmt.Errorf("db-host and db-name are required for the %s backend", c.Backend)
		}
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	if c.LockTTL <= 0 {
		return fmt.Errorf("lock-ttl must be positive")
	}
	return nil
}

// Load parses args (without the program name). Every flag defaults to the
// matching SITEBUILDER_* environment variable when it is set.
func Load(name string, args []string) (*Config, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	cfg := &Config{}

	fs.StringVar(&cfg.Backend, "backend", envString("BACKEND", BackendBolt), "Tenant store backend (bolt, mongo, postgres)")
	fs.StringVar(&cfg.MongoURI, "mongo-uri", envString("MONGO_URI", "mongodb://localhost:27017"), "MongoDB connection URI")
	fs.StringVar(&cfg.MongoDatabase, "mongo-db", envString("MONGO_DB", "sitebuilder"), "MongoDB database name")
	fs.StringVar(&cfg.BoltPath, "bolt-path", envString("BOLT_PATH", "sitebuilder.db"), "bbolt database file")
	fs.StringVar(&cfg.Database.Host, "db-host", envString("DB_HOST", "localhost"), "Database host")
	fs.IntVar(&cfg.Database.Port, "db-port", envInt("DB_PORT", 5432), "Database port")
	fs.StringVar(&cfg.Database.User, "db-user", envString("DB_USER", "admin"), "Database user")
	fs.StringVar(&cfg.Database.Password, "db-pass", envString("DB_PASS", "securepassword"), "Database password")
	fs.StringVar(&cfg.Database.Name, "db-name", envString("DB_NAME", "site_builder"), "Database name")
	fs.StringVar(&cfg.Database.SSLMode, "db-sslmode", envString("DB_SSLMODE", "disable"), "Database sslmode")
	fs.StringVar(&cfg.Redis.Addr, "redis-addr", envString("REDIS_ADDR", ""), "Redis address for tenant mutation locks (empty: in-process locks)")
	fs.StringVar(&cfg.Redis.Password, "redis-pass", envString("REDIS_PASS", ""), "Redis password")
	fs.IntVar(&cfg.Redis.DB, "redis-db", envInt("REDIS_DB", 0), "Redis database")
	fs.DurationVar(&cfg.LockTTL, "lock-ttl", envDuration("LOCK_TTL", 5*time.Second), "Tenant mutation lock expiry")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", envString("HTTP_ADDR", ":8080"), "HTTP listen address")
	fs.IntVar(&cfg.GRPCPort, "grpc-port", envInt("GRPC_PORT", 50051), "Port gRPC health server")
	fs.StringVar(&cfg.LogLevel, "log-level", envString("LOG_LEVEL", "info"), "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", envString("LOG_FORMAT", "console"), "Log format (console, json)")
	fs.StringVar(&cfg.Migrations, "migrations", envString("MIGRATIONS", "file://scripts/migrations"), "Migration source URL")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	cfg.Args = fs.Args()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func envString(key, def string) string {
	if v, ok := os.LookupEnv(EnvPrefix + key); ok {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v, ok := os.LookupEnv(EnvPrefix + key); ok {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(EnvPrefix + key); ok {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
