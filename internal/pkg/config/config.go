package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sethvargo/go-envconfig"
)

const (
	EnvProduction = "production"

	StoreMongo  = "mongo"
	StoreMemory = "memory"
)

// devSecret signs tokens when JWT_SECRET is unset outside production.
const devSecret = "blog-api-development-secret"

var ErrMissingSecret = errors.New("config: JWT_SECRET must be set in production")

type Config struct {
	Port     string `env:"PORT,      default=4000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`
	Store    string `env:"STORE,     default=mongo"`

	Auth    AuthConfig
	Mongo   MongoConfig
	Redis   RedisConfig
	GraphQL GraphQLConfig

	// UsingDevSecret reports that JWT_SECRET was empty and devSecret is in use.
	UsingDevSecret bool
}

type AuthConfig struct {
	JWTSecret   string        `env:"JWT_SECRET"`
	TokenTTL    time.Duration `env:"TOKEN_TTL,    default=24h"`
	BcryptCost  int           `env:"BCRYPT_COST,  default=12"`
	HashWorkers int           `env:"HASH_WORKERS, default=0"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=graphql-blog"`
}

type RedisConfig struct {
	// Addr left empty disables the signup lock.
	Addr     string        `env:"REDIS_ADDR"`
	DB       int           `env:"REDIS_DB,        default=0"`
	PoolSize int           `env:"REDIS_POOL_SIZE, default=10"`
	Timeout  time.Duration `env:"REDIS_TIMEOUT,   default=3s"`
}

type GraphQLConfig struct {
	MaxDepth       int `env:"GRAPHQL_MAX_DEPTH,       default=10"`
	MaxParallelism int `env:"GRAPHQL_MAX_PARALLELISM, default=10"`
}

// IsProduction reports whether ENV is production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, EnvProduction)
}

// Load reads configuration from the process environment.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, envconfig.OsLookuper())
}

// LoadFrom reads configuration through l. Tests pass envconfig.MapLookuper.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: l,
	}); err != nil {
		return nil, fmt.Errorf("config: failed to load configuration: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Auth.JWTSecret == "" {
		if c.IsProduction() {
			return ErrMissingSecret
		}
		c.Auth.JWTSecret = devSecret
		c.UsingDevSecret = true
	}

	switch c.Store {
	case StoreMongo, StoreMemory:
	default:
		return fmt.Errorf("config: STORE must be %q or %q, got %q", StoreMongo, StoreMemory, c.Store)
	}

	if c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("config: TOKEN_TTL must be positive, got %s", c.Auth.TokenTTL)
	}
	return nil
}
