// Package config loads per-service configuration from environment
// variables. JWT_SECRET is mandatory everywhere: there is no fallback
// secret, a blank value refuses to start.
package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=order_system"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// UsersConfig configures the identity service.
type UsersConfig struct {
	Port     string `env:"PORT,      default=8001"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWTSecret string        `env:"JWT_SECRET, required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,  default=24h"`

	// Store selects the repository backend: "memory" (default) or "mongo".
	Store string `env:"STORE, default=memory"`
	Mongo MongoConfig

	// AdminEmail/AdminPassword provision the bootstrap admin account when
	// both are set.
	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
	AdminName     string `env:"ADMIN_NAME, default=Administrator"`
}

// OrdersConfig configures the order service.
type OrdersConfig struct {
	Port     string `env:"PORT,      default=8002"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWTSecret string        `env:"JWT_SECRET, required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,  default=24h"`

	Store string `env:"STORE, default=memory"`
	Mongo MongoConfig

	// EventWorkers sizes the domain-event dispatcher pool.
	EventWorkers int `env:"EVENT_WORKERS, default=4"`
}

// GatewayConfig configures the edge gateway.
type GatewayConfig struct {
	Port     string `env:"PORT,      default=8000"`
	Env      string `env:"ENV,       default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	JWTSecret string `env:"JWT_SECRET, required"`

	UsersServiceURL  string `env:"USERS_SERVICE_URL,  default=http://localhost:8001"`
	OrdersServiceURL string `env:"ORDERS_SERVICE_URL, default=http://localhost:8002"`

	// RateLimitEnabled toggles the Redis-backed limiter; when disabled the
	// gateway does not require Redis at all.
	RateLimitEnabled bool          `env:"RATE_LIMIT_ENABLED, default=true"`
	RateLimit        int           `env:"RATE_LIMIT,         default=100"`
	RateWindow       time.Duration `env:"RATE_WINDOW,        default=1m"`
	Redis            RedisConfig
}

func LoadUsers(ctx context.Context) (*UsersConfig, error) {
	var cfg UsersConfig
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func LoadOrders(ctx context.Context) (*OrdersConfig, error) {
	var cfg OrdersConfig
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

func LoadGateway(ctx context.Context) (*GatewayConfig, error) {
	var cfg GatewayConfig
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
