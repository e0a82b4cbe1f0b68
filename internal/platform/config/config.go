// Package config loads process configuration from environment variables.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Store backends for volunteer records.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// Config is the full process configuration.
type Config struct {
	Server   Server
	Auth     Auth
	Database Database
	Redis    RedisConfig
	Kafka    Kafka
	Tracing  Tracing
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string        `env:"HMC_ADDR" envDefault:":8080"`
	LogLevel        string        `env:"HMC_LOG_LEVEL" envDefault:"info"`
	LogFormat       string        `env:"HMC_LOG_FORMAT" envDefault:"json"`
	CatalogPath     string        `env:"HMC_CATALOG_PATH"`
	StoreBackend    string        `env:"HMC_STORE_BACKEND" envDefault:"memory"`
	ImportWorkers   int           `env:"HMC_IMPORT_WORKERS" envDefault:"8"`
	ShutdownTimeout time.Duration `env:"HMC_SHUTDOWN_TIMEOUT" envDefault:"10s"`
	ReadTimeout     time.Duration `env:"HMC_READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"HMC_WRITE_TIMEOUT" envDefault:"30s"`
}

// Auth configures bearer token validation.
type Auth struct {
	JWTSigningKey string `env:"HMC_JWT_SIGNING_KEY" envDefault:"dev-secret-key-change-in-production"`
	Issuer        string `env:"HMC_JWT_ISSUER" envDefault:"hmc-volunteer-portal"`
	Audience      string `env:"HMC_JWT_AUDIENCE" envDefault:"hmc-clearance"`
}

// Database configures the Postgres connection.
type Database struct {
	URL          string `env:"HMC_DATABASE_URL"`
	MaxOpenConns int    `env:"HMC_DATABASE_MAX_OPEN_CONNS" envDefault:"10"`
}

// RedisConfig configures the Redis client.
type RedisConfig struct {
	URL          string        `env:"HMC_REDIS_URL"`
	PoolSize     int           `env:"HMC_REDIS_POOL_SIZE" envDefault:"10"`
	MinIdleConns int           `env:"HMC_REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout  time.Duration `env:"HMC_REDIS_DIAL_TIMEOUT" envDefault:"5s"`
	ReadTimeout  time.Duration `env:"HMC_REDIS_READ_TIMEOUT" envDefault:"3s"`
	WriteTimeout time.Duration `env:"HMC_REDIS_WRITE_TIMEOUT" envDefault:"3s"`
}

// Kafka configures the promotion event producer. An empty broker list
// disables publishing.
type Kafka struct {
	Brokers        []string `env:"HMC_KAFKA_BROKERS" envSeparator:","`
	PromotionTopic string   `env:"HMC_KAFKA_PROMOTION_TOPIC" envDefault:"hmc.volunteer.promotions"`
	Partitions     int32    `env:"HMC_KAFKA_PARTITIONS" envDefault:"3"`
	Replication    int16    `env:"HMC_KAFKA_REPLICATION" envDefault:"1"`
}

// Tracing configures the OTLP exporter. An empty endpoint disables tracing.
type Tracing struct {
	Endpoint    string `env:"HMC_OTEL_ENDPOINT"`
	ServiceName string `env:"HMC_OTEL_SERVICE_NAME" envDefault:"hmc-clearance"`
}

// FromEnv parses the environment into a Config and checks the values that
// env tags cannot express.
func FromEnv() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	switch c.Server.StoreBackend {
	case BackendMemory:
	case BackendPostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("HMC_DATABASE_URL is required for the postgres store backend")
		}
	case BackendRedis:
		if c.Redis.URL == "" {
			return fmt.Errorf("HMC_REDIS_URL is required for the redis store backend")
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.Server.StoreBackend)
	}
	if c.Server.ImportWorkers < 1 {
		return fmt.Errorf("HMC_IMPORT_WORKERS must be positive, got %d", c.Server.ImportWorkers)
	}
	return nil
}
