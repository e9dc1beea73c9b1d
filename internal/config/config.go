package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Store drivers accepted by STORE_DRIVER.
const (
	DriverMongo  = "mongo"
	DriverMySQL  = "mysql"
	DriverMemory = "memory"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string `env:"PORT" envDefault:"3000" validate:"required,numeric"`

	StoreDriver string `env:"STORE_DRIVER" envDefault:"mongo" validate:"oneof=mongo mysql memory"`
	MongoURI    string `env:"MONGO_URI" envDefault:"mongodb://localhost/exercise-tracker" validate:"required_if=StoreDriver mongo"`
	MongoDB     string `env:"MONGO_DB" envDefault:"exercise-tracker" validate:"required_if=StoreDriver mongo"`
	MySQLDSN    string `env:"MYSQL_DSN" envDefault:"user:password@tcp(localhost:3306)/exercise_tracker?charset=utf8mb4&parseTime=True&loc=UTC" validate:"required_if=StoreDriver mysql"`
	DBLogLevel  string `env:"DB_LOG_LEVEL" envDefault:"warn" validate:"oneof=silent error warn info"`

	// Empty RedisAddr disables the user cache.
	RedisAddr    string        `env:"REDIS_ADDR"`
	RedisPass    string        `env:"REDIS_PASSWORD"`
	RedisDB      int           `env:"REDIS_DB" envDefault:"0" validate:"gte=0"`
	UserCacheTTL time.Duration `env:"USER_CACHE_TTL" envDefault:"5m"`

	// SoftNotFound reports a missing user as 200 {"error": ...} instead of 404.
	SoftNotFound bool `env:"SOFT_NOT_FOUND" envDefault:"true"`

	CORSAllowedOrigins string        `env:"CORS_ALLOWED_ORIGINS" envDefault:"*"`
	ShutdownTimeout    time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
	SwaggerHost        string        `env:"SWAGGER_HOST"`
}

// Load reads an optional .env file, parses the environment and validates the result.
func Load() (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// AllowedOrigins splits CORSAllowedOrigins into a list.
func (c *Config) AllowedOrigins() []string {
	parts := strings.Split(c.CORSAllowedOrigins, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}
