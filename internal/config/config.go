package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	// Database
	DBDriver   string `env:"DB_DRIVER" envDefault:"postgres"`
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"subscriptions"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`
	// DBPath is the SQLite DSN used when DBDriver is "sqlite".
	DBPath string `env:"DB_PATH" envDefault:"subscriptions.db"`

	// JWT verification for the read endpoints
	JWTSecret string `env:"JWT_SECRET"`

	// Server
	Port            string        `env:"PORT" envDefault:"8080"`
	CORSOrigins     string        `env:"CORS_ORIGINS" envDefault:"*"`
	BodyLimit       int           `env:"BODY_LIMIT" envDefault:"4194304"`
	RateLimitMax    int           `env:"RATE_LIMIT_MAX" envDefault:"60"`
	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`

	// Logging
	LogLevel         string `env:"LOG_LEVEL" envDefault:"info"`
	LogRetentionDays int    `env:"LOG_RETENTION_DAYS" envDefault:"30"`

	// Error tracking
	SentryDSN string `env:"SENTRY_DSN"`
	AppEnv    string `env:"APP_ENV" envDefault:"development"`
}

// Load reads an optional .env file and then parses the environment.
func Load() (*Config, error) {
	// A missing .env file is fine; real deployments set the environment directly.
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}
