package config

import (
	"fmt"  // Error wrapping
	"time" // Durations for timeouts and TTLs

	"github.com/caarlos0/env/v10" // Struct-tag based environment parsing
	"github.com/joho/godotenv"    // For loading .env files
	"github.com/shopspring/decimal"
)

// Config holds the application configuration
type Config struct {
	AppPort string `env:"APP_PORT" envDefault:"8080"` // Application port
	IsProd  bool   `env:"IS_PROD"`                    // Is production environment

	DBDriver   string `env:"DB_DRIVER" envDefault:"mysql"`        // mysql, postgres or sqlite
	DBUser     string `env:"DB_USER"`                             // Database user
	DBPassword string `env:"DB_PASSWORD"`                         // Database password
	DBHost     string `env:"DB_HOST" envDefault:"127.0.0.1"`      // Database host
	DBPort     string `env:"DB_PORT" envDefault:"3306"`           // Database port
	DBName     string `env:"DB_NAME" envDefault:"finance"`        // Database name
	SQLitePath string `env:"SQLITE_PATH" envDefault:"finance.db"` // SQLite file when DB_DRIVER=sqlite

	RedisAddr string `env:"REDIS_ADDR" envDefault:"127.0.0.1:6379"` // Redis server address
	RedisPass string `env:"REDIS_PASS"`                             // Redis password
	RedisDB   int    `env:"REDIS_DB"`                               // Redis database number

	JWTSecret  string        `env:"JWT_SECRET,required,notEmpty"` // Session token signing key
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"24h"` // Session lifetime

	APIKey        string        `env:"API_KEY,required,notEmpty"`       // Quote provider API key
	QuoteProvider string        `env:"QUOTE_PROVIDER" envDefault:"iex"` // iex, alphavantage or yahoo
	QuoteBaseURL  string        `env:"QUOTE_BASE_URL"`                  // Override for the provider endpoint
	QuoteTimeout  time.Duration `env:"QUOTE_TIMEOUT" envDefault:"10s"`  // Per-lookup HTTP timeout

	InitialCash decimal.Decimal `env:"INITIAL_CASH" envDefault:"10000"` // Cash granted at registration
}

// LoadConfig loads configuration from the environment, reading .env first if present.
// A missing API_KEY or JWT_SECRET is an error.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load() // Load .env file if present
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.InitialCash.IsNegative() {
		return nil, fmt.Errorf("load config: INITIAL_CASH must not be negative")
	}
	return cfg, nil
}

// MySQLDSN builds the Data Source Name for the MySQL driver
func (c *Config) MySQLDSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true"
}

// PostgresDSN builds the connection string for the postgres driver
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}
