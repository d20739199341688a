package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Storage  StorageConfig
	Auth     AuthConfig
	Seed     SeedConfig
	Backup   BackupConfig
	App      AppConfig
}

type ServerConfig struct {
	Port            string   `env:"PORT" envDefault:"8080"`
	CORSOrigins     []string `env:"CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
	LoginRatePerMin int      `env:"LOGIN_RATE_PER_MIN" envDefault:"30"`
}

type DatabaseConfig struct {
	DSN      string `env:"DB_DSN"`
	Host     string `env:"DB_HOST" envDefault:"localhost"`
	Port     int    `env:"DB_PORT" envDefault:"5432"`
	User     string `env:"DB_USER" envDefault:"postgres"`
	Password string `env:"DB_PASSWORD"`
	Name     string `env:"DB_NAME" envDefault:"qatrack"`
	MaxConns int    `env:"DB_MAX_CONNS" envDefault:"10"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
}

// StorageConfig selects where the state snapshot lives.
type StorageConfig struct {
	Driver     string `env:"STORAGE_DRIVER" envDefault:"file"`
	Key        string `env:"STORAGE_KEY" envDefault:"projectManagementState"`
	File       string `env:"STORAGE_FILE" envDefault:"data/state.json"`
	SQLitePath string `env:"SQLITE_PATH" envDefault:"data/qatrack.db"`
}

type AuthConfig struct {
	JWTSecret      string        `env:"JWT_SECRET"`
	JWTTTL         time.Duration `env:"JWT_TTL" envDefault:"24h"`
	PasswordScheme string        `env:"PASSWORD_SCHEME" envDefault:"plaintext"`
}

type SeedConfig struct {
	File         string `env:"SEED_FILE"`
	DemoProgress bool   `env:"SEED_DEMO_PROGRESS" envDefault:"false"`
}

type BackupConfig struct {
	Schedule string `env:"BACKUP_SCHEDULE"`
	Dir      string `env:"BACKUP_DIR" envDefault:"data/backups"`
}

type AppConfig struct {
	Environment string `env:"APP_ENV" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	Version     string `env:"APP_VERSION" envDefault:"1.0.0"`
}

const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{}
	if err := ParseEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ParseEnv fills target from environment variables.
func ParseEnv(target any) error {
	if err := env.Parse(target); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	switch c.Storage.Driver {
	case DriverMemory:
	case DriverFile:
		if c.Storage.File == "" {
			return fmt.Errorf("STORAGE_FILE is required for the file driver")
		}
	case DriverRedis:
		if c.Redis.Addr == "" {
			return fmt.Errorf("REDIS_ADDR is required for the redis driver")
		}
	case DriverPostgres:
		if c.Database.DSN == "" && c.Database.Host == "" {
			return fmt.Errorf("DB_DSN or DB_HOST is required for the postgres driver")
		}
	case DriverSQLite:
		if c.Storage.SQLitePath == "" {
			return fmt.Errorf("SQLITE_PATH is required for the sqlite driver")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.Storage.Driver)
	}

	switch c.Auth.PasswordScheme {
	case "plaintext", "bcrypt":
	default:
		return fmt.Errorf("unknown PASSWORD_SCHEME %q", c.Auth.PasswordScheme)
	}

	if c.Auth.JWTSecret == "" && c.IsProduction() {
		return fmt.Errorf("JWT_SECRET is required in production")
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}
