package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the server settings. Values come from an optional YAML file
// and are overridden by environment variables (a .env file is loaded first).
type Config struct {
	Port        string `yaml:"port"`
	GinMode     string `yaml:"gin_mode"`
	DBDriver    string `yaml:"db_driver"`    // sqlite, postgres
	DatabaseURL string `yaml:"database_url"` // file path for sqlite, DSN for postgres
	LogLevel    string `yaml:"log_level"`

	CORSOrigins []string `yaml:"cors_origins"`

	// EditorPasswordHash is a bcrypt hash. When empty, writes are open.
	EditorPasswordHash string `yaml:"editor_password_hash"`
	// JWTSecret signs editor sessions. It has no default and must be set
	// whenever EditorPasswordHash is.
	JWTSecret string `yaml:"jwt_secret"`
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		Port:        "8080",
		DBDriver:    DriverSQLite,
		DatabaseURL: "halal_restaurants.db",
		LogLevel:    "info",
		CORSOrigins: []string{"*"},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load builds the configuration. path may be empty; a missing .env file is
// not an error.
func Load(path string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.GinMode = getEnv("GIN_MODE", cfg.GinMode)
	cfg.DBDriver = getEnv("DB_DRIVER", cfg.DBDriver)
	cfg.DatabaseURL = getEnv("DATABASE_URL", cfg.DatabaseURL)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.EditorPasswordHash = getEnv("EDITOR_PASSWORD_HASH", cfg.EditorPasswordHash)
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	if origins := os.Getenv("CORS_ORIGINS"); origins != "" {
		cfg.CORSOrigins = splitList(origins)
	}

	return cfg, cfg.Validate()
}

// Validate rejects settings the server cannot start with.
func (c Config) Validate() error {
	switch c.DBDriver {
	case DriverSQLite, DriverPostgres:
	default:
		return fmt.Errorf("unsupported db_driver %q (want %s or %s)", c.DBDriver, DriverSQLite, DriverPostgres)
	}
	if c.DatabaseURL == "" {
		return errors.New("database_url must be set")
	}
	if c.EditorPasswordHash != "" && c.JWTSecret == "" {
		return errors.New("jwt_secret is required when editor_password_hash is set")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
