// Package config loads app config from the environment and an optional .env file using Viper.
package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// DevJWTSecret signs tokens outside production when JWT_SECRET is unset.
const DevJWTSecret = "punch-dev-secret-change-me"

// Config holds application configuration loaded from the environment.
type Config struct {
	// Env is the application environment ("development", "production").
	Env string `mapstructure:"APP_ENV"`
	// HTTPAddr is the address the API listens on (e.g. :4000).
	HTTPAddr string `mapstructure:"HTTP_ADDR"`
	// DatabaseURL is a Postgres DSN. When empty the SQLite file at DBPath is used.
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	// DBPath is the SQLite database file; defaults to ~/.punch/punch.db.
	DBPath string `mapstructure:"DB_PATH"`
	// DBLogLevel is the gorm log level: silent, error, warn or info.
	DBLogLevel string `mapstructure:"DB_LOG_LEVEL"`
	// JWTSecret is the HS256 signing key. Required when Env is production.
	JWTSecret string `mapstructure:"JWT_SECRET"`
	// JWTTTL is the token lifetime (e.g. "168h").
	JWTTTL string `mapstructure:"JWT_TTL"`
	// BcryptCost is the bcrypt cost factor (4–31).
	BcryptCost int `mapstructure:"BCRYPT_COST"`
	// CORSOrigins is a comma-separated list of allowed browser origins.
	CORSOrigins string `mapstructure:"CORS_ORIGINS"`
	// DefaultHourlyRate applies to sessions without a job rate.
	DefaultHourlyRate float64 `mapstructure:"DEFAULT_HOURLY_RATE"`
	// User is the username or email the CLI acts as.
	User string `mapstructure:"PUNCH_USER"`
}

// Load reads .env (if present), then builds and validates Config from the environment.
func Load() (*Config, error) {
	return loadFrom(".env")
}

func loadFrom(envFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigFile(envFile)
	v.SetConfigType("env")
	_ = v.ReadInConfig() // missing .env is fine

	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("HTTP_ADDR", ":4000")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_PATH", "")
	v.SetDefault("DB_LOG_LEVEL", "warn")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_TTL", "168h") // 7d
	v.SetDefault("BCRYPT_COST", 10)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("DEFAULT_HOURLY_RATE", 18.0)
	v.SetDefault("PUNCH_USER", "")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.HTTPAddr == "" {
		return nil, errors.New("config: HTTP_ADDR must be set")
	}
	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			return nil, errors.New("config: JWT_SECRET must be set when APP_ENV=production")
		}
		cfg.JWTSecret = DevJWTSecret
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = 10
	}
	if cfg.BcryptCost < 4 || cfg.BcryptCost > 31 {
		return nil, errors.New("config: BCRYPT_COST must be between 4 and 31")
	}
	if cfg.DefaultHourlyRate <= 0 {
		return nil, errors.New("config: DEFAULT_HOURLY_RATE must be positive")
	}
	switch strings.ToLower(cfg.DBLogLevel) {
	case "silent", "error", "warn", "info":
	default:
		return nil, errors.New("config: DB_LOG_LEVEL must be silent, error, warn or info")
	}
	if cfg.DatabaseURL == "" && cfg.DBPath == "" {
		path, err := defaultDBPath()
		if err != nil {
			return nil, err
		}
		cfg.DBPath = path
	}

	return &cfg, nil
}

// IsProduction reports whether APP_ENV is production.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// TokenTTL parses JWTTTL. Returns 168h if unset or invalid.
func (c *Config) TokenTTL() time.Duration {
	d, err := time.ParseDuration(c.JWTTTL)
	if err != nil || d <= 0 {
		return 168 * time.Hour
	}
	return d
}

// CORSOriginList returns the allowed origins without trailing slashes.
func (c *Config) CORSOriginList() []string {
	if c == nil || c.CORSOrigins == "" {
		return nil
	}
	var out []string
	for _, p := range strings.Split(c.CORSOrigins, ",") {
		if o := strings.TrimRight(strings.TrimSpace(p), "/"); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// UsesPostgres reports whether DATABASE_URL selects Postgres over SQLite.
func (c *Config) UsesPostgres() bool {
	return c.DatabaseURL != ""
}

// defaultDBPath returns the path to the SQLite database file
func defaultDBPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".punch", "punch.db"), nil
}
