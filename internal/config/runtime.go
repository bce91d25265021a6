// Package config provides centralized configuration for Mitraa runtime values.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
)

// MemoryDatabase selects an in-memory store when used as the database path.
const MemoryDatabase = ":memory:"

// RuntimeConfig holds all runtime configuration values.
type RuntimeConfig struct {
	// Storage configuration
	Storage StorageConfig

	// Redis configuration, used instead of the local database when Addr is set
	Redis RedisConfig

	// Challenge defaults and limits
	Challenge ChallengeConfig

	// Identity configuration
	Identity IdentityConfig

	// Dashboard configuration
	Dashboard DashboardConfig
}

// StorageConfig holds storage-related configuration.
type StorageConfig struct {
	// Database is the Badger directory, or ":memory:".
	// Default: "" (resolved to the XDG data dir by the storage package)
	Database string

	// Namespace prefixes every per-user collection key.
	// Default: "mitraa_challenges"
	Namespace string

	// LockTimeout bounds how long a write waits for the data directory lock.
	// Default: 5s
	LockTimeout time.Duration
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	// Addr is host:port. Empty disables Redis.
	Addr string

	// DB is the logical database number.
	// Default: 0
	DB int

	// DialTimeout bounds the initial connection and ping.
	// Default: 3s
	DialTimeout time.Duration
}

// ChallengeConfig holds challenge creation defaults.
type ChallengeConfig struct {
	// DefaultTargetDays is used when create is called without --days.
	// Default: 21
	DefaultTargetDays int

	// MaxTargetDays is the largest accepted target.
	// Default: 365
	MaxTargetDays int

	// MaxNoteLength caps check-in notes and future messages, in characters.
	// Default: 2000
	MaxNoteLength int
}

// IdentityConfig holds identity resolution settings.
type IdentityConfig struct {
	// User overrides the persisted anonymous identity when non-empty.
	User string
}

// DashboardConfig holds TUI settings.
type DashboardConfig struct {
	// RefreshInterval is how often the dashboard reloads challenges.
	// Default: 30s
	RefreshInterval time.Duration
}

// DefaultRuntimeConfig returns the default runtime configuration.
func DefaultRuntimeConfig() *RuntimeConfig {
	return &RuntimeConfig{
		Storage: StorageConfig{
			Namespace:   "mitraa_challenges",
			LockTimeout: 5 * time.Second,
		},
		Redis: RedisConfig{
			DialTimeout: 3 * time.Second,
		},
		Challenge: ChallengeConfig{
			DefaultTargetDays: 21,
			MaxTargetDays:     365,
			MaxNoteLength:     2000,
		},
		Dashboard: DashboardConfig{
			RefreshInterval: 30 * time.Second,
		},
	}
}

// Global holds the global runtime configuration instance.
// It is initialized with defaults and can be overridden via environment variables.
var Global = initGlobal()

func initGlobal() *RuntimeConfig {
	cfg := DefaultRuntimeConfig()
	cfg.loadFromEnv()
	return cfg
}

// DotEnvPaths returns the .env files consulted by LoadDotEnv, in priority order.
func DotEnvPaths() []string {
	return []string{
		".env",
		filepath.Join(xdg.ConfigHome, "mitraa", ".env"),
	}
}

// LoadDotEnv loads the given .env files (DotEnvPaths when none are given)
// into the process environment. Variables that are already set win, and
// missing files are skipped. It returns the files that were loaded.
func LoadDotEnv(paths ...string) ([]string, error) {
	if len(paths) == 0 {
		paths = DotEnvPaths()
	}

	var loaded []string
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return loaded, err
		}
		loaded = append(loaded, p)
	}
	return loaded, nil
}

// loadFromEnv loads configuration overrides from environment variables.
func (c *RuntimeConfig) loadFromEnv() {
	// Storage configuration
	if v := os.Getenv("MITRAA_DATABASE"); v != "" {
		c.Storage.Database = v
	}
	if v := os.Getenv("MITRAA_NAMESPACE"); v != "" {
		c.Storage.Namespace = v
	}
	if v := os.Getenv("MITRAA_LOCK_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.Storage.LockTimeout = d
		}
	}

	// Redis configuration
	if v := os.Getenv("MITRAA_REDIS_ADDR"); v != "" {
		c.Redis.Addr = v
	}
	if v := os.Getenv("MITRAA_REDIS_DB"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.Redis.DB = n
		}
	}

	// Challenge configuration
	if v := os.Getenv("MITRAA_DEFAULT_TARGET_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Challenge.DefaultTargetDays = n
		}
	}
	if v := os.Getenv("MITRAA_MAX_TARGET_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.Challenge.MaxTargetDays = n
		}
	}

	// Identity configuration
	if v := os.Getenv("MITRAA_USER"); v != "" {
		c.Identity.User = v
	}

	// Dashboard configuration
	if v := os.Getenv("MITRAA_DASHBOARD_REFRESH"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			c.Dashboard.RefreshInterval = d
		}
	}
}

// UseMemory reports whether the configured database is in-memory.
func (c *RuntimeConfig) UseMemory() bool {
	return c.Storage.Database == MemoryDatabase
}

// ReloadFromEnv reloads configuration from environment variables.
func (c *RuntimeConfig) ReloadFromEnv() {
	c.loadFromEnv()
}

// Reset resets the configuration to defaults.
// This is primarily useful for testing.
func (c *RuntimeConfig) Reset() {
	defaults := DefaultRuntimeConfig()
	*c = *defaults
}
