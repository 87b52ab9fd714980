// ABOUTME: Configuration management backed by viper with environment and YAML file support
// ABOUTME: Defines configuration structures for document handling, storage and logging

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. SYNDICATE_STORE_TYPE
const EnvPrefix = "SYNDICATE"

// Store backends
const (
	StoreMemory = "memory"
	StoreRedis  = "redis"
	StoreSQLite = "sqlite"
)

// Config holds all application configuration
type Config struct {
	// Syndication controls extension handling on load and save
	Syndication SyndicationConfig

	// Store selects where archived documents are kept
	Store StoreConfig

	// Log configures the structured logger
	Log LogConfig
}

// SyndicationConfig holds extension settings
type SyndicationConfig struct {
	// AutoDetect collects extension namespaces from the document before saving
	AutoDetect bool

	// Minimize disables indentation on save
	Minimize bool

	// Extensions lists the kinds to support; empty means every registered kind
	Extensions []string
}

// StoreConfig holds document store configuration
type StoreConfig struct {
	// Type specifies the backend (memory/redis/sqlite)
	Type string

	// TTL is how long stored documents live; 0 keeps them forever
	TTL time.Duration

	// Redis contains Redis-specific configuration
	Redis RedisConfig

	// SQLite contains SQLite-specific configuration
	SQLite SQLiteConfig
}

// RedisConfig holds Redis-specific configuration
type RedisConfig struct {
	// Address is the Redis server address
	Address string

	// Password is the Redis authentication password
	Password string

	// DB is the Redis database number
	DB int
}

// SQLiteConfig holds SQLite-specific configuration
type SQLiteConfig struct {
	// Path is the database file
	Path string
}

// LogConfig holds logger configuration
type LogConfig struct {
	// Level is one of debug, info, warn, error
	Level string

	// Format is text or json
	Format string
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("syndication.autodetect", true)
	v.SetDefault("syndication.minimize", false)
	v.SetDefault("syndication.extensions", []string{})
	v.SetDefault("store.type", StoreMemory)
	v.SetDefault("store.ttl", "24h")
	v.SetDefault("store.redis.address", "localhost:6379")
	v.SetDefault("store.redis.password", "")
	v.SetDefault("store.redis.db", 0)
	v.SetDefault("store.sqlite.path", "syndicate.db")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	return v
}

// LoadFromEnv loads configuration from defaults and environment variables
func LoadFromEnv() (*Config, error) {
	return fromViper(newViper()), nil
}

// LoadFromFile loads a YAML file; environment variables still take precedence
func LoadFromFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config file %s: %w", path, err)
	}
	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		Syndication: SyndicationConfig{
			AutoDetect: v.GetBool("syndication.autodetect"),
			Minimize:   v.GetBool("syndication.minimize"),
			Extensions: stringList(v, "syndication.extensions"),
		},
		Store: StoreConfig{
			Type: strings.ToLower(v.GetString("store.type")),
			TTL:  v.GetDuration("store.ttl"),
			Redis: RedisConfig{
				Address:  v.GetString("store.redis.address"),
				Password: v.GetString("store.redis.password"),
				DB:       v.GetInt("store.redis.db"),
			},
			SQLite: SQLiteConfig{
				Path: v.GetString("store.sqlite.path"),
			},
		},
		Log: LogConfig{
			Level:  strings.ToLower(v.GetString("log.level")),
			Format: strings.ToLower(v.GetString("log.format")),
		},
	}
}

// stringList accepts either a YAML list or a comma separated string
func stringList(v *viper.Viper, key string) []string {
	raw, ok := v.Get(key).(string)
	if !ok {
		return v.GetStringSlice(key)
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Store.Type {
	case StoreMemory:
	case StoreRedis:
		if c.Store.Redis.Address == "" {
			return errors.New("redis address cannot be empty when using redis store")
		}
	case StoreSQLite:
		if c.Store.SQLite.Path == "" {
			return errors.New("sqlite path cannot be empty when using sqlite store")
		}
	default:
		return errors.New("store type must be 'memory', 'redis' or 'sqlite'")
	}

	if c.Store.TTL < 0 {
		return errors.New("store ttl cannot be negative")
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.Log.Level)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return errors.New("log format must be 'text' or 'json'")
	}

	return nil
}
