// Package config loads beanmart settings from an optional .env file,
// an optional ~/.beanmart/config.yaml, and BEANMART_* environment variables
// using Viper. Environment variables win over the config file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/beanmart/beanmart/internal/logging"
)

// Session persistence backends.
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Config holds the client configuration.
type Config struct {
	// APIURL is the storefront API base URL.
	APIURL string `mapstructure:"api_url"`
	// BaseURL is the public storefront site; derived from APIURL when empty.
	BaseURL string        `mapstructure:"base_url"`
	Session SessionConfig `mapstructure:"session"`
	Redis   RedisConfig   `mapstructure:"redis"`
	SQLite  SQLiteConfig  `mapstructure:"sqlite"`
	Log     LogConfig     `mapstructure:"log"`
}

// SessionConfig selects where the session snapshot lives.
type SessionConfig struct {
	Backend string `mapstructure:"backend"`
	// Path is the snapshot file for the file backend.
	Path string `mapstructure:"path"`
	// WriteTimeout bounds each background snapshot write (e.g. "5s").
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Key      string `mapstructure:"key"`
}

type SQLiteConfig struct {
	Path string `mapstructure:"path"`
	Name string `mapstructure:"name"`
}

type LogConfig struct {
	// Level is one of debug, info, warn (or warning), error. Empty means warn.
	Level string `mapstructure:"level"`
}

// Dir returns ~/.beanmart.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".beanmart"), nil
}

// Load reads .env (if present), ~/.beanmart/config.yaml (if present) and the
// environment, then validates the result. A missing .env or config file is
// not an error.
func Load() (*Config, error) {
	_ = godotenv.Load() // ignore missing .env

	dir, err := Dir()
	if err != nil {
		return nil, err
	}
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read %s: %w", v.ConfigFileUsed(), err)
		}
	}
	return load(v, dir)
}

func load(v *viper.Viper, dir string) (*Config, error) {
	v.SetEnvPrefix("BEANMART")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("api_url", "https://api.beanmart.coffee")
	v.SetDefault("base_url", "")
	v.SetDefault("session.backend", BackendFile)
	v.SetDefault("session.path", filepath.Join(dir, "session.json"))
	v.SetDefault("session.write_timeout", 5*time.Second)
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.key", "beanmart:session")
	v.SetDefault("sqlite.path", filepath.Join(dir, "session.db"))
	v.SetDefault("sqlite.name", "default")
	v.SetDefault("log.level", "warn")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks required fields and enumerations.
func (c *Config) Validate() error {
	if c.APIURL == "" {
		return errors.New("config: api_url must be set")
	}
	switch c.Session.Backend {
	case BackendFile:
		if c.Session.Path == "" {
			return errors.New("config: session.path must be set for the file backend")
		}
	case BackendRedis:
		if c.Redis.Addr == "" {
			return errors.New("config: redis.addr must be set for the redis backend")
		}
	case BackendSQLite:
		if c.SQLite.Path == "" {
			return errors.New("config: sqlite.path must be set for the sqlite backend")
		}
	case BackendMemory:
	default:
		return fmt.Errorf("config: unknown session.backend %q (want file, redis, sqlite or memory)", c.Session.Backend)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("config: unknown log.level %q", c.Log.Level)
	}
	return nil
}

// StorefrontURL returns the public site URL. When BaseURL is unset it strips
// a leading "api." from the API host (api.beanmart.coffee -> beanmart.coffee).
func (c *Config) StorefrontURL() string {
	if c.BaseURL != "" {
		return strings.TrimRight(c.BaseURL, "/")
	}
	scheme, rest, ok := strings.Cut(c.APIURL, "://")
	if !ok {
		return strings.TrimRight(c.APIURL, "/")
	}
	host, path, _ := strings.Cut(rest, "/")
	host = strings.TrimPrefix(host, "api.")
	out := scheme + "://" + host
	if path != "" {
		out += "/" + path
	}
	return strings.TrimRight(out, "/")
}
