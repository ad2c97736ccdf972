package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func loadTest(t *testing.T) (*Config, string, error) {
	t.Helper()
	dir := t.TempDir()
	cfg, err := load(viper.New(), dir)
	return cfg, dir, err
}

func TestLoad_Defaults(t *testing.T) {
	cfg, dir, err := loadTest(t)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIURL != "https://api.beanmart.coffee" {
		t.Errorf("APIURL = %q, want default", cfg.APIURL)
	}
	if cfg.Session.Backend != BackendFile {
		t.Errorf("Session.Backend = %q, want %q", cfg.Session.Backend, BackendFile)
	}
	if want := filepath.Join(dir, "session.json"); cfg.Session.Path != want {
		t.Errorf("Session.Path = %q, want %q", cfg.Session.Path, want)
	}
	if cfg.Session.WriteTimeout != 5*time.Second {
		t.Errorf("Session.WriteTimeout = %v, want 5s", cfg.Session.WriteTimeout)
	}
	if cfg.Redis.Key != "beanmart:session" {
		t.Errorf("Redis.Key = %q, want default", cfg.Redis.Key)
	}
	if cfg.SQLite.Name != "default" {
		t.Errorf("SQLite.Name = %q, want default", cfg.SQLite.Name)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("Log.Level = %q, want warn", cfg.Log.Level)
	}
}

func TestLoad_EnvVarOverride(t *testing.T) {
	t.Setenv("BEANMART_API_URL", "http://localhost:8080")
	t.Setenv("BEANMART_SESSION_BACKEND", "redis")
	t.Setenv("BEANMART_SESSION_WRITE_TIMEOUT", "2s")
	t.Setenv("BEANMART_REDIS_ADDR", "cache:6380")
	t.Setenv("BEANMART_REDIS_DB", "3")
	t.Setenv("BEANMART_LOG_LEVEL", "debug")

	cfg, _, err := loadTest(t)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIURL != "http://localhost:8080" {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}
	if cfg.Session.Backend != BackendRedis {
		t.Errorf("Session.Backend = %q, want redis", cfg.Session.Backend)
	}
	if cfg.Session.WriteTimeout != 2*time.Second {
		t.Errorf("Session.WriteTimeout = %v, want 2s", cfg.Session.WriteTimeout)
	}
	if cfg.Redis.Addr != "cache:6380" {
		t.Errorf("Redis.Addr = %q", cfg.Redis.Addr)
	}
	if cfg.Redis.DB != 3 {
		t.Errorf("Redis.DB = %d, want 3", cfg.Redis.DB)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want debug", cfg.Log.Level)
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	yaml := "api_url: http://file.example\nsession:\n  backend: sqlite\nsqlite:\n  name: work\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0600); err != nil {
		t.Fatal(err)
	}
	v := viper.New()
	v.SetConfigFile(filepath.Join(dir, "config.yaml"))
	if err := v.ReadInConfig(); err != nil {
		t.Fatalf("ReadInConfig: %v", err)
	}
	t.Setenv("BEANMART_API_URL", "http://env.example")

	cfg, err := load(v, dir)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.APIURL != "http://env.example" {
		t.Errorf("APIURL = %q, env should win over file", cfg.APIURL)
	}
	if cfg.Session.Backend != BackendSQLite {
		t.Errorf("Session.Backend = %q, want sqlite", cfg.Session.Backend)
	}
	if cfg.SQLite.Name != "work" {
		t.Errorf("SQLite.Name = %q, want work", cfg.SQLite.Name)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"unknown backend", "BEANMART_SESSION_BACKEND", "floppy"},
		{"unknown log level", "BEANMART_LOG_LEVEL", "loud"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			if _, _, err := loadTest(t); err == nil {
				t.Fatalf("expected error for %s=%q", tt.key, tt.val)
			}
		})
	}
}

func TestLoad_LogLevelsAcceptedByLogger(t *testing.T) {
	for _, level := range []string{"warning", "WARN", "Info", "error"} {
		t.Run(level, func(t *testing.T) {
			t.Setenv("BEANMART_LOG_LEVEL", level)
			cfg, _, err := loadTest(t)
			if err != nil {
				t.Fatalf("load: %v", err)
			}
			if cfg.Log.Level != level {
				t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, level)
			}
		})
	}
}

func TestValidate_EmptyLogLevel(t *testing.T) {
	cfg, _, err := loadTest(t)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg.Log.Level = ""
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() with empty level = %v, want nil (defaults to warn)", err)
	}
}

func TestStorefrontURL(t *testing.T) {
	tests := []struct {
		api, base, want string
	}{
		{"https://api.beanmart.coffee", "", "https://beanmart.coffee"},
		{"http://api.localhost:8080/", "", "http://localhost:8080"},
		{"http://localhost:8080", "", "http://localhost:8080"},
		{"https://api.beanmart.coffee", "https://shop.example/", "https://shop.example"},
	}
	for _, tt := range tests {
		c := &Config{APIURL: tt.api, BaseURL: tt.base}
		if got := c.StorefrontURL(); got != tt.want {
			t.Errorf("StorefrontURL(api=%q, base=%q) = %q, want %q", tt.api, tt.base, got, tt.want)
		}
	}
}
