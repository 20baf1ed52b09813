package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StoreDriverSQLite   = "sqlite"
	StoreDriverPostgres = "postgres"

	CacheBackendFile  = "file"
	CacheBackendRedis = "redis"
)

type Config struct {
	DataDir  string
	Timezone string         `yaml:"timezone" env:"PTI_TIMEZONE" env-default:"Local"`
	Store    StoreConfig    `yaml:"store"`
	Cache    CacheConfig    `yaml:"cache"`
	Identity IdentityConfig `yaml:"identity"`
	Report   ReportConfig   `yaml:"report"`
	Metrics  MetricsConfig  `yaml:"metrics"`
}

type StoreConfig struct {
	Driver string `yaml:"driver" env:"PTI_STORE_DRIVER" env-default:"sqlite"`
	// DSN defaults to <data dir>/pti.db for sqlite and is required for postgres.
	DSN string `yaml:"dsn" env:"PTI_STORE_DSN"`
}

type CacheConfig struct {
	Backend  string `yaml:"backend" env:"PTI_CACHE_BACKEND" env-default:"file"`
	Path     string `yaml:"path" env:"PTI_CACHE_PATH"`
	RedisURL string `yaml:"redis_url" env:"PTI_REDIS_URL"`
	Prefix   string `yaml:"prefix" env:"PTI_CACHE_PREFIX" env-default:"pti:"`
}

type IdentityConfig struct {
	// UserID bypasses the credentials file, e.g. for scripted use.
	UserID            string `yaml:"user_id" env:"PTI_USER_ID"`
	ClientSecretsFile string `yaml:"client_secrets_file" env:"PTI_CLIENT_SECRETS"`
	CredentialsFile   string `yaml:"credentials_file" env:"PTI_CREDENTIALS_FILE"`
	RedirectPort      int    `yaml:"redirect_port" env:"PTI_REDIRECT_PORT" env-default:"6789"`
}

type ReportConfig struct {
	WindowDays int    `yaml:"window_days" env:"PTI_REPORT_WINDOW_DAYS" env-default:"30"`
	PageSize   int    `yaml:"page_size" env:"PTI_PAGE_SIZE" env-default:"10"`
	ExportDir  string `yaml:"export_dir" env:"PTI_EXPORT_DIR"`
}

type MetricsConfig struct {
	Textfile string `yaml:"textfile" env:"PTI_METRICS_TEXTFILE"`
}

// New loads configPath (defaults to <dataDir>/config.yaml when empty) if it
// exists, applies environment overrides and fills derived paths.
func New(dataDir, configPath string) (Config, error) {
	if dataDir == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	if configPath == "" {
		configPath = filepath.Join(dataDir, "config.yaml")
	}

	cfg := Config{}
	if _, err := os.Stat(configPath); err == nil {
		if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", configPath, err)
		}
	} else if errors.Is(err, os.ErrNotExist) {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return Config{}, fmt.Errorf("read env: %w", err)
		}
	} else {
		return Config{}, fmt.Errorf("stat config %s: %w", configPath, err)
	}

	cfg.DataDir = dataDir
	cfg.applyDerived()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyDerived() {
	if c.Store.DSN == "" && c.Store.Driver == StoreDriverSQLite {
		c.Store.DSN = filepath.Join(c.DataDir, "pti.db")
	}
	if c.Cache.Path == "" {
		c.Cache.Path = filepath.Join(c.DataDir, "cache.json")
	}
	if c.Identity.CredentialsFile == "" {
		c.Identity.CredentialsFile = filepath.Join(c.DataDir, "credentials.json")
	}
	if c.Identity.ClientSecretsFile == "" {
		c.Identity.ClientSecretsFile = filepath.Join(c.DataDir, "client_secret.json")
	}
	if c.Report.ExportDir == "" {
		c.Report.ExportDir = filepath.Join(c.DataDir, "reports")
	}
}

func (c Config) Validate() error {
	switch c.Store.Driver {
	case StoreDriverSQLite:
	case StoreDriverPostgres:
		if c.Store.DSN == "" {
			return fmt.Errorf("store.dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("unsupported store driver %q", c.Store.Driver)
	}
	switch c.Cache.Backend {
	case CacheBackendFile:
	case CacheBackendRedis:
		if c.Cache.RedisURL == "" {
			return fmt.Errorf("cache.redis_url is required for the redis backend")
		}
	default:
		return fmt.Errorf("unsupported cache backend %q", c.Cache.Backend)
	}
	if c.Report.WindowDays <= 0 {
		return fmt.Errorf("report.window_days must be positive")
	}
	if c.Report.PageSize <= 0 {
		return fmt.Errorf("report.page_size must be positive")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves the configured timezone used for calendar-day boundaries.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
