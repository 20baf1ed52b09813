package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"pti/internal/platform/config"
)

func TestNewAppliesDefaultsWithoutFile(t *testing.T) {
	dir := t.TempDir()
	cfg, err := config.New(dir, "")
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.Store.Driver != config.StoreDriverSQLite {
		t.Fatalf("expected sqlite driver, got %q", cfg.Store.Driver)
	}
	if cfg.Store.DSN != filepath.Join(dir, "pti.db") {
		t.Fatalf("unexpected dsn %q", cfg.Store.DSN)
	}
	if cfg.Report.WindowDays != 30 || cfg.Report.PageSize != 10 {
		t.Fatalf("unexpected report defaults: %+v", cfg.Report)
	}
	if cfg.Cache.Backend != config.CacheBackendFile || cfg.Cache.Prefix != "pti:" {
		t.Fatalf("unexpected cache defaults: %+v", cfg.Cache)
	}
}

func TestNewReadsYAMLAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "timezone: UTC\nreport:\n  window_days: 14\n  page_size: 25\nidentity:\n  user_id: from-file\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("PTI_PAGE_SIZE", "5")

	cfg, err := config.New(dir, path)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.Report.WindowDays != 14 {
		t.Fatalf("expected window days from file, got %d", cfg.Report.WindowDays)
	}
	if cfg.Report.PageSize != 5 {
		t.Fatalf("expected env override page size 5, got %d", cfg.Report.PageSize)
	}
	if cfg.Identity.UserID != "from-file" {
		t.Fatalf("expected user id from file, got %q", cfg.Identity.UserID)
	}
	loc, err := cfg.Location()
	if err != nil || loc.String() != "UTC" {
		t.Fatalf("expected UTC location, got %v (%v)", loc, err)
	}
}

func TestNewRejectsInvalidSettings(t *testing.T) {
	if _, err := config.New("", ""); err == nil {
		t.Fatalf("empty data dir must fail")
	}
	dir := t.TempDir()
	t.Setenv("PTI_STORE_DRIVER", "postgres")
	if _, err := config.New(dir, ""); err == nil {
		t.Fatalf("postgres without dsn must fail")
	}
}

func TestNewRejectsUnknownTimezone(t *testing.T) {
	t.Setenv("PTI_TIMEZONE", "Mars/Olympus")
	if _, err := config.New(t.TempDir(), ""); err == nil {
		t.Fatalf("unknown timezone must fail")
	}
}
