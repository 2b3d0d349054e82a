package runtimeconfig_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-medit/internal/runtimeconfig"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := runtimeconfig.DefaultConfig().Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestDefaultConfigValues(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	if cfg.Persistence.Key != "editor-state" {
		t.Fatalf("expected editor-state key, got %q", cfg.Persistence.Key)
	}
	if cfg.Persistence.Delay != 500*time.Millisecond {
		t.Fatalf("expected 500ms debounce, got %s", cfg.Persistence.Delay)
	}
	if cfg.Notifications.TTL != 3*time.Second {
		t.Fatalf("expected 3s notification ttl, got %s", cfg.Notifications.TTL)
	}
}

func TestConfigValidateErrors(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*runtimeconfig.Config)
		want   error
	}{
		{"empty key", func(c *runtimeconfig.Config) { c.Persistence.Key = " " }, runtimeconfig.ErrPersistenceKeyRequired},
		{"zero delay", func(c *runtimeconfig.Config) { c.Persistence.Delay = 0 }, runtimeconfig.ErrPersistenceDelayInvalid},
		{"negative timeout", func(c *runtimeconfig.Config) { c.Persistence.WriteTimeout = -time.Second }, runtimeconfig.ErrWriteTimeoutInvalid},
		{"unknown storage", func(c *runtimeconfig.Config) { c.Storage.Provider = "redis" }, runtimeconfig.ErrStorageProviderUnknown},
		{"file without dir", func(c *runtimeconfig.Config) { c.Storage.Dir = "" }, runtimeconfig.ErrStorageDirRequired},
		{"sqlite without dsn", func(c *runtimeconfig.Config) { c.Storage.Provider = "sqlite" }, runtimeconfig.ErrStorageDSNRequired},
		{"unknown extension", func(c *runtimeconfig.Config) { c.Render.Extensions = []string{"mermaid"} }, runtimeconfig.ErrRenderExtensionUnknown},
		{"zero ttl", func(c *runtimeconfig.Config) { c.Notifications.TTL = 0 }, runtimeconfig.ErrNotificationTTLInvalid},
		{"unknown clipboard", func(c *runtimeconfig.Config) { c.Clipboard.Provider = "x11" }, runtimeconfig.ErrClipboardProviderUnknown},
		{"logger without provider", func(c *runtimeconfig.Config) {
			c.Features.Logger = true
			c.Logging.Provider = ""
		}, runtimeconfig.ErrLoggingProviderRequired},
		{"unknown logger", func(c *runtimeconfig.Config) {
			c.Features.Logger = true
			c.Logging.Provider = "syslog"
		}, runtimeconfig.ErrLoggingProviderUnknown},
		{"bad level", func(c *runtimeconfig.Config) {
			c.Features.Logger = true
			c.Logging.Level = "verbose"
		}, runtimeconfig.ErrLoggingLevelInvalid},
		{"bad format", func(c *runtimeconfig.Config) {
			c.Features.Logger = true
			c.Logging.Provider = "gologger"
			c.Logging.Format = "xml"
		}, runtimeconfig.ErrLoggingFormatInvalid},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := runtimeconfig.DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestConfigValidateAllowsMemoryStorage(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Storage = runtimeconfig.StorageConfig{Provider: "memory"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestParseJSONCOverlay(t *testing.T) {
	data := []byte(`{
		// debounce a little longer on slow disks
		"persistence": {"delay": "750ms", "flush_on_close": false},
		"storage": {"provider": "sqlite", "dsn": "file:medit.db"},
		"render": {"extensions": ["gfm", "footnote"],},
		"notifications": {"ttl": "5s"},
		"features": {"logger": true},
		"logging": {"provider": "gologger", "format": "json", "focus": ["medit.persistence"]},
	}`)

	cfg, err := runtimeconfig.Parse(data)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}

	want := runtimeconfig.DefaultConfig()
	want.Persistence.Delay = 750 * time.Millisecond
	want.Persistence.FlushOnClose = false
	want.Storage = runtimeconfig.StorageConfig{Provider: "sqlite", Dir: ".medit", DSN: "file:medit.db"}
	want.Render.Extensions = []string{"gfm", "footnote"}
	want.Notifications.TTL = 5 * time.Second
	want.Features.Logger = true
	want.Logging.Provider = "gologger"
	want.Logging.Format = "json"
	want.Logging.Focus = []string{"medit.persistence"}

	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("unexpected config (-want +got):\n%s", diff)
	}
}

func TestParseRejectsInvalidInput(t *testing.T) {
	if _, err := runtimeconfig.Parse([]byte(`{"persistence": `)); !errors.Is(err, runtimeconfig.ErrConfigFileInvalid) {
		t.Fatalf("expected ErrConfigFileInvalid for malformed input, got %v", err)
	}
	if _, err := runtimeconfig.Parse([]byte(`{"notifications": {"ttl": "soon"}}`)); !errors.Is(err, runtimeconfig.ErrConfigFileInvalid) {
		t.Fatalf("expected ErrConfigFileInvalid for bad duration, got %v", err)
	}
	if _, err := runtimeconfig.Parse([]byte(`{"storage": {"provider": "redis"}}`)); !errors.Is(err, runtimeconfig.ErrStorageProviderUnknown) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "medit.jsonc")
	if err := os.WriteFile(path, []byte(`{"clipboard": {"provider": "memory"}}`), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := runtimeconfig.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if cfg.Clipboard.Provider != "memory" {
		t.Fatalf("expected memory clipboard, got %q", cfg.Clipboard.Provider)
	}
	if _, err := runtimeconfig.LoadFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
