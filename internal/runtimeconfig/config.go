package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// EditorStateKey is the default durable slot.
const EditorStateKey = "editor-state"

var (
	ErrPersistenceKeyRequired   = errors.New("medit config: persistence key is required")
	ErrPersistenceDelayInvalid  = errors.New("medit config: persistence delay must be positive")
	ErrWriteTimeoutInvalid      = errors.New("medit config: persistence write timeout must be zero or positive")
	ErrStorageProviderUnknown   = errors.New("medit config: storage provider is invalid")
	ErrStorageDirRequired       = errors.New("medit config: storage directory is required for the file provider")
	ErrStorageDSNRequired       = errors.New("medit config: storage dsn is required for database providers")
	ErrNotificationTTLInvalid   = errors.New("medit config: notification ttl must be positive")
	ErrClipboardProviderUnknown = errors.New("medit config: clipboard provider is invalid")
	ErrRenderExtensionUnknown   = errors.New("medit config: render extension is invalid")
	ErrLoggingProviderRequired  = errors.New("medit config: logging provider is required when logging feature is enabled")
	ErrLoggingProviderUnknown   = errors.New("medit config: logging provider is invalid")
	ErrLoggingLevelInvalid      = errors.New("medit config: logging level is invalid")
	ErrLoggingFormatInvalid     = errors.New("medit config: logging format is invalid")
)

// Config aggregates the runtime options of an editor session.
type Config struct {
	Persistence   PersistenceConfig
	Storage       StorageConfig
	Render        RenderConfig
	Notifications NotificationConfig
	Clipboard     ClipboardConfig
	Features      Features
	Logging       LoggingConfig
}

// PersistenceConfig controls the debounced snapshot writer.
type PersistenceConfig struct {
	Key          string
	Delay        time.Duration
	WriteTimeout time.Duration
	FlushOnClose bool
}

// StorageConfig selects the slot store backend: memory, file, sqlite or postgres.
type StorageConfig struct {
	Provider string
	Dir      string
	DSN      string
}

// RenderConfig mirrors interfaces.RenderOptions.
type RenderConfig struct {
	Extensions      []string
	HardWraps       bool
	StripParagraphs bool
	Highlight       bool
	AllowedElements []string
}

// NotificationConfig controls transient notifications.
type NotificationConfig struct {
	TTL time.Duration
}

// ClipboardConfig selects the clipboard sink: system or memory.
type ClipboardConfig struct {
	Provider string
}

// Features toggles optional runtime behaviour.
type Features struct {
	Logger bool
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns the settings the editor ships with.
func DefaultConfig() Config {
	return Config{
		Persistence: PersistenceConfig{
			Key:          EditorStateKey,
			Delay:        500 * time.Millisecond,
			WriteTimeout: 5 * time.Second,
			FlushOnClose: true,
		},
		Storage: StorageConfig{
			Provider: "file",
			Dir:      ".medit",
		},
		Render: RenderConfig{
			Extensions:      []string{"gfm"},
			HardWraps:       true,
			StripParagraphs: true,
			Highlight:       true,
		},
		Notifications: NotificationConfig{
			TTL: 3 * time.Second,
		},
		Clipboard: ClipboardConfig{
			Provider: "system",
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.Persistence.Key) == "" {
		return ErrPersistenceKeyRequired
	}
	if cfg.Persistence.Delay <= 0 {
		return ErrPersistenceDelayInvalid
	}
	if cfg.Persistence.WriteTimeout < 0 {
		return ErrWriteTimeoutInvalid
	}

	switch provider := normalize(cfg.Storage.Provider); provider {
	case "", "memory":
	case "file":
		if strings.TrimSpace(cfg.Storage.Dir) == "" {
			return ErrStorageDirRequired
		}
	case "sqlite", "sqlite3", "postgres":
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return fmt.Errorf("%w: %s", ErrStorageDSNRequired, provider)
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, provider)
	}

	for _, ext := range cfg.Render.Extensions {
		if !isSupportedExtension(ext) {
			return fmt.Errorf("%w: %s", ErrRenderExtensionUnknown, ext)
		}
	}

	if cfg.Notifications.TTL <= 0 {
		return ErrNotificationTTLInvalid
	}

	switch provider := normalize(cfg.Clipboard.Provider); provider {
	case "", "system", "memory":
	default:
		return fmt.Errorf("%w: %s", ErrClipboardProviderUnknown, provider)
	}

	if cfg.Features.Logger {
		provider := normalize(cfg.Logging.Provider)
		if provider == "" {
			return ErrLoggingProviderRequired
		}
		if !isSupportedProvider(provider) {
			return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
		}
		if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
			return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
		}
		if provider == "gologger" {
			if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
				return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
			}
		}
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch normalize(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch normalize(format) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}

func isSupportedExtension(name string) bool {
	switch normalize(name) {
	case "gfm", "table", "tables", "strikethrough", "linkify", "autolink", "tasklist", "definition", "footnote":
		return true
	default:
		return false
	}
}
