// Package medit is the entry point for embedding the markdown editor
// runtime: it validates configuration, builds the slot store, clipboard and
// logger provider, and opens editor sessions over them.
package medit

import (
	"context"
	"errors"
	"os"
	"strings"

	"github.com/benbjohnson/clock"

	"github.com/goliatone/go-medit/internal/clipboard"
	"github.com/goliatone/go-medit/internal/logging"
	"github.com/goliatone/go-medit/internal/logging/console"
	"github.com/goliatone/go-medit/internal/logging/gologger"
	"github.com/goliatone/go-medit/internal/persistence"
	"github.com/goliatone/go-medit/internal/render"
	"github.com/goliatone/go-medit/internal/session"
	"github.com/goliatone/go-medit/internal/storage"
	"github.com/goliatone/go-medit/pkg/interfaces"
)

type (
	// Session is one authoring session over the configured slot.
	Session = session.Session
	// Output is the rendered view of a session document.
	Output = session.Output
	// SessionOption customises a session opened through Module.Open.
	SessionOption = session.Option
)

// Option customises Module construction.
type Option func(*Module)

// WithLoggerProvider overrides the provider selected from Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(m *Module) {
		m.provider = provider
	}
}

// WithStore overrides the slot store selected from Config.Storage. The
// caller keeps ownership of store.
func WithStore(store interfaces.SlotStore) Option {
	return func(m *Module) {
		m.store = store
	}
}

// WithClipboard overrides the clipboard selected from Config.Clipboard.
func WithClipboard(clip interfaces.Clipboard) Option {
	return func(m *Module) {
		m.clipboard = clip
	}
}

// WithClock overrides the clock shared by save and notification timers.
func WithClock(c clock.Clock) Option {
	return func(m *Module) {
		m.clock = c
	}
}

// Module holds the shared runtime for editor sessions.
type Module struct {
	cfg       Config
	provider  interfaces.LoggerProvider
	store     interfaces.SlotStore
	ownsStore bool
	clipboard interfaces.Clipboard
	clock     clock.Clock
	renderer  *render.Pipeline
	logger    interfaces.Logger
}

// New validates cfg and wires the module dependencies.
func New(ctx context.Context, cfg Config, opts ...Option) (*Module, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	m := &Module{cfg: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}

	if m.provider == nil && cfg.Features.Logger {
		provider, err := newLoggerProvider(cfg.Logging)
		if err != nil {
			return nil, err
		}
		m.provider = provider
	}
	m.logger = logging.ModuleLogger(m.provider, "medit")

	if m.store == nil {
		store, err := storage.Open(ctx, storage.Config{
			Provider: cfg.Storage.Provider,
			Dir:      cfg.Storage.Dir,
			DSN:      cfg.Storage.DSN,
		})
		if err != nil {
			return nil, err
		}
		m.store = store
		m.ownsStore = true
		logging.StorageLogger(m.provider).Debug("storage.opened", "provider", cfg.Storage.Provider)
	}

	if m.clipboard == nil {
		m.clipboard = newClipboard(cfg.Clipboard.Provider)
	}
	if m.clock == nil {
		m.clock = clock.New()
	}

	m.renderer = render.NewPipeline(renderOptions(cfg.Render), logging.RenderLogger(m.provider))
	m.logger.Debug("medit.module.ready", "storage", cfg.Storage.Provider, "clipboard", cfg.Clipboard.Provider)
	return m, nil
}

// Config returns the validated configuration.
func (m *Module) Config() Config {
	return m.cfg
}

// LoggerProvider returns the provider used for module loggers, or nil when
// logging is disabled.
func (m *Module) LoggerProvider() interfaces.LoggerProvider {
	return m.provider
}

// Store returns the slot store shared by sessions.
func (m *Module) Store() interfaces.SlotStore {
	return m.store
}

// Renderer returns the configured markdown pipeline.
func (m *Module) Renderer() interfaces.MarkdownRenderer {
	return m.renderer
}

// Open creates a session over the configured slot and restores the stored
// snapshot.
func (m *Module) Open(ctx context.Context, opts ...SessionOption) (*Session, error) {
	base := []session.Option{
		session.WithLoggerProvider(m.provider),
		session.WithClock(m.clock),
		session.WithClipboard(m.clipboard),
		session.WithRenderer(m.renderer),
		session.WithNotificationTTL(m.cfg.Notifications.TTL),
		session.WithFlushOnClose(m.cfg.Persistence.FlushOnClose),
		session.WithPersistenceOptions(
			persistence.WithKey(m.cfg.Persistence.Key),
			persistence.WithDelay(m.cfg.Persistence.Delay),
			persistence.WithWriteTimeout(m.cfg.Persistence.WriteTimeout),
		),
	}
	s, err := session.New(m.store, append(base, opts...)...)
	if err != nil {
		return nil, err
	}
	s.Start(ctx)
	return s, nil
}

// Close releases the slot store when the module opened it.
func (m *Module) Close() error {
	if !m.ownsStore {
		return nil
	}
	if closer, ok := m.store.(interfaces.ClosableSlotStore); ok {
		return closer.Close()
	}
	return nil
}

func newLoggerProvider(cfg LoggingConfig) (interfaces.LoggerProvider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
		if err != nil {
			return nil, err
		}
		return provider, nil
	case "console":
		opts := console.Options{Writer: os.Stderr, Focus: cfg.Focus}
		if level, ok := console.ParseLevel(cfg.Level); ok {
			opts.MinLevel = &level
		}
		return console.NewProvider(opts), nil
	default:
		return nil, errors.New("medit: unsupported logging provider " + cfg.Provider)
	}
}

func newClipboard(provider string) interfaces.Clipboard {
	if strings.EqualFold(strings.TrimSpace(provider), "memory") {
		return clipboard.NewMemory()
	}
	return clipboard.NewSystem()
}

func renderOptions(cfg RenderConfig) interfaces.RenderOptions {
	return interfaces.RenderOptions{
		Extensions:      cfg.Extensions,
		HardWraps:       cfg.HardWraps,
		StripParagraphs: cfg.StripParagraphs,
		Highlight:       cfg.Highlight,
		AllowedElements: cfg.AllowedElements,
	}
}
