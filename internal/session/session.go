// Package session ties the editor, toolbar commands, rendering and
// persistence together into one authoring session.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"

	toolbarcmd "github.com/goliatone/go-medit/internal/commands/toolbar"
	"github.com/goliatone/go-medit/internal/document"
	"github.com/goliatone/go-medit/internal/logging"
	"github.com/goliatone/go-medit/internal/metrics"
	"github.com/goliatone/go-medit/internal/persistence"
	"github.com/goliatone/go-medit/internal/render"
	"github.com/goliatone/go-medit/pkg/interfaces"
)

const (
	// DefaultNotificationTTL is how long a notification stays visible.
	DefaultNotificationTTL = 3 * time.Second

	MessageCopied     = "Content copied to clipboard"
	MessageCopyFailed = "Failed to copy content"
)

// Output is the derived view of the document: plain text, sanitized HTML
// and its metrics.
type Output struct {
	PlainText  string
	HTML       string
	Words      int
	Characters int
}

// Option configures a Session.
type Option func(*Session)

// WithID overrides the generated session id.
func WithID(id string) Option {
	return func(s *Session) {
		if id != "" {
			s.id = id
		}
	}
}

// WithLoggerProvider routes module loggers through provider.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(s *Session) {
		s.provider = provider
	}
}

// WithClock overrides the clock driving save and notification timers.
func WithClock(c clock.Clock) Option {
	return func(s *Session) {
		if c != nil {
			s.clock = c
		}
	}
}

// WithClipboard sets the clipboard used by CopyToClipboard.
func WithClipboard(clip interfaces.Clipboard) Option {
	return func(s *Session) {
		s.clipboard = clip
	}
}

// WithNotifier forwards notifications to n in addition to keeping them on
// the session.
func WithNotifier(n interfaces.Notifier) Option {
	return func(s *Session) {
		s.notifier = n
	}
}

// WithNotificationTTL overrides the auto-dismiss delay.
func WithNotificationTTL(ttl time.Duration) Option {
	return func(s *Session) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithRenderer replaces the markdown pipeline.
func WithRenderer(renderer interfaces.MarkdownRenderer) Option {
	return func(s *Session) {
		s.renderer = renderer
	}
}

// WithRenderOptions configures the default markdown pipeline.
func WithRenderOptions(opts interfaces.RenderOptions) Option {
	return func(s *Session) {
		s.renderOpts = opts
	}
}

// WithPersistenceOptions forwards options to the persistence manager.
func WithPersistenceOptions(opts ...persistence.Option) Option {
	return func(s *Session) {
		s.persistenceOpts = append(s.persistenceOpts, opts...)
	}
}

// WithFlushOnClose controls whether Close writes a pending save.
func WithFlushOnClose(enabled bool) Option {
	return func(s *Session) {
		s.flushOnClose = enabled
	}
}

// WithCommandRegistry registers the toolbar handlers with reg.
func WithCommandRegistry(reg toolbarcmd.CommandRegistry) Option {
	return func(s *Session) {
		s.registry = reg
	}
}

// Session is one authoring session over a single document. Every committed
// change re-renders the output and schedules a debounced save.
type Session struct {
	id              string
	provider        interfaces.LoggerProvider
	logger          interfaces.Logger
	clock           clock.Clock
	clipboard       interfaces.Clipboard
	notifier        interfaces.Notifier
	ttl             time.Duration
	renderer        interfaces.MarkdownRenderer
	renderOpts      interfaces.RenderOptions
	persistenceOpts []persistence.Option
	flushOnClose    bool
	registry        toolbarcmd.CommandRegistry

	editor   *document.Editor
	manager  *persistence.Manager
	handlers *toolbarcmd.HandlerSet

	unsubscribe func()

	mu           sync.Mutex
	output       Output
	notification *interfaces.Notification
	dismiss      *clock.Timer
	noticeGen    uint64
	closed       bool
}

// New builds a session persisting to store.
func New(store interfaces.SlotStore, opts ...Option) (*Session, error) {
	s := &Session{
		id:           uuid.NewString(),
		clock:        clock.New(),
		ttl:          DefaultNotificationTTL,
		renderOpts:   render.DefaultOptions(),
		flushOnClose: true,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.logger = logging.WithSessionContext(logging.SessionLogger(s.provider), s.id, "", "")
	s.editor = document.NewEditor(document.WithLogger(logging.DocumentLogger(s.provider)))
	if s.renderer == nil {
		s.renderer = render.NewPipeline(s.renderOpts, logging.RenderLogger(s.provider))
	}

	managerOpts := []persistence.Option{
		persistence.WithClock(s.clock),
		persistence.WithLogger(logging.WithSessionContext(logging.PersistenceLogger(s.provider), s.id, "", "")),
	}
	s.manager = persistence.NewManager(s.editor, store, append(managerOpts, s.persistenceOpts...)...)

	handlers, err := toolbarcmd.RegisterToolbarCommands(s.registry, s.editor, s.clipboard, s.provider)
	if err != nil {
		return nil, err
	}
	s.handlers = handlers

	s.unsubscribe = s.editor.OnChange(func(_ context.Context, state *document.State) {
		s.refresh(state.PlainText())
		s.manager.ScheduleSave()
	})
	s.refresh(s.editor.PlainText())
	return s, nil
}

// ID returns the session id attached to every log entry.
func (s *Session) ID() string {
	return s.id
}

// Editor exposes the live document.
func (s *Session) Editor() *document.Editor {
	return s.editor
}

// Persistence exposes the save manager.
func (s *Session) Persistence() *persistence.Manager {
	return s.manager
}

// Start restores the stored snapshot, if any, and renders the initial
// output. It reports whether a snapshot was restored.
func (s *Session) Start(ctx context.Context) bool {
	ctx = logging.ContextWithFields(ctx, map[string]any{"session_id": s.id})
	restored := s.manager.LoadOnce(ctx)
	s.refresh(s.editor.PlainText())
	s.logger.Info("session.started", "slot", s.manager.Key(), "restored", restored)
	return restored
}

// Output returns the last rendered output.
func (s *Session) Output() Output {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.output
}

// Toolbar applies the named toolbar action to the current selection.
func (s *Session) Toolbar(ctx context.Context, name string) error {
	err := s.handlers.Insert.Execute(ctx, toolbarcmd.InsertMarkdownCommand{Action: name})
	if err != nil {
		logging.WithSessionContext(s.logger, "", "", name).Warn("session.toolbar.failed", "error", err)
	}
	return err
}

// Type inserts text at the selection, or at the end of the document when
// nothing is selected.
func (s *Session) Type(ctx context.Context, text string) error {
	return s.editor.Update(ctx, func(tx *document.Tx) error {
		tx.InsertText(text)
		return nil
	})
}

// Select installs a selection.
func (s *Session) Select(ctx context.Context, sel document.Selection) error {
	return s.editor.Update(ctx, func(tx *document.Tx) error {
		return tx.SetSelection(sel)
	})
}

// SelectAll selects the whole document.
func (s *Session) SelectAll(ctx context.Context) error {
	return s.editor.Update(ctx, func(tx *document.Tx) error {
		tx.SelectAll()
		return nil
	})
}

// Blur drops the selection, as when the editor loses focus.
func (s *Session) Blur(ctx context.Context) error {
	return s.editor.Update(ctx, func(tx *document.Tx) error {
		tx.ClearSelection()
		return nil
	})
}

// CopyToClipboard copies the plain text to the clipboard and posts the
// outcome as a notification. Failures are logged and returned but leave
// the session usable.
func (s *Session) CopyToClipboard(ctx context.Context) error {
	if err := s.handlers.Copy.Execute(ctx, toolbarcmd.CopyToClipboardCommand{}); err != nil {
		s.logger.Error("session.clipboard.failed", "error", err)
		s.notify(MessageCopyFailed, interfaces.SeverityDanger)
		return err
	}
	s.notify(MessageCopied, interfaces.SeveritySuccess)
	return nil
}

// Notification returns the visible notification, if any.
func (s *Session) Notification() (interfaces.Notification, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.notification == nil {
		return interfaces.Notification{}, false
	}
	return *s.notification, true
}

// DismissNotification hides the visible notification immediately.
func (s *Session) DismissNotification() {
	s.mu.Lock()
	gen := s.noticeGen
	s.mu.Unlock()
	s.expire(gen)
}

// Close stops listening for changes, cancels timers and, when enabled,
// flushes a pending save. It is safe to call more than once.
func (s *Session) Close(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	if s.dismiss != nil {
		s.dismiss.Stop()
		s.dismiss = nil
	}
	s.noticeGen++
	s.mu.Unlock()

	s.unsubscribe()

	var err error
	if s.flushOnClose {
		err = s.manager.Flush(ctx)
		if err != nil {
			s.logger.Error("session.close.flush_failed", "error", err)
		}
	}
	s.manager.Close()
	s.logger.Info("session.closed")
	return err
}

func (s *Session) refresh(text string) {
	html := s.renderer.Render(text)
	m := metrics.Compute(text)
	s.mu.Lock()
	s.output = Output{
		PlainText:  text,
		HTML:       html,
		Words:      m.Words,
		Characters: m.Characters,
	}
	s.mu.Unlock()
}

func (s *Session) notify(message string, severity interfaces.Severity) {
	n := interfaces.Notification{
		Message:   message,
		Severity:  severity,
		CreatedAt: s.clock.Now(),
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if s.dismiss != nil {
		s.dismiss.Stop()
	}
	s.noticeGen++
	gen := s.noticeGen
	s.notification = &n
	s.dismiss = s.clock.AfterFunc(s.ttl, func() {
		s.expire(gen)
	})
	notifier := s.notifier
	s.mu.Unlock()

	if notifier != nil {
		notifier.Notify(n)
	}
}

func (s *Session) expire(gen uint64) {
	s.mu.Lock()
	if gen != s.noticeGen || s.notification == nil {
		s.mu.Unlock()
		return
	}
	s.notification = nil
	s.dismiss = nil
	notifier := s.notifier
	s.mu.Unlock()

	if notifier != nil {
		notifier.Clear()
	}
}
