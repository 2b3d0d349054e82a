// Package persistence keeps a debounced snapshot of the editor document in
// a durable slot and restores it once at startup.
package persistence

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/goliatone/go-medit/internal/document"
	"github.com/goliatone/go-medit/internal/logging"
	"github.com/goliatone/go-medit/pkg/interfaces"
)

const (
	// DefaultDelay is the idle window after the last change before a save.
	DefaultDelay = 500 * time.Millisecond
	// DefaultWriteTimeout bounds a single background write.
	DefaultWriteTimeout = 5 * time.Second
)

// Option configures a Manager.
type Option func(*Manager)

// WithDelay overrides the debounce window.
func WithDelay(delay time.Duration) Option {
	return func(m *Manager) {
		if delay > 0 {
			m.delay = delay
		}
	}
}

// WithClock overrides the clock driving the debounce timer.
func WithClock(c clock.Clock) Option {
	return func(m *Manager) {
		if c != nil {
			m.clock = c
		}
	}
}

// WithKey overrides the slot key.
func WithKey(key string) Option {
	return func(m *Manager) {
		if key != "" {
			m.key = key
		}
	}
}

// WithLogger injects the logger used for persistence diagnostics.
func WithLogger(logger interfaces.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithWriteTimeout bounds background writes. Zero disables the bound.
func WithWriteTimeout(timeout time.Duration) Option {
	return func(m *Manager) {
		m.writeTimeout = timeout
	}
}

// Manager serializes the editor document to a slot store on a trailing-edge
// debounce. A single pending timer is replaced on every ScheduleSave, so a
// burst of changes produces one write holding the state at fire time.
type Manager struct {
	editor *document.Editor
	store  interfaces.SlotStore

	key          string
	delay        time.Duration
	writeTimeout time.Duration
	clock        clock.Clock
	logger       interfaces.Logger

	mu         sync.Mutex
	pending    *clock.Timer
	generation uint64
	loaded     bool
	closed     bool

	// writeMu orders writes so an explicit Flush never races a timer fire.
	writeMu sync.Mutex
	saves   int
	lastErr error
}

// NewManager binds a manager to editor and store.
func NewManager(editor *document.Editor, store interfaces.SlotStore, opts ...Option) *Manager {
	m := &Manager{
		editor:       editor,
		store:        store,
		key:          interfaces.EditorStateKey,
		delay:        DefaultDelay,
		writeTimeout: DefaultWriteTimeout,
		clock:        clock.New(),
		logger:       logging.NoOp(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Key returns the slot key written by the manager.
func (m *Manager) Key() string {
	return m.key
}

// ScheduleSave arms the debounce timer, cancelling any pending one.
func (m *Manager) ScheduleSave() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return
	}
	if m.pending != nil {
		m.pending.Stop()
	}
	m.generation++
	generation := m.generation
	m.pending = m.clock.AfterFunc(m.delay, func() {
		m.fire(generation)
	})
}

// Pending reports whether a save is scheduled.
func (m *Manager) Pending() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pending != nil
}

func (m *Manager) fire(generation uint64) {
	m.mu.Lock()
	if m.closed || generation != m.generation {
		m.mu.Unlock()
		return
	}
	m.pending = nil
	m.mu.Unlock()

	ctx := context.Background()
	if m.writeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.writeTimeout)
		defer cancel()
	}
	// Background writes are best effort; the error is logged and recorded.
	_ = m.save(ctx)
}

// Flush writes immediately when a save is pending and cancels the timer.
func (m *Manager) Flush(ctx context.Context) error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	if m.pending == nil {
		m.mu.Unlock()
		return nil
	}
	m.pending.Stop()
	m.pending = nil
	m.generation++
	m.mu.Unlock()

	return m.save(ctx)
}

// Close cancels any pending timer and waits for an in-flight write to
// finish. No write happens after Close returns.
func (m *Manager) Close() {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return
	}
	m.closed = true
	if m.pending != nil {
		m.pending.Stop()
		m.pending = nil
	}
	m.generation++
	m.mu.Unlock()

	// save re-checks closed under writeMu, so taking it here drains the
	// write already past that check.
	m.writeMu.Lock()
	m.writeMu.Unlock()
}

func (m *Manager) save(ctx context.Context) error {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()

	m.mu.Lock()
	closed := m.closed
	m.mu.Unlock()
	if closed {
		return ErrClosed
	}

	state := m.editor.State()
	blob, err := document.Serialize(state.Document())
	if err == nil {
		err = m.store.Put(ctx, m.key, blob)
	}
	if err != nil {
		writeErr := &PersistenceWriteError{Key: m.key, Cause: err}
		m.lastErr = writeErr
		m.logger.Error("persistence.save.failed", "slot", m.key, "error", writeErr)
		return writeErr
	}

	m.saves++
	m.lastErr = nil
	m.logger.Debug("persistence.save.completed", "slot", m.key, "revision", state.Revision(), "bytes", len(blob))
	return nil
}

// Saves reports the number of successful writes.
func (m *Manager) Saves() int {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()
	return m.saves
}

// LastError returns the error of the most recent write, or nil.
func (m *Manager) LastError() error {
	m.writeMu.Lock()
	defer m.writeMu.Unlock()
	return m.lastErr
}

// LoadOnce restores the stored snapshot into the editor. Only the first call
// has any effect. It reports whether a snapshot was restored; read failures
// and corrupt snapshots are logged and leave the editor at its initial
// empty document.
func (m *Manager) LoadOnce(ctx context.Context) bool {
	m.mu.Lock()
	if m.loaded || m.closed {
		m.mu.Unlock()
		return false
	}
	m.loaded = true
	m.mu.Unlock()

	logger := m.logger.WithContext(ctx)
	blob, ok, err := m.store.Get(ctx, m.key)
	if err != nil {
		logger.Error("persistence.load.read_failed", "slot", m.key, "error", err)
		return false
	}
	if !ok {
		logger.Debug("persistence.load.empty", "slot", m.key)
		return false
	}

	doc, err := document.Deserialize(blob)
	if err != nil {
		var corruptErr *document.CorruptStateError
		if errors.As(err, &corruptErr) {
			logger.Warn("persistence.load.corrupt", "slot", m.key, "reason", corruptErr.Reason, "error", err)
		} else {
			logger.Error("persistence.load.failed", "slot", m.key, "error", err)
		}
		return false
	}

	if err := m.editor.SetState(ctx, doc); err != nil {
		logger.Error("persistence.load.apply_failed", "slot", m.key, "error", err)
		return false
	}
	logger.Info("persistence.load.restored", "slot", m.key, "bytes", len(blob))
	return true
}
