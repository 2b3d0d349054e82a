package document

import (
	"context"
	"slices"
	"sync"

	"github.com/goliatone/go-medit/internal/logging"
	"github.com/goliatone/go-medit/pkg/interfaces"
)

// State is an immutable view of a committed document and its selection.
type State struct {
	doc       *Document
	selection *Selection
	revision  uint64
}

// Document returns a copy of the committed document.
func (s *State) Document() *Document {
	return s.doc.Clone()
}

// Selection returns the committed selection, or false when there is none.
func (s *State) Selection() (Selection, bool) {
	if s.selection == nil {
		return Selection{}, false
	}
	return *s.selection, true
}

// PlainText returns the trimmed text content of the committed document.
func (s *State) PlainText() string {
	return s.doc.PlainText()
}

// Revision counts committed document mutations.
func (s *State) Revision() uint64 {
	return s.revision
}

// ChangeListener observes committed document mutations. ctx marks the
// running update; a listener that needs to update the editor again must pass
// it on so the nested call is rejected instead of blocking.
type ChangeListener func(ctx context.Context, state *State)

// Option configures an Editor.
type Option func(*Editor)

// WithLogger injects the logger used for update diagnostics.
func WithLogger(logger interfaces.Logger) Option {
	return func(e *Editor) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithDocument seeds the editor with an initial document.
func WithDocument(doc *Document) Option {
	return func(e *Editor) {
		if doc != nil {
			e.state = &State{doc: doc.Clone()}
		}
	}
}

// Editor owns the single live document of a session. Mutations run inside
// Update; readers always observe the last committed state.
type Editor struct {
	stateMu sync.RWMutex
	state   *State

	// writeMu serializes updates, held through commit and notification.
	writeMu sync.Mutex

	listenersMu sync.Mutex
	listeners   map[int]ChangeListener
	nextID      int

	logger interfaces.Logger
}

// NewEditor returns an editor holding the default empty document.
func NewEditor(opts ...Option) *Editor {
	e := &Editor{
		state:     &State{doc: New()},
		listeners: map[int]ChangeListener{},
		logger:    logging.NoOp(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State returns the last committed state.
func (e *Editor) State() *State {
	e.stateMu.RLock()
	defer e.stateMu.RUnlock()
	return e.state
}

// Read runs fn against the committed state.
func (e *Editor) Read(fn func(state *State)) {
	if fn == nil {
		return
	}
	fn(e.State())
}

// PlainText returns the committed document text, trimmed.
func (e *Editor) PlainText() string {
	return e.State().PlainText()
}

type updateKey struct{ editor *Editor }

func (e *Editor) inUpdate(ctx context.Context) bool {
	return ctx.Value(updateKey{e}) != nil
}

// Update runs fn with exclusive write access to a working copy of the
// document. The copy is committed only when fn returns nil; listeners are
// notified afterwards, in commit order, when the document itself changed.
// Concurrent updates wait their turn. An update started with the context of
// a running update (Tx.Context or the listener context) is rejected with
// ErrUpdateInProgress.
func (e *Editor) Update(ctx context.Context, fn func(tx *Tx) error) error {
	if fn == nil {
		return ErrNilMutator
	}
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if e.inUpdate(ctx) {
		return ErrUpdateInProgress
	}

	e.writeMu.Lock()
	defer e.writeMu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	ctx = context.WithValue(ctx, updateKey{e}, true)

	base := e.State()
	tx := newTx(ctx, base)
	if err := fn(tx); err != nil {
		e.logger.Debug("document.update.discarded", "error", err)
		return err
	}
	if !tx.dirty && !tx.selectionChanged {
		return nil
	}

	next := &State{
		doc:       tx.doc,
		selection: tx.selection,
		revision:  base.revision,
	}
	if tx.dirty {
		next.revision++
	}

	e.stateMu.Lock()
	e.state = next
	e.stateMu.Unlock()

	if tx.dirty {
		e.logger.Trace("document.update.committed", "revision", next.revision)
		e.notify(ctx, next)
	}
	return nil
}

// SetState replaces the document wholesale and clears the selection.
func (e *Editor) SetState(ctx context.Context, doc *Document) error {
	if doc == nil {
		doc = New()
	}
	return e.Update(ctx, func(tx *Tx) error {
		tx.Replace(doc)
		return nil
	})
}

// OnChange registers a listener for committed document mutations and
// returns a function that removes it.
func (e *Editor) OnChange(listener ChangeListener) func() {
	if listener == nil {
		return func() {}
	}
	e.listenersMu.Lock()
	id := e.nextID
	e.nextID++
	e.listeners[id] = listener
	e.listenersMu.Unlock()

	return func() {
		e.listenersMu.Lock()
		delete(e.listeners, id)
		e.listenersMu.Unlock()
	}
}

func (e *Editor) notify(ctx context.Context, state *State) {
	e.listenersMu.Lock()
	ids := make([]int, 0, len(e.listeners))
	for id := range e.listeners {
		ids = append(ids, id)
	}
	listeners := make([]ChangeListener, 0, len(ids))
	slices.Sort(ids)
	for _, id := range ids {
		listeners = append(listeners, e.listeners[id])
	}
	e.listenersMu.Unlock()

	for _, listener := range listeners {
		listener(ctx, state)
	}
}
