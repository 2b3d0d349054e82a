// Package clipboard provides the clipboard sinks used by the copy action.
package clipboard

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/atotto/clipboard"

	"github.com/goliatone/go-medit/pkg/interfaces"
)

var (
	// ErrClipboard matches every ClipboardError through errors.Is.
	ErrClipboard = errors.New("clipboard: write failed")
	// ErrUnsupported is the cause reported when no system clipboard utility is available.
	ErrUnsupported = errors.New("clipboard: no system clipboard available")
)

// ClipboardError reports a rejected clipboard write.
type ClipboardError struct {
	Cause error
}

func (e *ClipboardError) Error() string {
	return fmt.Sprintf("%s: %v", ErrClipboard, e.Cause)
}

func (e *ClipboardError) Unwrap() error {
	return e.Cause
}

func (e *ClipboardError) Is(target error) bool {
	return target == ErrClipboard
}

func wrap(err error) error {
	if err == nil {
		return nil
	}
	var clipErr *ClipboardError
	if errors.As(err, &clipErr) {
		return err
	}
	return &ClipboardError{Cause: err}
}

// System writes to the operating system clipboard.
type System struct{}

var _ interfaces.Clipboard = System{}

// NewSystem returns the system clipboard sink.
func NewSystem() System {
	return System{}
}

// Available reports whether a clipboard utility was found at startup.
func (System) Available() bool {
	return !clipboard.Unsupported
}

// WriteText copies text to the system clipboard.
func (s System) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return wrap(err)
	}
	if !s.Available() {
		return wrap(ErrUnsupported)
	}
	return wrap(clipboard.WriteAll(text))
}

// Memory is an in-process clipboard. Fail injects an error for the next
// writes until reset with Fail(nil).
type Memory struct {
	mu     sync.Mutex
	text   string
	writes int
	err    error
}

var _ interfaces.Clipboard = (*Memory)(nil)

// NewMemory constructs an empty in-process clipboard.
func NewMemory() *Memory {
	return &Memory{}
}

// WriteText stores text unless a failure was injected.
func (m *Memory) WriteText(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return wrap(err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return wrap(m.err)
	}
	m.text = text
	m.writes++
	return nil
}

// Fail makes subsequent writes return err.
func (m *Memory) Fail(err error) {
	m.mu.Lock()
	m.err = err
	m.mu.Unlock()
}

// Text returns the last written text.
func (m *Memory) Text() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text
}

// Writes reports the number of successful writes.
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
