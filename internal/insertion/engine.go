// Package insertion turns toolbar actions into markdown text written back
// into the document at the current selection.
package insertion

import (
	"context"

	"github.com/goliatone/go-medit/internal/document"
	"github.com/goliatone/go-medit/internal/logging"
	"github.com/goliatone/go-medit/pkg/interfaces"
)

// Compose builds the replacement text for selected text. Wrapping actions
// surround the selection with symbol on both sides; prefix actions place
// symbol before it.
func Compose(symbol, selected string, wrap bool) string {
	if wrap {
		return symbol + selected + symbol
	}
	return symbol + selected
}

// Insert replaces the current selection with the composed markdown. It must
// run inside an Editor.Update callback. Without a valid selection it leaves
// the document untouched and returns false; toolbar buttons can be pressed
// while the editor has no focus.
func Insert(tx *document.Tx, symbol string, wrap bool) bool {
	if tx == nil {
		return false
	}
	if _, ok := tx.Selection(); !ok {
		return false
	}
	return tx.ReplaceSelection(Compose(symbol, tx.SelectedText(), wrap))
}

// Engine applies toolbar actions to an editor.
type Engine struct {
	logger interfaces.Logger
}

// NewEngine constructs an Engine. A nil logger disables logging.
func NewEngine(logger interfaces.Logger) *Engine {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Engine{logger: logger}
}

// Apply runs action against editor inside a single update. The returned
// bool reports whether the document changed.
func (e *Engine) Apply(ctx context.Context, editor *document.Editor, action Action) (bool, error) {
	applied := false
	err := editor.Update(ctx, func(tx *document.Tx) error {
		applied = Insert(tx, action.Symbol, action.Wrap)
		return nil
	})
	if err != nil {
		return false, err
	}
	if !applied {
		e.logger.Debug("insertion.skipped.no_selection", "action", action.Name)
		return false, nil
	}
	e.logger.Debug("insertion.applied", "action", action.Name)
	return true, nil
}
