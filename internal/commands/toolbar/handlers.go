package toolbarcmd

import (
	"context"
	"errors"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-medit/internal/commands"
	"github.com/goliatone/go-medit/internal/document"
	"github.com/goliatone/go-medit/internal/insertion"
	"github.com/goliatone/go-medit/internal/logging"
	"github.com/goliatone/go-medit/pkg/interfaces"
)

const (
	insertOperation = "toolbar.insert_markdown"
	copyOperation   = "toolbar.copy_to_clipboard"

	// ClipboardWriteFailedCode tags clipboard failures surfaced by the copy handler.
	ClipboardWriteFailedCode = "CLIPBOARD_WRITE_FAILED"
)

// ErrClipboardUnavailable is returned when the copy handler has no clipboard.
var ErrClipboardUnavailable = errors.New("toolbar command: clipboard unavailable")

var (
	_ command.Commander[InsertMarkdownCommand]  = (*InsertMarkdownHandler)(nil)
	_ command.Commander[CopyToClipboardCommand] = (*CopyToClipboardHandler)(nil)
)

// InsertMarkdownHandler runs toolbar insertions against an editor.
type InsertMarkdownHandler struct {
	inner *commands.Handler[InsertMarkdownCommand]
}

// NewInsertMarkdownHandler binds the handler to engine and editor. A press
// without a selection succeeds and leaves the document untouched.
func NewInsertMarkdownHandler(engine *insertion.Engine, editor *document.Editor, logger interfaces.Logger, opts ...commands.HandlerOption[InsertMarkdownCommand]) *InsertMarkdownHandler {
	baseLogger := commands.EnsureLogger(logger)
	if engine == nil {
		engine = insertion.NewEngine(baseLogger)
	}

	exec := func(ctx context.Context, msg InsertMarkdownCommand) error {
		action, err := insertion.Lookup(msg.Action)
		if err != nil {
			return err
		}
		applied, err := engine.Apply(ctx, editor, action)
		if err != nil {
			return err
		}
		logging.WithFields(baseLogger, map[string]any{
			"action":  action.Name,
			"applied": applied,
		}).Debug("toolbar.command.insert_markdown.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[InsertMarkdownCommand]{
		commands.WithLogger[InsertMarkdownCommand](baseLogger),
		commands.WithOperation[InsertMarkdownCommand](insertOperation),
		commands.WithMessageFields(func(msg InsertMarkdownCommand) map[string]any {
			return map[string]any{"action": msg.Action}
		}),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &InsertMarkdownHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[InsertMarkdownCommand].
func (h *InsertMarkdownHandler) Execute(ctx context.Context, msg InsertMarkdownCommand) error {
	return h.inner.Execute(ctx, msg)
}

// TextSource supplies the text copied to the clipboard.
type TextSource interface {
	PlainText() string
}

// CopyToClipboardHandler writes the document plain text to a clipboard.
type CopyToClipboardHandler struct {
	inner *commands.Handler[CopyToClipboardCommand]
}

// NewCopyToClipboardHandler binds the handler to source and clip. Clipboard
// failures come back tagged with ClipboardWriteFailedCode.
func NewCopyToClipboardHandler(source TextSource, clip interfaces.Clipboard, logger interfaces.Logger, opts ...commands.HandlerOption[CopyToClipboardCommand]) *CopyToClipboardHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, _ CopyToClipboardCommand) error {
		if clip == nil {
			return commands.WrapDomainError(ErrClipboardUnavailable, "clipboard write failed", ClipboardWriteFailedCode)
		}
		text := source.PlainText()
		if err := clip.WriteText(ctx, text); err != nil {
			return commands.WrapDomainError(err, "clipboard write failed", ClipboardWriteFailedCode)
		}
		baseLogger.Debug("toolbar.command.copy_to_clipboard.completed", "bytes", len(text))
		return nil
	}

	handlerOpts := []commands.HandlerOption[CopyToClipboardCommand]{
		commands.WithLogger[CopyToClipboardCommand](baseLogger),
		commands.WithOperation[CopyToClipboardCommand](copyOperation),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &CopyToClipboardHandler{inner: commands.NewHandler(exec, handlerOpts...)}
}

// Execute satisfies command.Commander[CopyToClipboardCommand].
func (h *CopyToClipboardHandler) Execute(ctx context.Context, msg CopyToClipboardCommand) error {
	return h.inner.Execute(ctx, msg)
}
