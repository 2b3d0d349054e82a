package toolbarcmd

import (
	"context"
	"errors"
	"testing"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-medit/internal/clipboard"
	"github.com/goliatone/go-medit/internal/document"
	"github.com/goliatone/go-medit/internal/logging"
)

func editorWithSelection(t *testing.T, text string, start, end int) *document.Editor {
	t.Helper()
	editor := document.NewEditor(document.WithDocument(document.FromText(text)))
	err := editor.Update(context.Background(), func(tx *document.Tx) error {
		return tx.SetSelection(document.Range(document.Point{Offset: start}, document.Point{Offset: end}))
	})
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	return editor
}

func TestInsertMarkdownHandlerWrapsSelection(t *testing.T) {
	editor := editorWithSelection(t, "make this bold", 10, 14)
	handler := NewInsertMarkdownHandler(nil, editor, logging.NoOp())

	if err := handler.Execute(context.Background(), InsertMarkdownCommand{Action: "bold"}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if got := editor.PlainText(); got != "make this **bold**" {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestInsertMarkdownHandlerWithoutSelectionIsNoop(t *testing.T) {
	editor := document.NewEditor(document.WithDocument(document.FromText("untouched")))
	handler := NewInsertMarkdownHandler(nil, editor, nil)

	if err := handler.Execute(context.Background(), InsertMarkdownCommand{Action: "link"}); err != nil {
		t.Fatalf("expected press without selection to succeed, got %v", err)
	}
	if got := editor.PlainText(); got != "untouched" {
		t.Fatalf("expected no mutation, got %q", got)
	}
}

func TestInsertMarkdownHandlerRejectsUnknownAction(t *testing.T) {
	editor := editorWithSelection(t, "text", 0, 4)
	handler := NewInsertMarkdownHandler(nil, editor, nil)

	err := handler.Execute(context.Background(), InsertMarkdownCommand{Action: "underline"})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
	if got := editor.PlainText(); got != "text" {
		t.Fatalf("expected no mutation, got %q", got)
	}
}

func TestCopyToClipboardHandler(t *testing.T) {
	editor := document.NewEditor(document.WithDocument(document.FromText("copy me")))
	clip := clipboard.NewMemory()
	handler := NewCopyToClipboardHandler(editor, clip, nil)

	if err := handler.Execute(context.Background(), CopyToClipboardCommand{}); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if clip.Text() != "copy me" {
		t.Fatalf("unexpected clipboard contents %q", clip.Text())
	}
}

func TestCopyToClipboardHandlerFailure(t *testing.T) {
	denied := errors.New("denied")
	editor := document.NewEditor(document.WithDocument(document.FromText("copy me")))
	clip := clipboard.NewMemory()
	clip.Fail(denied)
	handler := NewCopyToClipboardHandler(editor, clip, nil)

	err := handler.Execute(context.Background(), CopyToClipboardCommand{})
	if !errors.Is(err, clipboard.ErrClipboard) || !errors.Is(err, denied) {
		t.Fatalf("expected clipboard error, got %v", err)
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
}

func TestCopyToClipboardHandlerWithoutClipboard(t *testing.T) {
	handler := NewCopyToClipboardHandler(document.NewEditor(), nil, nil)
	err := handler.Execute(context.Background(), CopyToClipboardCommand{})
	if !errors.Is(err, ErrClipboardUnavailable) {
		t.Fatalf("expected ErrClipboardUnavailable, got %v", err)
	}
}

type recordingRegistry struct {
	handlers []any
	err      error
}

func (r *recordingRegistry) RegisterCommand(handler any) error {
	if r.err != nil {
		return r.err
	}
	r.handlers = append(r.handlers, handler)
	return nil
}

func TestRegisterToolbarCommands(t *testing.T) {
	reg := &recordingRegistry{}
	set, err := RegisterToolbarCommands(reg, document.NewEditor(), clipboard.NewMemory(), nil)
	if err != nil {
		t.Fatalf("RegisterToolbarCommands: %v", err)
	}
	if set.Insert == nil || set.Copy == nil {
		t.Fatal("expected both handlers")
	}
	if len(reg.handlers) != 2 {
		t.Fatalf("expected two registrations, got %d", len(reg.handlers))
	}

	if _, err := RegisterToolbarCommands(nil, nil, nil, nil); err == nil {
		t.Fatal("expected error for nil editor")
	}

	failing := &recordingRegistry{err: errors.New("registry closed")}
	if _, err := RegisterToolbarCommands(failing, document.NewEditor(), nil, nil); err == nil {
		t.Fatal("expected registry error to propagate")
	}
}
