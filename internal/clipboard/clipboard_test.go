package clipboard

import (
	"context"
	"errors"
	"testing"
)

func TestMemoryWriteText(t *testing.T) {
	clip := NewMemory()
	if err := clip.WriteText(context.Background(), "hello"); err != nil {
		t.Fatalf("WriteText: %v", err)
	}
	if clip.Text() != "hello" || clip.Writes() != 1 {
		t.Fatalf("unexpected clipboard state %q/%d", clip.Text(), clip.Writes())
	}
}

func TestMemoryInjectedFailure(t *testing.T) {
	denied := errors.New("permission denied")
	clip := NewMemory()
	clip.Fail(denied)

	err := clip.WriteText(context.Background(), "secret")
	if !errors.Is(err, ErrClipboard) || !errors.Is(err, denied) {
		t.Fatalf("expected ClipboardError wrapping cause, got %v", err)
	}
	if clip.Text() != "" || clip.Writes() != 0 {
		t.Fatal("expected failed write to leave clipboard untouched")
	}

	clip.Fail(nil)
	if err := clip.WriteText(context.Background(), "ok"); err != nil {
		t.Fatalf("expected recovery after reset, got %v", err)
	}
}

func TestMemoryRespectsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewMemory().WriteText(ctx, "late")
	var clipErr *ClipboardError
	if !errors.As(err, &clipErr) || !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancelled ClipboardError, got %v", err)
	}
}

func TestWrapDoesNotDoubleWrap(t *testing.T) {
	first := wrap(errors.New("x"))
	if wrap(first) != first {
		t.Fatal("expected existing ClipboardError to be returned as is")
	}
	if wrap(nil) != nil {
		t.Fatal("expected nil to stay nil")
	}
}
