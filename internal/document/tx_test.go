package document

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func update(t *testing.T, editor *Editor, fn func(tx *Tx)) {
	t.Helper()
	err := editor.Update(context.Background(), func(tx *Tx) error {
		fn(tx)
		return nil
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
}

func TestTxSelectedText(t *testing.T) {
	editor := NewEditor(WithDocument(FromText("say hi now")))

	update(t, editor, func(tx *Tx) {
		if err := tx.SetSelection(Range(Point{Offset: 4}, Point{Offset: 6})); err != nil {
			t.Fatalf("SetSelection: %v", err)
		}
		if got := tx.SelectedText(); got != "hi" {
			t.Fatalf("expected hi, got %q", got)
		}
	})
}

func TestTxSelectedTextBackwardsSelection(t *testing.T) {
	editor := NewEditor(WithDocument(FromText("say hi now")))

	update(t, editor, func(tx *Tx) {
		_ = tx.SetSelection(Range(Point{Offset: 6}, Point{Offset: 4}))
		if got := tx.SelectedText(); got != "hi" {
			t.Fatalf("expected hi, got %q", got)
		}
	})
}

func TestTxReplaceSelectionWithinBlock(t *testing.T) {
	editor := NewEditor(WithDocument(FromText("say hi now")))

	update(t, editor, func(tx *Tx) {
		_ = tx.SetSelection(Range(Point{Offset: 4}, Point{Offset: 6}))
		if !tx.ReplaceSelection("**hi**") {
			t.Fatal("expected replacement to apply")
		}
		sel, ok := tx.Selection()
		if !ok || !sel.IsCollapsed() || sel.Focus != (Point{Offset: 10}) {
			t.Fatalf("expected caret after inserted text, got %+v (ok=%v)", sel, ok)
		}
	})

	if got := editor.PlainText(); got != "say **hi** now" {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestTxReplaceSelectionFlattensBlocks(t *testing.T) {
	editor := NewEditor(WithDocument(FromText("one\n\ntwo\n\nthree")))

	update(t, editor, func(tx *Tx) {
		_ = tx.SetSelection(Range(Point{Block: 0, Offset: 1}, Point{Block: 2, Offset: 2}))
		if got := tx.SelectedText(); got != "ne\n\ntwo\n\nth" {
			t.Fatalf("unexpected selected text %q", got)
		}
		tx.ReplaceSelection("_" + tx.SelectedText() + "_")
	})

	blocks := editor.State().Document().Blocks()
	if len(blocks) != 1 {
		t.Fatalf("expected blocks to merge into one, got %d", len(blocks))
	}
	if got := editor.PlainText(); got != "o_ne\n\ntwo\n\nth_ree" {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestTxReplaceSelectionWithoutSelectionIsNoop(t *testing.T) {
	editor := NewEditor(WithDocument(FromText("keep")))
	before := editor.State().Document()

	update(t, editor, func(tx *Tx) {
		if tx.ReplaceSelection("nope") {
			t.Fatal("expected replacement to be skipped")
		}
	})

	if diff := cmp.Diff(before, editor.State().Document()); diff != "" {
		t.Fatalf("document changed (-want +got):\n%s", diff)
	}
	if editor.State().Revision() != 0 {
		t.Fatalf("expected no commit, got revision %d", editor.State().Revision())
	}
}

func TestTxSetSelectionRejectsOutOfRange(t *testing.T) {
	editor := NewEditor(WithDocument(FromText("abc")))

	update(t, editor, func(tx *Tx) {
		if err := tx.SetSelection(Caret(Point{Block: 0, Offset: 4})); err != ErrInvalidSelection {
			t.Fatalf("expected ErrInvalidSelection, got %v", err)
		}
		if err := tx.SetSelection(Caret(Point{Block: 3})); err != ErrInvalidSelection {
			t.Fatalf("expected ErrInvalidSelection, got %v", err)
		}
	})
}

func TestTxInsertTextSplitsParagraphs(t *testing.T) {
	editor := NewEditor()

	update(t, editor, func(tx *Tx) {
		tx.InsertText("# Title\nbody")
	})

	blocks := editor.State().Document().Blocks()
	if len(blocks) != 2 {
		t.Fatalf("expected two paragraphs, got %d", len(blocks))
	}
	if got := editor.PlainText(); got != "# Title\n\nbody" {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestTxInsertTextAtCaretInMiddle(t *testing.T) {
	editor := NewEditor(WithDocument(FromText("ac")))

	update(t, editor, func(tx *Tx) {
		_ = tx.SetSelection(Caret(Point{Offset: 1}))
		tx.InsertText("b")
	})

	if got := editor.PlainText(); got != "abc" {
		t.Fatalf("expected abc, got %q", got)
	}
}

func TestTxSelectAllCoversDocument(t *testing.T) {
	editor := NewEditor(WithDocument(FromText("a\n\nbc")))

	update(t, editor, func(tx *Tx) {
		tx.SelectAll()
		if got := tx.SelectedText(); got != "a\n\nbc" {
			t.Fatalf("unexpected selection %q", got)
		}
	})
}

func TestFromTextBuildsLineBreaks(t *testing.T) {
	doc := FromText("line one\nline two")

	blocks := doc.Blocks()
	if len(blocks) != 1 {
		t.Fatalf("expected one paragraph, got %d", len(blocks))
	}
	want := []*Node{
		{Type: TypeText, Text: "line one"},
		{Type: TypeLineBreak},
		{Type: TypeText, Text: "line two"},
	}
	if diff := cmp.Diff(want, blocks[0].Children); diff != "" {
		t.Fatalf("unexpected inline nodes (-want +got):\n%s", diff)
	}
	if doc.PlainText() != "line one\nline two" {
		t.Fatalf("unexpected text %q", doc.PlainText())
	}
}
