package insertion

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-medit/internal/document"
)

func editorWithSelection(t *testing.T, text string, sel *document.Selection) *document.Editor {
	t.Helper()
	editor := document.NewEditor(document.WithDocument(document.FromText(text)))
	if sel == nil {
		return editor
	}
	err := editor.Update(context.Background(), func(tx *document.Tx) error {
		return tx.SetSelection(*sel)
	})
	if err != nil {
		t.Fatalf("SetSelection: %v", err)
	}
	return editor
}

func TestInsertWrapsSelection(t *testing.T) {
	sel := document.Range(document.Point{Offset: 0}, document.Point{Offset: 2})
	editor := editorWithSelection(t, "hi", &sel)

	applied, err := NewEngine(nil).Apply(context.Background(), editor, Action{Name: "bold", Symbol: "**", Wrap: true})
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if !applied {
		t.Fatal("expected insertion to apply")
	}
	if got := editor.PlainText(); got != "**hi**" {
		t.Fatalf("expected **hi**, got %q", got)
	}
	got, _ := editor.State().Selection()
	if want := document.Caret(document.Point{Offset: 6}); got != want {
		t.Fatalf("expected caret after insertion, got %+v", got)
	}
}

func TestInsertPrefixAtCollapsedCursor(t *testing.T) {
	sel := document.Caret(document.Point{})
	editor := editorWithSelection(t, "", &sel)

	heading, err := Lookup(ActionHeading)
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if _, err := NewEngine(nil).Apply(context.Background(), editor, heading); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got := editor.State().Document().TextContent(); got != "# " {
		t.Fatalf("expected %q, got %q", "# ", got)
	}
}

func TestInsertPrefixReplacesSelection(t *testing.T) {
	sel := document.Range(document.Point{Offset: 6}, document.Point{Offset: 10})
	editor := editorWithSelection(t, "quote this", &sel)

	if _, err := NewEngine(nil).Apply(context.Background(), editor, Action{Name: "quote", Symbol: "> "}); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if got := editor.PlainText(); got != "quote > this" {
		t.Fatalf("unexpected text %q", got)
	}
}

func TestInsertWithoutSelectionIsNoop(t *testing.T) {
	editor := editorWithSelection(t, "unchanged", nil)
	before := editor.State().Document()

	for _, action := range Toolbar() {
		applied, err := NewEngine(nil).Apply(context.Background(), editor, action)
		if err != nil {
			t.Fatalf("Apply(%s): %v", action.Name, err)
		}
		if applied {
			t.Fatalf("expected %s to be skipped without a selection", action.Name)
		}
	}

	if diff := cmp.Diff(before, editor.State().Document()); diff != "" {
		t.Fatalf("document changed (-want +got):\n%s", diff)
	}
}

func TestInsertNilTxIsNoop(t *testing.T) {
	if Insert(nil, "**", true) {
		t.Fatal("expected nil transaction to be ignored")
	}
}

func TestCompose(t *testing.T) {
	cases := []struct {
		symbol   string
		selected string
		wrap     bool
		want     string
	}{
		{"**", "hi", true, "**hi**"},
		{"==", "", true, "===="},
		{"# ", "", false, "# "},
		{"- ", "item", false, "- item"},
	}
	for _, tc := range cases {
		if got := Compose(tc.symbol, tc.selected, tc.wrap); got != tc.want {
			t.Fatalf("Compose(%q, %q, %v) = %q, want %q", tc.symbol, tc.selected, tc.wrap, got, tc.want)
		}
	}
}

func TestLookup(t *testing.T) {
	action, err := Lookup("  Highlight ")
	if err != nil {
		t.Fatalf("Lookup: %v", err)
	}
	if action.Symbol != "==" || !action.Wrap {
		t.Fatalf("unexpected highlight action %+v", action)
	}
	if _, err := Lookup("underline"); err != ErrUnknownAction {
		t.Fatalf("expected ErrUnknownAction, got %v", err)
	}
	if got := len(Names()); got != 9 {
		t.Fatalf("expected nine toolbar actions, got %d", got)
	}
}
