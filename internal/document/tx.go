package document

import (
	"context"
	"strings"
	"unicode/utf8"
)

// Tx is the write handle passed to Editor.Update. It is only valid for the
// duration of the update callback.
type Tx struct {
	ctx       context.Context
	doc       *Document
	selection *Selection

	dirty            bool
	selectionChanged bool
}

func newTx(ctx context.Context, base *State) *Tx {
	tx := &Tx{ctx: ctx, doc: base.doc.Clone()}
	if base.selection != nil {
		sel := *base.selection
		tx.selection = &sel
	}
	return tx
}

// Context returns the context of the running update.
func (tx *Tx) Context() context.Context {
	return tx.ctx
}

// Document exposes the working copy. Callers that mutate it directly must
// call MarkDirty so the change is committed and announced.
func (tx *Tx) Document() *Document {
	return tx.doc
}

// MarkDirty flags the working copy as modified.
func (tx *Tx) MarkDirty() {
	tx.dirty = true
}

// PlainText returns the trimmed text of the working copy.
func (tx *Tx) PlainText() string {
	return tx.doc.PlainText()
}

// Selection returns the current selection. The second result is false when
// there is no selection or it no longer fits the document.
func (tx *Tx) Selection() (Selection, bool) {
	if tx.selection == nil || !tx.selection.validIn(tx.doc) {
		return Selection{}, false
	}
	return *tx.selection, true
}

// SetSelection installs sel after checking it against the working copy.
func (tx *Tx) SetSelection(sel Selection) error {
	if !sel.validIn(tx.doc) {
		return ErrInvalidSelection
	}
	tx.selection = &sel
	tx.selectionChanged = true
	return nil
}

// ClearSelection removes the selection, as when the editor loses focus.
func (tx *Tx) ClearSelection() {
	if tx.selection == nil {
		return
	}
	tx.selection = nil
	tx.selectionChanged = true
}

// SelectAll selects the whole document.
func (tx *Tx) SelectAll() {
	tx.ensureBlock()
	sel := Range(Point{}, endPoint(tx.doc))
	tx.selection = &sel
	tx.selectionChanged = true
}

// SelectEnd places a caret at the end of the document.
func (tx *Tx) SelectEnd() {
	tx.ensureBlock()
	sel := Caret(endPoint(tx.doc))
	tx.selection = &sel
	tx.selectionChanged = true
}

// SelectedText returns the text covered by the selection, or "" when the
// selection is collapsed or absent.
func (tx *Tx) SelectedText() string {
	sel, ok := tx.Selection()
	if !ok {
		return ""
	}
	return selectedText(tx.doc, sel)
}

// ReplaceSelection replaces the selected range with a single text node
// holding text and leaves a caret after it. Blocks spanned by the selection
// are merged into the first one. It returns false and leaves the document
// untouched when there is no valid selection.
func (tx *Tx) ReplaceSelection(text string) bool {
	sel, ok := tx.Selection()
	if !ok {
		return false
	}
	start, end := sel.Ordered()
	blocks := tx.doc.Root.Children

	before, _ := splitInline(blocks[start.Block].Children, start.Offset)
	_, after := splitInline(blocks[end.Block].Children, end.Offset)

	children := make([]*Node, 0, len(before)+len(after)+1)
	children = append(children, before...)
	if text != "" {
		children = append(children, NewText(text))
	}
	children = append(children, after...)
	blocks[start.Block].Children = normalizeInline(children)

	if end.Block > start.Block {
		tx.doc.Root.Children = append(blocks[:start.Block+1], blocks[end.Block+1:]...)
	}

	caret := Caret(Point{Block: start.Block, Offset: start.Offset + utf8.RuneCountInString(text)})
	tx.selection = &caret
	tx.selectionChanged = true
	tx.dirty = true
	return true
}

// InsertText types text at the selection the way a keyboard would: the
// selected range is replaced and every newline starts a new paragraph. With
// no selection the caret is first moved to the end of the document.
func (tx *Tx) InsertText(text string) {
	if _, ok := tx.Selection(); !ok {
		tx.SelectEnd()
	}
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i, line := range lines {
		if i > 0 {
			tx.splitParagraph()
		}
		if line != "" {
			tx.ReplaceSelection(line)
		}
	}
}

// AppendParagraph adds a paragraph holding text at the end of the document.
func (tx *Tx) AppendParagraph(text string) {
	tx.doc.Root.Children = append(tx.doc.Root.Children, NewParagraph(inlineNodes(text)...))
	tx.dirty = true
}

// Replace swaps the working copy for doc and clears the selection.
func (tx *Tx) Replace(doc *Document) {
	tx.doc = doc.Clone()
	tx.selection = nil
	tx.selectionChanged = true
	tx.dirty = true
}

// splitParagraph breaks the block at the caret into two, moving the caret
// to the start of the new block.
func (tx *Tx) splitParagraph() {
	tx.ReplaceSelection("")
	sel, _ := tx.Selection()
	at := sel.Focus
	blocks := tx.doc.Root.Children
	current := blocks[at.Block]

	before, after := splitInline(current.Children, at.Offset)
	current.Children = normalizeInline(before)
	next := NewParagraph(normalizeInline(after)...)

	children := make([]*Node, 0, len(blocks)+1)
	children = append(children, blocks[:at.Block+1]...)
	children = append(children, next)
	children = append(children, blocks[at.Block+1:]...)
	tx.doc.Root.Children = children

	caret := Caret(Point{Block: at.Block + 1})
	tx.selection = &caret
	tx.dirty = true
}

func (tx *Tx) ensureBlock() {
	if len(tx.doc.Blocks()) > 0 {
		return
	}
	tx.doc.Root.Children = []*Node{NewParagraph()}
	tx.dirty = true
}
