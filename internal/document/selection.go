package document

import "unicode/utf8"

// Point addresses a position inside a block: the block index under the root
// and a rune offset into the block's text content.
type Point struct {
	Block  int `json:"block"`
	Offset int `json:"offset"`
}

// Before reports whether p sorts before other in document order.
func (p Point) Before(other Point) bool {
	if p.Block != other.Block {
		return p.Block < other.Block
	}
	return p.Offset < other.Offset
}

// Selection is a range between an anchor and a focus point. The anchor may
// come after the focus when the user selected backwards.
type Selection struct {
	Anchor Point `json:"anchor"`
	Focus  Point `json:"focus"`
}

// Caret returns a collapsed selection at p.
func Caret(p Point) Selection {
	return Selection{Anchor: p, Focus: p}
}

// Range returns a selection spanning from anchor to focus.
func Range(anchor, focus Point) Selection {
	return Selection{Anchor: anchor, Focus: focus}
}

// IsCollapsed reports whether the selection is a caret.
func (s Selection) IsCollapsed() bool {
	return s.Anchor == s.Focus
}

// Ordered returns the start and end points in document order.
func (s Selection) Ordered() (start, end Point) {
	if s.Focus.Before(s.Anchor) {
		return s.Focus, s.Anchor
	}
	return s.Anchor, s.Focus
}

func (s Selection) validIn(doc *Document) bool {
	return pointValid(doc, s.Anchor) && pointValid(doc, s.Focus)
}

func pointValid(doc *Document, p Point) bool {
	blocks := doc.Blocks()
	if p.Block < 0 || p.Block >= len(blocks) || p.Offset < 0 {
		return false
	}
	return p.Offset <= blocks[p.Block].runeLen()
}

// selectedText returns the text between the ordered points of s.
func selectedText(doc *Document, s Selection) string {
	if s.IsCollapsed() {
		return ""
	}
	start, end := s.Ordered()
	blocks := doc.Blocks()
	if start.Block == end.Block {
		runes := []rune(blocks[start.Block].TextContent())
		return string(runes[start.Offset:end.Offset])
	}

	out := string([]rune(blocks[start.Block].TextContent())[start.Offset:])
	for i := start.Block + 1; i < end.Block; i++ {
		out += blockSeparator + blocks[i].TextContent()
	}
	out += blockSeparator + string([]rune(blocks[end.Block].TextContent())[:end.Offset])
	return out
}

func endPoint(doc *Document) Point {
	blocks := doc.Blocks()
	last := len(blocks) - 1
	return Point{Block: last, Offset: utf8.RuneCountInString(blocks[last].TextContent())}
}
