package document

import (
	"strings"
	"unicode/utf8"
)

// NodeType identifies the kind of a node in the document tree.
type NodeType string

const (
	TypeRoot      NodeType = "root"
	TypeParagraph NodeType = "paragraph"
	TypeHeading   NodeType = "heading"
	TypeQuote     NodeType = "quote"
	TypeText      NodeType = "text"
	TypeLineBreak NodeType = "linebreak"
)

// blockSeparator joins the text content of sibling blocks.
const blockSeparator = "\n\n"

// Node is a single element of the document tree. Block nodes (paragraph,
// heading, quote) live directly under the root and hold inline children;
// inline nodes (text, linebreak) are leaves.
type Node struct {
	Type     NodeType `json:"type"`
	Tag      string   `json:"tag,omitempty"`
	Text     string   `json:"text,omitempty"`
	Format   int      `json:"format,omitempty"`
	Children []*Node  `json:"children,omitempty"`
}

// NewText returns a text node.
func NewText(text string) *Node {
	return &Node{Type: TypeText, Text: text}
}

// NewParagraph returns a paragraph holding the supplied inline nodes.
func NewParagraph(children ...*Node) *Node {
	return &Node{Type: TypeParagraph, Children: children}
}

// IsBlock reports whether the node may appear directly under the root.
func (n *Node) IsBlock() bool {
	if n == nil {
		return false
	}
	switch n.Type {
	case TypeParagraph, TypeHeading, TypeQuote:
		return true
	default:
		return false
	}
}

// IsInline reports whether the node is a leaf that carries text.
func (n *Node) IsInline() bool {
	if n == nil {
		return false
	}
	return n.Type == TypeText || n.Type == TypeLineBreak
}

// TextContent returns the text of the node and its descendants. Sibling
// blocks under the root are separated by a blank line.
func (n *Node) TextContent() string {
	if n == nil {
		return ""
	}
	switch n.Type {
	case TypeText:
		return n.Text
	case TypeLineBreak:
		return "\n"
	case TypeRoot:
		parts := make([]string, 0, len(n.Children))
		for _, child := range n.Children {
			parts = append(parts, child.TextContent())
		}
		return strings.Join(parts, blockSeparator)
	default:
		var b strings.Builder
		for _, child := range n.Children {
			b.WriteString(child.TextContent())
		}
		return b.String()
	}
}

func (n *Node) runeLen() int {
	return utf8.RuneCountInString(n.TextContent())
}

// Clone returns a deep copy of the node.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	cloned := &Node{
		Type:   n.Type,
		Tag:    n.Tag,
		Text:   n.Text,
		Format: n.Format,
	}
	if n.Children != nil {
		cloned.Children = make([]*Node, len(n.Children))
		for i, child := range n.Children {
			cloned.Children[i] = child.Clone()
		}
	}
	return cloned
}

// Document is the root of a node tree.
type Document struct {
	Root *Node
}

// New returns the default initial document: a root with one empty paragraph.
func New() *Document {
	return &Document{
		Root: &Node{
			Type:     TypeRoot,
			Children: []*Node{NewParagraph()},
		},
	}
}

// FromText builds a document with one paragraph per blank-line separated
// chunk of text. Single newlines inside a chunk become line breaks.
func FromText(text string) *Document {
	doc := &Document{Root: &Node{Type: TypeRoot}}
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	for _, chunk := range strings.Split(normalized, blockSeparator) {
		doc.Root.Children = append(doc.Root.Children, NewParagraph(inlineNodes(chunk)...))
	}
	return doc
}

// Blocks returns the top-level block nodes.
func (d *Document) Blocks() []*Node {
	if d == nil || d.Root == nil {
		return nil
	}
	return d.Root.Children
}

// TextContent returns the untrimmed text of the whole document.
func (d *Document) TextContent() string {
	if d == nil {
		return ""
	}
	return d.Root.TextContent()
}

// PlainText returns the document text with surrounding whitespace trimmed.
func (d *Document) PlainText() string {
	return strings.TrimSpace(d.TextContent())
}

// Clone returns a deep copy of the document.
func (d *Document) Clone() *Document {
	if d == nil {
		return nil
	}
	return &Document{Root: d.Root.Clone()}
}

// inlineNodes converts text into text and linebreak nodes.
func inlineNodes(text string) []*Node {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	out := make([]*Node, 0, len(lines)*2)
	for i, line := range lines {
		if i > 0 {
			out = append(out, &Node{Type: TypeLineBreak})
		}
		if line != "" {
			out = append(out, NewText(line))
		}
	}
	return out
}

// splitInline splits inline children at a rune offset measured over their
// concatenated text content. Text nodes straddling the offset are divided.
func splitInline(children []*Node, offset int) (before, after []*Node) {
	pos := 0
	for _, child := range children {
		length := child.runeLen()
		switch {
		case pos+length <= offset:
			before = append(before, child.Clone())
		case pos >= offset:
			after = append(after, child.Clone())
		default:
			runes := []rune(child.Text)
			cut := offset - pos
			head := child.Clone()
			head.Text = string(runes[:cut])
			tail := child.Clone()
			tail.Text = string(runes[cut:])
			before = append(before, head)
			after = append(after, tail)
		}
		pos += length
	}
	return before, after
}

// normalizeInline drops empty text nodes and merges adjacent text nodes
// that share a format.
func normalizeInline(children []*Node) []*Node {
	out := make([]*Node, 0, len(children))
	for _, child := range children {
		if child.Type == TypeText && child.Text == "" {
			continue
		}
		if n := len(out); n > 0 && child.Type == TypeText {
			prev := out[n-1]
			if prev.Type == TypeText && prev.Format == child.Format {
				prev.Text += child.Text
				continue
			}
		}
		out = append(out, child)
	}
	return out
}
