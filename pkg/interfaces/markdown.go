package interfaces

// MarkdownRenderer converts editor plain text into display-safe HTML.
// Implementations must be total: malformed markdown degrades to literal
// text and Render never fails.
type MarkdownRenderer interface {
	Render(plainText string) string
}

// RenderOptions customises the rendering pipeline, keeping option names
// readable for configuration unmarshalling and CLI flags.
type RenderOptions struct {
	// Extensions selects goldmark extensions by name. Empty means the default GFM set.
	Extensions []string
	// HardWraps turns single newlines into <br> line breaks.
	HardWraps bool
	// StripParagraphs removes <p> and </p> tags emitted by the converter.
	StripParagraphs bool
	// Highlight converts ==text== into <mark>text</mark>.
	Highlight bool
	// AllowedElements extends the sanitizer allow-list.
	AllowedElements []string
}
