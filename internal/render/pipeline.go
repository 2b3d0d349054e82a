// Package render converts editor text into HTML that is safe to display.
// Conversion, paragraph stripping and highlight expansion run first; the
// sanitizer always runs last so injected markup passes the same filter.
package render

import (
	"bytes"
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	goldhtml "github.com/yuin/goldmark/renderer/html"

	"github.com/goliatone/go-medit/internal/logging"
	"github.com/goliatone/go-medit/pkg/interfaces"
)

var (
	paragraphTag = regexp.MustCompile(`</?p>`)
	highlight    = regexp.MustCompile(`==(.*?)==`)
)

var headingTags = []string{"h1", "h2", "h3", "h4", "h5", "h6"}

// DefaultOptions matches the preview behaviour of the editor: soft breaks
// become <br>, outer paragraphs are stripped and ==text== is highlighted.
func DefaultOptions() interfaces.RenderOptions {
	return interfaces.RenderOptions{
		HardWraps:       true,
		StripParagraphs: true,
		Highlight:       true,
	}
}

// Pipeline implements interfaces.MarkdownRenderer. It is safe for
// concurrent use once constructed.
type Pipeline struct {
	engine goldmark.Markdown
	policy *bluemonday.Policy
	opts   interfaces.RenderOptions
	logger interfaces.Logger
}

var _ interfaces.MarkdownRenderer = (*Pipeline)(nil)

// NewPipeline builds a pipeline for opts. A nil logger disables logging.
func NewPipeline(opts interfaces.RenderOptions, logger interfaces.Logger) *Pipeline {
	if logger == nil {
		logger = logging.NoOp()
	}
	return &Pipeline{
		engine: newGoldmarkEngine(opts),
		policy: newPolicy(opts.AllowedElements),
		opts:   opts,
		logger: logger,
	}
}

// Render runs the full pipeline. It never fails: conversion errors degrade
// to the escaped input, which is still sanitized.
func (p *Pipeline) Render(text string) string {
	out := p.Convert(text)
	if p.opts.StripParagraphs {
		out = StripParagraphs(out)
	}
	if p.opts.Highlight {
		out = Highlight(out)
	}
	return p.Sanitize(out)
}

// Convert renders markdown to unsanitized HTML.
func (p *Pipeline) Convert(text string) string {
	var buf bytes.Buffer
	if err := p.engine.Convert([]byte(text), &buf); err != nil {
		p.logger.Warn("render.convert.failed", "error", err)
		return html.EscapeString(text)
	}
	return buf.String()
}

// Sanitize removes scripts, event handlers and unsafe URL schemes.
func (p *Pipeline) Sanitize(markup string) string {
	return p.policy.Sanitize(markup)
}

// StripParagraphs deletes every <p> and </p> tag by textual substitution,
// flattening the output into inline flow. Nested or attributed paragraph
// tags are not handled.
func StripParagraphs(markup string) string {
	return paragraphTag.ReplaceAllString(markup, "")
}

// Highlight rewrites ==text== into <mark>text</mark>. Matches are
// non-greedy and never span a newline.
func Highlight(markup string) string {
	if !strings.Contains(markup, "==") {
		return markup
	}
	return highlight.ReplaceAllString(markup, "<mark>$1</mark>")
}

func newGoldmarkEngine(opts interfaces.RenderOptions) goldmark.Markdown {
	rendererOptions := []renderer.Option{
		// Raw HTML is passed through here and removed by the sanitizer.
		goldhtml.WithUnsafe(),
	}
	if opts.HardWraps {
		rendererOptions = append(rendererOptions, goldhtml.WithHardWraps())
	}

	engineOptions := []goldmark.Option{
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(rendererOptions...),
	}
	if exts := collectExtensions(opts.Extensions); len(exts) > 0 {
		engineOptions = append(engineOptions, goldmark.WithExtensions(exts...))
	}
	return goldmark.New(engineOptions...)
}

func newPolicy(extra []string) *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowElements("mark")
	policy.AllowAttrs("id").OnElements(headingTags...)
	for _, name := range extra {
		if trimmed := strings.ToLower(strings.TrimSpace(name)); trimmed != "" && trimmed != "script" && trimmed != "style" {
			policy.AllowElements(trimmed)
		}
	}
	return policy
}

var extensionRegistry = map[string]goldmark.Extender{
	"gfm":           extension.GFM,
	"table":         extension.Table,
	"tables":        extension.Table,
	"strikethrough": extension.Strikethrough,
	"linkify":       extension.Linkify,
	"autolink":      extension.Linkify,
	"tasklist":      extension.TaskList,
	"definition":    extension.DefinitionList,
	"footnote":      extension.Footnote,
}

func collectExtensions(names []string) []goldmark.Extender {
	if len(names) == 0 {
		return []goldmark.Extender{extension.GFM}
	}

	var extenders []goldmark.Extender
	seen := map[string]struct{}{}
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		ext, ok := extensionRegistry[key]
		if !ok {
			continue
		}
		extenders = append(extenders, ext)
		seen[key] = struct{}{}
	}
	return extenders
}
