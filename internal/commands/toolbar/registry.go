package toolbarcmd

import (
	"errors"

	"github.com/goliatone/go-medit/internal/commands"
	"github.com/goliatone/go-medit/internal/document"
	"github.com/goliatone/go-medit/internal/insertion"
	"github.com/goliatone/go-medit/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the toolbar handlers produced by RegisterToolbarCommands.
type HandlerSet struct {
	Insert *InsertMarkdownHandler
	Copy   *CopyToClipboardHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	insertHandlerOpts []commands.HandlerOption[InsertMarkdownCommand]
	copyHandlerOpts   []commands.HandlerOption[CopyToClipboardCommand]
}

// WithInsertHandlerOptions forwards options to the InsertMarkdownHandler constructor.
func WithInsertHandlerOptions(opts ...commands.HandlerOption[InsertMarkdownCommand]) Option {
	return func(cfg *options) {
		cfg.insertHandlerOpts = append(cfg.insertHandlerOpts, opts...)
	}
}

// WithCopyHandlerOptions forwards options to the CopyToClipboardHandler constructor.
func WithCopyHandlerOptions(opts ...commands.HandlerOption[CopyToClipboardCommand]) Option {
	return func(cfg *options) {
		cfg.copyHandlerOpts = append(cfg.copyHandlerOpts, opts...)
	}
}

// RegisterToolbarCommands builds the toolbar handlers for editor and
// registers them with reg when one is supplied.
func RegisterToolbarCommands(reg CommandRegistry, editor *document.Editor, clip interfaces.Clipboard, provider interfaces.LoggerProvider, opts ...Option) (*HandlerSet, error) {
	if editor == nil {
		return nil, errors.New("toolbar command registration: editor is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := commands.CommandLogger(provider, commands.ToolbarGroup)
	engine := insertion.NewEngine(logger)

	set := &HandlerSet{
		Insert: NewInsertMarkdownHandler(engine, editor, logger, cfg.insertHandlerOpts...),
		Copy:   NewCopyToClipboardHandler(editor, clip, logger, cfg.copyHandlerOpts...),
	}

	if reg != nil {
		if err := reg.RegisterCommand(set.Insert); err != nil {
			return nil, err
		}
		if err := reg.RegisterCommand(set.Copy); err != nil {
			return nil, err
		}
	}
	return set, nil
}
