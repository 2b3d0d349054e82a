// Package gologger adapts github.com/goliatone/go-logger to the editor
// logging contracts.
package gologger

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"sync"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-medit/internal/logging"
	"github.com/goliatone/go-medit/pkg/interfaces"
)

// Config captures the options exposed by the go-logger adapter.
type Config struct {
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// Provider hands out go-logger children per module name.
type Provider struct {
	root *glog.BaseLogger

	mu       sync.Mutex
	children map[string]interfaces.Logger
}

var _ interfaces.LoggerProvider = (*Provider)(nil)

var levels = map[string]string{
	logging.LevelTrace: glog.Trace,
	logging.LevelDebug: glog.Debug,
	logging.LevelInfo:  glog.Info,
	logging.LevelWarn:  glog.Warn,
	logging.LevelError: glog.Error,
	logging.LevelFatal: glog.Fatal,
}

// NewProvider constructs a provider backed by go-logger.
func NewProvider(cfg Config) (*Provider, error) {
	var options []glog.Option

	if level, ok := levels[logging.NormalizeLevel(cfg.Level)]; ok {
		options = append(options, glog.WithLevel(level))
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Format)) {
	case "", "json":
		options = append(options, glog.WithLoggerTypeJSON())
	case "console":
		options = append(options, glog.WithLoggerTypeConsole())
	case "pretty":
		options = append(options, glog.WithLoggerTypePretty())
	default:
		return nil, fmt.Errorf("logging: unsupported go-logger format %q", cfg.Format)
	}

	if cfg.AddSource {
		options = append(options, glog.WithAddSource(true))
	}

	root := glog.NewLogger(options...)
	if focus := slices.DeleteFunc(slices.Clone(cfg.Focus), func(name string) bool {
		return strings.TrimSpace(name) == ""
	}); len(focus) > 0 {
		root.Focus(focus...)
	}

	return &Provider{root: root, children: map[string]interfaces.Logger{}}, nil
}

// GetLogger returns the child logger for name, creating it on first use.
func (p *Provider) GetLogger(name string) interfaces.Logger {
	if p == nil || p.root == nil {
		return logging.NoOp()
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return wrap(p.root)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if child, ok := p.children[name]; ok {
		return child
	}
	child := wrap(p.root.GetLogger(name))
	p.children[name] = child
	return child
}

func wrap(inner glog.Logger) interfaces.Logger {
	if inner == nil {
		return logging.NoOp()
	}
	return &adapter{inner: inner}
}

// adapter forwards to go-logger. When the inner logger cannot carry fields
// itself they are kept here and appended to every call.
type adapter struct {
	inner  glog.Logger
	extras []any
}

var (
	_ interfaces.Logger       = (*adapter)(nil)
	_ interfaces.FieldsLogger = (*adapter)(nil)
)

func (l *adapter) Trace(msg string, args ...any) { l.inner.Trace(msg, l.args(args)...) }
func (l *adapter) Debug(msg string, args ...any) { l.inner.Debug(msg, l.args(args)...) }
func (l *adapter) Info(msg string, args ...any)  { l.inner.Info(msg, l.args(args)...) }
func (l *adapter) Warn(msg string, args ...any)  { l.inner.Warn(msg, l.args(args)...) }
func (l *adapter) Error(msg string, args ...any) { l.inner.Error(msg, l.args(args)...) }
func (l *adapter) Fatal(msg string, args ...any) { l.inner.Fatal(msg, l.args(args)...) }

func (l *adapter) args(args []any) []any {
	if len(l.extras) == 0 {
		return args
	}
	return append(slices.Clone(l.extras), args...)
}

func (l *adapter) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}
	if with, ok := l.inner.(glog.FieldsLogger); ok {
		return &adapter{inner: with.WithFields(maps.Clone(fields)), extras: l.extras}
	}

	extras := slices.Clone(l.extras)
	for _, key := range slices.Sorted(maps.Keys(fields)) {
		extras = append(extras, key, fields[key])
	}
	return &adapter{inner: l.inner, extras: extras}
}

func (l *adapter) WithContext(ctx context.Context) interfaces.Logger {
	if ctx == nil {
		return l
	}
	return &adapter{inner: l.inner.WithContext(ctx), extras: l.extras}
}
