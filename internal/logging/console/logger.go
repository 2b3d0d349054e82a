// Package console writes logfmt-style entries to a writer. It is the
// default provider for the CLI and needs no external logging backend.
package console

import (
	"context"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/goliatone/go-medit/internal/logging"
	"github.com/goliatone/go-medit/pkg/interfaces"
)

// Level represents the severity attached to a log entry.
type Level uint8

const (
	LevelTrace Level = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
	LevelFatal
)

var levelLabels = [...]string{"TRACE", "DEBUG", "INFO", "WARN", "ERROR", "FATAL"}

// String renders the severity label used in console output.
func (l Level) String() string {
	if int(l) < len(levelLabels) {
		return levelLabels[l]
	}
	return "INFO"
}

// ParseLevel resolves a level name. Unknown names report false.
func ParseLevel(name string) (Level, bool) {
	switch logging.NormalizeLevel(name) {
	case logging.LevelTrace:
		return LevelTrace, true
	case logging.LevelDebug:
		return LevelDebug, true
	case logging.LevelInfo:
		return LevelInfo, true
	case logging.LevelWarn:
		return LevelWarn, true
	case logging.LevelError:
		return LevelError, true
	case logging.LevelFatal:
		return LevelFatal, true
	default:
		return LevelInfo, false
	}
}

// Options configures the console logger provider. Zero values write to
// stderr at DEBUG and above using the wall clock.
type Options struct {
	Writer   io.Writer
	Clock    clock.Clock
	MinLevel *Level
	// Focus limits output to the named logger modules.
	Focus []string
}

type sink struct {
	mu       sync.Mutex
	writer   io.Writer
	clock    clock.Clock
	minLevel Level
	focus    []string
}

func (s *sink) write(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Write errors are dropped; logging must not fail the caller.
	_, _ = io.WriteString(s.writer, line)
}

type provider struct {
	sink *sink
}

// NewProvider constructs a console-backed logger provider.
func NewProvider(opts Options) interfaces.LoggerProvider {
	s := &sink{
		writer:   opts.Writer,
		clock:    opts.Clock,
		minLevel: LevelDebug,
		focus:    slices.Clone(opts.Focus),
	}
	if s.writer == nil {
		s.writer = os.Stderr
	}
	if s.clock == nil {
		s.clock = clock.New()
	}
	if opts.MinLevel != nil {
		s.minLevel = *opts.MinLevel
	}
	return &provider{sink: s}
}

func (p *provider) GetLogger(name string) interfaces.Logger {
	if !logging.InFocus(name, p.sink.focus) {
		return logging.NoOp()
	}
	return &entryLogger{
		sink:   p.sink,
		fields: map[string]any{"logger": name},
	}
}

type entryLogger struct {
	sink   *sink
	fields map[string]any
	ctx    context.Context
}

var (
	_ interfaces.Logger       = (*entryLogger)(nil)
	_ interfaces.FieldsLogger = (*entryLogger)(nil)
)

func (l *entryLogger) Trace(msg string, args ...any) { l.emit(LevelTrace, msg, args) }
func (l *entryLogger) Debug(msg string, args ...any) { l.emit(LevelDebug, msg, args) }
func (l *entryLogger) Info(msg string, args ...any)  { l.emit(LevelInfo, msg, args) }
func (l *entryLogger) Warn(msg string, args ...any)  { l.emit(LevelWarn, msg, args) }
func (l *entryLogger) Error(msg string, args ...any) { l.emit(LevelError, msg, args) }
func (l *entryLogger) Fatal(msg string, args ...any) { l.emit(LevelFatal, msg, args) }

func (l *entryLogger) WithFields(fields map[string]any) interfaces.Logger {
	if len(fields) == 0 {
		return l
	}
	merged := maps.Clone(l.fields)
	if merged == nil {
		merged = make(map[string]any, len(fields))
	}
	maps.Copy(merged, fields)
	return &entryLogger{sink: l.sink, fields: merged, ctx: l.ctx}
}

func (l *entryLogger) WithContext(ctx context.Context) interfaces.Logger {
	return &entryLogger{sink: l.sink, fields: l.fields, ctx: ctx}
}

func (l *entryLogger) emit(level Level, msg string, args []any) {
	if l.sink == nil || level < l.sink.minLevel {
		return
	}
	fields := make(map[string]any, len(l.fields)+len(args)/2)
	maps.Copy(fields, l.fields)
	maps.Copy(fields, logging.ContextFields(l.ctx))
	appendArgs(fields, args)

	l.sink.write(formatEntry(l.sink.clock.Now().UTC(), level, msg, fields) + "\n")
}

// appendArgs folds slog-style key/value pairs into fields. Values without a
// usable string key are kept under a positional name.
func appendArgs(fields map[string]any, args []any) {
	for i := 0; i < len(args); i += 2 {
		if i+1 == len(args) {
			fields["field_"+strconv.Itoa(i/2)] = args[i]
			return
		}
		key, ok := args[i].(string)
		if !ok || key == "" {
			key = "field_" + strconv.Itoa(i/2)
		}
		fields[key] = args[i+1]
	}
}

func formatEntry(ts time.Time, level Level, msg string, fields map[string]any) string {
	var b strings.Builder
	b.Grow(64 + len(msg) + len(fields)*16)
	b.WriteString(ts.Format(time.RFC3339Nano))
	b.WriteByte(' ')
	b.WriteString(level.String())
	b.WriteByte(' ')
	b.WriteString(msg)
	for _, key := range slices.Sorted(maps.Keys(fields)) {
		b.WriteByte(' ')
		b.WriteString(key)
		b.WriteByte('=')
		b.WriteString(formatValue(fields[key]))
	}
	return b.String()
}

func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case string:
		return quote(v)
	case time.Time:
		return quote(v.UTC().Format(time.RFC3339Nano))
	case time.Duration:
		return v.String()
	case error:
		return quote(v.Error())
	case fmt.Stringer:
		return quote(v.String())
	case bool:
		return strconv.FormatBool(v)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", v)
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return quote(fmt.Sprint(v))
	}
}

func quote(value string) string {
	if value == "" {
		return `""`
	}
	if strings.ContainsFunc(value, func(r rune) bool { return r <= 0x20 || r == '=' || r == '"' }) {
		return strconv.Quote(value)
	}
	return value
}
