package interfaces

import "context"

// Logger receives editor diagnostics. Messages are dotted event names such
// as "persistence.save.completed" and args are key/value pairs ("slot",
// "editor-state"). The method set matches go-logger's glog.Logger.
type Logger interface {
	Trace(msg string, args ...any)
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Fatal(msg string, args ...any)
	WithContext(ctx context.Context) Logger
}

// LoggerProvider resolves the logger for an editor module. Names are dotted
// under "medit" (medit.document, medit.persistence, medit.render,
// medit.session, medit.storage, medit.commands.toolbar).
type LoggerProvider interface {
	GetLogger(name string) Logger
}

// FieldsLogger binds fields such as session_id, slot or action to every
// entry of the returned logger.
type FieldsLogger interface {
	WithFields(fields map[string]any) Logger
}
