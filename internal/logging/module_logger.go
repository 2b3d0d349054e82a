package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-medit/pkg/interfaces"
)

const (
	rootModule        = "medit"
	documentModule    = "medit.document"
	persistenceModule = "medit.persistence"
	renderModule      = "medit.render"
	sessionModule     = "medit.session"
	storageModule     = "medit.storage"
)

const (
	fieldSessionID = "session_id"
	fieldSlotKey   = "slot"
	fieldAction    = "action"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The returned logger attaches
// the module identifier as structured context so downstream entries can be
// filtered predictably.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// DocumentLogger returns the logger namespace reserved for the content model.
func DocumentLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, documentModule)
}

// PersistenceLogger returns the logger namespace reserved for snapshot persistence.
func PersistenceLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, persistenceModule)
}

// RenderLogger returns the logger namespace reserved for the rendering pipeline.
func RenderLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, renderModule)
}

// SessionLogger returns the logger namespace reserved for editor sessions.
func SessionLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, sessionModule)
}

// StorageLogger returns the logger namespace reserved for slot stores.
func StorageLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, storageModule)
}

// WithSessionContext enriches the logger with the session id, slot key and
// toolbar action. Empty values are ignored.
func WithSessionContext(logger interfaces.Logger, sessionID, slot, action string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(sessionID); trimmed != "" {
		fields[fieldSessionID] = trimmed
	}
	if trimmed := strings.TrimSpace(slot); trimmed != "" {
		fields[fieldSlotKey] = trimmed
	}
	if trimmed := strings.TrimSpace(action); trimmed != "" {
		fields[fieldAction] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every log entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
