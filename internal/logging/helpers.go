package logging

import (
	"maps"

	"github.com/goliatone/go-medit/pkg/interfaces"
)

// WithFields returns logger with fields attached. Loggers that are not a
// FieldsLogger come back unchanged; fields is copied before use.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil || len(fields) == 0 {
		return logger
	}
	fl, ok := logger.(interfaces.FieldsLogger)
	if !ok {
		return logger
	}
	return fl.WithFields(maps.Clone(fields))
}
