package logging

import "strings"

// Canonical level names shared by the console and go-logger providers.
const (
	LevelTrace = "trace"
	LevelDebug = "debug"
	LevelInfo  = "info"
	LevelWarn  = "warn"
	LevelError = "error"
	LevelFatal = "fatal"
)

// NormalizeLevel maps user supplied level names onto the canonical set. It
// returns "" for empty or unknown input.
func NormalizeLevel(level string) string {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return LevelTrace
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	case "fatal":
		return LevelFatal
	default:
		return ""
	}
}

// InFocus reports whether the logger name is selected by focus. An empty
// focus selects every logger; entries match by module prefix, so
// "medit.persistence" also selects "medit.persistence.bun".
func InFocus(name string, focus []string) bool {
	if len(focus) == 0 {
		return true
	}
	for _, entry := range focus {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if name == entry || strings.HasPrefix(name, entry+".") {
			return true
		}
	}
	return false
}
