package interfaces

import (
	"context"
	"time"
)

// Clipboard writes text to a system or in-process clipboard.
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

// Severity classifies user-visible notifications. Values match the CSS
// modifiers used by the preview surface (is-success, is-danger, ...).
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

// Notification is a transient message shown to the user.
type Notification struct {
	Message   string
	Severity  Severity
	CreatedAt time.Time
}

// Notifier displays notifications. Notify delivers the active message and
// Clear signals that it was dismissed.
type Notifier interface {
	Notify(n Notification)
	Clear()
}
