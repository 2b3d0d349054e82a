package commands

import (
	"context"
	"time"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-medit/internal/logging"
	"github.com/goliatone/go-medit/pkg/interfaces"
)

// TelemetryStatus captures the result category for command execution.
type TelemetryStatus string

const (
	TelemetryStatusSuccess      TelemetryStatus = "success"
	TelemetryStatusFailed       TelemetryStatus = "failed"
	TelemetryStatusContextError TelemetryStatus = "context_error"
)

// TelemetryInfo describes a command execution outcome.
type TelemetryInfo struct {
	Command   string
	Operation string
	Fields    map[string]any
	Duration  time.Duration
	Error     error
	Status    TelemetryStatus
	Logger    interfaces.Logger
}

// Telemetry is invoked after every execution that passed validation.
type Telemetry[T command.Message] func(ctx context.Context, msg T, info TelemetryInfo)

// DefaultTelemetry logs command outcomes with logger, falling back to the
// execution logger carried in the info when nil.
func DefaultTelemetry[T command.Message](logger interfaces.Logger) Telemetry[T] {
	return func(_ context.Context, _ T, info TelemetryInfo) {
		entry := info.Logger
		if logger != nil {
			entry = logging.WithFields(logger, info.Fields)
		}
		logOutcome(EnsureLogger(entry), info)
	}
}

func logOutcome(logger interfaces.Logger, info TelemetryInfo) {
	args := []any{"duration_ms", info.Duration.Milliseconds()}
	switch info.Status {
	case TelemetryStatusSuccess:
		logger.Info("command.execute.success", args...)
	case TelemetryStatusContextError:
		logger.Error("command.execute.context_error", append(args, "error", info.Error)...)
	default:
		logger.Error("command.execute.failed", append(args, "error", info.Error)...)
	}
}
