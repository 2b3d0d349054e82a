package commands

import (
	"maps"
	"strings"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-medit/internal/logging"
	"github.com/goliatone/go-medit/pkg/interfaces"
)

const commandModuleRoot = "medit.commands"

// ToolbarGroup names the command group behind the editor toolbar.
const ToolbarGroup = "toolbar"

// CommandLogger returns the logger for a command group, named
// medit.commands.<group>. An empty group means the toolbar.
func CommandLogger(provider interfaces.LoggerProvider, group string) interfaces.Logger {
	group = strings.TrimSpace(group)
	if group == "" {
		group = ToolbarGroup
	}
	logger := logging.ModuleLogger(provider, commandModuleRoot+"."+group)
	return logging.WithFields(logger, map[string]any{"command_group": group})
}

// executionFields are attached to every entry logged for one Execute call.
func executionFields[T command.Message](msg T, operation string, extra func(T) map[string]any) map[string]any {
	fields := map[string]any{"command": command.GetMessageType(msg)}
	if operation != "" {
		fields["operation"] = operation
	}
	if extra != nil {
		maps.Copy(fields, extra(msg))
	}
	return fields
}
