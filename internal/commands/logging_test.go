package commands

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-medit/pkg/interfaces"
)

type fieldsLogger struct {
	name   string
	fields map[string]any
}

func (l *fieldsLogger) Trace(string, ...any)                          {}
func (l *fieldsLogger) Debug(string, ...any)                          {}
func (l *fieldsLogger) Info(string, ...any)                           {}
func (l *fieldsLogger) Warn(string, ...any)                           {}
func (l *fieldsLogger) Error(string, ...any)                          {}
func (l *fieldsLogger) Fatal(string, ...any)                          {}
func (l *fieldsLogger) WithContext(context.Context) interfaces.Logger { return l }

func (l *fieldsLogger) WithFields(fields map[string]any) interfaces.Logger {
	merged := map[string]any{}
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return &fieldsLogger{name: l.name, fields: merged}
}

type namedProvider struct{}

func (namedProvider) GetLogger(name string) interfaces.Logger {
	return &fieldsLogger{name: name}
}

func TestCommandLoggerDefaultsToToolbarGroup(t *testing.T) {
	logger, ok := CommandLogger(namedProvider{}, " ").(*fieldsLogger)
	if !ok {
		t.Fatalf("expected fields logger, got %T", logger)
	}
	if logger.name != "medit.commands.toolbar" {
		t.Fatalf("unexpected logger name %q", logger.name)
	}
	want := map[string]any{"module": "medit.commands.toolbar", "command_group": "toolbar"}
	if diff := cmp.Diff(want, logger.fields); diff != "" {
		t.Fatalf("unexpected fields (-want +got):\n%s", diff)
	}
}

func TestExecutionFieldsMergeMessageFields(t *testing.T) {
	got := executionFields(testMessage{}, "toolbar.insert_markdown", func(testMessage) map[string]any {
		return map[string]any{"action": "bold"}
	})
	want := map[string]any{
		"command":   "medit.test.message",
		"operation": "toolbar.insert_markdown",
		"action":    "bold",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected fields (-want +got):\n%s", diff)
	}
}
