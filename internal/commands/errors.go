package commands

import (
	"context"
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to errors leaving a Handler.
const (
	CodeValidationFailed = "COMMAND_VALIDATION_FAILED"
	CodeCanceled         = "COMMAND_CONTEXT_CANCELED"
	CodeDeadline         = "COMMAND_CONTEXT_TIMEOUT"
	CodeContext          = "COMMAND_CONTEXT_ERROR"
	CodeExecutionFailed  = "COMMAND_EXECUTION_FAILED"
)

// tag wraps err once in the command category. Errors already carrying
// go-errors metadata pass through so the innermost classification wins.
func tag(err error, message, code string) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryCommand, message).WithTextCode(code)
}

func wrapValidationError(err error) error {
	if err == nil || goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(err, goerrors.CategoryValidation, "command validation failed").
		WithTextCode(CodeValidationFailed)
}

func wrapContextError(err error) error {
	switch {
	case errors.Is(err, context.Canceled):
		return tag(err, "command cancelled", CodeCanceled)
	case errors.Is(err, context.DeadlineExceeded):
		return tag(err, "command deadline exceeded", CodeDeadline)
	default:
		return tag(err, "command context error", CodeContext)
	}
}

func wrapExecuteError(err error) error {
	return tag(err, "command execution failed", CodeExecutionFailed)
}

// WrapDomainError tags err with the command category and a domain text code
// so callers can branch on it after the handler returns.
func WrapDomainError(err error, message, code string) error {
	return tag(err, message, code)
}
