package document

import (
	"errors"
	"fmt"
)

var (
	// ErrCorruptState matches every CorruptStateError through errors.Is.
	ErrCorruptState = errors.New("document: corrupt state")
	// ErrUpdateInProgress is returned when Update is nested inside a running update.
	ErrUpdateInProgress = errors.New("document: update already in progress")
	// ErrInvalidSelection is returned when a selection does not fit the document.
	ErrInvalidSelection = errors.New("document: selection out of range")
	// ErrNilMutator is returned when Update receives a nil function.
	ErrNilMutator = errors.New("document: mutator is required")
)

// CorruptStateError reports a snapshot that cannot be turned into a valid
// document. Callers recover by continuing with an empty document.
type CorruptStateError struct {
	Reason string
	Cause  error
}

func (e *CorruptStateError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %s", ErrCorruptState, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %v", ErrCorruptState, e.Reason, e.Cause)
}

func (e *CorruptStateError) Unwrap() error {
	return e.Cause
}

// Is lets errors.Is(err, ErrCorruptState) match any CorruptStateError.
func (e *CorruptStateError) Is(target error) bool {
	return target == ErrCorruptState
}

func corrupt(reason string, cause error) error {
	return &CorruptStateError{Reason: reason, Cause: cause}
}
