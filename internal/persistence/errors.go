package persistence

import (
	"errors"
	"fmt"
)

// ErrPersistenceWrite matches every PersistenceWriteError through errors.Is.
var ErrPersistenceWrite = errors.New("persistence: write failed")

// ErrClosed is returned by Flush after Close.
var ErrClosed = errors.New("persistence: manager closed")

// PersistenceWriteError reports a snapshot that could not be stored. The
// session keeps running; the edits since the previous successful write are
// lost on reload.
type PersistenceWriteError struct {
	Key   string
	Cause error
}

func (e *PersistenceWriteError) Error() string {
	return fmt.Sprintf("%s: slot %q: %v", ErrPersistenceWrite, e.Key, e.Cause)
}

func (e *PersistenceWriteError) Unwrap() error {
	return e.Cause
}

// Is lets errors.Is(err, ErrPersistenceWrite) match any PersistenceWriteError.
func (e *PersistenceWriteError) Is(target error) bool {
	return target == ErrPersistenceWrite
}
