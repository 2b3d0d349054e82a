// Package storage provides durable single-slot stores for editor snapshots.
package storage

import (
	"errors"
	"strings"
)

var (
	// ErrKeyRequired indicates that slot operations need a non-empty key.
	ErrKeyRequired = errors.New("storage: slot key is required")
	// ErrProviderUnknown indicates an unsupported storage provider name.
	ErrProviderUnknown = errors.New("storage: unknown provider")
	// ErrDatabaseRequired indicates a bun store was built without a database.
	ErrDatabaseRequired = errors.New("storage: bun store requires a database")
)

func normalizeKey(key string) (string, error) {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return "", ErrKeyRequired
	}
	return trimmed, nil
}

func cloneBytes(value []byte) []byte {
	if value == nil {
		return nil
	}
	return append([]byte(nil), value...)
}
