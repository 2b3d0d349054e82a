package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"

	"github.com/goliatone/go-medit/pkg/interfaces"
)

const slotFileExt = ".json"

// FileStore keeps one file per slot inside a directory. Writes replace the
// file atomically so a crash never leaves a half-written snapshot.
type FileStore struct {
	dir string
}

var _ interfaces.SlotStore = (*FileStore)(nil)

// NewFileStore returns a store rooted at dir, creating it when missing.
func NewFileStore(dir string) (*FileStore, error) {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil, errors.New("storage: file store directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: create %s: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the store directory.
func (s *FileStore) Dir() string {
	return s.dir
}

// Get reads the slot file. A missing file is an empty slot.
func (s *FileStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	path, err := s.path(key)
	if err != nil {
		return nil, false, err
	}
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("storage: read %s: %w", path, err)
	}
	return data, true, nil
}

// Put atomically replaces the slot file.
func (s *FileStore) Put(ctx context.Context, key string, value []byte) error {
	path, err := s.path(key)
	if err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := atomic.WriteFile(path, bytes.NewReader(value)); err != nil {
		return fmt.Errorf("storage: write %s: %w", path, err)
	}
	return nil
}

func (s *FileStore) path(key string) (string, error) {
	key, err := normalizeKey(key)
	if err != nil {
		return "", err
	}
	if strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("storage: invalid slot key %q", key)
	}
	return filepath.Join(s.dir, key+slotFileExt), nil
}
