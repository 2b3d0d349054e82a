package storage

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-medit/pkg/interfaces"
)

// Config selects and configures a slot store backend.
type Config struct {
	// Provider is one of memory, file, sqlite or postgres.
	Provider string
	// Dir is the directory used by the file provider.
	Dir string
	// DSN is the connection string used by the sqlite and postgres providers.
	DSN string
}

// Open builds the slot store described by cfg.
func Open(ctx context.Context, cfg Config) (interfaces.SlotStore, error) {
	switch provider := strings.ToLower(strings.TrimSpace(cfg.Provider)); provider {
	case "", "memory":
		return NewMemoryStore(), nil
	case "file":
		return NewFileStore(cfg.Dir)
	case "sqlite", "sqlite3", "postgres":
		return OpenBunStore(ctx, provider, cfg.DSN)
	default:
		return nil, fmt.Errorf("%w: %s", ErrProviderUnknown, cfg.Provider)
	}
}
