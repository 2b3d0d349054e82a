package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-medit/pkg/interfaces"
)

// BunStore persists slots in the editor_slots table, one row per key.
type BunStore struct {
	db    *bun.DB
	repo  repository.Repository[*slotModel]
	owned bool
	now   func() time.Time
}

var _ interfaces.ClosableSlotStore = (*BunStore)(nil)

// NewBunStore wraps an existing database. The caller keeps ownership of db.
func NewBunStore(db *bun.DB) *BunStore {
	store := &BunStore{db: db, now: time.Now}
	if db != nil {
		store.repo = newSlotRepository(db)
	}
	return store
}

func newSlotRepository(db *bun.DB) repository.Repository[*slotModel] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*slotModel]{
		NewRecord:          func() *slotModel { return &slotModel{} },
		GetID:              func(slot *slotModel) uuid.UUID { return slot.ID },
		SetID:              func(slot *slotModel, id uuid.UUID) { slot.ID = id },
		GetIdentifier:      func() string { return "slot_key" },
		GetIdentifierValue: func(slot *slotModel) string { return slot.Key },
	})
}

// OpenBunStore opens a database for driver ("sqlite3" or "postgres"),
// creates the slot table when missing and returns a store that closes the
// database on Close.
func OpenBunStore(ctx context.Context, driver, dsn string) (*BunStore, error) {
	db, err := OpenDB(driver, dsn)
	if err != nil {
		return nil, err
	}
	store := NewBunStore(db)
	store.owned = true
	if err := store.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// OpenDB opens a bun database with the dialect matching driver.
func OpenDB(driver, dsn string) (*bun.DB, error) {
	if strings.TrimSpace(dsn) == "" {
		return nil, errors.New("storage: dsn is required")
	}
	switch normalizeDriver(driver) {
	case "sqlite3":
		sqldb, err := sql.Open("sqlite3", dsn)
		if err != nil {
			return nil, fmt.Errorf("storage: open sqlite: %w", err)
		}
		return bun.NewDB(sqldb, sqlitedialect.New()), nil
	case "postgres":
		sqldb, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, fmt.Errorf("storage: open postgres: %w", err)
		}
		return bun.NewDB(sqldb, pgdialect.New()), nil
	default:
		return nil, fmt.Errorf("%w: driver %q", ErrProviderUnknown, driver)
	}
}

func normalizeDriver(driver string) string {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "sqlite", "sqlite3":
		return "sqlite3"
	case "postgres", "postgresql", "pg":
		return "postgres"
	default:
		return ""
	}
}

// EnsureSchema creates the slot table when it does not exist.
func (s *BunStore) EnsureSchema(ctx context.Context) error {
	if s.db == nil {
		return ErrDatabaseRequired
	}
	if _, err := s.db.NewCreateTable().Model((*slotModel)(nil)).IfNotExists().Exec(ctx); err != nil {
		return fmt.Errorf("storage: create editor_slots: %w", err)
	}
	return nil
}

// Get reads a slot row.
func (s *BunStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if s.repo == nil {
		return nil, false, ErrDatabaseRequired
	}
	key, err := normalizeKey(key)
	if err != nil {
		return nil, false, err
	}
	slot, found, err := s.lookup(ctx, key)
	if err != nil || !found {
		return nil, false, err
	}
	return cloneBytes(slot.Value), true, nil
}

// Put inserts the slot row on first write and overwrites it afterwards.
func (s *BunStore) Put(ctx context.Context, key string, value []byte) error {
	if s.repo == nil {
		return ErrDatabaseRequired
	}
	key, err := normalizeKey(key)
	if err != nil {
		return err
	}
	slot, found, err := s.lookup(ctx, key)
	if err != nil {
		return err
	}

	now := s.now().UTC()
	if !found {
		_, err = s.repo.Create(ctx, &slotModel{
			ID:        uuid.New(),
			Key:       key,
			Value:     cloneBytes(value),
			UpdatedAt: now,
		})
		return mapRepositoryError(err, key)
	}

	slot.Value = cloneBytes(value)
	slot.UpdatedAt = now
	_, err = s.repo.Update(ctx, slot,
		repository.UpdateByID(slot.ID.String()),
		repository.UpdateColumns("value", "updated_at"),
	)
	return mapRepositoryError(err, key)
}

func (s *BunStore) lookup(ctx context.Context, key string) (*slotModel, bool, error) {
	slot, err := s.repo.GetByIdentifier(ctx, key)
	if err != nil {
		if goerrors.IsCategory(err, repository.CategoryDatabaseNotFound) || errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, mapRepositoryError(err, key)
	}
	return slot, true, nil
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("storage: slot %q: %w", key, err)
}

// Close releases the database when the store opened it.
func (s *BunStore) Close() error {
	if s.db == nil || !s.owned {
		return nil
	}
	return s.db.Close()
}

type slotModel struct {
	bun.BaseModel `bun:"table:editor_slots"`

	ID        uuid.UUID `bun:",pk,type:uuid"`
	Key       string    `bun:"slot_key,notnull,unique"`
	Value     []byte    `bun:"value"`
	UpdatedAt time.Time `bun:"updated_at,notnull"`
}
