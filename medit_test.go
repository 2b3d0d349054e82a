package medit_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/benbjohnson/clock"

	"github.com/goliatone/go-medit"
	"github.com/goliatone/go-medit/internal/clipboard"
	"github.com/goliatone/go-medit/internal/document"
	"github.com/goliatone/go-medit/internal/storage"
	"github.com/goliatone/go-medit/pkg/interfaces"
)

func memoryConfig() medit.Config {
	cfg := medit.DefaultConfig()
	cfg.Storage = medit.StorageConfig{Provider: "memory"}
	cfg.Clipboard.Provider = "memory"
	return cfg
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := memoryConfig()
	cfg.Persistence.Key = ""
	if _, err := medit.New(context.Background(), cfg); !errors.Is(err, medit.ErrPersistenceKeyRequired) {
		t.Fatalf("expected ErrPersistenceKeyRequired, got %v", err)
	}
}

func TestOpenSessionRoundTripsThroughStore(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	mock := clock.NewMock()
	clip := clipboard.NewMemory()

	module, err := medit.New(ctx, memoryConfig(), medit.WithStore(store), medit.WithClock(mock), medit.WithClipboard(clip))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer module.Close()

	s, err := module.Open(ctx)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.Type(ctx, "# Draft\nsome ==marked== words"); err != nil {
		t.Fatalf("Type: %v", err)
	}
	if err := s.Close(ctx); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if store.Writes() != 1 {
		t.Fatalf("expected flush on close, got %d writes", store.Writes())
	}

	reopened, err := module.Open(ctx)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer reopened.Close(ctx)

	out := reopened.Output()
	if out.PlainText != "# Draft\n\nsome ==marked== words" {
		t.Fatalf("unexpected restored text %q", out.PlainText)
	}
	if !strings.Contains(out.HTML, "<mark>marked</mark>") {
		t.Fatalf("expected highlight in output, got %q", out.HTML)
	}
	if out.Words != 5 {
		t.Fatalf("expected 5 words, got %d", out.Words)
	}

	if err := reopened.CopyToClipboard(ctx); err != nil {
		t.Fatalf("CopyToClipboard: %v", err)
	}
	if clip.Text() != out.PlainText {
		t.Fatalf("unexpected clipboard text %q", clip.Text())
	}
}

func TestOpenUsesConfiguredKeyAndDelay(t *testing.T) {
	ctx := context.Background()
	store := storage.NewMemoryStore()
	mock := clock.NewMock()

	cfg := memoryConfig()
	cfg.Persistence.Key = "draft"
	cfg.Persistence.Delay = time.Second

	module, err := medit.New(ctx, cfg, medit.WithStore(store), medit.WithClock(mock))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	s, err := module.Open(ctx)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close(ctx)

	_ = s.Type(ctx, "pending")
	mock.Add(time.Second)

	deadline := time.Now().Add(2 * time.Second)
	for store.Writes() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	blob, ok, _ := store.Get(ctx, "draft")
	if !ok {
		t.Fatal("expected snapshot under the configured key")
	}
	doc, err := document.Deserialize(blob)
	if err != nil || doc.PlainText() != "pending" {
		t.Fatalf("unexpected snapshot %q (%v)", blob, err)
	}
	if _, ok, _ := store.Get(ctx, interfaces.EditorStateKey); ok {
		t.Fatal("expected default slot to stay empty")
	}
}

func TestNewOpensFileStore(t *testing.T) {
	cfg := memoryConfig()
	cfg.Storage = medit.StorageConfig{Provider: "file", Dir: filepath.Join(t.TempDir(), "state")}

	module, err := medit.New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer module.Close()

	if _, ok := module.Store().(*storage.FileStore); !ok {
		t.Fatalf("expected file store, got %T", module.Store())
	}
}

func TestNewBuildsLoggerProviders(t *testing.T) {
	for _, provider := range []string{"console", "gologger"} {
		t.Run(provider, func(t *testing.T) {
			cfg := memoryConfig()
			cfg.Features.Logger = true
			cfg.Logging.Provider = provider
			cfg.Logging.Level = "error"

			module, err := medit.New(context.Background(), cfg)
			if err != nil {
				t.Fatalf("New: %v", err)
			}
			if module.LoggerProvider() == nil {
				t.Fatal("expected logger provider")
			}
		})
	}

	module, err := medit.New(context.Background(), memoryConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if module.LoggerProvider() != nil {
		t.Fatal("expected logging to stay disabled by default")
	}
}
