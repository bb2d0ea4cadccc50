package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"pinknote/internal/config"
	"pinknote/internal/domain"
	"pinknote/internal/domain/models"
)

func TestOpenSQLiteAndClear(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{
		DBDriver:    config.DriverSQLite,
		DatabaseURL: filepath.Join(t.TempDir(), "store.db"),
		BusyTimeout: time.Second,
		TxTimeout:   time.Second,
	}

	store, err := Open(ctx, cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	folder := &models.Folder{Name: "A", Path: "/A"}
	if err := store.Folders.Create(ctx, folder); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := store.Notes.Create(ctx, &models.Note{Title: "n", FolderID: folder.ID}); err != nil {
		t.Fatalf("note Create() error = %v", err)
	}

	if err := store.ClearData(ctx); err != nil {
		t.Fatalf("ClearData() error = %v", err)
	}
	if _, err := store.Folders.GetByID(ctx, folder.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("folder survived ClearData: %v", err)
	}

	again := &models.Folder{Name: "B", Path: "/B"}
	if err := store.Folders.Create(ctx, again); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if again.ID != 1 {
		t.Errorf("id after clear = %d, want sequence reset to 1", again.ID)
	}
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), &config.Config{DBDriver: "mysql"}, zerolog.Nop())
	if err == nil {
		t.Fatal("expected an error for an unknown driver")
	}
}

func TestResetRebuildsSchema(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{
		DBDriver:    config.DriverSQLite,
		DatabaseURL: filepath.Join(t.TempDir(), "reset.db"),
		BusyTimeout: time.Second,
		TxTimeout:   time.Second,
	}

	store, err := Open(ctx, cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	if err := store.Folders.Create(ctx, &models.Folder{Name: "A", Path: "/A"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := store.Reset(); err != nil {
		t.Fatalf("Reset() error = %v", err)
	}

	all, err := store.Folders.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if len(all) != 0 {
		t.Errorf("GetAll() after Reset = %d folders, want 0", len(all))
	}
}
