package seed

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"pinknote/internal/config"
	"pinknote/internal/repository"
	"pinknote/internal/service"
)

func TestDemoSeederIsRerunnable(t *testing.T) {
	ctx := context.Background()
	logger := zerolog.Nop()
	cfg := &config.Config{
		DBDriver:          config.DriverSQLite,
		DatabaseURL:       filepath.Join(t.TempDir(), "seed.db"),
		BusyTimeout:       time.Second,
		TxTimeout:         5 * time.Second,
		DefaultFolderName: "General",
	}

	store, err := repository.Open(ctx, cfg, logger)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer store.Close()

	def, err := service.EnsureDefaultFolder(ctx, store.Folders, store.Notes, store.TxManager, cfg.DefaultFolderName, logger)
	if err != nil {
		t.Fatalf("EnsureDefaultFolder() error = %v", err)
	}
	folders := service.NewFolderService(store.Folders, store.Notes, store.TxManager, def.ID, logger)
	notes := service.NewNoteService(store.Notes, store.Folders, store.TxManager, def.ID, logger)
	hierarchy := service.NewHierarchyService(store.Folders, store.Notes, store.TxManager, logger)

	seeder := NewDemoSeeder(folders, notes, logger)

	first, err := seeder.Seed(ctx)
	if err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	if first.FoldersCreated != 6 || first.FoldersExisted != 0 || first.NotesCreated != 4 {
		t.Errorf("first run = %+v, want 6 created, 0 existed, 4 notes", *first)
	}

	second, err := seeder.Seed(ctx)
	if err != nil {
		t.Fatalf("second Seed() error = %v", err)
	}
	if second.FoldersCreated != 0 || second.FoldersExisted != 6 || second.NotesCreated != 0 {
		t.Errorf("second run = %+v, want 0 created, 6 existed, 0 notes", *second)
	}

	flat, err := hierarchy.GetFolderHierarchy(ctx)
	if err != nil {
		t.Fatalf("GetFolderHierarchy() error = %v", err)
	}
	var paths []string
	for _, fd := range flat {
		paths = append(paths, fd.Folder.Path)
	}
	want := []string{
		"/General",
		"/Personal",
		"/Personal/Travel",
		"/Work",
		"/Work/Meetings",
		"/Work/Projects",
		"/Work/Projects/Archive",
	}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}
