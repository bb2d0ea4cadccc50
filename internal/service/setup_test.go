package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"pinknote/internal/domain/models"
	"pinknote/internal/domain/repositories"
	"pinknote/internal/domain/services"
	"pinknote/internal/repository/sqlite"
)

// testEnv wires the services to a fresh SQLite database file.
type testEnv struct {
	folderRepo repositories.FolderRepository
	noteRepo   repositories.NoteRepository
	txManager  repositories.TransactionManager
	defaultID  int64

	folders   services.FolderService
	hierarchy services.HierarchyService
	notes     services.NoteService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()

	db, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "notes.db"), time.Second)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	logger := zerolog.Nop()
	repoConfig := &sqlite.RepositoryConfig{DB: db, Logger: logger}
	env := &testEnv{
		folderRepo: sqlite.NewFolderRepository(repoConfig),
		noteRepo:   sqlite.NewNoteRepository(repoConfig),
		txManager:  sqlite.NewTransactionManager(db, 5*time.Second, logger),
	}

	def, err := EnsureDefaultFolder(ctx, env.folderRepo, env.noteRepo, env.txManager, models.DefaultFolderName, logger)
	if err != nil {
		t.Fatalf("EnsureDefaultFolder: %v", err)
	}
	env.defaultID = def.ID
	env.wire(env.folderRepo, env.noteRepo)
	return env
}

// wire (re)builds the services on top of the given repositories.
func (e *testEnv) wire(folderRepo repositories.FolderRepository, noteRepo repositories.NoteRepository) {
	logger := zerolog.Nop()
	e.folders = NewFolderService(folderRepo, noteRepo, e.txManager, e.defaultID, logger)
	e.hierarchy = NewHierarchyService(folderRepo, noteRepo, e.txManager, logger)
	e.notes = NewNoteService(noteRepo, folderRepo, e.txManager, e.defaultID, logger)
}

func (e *testEnv) mustCreate(t *testing.T, name string, parentID *int64) *models.Folder {
	t.Helper()
	f, err := e.folders.CreateFolder(context.Background(), &services.CreateFolderRequest{Name: name, ParentID: parentID})
	if err != nil {
		t.Fatalf("CreateFolder(%q): %v", name, err)
	}
	return f
}

func (e *testEnv) mustNote(t *testing.T, title string, folderID int64) *models.Note {
	t.Helper()
	n, err := e.notes.CreateNote(context.Background(), &services.CreateNoteRequest{Title: title, FolderID: &folderID})
	if err != nil {
		t.Fatalf("CreateNote(%q): %v", title, err)
	}
	return n
}

func (e *testEnv) mustGet(t *testing.T, id int64) *models.Folder {
	t.Helper()
	f, err := e.folders.GetFolder(context.Background(), id)
	if err != nil {
		t.Fatalf("GetFolder(%d): %v", id, err)
	}
	return f
}

// snapshot returns id → path for every folder.
func (e *testEnv) snapshot(t *testing.T) map[int64]string {
	t.Helper()
	all, err := e.folders.GetAllFolders(context.Background())
	if err != nil {
		t.Fatalf("GetAllFolders: %v", err)
	}
	paths := make(map[int64]string, len(all))
	for _, f := range all {
		paths[f.ID] = f.Path
	}
	return paths
}

// assertConsistent checks path consistency, sibling uniqueness and acyclicity
// over the whole store.
func (e *testEnv) assertConsistent(t *testing.T) {
	t.Helper()
	all, err := e.folders.GetAllFolders(context.Background())
	if err != nil {
		t.Fatalf("GetAllFolders: %v", err)
	}

	byID := make(map[int64]models.Folder, len(all))
	for _, f := range all {
		byID[f.ID] = f
	}

	siblings := make(map[string]int64)
	for _, f := range all {
		var parentPath *string
		parentKey := "root"
		if f.ParentID != nil {
			parent, ok := byID[*f.ParentID]
			if !ok {
				t.Errorf("folder %d references missing parent %d", f.ID, *f.ParentID)
				continue
			}
			parentPath = &parent.Path
			parentKey = parent.Path
		}
		if want := models.ComputePath(f.Name, parentPath); f.Path != want {
			t.Errorf("folder %d path = %q, want %q", f.ID, f.Path, want)
		}

		key := parentKey + "\x00" + f.Name
		if other, dup := siblings[key]; dup {
			t.Errorf("folders %d and %d share name %q under the same parent", other, f.ID, f.Name)
		}
		siblings[key] = f.ID

		steps := 0
		for cur := f; cur.ParentID != nil; cur = byID[*cur.ParentID] {
			steps++
			if steps > len(all) {
				t.Errorf("folder %d is part of a cycle", f.ID)
				break
			}
		}
	}
}

func int64Ptr(v int64) *int64 { return &v }
