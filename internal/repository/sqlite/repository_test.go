package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"pinknote/internal/domain"
	"pinknote/internal/domain/models"
	"pinknote/internal/domain/repositories"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(context.Background(), filepath.Join(t.TempDir(), "test.db"), time.Second)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func newRepos(t *testing.T) (repositories.FolderRepository, repositories.NoteRepository, repositories.TransactionManager) {
	t.Helper()
	db := openTestDB(t)
	cfg := &RepositoryConfig{DB: db, Logger: zerolog.Nop()}
	return NewFolderRepository(cfg), NewNoteRepository(cfg), NewTransactionManager(db, time.Second, zerolog.Nop())
}

func createFolder(t *testing.T, ctx context.Context, repo repositories.FolderRepository, name string, parent *models.Folder) *models.Folder {
	t.Helper()
	f := &models.Folder{Name: name}
	if parent == nil {
		f.Path = models.ComputePath(name, nil)
	} else {
		f.ParentID = &parent.ID
		f.Path = models.ComputePath(name, &parent.Path)
	}
	if err := repo.Create(ctx, f); err != nil {
		t.Fatalf("Create(%q) error = %v", name, err)
	}
	return f
}

func TestDSN(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"notes.db", "file:notes.db?_foreign_keys=1&_busy_timeout=1500&_txlock=immediate&_journal_mode=WAL"},
		{"file:notes.db?cache=shared", "file:notes.db?cache=shared&_foreign_keys=1&_busy_timeout=1500&_txlock=immediate&_journal_mode=WAL"},
	}
	for _, tt := range tests {
		if got := DSN(tt.path, 1500*time.Millisecond); got != tt.want {
			t.Errorf("DSN(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestMigrateIsRepeatable(t *testing.T) {
	dsn := DSN(filepath.Join(t.TempDir(), "m.db"), time.Second)
	if err := Migrate(dsn); err != nil {
		t.Fatalf("first Migrate() error = %v", err)
	}
	if err := Migrate(dsn); err != nil {
		t.Fatalf("second Migrate() error = %v", err)
	}
}

func TestFolderRepository(t *testing.T) {
	folders, _, _ := newRepos(t)
	ctx := context.Background()

	a := createFolder(t, ctx, folders, "A", nil)
	b := createFolder(t, ctx, folders, "B", a)
	c := createFolder(t, ctx, folders, "C", b)
	createFolder(t, ctx, folders, "AB", nil)
	createFolder(t, ctx, folders, "A B", nil)
	createFolder(t, ctx, folders, "A-x", nil)

	t.Run("descendants use the path range", func(t *testing.T) {
		got, err := folders.ListDescendants(ctx, a.Path)
		if err != nil {
			t.Fatalf("ListDescendants() error = %v", err)
		}
		if len(got) != 2 || got[0].ID != b.ID || got[1].ID != c.ID {
			t.Errorf("descendants = %+v, want B then C", got)
		}
	})

	t.Run("root lookup by name", func(t *testing.T) {
		got, err := folders.GetRootByName(ctx, "A")
		if err != nil || got.ID != a.ID {
			t.Errorf("GetRootByName() = %+v, %v", got, err)
		}
		if _, err := folders.GetRootByName(ctx, "B"); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("non-root name error = %v, want not found", err)
		}
	})

	t.Run("find sibling", func(t *testing.T) {
		got, err := folders.FindSibling(ctx, nil, "AB", 0)
		if err != nil || got == nil {
			t.Fatalf("FindSibling() = %v, %v", got, err)
		}
		if got, _ := folders.FindSibling(ctx, nil, "AB", got.ID); got != nil {
			t.Errorf("excluded folder was returned")
		}
		if got, _ := folders.FindSibling(ctx, &a.ID, "B", 0); got == nil || got.ID != b.ID {
			t.Errorf("FindSibling under A = %+v, want B", got)
		}
	})

	t.Run("sibling uniqueness is enforced by the schema", func(t *testing.T) {
		dup := &models.Folder{Name: "B", ParentID: &a.ID, Path: "/A/B-other"}
		err := folders.Create(ctx, dup)
		var conflict *domain.ConflictError
		if !errors.As(err, &conflict) {
			t.Errorf("duplicate sibling error = %v, want ConflictError", err)
		}

		rootDup := &models.Folder{Name: "AB", Path: "/AB-other"}
		if err := folders.Create(ctx, rootDup); !errors.Is(err, domain.ErrConflict) {
			t.Errorf("duplicate root error = %v, want conflict", err)
		}
	})

	t.Run("missing parent", func(t *testing.T) {
		orphan := &models.Folder{Name: "X", ParentID: func() *int64 { v := int64(999); return &v }(), Path: "/nowhere/X"}
		if err := folders.Create(ctx, orphan); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("error = %v, want not found", err)
		}
	})

	t.Run("children ordered by name", func(t *testing.T) {
		roots, err := folders.ListChildren(ctx, nil)
		if err != nil {
			t.Fatalf("ListChildren() error = %v", err)
		}
		var names []string
		for _, r := range roots {
			names = append(names, r.Name)
		}
		want := []string{"A", "A B", "A-x", "AB"}
		if len(names) != len(want) {
			t.Fatalf("roots = %v, want %v", names, want)
		}
		for i := range want {
			if names[i] != want[i] {
				t.Errorf("roots = %v, want %v", names, want)
				break
			}
		}
	})

	t.Run("delete cascades", func(t *testing.T) {
		if err := folders.Delete(ctx, a.ID); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		for _, id := range []int64{a.ID, b.ID, c.ID} {
			if _, err := folders.GetByID(ctx, id); !errors.Is(err, domain.ErrNotFound) {
				t.Errorf("folder %d survived the cascade", id)
			}
		}
		if err := folders.Delete(ctx, a.ID); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("second Delete() error = %v, want not found", err)
		}
	})
}

func TestNoteRepository(t *testing.T) {
	folders, notes, _ := newRepos(t)
	ctx := context.Background()

	inbox := createFolder(t, ctx, folders, "Inbox", nil)
	work := createFolder(t, ctx, folders, "Work", nil)

	for _, title := range []string{"one", "two"} {
		if err := notes.Create(ctx, &models.Note{Title: title, FolderID: work.ID}); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	if err := notes.Create(ctx, &models.Note{Title: "lost", FolderID: 999}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("note in missing folder error = %v, want not found", err)
	}

	counts, err := notes.CountAllByFolder(ctx)
	if err != nil {
		t.Fatalf("CountAllByFolder() error = %v", err)
	}
	if counts[work.ID] != 2 || counts[inbox.ID] != 0 {
		t.Errorf("counts = %v", counts)
	}

	// A folder that still holds notes cannot be deleted
	if err := folders.Delete(ctx, work.ID); domain.KindOf(err) != domain.KindStorage {
		t.Errorf("delete of non-empty folder error = %v", err)
	}
	if _, err := folders.GetByID(ctx, work.ID); err != nil {
		t.Errorf("non-empty folder was deleted: %v", err)
	}

	moved, err := notes.ReassignFolder(ctx, work.ID, inbox.ID)
	if err != nil || moved != 2 {
		t.Fatalf("ReassignFolder() = %d, %v, want 2", moved, err)
	}
	if n, _ := notes.CountByFolder(ctx, work.ID); n != 0 {
		t.Errorf("work still has %d notes", n)
	}
	if err := folders.Delete(ctx, work.ID); err != nil {
		t.Errorf("delete of emptied folder error = %v", err)
	}
}

func TestTransactionManager(t *testing.T) {
	folders, _, tx := newRepos(t)
	ctx := context.Background()

	t.Run("rollback on error", func(t *testing.T) {
		boom := errors.New("boom")
		err := tx.ExecTx(ctx, func(ctx context.Context) error {
			createFolder(t, ctx, folders, "Temp", nil)
			return boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("ExecTx() error = %v, want the callback error unchanged", err)
		}
		if _, err := folders.GetRootByName(ctx, "Temp"); !errors.Is(err, domain.ErrNotFound) {
			t.Errorf("rolled back folder is visible: %v", err)
		}
	})

	t.Run("nested calls join", func(t *testing.T) {
		err := tx.ExecTx(ctx, func(ctx context.Context) error {
			return tx.ExecTx(ctx, func(ctx context.Context) error {
				createFolder(t, ctx, folders, "Nested", nil)
				return nil
			})
		})
		if err != nil {
			t.Fatalf("ExecTx() error = %v", err)
		}
		if _, err := folders.GetRootByName(ctx, "Nested"); err != nil {
			t.Errorf("committed folder missing: %v", err)
		}
	})

	t.Run("timeout is a storage failure", func(t *testing.T) {
		short := NewTransactionManager(openTestDB(t), 10*time.Millisecond, zerolog.Nop())
		err := short.ExecTx(ctx, func(ctx context.Context) error {
			<-ctx.Done()
			return ctx.Err()
		})
		if domain.KindOf(err) != domain.KindStorage {
			t.Errorf("error = %v, want storage failure", err)
		}
	})
}
