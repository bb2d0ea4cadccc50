package service

import (
	"context"
	"errors"
	"testing"

	"pinknote/internal/domain"
	"pinknote/internal/domain/services"
)

func strPtr(s string) *string { return &s }

func TestCreateNote(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	note, err := env.notes.CreateNote(ctx, &services.CreateNoteRequest{Title: " Groceries ", Content: "milk"})
	if err != nil {
		t.Fatalf("CreateNote() error = %v", err)
	}
	if note.Title != "Groceries" || note.FolderID != env.defaultID {
		t.Errorf("note = %+v, want trimmed title in the default folder", note)
	}

	tests := []struct {
		name string
		req  *services.CreateNoteRequest
		kind domain.Kind
	}{
		{name: "blank title", req: &services.CreateNoteRequest{Title: " "}, kind: domain.KindValidation},
		{name: "missing folder", req: &services.CreateNoteRequest{Title: "x", FolderID: int64Ptr(999)}, kind: domain.KindNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.notes.CreateNote(ctx, tt.req)
			if got := domain.KindOf(err); got != tt.kind {
				t.Errorf("error = %v (kind %v), want %v", err, got, tt.kind)
			}
		})
	}
}

func TestUpdateNote(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	note := env.mustNote(t, "Draft", env.defaultID)

	updated, err := env.notes.UpdateNote(ctx, note.ID, &services.UpdateNoteRequest{Content: strPtr("body")})
	if err != nil {
		t.Fatalf("UpdateNote() error = %v", err)
	}
	if updated.Title != "Draft" || updated.Content != "body" {
		t.Errorf("updated = %+v, want title kept and content replaced", updated)
	}
	if updated.ModifiedAt.Before(note.ModifiedAt) {
		t.Errorf("modified_at went backwards")
	}

	stored, err := env.notes.GetNote(ctx, note.ID)
	if err != nil {
		t.Fatalf("GetNote() error = %v", err)
	}
	if stored.Content != "body" || !stored.ModifiedAt.Equal(updated.ModifiedAt) {
		t.Errorf("stored = %+v, want %+v", stored, updated)
	}

	if _, err := env.notes.UpdateNote(ctx, note.ID, &services.UpdateNoteRequest{}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("empty update error = %v, want validation", err)
	}
	if _, err := env.notes.UpdateNote(ctx, 999, &services.UpdateNoteRequest{Title: strPtr("x")}); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("missing note error = %v, want not found", err)
	}
}

func TestMoveAndDeleteNote(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	work := env.mustCreate(t, "Work", nil)
	note := env.mustNote(t, "Todo", env.defaultID)

	moved, err := env.notes.MoveNote(ctx, note.ID, work.ID)
	if err != nil {
		t.Fatalf("MoveNote() error = %v", err)
	}
	if moved.FolderID != work.ID {
		t.Errorf("folder = %d, want %d", moved.FolderID, work.ID)
	}

	if _, err := env.notes.MoveNote(ctx, note.ID, 999); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("move to missing folder error = %v, want not found", err)
	}
	if _, err := env.notes.MoveNote(ctx, 999, work.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("move of missing note error = %v, want not found", err)
	}

	if err := env.notes.DeleteNote(ctx, note.ID); err != nil {
		t.Fatalf("DeleteNote() error = %v", err)
	}
	if _, err := env.notes.GetNote(ctx, note.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("deleted note still readable: %v", err)
	}
	if err := env.notes.DeleteNote(ctx, note.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("second delete error = %v, want not found", err)
	}
}

func TestSearchNotes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	work := env.mustCreate(t, "Work", nil)
	env.mustNote(t, "Quarterly plan", work.ID)
	if _, err := env.notes.CreateNote(ctx, &services.CreateNoteRequest{Title: "misc", Content: "the PLAN is 100% done", FolderID: &work.ID}); err != nil {
		t.Fatalf("CreateNote() error = %v", err)
	}
	env.mustNote(t, "planet_x", work.ID)

	tests := []struct {
		name string
		term string
		want int
	}{
		{name: "title and content, any case", term: "plan", want: 3},
		{name: "percent is literal", term: "100%", want: 1},
		{name: "underscore is literal", term: "t_x", want: 1},
		{name: "no match", term: "zebra", want: 0},
		{name: "blank matches nothing", term: "  ", want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := env.notes.SearchNotes(ctx, tt.term)
			if err != nil {
				t.Fatalf("SearchNotes(%q) error = %v", tt.term, err)
			}
			if len(got) != tt.want {
				t.Errorf("SearchNotes(%q) = %d results, want %d", tt.term, len(got), tt.want)
			}
			for _, r := range got {
				if r.FolderName != "Work" {
					t.Errorf("result %d folder name = %q, want Work", r.ID, r.FolderName)
				}
			}
		})
	}
}
