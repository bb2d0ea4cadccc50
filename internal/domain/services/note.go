package services

import (
	"context"

	"pinknote/internal/domain/models"
)

// NoteService handles note business logic
type NoteService interface {
	// CreateNote creates a note; a nil FolderID files it in the default folder
	CreateNote(ctx context.Context, req *CreateNoteRequest) (*models.Note, error)

	// GetNote retrieves a note by ID
	GetNote(ctx context.Context, id int64) (*models.Note, error)

	// UpdateNote updates title and/or content
	UpdateNote(ctx context.Context, id int64, req *UpdateNoteRequest) (*models.Note, error)

	// DeleteNote deletes a note
	DeleteNote(ctx context.Context, id int64) error

	// MoveNote moves a note to another folder
	MoveNote(ctx context.Context, id, folderID int64) (*models.Note, error)

	// SearchNotes finds notes whose title or content contains term
	SearchNotes(ctx context.Context, term string) ([]models.NoteSearchResult, error)

	// ListNotes lists every note, newest first
	ListNotes(ctx context.Context) ([]models.Note, error)
}

// CreateNoteRequest represents a note creation request
type CreateNoteRequest struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	FolderID *int64 `json:"folder_id,omitempty"`
}

// UpdateNoteRequest represents a note update request. Nil fields are left unchanged.
type UpdateNoteRequest struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}
