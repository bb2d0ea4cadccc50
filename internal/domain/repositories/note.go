package repositories

import (
	"context"

	"pinknote/internal/domain/models"
)

// NoteRepository defines data access operations for notes, including the
// folder reference column the folder hierarchy depends on.
type NoteRepository interface {
	// Create inserts a note and fills in its ID
	Create(ctx context.Context, note *models.Note) error

	// GetByID retrieves a note by ID
	GetByID(ctx context.Context, id int64) (*models.Note, error)

	// List retrieves every note, newest first
	List(ctx context.Context) ([]models.Note, error)

	// Update updates title, content and modified_at
	Update(ctx context.Context, note *models.Note) error

	// Delete deletes a note
	Delete(ctx context.Context, id int64) error

	// MoveToFolder points a note at another folder
	MoveToFolder(ctx context.Context, id, folderID int64) error

	// Search matches term against title and content, newest first
	Search(ctx context.Context, term string) ([]models.NoteSearchResult, error)

	// ListByFolder lists the notes referencing a folder, newest first
	ListByFolder(ctx context.Context, folderID int64) ([]models.Note, error)

	// CountByFolder counts the notes referencing a folder
	CountByFolder(ctx context.Context, folderID int64) (int64, error)

	// CountAllByFolder counts notes for every folder that has any
	CountAllByFolder(ctx context.Context) (map[int64]int64, error)

	// ReassignFolder moves every note of one folder to another and returns how many moved
	ReassignFolder(ctx context.Context, fromFolderID, toFolderID int64) (int64, error)
}
