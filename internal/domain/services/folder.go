package services

import (
	"context"

	"pinknote/internal/domain/models"
)

// FolderService handles folder business logic. Every mutation runs as one
// transaction: on failure nothing it touched is changed.
type FolderService interface {
	// CreateFolder creates a new folder under req.ParentID (nil = root level)
	CreateFolder(ctx context.Context, req *CreateFolderRequest) (*models.Folder, error)

	// RenameFolder renames a folder and rewrites the paths of its descendants
	RenameFolder(ctx context.Context, id int64, newName string) (*models.Folder, error)

	// MoveFolder re-parents a folder (nil = root level) and rewrites the paths of its descendants
	MoveFolder(ctx context.Context, id int64, newParentID *int64) (*models.Folder, error)

	// DeleteFolder deletes a folder and its descendants, moving their notes to the default folder
	DeleteFolder(ctx context.Context, id int64) (*models.FolderDeletion, error)

	// GetAllFolders lists every folder ordered by path
	GetAllFolders(ctx context.Context) ([]models.Folder, error)

	// GetFolder retrieves a folder by ID
	GetFolder(ctx context.Context, id int64) (*models.Folder, error)

	// GetSubfolders lists the immediate children of parentID (nil = root level)
	GetSubfolders(ctx context.Context, parentID *int64) ([]models.Folder, error)

	// GetFolderNoteCount counts the notes directly in a folder
	GetFolderNoteCount(ctx context.Context, id int64) (int64, error)

	// GetNotesInFolder lists the notes directly in a folder
	GetNotesInFolder(ctx context.Context, id int64) ([]models.Note, error)

	// DefaultFolderID returns the id of the protected default folder
	DefaultFolderID() int64
}

// CreateFolderRequest represents a folder creation request
type CreateFolderRequest struct {
	Name     string `json:"name"`
	ParentID *int64 `json:"parent_id,omitempty"` // null for root folders
}
