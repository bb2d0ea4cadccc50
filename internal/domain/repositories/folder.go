package repositories

import (
	"context"

	"pinknote/internal/domain/models"
)

// FolderRepository defines data access operations for folders.
// Every method runs on the transaction carried by ctx when there is one,
// otherwise it commits on its own.
type FolderRepository interface {
	// GetAll retrieves every folder ordered by path, so ancestors come before descendants
	GetAll(ctx context.Context) ([]models.Folder, error)

	// GetByID retrieves a folder by ID
	GetByID(ctx context.Context, id int64) (*models.Folder, error)

	// GetRootByName retrieves a root-level folder by name
	GetRootByName(ctx context.Context, name string) (*models.Folder, error)

	// ListChildren lists immediate child folders (nil = root level), ordered by name then id
	ListChildren(ctx context.Context, parentID *int64) ([]models.Folder, error)

	// FindSibling returns the folder named name under parentID other than excludeID, or nil
	FindSibling(ctx context.Context, parentID *int64, name string, excludeID int64) (*models.Folder, error)

	// ListDescendants lists every folder strictly below path, ordered by path
	ListDescendants(ctx context.Context, path string) ([]models.Folder, error)

	// Create inserts a folder and fills in its ID and timestamps
	Create(ctx context.Context, folder *models.Folder) error

	// UpdateNameAndPath renames a folder
	UpdateNameAndPath(ctx context.Context, id int64, name, path string) error

	// UpdateParentAndPath re-parents a folder
	UpdateParentAndPath(ctx context.Context, id int64, parentID *int64, path string) error

	// UpdatePath rewrites the materialized path of a folder
	UpdatePath(ctx context.Context, id int64, path string) error

	// Delete deletes a folder; descendant rows go with it
	Delete(ctx context.Context, id int64) error
}
