package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"pinknote/internal/domain"
	"pinknote/internal/domain/models"
	"pinknote/internal/domain/repositories"
)

const folderColumns = "id, name, parent_id, path, created_at, updated_at"

// PostgresFolderRepository implements the FolderRepository interface
type PostgresFolderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(config *RepositoryConfig) repositories.FolderRepository {
	return &PostgresFolderRepository{
		pool:   config.Pool,
		logger: config.Logger,
	}
}

// GetAll retrieves every folder ordered by path
func (r *PostgresFolderRepository) GetAll(ctx context.Context) ([]models.Folder, error) {
	query := `SELECT ` + folderColumns + ` FROM folders ORDER BY path ASC`
	return r.queryFolders(ctx, "get all folders", query)
}

// GetByID retrieves a folder by ID
func (r *PostgresFolderRepository) GetByID(ctx context.Context, id int64) (*models.Folder, error) {
	query := `SELECT ` + folderColumns + ` FROM folders WHERE id = $1`

	folder, err := scanFolder(GetExecutor(ctx, r.pool).QueryRow(ctx, query, id))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("folder %d: %w", id, domain.ErrNotFound)
		}
		return nil, storageError("get folder", err)
	}
	return folder, nil
}

// GetRootByName retrieves a root-level folder by name
func (r *PostgresFolderRepository) GetRootByName(ctx context.Context, name string) (*models.Folder, error) {
	query := `SELECT ` + folderColumns + ` FROM folders WHERE parent_id IS NULL AND name = $1`

	folder, err := scanFolder(GetExecutor(ctx, r.pool).QueryRow(ctx, query, name))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("root folder %q: %w", name, domain.ErrNotFound)
		}
		return nil, storageError("get root folder", err)
	}
	return folder, nil
}

// ListChildren lists immediate child folders
func (r *PostgresFolderRepository) ListChildren(ctx context.Context, parentID *int64) ([]models.Folder, error) {
	if parentID == nil {
		query := `SELECT ` + folderColumns + ` FROM folders WHERE parent_id IS NULL ORDER BY name COLLATE "C" ASC, id ASC`
		return r.queryFolders(ctx, "list folder children", query)
	}
	query := `SELECT ` + folderColumns + ` FROM folders WHERE parent_id = $1 ORDER BY name COLLATE "C" ASC, id ASC`
	return r.queryFolders(ctx, "list folder children", query, *parentID)
}

// FindSibling returns the folder named name under parentID other than excludeID
func (r *PostgresFolderRepository) FindSibling(ctx context.Context, parentID *int64, name string, excludeID int64) (*models.Folder, error) {
	query := `
		SELECT ` + folderColumns + `
		FROM folders
		WHERE parent_id IS NOT DISTINCT FROM $1 AND name = $2 AND id != $3
	`

	folder, err := scanFolder(GetExecutor(ctx, r.pool).QueryRow(ctx, query, parentID, name, excludeID))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, nil // Not found, not an error
		}
		return nil, storageError("find sibling folder", err)
	}
	return folder, nil
}

// ListDescendants lists every folder strictly below path, using the path index
func (r *PostgresFolderRepository) ListDescendants(ctx context.Context, path string) ([]models.Folder, error) {
	lo, hi := models.DescendantRange(path)
	query := `SELECT ` + folderColumns + ` FROM folders WHERE path > $1 AND path < $2 ORDER BY path ASC`
	return r.queryFolders(ctx, "list descendant folders", query, lo, hi)
}

// Create inserts a folder
func (r *PostgresFolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	query := `
		INSERT INTO folders (name, parent_id, path)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		folder.Name,
		folder.ParentID,
		folder.Path,
	).Scan(&folder.ID, &folder.CreatedAt, &folder.UpdatedAt)
	if err != nil {
		return r.writeError("create folder", folder.Name, err)
	}

	r.logger.Debug().Int64("id", folder.ID).Str("path", folder.Path).Msg("folder row inserted")
	return nil
}

// UpdateNameAndPath renames a folder
func (r *PostgresFolderRepository) UpdateNameAndPath(ctx context.Context, id int64, name, path string) error {
	query := `UPDATE folders SET name = $1, path = $2, updated_at = NOW() WHERE id = $3`
	return r.execUpdate(ctx, "rename folder", id, name, query, name, path, id)
}

// UpdateParentAndPath re-parents a folder
func (r *PostgresFolderRepository) UpdateParentAndPath(ctx context.Context, id int64, parentID *int64, path string) error {
	query := `UPDATE folders SET parent_id = $1, path = $2, updated_at = NOW() WHERE id = $3`
	return r.execUpdate(ctx, "move folder", id, models.NameFromPath(path), query, parentID, path, id)
}

// UpdatePath rewrites the materialized path of a folder
func (r *PostgresFolderRepository) UpdatePath(ctx context.Context, id int64, path string) error {
	query := `UPDATE folders SET path = $1, updated_at = NOW() WHERE id = $2`
	return r.execUpdate(ctx, "update folder path", id, models.NameFromPath(path), query, path, id)
}

// Delete deletes a folder; ON DELETE CASCADE removes its descendants
func (r *PostgresFolderRepository) Delete(ctx context.Context, id int64) error {
	result, err := GetExecutor(ctx, r.pool).Exec(ctx, `DELETE FROM folders WHERE id = $1`, id)
	if err != nil {
		return storageError("delete folder", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *PostgresFolderRepository) execUpdate(ctx context.Context, op string, id int64, name, query string, args ...any) error {
	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		return r.writeError(op, name, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("folder %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *PostgresFolderRepository) writeError(op, name string, err error) error {
	if IsPgDuplicateError(err) {
		return &domain.ConflictError{
			Message:      fmt.Sprintf("a folder named %q already exists in this location", name),
			ResourceType: "folder",
		}
	}
	if IsPgForeignKeyError(err) {
		return fmt.Errorf("%s: parent folder: %w", op, domain.ErrNotFound)
	}
	return storageError(op, err)
}

func (r *PostgresFolderRepository) queryFolders(ctx context.Context, op, query string, args ...any) ([]models.Folder, error) {
	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, storageError(op, err)
	}
	defer rows.Close()

	folders := []models.Folder{}
	for rows.Next() {
		folder, err := scanFolder(rows)
		if err != nil {
			return nil, storageError(op, err)
		}
		folders = append(folders, *folder)
	}

	if err := rows.Err(); err != nil {
		return nil, storageError(op, err)
	}
	return folders, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFolder(row rowScanner) (*models.Folder, error) {
	var folder models.Folder
	err := row.Scan(
		&folder.ID,
		&folder.Name,
		&folder.ParentID,
		&folder.Path,
		&folder.CreatedAt,
		&folder.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &folder, nil
}
