package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"pinknote/internal/domain"
	"pinknote/internal/domain/models"
	"pinknote/internal/domain/repositories"
)

const folderColumns = "id, name, parent_id, path, created_at, updated_at"

// SQLiteFolderRepository implements the FolderRepository interface
type SQLiteFolderRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

// NewFolderRepository creates a new folder repository
func NewFolderRepository(config *RepositoryConfig) repositories.FolderRepository {
	return &SQLiteFolderRepository{
		db:     config.DB,
		logger: config.Logger,
	}
}

// GetAll retrieves every folder ordered by path
func (r *SQLiteFolderRepository) GetAll(ctx context.Context) ([]models.Folder, error) {
	query := `SELECT ` + folderColumns + ` FROM folders ORDER BY path ASC`
	return r.queryFolders(ctx, "get all folders", query)
}

// GetByID retrieves a folder by ID
func (r *SQLiteFolderRepository) GetByID(ctx context.Context, id int64) (*models.Folder, error) {
	query := `SELECT ` + folderColumns + ` FROM folders WHERE id = ?`

	folder, err := scanFolder(GetExecutor(ctx, r.db).QueryRowContext(ctx, query, id))
	if err != nil {
		if IsNoRows(err) {
			return nil, fmt.Errorf("folder %d: %w", id, domain.ErrNotFound)
		}
		return nil, storageError("get folder", err)
	}
	return folder, nil
}

// GetRootByName retrieves a root-level folder by name
func (r *SQLiteFolderRepository) GetRootByName(ctx context.Context, name string) (*models.Folder, error) {
	query := `SELECT ` + folderColumns + ` FROM folders WHERE parent_id IS NULL AND name = ?`

	folder, err := scanFolder(GetExecutor(ctx, r.db).QueryRowContext(ctx, query, name))
	if err != nil {
		if IsNoRows(err) {
			return nil, fmt.Errorf("root folder %q: %w", name, domain.ErrNotFound)
		}
		return nil, storageError("get root folder", err)
	}
	return folder, nil
}

// ListChildren lists immediate child folders
func (r *SQLiteFolderRepository) ListChildren(ctx context.Context, parentID *int64) ([]models.Folder, error) {
	if parentID == nil {
		query := `SELECT ` + folderColumns + ` FROM folders WHERE parent_id IS NULL ORDER BY name ASC, id ASC`
		return r.queryFolders(ctx, "list folder children", query)
	}
	query := `SELECT ` + folderColumns + ` FROM folders WHERE parent_id = ? ORDER BY name ASC, id ASC`
	return r.queryFolders(ctx, "list folder children", query, *parentID)
}

// FindSibling returns the folder named name under parentID other than excludeID
func (r *SQLiteFolderRepository) FindSibling(ctx context.Context, parentID *int64, name string, excludeID int64) (*models.Folder, error) {
	var row *sql.Row
	executor := GetExecutor(ctx, r.db)
	if parentID == nil {
		query := `SELECT ` + folderColumns + ` FROM folders WHERE parent_id IS NULL AND name = ? AND id != ?`
		row = executor.QueryRowContext(ctx, query, name, excludeID)
	} else {
		query := `SELECT ` + folderColumns + ` FROM folders WHERE parent_id = ? AND name = ? AND id != ?`
		row = executor.QueryRowContext(ctx, query, *parentID, name, excludeID)
	}

	folder, err := scanFolder(row)
	if err != nil {
		if IsNoRows(err) {
			return nil, nil // Not found, not an error
		}
		return nil, storageError("find sibling folder", err)
	}
	return folder, nil
}

// ListDescendants lists every folder strictly below path, using the path index
func (r *SQLiteFolderRepository) ListDescendants(ctx context.Context, path string) ([]models.Folder, error) {
	lo, hi := models.DescendantRange(path)
	query := `SELECT ` + folderColumns + ` FROM folders WHERE path > ? AND path < ? ORDER BY path ASC`
	return r.queryFolders(ctx, "list descendant folders", query, lo, hi)
}

// Create inserts a folder
func (r *SQLiteFolderRepository) Create(ctx context.Context, folder *models.Folder) error {
	now := time.Now().UTC()
	if folder.CreatedAt.IsZero() {
		folder.CreatedAt = now
	}
	folder.UpdatedAt = folder.CreatedAt

	query := `INSERT INTO folders (name, parent_id, path, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`

	result, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		folder.Name,
		folder.ParentID,
		folder.Path,
		toMillis(folder.CreatedAt),
		toMillis(folder.UpdatedAt),
	)
	if err != nil {
		return r.writeError("create folder", folder.Name, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return storageError("create folder", err)
	}
	folder.ID = id
	folder.CreatedAt = fromMillis(toMillis(folder.CreatedAt))
	folder.UpdatedAt = folder.CreatedAt

	r.logger.Debug().Int64("id", id).Str("path", folder.Path).Msg("folder row inserted")
	return nil
}

// UpdateNameAndPath renames a folder
func (r *SQLiteFolderRepository) UpdateNameAndPath(ctx context.Context, id int64, name, path string) error {
	query := `UPDATE folders SET name = ?, path = ?, updated_at = ? WHERE id = ?`
	return r.execUpdate(ctx, "rename folder", id, name, query, name, path, toMillis(time.Now()), id)
}

// UpdateParentAndPath re-parents a folder
func (r *SQLiteFolderRepository) UpdateParentAndPath(ctx context.Context, id int64, parentID *int64, path string) error {
	query := `UPDATE folders SET parent_id = ?, path = ?, updated_at = ? WHERE id = ?`
	return r.execUpdate(ctx, "move folder", id, models.NameFromPath(path), query, parentID, path, toMillis(time.Now()), id)
}

// UpdatePath rewrites the materialized path of a folder
func (r *SQLiteFolderRepository) UpdatePath(ctx context.Context, id int64, path string) error {
	query := `UPDATE folders SET path = ?, updated_at = ? WHERE id = ?`
	return r.execUpdate(ctx, "update folder path", id, models.NameFromPath(path), query, path, toMillis(time.Now()), id)
}

// Delete deletes a folder; ON DELETE CASCADE removes its descendants
func (r *SQLiteFolderRepository) Delete(ctx context.Context, id int64) error {
	result, err := GetExecutor(ctx, r.db).ExecContext(ctx, `DELETE FROM folders WHERE id = ?`, id)
	if err != nil {
		return storageError("delete folder", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return storageError("delete folder", err)
	}
	if affected == 0 {
		return fmt.Errorf("folder %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *SQLiteFolderRepository) execUpdate(ctx context.Context, op string, id int64, name, query string, args ...any) error {
	result, err := GetExecutor(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		return r.writeError(op, name, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return storageError(op, err)
	}
	if affected == 0 {
		return fmt.Errorf("folder %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// writeError maps a failed folder write. Unique violations only happen when a
// sibling already holds the name, which the service checks first; this
// catches writers racing past that check.
func (r *SQLiteFolderRepository) writeError(op, name string, err error) error {
	if IsUniqueViolation(err) {
		return &domain.ConflictError{
			Message:      fmt.Sprintf("a folder named %q already exists in this location", name),
			ResourceType: "folder",
		}
	}
	if IsForeignKeyViolation(err) {
		return fmt.Errorf("%s: parent folder: %w", op, domain.ErrNotFound)
	}
	return storageError(op, err)
}

func (r *SQLiteFolderRepository) queryFolders(ctx context.Context, op, query string, args ...any) ([]models.Folder, error) {
	rows, err := GetExecutor(ctx, r.db).QueryContext(ctx, query, args...)
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
	var (
		folder    models.Folder
		parentID  sql.NullInt64
		createdAt int64
		updatedAt int64
	)
	if err := row.Scan(&folder.ID, &folder.Name, &parentID, &folder.Path, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	if parentID.Valid {
		folder.ParentID = &parentID.Int64
	}
	folder.CreatedAt = fromMillis(createdAt)
	folder.UpdatedAt = fromMillis(updatedAt)
	return &folder, nil
}
