package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"pinknote/internal/domain"
	"pinknote/internal/domain/models"
	"pinknote/internal/domain/repositories"
)

const noteColumns = "id, title, content, folder_id, created_at, modified_at"

// PostgresNoteRepository implements the NoteRepository interface
type PostgresNoteRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewNoteRepository creates a new note repository
func NewNoteRepository(config *RepositoryConfig) repositories.NoteRepository {
	return &PostgresNoteRepository{
		pool:   config.Pool,
		logger: config.Logger,
	}
}

// Create inserts a note
func (r *PostgresNoteRepository) Create(ctx context.Context, note *models.Note) error {
	query := `
		INSERT INTO notes (title, content, folder_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, modified_at
	`

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		note.Title,
		note.Content,
		note.FolderID,
	).Scan(&note.ID, &note.CreatedAt, &note.ModifiedAt)
	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("folder %d: %w", note.FolderID, domain.ErrNotFound)
		}
		return storageError("create note", err)
	}
	return nil
}

// GetByID retrieves a note by ID
func (r *PostgresNoteRepository) GetByID(ctx context.Context, id int64) (*models.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes WHERE id = $1`

	note, err := scanNote(GetExecutor(ctx, r.pool).QueryRow(ctx, query, id))
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("note %d: %w", id, domain.ErrNotFound)
		}
		return nil, storageError("get note", err)
	}
	return note, nil
}

// List retrieves every note, newest first
func (r *PostgresNoteRepository) List(ctx context.Context) ([]models.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes ORDER BY modified_at DESC, id DESC`
	return r.queryNotes(ctx, "list notes", query)
}

// Update updates title, content and modified_at
func (r *PostgresNoteRepository) Update(ctx context.Context, note *models.Note) error {
	query := `UPDATE notes SET title = $1, content = $2, modified_at = $3 WHERE id = $4`
	return r.execNote(ctx, "update note", note.ID, query, note.Title, note.Content, note.ModifiedAt, note.ID)
}

// Delete deletes a note
func (r *PostgresNoteRepository) Delete(ctx context.Context, id int64) error {
	return r.execNote(ctx, "delete note", id, `DELETE FROM notes WHERE id = $1`, id)
}

// MoveToFolder points a note at another folder
func (r *PostgresNoteRepository) MoveToFolder(ctx context.Context, id, folderID int64) error {
	result, err := GetExecutor(ctx, r.pool).Exec(ctx,
		`UPDATE notes SET folder_id = $1, modified_at = NOW() WHERE id = $2`, folderID, id)
	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("folder %d: %w", folderID, domain.ErrNotFound)
		}
		return storageError("move note", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("note %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Search matches term against title and content, case-insensitively
func (r *PostgresNoteRepository) Search(ctx context.Context, term string) ([]models.NoteSearchResult, error) {
	pattern := "%" + escapeLike(term) + "%"
	query := `
		SELECT n.id, n.title, n.content, n.folder_id, n.created_at, n.modified_at, f.name
		FROM notes n
		JOIN folders f ON f.id = n.folder_id
		WHERE n.title ILIKE $1 OR n.content ILIKE $1
		ORDER BY n.modified_at DESC, n.id DESC
	`

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, pattern)
	if err != nil {
		return nil, storageError("search notes", err)
	}
	defer rows.Close()

	results := []models.NoteSearchResult{}
	for rows.Next() {
		var res models.NoteSearchResult
		err := rows.Scan(
			&res.ID,
			&res.Title,
			&res.Content,
			&res.FolderID,
			&res.CreatedAt,
			&res.ModifiedAt,
			&res.FolderName,
		)
		if err != nil {
			return nil, storageError("search notes", err)
		}
		results = append(results, res)
	}

	if err := rows.Err(); err != nil {
		return nil, storageError("search notes", err)
	}
	return results, nil
}

// ListByFolder lists the notes referencing a folder, newest first
func (r *PostgresNoteRepository) ListByFolder(ctx context.Context, folderID int64) ([]models.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes WHERE folder_id = $1 ORDER BY modified_at DESC, id DESC`
	return r.queryNotes(ctx, "list notes by folder", query, folderID)
}

// CountByFolder counts the notes referencing a folder
func (r *PostgresNoteRepository) CountByFolder(ctx context.Context, folderID int64) (int64, error) {
	var count int64
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, `SELECT COUNT(*) FROM notes WHERE folder_id = $1`, folderID).Scan(&count)
	if err != nil {
		return 0, storageError("count notes", err)
	}
	return count, nil
}

// CountAllByFolder counts notes for every folder that has any
func (r *PostgresNoteRepository) CountAllByFolder(ctx context.Context) (map[int64]int64, error) {
	rows, err := GetExecutor(ctx, r.pool).Query(ctx, `SELECT folder_id, COUNT(*) FROM notes GROUP BY folder_id`)
	if err != nil {
		return nil, storageError("count notes by folder", err)
	}
	defer rows.Close()

	counts := make(map[int64]int64)
	for rows.Next() {
		var folderID, count int64
		if err := rows.Scan(&folderID, &count); err != nil {
			return nil, storageError("count notes by folder", err)
		}
		counts[folderID] = count
	}

	if err := rows.Err(); err != nil {
		return nil, storageError("count notes by folder", err)
	}
	return counts, nil
}

// ReassignFolder moves every note of one folder to another
func (r *PostgresNoteRepository) ReassignFolder(ctx context.Context, fromFolderID, toFolderID int64) (int64, error) {
	result, err := GetExecutor(ctx, r.pool).Exec(ctx,
		`UPDATE notes SET folder_id = $1 WHERE folder_id = $2`, toFolderID, fromFolderID)
	if err != nil {
		if IsPgForeignKeyError(err) {
			return 0, fmt.Errorf("folder %d: %w", toFolderID, domain.ErrNotFound)
		}
		return 0, storageError("reassign notes", err)
	}
	return result.RowsAffected(), nil
}

func (r *PostgresNoteRepository) execNote(ctx context.Context, op string, id int64, query string, args ...any) error {
	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		return storageError(op, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("note %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *PostgresNoteRepository) queryNotes(ctx context.Context, op, query string, args ...any) ([]models.Note, error) {
	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, storageError(op, err)
	}
	defer rows.Close()

	notes := []models.Note{}
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			return nil, storageError(op, err)
		}
		notes = append(notes, *note)
	}

	if err := rows.Err(); err != nil {
		return nil, storageError(op, err)
	}
	return notes, nil
}

func scanNote(row rowScanner) (*models.Note, error) {
	var note models.Note
	err := row.Scan(
		&note.ID,
		&note.Title,
		&note.Content,
		&note.FolderID,
		&note.CreatedAt,
		&note.ModifiedAt,
	)
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// escapeLike escapes LIKE wildcards; backslash is the default escape character
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
