package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"pinknote/internal/domain"
	"pinknote/internal/domain/models"
	"pinknote/internal/domain/repositories"
)

const noteColumns = "id, title, content, folder_id, created_at, modified_at"

// SQLiteNoteRepository implements the NoteRepository interface
type SQLiteNoteRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

// NewNoteRepository creates a new note repository
func NewNoteRepository(config *RepositoryConfig) repositories.NoteRepository {
	return &SQLiteNoteRepository{
		db:     config.DB,
		logger: config.Logger,
	}
}

// Create inserts a note
func (r *SQLiteNoteRepository) Create(ctx context.Context, note *models.Note) error {
	now := time.Now().UTC()
	if note.CreatedAt.IsZero() {
		note.CreatedAt = now
	}
	if note.ModifiedAt.IsZero() {
		note.ModifiedAt = note.CreatedAt
	}

	query := `INSERT INTO notes (title, content, folder_id, created_at, modified_at) VALUES (?, ?, ?, ?, ?)`

	result, err := GetExecutor(ctx, r.db).ExecContext(ctx, query,
		note.Title,
		note.Content,
		note.FolderID,
		toMillis(note.CreatedAt),
		toMillis(note.ModifiedAt),
	)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return fmt.Errorf("folder %d: %w", note.FolderID, domain.ErrNotFound)
		}
		return storageError("create note", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return storageError("create note", err)
	}
	note.ID = id
	note.CreatedAt = fromMillis(toMillis(note.CreatedAt))
	note.ModifiedAt = fromMillis(toMillis(note.ModifiedAt))
	return nil
}

// GetByID retrieves a note by ID
func (r *SQLiteNoteRepository) GetByID(ctx context.Context, id int64) (*models.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes WHERE id = ?`

	note, err := scanNote(GetExecutor(ctx, r.db).QueryRowContext(ctx, query, id))
	if err != nil {
		if IsNoRows(err) {
			return nil, fmt.Errorf("note %d: %w", id, domain.ErrNotFound)
		}
		return nil, storageError("get note", err)
	}
	return note, nil
}

// List retrieves every note, newest first
func (r *SQLiteNoteRepository) List(ctx context.Context) ([]models.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes ORDER BY modified_at DESC, id DESC`
	return r.queryNotes(ctx, "list notes", query)
}

// Update updates title, content and modified_at
func (r *SQLiteNoteRepository) Update(ctx context.Context, note *models.Note) error {
	query := `UPDATE notes SET title = ?, content = ?, modified_at = ? WHERE id = ?`
	return r.execNote(ctx, "update note", note.ID, query, note.Title, note.Content, toMillis(note.ModifiedAt), note.ID)
}

// Delete deletes a note
func (r *SQLiteNoteRepository) Delete(ctx context.Context, id int64) error {
	return r.execNote(ctx, "delete note", id, `DELETE FROM notes WHERE id = ?`, id)
}

// MoveToFolder points a note at another folder
func (r *SQLiteNoteRepository) MoveToFolder(ctx context.Context, id, folderID int64) error {
	query := `UPDATE notes SET folder_id = ?, modified_at = ? WHERE id = ?`
	err := r.execNote(ctx, "move note", id, query, folderID, toMillis(time.Now()), id)
	if err != nil && IsForeignKeyViolation(err) {
		return fmt.Errorf("folder %d: %w", folderID, domain.ErrNotFound)
	}
	return err
}

// Search matches term against title and content. LIKE wildcards in term are
// escaped so the match is a plain substring match.
func (r *SQLiteNoteRepository) Search(ctx context.Context, term string) ([]models.NoteSearchResult, error) {
	pattern := "%" + escapeLike(term) + "%"
	query := `
		SELECT n.id, n.title, n.content, n.folder_id, n.created_at, n.modified_at, f.name
		FROM notes n
		JOIN folders f ON f.id = n.folder_id
		WHERE n.title LIKE ? ESCAPE '\' OR n.content LIKE ? ESCAPE '\'
		ORDER BY n.modified_at DESC, n.id DESC
	`

	rows, err := GetExecutor(ctx, r.db).QueryContext(ctx, query, pattern, pattern)
	if err != nil {
		return nil, storageError("search notes", err)
	}
	defer rows.Close()

	results := []models.NoteSearchResult{}
	for rows.Next() {
		var (
			res        models.NoteSearchResult
			createdAt  int64
			modifiedAt int64
		)
		if err := rows.Scan(&res.ID, &res.Title, &res.Content, &res.FolderID, &createdAt, &modifiedAt, &res.FolderName); err != nil {
			return nil, storageError("search notes", err)
		}
		res.CreatedAt = fromMillis(createdAt)
		res.ModifiedAt = fromMillis(modifiedAt)
		results = append(results, res)
	}

	if err := rows.Err(); err != nil {
		return nil, storageError("search notes", err)
	}
	return results, nil
}

// ListByFolder lists the notes referencing a folder, newest first
func (r *SQLiteNoteRepository) ListByFolder(ctx context.Context, folderID int64) ([]models.Note, error) {
	query := `SELECT ` + noteColumns + ` FROM notes WHERE folder_id = ? ORDER BY modified_at DESC, id DESC`
	return r.queryNotes(ctx, "list notes by folder", query, folderID)
}

// CountByFolder counts the notes referencing a folder
func (r *SQLiteNoteRepository) CountByFolder(ctx context.Context, folderID int64) (int64, error) {
	var count int64
	err := GetExecutor(ctx, r.db).QueryRowContext(ctx, `SELECT COUNT(*) FROM notes WHERE folder_id = ?`, folderID).Scan(&count)
	if err != nil {
		return 0, storageError("count notes", err)
	}
	return count, nil
}

// CountAllByFolder counts notes for every folder that has any
func (r *SQLiteNoteRepository) CountAllByFolder(ctx context.Context) (map[int64]int64, error) {
	rows, err := GetExecutor(ctx, r.db).QueryContext(ctx, `SELECT folder_id, COUNT(*) FROM notes GROUP BY folder_id`)
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
func (r *SQLiteNoteRepository) ReassignFolder(ctx context.Context, fromFolderID, toFolderID int64) (int64, error) {
	result, err := GetExecutor(ctx, r.db).ExecContext(ctx,
		`UPDATE notes SET folder_id = ? WHERE folder_id = ?`, toFolderID, fromFolderID)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return 0, fmt.Errorf("folder %d: %w", toFolderID, domain.ErrNotFound)
		}
		return 0, storageError("reassign notes", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, storageError("reassign notes", err)
	}
	return affected, nil
}

func (r *SQLiteNoteRepository) execNote(ctx context.Context, op string, id int64, query string, args ...any) error {
	result, err := GetExecutor(ctx, r.db).ExecContext(ctx, query, args...)
	if err != nil {
		if IsForeignKeyViolation(err) {
			return err
		}
		return storageError(op, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return storageError(op, err)
	}
	if affected == 0 {
		return fmt.Errorf("note %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *SQLiteNoteRepository) queryNotes(ctx context.Context, op, query string, args ...any) ([]models.Note, error) {
	rows, err := GetExecutor(ctx, r.db).QueryContext(ctx, query, args...)
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
	var (
		note       models.Note
		createdAt  int64
		modifiedAt int64
	)
	if err := row.Scan(&note.ID, &note.Title, &note.Content, &note.FolderID, &createdAt, &modifiedAt); err != nil {
		return nil, err
	}
	note.CreatedAt = fromMillis(createdAt)
	note.ModifiedAt = fromMillis(modifiedAt)
	return &note, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
