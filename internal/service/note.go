package service

import (
	"context"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog"
	"pinknote/internal/config"
	"pinknote/internal/domain"
	"pinknote/internal/domain/models"
	"pinknote/internal/domain/repositories"
	"pinknote/internal/domain/services"
)

type noteService struct {
	noteRepo        repositories.NoteRepository
	folderRepo      repositories.FolderRepository
	txManager       repositories.TransactionManager
	defaultFolderID int64
	logger          zerolog.Logger
}

// NewNoteService creates a new note service. Notes created without a folder
// are filed in defaultFolderID.
func NewNoteService(
	noteRepo repositories.NoteRepository,
	folderRepo repositories.FolderRepository,
	txManager repositories.TransactionManager,
	defaultFolderID int64,
	logger zerolog.Logger,
) services.NoteService {
	return &noteService{
		noteRepo:        noteRepo,
		folderRepo:      folderRepo,
		txManager:       txManager,
		defaultFolderID: defaultFolderID,
		logger:          logger.With().Str("component", "notes").Logger(),
	}
}

// CreateNote creates a note
func (s *noteService) CreateNote(ctx context.Context, req *services.CreateNoteRequest) (*models.Note, error) {
	title, err := validateNoteTitle(req.Title)
	if err != nil {
		return nil, err
	}

	folderID := s.defaultFolderID
	if req.FolderID != nil {
		folderID = *req.FolderID
	}

	note := &models.Note{Title: title, Content: req.Content, FolderID: folderID}
	err = s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if _, err := s.folderRepo.GetByID(ctx, folderID); err != nil {
			return err
		}
		return s.noteRepo.Create(ctx, note)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("id", note.ID).Int64("folder_id", folderID).Msg("note created")
	return note, nil
}

// GetNote retrieves a note by ID
func (s *noteService) GetNote(ctx context.Context, id int64) (*models.Note, error) {
	return s.noteRepo.GetByID(ctx, id)
}

// UpdateNote updates title and/or content and bumps modified_at
func (s *noteService) UpdateNote(ctx context.Context, id int64, req *services.UpdateNoteRequest) (*models.Note, error) {
	if req.Title == nil && req.Content == nil {
		return nil, &domain.ValidationError{Message: "at least one of title or content must be provided"}
	}

	var title string
	if req.Title != nil {
		var err error
		if title, err = validateNoteTitle(*req.Title); err != nil {
			return nil, err
		}
	}

	var note *models.Note
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		var err error
		note, err = s.noteRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		if req.Title != nil {
			note.Title = title
		}
		if req.Content != nil {
			note.Content = *req.Content
		}
		note.ModifiedAt = time.Now().UTC().Truncate(time.Millisecond)

		return s.noteRepo.Update(ctx, note)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Debug().Int64("id", id).Msg("note updated")
	return note, nil
}

// DeleteNote deletes a note
func (s *noteService) DeleteNote(ctx context.Context, id int64) error {
	if err := s.noteRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info().Int64("id", id).Msg("note deleted")
	return nil
}

// MoveNote moves a note to another folder
func (s *noteService) MoveNote(ctx context.Context, id, folderID int64) (*models.Note, error) {
	var note *models.Note
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		if _, err := s.noteRepo.GetByID(ctx, id); err != nil {
			return err
		}
		if _, err := s.folderRepo.GetByID(ctx, folderID); err != nil {
			return err
		}
		if err := s.noteRepo.MoveToFolder(ctx, id, folderID); err != nil {
			return err
		}

		var err error
		note, err = s.noteRepo.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("id", id).Int64("folder_id", folderID).Msg("note moved")
	return note, nil
}

// SearchNotes finds notes whose title or content contains term,
// case-insensitively. An empty term matches nothing.
func (s *noteService) SearchNotes(ctx context.Context, term string) ([]models.NoteSearchResult, error) {
	term = strings.TrimSpace(term)
	err := validation.Validate(term, validation.RuneLength(0, config.MaxSearchTermLength))
	if err != nil {
		return nil, &domain.ValidationError{Message: "search term: " + err.Error()}
	}
	if term == "" {
		return []models.NoteSearchResult{}, nil
	}

	return s.noteRepo.Search(ctx, term)
}

// ListNotes lists every note, newest first
func (s *noteService) ListNotes(ctx context.Context) ([]models.Note, error) {
	return s.noteRepo.List(ctx)
}

func validateNoteTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	err := validation.Validate(title,
		validation.Required.Error("note title cannot be empty"),
		validation.RuneLength(1, config.MaxNoteTitleLength),
	)
	if err != nil {
		return "", &domain.ValidationError{Message: err.Error()}
	}
	return title, nil
}
