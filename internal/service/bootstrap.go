package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"pinknote/internal/domain"
	"pinknote/internal/domain/models"
	"pinknote/internal/domain/repositories"
)

const (
	welcomeNoteTitle   = "Welcome to pinknote"
	welcomeNoteContent = "Welcome to your new notes app! This is an example note. Create folders to organize your notes; deleting a folder moves its notes back here."
)

// EnsureDefaultFolder returns the root-level folder called name, creating it
// (with a welcome note) when it does not exist yet. The returned id is what
// NewFolderService protects for the lifetime of the process.
func EnsureDefaultFolder(
	ctx context.Context,
	folderRepo repositories.FolderRepository,
	noteRepo repositories.NoteRepository,
	txManager repositories.TransactionManager,
	name string,
	logger zerolog.Logger,
) (*models.Folder, error) {
	name, err := validateFolderName(name)
	if err != nil {
		return nil, err
	}

	var (
		folder  *models.Folder
		created bool
	)
	err = txManager.ExecTx(ctx, func(ctx context.Context) error {
		var err error
		folder, err = folderRepo.GetRootByName(ctx, name)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		folder = &models.Folder{Name: name, Path: models.ComputePath(name, nil)}
		if err := folderRepo.Create(ctx, folder); err != nil {
			return err
		}
		created = true

		return noteRepo.Create(ctx, &models.Note{
			Title:    welcomeNoteTitle,
			Content:  welcomeNoteContent,
			FolderID: folder.ID,
		})
	})
	if err != nil {
		return nil, err
	}

	if created {
		logger.Info().Int64("id", folder.ID).Str("name", folder.Name).Msg("default folder created")
	} else {
		logger.Debug().Int64("id", folder.ID).Str("name", folder.Name).Msg("default folder found")
	}

	return folder, nil
}
