package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/rs/zerolog"
	"pinknote/internal/config"
	"pinknote/internal/domain"
	"pinknote/internal/domain/models"
	"pinknote/internal/domain/repositories"
	"pinknote/internal/domain/services"
)

var folderNamePattern = regexp.MustCompile(`^[^/]+$`)

type folderService struct {
	folderRepo      repositories.FolderRepository
	noteRepo        repositories.NoteRepository
	txManager       repositories.TransactionManager
	defaultFolderID int64
	logger          zerolog.Logger
}

// NewFolderService creates a new folder service. defaultFolderID is the id
// returned by EnsureDefaultFolder; that folder can never be deleted, moved or
// renamed.
func NewFolderService(
	folderRepo repositories.FolderRepository,
	noteRepo repositories.NoteRepository,
	txManager repositories.TransactionManager,
	defaultFolderID int64,
	logger zerolog.Logger,
) services.FolderService {
	return &folderService{
		folderRepo:      folderRepo,
		noteRepo:        noteRepo,
		txManager:       txManager,
		defaultFolderID: defaultFolderID,
		logger:          logger.With().Str("component", "folders").Logger(),
	}
}

func (s *folderService) DefaultFolderID() int64 {
	return s.defaultFolderID
}

// CreateFolder creates a new folder
func (s *folderService) CreateFolder(ctx context.Context, req *services.CreateFolderRequest) (*models.Folder, error) {
	name, err := validateFolderName(req.Name)
	if err != nil {
		return nil, err
	}

	var folder *models.Folder
	err = s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		var parentPath *string
		if req.ParentID != nil {
			parent, err := s.folderRepo.GetByID(ctx, *req.ParentID)
			if err != nil {
				return err
			}
			parentPath = &parent.Path
		}

		if err := s.checkSiblingName(ctx, req.ParentID, name, 0); err != nil {
			return err
		}

		folder = &models.Folder{
			Name:     name,
			ParentID: req.ParentID,
			Path:     models.ComputePath(name, parentPath),
		}
		return s.folderRepo.Create(ctx, folder)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("id", folder.ID).
		Str("name", folder.Name).
		Interface("parent_id", folder.ParentID).
		Str("path", folder.Path).
		Msg("folder created")

	return folder, nil
}

// RenameFolder renames a folder. Renaming to the current name is a no-op.
func (s *folderService) RenameFolder(ctx context.Context, id int64, newName string) (*models.Folder, error) {
	name, err := validateFolderName(newName)
	if err != nil {
		return nil, err
	}

	var (
		folder    *models.Folder
		oldPath   string
		rewritten int
	)
	err = s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		var err error
		folder, err = s.folderRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if folder.Name == name {
			return nil
		}
		if folder.ID == s.defaultFolderID {
			return &domain.ProtectedFolderError{FolderID: id, Op: "rename"}
		}
		if err := s.checkSiblingName(ctx, folder.ParentID, name, folder.ID); err != nil {
			return err
		}

		oldPath = folder.Path
		newPath := models.ComputePath(name, parentPathOf(folder))
		if err := s.folderRepo.UpdateNameAndPath(ctx, id, name, newPath); err != nil {
			return err
		}

		rewritten, err = s.rewriteDescendants(ctx, oldPath, newPath)
		if err != nil {
			return err
		}

		folder, err = s.folderRepo.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	if oldPath != "" {
		s.logger.Info().
			Int64("id", id).
			Str("old_path", oldPath).
			Str("path", folder.Path).
			Int("descendants", rewritten).
			Msg("folder renamed")
	}

	return folder, nil
}

// MoveFolder re-parents a folder. Moving to the current parent is a no-op.
func (s *folderService) MoveFolder(ctx context.Context, id int64, newParentID *int64) (*models.Folder, error) {
	var (
		folder    *models.Folder
		oldPath   string
		rewritten int
	)
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		var err error
		folder, err = s.folderRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if folder.ID == s.defaultFolderID {
			return &domain.ProtectedFolderError{FolderID: id, Op: "move"}
		}

		var parentPath *string
		if newParentID != nil {
			if *newParentID == id {
				return &domain.CycleError{FolderID: id, TargetID: *newParentID}
			}
			target, err := s.folderRepo.GetByID(ctx, *newParentID)
			if err != nil {
				return err
			}
			if models.IsDescendantPath(target.Path, folder.Path) {
				return &domain.CycleError{FolderID: id, TargetID: target.ID}
			}
			parentPath = &target.Path
		}

		if folder.IsChildOf(newParentID) {
			return nil
		}
		if err := s.checkSiblingName(ctx, newParentID, folder.Name, folder.ID); err != nil {
			return err
		}

		oldPath = folder.Path
		newPath := models.ComputePath(folder.Name, parentPath)
		if err := s.folderRepo.UpdateParentAndPath(ctx, id, newParentID, newPath); err != nil {
			return err
		}

		rewritten, err = s.rewriteDescendants(ctx, oldPath, newPath)
		if err != nil {
			return err
		}

		folder, err = s.folderRepo.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	if oldPath != "" {
		s.logger.Info().
			Int64("id", id).
			Str("old_path", oldPath).
			Str("path", folder.Path).
			Int("descendants", rewritten).
			Msg("folder moved")
	}

	return folder, nil
}

// DeleteFolder deletes a folder and every descendant. Notes filed anywhere in
// the subtree are moved to the default folder first, in the same transaction.
func (s *folderService) DeleteFolder(ctx context.Context, id int64) (*models.FolderDeletion, error) {
	result := &models.FolderDeletion{FolderID: id, DefaultFolderID: s.defaultFolderID}

	var path string
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		folder, err := s.folderRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if folder.ID == s.defaultFolderID {
			return &domain.ProtectedFolderError{FolderID: id, Op: "delete"}
		}
		path = folder.Path

		descendants, err := s.folderRepo.ListDescendants(ctx, folder.Path)
		if err != nil {
			return err
		}

		removed := make([]int64, 0, len(descendants)+1)
		removed = append(removed, folder.ID)
		for _, d := range descendants {
			removed = append(removed, d.ID)
		}

		var reassigned int64
		for _, folderID := range removed {
			n, err := s.noteRepo.ReassignFolder(ctx, folderID, s.defaultFolderID)
			if err != nil {
				return err
			}
			reassigned += n
		}

		// Descendant rows go with the folder (ON DELETE CASCADE)
		if err := s.folderRepo.Delete(ctx, folder.ID); err != nil {
			return err
		}

		result.RemovedIDs = removed
		result.ReassignedNotes = reassigned
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("id", id).
		Str("path", path).
		Int("folders_removed", len(result.RemovedIDs)).
		Int64("notes_reassigned", result.ReassignedNotes).
		Msg("folder deleted")

	return result, nil
}

// GetAllFolders lists every folder ordered by path
func (s *folderService) GetAllFolders(ctx context.Context) ([]models.Folder, error) {
	return s.folderRepo.GetAll(ctx)
}

// GetFolder retrieves a folder by ID
func (s *folderService) GetFolder(ctx context.Context, id int64) (*models.Folder, error) {
	return s.folderRepo.GetByID(ctx, id)
}

// GetSubfolders lists the immediate children of a folder (nil = root level)
func (s *folderService) GetSubfolders(ctx context.Context, parentID *int64) ([]models.Folder, error) {
	if parentID != nil {
		if _, err := s.folderRepo.GetByID(ctx, *parentID); err != nil {
			return nil, err
		}
	}
	return s.folderRepo.ListChildren(ctx, parentID)
}

func (s *folderService) GetFolderNoteCount(ctx context.Context, id int64) (int64, error) {
	if _, err := s.folderRepo.GetByID(ctx, id); err != nil {
		return 0, err
	}
	return s.noteRepo.CountByFolder(ctx, id)
}

func (s *folderService) GetNotesInFolder(ctx context.Context, id int64) ([]models.Note, error) {
	if _, err := s.folderRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}
	return s.noteRepo.ListByFolder(ctx, id)
}

// rewriteDescendants replaces the oldPath prefix of every descendant path
// with newPath. Must run inside the transaction that changed the folder itself.
func (s *folderService) rewriteDescendants(ctx context.Context, oldPath, newPath string) (int, error) {
	descendants, err := s.folderRepo.ListDescendants(ctx, oldPath)
	if err != nil {
		return 0, err
	}

	for _, d := range descendants {
		rebased, err := models.RebasePath(d.Path, oldPath, newPath)
		if err != nil {
			return 0, domain.NewStorageError("rewrite descendant paths", err)
		}
		if err := s.folderRepo.UpdatePath(ctx, d.ID, rebased); err != nil {
			return 0, err
		}
		s.logger.Debug().Int64("id", d.ID).Str("path", rebased).Msg("descendant path rewritten")
	}

	return len(descendants), nil
}

// checkSiblingName fails with a ConflictError when a folder other than
// excludeID already holds name under parentID.
func (s *folderService) checkSiblingName(ctx context.Context, parentID *int64, name string, excludeID int64) error {
	sibling, err := s.folderRepo.FindSibling(ctx, parentID, name, excludeID)
	if err != nil {
		return err
	}
	if sibling != nil {
		return &domain.ConflictError{
			Message:      fmt.Sprintf("a folder named %q already exists in this location", name),
			ResourceType: "folder",
			ResourceID:   sibling.ID,
		}
	}
	return nil
}

// parentPathOf returns the path of the folder's parent, or nil at root level
func parentPathOf(folder *models.Folder) *string {
	if folder.IsRoot() {
		return nil
	}
	p := models.ParentPath(folder.Path)
	return &p
}

// validateFolderName trims name and checks it can be stored as a path segment
func validateFolderName(name string) (string, error) {
	name = strings.TrimSpace(name)
	err := validation.Validate(name,
		validation.Required.Error("folder name cannot be empty"),
		validation.RuneLength(1, config.MaxFolderNameLength),
		validation.Match(folderNamePattern).Error("folder name cannot contain slashes"),
	)
	if err != nil {
		return "", &domain.ValidationError{Message: err.Error()}
	}
	return name, nil
}
