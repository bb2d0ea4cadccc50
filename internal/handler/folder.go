package handler

import (
	"net/http"

	"github.com/rs/zerolog"
	"pinknote/internal/domain/services"
	"pinknote/internal/httputil"
)

// FolderHandler handles folder HTTP requests
type FolderHandler struct {
	folderService services.FolderService
	logger        zerolog.Logger
}

// NewFolderHandler creates a new folder handler
func NewFolderHandler(folderService services.FolderService, logger zerolog.Logger) *FolderHandler {
	return &FolderHandler{
		folderService: folderService,
		logger:        logger,
	}
}

type renameFolderRequest struct {
	Name string `json:"name"`
}

type moveFolderRequest struct {
	ParentID httputil.OptionalInt64 `json:"parent_id"`
}

type folderNoteCountResponse struct {
	FolderID  int64 `json:"folder_id"`
	NoteCount int64 `json:"note_count"`
}

// ListFolders lists every folder ordered by path
// GET /api/folders
func (h *FolderHandler) ListFolders(w http.ResponseWriter, r *http.Request) {
	folders, err := h.folderService.GetAllFolders(r.Context())
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folders)
}

// CreateFolder creates a new folder
// POST /api/folders
func (h *FolderHandler) CreateFolder(w http.ResponseWriter, r *http.Request) {
	var req services.CreateFolderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		badRequest(w, "Invalid request body")
		return
	}

	folder, err := h.folderService.CreateFolder(r.Context(), &req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, folder)
}

// GetFolder retrieves a folder by ID
// GET /api/folders/{id}
func (h *FolderHandler) GetFolder(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathInt64(r, "id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	folder, err := h.folderService.GetFolder(r.Context(), id)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folder)
}

// RenameFolder renames a folder
// POST /api/folders/{id}/rename
func (h *FolderHandler) RenameFolder(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathInt64(r, "id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	var req renameFolderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		badRequest(w, "Invalid request body")
		return
	}

	folder, err := h.folderService.RenameFolder(r.Context(), id, req.Name)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folder)
}

// MoveFolder re-parents a folder; "parent_id": null moves it to the root level
// POST /api/folders/{id}/move
func (h *FolderHandler) MoveFolder(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathInt64(r, "id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	var req moveFolderRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		badRequest(w, "Invalid request body")
		return
	}
	if !req.ParentID.Present {
		badRequest(w, "parent_id is required (use null for the root level)")
		return
	}

	folder, err := h.folderService.MoveFolder(r.Context(), id, req.ParentID.Value)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folder)
}

// DeleteFolder deletes a folder and its subtree, moving their notes to the default folder
// DELETE /api/folders/{id}
func (h *FolderHandler) DeleteFolder(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathInt64(r, "id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	result, err := h.folderService.DeleteFolder(r.Context(), id)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, result)
}

// GetSubfolders lists the immediate children of a folder; "root" lists root folders
// GET /api/folders/{id}/subfolders
func (h *FolderHandler) GetSubfolders(w http.ResponseWriter, r *http.Request) {
	var parentID *int64
	if r.PathValue("id") != "root" {
		id, err := httputil.PathInt64(r, "id")
		if err != nil {
			badRequest(w, err.Error())
			return
		}
		parentID = &id
	}

	folders, err := h.folderService.GetSubfolders(r.Context(), parentID)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folders)
}

// GetFolderNotes lists the notes directly in a folder
// GET /api/folders/{id}/notes
func (h *FolderHandler) GetFolderNotes(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathInt64(r, "id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	notes, err := h.folderService.GetNotesInFolder(r.Context(), id)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, notes)
}

// GetFolderNoteCount counts the notes directly in a folder
// GET /api/folders/{id}/note-count
func (h *FolderHandler) GetFolderNoteCount(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathInt64(r, "id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	count, err := h.folderService.GetFolderNoteCount(r.Context(), id)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, folderNoteCountResponse{FolderID: id, NoteCount: count})
}
