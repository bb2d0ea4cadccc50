package handler

import (
	"net/http"

	"github.com/rs/zerolog"
	"pinknote/internal/domain/services"
	"pinknote/internal/httputil"
)

// NoteHandler handles note HTTP requests
type NoteHandler struct {
	noteService services.NoteService
	logger      zerolog.Logger
}

// NewNoteHandler creates a new note handler
func NewNoteHandler(noteService services.NoteService, logger zerolog.Logger) *NoteHandler {
	return &NoteHandler{
		noteService: noteService,
		logger:      logger,
	}
}

type moveNoteRequest struct {
	FolderID *int64 `json:"folder_id"`
}

// ListNotes lists every note, newest first
// GET /api/notes
func (h *NoteHandler) ListNotes(w http.ResponseWriter, r *http.Request) {
	notes, err := h.noteService.ListNotes(r.Context())
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, notes)
}

// CreateNote creates a note; without folder_id it lands in the default folder
// POST /api/notes
func (h *NoteHandler) CreateNote(w http.ResponseWriter, r *http.Request) {
	var req services.CreateNoteRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		badRequest(w, "Invalid request body")
		return
	}

	note, err := h.noteService.CreateNote(r.Context(), &req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, note)
}

// SearchNotes matches notes by title or content
// GET /api/notes/search?q=
func (h *NoteHandler) SearchNotes(w http.ResponseWriter, r *http.Request) {
	results, err := h.noteService.SearchNotes(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, results)
}

// GetNote retrieves a note by ID
// GET /api/notes/{id}
func (h *NoteHandler) GetNote(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathInt64(r, "id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	note, err := h.noteService.GetNote(r.Context(), id)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, note)
}

// UpdateNote updates title and/or content
// PATCH /api/notes/{id}
func (h *NoteHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathInt64(r, "id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	var req services.UpdateNoteRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		badRequest(w, "Invalid request body")
		return
	}

	note, err := h.noteService.UpdateNote(r.Context(), id, &req)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, note)
}

// DeleteNote deletes a note
// DELETE /api/notes/{id}
func (h *NoteHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathInt64(r, "id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	if err := h.noteService.DeleteNote(r.Context(), id); err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondNoContent(w)
}

// MoveNote moves a note to another folder
// POST /api/notes/{id}/move
func (h *NoteHandler) MoveNote(w http.ResponseWriter, r *http.Request) {
	id, err := httputil.PathInt64(r, "id")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	var req moveNoteRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		badRequest(w, "Invalid request body")
		return
	}
	if req.FolderID == nil {
		badRequest(w, "folder_id is required")
		return
	}

	note, err := h.noteService.MoveNote(r.Context(), id, *req.FolderID)
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, note)
}
