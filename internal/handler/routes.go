package handler

import "net/http"

// RegisterRoutes registers every API route on mux (Go 1.22+ method patterns)
func RegisterRoutes(mux *http.ServeMux, folders *FolderHandler, hierarchy *HierarchyHandler, notes *NoteHandler) {
	// Health check
	mux.HandleFunc("GET /health", HealthCheck)

	// Folder routes
	mux.HandleFunc("GET /api/folders", folders.ListFolders)
	mux.HandleFunc("POST /api/folders", folders.CreateFolder)
	mux.HandleFunc("GET /api/folders/{id}", folders.GetFolder)
	mux.HandleFunc("DELETE /api/folders/{id}", folders.DeleteFolder)
	mux.HandleFunc("POST /api/folders/{id}/rename", folders.RenameFolder)
	mux.HandleFunc("POST /api/folders/{id}/move", folders.MoveFolder)
	mux.HandleFunc("GET /api/folders/{id}/subfolders", folders.GetSubfolders) // {id} = "root" for the root level
	mux.HandleFunc("GET /api/folders/{id}/notes", folders.GetFolderNotes)
	mux.HandleFunc("GET /api/folders/{id}/note-count", folders.GetFolderNoteCount)

	// Hierarchy views
	mux.HandleFunc("GET /api/hierarchy", hierarchy.GetHierarchy)
	mux.HandleFunc("GET /api/tree", hierarchy.GetTree)

	// Note routes
	mux.HandleFunc("GET /api/notes", notes.ListNotes)
	mux.HandleFunc("POST /api/notes", notes.CreateNote)
	mux.HandleFunc("GET /api/notes/search", notes.SearchNotes) // Must come before {id} route
	mux.HandleFunc("GET /api/notes/{id}", notes.GetNote)
	mux.HandleFunc("PATCH /api/notes/{id}", notes.UpdateNote)
	mux.HandleFunc("DELETE /api/notes/{id}", notes.DeleteNote)
	mux.HandleFunc("POST /api/notes/{id}/move", notes.MoveNote)
}
