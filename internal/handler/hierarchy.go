package handler

import (
	"net/http"

	"github.com/rs/zerolog"
	"pinknote/internal/domain/services"
	"pinknote/internal/httputil"
)

// HierarchyHandler serves the folder hierarchy views
type HierarchyHandler struct {
	hierarchyService services.HierarchyService
	logger           zerolog.Logger
}

// NewHierarchyHandler creates a new hierarchy handler
func NewHierarchyHandler(hierarchyService services.HierarchyService, logger zerolog.Logger) *HierarchyHandler {
	return &HierarchyHandler{
		hierarchyService: hierarchyService,
		logger:           logger,
	}
}

// GetHierarchy returns the flat pre-order listing with depths
// GET /api/hierarchy
func (h *HierarchyHandler) GetHierarchy(w http.ResponseWriter, r *http.Request) {
	entries, err := h.hierarchyService.GetFolderHierarchy(r.Context())
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, entries)
}

// GetTree returns the nested folder tree with note counts
// GET /api/tree (?format=yaml for YAML)
func (h *HierarchyHandler) GetTree(w http.ResponseWriter, r *http.Request) {
	tree, err := h.hierarchyService.GetFolderTree(r.Context())
	if err != nil {
		handleError(w, r, h.logger, err)
		return
	}

	switch r.URL.Query().Get("format") {
	case "", "json":
		httputil.RespondJSON(w, http.StatusOK, tree)
	case "yaml":
		httputil.RespondYAML(w, http.StatusOK, tree)
	default:
		badRequest(w, "format must be json or yaml")
	}
}
