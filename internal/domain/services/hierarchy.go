package services

import (
	"context"

	"pinknote/internal/domain/models"
)

// HierarchyService renders the folder forest for display
type HierarchyService interface {
	// GetFolderHierarchy returns every folder in pre-order with its depth (root = 0).
	// Siblings are ordered by name, then id.
	GetFolderHierarchy(ctx context.Context) ([]models.FolderDepth, error)

	// GetFolderTree returns the same traversal as nested nodes with note counts
	GetFolderTree(ctx context.Context) ([]*models.FolderTreeNode, error)
}
