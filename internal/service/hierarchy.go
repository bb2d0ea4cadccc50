package service

import (
	"context"
	"sort"

	"github.com/rs/zerolog"
	"pinknote/internal/domain/models"
	"pinknote/internal/domain/repositories"
	"pinknote/internal/domain/services"
)

// hierarchyService implements the HierarchyService interface. It only reads.
type hierarchyService struct {
	folderRepo repositories.FolderRepository
	noteRepo   repositories.NoteRepository
	txManager  repositories.TransactionManager
	logger     zerolog.Logger
}

// NewHierarchyService creates a new hierarchy service
func NewHierarchyService(
	folderRepo repositories.FolderRepository,
	noteRepo repositories.NoteRepository,
	txManager repositories.TransactionManager,
	logger zerolog.Logger,
) services.HierarchyService {
	return &hierarchyService{
		folderRepo: folderRepo,
		noteRepo:   noteRepo,
		txManager:  txManager,
		logger:     logger.With().Str("component", "hierarchy").Logger(),
	}
}

type folderNode struct {
	folder   models.Folder
	children []*folderNode
}

// GetFolderHierarchy returns every folder reachable from a root in pre-order,
// paired with its depth. Siblings, roots included, are ordered by name in byte
// order and then by id.
func (s *hierarchyService) GetFolderHierarchy(ctx context.Context) ([]models.FolderDepth, error) {
	folders, err := s.folderRepo.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	roots := buildForest(folders)
	result := make([]models.FolderDepth, 0, len(folders))

	var walk func(nodes []*folderNode, depth int)
	walk = func(nodes []*folderNode, depth int) {
		for _, n := range nodes {
			result = append(result, models.FolderDepth{Folder: n.folder, Depth: depth})
			walk(n.children, depth+1)
		}
	}
	walk(roots, 0)

	s.logger.Debug().Int("folder_count", len(result)).Msg("folder hierarchy built")
	return result, nil
}

// GetFolderTree returns the nested folder tree with the number of notes filed
// directly in each folder. Folders and counts are read in one transaction.
func (s *hierarchyService) GetFolderTree(ctx context.Context) ([]*models.FolderTreeNode, error) {
	var (
		folders []models.Folder
		counts  map[int64]int64
	)
	err := s.txManager.ExecTx(ctx, func(ctx context.Context) error {
		var err error
		if folders, err = s.folderRepo.GetAll(ctx); err != nil {
			return err
		}
		counts, err = s.noteRepo.CountAllByFolder(ctx)
		return err
	})
	if err != nil {
		return nil, err
	}

	var convert func(nodes []*folderNode) []*models.FolderTreeNode
	convert = func(nodes []*folderNode) []*models.FolderTreeNode {
		out := make([]*models.FolderTreeNode, 0, len(nodes))
		for _, n := range nodes {
			out = append(out, &models.FolderTreeNode{
				ID:        n.folder.ID,
				Name:      n.folder.Name,
				ParentID:  n.folder.ParentID,
				Path:      n.folder.Path,
				NoteCount: counts[n.folder.ID],
				Folders:   convert(n.children),
			})
		}
		return out
	}
	tree := convert(buildForest(folders))

	s.logger.Debug().Int("folder_count", len(folders)).Msg("folder tree built")
	return tree, nil
}

// buildForest nests folders under their parents and returns the sorted roots.
// A folder whose parent is not in the list is unreachable and dropped.
func buildForest(folders []models.Folder) []*folderNode {
	nodes := make(map[int64]*folderNode, len(folders))
	for _, f := range folders {
		nodes[f.ID] = &folderNode{folder: f}
	}

	var roots []*folderNode
	for _, f := range folders {
		node := nodes[f.ID]
		if f.ParentID == nil {
			roots = append(roots, node)
			continue
		}
		if parent, ok := nodes[*f.ParentID]; ok && parent != node {
			parent.children = append(parent.children, node)
		}
	}

	var sortLevel func(level []*folderNode)
	sortLevel = func(level []*folderNode) {
		sort.Slice(level, func(i, j int) bool {
			a, b := level[i].folder, level[j].folder
			if a.Name != b.Name {
				return a.Name < b.Name
			}
			return a.ID < b.ID
		})
		for _, n := range level {
			sortLevel(n.children)
		}
	}
	sortLevel(roots)

	return roots
}
