package seed

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"pinknote/internal/domain"
	"pinknote/internal/domain/services"
)

type demoFolder struct {
	name     string
	notes    []demoNote
	children []demoFolder
}

type demoNote struct {
	title   string
	content string
}

// demoTree is the sample hierarchy created by DemoSeeder
var demoTree = []demoFolder{
	{
		name: "Work",
		notes: []demoNote{
			{title: "Standup", content: "Yesterday: folder moves.\nToday: search."},
		},
		children: []demoFolder{
			{
				name: "Projects",
				notes: []demoNote{
					{title: "Roadmap", content: "Q1: hierarchy\nQ2: sync"},
				},
				children: []demoFolder{
					{name: "Archive"},
				},
			},
			{name: "Meetings"},
		},
	},
	{
		name: "Personal",
		notes: []demoNote{
			{title: "Groceries", content: "eggs, flour, pink lemonade"},
			{title: "Reading list", content: "The Pragmatic Programmer"},
		},
		children: []demoFolder{
			{name: "Travel"},
		},
	},
}

// DemoResult counts what a seeding run created
type DemoResult struct {
	FoldersCreated int
	FoldersExisted int
	NotesCreated   int
}

// DemoSeeder fills an empty database with a sample hierarchy through the
// service layer, so seeded data passes the same checks as API requests.
type DemoSeeder struct {
	folders services.FolderService
	notes   services.NoteService
	logger  zerolog.Logger
}

// NewDemoSeeder creates a new demo seeder
func NewDemoSeeder(folders services.FolderService, notes services.NoteService, logger zerolog.Logger) *DemoSeeder {
	return &DemoSeeder{
		folders: folders,
		notes:   notes,
		logger:  logger,
	}
}

// Seed creates the sample folders and notes. Folders that already exist are
// reused and their notes are not created again, so running it twice is safe.
func (s *DemoSeeder) Seed(ctx context.Context) (*DemoResult, error) {
	result := &DemoResult{}
	for _, f := range demoTree {
		if err := s.seedFolder(ctx, f, nil, result); err != nil {
			return result, err
		}
	}
	return result, nil
}

func (s *DemoSeeder) seedFolder(ctx context.Context, f demoFolder, parentID *int64, result *DemoResult) error {
	folder, err := s.folders.CreateFolder(ctx, &services.CreateFolderRequest{Name: f.name, ParentID: parentID})

	var id int64
	created := true
	var conflict *domain.ConflictError
	switch {
	case err == nil:
		id = folder.ID
		result.FoldersCreated++
	case errors.As(err, &conflict):
		id = conflict.ResourceID
		created = false
		result.FoldersExisted++
		s.logger.Debug().Str("name", f.name).Int64("id", id).Msg("demo folder already exists")
	default:
		return err
	}

	if created {
		for _, n := range f.notes {
			if _, err := s.notes.CreateNote(ctx, &services.CreateNoteRequest{
				Title:    n.title,
				Content:  n.content,
				FolderID: &id,
			}); err != nil {
				return err
			}
			result.NotesCreated++
		}
	}

	for _, child := range f.children {
		if err := s.seedFolder(ctx, child, &id, result); err != nil {
			return err
		}
	}
	return nil
}
