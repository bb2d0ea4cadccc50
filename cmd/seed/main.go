package main

import (
	"context"
	"flag"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
	"pinknote/internal/config"
	"pinknote/internal/domain/services"
	"pinknote/internal/repository"
	"pinknote/internal/seed"
	"pinknote/internal/service"
)

func main() {
	// Parse command-line flags
	dropTables := flag.Bool("drop-tables", false, "Roll back and re-apply all migrations before seeding (fresh start)")
	clearData := flag.Bool("clear-data", false, "Delete all notes and folders (keep schema) and exit")
	demo := flag.Bool("demo", true, "Create the sample folder hierarchy and notes")
	dump := flag.Bool("dump", false, "Print the folder tree as YAML to stdout when done")
	flag.Parse()

	// Load .env file
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Progress goes to stderr so -dump output stays clean
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	// SAFETY: Prevent destructive operations in production
	if cfg.Environment == "prod" && (*dropTables || *clearData) {
		logger.Fatal().Msg("🚫 BLOCKED: Cannot run destructive operations (-drop-tables or -clear-data) in production environment")
	}

	if *clearData {
		logger.Info().Str("environment", cfg.Environment).Str("db_driver", cfg.DBDriver).Msg("🧹 Clearing data only")
	} else {
		logger.Info().Str("environment", cfg.Environment).Str("db_driver", cfg.DBDriver).Msg("🌱 Seeding database")
	}

	// Open (and migrate) the database
	ctx := context.Background()
	store, err := repository.Open(ctx, cfg, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to open database")
	}
	defer store.Close()

	if *dropTables {
		logger.Info().Msg("🗑️  Rebuilding schema...")
		if err := store.Reset(); err != nil {
			logger.Fatal().Err(err).Msg("failed to rebuild schema")
		}
		logger.Info().Msg("✅ Schema rebuilt")
	}

	// Exit early if clear-data mode (just clear and exit)
	if *clearData {
		if err := store.ClearData(ctx); err != nil {
			logger.Fatal().Err(err).Msg("failed to clear data")
		}
		logger.Info().Msg("✅ Data cleared successfully")
		return
	}

	defaultFolder, err := service.EnsureDefaultFolder(ctx, store.Folders, store.Notes, store.TxManager, cfg.DefaultFolderName, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to ensure default folder")
	}

	if *demo {
		folderService := service.NewFolderService(store.Folders, store.Notes, store.TxManager, defaultFolder.ID, logger)
		noteService := service.NewNoteService(store.Notes, store.Folders, store.TxManager, defaultFolder.ID, logger)

		logger.Info().Msg("📝 Seeding demo folders and notes...")
		result, err := seed.NewDemoSeeder(folderService, noteService, logger).Seed(ctx)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to seed demo data")
		}
		logger.Info().
			Int("folders_created", result.FoldersCreated).
			Int("folders_existing", result.FoldersExisted).
			Int("notes_created", result.NotesCreated).
			Msg("🎉 Seeding complete!")
	}

	if *dump {
		hierarchyService := service.NewHierarchyService(store.Folders, store.Notes, store.TxManager, logger)
		if err := writeTree(ctx, os.Stdout, hierarchyService); err != nil {
			logger.Fatal().Err(err).Msg("failed to dump folder tree")
		}
	}
}

// writeTree encodes the nested folder tree as YAML
func writeTree(ctx context.Context, w io.Writer, hierarchy services.HierarchyService) error {
	tree, err := hierarchy.GetFolderTree(ctx)
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(tree); err != nil {
		return err
	}
	return enc.Close()
}
