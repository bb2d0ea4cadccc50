package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
	"pinknote/internal/config"
	"pinknote/internal/handler"
	"pinknote/internal/middleware"
	"pinknote/internal/repository"
	"pinknote/internal/service"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}

// run returns instead of exiting so deferred cleanup (log file, database)
// always happens.
func run() error {
	// Load .env file (silently ignore if it doesn't exist - for production)
	_ = godotenv.Load()

	// Load configuration
	cfg := config.Load()

	// Setup structured logging (optionally mirrored to a rotating log file)
	var logOut io.Writer
	if cfg.LogDir != "" {
		f, err := config.SetupLogFile(cfg.LogDir, cfg.LogMaxFiles)
		if err != nil {
			return err
		}
		defer f.Close()
		logOut = f
	}
	logger := config.NewLogger(cfg, logOut)

	logger.Info().
		Str("environment", cfg.Environment).
		Str("port", cfg.Port).
		Str("db_driver", cfg.DBDriver).
		Msg("server starting")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Open (and migrate) the configured database
	store, err := repository.Open(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer store.Close()

	logger.Info().Str("db_driver", store.Driver).Msg("database connected")

	// Resolve the default folder once; it is protected by id from here on
	defaultFolder, err := service.EnsureDefaultFolder(ctx, store.Folders, store.Notes, store.TxManager, cfg.DefaultFolderName, logger)
	if err != nil {
		return fmt.Errorf("ensure default folder: %w", err)
	}

	h := newHandler(cfg, store, defaultFolder.ID, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      h,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info().Str("port", cfg.Port).Msg("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}
	logger.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

// newHandler wires services and handlers on top of store and wraps the routes
// in the middleware chain.
func newHandler(cfg *config.Config, store *repository.Store, defaultFolderID int64, logger zerolog.Logger) http.Handler {
	// Create services
	folderService := service.NewFolderService(store.Folders, store.Notes, store.TxManager, defaultFolderID, logger)
	hierarchyService := service.NewHierarchyService(store.Folders, store.Notes, store.TxManager, logger)
	noteService := service.NewNoteService(store.Notes, store.Folders, store.TxManager, defaultFolderID, logger)

	// Create handlers
	folderHandler := handler.NewFolderHandler(folderService, logger)
	hierarchyHandler := handler.NewHierarchyHandler(hierarchyService, logger)
	noteHandler := handler.NewNoteHandler(noteService, logger)

	logger.Info().Int64("default_folder_id", defaultFolderID).Msg("services initialized")

	// Create HTTP router (Go 1.22+ enhanced patterns)
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, folderHandler, hierarchyHandler, noteHandler)

	// Build middleware chain
	var h http.Handler = mux

	// Apply middleware in reverse order (they wrap each other)
	// Order: CORS → RequestLogger → Recovery → Routes
	h = middleware.Recovery(logger)(h)
	h = middleware.RequestLogger(logger)(h)

	// CORS - outermost to answer OPTIONS pre-flight requests
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   strings.Split(cfg.CORSOrigins, ","),
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
	})
	h = corsHandler.Handler(h)

	return h
}
