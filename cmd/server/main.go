package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/cesargomez89/trackvault/internal/app"
	"github.com/cesargomez89/trackvault/internal/config"
	"github.com/cesargomez89/trackvault/internal/constants"
	httpapp "github.com/cesargomez89/trackvault/internal/http"
	"github.com/cesargomez89/trackvault/internal/logger"
	"github.com/cesargomez89/trackvault/internal/storage"
	"github.com/cesargomez89/trackvault/internal/store"
)

func main() {
	cfg := config.Load()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	// Initialize Logger
	appLogger := logger.New(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	// Initialize DB
	db, err := store.NewSQLiteDB(cfg.DBPath)
	if err != nil {
		appLogger.Error("Failed to init DB", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	// Initialize Blob Store (creates the upload dir if absent)
	blobs, err := storage.NewBlobStore(cfg.UploadDir, appLogger)
	if err != nil {
		appLogger.Error("Failed to init blob store", "error", err)
		os.Exit(1)
	}

	// Initialize Services
	uploads := app.NewUploadService(blobs, db, appLogger)
	urls := app.NewMediaURLBuilder(cfg.PublicBaseURL)

	// Initialize Router
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: false,
	}))

	// Routes
	h := httpapp.NewHandler(uploads, db, blobs, urls, appLogger, cfg.MaxUploadMB)
	h.RegisterRoutes(r)

	// Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		appLogger.Info("Server listening", "addr", srv.Addr, "upload_dir", blobs.Root())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	appLogger.Info("Server exiting")
}
