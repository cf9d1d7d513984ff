package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"reelstream/api"
	"reelstream/config"
	"reelstream/handlers"
	"reelstream/services/history"
	"reelstream/services/metadata"
	"reelstream/services/preferences"
	"reelstream/services/recommend"
	"reelstream/services/search"
	"reelstream/services/users"

	"github.com/gorilla/mux"
	"github.com/spf13/afero"
	"gopkg.in/natefinch/lumberjack.v2"
)

func main() {

	portOverride := flag.Int("port", 0, "override server port from config")
	dataDir := flag.String("data", "", "override storage directory from config")
	flag.Parse()

	fmt.Println("🚀 reelstream Backend Starting...")

	// Determine config path (env or default)
	configPath := os.Getenv("REELSTREAM_CONFIG")
	if configPath == "" {
		configPath = filepath.Join("data", "settings.json")
	}

	// Init config manager and load settings (creates defaults if missing)
	cfgManager := config.NewManager(configPath)
	settings, err := cfgManager.Load()
	if err != nil {
		log.Fatalf("failed to load settings: %v", err)
	}

	// Set up file logging with rotation
	if settings.Log.File != "" {
		logDir := filepath.Dir(settings.Log.File)
		if err := os.MkdirAll(logDir, 0755); err != nil {
			log.Printf("Warning: could not create log directory %s: %v", logDir, err)
		} else {
			fileWriter := &lumberjack.Logger{
				Filename:   settings.Log.File,
				MaxSize:    settings.Log.MaxSize,
				MaxBackups: settings.Log.MaxBackups,
				MaxAge:     settings.Log.MaxAge,
				Compress:   settings.Log.Compress,
			}
			// Standard log goes to both console and file
			multiWriter := io.MultiWriter(os.Stdout, fileWriter)
			log.SetOutput(multiWriter)
			log.SetFlags(log.LstdFlags | log.Lshortfile)
			log.Printf("Logging to file: %s", settings.Log.File)
		}
	}

	// Apply CLI overrides
	if *portOverride > 0 {
		settings.Server.Port = *portOverride
	}
	if *dataDir != "" {
		settings.Storage.Directory = *dataDir
	}

	// Construct services
	fs := afero.NewOsFs()

	metadataService := metadata.NewService(metadata.Config{
		OMDbKeys:    settings.Metadata.OMDbAPIKeys,
		TMDBKey:     settings.Metadata.TMDBAPIKey,
		HTTPTimeout: time.Duration(settings.Metadata.HTTPTimeoutSec) * time.Second,
	})
	if !metadataService.HasOMDb() {
		log.Printf("warning: no OMDb API keys configured; keyword search and enrichment will be limited")
	}
	if !metadataService.HasTMDB() {
		log.Printf("warning: no TMDB API key configured; title index search is disabled")
	}

	usersService, err := users.NewService(fs, settings.Storage.Directory)
	if err != nil {
		log.Fatalf("failed to open users store: %v", err)
	}
	if _, err := usersService.EnsureDefault(); err != nil {
		log.Fatalf("failed to bootstrap default user: %v", err)
	}

	historyService, err := history.NewService(fs, settings.Storage.Directory)
	if err != nil {
		log.Fatalf("failed to open history store: %v", err)
	}

	preferencesService := preferences.NewService(historyService)

	searchService := search.NewService(metadataService)
	searchService.SetTimeout(time.Duration(settings.Search.TimeoutSec) * time.Second)

	recommendService := recommend.NewService(metadataService, preferencesService, recommend.Config{
		LatestQuota:       settings.Recommend.LatestQuota,
		LatestWindowYears: settings.Recommend.LatestWindowYears,
		EnrichLimit:       settings.Recommend.EnrichLimit,
		EnrichConcurrency: settings.Recommend.EnrichConcurrency,
		PoolMultiplier:    settings.Recommend.PoolMultiplier,
		MinPoolSize:       settings.Recommend.MinPoolSize,
		KeywordYears:      settings.Recommend.KeywordYears,
		FailOpen:          !settings.Recommend.StrictGenreFilter,
	})

	// Register API routes
	r := mux.NewRouter()
	api.Register(r,
		handlers.NewSearchHandler(searchService),
		handlers.NewRecommendationsHandler(recommendService),
		handlers.NewHistoryHandler(historyService),
		handlers.NewUsersHandler(usersService),
	)

	addr := fmt.Sprintf("%s:%d", settings.Server.Host, settings.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Setup graceful shutdown
	shutdownChan := make(chan os.Signal, 1)
	signal.Notify(shutdownChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Printf("listening on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	<-shutdownChan
	log.Println("🛑 Shutdown signal received, cleaning up...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}

	log.Println("✅ Shutdown complete")
}
