package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/profetadiario/noticias/app/api"
	"github.com/profetadiario/noticias/app/cfg"
	"github.com/profetadiario/noticias/app/config"
	"github.com/profetadiario/noticias/app/favorites"
	"github.com/profetadiario/noticias/app/news"
	"github.com/profetadiario/noticias/app/session"
	"github.com/profetadiario/noticias/app/store"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Load configuration from environment variables and command-line flags
	appConfig, err := cfg.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if appConfig == nil {
		// Help was shown, exit gracefully
		return
	}

	logLevel := slog.LevelInfo
	if appConfig.Debug {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel})))

	log.Println("Starting Profeta Diário server...")

	// Document store connection; the service cannot run without it
	log.Println("Connecting to document store...")
	storeClient, err := store.New(appConfig.RedisAddr, appConfig.RedisPassword, appConfig.RedisDB)
	if err != nil {
		log.Fatal("Failed to connect to document store: ", err)
	}
	defer storeClient.Close()

	// Load topic configurations
	log.Printf("Loading topic configurations from %s...", appConfig.TopicsDir)
	loader := config.NewLoader(appConfig.TopicsDir)
	topics, err := loader.LoadAll()
	if err != nil {
		log.Fatal("Failed to load topic configurations: ", err)
	}
	log.Printf("Loaded %d topics", topics.Count())

	// News search client; without an API key every search degrades to
	// placeholder content
	searchClient := news.NewClient(appConfig.GNewsBaseURL, appConfig.GNewsAPIKey, appConfig.UserAgent)
	if appConfig.GNewsAPIKey == "" {
		log.Println("GNEWS_API_KEY not set, topics will serve placeholder content")
	}

	// Favorites store
	favoritesStore := favorites.NewStore(storeClient)

	// Session manager; sign-in is unavailable without the Google client ID
	var verifier session.Verifier
	if appConfig.GoogleClientID != "" {
		verifier = session.NewGoogleVerifier(appConfig.GoogleClientID)
	} else {
		log.Println("GOOGLE_CLIENT_ID not set, sign-in disabled")
	}
	sessions := session.NewManager(storeClient, verifier)
	sessions.Start()

	// Initialize HTTP server
	log.Println("Initializing HTTP server...")
	apiHandler := api.NewHandler(storeClient, sessions, searchClient, favoritesStore, topics)
	server := api.NewServer(apiHandler, appConfig.Version)

	// Create HTTP server with timeouts
	httpServer := &http.Server{
		Addr:         ":" + appConfig.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start HTTP server in a goroutine
	serverErrChan := make(chan error, 1)
	go func() {
		log.Printf("Starting HTTP server on port %s", appConfig.Port)
		log.Printf("API endpoints available:")
		log.Printf("  Sign-in:       http://localhost:%s/auth/google (POST)", appConfig.Port)
		log.Printf("  Readers:       http://localhost:%s/readers (POST)", appConfig.Port)
		log.Printf("  Health check:  http://localhost:%s/health", appConfig.Port)
		log.Printf("  Statistics:    http://localhost:%s/stats", appConfig.Port)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for interrupt signal or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	log.Println("Profeta Diário server started successfully!")
	log.Println("Press Ctrl+C to shutdown gracefully...")

	select {
	case sig := <-sigChan:
		log.Printf("Received signal: %v", sig)
	case err := <-serverErrChan:
		log.Printf("Server error: %v", err)
	}

	// Graceful shutdown
	log.Println("Shutting down server gracefully...")

	// Create shutdown context with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	// Shutdown HTTP server
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	} else {
		log.Println("HTTP server stopped")
	}

	log.Println("Profeta Diário server shutdown complete")
}
