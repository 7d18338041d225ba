package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dom/postboard/internal/api"
	"github.com/dom/postboard/internal/config"
	"github.com/dom/postboard/internal/observability"
	"github.com/dom/postboard/internal/repository/postgres"
	"github.com/dom/postboard/internal/service"
	"github.com/dom/postboard/internal/websocket"
	"gorm.io/gorm/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	for _, key := range cfg.UsingInsecureDefaults() {
		log.Printf("WARN [main] %s is not set, using an insecure default", key)
	}
	for _, key := range cfg.NonStandardTokenLifetimes() {
		log.Printf("WARN [main] %s overrides the standard token lifetime (access %s, refresh %s)",
			key, config.StandardAccessTokenTTL, config.StandardRefreshTokenTTL)
	}

	logLevel := logger.Warn
	if cfg.IsDevelopment() {
		logLevel = logger.Info
	}

	// Initialize database
	db, err := postgres.NewConnection(cfg.DatabaseURL, logLevel)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	// Initialize repositories
	repos := postgres.NewRepositories(db)

	metrics := observability.NewMetrics()

	// Initialize WebSocket hub
	hub := websocket.NewHub(metrics)
	go hub.Run()

	// Initialize services
	services := service.NewServices(repos, cfg, hub, metrics)

	// Initialize router
	router := api.NewRouter(services, hub, metrics)

	// Create server
	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}
	hub.Stop()

	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}

	log.Println("Server stopped")
}
