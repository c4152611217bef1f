package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/username/cardfolio/backend/internal/api"
	"github.com/username/cardfolio/backend/internal/config"
	"github.com/username/cardfolio/backend/internal/database"
	"github.com/username/cardfolio/backend/internal/security"
	"github.com/username/cardfolio/backend/internal/services"
)

func main() {
	config.LoadConfig()
	cfg := config.Cfg

	// Initialize database
	if err := database.Initialize(cfg.DatabasePath); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Initialize services
	authService := security.NewAuthService(cfg.JWTSecret, cfg.AccessTokenExpiry)
	historyService := services.NewHistoryService(database.GetDB())
	cardService := services.NewCardService(database.GetDB(), historyService)
	portfolioService := services.NewPortfolioService()
	imageStorageService := services.NewImageStorageService(cfg.CardImagesDir)

	// Setup router
	router := api.SetupRouter(authService, cardService, portfolioService, historyService, imageStorageService)

	// Create HTTP server for graceful shutdown
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests a deadline to complete
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
