package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/username/cardfolio/backend/internal/api/handlers"
	"github.com/username/cardfolio/backend/internal/config"
	"github.com/username/cardfolio/backend/internal/security"
	"github.com/username/cardfolio/backend/internal/services"
)

func SetupRouter(authService *security.AuthService, cardService *services.CardService, portfolioService *services.PortfolioService, historyService *services.HistoryService, imageStorageService *services.ImageStorageService) *gin.Engine {
	router := gin.Default()
	router.Use(handlers.MetricsMiddleware())

	cfg := config.Cfg
	frontendPath := cfg.FrontendDistPath
	serveFrontend := frontendPath != "" && dirExists(frontendPath)

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORSOrigins
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	corsConfig.AllowCredentials = false
	router.Use(cors.New(corsConfig))

	// Initialize handlers
	userHandler := handlers.NewUserHandler(authService)
	cardHandler := handlers.NewCardHandler(cardService, imageStorageService)
	portfolioHandler := handlers.NewPortfolioHandler(cardService, portfolioService)
	historyHandler := handlers.NewHistoryHandler(historyService)
	adminHandler := handlers.NewAdminHandler(cardService)

	// Serve uploaded card images
	if imageStorageService != nil {
		router.Static("/images/cards", imageStorageService.GetStorageDir())
	}

	// API routes
	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		auth.Use(handlers.LoginRateLimiter(cfg.LoginRatePerMin))
		{
			auth.POST("/register", userHandler.Register)
			auth.POST("/login", userHandler.Login)
		}

		authed := api.Group("")
		authed.Use(handlers.AuthMiddleware(authService))
		{
			cards := authed.Group("/cards")
			{
				cards.GET("", cardHandler.ListCards)
				cards.POST("", cardHandler.CreateCard)
				cards.PUT("/:id", cardHandler.UpdateCard)
				cards.DELETE("/:id", cardHandler.DeleteCard)
				cards.PUT("/:id/sale-price", cardHandler.SetSalePrice)
				cards.POST("/:id/sold", cardHandler.MarkSold)
			}

			trades := authed.Group("/trades")
			{
				trades.POST("", cardHandler.RecordTrade)
				trades.POST("/revert", cardHandler.RevertTrade)
			}

			portfolio := authed.Group("/portfolio")
			{
				portfolio.GET("/snapshot", portfolioHandler.GetSnapshot)
				portfolio.GET("/sold-balance", portfolioHandler.GetSoldCardBalance)
				portfolio.GET("/groups", portfolioHandler.GetTransactionGroups)
				portfolio.GET("/crafted", portfolioHandler.GetCraftedCards)
			}

			history := authed.Group("/history")
			{
				history.GET("", historyHandler.GetHistory)
				history.POST("/backfill", historyHandler.Backfill)
			}

			authed.GET("/profile", userHandler.GetProfile)
			authed.PUT("/profile", userHandler.UpsertProfile)

			admin := authed.Group("/admin")
			admin.Use(handlers.RequireAdmin())
			{
				admin.POST("/transfer", adminHandler.TransferCard)
				admin.POST("/swap", adminHandler.SwapCollections)
			}
		}
	}

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// Prometheus scrape endpoint
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Serve frontend static files
	if serveFrontend {
		indexPath := filepath.Join(frontendPath, "index.html")

		router.Static("/assets", filepath.Join(frontendPath, "assets"))
		router.StaticFile("/vite.svg", filepath.Join(frontendPath, "vite.svg"))

		router.GET("/", func(c *gin.Context) {
			c.File(indexPath)
		})

		// SPA fallback - serve index.html for all non-API routes
		router.NoRoute(func(c *gin.Context) {
			path := c.Request.URL.Path
			if strings.HasPrefix(path, "/api") {
				c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
				return
			}
			c.File(indexPath)
		})
	}

	return router
}

func dirExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}
