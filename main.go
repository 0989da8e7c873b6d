package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/portalempleos/backend/auth"
	"github.com/portalempleos/backend/config"
	_ "github.com/portalempleos/backend/docs"
	"github.com/portalempleos/backend/extract"
	"github.com/portalempleos/backend/gemini"
	"github.com/portalempleos/backend/handlers"
	"github.com/portalempleos/backend/mailer"
	"github.com/portalempleos/backend/mcp"
	"github.com/portalempleos/backend/parser"
	"github.com/portalempleos/backend/ratelimit"
	"github.com/portalempleos/backend/storage"
	"github.com/portalempleos/backend/tools"
)

// @title Portal Empleos Chile API
// @version 1.0
// @description Job board backend for Chile: rate-limited CV intake and AI-assisted CV parsing.

// @contact.name API Support
// @contact.email soporte@portalempleos.cl

// @host localhost:8080
// @BasePath /api

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load .env file if present (for local development)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Load configuration
	cfg := config.Load()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	// Set Gin mode based on debug setting
	if cfg.Debug {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create context for initialization
	ctx := context.Background()

	// Initialize Firestore client
	log.Println("Initializing Firestore client...")
	firestoreClient, err := storage.NewFirestoreClient(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Firestore client: %v", err)
	}
	defer firestoreClient.Close()
	log.Println("Firestore client initialized successfully")

	// Initialize Cloud Storage client
	log.Println("Initializing Cloud Storage client...")
	storageClient, err := storage.NewCloudStorageClient(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Cloud Storage client: %v", err)
	}
	defer storageClient.Close()
	log.Println("Cloud Storage client initialized successfully")

	// Initialize Gemini client
	log.Println("Initializing Gemini client...")
	geminiClient, err := gemini.NewClient(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize Gemini client: %v", err)
	}
	defer geminiClient.Close()
	log.Println("Gemini client initialized successfully")

	// Initialize supporting services
	jwtService := auth.NewJWTService(cfg)
	resendMailer := mailer.NewResendMailer(cfg)
	limiter := ratelimit.New(firestoreClient, cfg.MaxApplicationsPerHour, time.Hour)
	cvParser := parser.New(storageClient, extract.NewDocumentExtractor(), geminiClient, firestoreClient)

	// Create handlers
	applicationHandler := handlers.NewApplicationHandler(firestoreClient, storageClient, limiter, resendMailer, cfg.SiteURL)
	parseCVHandler := handlers.NewParseCVHandler(cvParser)
	offerHandler := handlers.NewOfferHandler(firestoreClient, storageClient)
	authHandler := handlers.NewAuthHandler(firestoreClient, jwtService, resendMailer)
	adminHandler := handlers.NewAdminHandler(firestoreClient, storageClient, cfg.CVRetentionDays)

	// Create MCP server with tool registry
	toolRegistry := tools.NewToolRegistry()
	toolRegistry.Register(tools.NewParseCVTool(cvParser))
	toolRegistry.Register(tools.NewCVMetadataTool(firestoreClient))

	mcpServer := mcp.NewServer(toolRegistry)

	// Create Gin router
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(gin.Logger())

	// Configure CORS for the web frontend
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3000", "http://localhost:4321", cfg.SiteURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Admin-Token"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Register routes
	router.GET("/health", handlers.HealthCheck)

	api := router.Group("/api")
	{
		// Application intake (public, rate limited)
		api.POST("/applications", applicationHandler.Submit)
		api.GET("/applications", applicationHandler.MethodNotAllowed)

		// CV parsing, invoked after intake by an external trigger
		api.POST("/parse-cv", parseCVHandler.ParseCV)

		// Public offer browsing
		api.GET("/offers", offerHandler.List)
		api.GET("/offers/:id", offerHandler.Get)

		// Auth endpoints (public)
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}

		// Protected auth endpoints (require authentication)
		authProtected := api.Group("/auth")
		authProtected.Use(auth.AuthMiddleware(jwtService))
		{
			authProtected.GET("/profile", authHandler.Profile)
		}

		// Offer management and employer review (require authentication)
		offersProtected := api.Group("/offers")
		offersProtected.Use(auth.AuthMiddleware(jwtService))
		{
			offersProtected.POST("", offerHandler.Create)
			offersProtected.POST("/:id/toggle", offerHandler.Toggle)
			offersProtected.GET("/:id/applications", offerHandler.ListApplications)
			offersProtected.POST("/:id/cv-download", offerHandler.DownloadCV)
		}

		// Maintenance endpoints (static admin token)
		adminGroup := api.Group("/admin")
		adminGroup.Use(auth.AdminTokenMiddleware(cfg.AdminToken))
		{
			adminGroup.POST("/cleanup-cvs", adminHandler.CleanupCVs)
		}

		// Tools introspection endpoint
		api.GET("/tools", mcpServer.HandleToolsList)

		// MCP endpoints for external AI agents
		mcpServer.RegisterRoutes(api)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Starting server on port %s...", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited gracefully")
}
