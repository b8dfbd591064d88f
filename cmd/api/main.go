package main

import (
	"log"
	"os"

	"paper-submission-api/config"
	"paper-submission-api/controllers"
	"paper-submission-api/middleware"
	"paper-submission-api/routes"
	"paper-submission-api/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	logFile, _ := config.InitLogging()
	if logFile != nil {
		defer logFile.Close()
	}

	// Initialize database
	config.InitDB()

	// Set Gin mode
	ginMode := os.Getenv("GIN_MODE")
	if ginMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Create Gin router
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Add security headers middleware
	router.Use(func(c *gin.Context) {
		c.Header("X-Content-Type-Options", "nosniff")
		c.Header("X-Frame-Options", "DENY")
		c.Header("Referrer-Policy", "strict-origin-when-cross-origin")
		c.Next()
	})

	// Add CORS middleware
	router.Use(middleware.CORSMiddleware())

	// Artifact storage
	uploadPath := os.Getenv("UPLOAD_PATH")
	if uploadPath == "" {
		uploadPath = "./uploads"
	}
	artifacts, err := services.NewDiskArtifactStore(uploadPath, "/files")
	if err != nil {
		log.Fatal("Failed to initialize artifact storage:", err)
	}
	router.Static("/files", uploadPath)

	// Notifier: SMTP when configured, log-only otherwise. Built once here
	// and injected; there is no global mail transporter.
	smtpCfg := config.LoadSMTPConfig()
	var notifier services.Notifier
	if smtpCfg.IsConfigured() {
		notifier = services.NewSMTPNotifier(smtpCfg)
	} else {
		log.Println("SMTP not configured, notifications will be logged only")
		notifier = services.LogNotifier{}
	}

	// Wire the service layer
	submissions := services.NewSubmissionRepository(config.DB)
	assignments := services.NewAssignmentLedger(config.DB)
	reviews := services.NewReviewStore(config.DB)
	events := services.NewEventFinder(config.DB)
	users := services.NewUserFinder(config.DB)

	workflow := services.NewWorkflowService(submissions, assignments, reviews, artifacts, events, users, notifier)
	controllers.InitServices(workflow, submissions, assignments, reviews)

	// Setup routes
	routes.SetupRoutes(router)

	// Start server
	port := os.Getenv("SERVER_PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server starting on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
