package main

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"talenthub-backend/config"
	"talenthub-backend/database"
	"talenthub-backend/handlers"
	"talenthub-backend/middleware"
	"talenthub-backend/models"
	"talenthub-backend/services"
	"talenthub-backend/storage"
)

func main() {
	cfg := config.GetConfig()
	database.InitDB()

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())

	r.Use(cors.New(cors.Config{
		AllowAllOrigins:  true, // dev only
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// blob backend
	storageCfg := config.LoadStorageConfig()
	if err := storageCfg.Validate(); err != nil {
		log.Fatalf("invalid storage config: %v", err)
	}

	var blobs storage.BlobStore
	var err error
	if storageCfg.IsS3Enabled() {
		blobs, err = storage.NewS3Store(storage.S3Config{
			AccessKey: storageCfg.S3AccessKey,
			SecretKey: storageCfg.S3SecretKey,
			Region:    storageCfg.S3Region,
			Bucket:    storageCfg.S3Bucket,
			Endpoint:  storageCfg.S3Endpoint,
		})
	} else {
		blobs, err = storage.NewLocalStore(storageCfg.LocalRoot)
	}
	if err != nil {
		log.Fatalf("failed to initialize blob storage: %v", err)
	}

	// services
	tokenStore := services.NewMemoryKVStore()
	fileService := services.NewFileService(database.DB, blobs, cfg)
	notificationService := services.NewNotificationService(database.DB, cfg)
	schedulerService := services.NewSchedulerService(database.DB, fileService)

	if err := schedulerService.Start(); err != nil {
		log.Fatalf("failed to start scheduler: %v", err)
	}
	defer schedulerService.Stop()
	defer tokenStore.Close()

	// handlers
	middleware.SetTokenStore(tokenStore)
	handlers.InitAuthHandler(tokenStore)
	handlers.InitCandidateHandler(notificationService)
	fileHandler := handlers.NewFileHandler(fileService)
	jobsHandler := handlers.NewJobsHandler(schedulerService, notificationService)

	// public routes
	public := r.Group("/api")
	{
		public.POST("/login", middleware.RateLimit(20), handlers.Login)
		public.POST("/register", middleware.RateLimit(10), handlers.Register)
	}

	// file serving: public documents work without a session
	serve := r.Group("/api/uploads")
	serve.Use(middleware.OptionalAuth())
	{
		serve.GET("/*key", fileHandler.ServeFile)
	}

	// authenticated routes
	protected := r.Group("/api")
	protected.Use(middleware.AuthMiddleware())
	{
		protected.POST("/logout", handlers.Logout)
		protected.GET("/me", handlers.GetCurrentUser)

		// ========== Candidates ==========
		protected.GET("/candidates", handlers.GetCandidates)
		protected.POST("/candidates", handlers.AddCandidate)
		protected.GET("/candidates/:id", handlers.GetCandidate)
		protected.PUT("/candidates/:id", handlers.UpdateCandidate)
		protected.DELETE("/candidates/:id", handlers.DeleteCandidate)
		protected.POST("/candidates/:id/stage", handlers.AdvanceCandidateStage)

		// ========== Clients ==========
		protected.GET("/clients", handlers.GetClients)
		protected.POST("/clients", handlers.AddClient)
		protected.GET("/clients/:id", handlers.GetClient)
		protected.PUT("/clients/:id", handlers.UpdateClient)
		protected.DELETE("/clients/:id", handlers.DeleteClient)
		protected.POST("/clients/:id/stage", handlers.AdvanceClientStage)

		// ========== Requirements ==========
		protected.GET("/requirements", handlers.GetRequirements)
		protected.POST("/requirements", handlers.AddRequirement)
		protected.GET("/requirements/:id", handlers.GetRequirement)
		protected.PUT("/requirements/:id", handlers.UpdateRequirement)
		protected.DELETE("/requirements/:id", handlers.DeleteRequirement)
		protected.POST("/requirements/:id/stage", handlers.AdvanceRequirementStage)

		// ========== Agencies ==========
		protected.GET("/agencies", handlers.GetAgencies)
		protected.POST("/agencies", handlers.AddAgency)
		protected.GET("/agencies/:id", handlers.GetAgency)
		protected.PUT("/agencies/:id", handlers.UpdateAgency)
		protected.DELETE("/agencies/:id", handlers.DeleteAgency)

		// ========== BGV vendors ==========
		protected.GET("/bgv-vendors", handlers.GetBGVVendors)
		protected.POST("/bgv-vendors", handlers.AddBGVVendor)
		protected.GET("/bgv-vendors/:id", handlers.GetBGVVendor)
		protected.PUT("/bgv-vendors/:id", handlers.UpdateBGVVendor)
		protected.DELETE("/bgv-vendors/:id", handlers.DeleteBGVVendor)

		// ========== Files ==========
		protected.POST("/files/upload", middleware.RateLimit(30), fileHandler.UploadFile)
		protected.POST("/files/upload-multiple", middleware.RateLimit(30), fileHandler.UploadMultiple)
		protected.GET("/files/:id", fileHandler.GetFileInfo)
		protected.GET("/files/:id/download", fileHandler.DownloadFile)
		protected.GET("/files/:id/presigned-url", fileHandler.GetPresignedURL)
		protected.DELETE("/files/:id", fileHandler.DeleteFile)
		protected.GET("/files/entity/:type/:id", fileHandler.ListEntityFiles)

		// document review, admin only
		review := protected.Group("")
		review.Use(middleware.RoleRequired(models.RoleAdmin, models.RoleSuperAdmin))
		{
			review.POST("/files/:id/verify", fileHandler.VerifyDocument)
			review.POST("/files/bulk-verify", fileHandler.BulkVerify)
		}

		// ========== Dashboard ==========
		protected.GET("/dashboard/stats", handlers.GetDashboardStats)
		protected.GET("/export/candidates", handlers.ExportCandidates)

		// ========== Admin / background jobs ==========
		admin := protected.Group("")
		admin.Use(middleware.RoleRequired(models.RoleAdmin, models.RoleSuperAdmin))
		{
			admin.GET("/jobs/executions", jobsHandler.GetJobExecutions)
			admin.POST("/jobs/purge", jobsHandler.RunPurgeNow)
			admin.GET("/notifications/logs", jobsHandler.GetEmailLogs)
		}
	}

	port := cfg.ServerPort
	log.Printf("Server starting on port %s", port)
	if err := r.Run("0.0.0.0:" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
