package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/ysh038/cloud-storage/config"
	"github.com/ysh038/cloud-storage/database"
	"github.com/ysh038/cloud-storage/handlers"
	"github.com/ysh038/cloud-storage/logger"
	"github.com/ysh038/cloud-storage/middleware"
	"github.com/ysh038/cloud-storage/models"
	"github.com/ysh038/cloud-storage/repositories"
	"github.com/ysh038/cloud-storage/services"

	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("starting cloud-storage service")

	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("load config failed: %v", err)
	}
	logger.SetLevel(cfg.LogLevel)

	db, err := database.Open(&cfg.Database)
	if err != nil {
		log.Fatalf("open database failed: %v", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Folder{},
		&models.File{},
	); err != nil {
		log.Fatalf("database migration failed: %v", err)
	}
	log.Println("database migration completed")

	redisClient := database.NewRedisClient(&cfg.Redis)
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("connect redis failed: %v", err)
	}

	if err := os.MkdirAll(filepath.Join(cfg.Storage.BasePath, "files"), 0o755); err != nil {
		log.Fatalf("create files dir failed: %v", err)
	}

	repoContainer := repositories.NewGormRepositories(db, redisClient).BuildContainer()
	serviceContainer := services.NewContainer(repoContainer, cfg)
	handlers.SetServices(serviceContainer)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serviceContainer.Reclaimer.Start(ctx)
	serviceContainer.Cleanup.Start(ctx)
	log.Println("background workers started")

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.RequestLogger())
	setupRoutes(r, serviceContainer)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Printf("server listening on http://%s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server start failed: %v", err)
	}
}

func setupRoutes(r *gin.Engine, sc *services.Container) {
	api := r.Group("/api")

	api.GET("/health", handlers.HealthCheck)

	auth := api.Group("/auth")
	{
		auth.POST("/register", handlers.Register)
		auth.POST("/login", handlers.Login)
		auth.POST("/refresh", handlers.Refresh)
	}

	protected := api.Group("")
	protected.Use(middleware.Auth(sc.Tokens))
	{
		protected.GET("/auth/profile", handlers.GetProfile)

		protected.GET("/folders", handlers.ListFolders)
		protected.POST("/folders", handlers.CreateFolder)
		protected.PATCH("/folders/:id", handlers.UpdateFolder)
		protected.DELETE("/folders/:id", handlers.DeleteFolder)

		protected.GET("/files", handlers.ListFiles)
		protected.POST("/files/upload", handlers.UploadFile)
		protected.GET("/files/:id/download", handlers.DownloadFile)
		protected.PATCH("/files/:id", handlers.UpdateFile)
		protected.DELETE("/files/:id", handlers.DeleteFile)

		protected.GET("/files/trash", handlers.ListTrash)
		protected.POST("/files/:id/restore", handlers.RestoreFile)
		protected.DELETE("/files/:id/permanent", handlers.PurgeFile)
	}
}
