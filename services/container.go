package services

import (
	"time"

	"github.com/ysh038/cloud-storage/config"
	"github.com/ysh038/cloud-storage/repositories"
	"github.com/ysh038/cloud-storage/utils"
)

type Container struct {
	Auth      AuthService
	Folder    FolderService
	File      FileService
	Cleanup   CleanupService
	Reclaimer *QueueReclaimer
	Tokens    *utils.TokenManager
}

func NewContainer(repos repositories.Container, cfg *config.Config) *Container {
	allocator := NewPathAllocator(cfg.Storage.BasePath)
	tokens := utils.NewTokenManager(
		cfg.JWT.Secret,
		cfg.JWT.RefreshSecret,
		time.Duration(cfg.JWT.ExpireMinutes)*time.Minute,
		time.Duration(cfg.JWT.RefreshExpireHours)*time.Hour,
	)
	reclaimer := NewQueueReclaimer(repos.ReclaimQueue, allocator)

	return &Container{
		Auth:   NewAuthService(repos.Users, tokens, allocator),
		Folder: NewFolderService(repos.TxManager, repos.Folders, repos.Files, reclaimer),
		File: NewFileService(
			repos.TxManager,
			repos.Folders,
			repos.Files,
			allocator,
			cfg.Storage.MaxFileSize,
			cfg.Storage.ChunkSize,
		),
		Cleanup: NewCleanupService(
			repos.TxManager,
			repos.Files,
			allocator,
			time.Duration(cfg.Trash.RetentionDays)*24*time.Hour,
			time.Duration(cfg.Trash.SweepIntervalSeconds)*time.Second,
		),
		Reclaimer: reclaimer,
		Tokens:    tokens,
	}
}
