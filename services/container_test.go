package services

import (
	"testing"

	"github.com/ysh038/cloud-storage/config"
	"github.com/ysh038/cloud-storage/repositories"
)

func TestNewContainerInitializesServices(t *testing.T) {
	cfg := &config.Config{}
	cfg.Storage.BasePath = t.TempDir()
	cfg.Storage.MaxFileSize = 10 << 20
	cfg.Storage.ChunkSize = 8 << 10
	cfg.JWT.Secret = "access-secret"
	cfg.JWT.RefreshSecret = "refresh-secret"
	cfg.JWT.ExpireMinutes = 30
	cfg.JWT.RefreshExpireHours = 720
	cfg.Trash.RetentionDays = 7
	cfg.Trash.SweepIntervalSeconds = 3600

	container := NewContainer(repositories.Container{}, cfg)

	if container == nil {
		t.Fatalf("expected container instance")
	}
	if container.Auth == nil || container.Folder == nil || container.File == nil || container.Cleanup == nil {
		t.Fatalf("expected all services to be initialized")
	}
	if container.Reclaimer == nil || container.Tokens == nil {
		t.Fatalf("expected reclaimer and token manager to be initialized")
	}
}
