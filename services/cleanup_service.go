package services

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/ysh038/cloud-storage/logger"
	"github.com/ysh038/cloud-storage/repositories"

	"gorm.io/gorm"
)

type CleanupService interface {
	// SweepExpiredTrash purges every file soft-deleted before now minus
	// the retention window. Returns how many rows were removed.
	SweepExpiredTrash(ctx context.Context, now time.Time) (int, error)
	Start(ctx context.Context)
}

type cleanupService struct {
	txManager TxManager
	files     repositories.FileRepository
	allocator *PathAllocator
	retention time.Duration
	interval  time.Duration
	sweepMu   sync.Mutex
}

func NewCleanupService(
	txManager TxManager,
	files repositories.FileRepository,
	allocator *PathAllocator,
	retention time.Duration,
	interval time.Duration,
) CleanupService {
	return &cleanupService{
		txManager: txManager,
		files:     files,
		allocator: allocator,
		retention: retention,
		interval:  interval,
	}
}

func (s *cleanupService) Start(ctx context.Context) {
	go s.loop(ctx)
}

func (s *cleanupService) loop(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			purged, err := s.SweepExpiredTrash(ctx, time.Now())
			if err != nil {
				logger.Errorf("trash sweep failed: %v", err)
				continue
			}
			if purged > 0 {
				logger.Infof("trash sweep purged %d expired files", purged)
			}
		}
	}
}

func (s *cleanupService) SweepExpiredTrash(ctx context.Context, now time.Time) (int, error) {
	// A sweep that is already running makes this one redundant.
	if !s.sweepMu.TryLock() {
		return 0, nil
	}
	defer s.sweepMu.Unlock()

	cutoff := now.Add(-s.retention)
	purged := 0
	err := s.txManager.WithTransaction(ctx, func(tx *gorm.DB) error {
		expired, err := s.files.ListTrashOlderThan(ctx, tx, cutoff)
		if err != nil {
			return err
		}

		for i := range expired {
			abs := s.allocator.Abs(expired[i].PathOnDisk)
			if err := os.Remove(abs); err != nil && !os.IsNotExist(err) {
				logger.Errorf("sweep remove %s: %v", expired[i].PathOnDisk, err)
			}
			if err := s.files.DeleteByID(ctx, tx, expired[i].ID); err != nil {
				return err
			}
			purged++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return purged, nil
}
