package services

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ysh038/cloud-storage/models"
)

func writeTrashedFile(t *testing.T, base string, files *fakeFileRepo, name string, deletedAt time.Time) models.File {
	t.Helper()
	rel := filepath.Join("files", "7", name)
	abs := filepath.Join(base, rel)
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(abs, []byte("trash"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return files.add(models.File{
		Name:       name,
		PathOnDisk: rel,
		OwnerID:    7,
		IsDeleted:  true,
		DeletedAt:  &deletedAt,
	})
}

func TestCleanupServiceSweepPurgesExpiredOnly(t *testing.T) {
	base := t.TempDir()
	files := newFakeFileRepo()
	now := time.Now()

	expired := writeTrashedFile(t, base, files, "old.txt", now.Add(-8*24*time.Hour))
	recent := writeTrashedFile(t, base, files, "new.txt", now.Add(-6*24*time.Hour))

	svc := NewCleanupService(fakeTxManager{}, files, NewPathAllocator(base), 7*24*time.Hour, time.Hour)

	purged, err := svc.SweepExpiredTrash(context.Background(), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if purged != 1 {
		t.Fatalf("expected 1 purged file, got %d", purged)
	}

	if _, ok := files.filesByID[expired.ID]; ok {
		t.Fatal("expected expired row to be gone")
	}
	if _, err := os.Stat(filepath.Join(base, expired.PathOnDisk)); !os.IsNotExist(err) {
		t.Fatalf("expected expired bytes removed, stat err = %v", err)
	}

	if _, ok := files.filesByID[recent.ID]; !ok {
		t.Fatal("file inside the retention window was purged")
	}
	if _, err := os.Stat(filepath.Join(base, recent.PathOnDisk)); err != nil {
		t.Fatalf("bytes inside the retention window were removed: %v", err)
	}
}

func TestCleanupServiceSweepToleratesMissingBytes(t *testing.T) {
	files := newFakeFileRepo()
	deletedAt := time.Now().Add(-8 * 24 * time.Hour)
	stored := files.add(models.File{
		Name:       "ghost.txt",
		PathOnDisk: "files/7/ghost.txt",
		OwnerID:    7,
		IsDeleted:  true,
		DeletedAt:  &deletedAt,
	})

	svc := NewCleanupService(fakeTxManager{}, files, NewPathAllocator(t.TempDir()), 7*24*time.Hour, time.Hour)

	purged, err := svc.SweepExpiredTrash(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if purged != 1 {
		t.Fatalf("expected 1 purged file, got %d", purged)
	}
	if _, ok := files.filesByID[stored.ID]; ok {
		t.Fatal("expected row to be gone even without bytes on disk")
	}
}

func TestCleanupServiceSweepSkipsWhileAnotherRuns(t *testing.T) {
	files := newFakeFileRepo()
	deletedAt := time.Now().Add(-8 * 24 * time.Hour)
	files.add(models.File{
		Name:       "old.txt",
		PathOnDisk: "files/7/old.txt",
		OwnerID:    7,
		IsDeleted:  true,
		DeletedAt:  &deletedAt,
	})

	svc := NewCleanupService(fakeTxManager{}, files, NewPathAllocator(t.TempDir()), 7*24*time.Hour, time.Hour).(*cleanupService)

	svc.sweepMu.Lock()
	defer svc.sweepMu.Unlock()

	purged, err := svc.SweepExpiredTrash(context.Background(), time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if purged != 0 {
		t.Fatalf("expected overlapping sweep to do nothing, purged %d", purged)
	}
	if len(files.filesByID) != 1 {
		t.Fatal("overlapping sweep must not touch rows")
	}
}
