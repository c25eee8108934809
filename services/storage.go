package services

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// PathAllocator derives on-disk locations for new content. Paths are
// relative to the storage base so the base can move without rewriting
// rows; a path is handed out exactly once and never reused.
type PathAllocator struct {
	basePath string
}

func NewPathAllocator(basePath string) *PathAllocator {
	return &PathAllocator{basePath: basePath}
}

// Allocate returns a (relative, absolute) path pair for a new file under
// files/{owner}/{year}/{month}/, keeping the original extension. The
// directory is created on every call; MkdirAll makes that a no-op when it
// already exists.
func (a *PathAllocator) Allocate(ownerID uint, filename string, now time.Time) (string, string, error) {
	ext := filepath.Ext(filename)
	unique := uuid.New().String() + ext

	relDir := filepath.Join("files", fmt.Sprintf("%d", ownerID), now.Format("2006"), now.Format("01"))
	absDir := filepath.Join(a.basePath, relDir)
	if err := os.MkdirAll(absDir, 0o755); err != nil {
		return "", "", err
	}

	return filepath.Join(relDir, unique), filepath.Join(absDir, unique), nil
}

// Abs resolves a stored relative path against the storage base.
func (a *PathAllocator) Abs(relPath string) string {
	return filepath.Join(a.basePath, relPath)
}

// EnsureOwnerDir creates the per-owner storage directory. Called at
// registration so the owner's tree exists before the first upload.
func (a *PathAllocator) EnsureOwnerDir(ownerID uint) error {
	return os.MkdirAll(filepath.Join(a.basePath, "files", fmt.Sprintf("%d", ownerID)), 0o755)
}
