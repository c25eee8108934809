package repositories

import (
	"context"
	"time"

	"github.com/ysh038/cloud-storage/models"

	"gorm.io/gorm"
)

type TxManager interface {
	WithTransaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type UserRepository interface {
	CountByEmail(ctx context.Context, tx *gorm.DB, email string) (int64, error)
	Create(ctx context.Context, tx *gorm.DB, user *models.User) error
	GetByEmail(ctx context.Context, tx *gorm.DB, email string) (models.User, error)
	GetByID(ctx context.Context, tx *gorm.DB, userID uint) (models.User, error)
}

type FolderRepository interface {
	// GetByID is deliberately not owner-scoped: callers check existence
	// first and ownership second, so a missing row and a foreign row can
	// be told apart.
	GetByID(ctx context.Context, tx *gorm.DB, folderID uint) (models.Folder, error)
	Create(ctx context.Context, tx *gorm.DB, folder *models.Folder) error
	ListByParent(ctx context.Context, tx *gorm.DB, ownerID uint, parentID *uint) ([]models.Folder, error)
	ListChildIDs(ctx context.Context, tx *gorm.DB, ownerID uint, parentIDs []uint) ([]uint, error)
	UpdateByID(ctx context.Context, tx *gorm.DB, folderID uint, updates map[string]interface{}) error
	DeleteByIDs(ctx context.Context, tx *gorm.DB, folderIDs []uint) error
}

type FileRepository interface {
	GetByID(ctx context.Context, tx *gorm.DB, fileID uint) (models.File, error)
	Create(ctx context.Context, tx *gorm.DB, file *models.File) error
	// ListByParent returns live (not soft-deleted) files only.
	ListByParent(ctx context.Context, tx *gorm.DB, ownerID uint, parentID *uint) ([]models.File, error)
	// ListByFolderIDs returns every file under the given folders, trashed
	// or not; the deletion engine reclaims both alike.
	ListByFolderIDs(ctx context.Context, tx *gorm.DB, ownerID uint, folderIDs []uint) ([]models.File, error)
	ListTrashByOwner(ctx context.Context, tx *gorm.DB, ownerID uint) ([]models.File, error)
	ListTrashOlderThan(ctx context.Context, tx *gorm.DB, cutoff time.Time) ([]models.File, error)
	UpdateByID(ctx context.Context, tx *gorm.DB, fileID uint, updates map[string]interface{}) error
	DeleteByID(ctx context.Context, tx *gorm.DB, fileID uint) error
	DeleteByFolderIDs(ctx context.Context, tx *gorm.DB, ownerID uint, folderIDs []uint) error
}

// ReclaimQueue hands paths whose metadata rows are already gone to the
// background disk reclaimer. Push happens after the deleting transaction
// commits; entries survive a process restart.
type ReclaimQueue interface {
	Push(ctx context.Context, paths []string) error
	// Pop blocks up to timeout and returns ("", nil) when nothing is pending.
	Pop(ctx context.Context, timeout time.Duration) (string, error)
}

type Container struct {
	TxManager    TxManager
	Users        UserRepository
	Folders      FolderRepository
	Files        FileRepository
	ReclaimQueue ReclaimQueue
}
