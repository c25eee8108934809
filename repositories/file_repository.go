package repositories

import (
	"context"
	"time"

	"github.com/ysh038/cloud-storage/models"

	"gorm.io/gorm"
)

type GormFileRepository struct {
	db *gorm.DB
}

func NewGormFileRepository(db *gorm.DB) *GormFileRepository {
	return &GormFileRepository{db: db}
}

func (r *GormFileRepository) GetByID(_ context.Context, tx *gorm.DB, fileID uint) (models.File, error) {
	var file models.File
	err := useTx(r.db, tx).First(&file, fileID).Error
	return file, err
}

func (r *GormFileRepository) Create(_ context.Context, tx *gorm.DB, file *models.File) error {
	return useTx(r.db, tx).Create(file).Error
}

func (r *GormFileRepository) ListByParent(_ context.Context, tx *gorm.DB, ownerID uint, parentID *uint) ([]models.File, error) {
	db := useTx(r.db, tx).Where("owner_id = ? AND is_deleted = ?", ownerID, false)
	if parentID == nil {
		db = db.Where("parent_folder_id IS NULL")
	} else {
		db = db.Where("parent_folder_id = ?", *parentID)
	}

	var files []models.File
	err := db.Order("name ASC").Find(&files).Error
	return files, err
}

func (r *GormFileRepository) ListByFolderIDs(_ context.Context, tx *gorm.DB, ownerID uint, folderIDs []uint) ([]models.File, error) {
	if len(folderIDs) == 0 {
		return nil, nil
	}
	var files []models.File
	err := useTx(r.db, tx).
		Where("owner_id = ? AND parent_folder_id IN ?", ownerID, folderIDs).
		Find(&files).Error
	return files, err
}

func (r *GormFileRepository) ListTrashByOwner(_ context.Context, tx *gorm.DB, ownerID uint) ([]models.File, error) {
	var files []models.File
	err := useTx(r.db, tx).
		Where("owner_id = ? AND is_deleted = ?", ownerID, true).
		Order("deleted_at DESC").
		Find(&files).Error
	return files, err
}

func (r *GormFileRepository) ListTrashOlderThan(_ context.Context, tx *gorm.DB, cutoff time.Time) ([]models.File, error) {
	var files []models.File
	err := useTx(r.db, tx).
		Where("is_deleted = ? AND deleted_at < ?", true, cutoff).
		Find(&files).Error
	return files, err
}

func (r *GormFileRepository) UpdateByID(_ context.Context, tx *gorm.DB, fileID uint, updates map[string]interface{}) error {
	return useTx(r.db, tx).Model(&models.File{}).Where("id = ?", fileID).Updates(updates).Error
}

func (r *GormFileRepository) DeleteByID(_ context.Context, tx *gorm.DB, fileID uint) error {
	return useTx(r.db, tx).Delete(&models.File{}, fileID).Error
}

func (r *GormFileRepository) DeleteByFolderIDs(_ context.Context, tx *gorm.DB, ownerID uint, folderIDs []uint) error {
	if len(folderIDs) == 0 {
		return nil
	}
	return useTx(r.db, tx).
		Where("owner_id = ? AND parent_folder_id IN ?", ownerID, folderIDs).
		Delete(&models.File{}).Error
}
