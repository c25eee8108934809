package repositories

import (
	"context"

	"github.com/ysh038/cloud-storage/models"

	"gorm.io/gorm"
)

type GormFolderRepository struct {
	db *gorm.DB
}

func NewGormFolderRepository(db *gorm.DB) *GormFolderRepository {
	return &GormFolderRepository{db: db}
}

func (r *GormFolderRepository) GetByID(_ context.Context, tx *gorm.DB, folderID uint) (models.Folder, error) {
	var folder models.Folder
	err := useTx(r.db, tx).First(&folder, folderID).Error
	return folder, err
}

func (r *GormFolderRepository) Create(_ context.Context, tx *gorm.DB, folder *models.Folder) error {
	return useTx(r.db, tx).Create(folder).Error
}

func (r *GormFolderRepository) ListByParent(_ context.Context, tx *gorm.DB, ownerID uint, parentID *uint) ([]models.Folder, error) {
	db := useTx(r.db, tx).Where("owner_id = ?", ownerID)
	if parentID == nil {
		db = db.Where("parent_folder_id IS NULL")
	} else {
		db = db.Where("parent_folder_id = ?", *parentID)
	}

	var folders []models.Folder
	err := db.Order("name ASC").Find(&folders).Error
	return folders, err
}

func (r *GormFolderRepository) ListChildIDs(_ context.Context, tx *gorm.DB, ownerID uint, parentIDs []uint) ([]uint, error) {
	if len(parentIDs) == 0 {
		return nil, nil
	}
	var ids []uint
	err := useTx(r.db, tx).Model(&models.Folder{}).
		Where("owner_id = ? AND parent_folder_id IN ?", ownerID, parentIDs).
		Pluck("id", &ids).Error
	return ids, err
}

func (r *GormFolderRepository) UpdateByID(_ context.Context, tx *gorm.DB, folderID uint, updates map[string]interface{}) error {
	return useTx(r.db, tx).Model(&models.Folder{}).Where("id = ?", folderID).Updates(updates).Error
}

func (r *GormFolderRepository) DeleteByIDs(_ context.Context, tx *gorm.DB, folderIDs []uint) error {
	if len(folderIDs) == 0 {
		return nil
	}
	return useTx(r.db, tx).Where("id IN ?", folderIDs).Delete(&models.Folder{}).Error
}
