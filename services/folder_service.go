package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/ysh038/cloud-storage/models"
	"github.com/ysh038/cloud-storage/repositories"

	"gorm.io/gorm"
)

type FolderListOutput struct {
	Folders []models.Folder `json:"folders"`
	// ParentFolderID is the queried folder's own parent, for breadcrumb
	// navigation. Root sentinel 0 stands in for "no parent", and also for
	// a queried folder that no longer exists.
	ParentFolderID uint `json:"parent_folder_id"`
}

type FolderPatch struct {
	Name *string
	// ParentFolderID uses the root sentinel: 0 moves the folder to the top level.
	ParentFolderID *uint
}

type FolderService interface {
	ListFolders(ctx context.Context, ownerID uint, currentFolderID uint) (FolderListOutput, error)
	CreateFolder(ctx context.Context, ownerID uint, name string, parentFolderID uint) (models.Folder, error)
	UpdateFolder(ctx context.Context, callerID uint, folderID uint, patch FolderPatch) error
	DeleteFolder(ctx context.Context, callerID uint, folderID uint) error
}

type folderService struct {
	txManager TxManager
	folders   repositories.FolderRepository
	files     repositories.FileRepository
	engine    deletionEngine
}

func NewFolderService(
	txManager TxManager,
	folders repositories.FolderRepository,
	files repositories.FileRepository,
	reclaimer Reclaimer,
) FolderService {
	return &folderService{
		txManager: txManager,
		folders:   folders,
		files:     files,
		engine: deletionEngine{
			txManager: txManager,
			folders:   folders,
			files:     files,
			reclaimer: reclaimer,
		},
	}
}

func (s *folderService) ListFolders(ctx context.Context, ownerID uint, currentFolderID uint) (FolderListOutput, error) {
	children, err := s.folders.ListByParent(ctx, nil, ownerID, sentinelToParent(currentFolderID))
	if err != nil {
		return FolderListOutput{}, newAppError(http.StatusInternalServerError, "failed to list folders", err)
	}

	parentSentinel := uint(0)
	if currentFolderID != 0 {
		current, err := s.folders.GetByID(ctx, nil, currentFolderID)
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			// Folder vanished under the client (e.g. deleted in another
			// tab); report root so the breadcrumb has somewhere to go.
		case err != nil:
			return FolderListOutput{}, newAppError(http.StatusInternalServerError, "failed to load current folder", err)
		case current.OwnerID != ownerID:
			// A foreign folder looks the same as a missing one.
		default:
			parentSentinel = parentToSentinel(current.ParentFolderID)
		}
	}

	if children == nil {
		children = []models.Folder{}
	}
	return FolderListOutput{Folders: children, ParentFolderID: parentSentinel}, nil
}

func (s *folderService) CreateFolder(ctx context.Context, ownerID uint, name string, parentFolderID uint) (models.Folder, error) {
	if parentFolderID != 0 {
		if err := s.requireOwnedFolder(ctx, ownerID, parentFolderID); err != nil {
			return models.Folder{}, err
		}
	}

	folder := models.Folder{
		Name:           name,
		ParentFolderID: sentinelToParent(parentFolderID),
		OwnerID:        ownerID,
	}
	if err := s.folders.Create(ctx, nil, &folder); err != nil {
		return models.Folder{}, newAppError(http.StatusInternalServerError, "failed to create folder", err)
	}
	return folder, nil
}

func (s *folderService) UpdateFolder(ctx context.Context, callerID uint, folderID uint, patch FolderPatch) error {
	// Existence strictly before ownership.
	folder, err := s.folders.GetByID(ctx, nil, folderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newAppError(http.StatusNotFound, "folder not found", nil)
		}
		return newAppError(http.StatusInternalServerError, "failed to load folder", err)
	}
	if folder.OwnerID != callerID {
		return newAppError(http.StatusForbidden, "not the folder owner", nil)
	}

	updates := map[string]interface{}{}
	if patch.Name != nil {
		updates["name"] = *patch.Name
	}
	if patch.ParentFolderID != nil {
		if *patch.ParentFolderID != 0 {
			if err := s.requireOwnedFolder(ctx, callerID, *patch.ParentFolderID); err != nil {
				return err
			}
		}
		updates["parent_folder_id"] = sentinelToParent(*patch.ParentFolderID)
	}
	if len(updates) == 0 {
		return nil
	}

	if err := s.folders.UpdateByID(ctx, nil, folderID, updates); err != nil {
		return newAppError(http.StatusInternalServerError, "failed to update folder", err)
	}
	return nil
}

func (s *folderService) DeleteFolder(ctx context.Context, callerID uint, folderID uint) error {
	folder, err := s.folders.GetByID(ctx, nil, folderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newAppError(http.StatusNotFound, "folder not found", nil)
		}
		return newAppError(http.StatusInternalServerError, "failed to load folder", err)
	}
	if folder.OwnerID != callerID {
		return newAppError(http.StatusForbidden, "not the folder owner", nil)
	}

	if _, err := s.engine.DeleteTree(ctx, callerID, folderID); err != nil {
		return newAppError(http.StatusInternalServerError, "failed to delete folder", err)
	}
	return nil
}

// requireOwnedFolder validates a non-root parent target. A parent that is
// missing or belongs to someone else is reported identically, so folder
// ids of other users cannot be probed.
func (s *folderService) requireOwnedFolder(ctx context.Context, ownerID uint, folderID uint) error {
	folder, err := s.folders.GetByID(ctx, nil, folderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newAppError(http.StatusNotFound, "parent folder not found", nil)
		}
		return newAppError(http.StatusInternalServerError, "failed to load parent folder", err)
	}
	if folder.OwnerID != ownerID {
		return newAppError(http.StatusNotFound, "parent folder not found", nil)
	}
	return nil
}
