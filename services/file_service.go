package services

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/ysh038/cloud-storage/logger"
	"github.com/ysh038/cloud-storage/models"
	"github.com/ysh038/cloud-storage/repositories"

	"gorm.io/gorm"
)

type FileDownload struct {
	File        models.File
	AbsPath     string
	ContentType string
}

type FilePatch struct {
	Name *string
	// ParentFolderID uses the root sentinel: 0 moves the file to the top level.
	ParentFolderID *uint
}

type FileService interface {
	ListFiles(ctx context.Context, ownerID uint, parentFolderID uint) ([]models.File, error)
	UploadFile(ctx context.Context, ownerID uint, filename string, content io.Reader, declaredSize int64, parentFolderID uint) (models.File, error)
	GetDownloadInfo(ctx context.Context, callerID uint, fileID uint) (FileDownload, error)
	UpdateFile(ctx context.Context, callerID uint, fileID uint, patch FilePatch) error
	SoftDeleteFile(ctx context.Context, callerID uint, fileID uint) error
	ListTrash(ctx context.Context, ownerID uint) ([]models.File, error)
	RestoreFile(ctx context.Context, callerID uint, fileID uint) error
	PurgeFile(ctx context.Context, callerID uint, fileID uint) error
}

type fileService struct {
	txManager   TxManager
	folders     repositories.FolderRepository
	files       repositories.FileRepository
	allocator   *PathAllocator
	maxFileSize int64
	chunkSize   int64
}

func NewFileService(
	txManager TxManager,
	folders repositories.FolderRepository,
	files repositories.FileRepository,
	allocator *PathAllocator,
	maxFileSize int64,
	chunkSize int64,
) FileService {
	return &fileService{
		txManager:   txManager,
		folders:     folders,
		files:       files,
		allocator:   allocator,
		maxFileSize: maxFileSize,
		chunkSize:   chunkSize,
	}
}

func (s *fileService) ListFiles(ctx context.Context, ownerID uint, parentFolderID uint) ([]models.File, error) {
	files, err := s.files.ListByParent(ctx, nil, ownerID, sentinelToParent(parentFolderID))
	if err != nil {
		return nil, newAppError(http.StatusInternalServerError, "failed to list files", err)
	}
	if files == nil {
		files = []models.File{}
	}
	return files, nil
}

func (s *fileService) UploadFile(ctx context.Context, ownerID uint, filename string, content io.Reader, declaredSize int64, parentFolderID uint) (models.File, error) {
	if filename == "" {
		return models.File{}, newAppError(http.StatusBadRequest, "filename is required", nil)
	}
	// Fast reject on the declared size; the stream is still re-checked
	// byte by byte because the declaration is client input.
	if declaredSize > s.maxFileSize {
		return models.File{}, newAppError(http.StatusRequestEntityTooLarge, "file exceeds the size limit", nil)
	}

	if parentFolderID != 0 {
		if err := s.requireOwnedFolder(ctx, ownerID, parentFolderID); err != nil {
			return models.File{}, err
		}
	}

	relPath, absPath, err := s.allocator.Allocate(ownerID, sanitizeFilename(filename), time.Now())
	if err != nil {
		return models.File{}, newAppError(http.StatusInternalServerError, "failed to allocate storage path", err)
	}

	written, err := s.writeCapped(absPath, content)
	if err != nil {
		s.discard(absPath)
		var appErr *AppError
		if errors.As(err, &appErr) {
			return models.File{}, appErr
		}
		return models.File{}, newAppError(http.StatusInternalServerError, "failed to save file", err)
	}

	file := models.File{
		Name:           sanitizeFilename(filename),
		PathOnDisk:     relPath,
		FileSize:       written,
		ParentFolderID: sentinelToParent(parentFolderID),
		OwnerID:        ownerID,
	}
	err = s.txManager.WithTransaction(ctx, func(tx *gorm.DB) error {
		return s.files.Create(ctx, tx, &file)
	})
	if err != nil {
		// Row never committed, so the bytes must go too: either both
		// exist or neither does.
		s.discard(absPath)
		return models.File{}, newAppError(http.StatusInternalServerError, "failed to save file record", err)
	}

	return file, nil
}

// writeCapped streams content to absPath in fixed-size chunks, aborting
// as soon as the accumulated size crosses the ceiling. Returns the byte
// count actually written, which becomes the recorded file size.
func (s *fileService) writeCapped(absPath string, content io.Reader) (int64, error) {
	dst, err := os.Create(absPath)
	if err != nil {
		return 0, newAppError(http.StatusInternalServerError, "failed to create file", err)
	}

	buf := make([]byte, s.chunkSize)
	var written int64
	for {
		n, readErr := content.Read(buf)
		if n > 0 {
			written += int64(n)
			if written > s.maxFileSize {
				dst.Close()
				return written, newAppError(http.StatusRequestEntityTooLarge, "file exceeds the size limit", nil)
			}
			if _, writeErr := dst.Write(buf[:n]); writeErr != nil {
				dst.Close()
				return written, writeErr
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			dst.Close()
			return written, readErr
		}
	}

	if err := dst.Close(); err != nil {
		return written, err
	}
	return written, nil
}

func (s *fileService) discard(absPath string) {
	if err := os.Remove(absPath); err != nil && !os.IsNotExist(err) {
		logger.Errorf("remove partial upload %s: %v", absPath, err)
	}
}

func (s *fileService) GetDownloadInfo(ctx context.Context, callerID uint, fileID uint) (FileDownload, error) {
	file, err := s.getOwnedFile(ctx, callerID, fileID)
	if err != nil {
		return FileDownload{}, err
	}

	absPath := s.allocator.Abs(file.PathOnDisk)
	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		// Metadata/disk divergence surfaces as not-found, not as a 500.
		return FileDownload{}, newAppError(http.StatusNotFound, "file not found", nil)
	}

	return FileDownload{
		File:        file,
		AbsPath:     absPath,
		ContentType: getMimeType(filepath.Ext(file.Name)),
	}, nil
}

func (s *fileService) UpdateFile(ctx context.Context, callerID uint, fileID uint, patch FilePatch) error {
	file, err := s.getOwnedFile(ctx, callerID, fileID)
	if err != nil {
		return err
	}

	updates := map[string]interface{}{}
	if patch.Name != nil {
		if nameStem(*patch.Name) == "" {
			return newAppError(http.StatusBadRequest, "file name must not be empty", nil)
		}
		updates["name"] = renameKeepExtension(file.Name, *patch.Name)
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

	if err := s.files.UpdateByID(ctx, nil, fileID, updates); err != nil {
		return newAppError(http.StatusInternalServerError, "failed to update file", err)
	}
	return nil
}

func (s *fileService) SoftDeleteFile(ctx context.Context, callerID uint, fileID uint) error {
	file, err := s.getOwnedFile(ctx, callerID, fileID)
	if err != nil {
		return err
	}
	if file.IsDeleted {
		return nil
	}

	now := time.Now()
	err = s.files.UpdateByID(ctx, nil, fileID, map[string]interface{}{
		"is_deleted": true,
		"deleted_at": &now,
	})
	if err != nil {
		return newAppError(http.StatusInternalServerError, "failed to move file to trash", err)
	}
	return nil
}

func (s *fileService) ListTrash(ctx context.Context, ownerID uint) ([]models.File, error) {
	files, err := s.files.ListTrashByOwner(ctx, nil, ownerID)
	if err != nil {
		return nil, newAppError(http.StatusInternalServerError, "failed to list trash", err)
	}
	if files == nil {
		files = []models.File{}
	}
	return files, nil
}

func (s *fileService) RestoreFile(ctx context.Context, callerID uint, fileID uint) error {
	// A purged file has no row left, so this also rejects restore-after-purge.
	file, err := s.getOwnedFile(ctx, callerID, fileID)
	if err != nil {
		return err
	}
	if !file.IsDeleted {
		return newAppError(http.StatusBadRequest, "file is not in the trash", nil)
	}

	err = s.files.UpdateByID(ctx, nil, fileID, map[string]interface{}{
		"is_deleted": false,
		"deleted_at": nil,
	})
	if err != nil {
		return newAppError(http.StatusInternalServerError, "failed to restore file", err)
	}
	return nil
}

func (s *fileService) PurgeFile(ctx context.Context, callerID uint, fileID uint) error {
	file, err := s.getOwnedFile(ctx, callerID, fileID)
	if err != nil {
		return err
	}
	if !file.IsDeleted {
		return newAppError(http.StatusBadRequest, "file is not in the trash", nil)
	}

	// Disk first, then the row. An unlink failure is logged, not returned:
	// metadata stays authoritative and the bytes become a reclaimable leak.
	if err := os.Remove(s.allocator.Abs(file.PathOnDisk)); err != nil && !os.IsNotExist(err) {
		logger.Errorf("purge %s: %v", file.PathOnDisk, err)
	}

	if err := s.files.DeleteByID(ctx, nil, fileID); err != nil {
		return newAppError(http.StatusInternalServerError, "failed to purge file", err)
	}
	return nil
}

func (s *fileService) getOwnedFile(ctx context.Context, callerID uint, fileID uint) (models.File, error) {
	file, err := s.files.GetByID(ctx, nil, fileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.File{}, newAppError(http.StatusNotFound, "file not found", nil)
		}
		return models.File{}, newAppError(http.StatusInternalServerError, "failed to load file", err)
	}
	if file.OwnerID != callerID {
		return models.File{}, newAppError(http.StatusForbidden, "not the file owner", nil)
	}
	return file, nil
}

func (s *fileService) requireOwnedFolder(ctx context.Context, ownerID uint, folderID uint) error {
	folder, err := s.folders.GetByID(ctx, nil, folderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return newAppError(http.StatusNotFound, "target folder not found", nil)
		}
		return newAppError(http.StatusInternalServerError, "failed to load target folder", err)
	}
	if folder.OwnerID != ownerID {
		return newAppError(http.StatusNotFound, "target folder not found", nil)
	}
	return nil
}
