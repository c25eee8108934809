package services

import (
	"context"

	"github.com/ysh038/cloud-storage/models"
	"github.com/ysh038/cloud-storage/repositories"

	"gorm.io/gorm"
)

// deletionEngine removes a folder subtree. The descendant closure and
// every file row inside it go in one transaction; disk reclamation for
// the collected paths happens after commit, off the request path.
type deletionEngine struct {
	txManager TxManager
	folders   repositories.FolderRepository
	files     repositories.FileRepository
	reclaimer Reclaimer
}

// DeleteTree deletes the folder, its descendant folders, and all file
// rows stored anywhere under them, trashed files included, since their
// bytes still need reclaiming. The caller has already verified existence
// and ownership of the root folder.
func (e deletionEngine) DeleteTree(ctx context.Context, ownerID uint, folderID uint) ([]string, error) {
	var paths []string
	err := e.txManager.WithTransaction(ctx, func(tx *gorm.DB) error {
		closure, err := e.folderClosure(ctx, tx, ownerID, folderID)
		if err != nil {
			return err
		}

		files, err := e.files.ListByFolderIDs(ctx, tx, ownerID, closure)
		if err != nil {
			return err
		}
		paths = collectPaths(files)

		if err := e.files.DeleteByFolderIDs(ctx, tx, ownerID, closure); err != nil {
			return err
		}
		return e.folders.DeleteByIDs(ctx, tx, closure)
	})
	if err != nil {
		return nil, err
	}

	e.reclaimer.Enqueue(paths)
	return paths, nil
}

// folderClosure walks parent→child edges breadth-first and returns every
// folder id reachable from root, root included. The seen set guards the
// walk against a corrupted parent cycle.
func (e deletionEngine) folderClosure(ctx context.Context, tx *gorm.DB, ownerID uint, root uint) ([]uint, error) {
	closure := []uint{root}
	seen := map[uint]bool{root: true}
	frontier := []uint{root}

	for len(frontier) > 0 {
		children, err := e.folders.ListChildIDs(ctx, tx, ownerID, frontier)
		if err != nil {
			return nil, err
		}

		frontier = frontier[:0]
		for _, id := range children {
			if seen[id] {
				continue
			}
			seen[id] = true
			closure = append(closure, id)
			frontier = append(frontier, id)
		}
	}

	return closure, nil
}

func collectPaths(files []models.File) []string {
	if len(files) == 0 {
		return nil
	}
	paths := make([]string, 0, len(files))
	for i := range files {
		paths = append(paths, files[i].PathOnDisk)
	}
	return paths
}
