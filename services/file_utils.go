package services

import (
	"path/filepath"
	"strings"
)

func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	replacer := strings.NewReplacer("..", "_", "/", "_", "\\", "_")
	return replacer.Replace(name)
}

// nameStem returns the sanitized requested name without its extension.
func nameStem(name string) string {
	sanitized := sanitizeFilename(name)
	return strings.TrimSuffix(sanitized, filepath.Ext(sanitized))
}

// renameKeepExtension combines the stem of the requested name with the
// extension of the stored name. The stored extension always wins, so a
// rename can never make the name disagree with the content.
func renameKeepExtension(storedName, requestedName string) string {
	return nameStem(requestedName) + filepath.Ext(storedName)
}

func getMimeType(ext string) string {
	mimeTypes := map[string]string{
		".jpg":  "image/jpeg",
		".jpeg": "image/jpeg",
		".png":  "image/png",
		".gif":  "image/gif",
		".bmp":  "image/bmp",
		".webp": "image/webp",
		".svg":  "image/svg+xml",
		".pdf":  "application/pdf",
		".txt":  "text/plain",
		".md":   "text/markdown",
		".csv":  "text/csv",
		".json": "application/json",
		".mp4":  "video/mp4",
		".mp3":  "audio/mpeg",
		".zip":  "application/zip",
		".doc":  "application/msword",
	}
	if mt, ok := mimeTypes[strings.ToLower(ext)]; ok {
		return mt
	}
	return "application/octet-stream"
}

// sentinel translation: the API speaks folder id 0 for "root", rows store NULL.

func sentinelToParent(folderID uint) *uint {
	if folderID == 0 {
		return nil
	}
	id := folderID
	return &id
}

func parentToSentinel(parentID *uint) uint {
	if parentID == nil {
		return 0
	}
	return *parentID
}
