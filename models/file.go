package models

import "time"

// File references physical content at PathOnDisk. PathOnDisk is assigned
// once at upload and never reused or renamed in place; renames only touch
// Name. IsDeleted and DeletedAt move together: both set, or both clear.
type File struct {
	ID             uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name           string     `gorm:"type:varchar(255);not null" json:"name"`
	// varchar(512) keeps the unique index under InnoDB's 3072-byte key
	// limit with utf8mb4 (4 bytes per char).
	PathOnDisk     string     `gorm:"type:varchar(512);uniqueIndex;not null" json:"path_on_disk"`
	FileSize       int64      `gorm:"not null" json:"file_size"`
	ParentFolderID *uint      `gorm:"index" json:"parent_folder_id"`
	OwnerID        uint       `gorm:"not null;index" json:"owner_id"`
	CreatedAt      time.Time  `json:"created_at"`
	IsDeleted      bool       `gorm:"default:false;index" json:"is_deleted"`
	DeletedAt      *time.Time `gorm:"index" json:"deleted_at"`
}
