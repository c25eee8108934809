package models

import "time"

// Folder is a node in a per-owner tree. ParentFolderID is NULL for
// top-level folders; the API-visible root sentinel 0 never reaches the row.
type Folder struct {
	ID             uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name           string    `gorm:"type:varchar(255);not null" json:"name"`
	ParentFolderID *uint     `gorm:"index" json:"parent_folder_id"`
	OwnerID        uint      `gorm:"not null;index" json:"owner_id"`
	CreatedAt      time.Time `json:"created_at"`
}
