// internal/models/comment.go
package models

import (
	"github.com/google/uuid"
)

// Comment is a per-option product review, optionally linked to the
// order check the reviewer is writing about.
type Comment struct {
	BaseModel
	OptionID     uuid.UUID  `json:"option_id" gorm:"type:uuid;not null;index"`
	UserID       uuid.UUID  `json:"user_id" gorm:"type:uuid;not null;index"`
	OrderCheckID *uuid.UUID `json:"order_check_id" gorm:"type:uuid;index"`
	Content      string     `json:"content" gorm:"type:text;not null"`

	User   User          `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Option Option        `json:"option,omitempty" gorm:"foreignKey:OptionID"`
	Files  []CommentFile `json:"files,omitempty" gorm:"foreignKey:CommentID"`
}

// CommentFile records one attachment stored on disk (or S3). The stored
// filename is "<uuid><original-name>"; the row keeps enough metadata to
// locate and verify the file.
type CommentFile struct {
	BaseModel
	CommentID uuid.UUID `json:"comment_id" gorm:"type:uuid;not null;index"`
	UUID      string    `json:"uuid" gorm:"size:36;not null"`
	FileName  string    `json:"file_name" gorm:"size:255;not null"`
	FileType  string    `json:"file_type" gorm:"size:20"`
	FileSize  int64     `json:"file_size"`
	FilePath  string    `json:"file_path" gorm:"size:512;not null"`
	Checksum  string    `json:"checksum" gorm:"size:64"`
}
