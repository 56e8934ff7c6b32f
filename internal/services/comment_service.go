// internal/services/comment_service.go
package services

import (
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/hyeonwoo-dev/furniture-shop/internal/models"
)

// CommentService manages product reviews and their file attachments.
// Attachment bytes live in storage; CommentFile rows carry the metadata
// needed to find and verify them.
type CommentService struct {
	db      *gorm.DB
	storage *StorageService
}

func NewCommentService(db *gorm.DB, storage *StorageService) *CommentService {
	return &CommentService{db: db, storage: storage}
}

type CreateCommentRequest struct {
	Content      string     `json:"content" validate:"required"`
	OrderCheckID *uuid.UUID `json:"order_check_id"`
}

type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required"`
}

// Create saves a review against an option, persisting any attachments
// first so a storage failure aborts before rows are written.
func (s *CommentService) Create(userID, optionID uuid.UUID, req *CreateCommentRequest, files []*multipart.FileHeader) (*models.Comment, error) {
	var option models.Option
	if err := s.db.First(&option, "id = ?", optionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("option %s: %w", optionID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load option: %w", err)
	}

	uploadOpts := s.storage.GetDefaultUploadOptions("comments")
	stored := make([]*StoredFile, 0, len(files))
	for _, header := range files {
		sf, err := s.storage.SaveFile(header, uploadOpts)
		if err != nil {
			s.cleanupStored(stored)
			return nil, fmt.Errorf("failed to store attachment: %w", err)
		}
		stored = append(stored, sf)
	}

	comment := &models.Comment{
		OptionID:     optionID,
		UserID:       userID,
		OrderCheckID: req.OrderCheckID,
		Content:      req.Content,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(comment).Error; err != nil {
			return fmt.Errorf("failed to create comment: %w", err)
		}
		for _, sf := range stored {
			file := models.CommentFile{
				CommentID: comment.ID,
				UUID:      sf.UUID,
				FileName:  sf.OriginalName,
				FileType:  sf.Ext,
				FileSize:  sf.Size,
				FilePath:  sf.Path,
				Checksum:  sf.Checksum,
			}
			if err := tx.Create(&file).Error; err != nil {
				return fmt.Errorf("failed to create comment file: %w", err)
			}
			comment.Files = append(comment.Files, file)
		}
		return nil
	})
	if err != nil {
		s.cleanupStored(stored)
		return nil, err
	}
	return comment, nil
}

func (s *CommentService) FindByID(id uuid.UUID) (*models.Comment, error) {
	var comment models.Comment
	err := s.db.Preload("User").Preload("Files").First(&comment, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("comment %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to load comment: %w", err)
	}
	return &comment, nil
}

// FindByProductID gathers reviews across all of a product's options,
// newest first. A product without options yields nil; options without
// reviews yield an empty slice. Templates use the distinction to show
// "no reviews yet" only when reviews are possible.
func (s *CommentService) FindByProductID(productID uuid.UUID) ([]models.Comment, error) {
	var optionIDs []uuid.UUID
	err := s.db.Model(&models.Option{}).
		Where("product_id = ?", productID).
		Pluck("id", &optionIDs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list options: %w", err)
	}
	if len(optionIDs) == 0 {
		return nil, nil
	}

	comments := []models.Comment{}
	err = s.db.Preload("User").Preload("Files").Preload("Option").
		Where("option_id IN ?", optionIDs).
		Order("created_at desc").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

func (s *CommentService) FindByUserID(userID uuid.UUID) ([]models.Comment, error) {
	comments := []models.Comment{}
	err := s.db.Preload("Files").Preload("Option").Preload("Option.Product").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&comments).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}

// Update rewrites the review text. Only the author may edit; admins can
// delete but not rewrite someone else's words.
func (s *CommentService) Update(id, userID uuid.UUID, req *UpdateCommentRequest) (*models.Comment, error) {
	comment, err := s.FindByID(id)
	if err != nil {
		return nil, err
	}
	if comment.UserID != userID {
		return nil, ErrForbidden
	}

	if err := s.db.Model(comment).Update("content", req.Content).Error; err != nil {
		return nil, fmt.Errorf("failed to update comment: %w", err)
	}
	comment.Content = req.Content
	return comment, nil
}

// Delete removes a review, its file rows and the stored bytes. Storage
// cleanup failures are logged, not fatal; the rows are already gone.
func (s *CommentService) Delete(id, userID uuid.UUID, isAdmin bool) error {
	comment, err := s.FindByID(id)
	if err != nil {
		return err
	}
	if !isAdmin && comment.UserID != userID {
		return ErrForbidden
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("comment_id = ?", id).Delete(&models.CommentFile{}).Error; err != nil {
			return fmt.Errorf("failed to delete comment files: %w", err)
		}
		if err := tx.Delete(&models.Comment{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete comment: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, file := range comment.Files {
		if err := s.storage.DeleteFile(file.FilePath); err != nil {
			logrus.WithError(err).WithField("path", file.FilePath).Warn("Failed to remove comment attachment")
		}
	}
	return nil
}

func (s *CommentService) cleanupStored(stored []*StoredFile) {
	for _, sf := range stored {
		if err := s.storage.DeleteFile(sf.Path); err != nil {
			logrus.WithError(err).WithField("path", sf.Path).Warn("Failed to clean up stored attachment")
		}
	}
}
