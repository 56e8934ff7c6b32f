// internal/services/storage_service.go
package services

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/google/uuid"

	"github.com/hyeonwoo-dev/furniture-shop/internal/config"
	"github.com/hyeonwoo-dev/furniture-shop/internal/utils"
)

// StorageService persists uploaded attachments. Local disk is the
// default backend; S3 is used when AWS credentials are configured.
type StorageService struct {
	s3Client *s3.S3
	config   *config.Config
}

// StoredFile describes one persisted attachment. Path is a local file
// path or an S3 key depending on the active backend.
type StoredFile struct {
	UUID         string `json:"uuid"`
	OriginalName string `json:"original_name"`
	Ext          string `json:"ext"`
	Size         int64  `json:"size"`
	Path         string `json:"path"`
	Checksum     string `json:"checksum"`
}

type UploadOptions struct {
	Folder       string
	MaxSize      int64 // in bytes
	AllowedTypes []string
}

func NewStorageService(cfg *config.Config) (*StorageService, error) {
	if cfg.AWS.AccessKeyID == "" {
		// Local disk only
		return &StorageService{config: cfg}, nil
	}

	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(cfg.AWS.Region),
		Credentials: credentials.NewStaticCredentials(
			cfg.AWS.AccessKeyID,
			cfg.AWS.SecretAccessKey,
			"",
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}

	return &StorageService{
		s3Client: s3.New(sess),
		config:   cfg,
	}, nil
}

// SaveFile stores one upload under "<uuid><original-filename>" and
// returns the metadata recorded on the attachment row.
func (s *StorageService) SaveFile(header *multipart.FileHeader, options UploadOptions) (*StoredFile, error) {
	maxSize := options.MaxSize
	if maxSize == 0 {
		maxSize = s.config.Upload.MaxFileSize
	}
	if maxSize > 0 && header.Size > maxSize {
		return nil, fmt.Errorf("file size %d bytes exceeds maximum allowed size %d bytes", header.Size, maxSize)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if len(options.AllowedTypes) > 0 {
		allowed := false
		for _, allowedType := range options.AllowedTypes {
			if ext == allowedType {
				allowed = true
				break
			}
		}
		if !allowed {
			return nil, fmt.Errorf("file type %s is not allowed", ext)
		}
	}

	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	fileBytes, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	id := uuid.New().String()
	filename := id + filepath.Base(header.Filename)

	stored := &StoredFile{
		UUID:         id,
		OriginalName: filepath.Base(header.Filename),
		Ext:          ext,
		Size:         int64(len(fileBytes)),
		Checksum:     utils.HashBytes(fileBytes),
	}

	if s.s3Client != nil {
		key := filename
		if options.Folder != "" {
			key = options.Folder + "/" + filename
		}
		if err := s.uploadToS3(fileBytes, key, header.Header.Get("Content-Type")); err != nil {
			return nil, err
		}
		stored.Path = key
		return stored, nil
	}

	path, err := s.writeToLocal(fileBytes, filename, options.Folder)
	if err != nil {
		return nil, err
	}
	stored.Path = path
	return stored, nil
}

func (s *StorageService) uploadToS3(fileBytes []byte, key, contentType string) error {
	params := &s3.PutObjectInput{
		Bucket:        aws.String(s.config.AWS.S3Bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(fileBytes),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(fileBytes))),
	}

	if _, err := s.s3Client.PutObject(params); err != nil {
		return fmt.Errorf("failed to upload to S3: %w", err)
	}
	return nil
}

func (s *StorageService) writeToLocal(fileBytes []byte, filename, folder string) (string, error) {
	dir := s.config.Upload.BasePath
	if folder != "" {
		dir = filepath.Join(dir, folder)
	}

	// Create the upload directory if it does not exist yet
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, fileBytes, 0o644); err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}
	return path, nil
}

func (s *StorageService) DeleteFile(path string) error {
	if s.s3Client != nil {
		_, err := s.s3Client.DeleteObject(&s3.DeleteObjectInput{
			Bucket: aws.String(s.config.AWS.S3Bucket),
			Key:    aws.String(path),
		})
		if err != nil {
			return fmt.Errorf("failed to delete file from S3: %w", err)
		}
		return nil
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

func (s *StorageService) GetDefaultUploadOptions(category string) UploadOptions {
	switch category {
	case "comments":
		return UploadOptions{
			Folder:       "comments",
			MaxSize:      10 * 1024 * 1024, // 10MB
			AllowedTypes: []string{".jpg", ".jpeg", ".png", ".gif"},
		}
	case "products":
		return UploadOptions{
			Folder:       "products",
			MaxSize:      10 * 1024 * 1024, // 10MB
			AllowedTypes: []string{".jpg", ".jpeg", ".png", ".gif"},
		}
	default:
		return UploadOptions{
			Folder:       "general",
			MaxSize:      5 * 1024 * 1024, // 5MB
			AllowedTypes: []string{".jpg", ".jpeg", ".png", ".pdf"},
		}
	}
}
