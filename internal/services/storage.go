package services

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"alfredoptarigan/ats-analyzer/internal/models"
)

var ErrFileTooLarge = errors.New("file exceeds maximum upload size")

// StorageService holds uploads for the lifetime of one request.
type StorageService interface {
	EnsureUploadDir() error
	SaveFile(file *multipart.FileHeader) (models.BatchDocument, error)
	DeleteFile(path string) error
}

type storageService struct {
	uploadPath  string
	maxFileSize int64
}

func NewStorageService(uploadPath string, maxFileSize int64) StorageService {
	return &storageService{
		uploadPath:  uploadPath,
		maxFileSize: maxFileSize,
	}
}

func (s *storageService) EnsureUploadDir() error {
	if err := os.MkdirAll(s.uploadPath, 0755); err != nil {
		return fmt.Errorf("failed to create upload directory: %w", err)
	}

	return nil
}

// SaveFile copies the upload under a unique name. The returned document keeps the
// client's file name for reporting and points at the stored copy.
func (s *storageService) SaveFile(file *multipart.FileHeader) (models.BatchDocument, error) {
	if s.maxFileSize > 0 && file.Size > s.maxFileSize {
		return models.BatchDocument{}, fmt.Errorf("%s: %w (%d bytes)", file.Filename, ErrFileTooLarge, s.maxFileSize)
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	filePath := filepath.Join(s.uploadPath, uuid.NewString()+ext)

	src, err := file.Open()
	if err != nil {
		return models.BatchDocument{}, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(filePath)
	if err != nil {
		return models.BatchDocument{}, fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(filePath)
		return models.BatchDocument{}, fmt.Errorf("failed to save file: %w", err)
	}

	return models.BatchDocument{
		FileName: filepath.Base(file.Filename),
		Path:     filePath,
	}, nil
}

func (s *storageService) DeleteFile(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}
