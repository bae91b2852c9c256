package file

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/traindesk/tcms-backend-go/internal/pkg/storage"
)

var (
	documentExtensions = map[string]bool{".pdf": true, ".jpg": true, ".jpeg": true, ".png": true}
	photoExtensions    = map[string]bool{".jpg": true, ".jpeg": true, ".png": true}
)

// Service handles file uploads. Files are stored under a per-purpose prefix
// with a generated name; callers persist the returned path.
type Service struct {
	storage storage.FileStorage
}

func NewService(fileStorage storage.FileStorage) *Service {
	return &Service{storage: fileStorage}
}

func (s *Service) upload(ctx context.Context, file io.Reader, prefix, filename, contentType string, allowed map[string]bool) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if !allowed[ext] {
		return "", fmt.Errorf("file type %s is not allowed", ext)
	}

	path := fmt.Sprintf("%s/%s%s", prefix, uuid.New().String(), ext)
	stored, err := s.storage.Upload(ctx, file, path, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}
	return stored, nil
}

// UploadLeaveDocument stores a supporting document for a leave application.
func (s *Service) UploadLeaveDocument(ctx context.Context, file io.Reader, filename, contentType string) (string, error) {
	return s.upload(ctx, file, "leave-documents", filename, contentType, documentExtensions)
}

// UploadStudentPhoto stores a student profile photo.
func (s *Service) UploadStudentPhoto(ctx context.Context, file io.Reader, filename, contentType string) (string, error) {
	return s.upload(ctx, file, "student-photos", filename, contentType, photoExtensions)
}

// Download streams a stored file back.
func (s *Service) Download(ctx context.Context, path string) (io.ReadCloser, error) {
	return s.storage.Download(ctx, path)
}

// URL returns an access URL for a stored file.
func (s *Service) URL(ctx context.Context, path string) (string, error) {
	return s.storage.GetURL(ctx, path, 15*time.Minute)
}
