package services

import (
	"context"
	"strings"

	"github.com/TonyDastan/workwave/internal/core/ports"
	"github.com/TonyDastan/workwave/internal/infrastructure/logger"
)

var allowedUploadTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/gif":       true,
	"image/webp":      true,
	"application/pdf": true,
}

type uploadService struct {
	store   ports.BlobStore
	logger  *logger.Logger
	maxSize int64
}

type UploadServiceConfig struct {
	Store   ports.BlobStore
	Logger  *logger.Logger
	MaxSize int64
}

func NewUploadService(cfg UploadServiceConfig) ports.UploadService {
	return &uploadService{
		store:   cfg.Store,
		logger:  cfg.Logger,
		maxSize: cfg.MaxSize,
	}
}

func (s *uploadService) Upload(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", validationError("file is required")
	}
	if s.maxSize > 0 && int64(len(data)) > s.maxSize {
		return "", validationError("file exceeds maximum size of %d bytes", s.maxSize)
	}
	mediaType := contentType
	if i := strings.Index(mediaType, ";"); i >= 0 {
		mediaType = strings.TrimSpace(mediaType[:i])
	}
	if !allowedUploadTypes[mediaType] {
		return "", validationError("unsupported file type %q", mediaType)
	}

	url, err := s.store.Upload(ctx, filename, data)
	if err != nil {
		return "", err
	}

	s.logger.Infow("file_uploaded", "filename", filename, "size", len(data))
	return url, nil
}

func (s *uploadService) Remove(ctx context.Context, fileID string) error {
	if strings.TrimSpace(fileID) == "" {
		return validationError("file id is required")
	}
	if err := s.store.Delete(ctx, fileID); err != nil {
		return err
	}

	s.logger.Infow("file_removed", "file_id", fileID)
	return nil
}
