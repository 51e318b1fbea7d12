package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"

	"math-academy/internal/config"
)

var ErrStorageUnavailable = errors.New("object storage is not available")

// Service stores notice attachments and returns the public URL to embed in
// the notice.
type Service interface {
	UploadAttachment(ctx context.Context, fileName string, fileSize int64, contentType string, reader io.Reader) (string, error)
}

type service struct {
	minioClient *minio.Client
	cfg         *config.Config
}

func NewService(minioClient *minio.Client, cfg *config.Config) Service {
	return &service{
		minioClient: minioClient,
		cfg:         cfg,
	}
}

func (s *service) UploadAttachment(ctx context.Context, fileName string, fileSize int64, contentType string, reader io.Reader) (string, error) {
	if s.minioClient == nil {
		return "", ErrStorageUnavailable
	}

	ext := strings.ToLower(path.Ext(fileName))
	objectPath := fmt.Sprintf("notices/%s/%s%s", time.Now().Format("2006/01"), uuid.New(), ext)

	_, err := s.minioClient.PutObject(ctx, s.cfg.MinIOBucket, objectPath, reader, fileSize, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload attachment: %w", err)
	}

	return s.publicURL(objectPath), nil
}

func (s *service) publicURL(objectPath string) string {
	scheme := "http"
	if s.cfg.MinIOPublicUseSSL {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, s.cfg.MinIOPublicEndpoint, s.cfg.MinIOBucket, objectPath)
}
