package storage

import (
	"alcyxob/exercise-tracker/internal/config"
	"context"
	"fmt"
	"time"
)

// Default expiry duration for presigned URLs
const DefaultPresignedURLExpiry = 15 * time.Minute

// FileStorage defines the object storage operations used for log exports.
type FileStorage interface {
	// PutObject stores body under objectKey.
	PutObject(ctx context.Context, objectKey string, contentType string, body []byte) error

	// GeneratePresignedDownloadURL creates a temporary URL that allows GET requests
	// for downloading an object directly from the storage provider.
	GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error)
}

// New builds the FileStorage selected by cfg.Provider.
func New(cfg config.StorageConfig) (FileStorage, error) {
	switch cfg.Provider {
	case "", "s3":
		return NewS3Storage(cfg)
	case "minio":
		return NewMinIOStorage(cfg)
	default:
		return nil, fmt.Errorf("unknown storage provider %q", cfg.Provider)
	}
}
