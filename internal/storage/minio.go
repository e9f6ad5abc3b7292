package storage

import (
	"alcyxob/exercise-tracker/internal/config"
	"alcyxob/exercise-tracker/internal/logger"
	"bytes"
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// minioStorage implements FileStorage with the MinIO client.
type minioStorage struct {
	client *minio.Client
	bucket string
}

// NewMinIOStorage creates a MinIO client and makes sure the bucket exists.
// Endpoint is host[:port] without scheme; UseSSL selects https.
func NewMinIOStorage(cfg config.StorageConfig) (FileStorage, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint missing")
	}
	mc, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
		Region: cfg.Region,
	})
	if err != nil {
		return nil, fmt.Errorf("minio new: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := mc.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{Region: cfg.Region}); err != nil {
		exists, xerr := mc.BucketExists(ctx, cfg.BucketName)
		if xerr != nil || !exists {
			return nil, fmt.Errorf("minio bucket ensure: %w", err)
		}
	}

	logger.Infof("MinIO storage initialized for endpoint: %s, bucket: %s", cfg.Endpoint, cfg.BucketName)
	return &minioStorage{client: mc, bucket: cfg.BucketName}, nil
}

func (s *minioStorage) PutObject(ctx context.Context, objectKey string, contentType string, body []byte) error {
	_, err := s.client.PutObject(ctx, s.bucket, objectKey, bytes.NewReader(body), int64(len(body)), minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		logger.Errorf("failed to put object '%s' into bucket '%s': %v", objectKey, s.bucket, err)
	}
	return err
}

func (s *minioStorage) GeneratePresignedDownloadURL(ctx context.Context, objectKey string, expires time.Duration) (string, error) {
	if expires <= 0 {
		expires = DefaultPresignedURLExpiry
	}
	presigned, err := s.client.PresignedGetObject(ctx, s.bucket, objectKey, expires, url.Values{})
	if err != nil {
		return "", err
	}
	return presigned.String(), nil
}
