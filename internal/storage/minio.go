// Package storage is the image-storage collaborator: upload a file, get back
// a reference. Invoked by the surrounding form layer; failures are surfaced
// there and never block saving the base record.
package storage

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/tavolo/menu-catalog-service/config"
)

type Uploader interface {
	Upload(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error)
	Remove(ctx context.Context, name string) error
}

type MinioStorage struct {
	client    *minio.Client
	bucket    string
	publicURL string
	logger    *zap.Logger
}

func NewMinioStorage(ctx context.Context, cfg *config.MinioConfig, logger *zap.Logger) (*MinioStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
		logger.Info("created storage bucket", zap.String("bucket", cfg.Bucket))
	}

	return &MinioStorage{
		client:    client,
		bucket:    cfg.Bucket,
		publicURL: cfg.PublicURL,
		logger:    logger,
	}, nil
}

func (s *MinioStorage) Upload(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error) {
	_, err := s.client.PutObject(ctx, s.bucket, name, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload object: %w", err)
	}
	return fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, name), nil
}

// Remove accepts either a bare object name or a public URL produced by
// Upload.
func (s *MinioStorage) Remove(ctx context.Context, name string) error {
	name = strings.TrimPrefix(name, fmt.Sprintf("%s/%s/", s.publicURL, s.bucket))
	if err := s.client.RemoveObject(ctx, s.bucket, name, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object: %w", err)
	}
	return nil
}
