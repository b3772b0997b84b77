package storage

import (
	"context"
	"time"
)

// ServiceConfig holds the configuration required to connect to the photo store.
type ServiceConfig struct {
	S3BucketName      string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
}

// PhotoStore is the public interface for pet photo storage.
type PhotoStore interface {
	// PresignUpload generates a pre-signed URL for uploading a photo.
	PresignUpload(
		ctx context.Context,
		key string,
		mimeType string,
		fileSize int64,
		duration time.Duration,
	) (string, error)

	// PresignDownload generates a pre-signed URL for viewing a photo.
	PresignDownload(ctx context.Context, key string, duration time.Duration) (string, error)

	// Delete removes the photo stored under the given key.
	Delete(ctx context.Context, key string) error

	// GetObjectMetadata retrieves the stored object's metadata.
	GetObjectMetadata(ctx context.Context, key string) (map[string]string, error)
}

// NewPhotoStore initializes and returns a concrete implementation based on
// the provided configuration. Only S3-compatible backends are supported.
func NewPhotoStore(cfg ServiceConfig) (PhotoStore, error) {
	return newS3Client(cfg)
}
