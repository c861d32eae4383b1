/*
Package storage provides presigned-URL access to S3-compatible object storage.

Avatars are uploaded by clients directly against a presigned PUT URL; the
server never proxies file bytes.
*/
package storage

import (
	"context"
	"time"
)

// ServiceConfig holds the settings required to reach the bucket.
type ServiceConfig struct {
	S3BucketName      string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
}

// Service is the public interface of the object storage layer.
type Service interface {
	// PresignUpload generates a time-limited URL for uploading an object.
	PresignUpload(ctx context.Context, key string, mimeType string, fileSize int64, duration time.Duration) (string, error)

	// PresignDownload generates a time-limited URL for fetching an object.
	PresignDownload(ctx context.Context, key string, duration time.Duration) (string, error)

	// Delete removes the object with the given key.
	Delete(ctx context.Context, key string) error
}

// NewService builds the S3-backed implementation.
func NewService(cfg ServiceConfig) (Service, error) {
	return newS3Client(cfg)
}
