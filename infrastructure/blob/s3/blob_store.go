package s3

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"trustnet-backend/application/ports"
)

// BlobStore implements ports.BlobStore over an S3 bucket. Uploads go straight
// from the client to the bucket via presigned PUT URLs; the backend only
// issues URLs and deletes orphaned objects during cascades.
type BlobStore struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
	logger  *zap.Logger
}

// NewBlobStore creates a new BlobStore
func NewBlobStore(client *s3.Client, bucket string, logger *zap.Logger) ports.BlobStore {
	return &BlobStore{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  bucket,
		logger:  logger,
	}
}

// DeleteObject removes an object from the bucket. S3 delete is idempotent;
// a missing key is not an error.
func (b *BlobStore) DeleteObject(ctx context.Context, key string) error {
	if key == "" {
		return nil
	}

	if _, err := b.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(b.bucket),
		Key:    aws.String(key),
	}); err != nil {
		b.logger.Error("Failed to delete object",
			zap.Error(err),
			zap.String("bucket", b.bucket),
			zap.String("key", key),
		)
		return fmt.Errorf("failed to delete object %s: %w", key, err)
	}

	return nil
}

// PresignUpload issues a presigned PUT URL for a direct client upload
func (b *BlobStore) PresignUpload(ctx context.Context, key, contentType string, ttl time.Duration) (string, error) {
	req, err := b.presign.PresignPutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(b.bucket),
		Key:         aws.String(key),
		ContentType: aws.String(contentType),
	}, s3.WithPresignExpires(ttl))
	if err != nil {
		return "", fmt.Errorf("failed to presign upload for %s: %w", key, err)
	}

	return req.URL, nil
}
