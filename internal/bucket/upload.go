package bucket

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/minio/minio-go/v7"
)

// Upload stores r under key inside the base folder and returns the object URL.
// Backups and label sheets are private, unlike the public media of the storefront.
func (b *Bucket) Upload(ctx context.Context, key string, r io.Reader, size int64, contentType string) (string, error) {
	fp := b.constructFullPath(key)

	_, err := b.Client.PutObject(ctx, b.S3BucketName, fp, r, size,
		minio.PutObjectOptions{
			ContentType:  contentType,
			CacheControl: "no-store",
		},
	)
	if err != nil {
		slog.Default().ErrorContext(ctx, "can't upload object",
			slog.String("err", err.Error()),
			slog.String("key", fp),
		)
		return "", fmt.Errorf("error putting object: %w", err)
	}
	return b.objectURL(fp), nil
}
