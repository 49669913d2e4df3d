package bucket

import (
	"context"

	"github.com/apexhome/products-manager/internal/entity"
	"github.com/minio/minio-go/v7"
	"golang.org/x/exp/slices"
)

// List returns the objects under folder, newest first.
func (b *Bucket) List(ctx context.Context, folder string) ([]entity.StoredObject, error) {
	objectCh := b.Client.ListObjects(ctx, b.S3BucketName, minio.ListObjectsOptions{
		Prefix:    b.constructFullPath(folder) + "/",
		Recursive: true,
	})

	objects := []entity.StoredObject{}
	for o := range objectCh {
		if o.Err != nil {
			return nil, o.Err
		}
		objects = append(objects, entity.StoredObject{
			Key:          o.Key,
			URL:          b.objectURL(o.Key),
			Size:         o.Size,
			LastModified: o.LastModified,
		})
	}
	slices.SortFunc(objects, func(a, b entity.StoredObject) int {
		return b.LastModified.Compare(a.LastModified)
	})
	return objects, nil
}
