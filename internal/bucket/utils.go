package bucket

import (
	"fmt"
	"path"
	"strings"
)

func (b *Bucket) constructFullPath(key string) string {
	return strings.TrimPrefix(path.Clean(path.Join(b.BaseFolder, key)), "/")
}

func (b *Bucket) objectURL(filePath string) string {
	scheme := "https"
	if b.Insecure {
		scheme = "http"
	}
	return fmt.Sprintf("%s://%s/%s/%s", scheme, b.S3Endpoint, b.S3BucketName, filePath)
}
