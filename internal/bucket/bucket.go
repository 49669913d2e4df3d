// Package bucket stores registry backups and label sheets in an S3 compatible object store.
package bucket

import (
	"fmt"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

type Config struct {
	S3AccessKey       string `mapstructure:"s3_access_key"`
	S3SecretAccessKey string `mapstructure:"s3_secret_access_key"`
	S3Endpoint        string `mapstructure:"s3_endpoint"`
	S3BucketName      string `mapstructure:"s3_bucket_name"`
	S3BucketLocation  string `mapstructure:"s3_bucket_location"`
	BaseFolder        string `mapstructure:"base_folder"`
	// Insecure disables TLS, for local minio only.
	Insecure bool `mapstructure:"insecure"`
}

// Enabled reports whether an object store is configured.
func (c *Config) Enabled() bool {
	return c.S3Endpoint != "" && c.S3BucketName != ""
}

type Bucket struct {
	*minio.Client
	*Config
}

func New(c *Config) (*Bucket, error) {
	cli, err := minio.New(c.S3Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(c.S3AccessKey, c.S3SecretAccessKey, ""),
		Secure: !c.Insecure,
		Region: c.S3BucketLocation,
	})
	if err != nil {
		return nil, fmt.Errorf("can't create s3 client: %w", err)
	}
	return &Bucket{
		Client: cli,
		Config: c,
	}, nil
}
