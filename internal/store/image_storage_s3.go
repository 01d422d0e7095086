package store

import (
	"context"
	"fmt"
	"io"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/cpwcao/recipe-app-api/internal/config"
	"github.com/cpwcao/recipe-app-api/internal/logger"
)

// s3ImageStorage stores uploaded images in an S3-compatible bucket
// (AWS S3, MinIO). Storage paths become object keys as-is.
type s3ImageStorage struct {
	logger *logger.Logger
	client *s3.Client
	bucket string
}

// NewS3ImageStorage constructs an [ImageStorage] over an S3-compatible
// bucket. Static credentials and a custom endpoint from cfg take precedence
// over the ambient AWS environment, which keeps MinIO-style deployments
// configurable without AWS_* variables.
func NewS3ImageStorage(ctx context.Context, cfg config.S3, log *logger.Logger) (ImageStorage, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		log.Err(err).Str("func", "NewS3ImageStorage").Msg("failed to load S3 configuration")
		return nil, fmt.Errorf("loading S3 configuration: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = &cfg.Endpoint
		}
		// MinIO serves buckets on paths, not subdomains
		o.UsePathStyle = cfg.Endpoint != ""
	})

	log.Debug().Str("bucket", cfg.Bucket).Msg("creating S3 image storage")

	return &s3ImageStorage{
		logger: log,
		client: client,
		bucket: cfg.Bucket,
	}, nil
}

// Save uploads data under the given object key.
func (s *s3ImageStorage) Save(ctx context.Context, path string, contentType string, data io.Reader) error {
	log := logger.FromContext(ctx)

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      &s.bucket,
		Key:         &path,
		Body:        data,
		ContentType: &contentType,
	})
	if err != nil {
		log.Err(err).Str("func", "*s3ImageStorage.Save").Str("key", path).Msg("failed to upload image object")
		return fmt.Errorf("uploading image object: %w", err)
	}

	return nil
}

// Delete removes the object under the given key. S3 treats deleting a
// missing object as success, matching the filesystem backend.
func (s *s3ImageStorage) Delete(ctx context.Context, path string) error {
	log := logger.FromContext(ctx)

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: &s.bucket,
		Key:    &path,
	})
	if err != nil {
		log.Err(err).Str("func", "*s3ImageStorage.Delete").Str("key", path).Msg("failed to delete image object")
		return fmt.Errorf("deleting image object: %w", err)
	}

	return nil
}
