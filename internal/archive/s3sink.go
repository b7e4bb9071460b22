// Package archive provides an optional object-storage overflow sink for
// cache entries too large (or too valuable) to rely on local disk alone,
// adapted from the teacher's AWS S3 CloudStorage component.
package archive

import (
	"bytes"
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"
)

// Sink archives and retrieves cache payloads by content-addressed key.
type Sink interface {
	Archive(ctx context.Context, key string, payload []byte) error
	Retrieve(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

// S3Sink implements Sink using AWS S3, keyed by cache prefix + content hash
// rather than per-request paths: archived objects are immutable and
// content-addressed, so no encryption-at-upload step is needed the way the
// teacher's per-request file uploads required it.
type S3Sink struct {
	bucket     string
	prefix     string
	logger     *zap.Logger
	client     *s3.Client
	uploader   *manager.Uploader
	downloader *manager.Downloader
}

// NewS3Sink builds an S3Sink targeting bucket, namespacing every object
// under prefix (e.g. the logical cache type).
func NewS3Sink(ctx context.Context, region, bucket, prefix string, logger *zap.Logger) (*S3Sink, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	sinkLogger := logger.Named("archive.s3")

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS configuration: %w", err)
	}

	client := s3.NewFromConfig(awsCfg)
	sinkLogger.Info("initialized S3 archive sink", zap.String("bucket", bucket), zap.String("prefix", prefix))

	return &S3Sink{
		bucket:     bucket,
		prefix:     prefix,
		logger:     sinkLogger,
		client:     client,
		uploader:   manager.NewUploader(client),
		downloader: manager.NewDownloader(client),
	}, nil
}

func (s *S3Sink) objectKey(key string) string {
	if s.prefix == "" {
		return key
	}
	return s.prefix + "/" + key
}

// Archive uploads payload under key, overwriting any existing object of the
// same key (content-addressed keys make this idempotent).
func (s *S3Sink) Archive(ctx context.Context, key string, payload []byte) error {
	objectKey := s.objectKey(key)
	_, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
		Body:   bytes.NewReader(payload),
	})
	if err != nil {
		s.logger.Error("archive upload failed", zap.String("key", objectKey), zap.Error(err))
		return fmt.Errorf("archiving %s to s3: %w", objectKey, err)
	}
	s.logger.Debug("archived cache entry", zap.String("key", objectKey), zap.Int("bytes", len(payload)))
	return nil
}

// Retrieve downloads the payload stored under key. A NoSuchKey error is
// reported back to the caller, who should treat it as a cache miss.
func (s *S3Sink) Retrieve(ctx context.Context, key string) ([]byte, error) {
	objectKey := s.objectKey(key)
	buf := manager.NewWriteAtBuffer(nil)
	_, err := s.downloader.Download(ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		return nil, fmt.Errorf("retrieving %s from s3: %w", objectKey, err)
	}
	return buf.Bytes(), nil
}

// Delete removes the archived object for key, if present.
func (s *S3Sink) Delete(ctx context.Context, key string) error {
	objectKey := s.objectKey(key)
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	})
	if err != nil {
		s.logger.Error("archive delete failed", zap.String("key", objectKey), zap.Error(err))
		return fmt.Errorf("deleting %s from s3: %w", objectKey, err)
	}
	return nil
}
