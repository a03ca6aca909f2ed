package aws

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	sdkaws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"

	"github.com/kailas-cloud/photoindex/internal/domain"
	"github.com/kailas-cloud/photoindex/internal/domain/object"
	"github.com/kailas-cloud/photoindex/internal/metrics"
)

type s3API interface {
	HeadObject(ctx context.Context, in *s3.HeadObjectInput,
		optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput,
		optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// S3Objects reads object metadata and content from S3.
type S3Objects struct {
	api s3API
}

// NewS3Objects creates an S3 object reader from an AWS config.
func NewS3Objects(cfg sdkaws.Config) *S3Objects {
	return &S3Objects{api: s3.NewFromConfig(cfg)}
}

// Head returns the object's metadata without its content.
func (s *S3Objects) Head(ctx context.Context, bucket, key string) (object.Metadata, error) {
	start := time.Now()
	out, err := s.api.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: sdkaws.String(bucket),
		Key:    sdkaws.String(key),
	})
	metrics.ObserveUpstream("s3", "HeadObject", start, err)
	if err != nil {
		return object.Metadata{}, mapS3Error("head object", err)
	}

	return object.NewMetadata(
		sdkaws.ToTime(out.LastModified),
		sdkaws.ToString(out.ContentType),
		out.Metadata,
	), nil
}

// Get returns the object's content.
func (s *S3Objects) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	start := time.Now()
	out, err := s.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: sdkaws.String(bucket),
		Key:    sdkaws.String(key),
	})
	metrics.ObserveUpstream("s3", "GetObject", start, err)
	if err != nil {
		return nil, mapS3Error("get object", err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("read object body: %w: %w", domain.ErrStorageProvider, err)
	}
	return data, nil
}

func mapS3Error(op string, err error) error {
	var notFound *types.NotFound
	var noSuchKey *types.NoSuchKey
	if errors.As(err, &notFound) || errors.As(err, &noSuchKey) {
		return fmt.Errorf("%s: %w", op, domain.ErrObjectNotFound)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStorageProvider, err)
}
