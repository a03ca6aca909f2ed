package minio

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/kailas-cloud/photoindex/internal/domain"
	"github.com/kailas-cloud/photoindex/internal/domain/object"
	"github.com/kailas-cloud/photoindex/internal/metrics"
)

// Config holds S3-compatible endpoint settings.
type Config struct {
	Endpoint  string // host:port, no scheme
	AccessKey string
	SecretKey string
	Region    string
	UseSSL    bool
}

// Objects reads object metadata and content from an S3-compatible server.
type Objects struct {
	client *minio.Client
}

// NewObjects creates an S3-compatible object reader.
func NewObjects(cfg Config) (*Objects, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("endpoint is required")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		Region: region,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}
	return &Objects{client: client}, nil
}

// Head returns the object's metadata without its content.
func (o *Objects) Head(ctx context.Context, bucket, key string) (object.Metadata, error) {
	start := time.Now()
	info, err := o.client.StatObject(ctx, bucket, key, minio.StatObjectOptions{})
	metrics.ObserveUpstream("minio", "StatObject", start, err)
	if err != nil {
		return object.Metadata{}, mapError("stat object", err)
	}

	return object.NewMetadata(info.LastModified, info.ContentType, map[string]string(info.UserMetadata)), nil
}

// Get returns the object's content.
func (o *Objects) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	start := time.Now()
	obj, err := o.client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		metrics.ObserveUpstream("minio", "GetObject", start, err)
		return nil, mapError("get object", err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	metrics.ObserveUpstream("minio", "GetObject", start, err)
	if err != nil {
		return nil, mapError("read object", err)
	}
	return data, nil
}

func mapError(op string, err error) error {
	resp := minio.ToErrorResponse(err)
	if resp.Code == "NoSuchKey" || resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s: %w", op, domain.ErrObjectNotFound)
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStorageProvider, err)
}
