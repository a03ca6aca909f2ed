package ingest

import (
	"context"

	"github.com/kailas-cloud/photoindex/internal/domain/object"
	"github.com/kailas-cloud/photoindex/internal/domain/photo"
)

// Labeler detects labels in a stored image.
type Labeler interface {
	DetectLabels(ctx context.Context, bucket, key string) ([]string, error)
}

// ObjectReader fetches stored object metadata.
type ObjectReader interface {
	Head(ctx context.Context, bucket, key string) (object.Metadata, error)
}

// Repository persists photo documents.
type Repository interface {
	Save(ctx context.Context, p *photo.Photo) (string, error)
}
