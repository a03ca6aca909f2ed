package ingest

import (
	"context"

	"github.com/kailas-cloud/photoindex/internal/domain/object"
	"github.com/kailas-cloud/photoindex/internal/domain/photo"
)

type mockLabeler struct {
	detectFn func(ctx context.Context, bucket, key string) ([]string, error)
}

func (m *mockLabeler) DetectLabels(ctx context.Context, bucket, key string) ([]string, error) {
	if m.detectFn != nil {
		return m.detectFn(ctx, bucket, key)
	}
	return nil, nil
}

type mockObjects struct {
	headFn func(ctx context.Context, bucket, key string) (object.Metadata, error)
}

func (m *mockObjects) Head(ctx context.Context, bucket, key string) (object.Metadata, error) {
	if m.headFn != nil {
		return m.headFn(ctx, bucket, key)
	}
	return object.Metadata{}, nil
}

type mockRepo struct {
	saveFn func(ctx context.Context, p *photo.Photo) (string, error)
	saved  []photo.Photo
}

func (m *mockRepo) Save(ctx context.Context, p *photo.Photo) (string, error) {
	m.saved = append(m.saved, *p)
	if m.saveFn != nil {
		return m.saveFn(ctx, p)
	}
	return "id-1", nil
}
