package ingest

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"go.uber.org/zap"

	"github.com/kailas-cloud/photoindex/internal/domain"
	"github.com/kailas-cloud/photoindex/internal/domain/photo"
	"github.com/kailas-cloud/photoindex/internal/metrics"
)

// Options tunes ingestion behaviour.
type Options struct {
	// AllowMissingCustomLabels treats an absent customlabels field as an
	// empty label set instead of failing the ingestion.
	AllowMissingCustomLabels bool
}

// Service indexes uploaded photos.
type Service struct {
	labeler Labeler
	objects ObjectReader
	repo    Repository
	opts    Options
	logger  *zap.Logger
}

// New creates an ingestion service.
func New(labeler Labeler, objects ObjectReader, repo Repository, log *zap.Logger, opts Options) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{labeler: labeler, objects: objects, repo: repo, opts: opts, logger: log}
}

// Ingest labels the object at bucket/rawKey and writes its photo document.
// rawKey is the percent-encoded key of a storage notification. Returns the
// object's content type.
func (s *Service) Ingest(ctx context.Context, bucket, rawKey string) (string, error) {
	log := s.logger.With(zap.String("bucket", bucket), zap.String("object_key", rawKey))

	contentType, err := s.ingest(ctx, log, bucket, rawKey)
	if err != nil {
		metrics.PhotosIndexedTotal.WithLabelValues("error").Inc()
		log.Error("ingestion failed", zap.Error(err))
		return "", domain.NewObjectError(bucket, rawKey, err)
	}
	metrics.PhotosIndexedTotal.WithLabelValues("success").Inc()
	return contentType, nil
}

func (s *Service) ingest(ctx context.Context, log *zap.Logger, bucket, rawKey string) (string, error) {
	key, err := photo.DecodeObjectKey(rawKey)
	if err != nil {
		return "", err
	}

	detected, err := s.labeler.DetectLabels(ctx, bucket, key)
	if err != nil {
		return "", fmt.Errorf("detect labels: %w", err)
	}
	log.Debug("labels detected", zap.Strings("labels", detected))

	meta, err := s.objects.Head(ctx, bucket, key)
	if err != nil {
		return "", fmt.Errorf("head object: %w", err)
	}

	raw, ok := meta.CustomLabels()
	if !ok {
		log.Warn("object has no customlabels metadata",
			zap.Strings("metadata_keys", slices.Sorted(maps.Keys(meta.UserMetadata()))),
			zap.Bool("allowed", s.opts.AllowMissingCustomLabels),
		)
		if !s.opts.AllowMissingCustomLabels {
			return "", domain.ErrMissingCustomLabels
		}
	}
	custom := photo.ParseCustomLabels(raw)

	p, err := photo.New(key, bucket, meta.LastModified(), detected, custom)
	if err != nil {
		return "", fmt.Errorf("build photo: %w", err)
	}

	id, err := s.repo.Save(ctx, &p)
	if err != nil {
		return "", fmt.Errorf("save photo: %w", err)
	}

	log.Info("photo indexed",
		zap.String("id", id),
		zap.String("key", key),
		zap.Strings("labels", p.Labels()),
		zap.String("created", p.CreatedTimeStamp()),
	)
	return meta.ContentType(), nil
}
