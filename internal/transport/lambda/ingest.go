package lambda

import (
	"context"
	"fmt"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"go.uber.org/zap"

	"github.com/kailas-cloud/photoindex/internal/domain"
	"github.com/kailas-cloud/photoindex/internal/logger"
)

// Ingester indexes one stored object.
type Ingester interface {
	Ingest(ctx context.Context, bucket, rawKey string) (string, error)
}

// IngesterFunc returns the ingester for an invocation, building clients on first use.
type IngesterFunc func(ctx context.Context) (Ingester, error)

// IngestHandler adapts storage-write notifications to the ingestion service.
type IngestHandler struct {
	get    IngesterFunc
	logger *zap.Logger
}

// NewIngestHandler creates the ingestion entry point.
func NewIngestHandler(get IngesterFunc, log *zap.Logger) *IngestHandler {
	return &IngestHandler{get: get, logger: log}
}

// Handle processes every record in order and returns the last content type.
func (h *IngestHandler) Handle(ctx context.Context, event events.S3Event) (string, error) {
	log := invocationLogger(ctx, h.logger)
	ctx = logger.ContextWithLogger(ctx, log)

	if len(event.Records) == 0 {
		log.Warn("empty storage event")
		return "", domain.ErrEmptyEvent
	}

	svc, err := h.get(ctx)
	if err != nil {
		log.Error("init failed", zap.Error(err))
		return "", fmt.Errorf("init: %w", err)
	}

	var contentType string
	for i := range event.Records {
		rec := &event.Records[i]
		contentType, err = svc.Ingest(ctx, rec.S3.Bucket.Name, rec.S3.Object.Key)
		if err != nil {
			return "", err
		}
	}
	return contentType, nil
}

func invocationLogger(ctx context.Context, log *zap.Logger) *zap.Logger {
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		return log.With(zap.String("aws_request_id", lc.AwsRequestID))
	}
	return log
}
