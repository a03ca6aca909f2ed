package search

import (
	"context"

	"github.com/kailas-cloud/photoindex/internal/domain/intent"
	"github.com/kailas-cloud/photoindex/internal/domain/photo"
)

// IntentResolver turns free text into slot values.
type IntentResolver interface {
	Resolve(ctx context.Context, text string) (intent.Interpretation, error)
}

// Repository finds indexed photos by label.
type Repository interface {
	FindByLabel(ctx context.Context, label string) ([]photo.Photo, error)
}
