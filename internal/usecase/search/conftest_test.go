package search

import (
	"context"
	"sync"
	"time"

	"github.com/kailas-cloud/photoindex/internal/domain/intent"
	"github.com/kailas-cloud/photoindex/internal/domain/photo"
)

type mockResolver struct {
	resolveFn func(ctx context.Context, text string) (intent.Interpretation, error)
}

func (m *mockResolver) Resolve(ctx context.Context, text string) (intent.Interpretation, error) {
	if m.resolveFn != nil {
		return m.resolveFn(ctx, text)
	}
	return intent.NewInterpretation(nil, nil), nil
}

func slots(s map[string]string) *mockResolver {
	return &mockResolver{resolveFn: func(context.Context, string) (intent.Interpretation, error) {
		return intent.NewInterpretation([]string{"ok"}, s), nil
	}}
}

type mockRepo struct {
	mu       sync.Mutex
	findFn   func(ctx context.Context, label string) ([]photo.Photo, error)
	searched []string
}

func (m *mockRepo) FindByLabel(ctx context.Context, label string) ([]photo.Photo, error) {
	m.mu.Lock()
	m.searched = append(m.searched, label)
	m.mu.Unlock()
	if m.findFn != nil {
		return m.findFn(ctx, label)
	}
	return nil, nil
}

// byLabel serves fixed key lists per label.
func byLabel(index map[string][]string) *mockRepo {
	return &mockRepo{findFn: func(_ context.Context, label string) ([]photo.Photo, error) {
		keys := index[label]
		out := make([]photo.Photo, 0, len(keys))
		for _, k := range keys {
			out = append(out, photo.Reconstruct(k, "bucket", time.Time{}, []string{label}))
		}
		return out, nil
	}}
}
