package photo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/photoindex/internal/db"
	"github.com/kailas-cloud/photoindex/internal/domain"
	domphoto "github.com/kailas-cloud/photoindex/internal/domain/photo"
	"github.com/kailas-cloud/photoindex/internal/logger"
)

// DefaultIndex is the index photo documents live in.
const DefaultIndex = "photos"

// LabelsField is the document field label searches match against.
const LabelsField = "labels"

// store is the consumer interface for photo documents (ISP).
type store interface {
	EnsureIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
	IndexDocument(ctx context.Context, index, id string, body []byte) (string, error)
	SearchMatch(ctx context.Context, q *db.MatchQuery) (*db.SearchResult, error)
}

// Repo implements usecase/ingest.Repository and usecase/search.Repository.
type Repo struct {
	store store
	index string
}

// New creates a photo repository over the named index.
func New(s store, index string) *Repo {
	if index == "" {
		index = DefaultIndex
	}
	return &Repo{store: s, index: index}
}

// Index returns the index name.
func (r *Repo) Index() string { return r.index }

// Definition returns the photo index schema.
func Definition(index string) *db.IndexDefinition {
	return db.NewIndex(index).
		Keyword("objectKey").
		Keyword("bucket").
		Date("createdTimeStamp").
		TextArray(LabelsField).
		MustBuild()
}

// EnsureIndex creates the photo index if it does not exist and reports
// whether this call created it.
func (r *Repo) EnsureIndex(ctx context.Context) (bool, error) {
	exists, err := r.store.IndexExists(ctx, r.index)
	if err != nil {
		return false, fmt.Errorf("probe index %s: %w", r.index, err)
	}
	if exists {
		return false, nil
	}

	if err := r.store.EnsureIndex(ctx, Definition(r.index)); err != nil {
		// created concurrently
		if errors.Is(err, db.ErrIndexExists) {
			return false, nil
		}
		return false, fmt.Errorf("ensure index %s: %w", r.index, err)
	}
	return true, nil
}

// Save writes p as a new document and returns the stored id.
func (r *Repo) Save(ctx context.Context, p *domphoto.Photo) (string, error) {
	data, err := json.Marshal(toDoc(p))
	if err != nil {
		return "", fmt.Errorf("marshal photo: %w", err)
	}

	id, err := r.store.IndexDocument(ctx, r.index, "", data)
	if err != nil {
		return "", fmt.Errorf("index %s: %w", p.ObjectKey(), err)
	}
	return id, nil
}

// FindByLabel returns photos whose labels match label.
// Hits that fail to decode are skipped.
func (r *Repo) FindByLabel(ctx context.Context, label string) ([]domphoto.Photo, error) {
	res, err := r.store.SearchMatch(ctx, &db.MatchQuery{
		IndexName: r.index,
		Field:     LabelsField,
		Value:     label,
	})
	if err != nil {
		if errors.Is(err, db.ErrIndexNotFound) {
			return nil, fmt.Errorf("search label %q: %w: %s", label, domain.ErrIndexNotFound, r.index)
		}
		return nil, fmt.Errorf("search label %q: %w", label, err)
	}
	if res == nil || len(res.Hits) == 0 {
		return nil, nil
	}

	photos := make([]domphoto.Photo, 0, len(res.Hits))
	for i := range res.Hits {
		var d photoDoc
		if err := json.Unmarshal(res.Hits[i].Source, &d); err != nil || d.ObjectKey == "" {
			logger.FromContext(ctx).Warn("skip malformed hit",
				zap.String("id", res.Hits[i].ID),
				zap.String("label", label),
				zap.Error(err),
			)
			continue
		}
		photos = append(photos, d.toDomain())
	}
	return photos, nil
}
