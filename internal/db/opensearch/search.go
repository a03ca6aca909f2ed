package opensearch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/opensearch-project/opensearch-go/v4/opensearchapi"

	"github.com/kailas-cloud/photoindex/internal/db"
)

// SearchMatch runs {"query":{"match":{field:value}}} and returns the hits'
// _source documents.
func (s *Store) SearchMatch(ctx context.Context, q *db.MatchQuery) (*db.SearchResult, error) {
	if q.IndexName == "" {
		return nil, errors.New("index name is required")
	}
	if q.Field == "" {
		return nil, errors.New("field is required")
	}
	if q.Value == "" {
		return nil, errors.New("value is required")
	}

	body, err := buildMatchBody(q)
	if err != nil {
		return nil, err
	}

	resp, err := s.client.Search(ctx, &opensearchapi.SearchReq{
		Indices: []string{q.IndexName},
		Body:    bytes.NewReader(body),
	})
	if err != nil {
		if strings.Contains(err.Error(), "index_not_found_exception") {
			return nil, &db.Error{Op: db.OpSearch, Err: db.ErrIndexNotFound}
		}
		return nil, &db.Error{Op: db.OpSearch, Err: err}
	}

	res := &db.SearchResult{
		Total: resp.Hits.Total.Value,
		Hits:  make([]db.SearchHit, 0, len(resp.Hits.Hits)),
	}
	for _, h := range resp.Hits.Hits {
		res.Hits = append(res.Hits, db.SearchHit{
			ID:     h.ID,
			Score:  float64(h.Score),
			Source: []byte(h.Source),
		})
	}
	return res, nil
}

func buildMatchBody(q *db.MatchQuery) ([]byte, error) {
	size := q.Size
	if size <= 0 {
		size = db.DefaultMatchSize
	}
	return json.Marshal(map[string]any{
		"size": size,
		"query": map[string]any{
			"match": map[string]string{q.Field: q.Value},
		},
	})
}
