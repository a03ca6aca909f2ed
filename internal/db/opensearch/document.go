package opensearch

import (
	"bytes"
	"context"
	"errors"

	"github.com/opensearch-project/opensearch-go/v4/opensearchapi"

	"github.com/kailas-cloud/photoindex/internal/db"
)

// IndexDocument writes body into index. An empty id lets the cluster
// generate one.
func (s *Store) IndexDocument(ctx context.Context, index, id string, body []byte) (string, error) {
	if index == "" {
		return "", errors.New("index name is required")
	}

	resp, err := s.client.Index(ctx, opensearchapi.IndexReq{
		Index:      index,
		DocumentID: id,
		Body:       bytes.NewReader(body),
	})
	if err != nil {
		return "", &db.Error{Op: db.OpIndex, Err: err}
	}
	return resp.ID, nil
}
