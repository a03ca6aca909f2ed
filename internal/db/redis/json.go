package redis

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/kailas-cloud/photoindex/internal/db"
)

// IndexDocument stores a JSON document under the index prefix.
// An empty id gets a random UUID.
func (s *Store) IndexDocument(ctx context.Context, index, id string, body []byte) (string, error) {
	if index == "" {
		return "", fmt.Errorf("index name is required")
	}
	if id == "" {
		id = uuid.NewString()
	}

	key := s.docPrefix(index) + id
	cmd := s.b().Arbitrary("JSON.SET").Keys(key).Args("$", string(body)).Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return "", &db.Error{Op: db.OpIndex, Err: err}
	}
	return id, nil
}
