package opensearch

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/opensearch-project/opensearch-go/v4/opensearchapi"

	"github.com/kailas-cloud/photoindex/internal/db"
)

// EnsureIndex creates the index with an explicit mapping. An existing index
// yields db.ErrIndexExists.
func (s *Store) EnsureIndex(ctx context.Context, def *db.IndexDefinition) error {
	body, err := buildMapping(def)
	if err != nil {
		return err
	}

	_, err = s.client.Indices.Create(ctx, opensearchapi.IndicesCreateReq{
		Index: def.Name,
		Body:  bytes.NewReader(body),
	})
	if err != nil {
		if strings.Contains(err.Error(), "resource_already_exists_exception") {
			return &db.Error{Op: db.OpCreateIndex, Err: db.ErrIndexExists}
		}
		return &db.Error{Op: db.OpCreateIndex, Err: err}
	}
	return nil
}

// IndexExists probes the index with a HEAD request; 404 means absent.
func (s *Store) IndexExists(ctx context.Context, name string) (bool, error) {
	resp, err := s.client.Indices.Exists(ctx, opensearchapi.IndicesExistsReq{Indices: []string{name}})
	if resp != nil && resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if err != nil {
		return false, &db.Error{Op: db.OpIndexInfo, Err: err}
	}
	return true, nil
}

type mappingDoc struct {
	Mappings struct {
		Properties map[string]fieldMapping `json:"properties"`
	} `json:"mappings"`
}

type fieldMapping struct {
	Type string `json:"type"`
}

// buildMapping renders the index body. Arrays need no special mapping,
// every OpenSearch field accepts multiple values.
func buildMapping(def *db.IndexDefinition) ([]byte, error) {
	if err := def.Validate(); err != nil {
		return nil, err
	}

	var doc mappingDoc
	doc.Mappings.Properties = make(map[string]fieldMapping, len(def.Fields))
	for i := range def.Fields {
		f := &def.Fields[i]
		var typ string
		switch f.Type {
		case db.IndexFieldText:
			typ = "text"
		case db.IndexFieldKeyword:
			typ = "keyword"
		case db.IndexFieldDate:
			typ = "date"
		default:
			return nil, errors.New("unknown field type")
		}
		doc.Mappings.Properties[f.Name] = fieldMapping{Type: typ}
	}
	return json.Marshal(doc)
}
