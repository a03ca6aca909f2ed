package photo

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"

	"github.com/kailas-cloud/photoindex/internal/db"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	ensureIndexFn   func(ctx context.Context, def *db.IndexDefinition) error
	indexExistsFn   func(ctx context.Context, name string) (bool, error)
	indexDocumentFn func(ctx context.Context, index, id string, body []byte) (string, error)
	searchMatchFn   func(ctx context.Context, q *db.MatchQuery) (*db.SearchResult, error)
}

func (m *mockStore) EnsureIndex(ctx context.Context, def *db.IndexDefinition) error {
	if m.ensureIndexFn != nil {
		return m.ensureIndexFn(ctx, def)
	}
	return nil
}

func (m *mockStore) IndexExists(ctx context.Context, name string) (bool, error) {
	if m.indexExistsFn != nil {
		return m.indexExistsFn(ctx, name)
	}
	return false, nil
}

func (m *mockStore) IndexDocument(ctx context.Context, index, id string, body []byte) (string, error) {
	if m.indexDocumentFn != nil {
		return m.indexDocumentFn(ctx, index, id, body)
	}
	return "id-1", nil
}

func (m *mockStore) SearchMatch(ctx context.Context, q *db.MatchQuery) (*db.SearchResult, error) {
	if m.searchMatchFn != nil {
		return m.searchMatchFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

// memStore is an in-memory index matching array fields element-wise.
type memStore struct {
	mu   sync.Mutex
	docs map[string]map[string][]byte // index -> id -> body
	next int
}

func newMemStore() *memStore {
	return &memStore{docs: make(map[string]map[string][]byte)}
}

func (m *memStore) EnsureIndex(_ context.Context, def *db.IndexDefinition) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.docs[def.Name]; ok {
		return &db.Error{Op: db.OpCreateIndex, Err: db.ErrIndexExists}
	}
	m.docs[def.Name] = make(map[string][]byte)
	return nil
}

func (m *memStore) IndexExists(_ context.Context, name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.docs[name]
	return ok, nil
}

func (m *memStore) IndexDocument(_ context.Context, index, id string, body []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if id == "" {
		m.next++
		id = strconv.Itoa(m.next)
	}
	if _, ok := m.docs[index]; !ok {
		m.docs[index] = make(map[string][]byte)
	}
	m.docs[index][id] = body
	return id, nil
}

func (m *memStore) SearchMatch(_ context.Context, q *db.MatchQuery) (*db.SearchResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	docs, ok := m.docs[q.IndexName]
	if !ok {
		return nil, &db.Error{Op: db.OpSearch, Err: db.ErrIndexNotFound}
	}
	res := &db.SearchResult{}
	for id, body := range docs {
		var doc map[string]any
		if err := json.Unmarshal(body, &doc); err != nil {
			continue
		}
		if !fieldMatches(doc[q.Field], q.Value) {
			continue
		}
		res.Total++
		res.Hits = append(res.Hits, db.SearchHit{ID: id, Source: body})
	}
	return res, nil
}

func fieldMatches(v any, want string) bool {
	switch t := v.(type) {
	case string:
		return t == want
	case []any:
		for _, e := range t {
			if s, ok := e.(string); ok && s == want {
				return true
			}
		}
	}
	return false
}
