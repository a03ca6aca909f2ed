package db

import (
	"context"
	"time"
)

// Store is the index facade combining all sub-interfaces.
type Store interface {
	Pinger
	IndexManager
	DocumentIndexer
	Matcher
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks index connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// IndexManager provides index lifecycle operations.
type IndexManager interface {
	EnsureIndex(ctx context.Context, def *IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// DocumentIndexer writes JSON documents into an index.
type DocumentIndexer interface {
	// IndexDocument stores body under id (or a backend-generated id when
	// id is empty) and returns the stored id.
	IndexDocument(ctx context.Context, index, id string, body []byte) (string, error)
}

// Matcher runs single-field match queries.
type Matcher interface {
	SearchMatch(ctx context.Context, q *MatchQuery) (*SearchResult, error)
}
