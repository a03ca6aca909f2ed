package request

import (
	"fmt"

	"github.com/kailas-cloud/photoindex/internal/domain"
)

// MaxQueryLength is the longest text the intent resolver accepts.
const MaxQueryLength = 1024

// Request is a validated photo search query.
type Request struct {
	query string
}

// New validates the raw query text.
func New(query string) (Request, error) {
	if query == "" {
		return Request{}, domain.ErrMissingQuery
	}
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("%w (max %d chars)", domain.ErrQueryTooLong, MaxQueryLength)
	}
	return Request{query: query}, nil
}

// Query returns the search query text.
func (r *Request) Query() string { return r.query }
