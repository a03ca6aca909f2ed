package opensearch

import (
	"github.com/opensearch-project/opensearch-go/v4"
	"github.com/opensearch-project/opensearch-go/v4/opensearchapi"
)

// NewStoreForTest creates an unsigned Store pointed at addr (test-only).
func NewStoreForTest(addr string) (*Store, error) {
	client, err := opensearchapi.NewClient(opensearchapi.Config{
		Client: opensearch.Config{Addresses: []string{addr}},
	})
	if err != nil {
		return nil, err
	}
	return &Store{client: client}, nil
}
