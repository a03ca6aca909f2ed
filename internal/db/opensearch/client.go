package opensearch

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/opensearch-project/opensearch-go/v4"
	"github.com/opensearch-project/opensearch-go/v4/opensearchapi"
	requestsigner "github.com/opensearch-project/opensearch-go/v4/signer/awsv2"

	"github.com/kailas-cloud/photoindex/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// DefaultService is the SigV4 signing name of Amazon OpenSearch Service domains.
const DefaultService = "es"

// Config holds connection parameters for an OpenSearch store.
type Config struct {
	Addrs    []string
	Username string
	Password string
	// Service is the SigV4 signing name ("es" for managed domains, "aoss" for
	// serverless collections). Ignored when no AWS config is supplied.
	Service string
}

// Store implements db.Store on top of opensearch-go.
type Store struct {
	client *opensearchapi.Client
}

// NewStore creates an OpenSearch store. A non-nil awsCfg enables SigV4
// request signing with its credentials and region.
func NewStore(cfg Config, awsCfg *aws.Config) (*Store, error) {
	if len(cfg.Addrs) == 0 {
		return nil, errors.New("addrs is required")
	}

	osCfg := opensearch.Config{
		Addresses: cfg.Addrs,
		Username:  cfg.Username,
		Password:  cfg.Password,
	}
	if awsCfg != nil {
		service := cfg.Service
		if service == "" {
			service = DefaultService
		}
		signer, err := requestsigner.NewSignerWithService(*awsCfg, service)
		if err != nil {
			return nil, fmt.Errorf("create request signer: %w", err)
		}
		osCfg.Signer = signer
	}

	client, err := opensearchapi.NewClient(opensearchapi.Config{Client: osCfg})
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return &Store{client: client}, nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	resp, err := s.client.Ping(ctx, nil)
	if err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	if resp != nil && resp.IsError() {
		return &db.Error{Op: db.OpPing, Err: fmt.Errorf("status %d", resp.StatusCode)}
	}
	return nil
}

// Close is a no-op for the HTTP client.
func (s *Store) Close() {}

// WaitForReady polls Ping until the cluster responds or timeout expires.
func (s *Store) WaitForReady(ctx context.Context, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	ticker := time.NewTicker(250 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("timeout waiting for opensearch: %w", ctx.Err())
		case <-ticker.C:
			if err := s.Ping(ctx); err == nil {
				return nil
			}
		}
	}
}
