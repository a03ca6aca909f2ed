package app

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/kailas-cloud/photoindex/internal/config"
)

func TestLazy_BuildsOnce(t *testing.T) {
	var calls atomic.Int32
	l := NewLazy(func(context.Context) (*Container, error) {
		calls.Add(1)
		return &Container{}, nil
	})

	var wg sync.WaitGroup
	results := make([]*Container, 8)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c, err := l.Get(context.Background())
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			results[i] = c
		}()
	}
	wg.Wait()

	if calls.Load() != 1 {
		t.Errorf("expected one build, got %d", calls.Load())
	}
	for _, c := range results {
		if c != results[0] {
			t.Fatal("expected the same container for every caller")
		}
	}
}

func TestLazy_FailureNotCached(t *testing.T) {
	boom := errors.New("no credentials")
	attempts := 0
	l := NewLazy(func(context.Context) (*Container, error) {
		attempts++
		if attempts == 1 {
			return nil, boom
		}
		return &Container{}, nil
	})

	if _, err := l.Get(context.Background()); !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	c, err := l.Get(context.Background())
	if err != nil || c == nil {
		t.Fatalf("expected retry to succeed, got %v", err)
	}
	if attempts != 2 {
		t.Errorf("expected 2 attempts, got %d", attempts)
	}
}

func TestNeedsAWS(t *testing.T) {
	base := func() config.Config {
		cfg := config.Config{}
		cfg.ApplyDefaults()
		return cfg
	}

	local := base()
	local.Index.Driver = config.IndexDriverRedis
	local.Storage.Driver = config.StorageDriverMinIO
	local.Vision.Provider = config.VisionProviderOpenAI

	unsigned := base()
	f := false
	unsigned.Index.OpenSearch.Sign = &f
	unsigned.Storage.Driver = config.StorageDriverMinIO
	unsigned.Vision.Provider = config.VisionProviderOpenAI

	tests := []struct {
		name  string
		cfg   config.Config
		parts Parts
		want  bool
	}{
		{"defaults ingest", base(), Parts{Ingest: true}, true},
		{"search always", local, Parts{Search: true}, true},
		{"local ingest", local, Parts{Ingest: true}, false},
		{"unsigned opensearch ingest", unsigned, Parts{Ingest: true}, false},
		{"signed opensearch only", base(), Parts{}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := needsAWS(tc.cfg, tc.parts); got != tc.want {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestContainer_CloseWithoutStore(t *testing.T) {
	(&Container{}).Close()
}
