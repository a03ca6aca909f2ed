package app

import (
	"context"
	"sync"
)

// BuildFunc creates a container.
type BuildFunc func(ctx context.Context) (*Container, error)

// Lazy builds a container on first use and reuses it for the lifetime of
// the process. A failed build is not cached.
type Lazy struct {
	mu    sync.Mutex
	c     *Container
	build BuildFunc
}

// NewLazy wraps build.
func NewLazy(build BuildFunc) *Lazy {
	return &Lazy{build: build}
}

// Get returns the container, building it if needed.
func (l *Lazy) Get(ctx context.Context) (*Container, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.c != nil {
		return l.c, nil
	}
	c, err := l.build(ctx)
	if err != nil {
		return nil, err
	}
	l.c = c
	return c, nil
}
