package health

import "context"

// IndexPinger checks search index availability.
type IndexPinger interface {
	Ping(ctx context.Context) error
}

// VisionChecker checks label detection provider availability.
type VisionChecker interface {
	HealthCheck(ctx context.Context) error
}
