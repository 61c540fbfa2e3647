package cache

import (
	"context"
	"time"
)

// ReportCache stores serialized report payloads keyed by user and
// granularity. Writes are invalidated by TTL expiry only.
type ReportCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration) error
}

// NoopReportCache is used when no Redis address is configured
type NoopReportCache struct{}

func (NoopReportCache) Get(_ context.Context, _ string) ([]byte, bool, error) {
	return nil, false, nil
}

func (NoopReportCache) Set(_ context.Context, _ string, _ []byte, _ time.Duration) error {
	return nil
}
