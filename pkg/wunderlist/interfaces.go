package wunderlist

import "context"

type Client interface {
	UserID(ctx context.Context) (any, error)
	Fetch(ctx context.Context, kind Kind, listID string) (Result, error)
	CompletedTasks(ctx context.Context, listID string) (Result, error)
	Failures() int
	CacheStats() (hits, misses int)
}

var _ Client = (*WunderlistClient)(nil)
