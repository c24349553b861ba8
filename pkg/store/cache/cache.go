package cache

import (
	"context"
	"time"
)

// Store is a byte-oriented session cache. Get reports a miss with found=false
// and a nil error.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, found bool, err error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

type noop struct{}

// NewNoop returns a Store that never holds anything.
func NewNoop() Store {
	return noop{}
}

func (noop) Get(context.Context, string) ([]byte, bool, error)             { return nil, false, nil }
func (noop) Set(context.Context, string, []byte, time.Duration) error { return nil }
func (noop) Delete(context.Context, string) error                         { return nil }
