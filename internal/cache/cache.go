package cache

import (
	"context"
	"time"
)

type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (hit bool, err error)
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// Key joins parts into a namespaced cache key.
func Key(parts ...string) string {
	out := "hb"
	for _, p := range parts {
		out += ":" + p
	}
	return out
}
