package out

import "context"

// LocalStore is the device-scoped durable key/value medium behind the cache.
type LocalStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}
