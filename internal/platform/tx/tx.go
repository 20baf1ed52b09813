package tx

import "context"

// Manager runs fn inside one store transaction. Implementations carry the
// transaction in ctx, so nested Within calls join the outer one.
type Manager interface {
	Within(ctx context.Context, fn func(ctx context.Context) error) error
}

// Direct runs fn without a transaction.
type Direct struct{}

func (Direct) Within(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
