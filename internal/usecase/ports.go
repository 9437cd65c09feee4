package usecase

import (
	"context"
	"time"
)

// KVStore is the persistence collaborator. Values are opaque strings.
type KVStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

type EventPublisher interface {
	Publish(ctx context.Context, ev OrderEvent) error
}

type IdempotencyStore interface {
	TryLock(ctx context.Context, scope, key string) (bool, error)
	Remember(ctx context.Context, scope, key, value string) error
	Recall(ctx context.Context, scope, key string) (string, bool, error)
	// Release drops a lock taken by TryLock whose command did not complete.
	Release(ctx context.Context, scope, key string) error
}

type IDGenerator func() string

type Clock func() time.Time

type noopPublisher struct{}

func (noopPublisher) Publish(context.Context, OrderEvent) error { return nil }
