// Package distlock serializes operations that must not run concurrently,
// such as the blog feed sync. The Redis lock coordinates across
// instances; the local lock covers single-instance deployments.
package distlock

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// DistLock is the interface for distributed locking.
// Implementations must be safe for use from a single goroutine;
// concurrent use across goroutines requires separate lock instances.
type DistLock interface {
	// Acquire tries to acquire the lock. Returns true if successful.
	Acquire(ctx context.Context) (bool, error)
	// Release releases the lock if we still own it.
	Release(ctx context.Context) error
}

// New creates a lock using the best available backend: Redis when a
// client is provided, otherwise an in-process mutex.
func New(redisClient *redis.Client, key string, ttl time.Duration) DistLock {
	if redisClient != nil {
		return NewRedisLock(redisClient, key, ttl)
	}
	return NewLocalLock()
}

// LocalLock implements DistLock with a process-local mutex. Release must
// only be called after a successful Acquire.
type LocalLock struct {
	mu sync.Mutex
}

// NewLocalLock creates a process-local lock.
func NewLocalLock() *LocalLock {
	return &LocalLock{}
}

// Acquire takes the lock if it is free, without blocking.
func (l *LocalLock) Acquire(_ context.Context) (bool, error) {
	return l.mu.TryLock(), nil
}

// Release releases the lock.
func (l *LocalLock) Release(_ context.Context) error {
	l.mu.Unlock()
	return nil
}
