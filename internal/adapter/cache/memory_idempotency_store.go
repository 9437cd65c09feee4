package cache

import (
	"context"
	"sync"
	"time"

	"github.com/samuelordialeseya/fruit-pos/internal/usecase"
)

type memEntry struct {
	value   string
	expires time.Time
}

// MemoryIdempotencyStore is the single-process counterpart of
// RedisIdempotencyStore. Expired entries are dropped lazily on access.
type MemoryIdempotencyStore struct {
	mu    sync.Mutex
	ttl   time.Duration
	now   func() time.Time
	locks map[string]time.Time
	vals  map[string]memEntry
}

func NewMemoryIdempotencyStore(ttl time.Duration) *MemoryIdempotencyStore {
	return &MemoryIdempotencyStore{
		ttl:   ttl,
		now:   time.Now,
		locks: map[string]time.Time{},
		vals:  map[string]memEntry{},
	}
}

func (s *MemoryIdempotencyStore) expiry() time.Time {
	if s.ttl <= 0 {
		return time.Time{}
	}
	return s.now().Add(s.ttl)
}

func (s *MemoryIdempotencyStore) live(exp time.Time) bool {
	return exp.IsZero() || s.now().Before(exp)
}

func (s *MemoryIdempotencyStore) TryLock(_ context.Context, scope, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := scope + ":" + key
	if exp, ok := s.locks[k]; ok && s.live(exp) {
		return false, nil
	}
	s.locks[k] = s.expiry()
	return true, nil
}

func (s *MemoryIdempotencyStore) Release(_ context.Context, scope, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.locks, scope+":"+key)
	return nil
}

func (s *MemoryIdempotencyStore) Remember(_ context.Context, scope, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.vals[scope+":"+key] = memEntry{value: value, expires: s.expiry()}
	return nil
}

func (s *MemoryIdempotencyStore) Recall(_ context.Context, scope, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := scope + ":" + key
	e, ok := s.vals[k]
	if !ok {
		return "", false, nil
	}
	if !s.live(e.expires) {
		delete(s.vals, k)
		return "", false, nil
	}
	return e.value, true, nil
}

var _ usecase.IdempotencyStore = (*MemoryIdempotencyStore)(nil)
