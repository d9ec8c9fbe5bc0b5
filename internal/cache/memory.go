package cache

import (
	"context"
	"strconv"
	"sync"
	"time"
)

type memoryItem struct {
	value     []byte
	expiresAt time.Time // zero: never
}

func (i memoryItem) expired(now time.Time) bool {
	return !i.expiresAt.IsZero() && now.After(i.expiresAt)
}

// MemoryStore is an in-process Store used when no Redis server is configured.
type MemoryStore struct {
	mu    sync.Mutex
	items map[string]memoryItem
	done  chan struct{}
	once  sync.Once
	now   func() time.Time
}

// NewMemoryStore creates a store that sweeps expired keys every cleanupInterval.
func NewMemoryStore(cleanupInterval time.Duration) *MemoryStore {
	s := &MemoryStore{
		items: make(map[string]memoryItem),
		done:  make(chan struct{}),
		now:   time.Now,
	}
	if cleanupInterval > 0 {
		go s.cleanup(cleanupInterval)
	}
	return s
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, ok := s.items[key]
	if !ok || item.expired(s.now()) {
		return nil, ErrMiss
	}
	return item.value, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := memoryItem{value: append([]byte(nil), value...)}
	if ttl > 0 {
		item.expiresAt = s.now().Add(ttl)
	}
	s.items[key] = item
	return nil
}

// Incr matches Redis INCR: a missing key counts from zero and keeps no expiry.
func (s *MemoryStore) Incr(_ context.Context, key string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var next memoryItem
	item, ok := s.items[key]
	if ok && !item.expired(s.now()) {
		next = item
	}

	var n int64
	if next.value != nil {
		parsed, err := strconv.ParseInt(string(next.value), 10, 64)
		if err != nil {
			return 0, err
		}
		n = parsed
	}
	n++
	next.value = []byte(strconv.FormatInt(n, 10))
	s.items[key] = next
	return n, nil
}

func (s *MemoryStore) Close() error {
	s.once.Do(func() { close(s.done) })
	return nil
}

func (s *MemoryStore) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.mu.Lock()
			now := s.now()
			for key, item := range s.items {
				if item.expired(now) {
					delete(s.items, key)
				}
			}
			s.mu.Unlock()
		case <-s.done:
			return
		}
	}
}
