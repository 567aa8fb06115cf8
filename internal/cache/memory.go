package cache

import (
	"context"
	"sync"
	"time"
)

// MemoryCache implements Cache in process memory. Used when Redis is not
// configured; expired entries are swept by a background goroutine.
type MemoryCache struct {
	mu   sync.RWMutex
	data map[string]memoryItem
	done chan struct{}
}

type memoryItem struct {
	value      []byte
	expiration time.Time
}

// NewMemoryCache creates an in-memory cache.
func NewMemoryCache() *MemoryCache {
	mc := &MemoryCache{
		data: make(map[string]memoryItem),
		done: make(chan struct{}),
	}
	go mc.sweep()
	return mc
}

func (m *MemoryCache) Get(ctx context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	item, ok := m.data[key]
	if !ok || time.Now().After(item.expiration) {
		return nil, ErrCacheMiss
	}
	return item.value, nil
}

func (m *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[key] = memoryItem{value: value, expiration: time.Now().Add(ttl)}
	return nil
}

func (m *MemoryCache) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.data, key)
	return nil
}

// Close stops the sweeper.
func (m *MemoryCache) Close() error {
	close(m.done)
	return nil
}

func (m *MemoryCache) sweep() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			now := time.Now()
			m.mu.Lock()
			for key, item := range m.data {
				if now.After(item.expiration) {
					delete(m.data, key)
				}
			}
			m.mu.Unlock()
		case <-m.done:
			return
		}
	}
}
