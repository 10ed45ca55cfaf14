package cache

import (
	"context"
	"sync"
	"time"
)

// entry represents a stored value with expiration
type entry struct {
	value     []byte
	expiresAt time.Time
}

// InMemoryCache is a byte-value cache backed by a map. It is suitable for
// single-instance deployments and testing.
type InMemoryCache struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// NewInMemoryCache creates a new in-memory cache
func NewInMemoryCache() *InMemoryCache {
	return &InMemoryCache{
		entries: make(map[string]entry),
	}
}

// Get returns the cached value for key. The second return value is false
// when the key is absent or expired.
func (c *InMemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, exists := c.entries[key]
	if !exists {
		return nil, false, nil
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		return nil, false, nil
	}

	// Copy so callers cannot mutate the cached bytes.
	value := make([]byte, len(e.value))
	copy(value, e.value)
	return value, true, nil
}

// Set stores value under key with the given TTL. A zero TTL means the entry
// never expires.
func (c *InMemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	stored := make([]byte, len(value))
	copy(stored, value)

	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = time.Now().Add(ttl)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: stored, expiresAt: expiresAt}
	return nil
}

// Delete removes the given keys
func (c *InMemoryCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.entries, key)
	}
	return nil
}
