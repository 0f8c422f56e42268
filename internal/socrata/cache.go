package socrata

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"
)

// Storage is the subset of the gofiber storage contract the cache needs.
// github.com/gofiber/storage/redis/v3 satisfies it directly.
type Storage interface {
	Get(key string) ([]byte, error)
	Set(key string, val []byte, exp time.Duration) error
}

// Cache memoizes raw API responses for a fixed TTL. Stale entries simply
// expire; there is no invalidation, which is fine for a read-only upstream
// dataset that changes daily at most.
type Cache struct {
	storage Storage
	ttl     time.Duration
}

// NewCache creates a response cache on top of the given storage backend.
func NewCache(storage Storage, ttl time.Duration) *Cache {
	return &Cache{storage: storage, ttl: ttl}
}

// Get returns the cached body for the URL, if present.
func (c *Cache) Get(url string) ([]byte, bool) {
	body, err := c.storage.Get(cacheKey(url))
	if err != nil || len(body) == 0 {
		return nil, false
	}
	return body, true
}

// Set stores the body under the URL for the configured TTL. Storage errors
// are ignored: the cache is best-effort.
func (c *Cache) Set(url string, body []byte) {
	_ = c.storage.Set(cacheKey(url), body, c.ttl)
}

func cacheKey(url string) string {
	sum := sha256.Sum256([]byte(url))
	return "socrata:" + hex.EncodeToString(sum[:])
}

// memoryStorage is the in-process fallback used when Redis is not
// configured. Entries are evicted lazily on read.
type memoryStorage struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	body    []byte
	expires time.Time
}

// NewMemoryStorage returns an in-process Storage implementation.
func NewMemoryStorage() Storage {
	return &memoryStorage{entries: make(map[string]memoryEntry)}
}

func (m *memoryStorage) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, nil
	}
	if time.Now().After(e.expires) {
		delete(m.entries, key)
		return nil, nil
	}
	return e.body, nil
}

func (m *memoryStorage) Set(key string, val []byte, exp time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.entries[key] = memoryEntry{body: val, expires: time.Now().Add(exp)}
	return nil
}
