package geocode

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is a cache for resolved places. Implementations must be safe for
// concurrent use.
type Store interface {
	// Get returns the cached place for key, or found=false on a miss.
	Get(ctx context.Context, key string) (place *Place, found bool, err error)
	// Set caches a place under key for ttl.
	Set(ctx context.Context, key string, place *Place, ttl time.Duration) error
}

// cacheKey hashes the normalized query into a stable cache key.
func cacheKey(normalizedQuery string) string {
	hash := sha256.Sum256([]byte(normalizedQuery))
	return fmt.Sprintf("geocode:%x", hash[:8])
}

// MemoryStore is an in-process Store for single-instance deployments and
// tests.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	place     Place
	expiresAt time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) (*Place, bool, error) {
	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok {
		return nil, false, nil
	}

	// Lazy eviction keeps the map bounded in long-lived processes.
	if time.Now().After(entry.expiresAt) {
		s.mu.Lock()
		if current, still := s.entries[key]; still && current.expiresAt.Equal(entry.expiresAt) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return nil, false, nil
	}

	place := entry.place
	return &place, true, nil
}

func (s *MemoryStore) Set(_ context.Context, key string, place *Place, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[key] = memoryEntry{
		place:     *place,
		expiresAt: time.Now().Add(ttl),
	}
	return nil
}

// RedisStore is a Redis-backed Store for multi-instance deployments.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a store backed by the given Redis client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(ctx context.Context, key string) (*Place, bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get: %w", err)
	}

	var place Place
	if err := json.Unmarshal(data, &place); err != nil {
		return nil, false, fmt.Errorf("unmarshaling cached place: %w", err)
	}

	return &place, true, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, place *Place, ttl time.Duration) error {
	data, err := json.Marshal(place)
	if err != nil {
		return fmt.Errorf("marshaling place: %w", err)
	}

	return s.client.Set(ctx, key, data, ttl).Err()
}
