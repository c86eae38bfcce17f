package cache

import (
	"time"

	"github.com/bluele/gcache"
)

// DefaultMemorySize is the number of responses kept in memory
const DefaultMemorySize = 64

// MemoryCache is an in-process LRU with expiry
type MemoryCache struct {
	lru gcache.Cache
}

// NewMemoryCache creates an LRU holding up to size entries for ttl
func NewMemoryCache(size int, ttl time.Duration) *MemoryCache {
	if size <= 0 {
		size = DefaultMemorySize
	}
	return &MemoryCache{
		lru: gcache.New(size).LRU().Expiration(ttl).Build(),
	}
}

// Get returns a cached value
func (m *MemoryCache) Get(key string) ([]byte, bool) {
	v, err := m.lru.Get(key)
	if err != nil {
		return nil, false
	}
	data, ok := v.([]byte)
	return data, ok
}

// Set stores a value
func (m *MemoryCache) Set(key string, value []byte) error {
	return m.lru.Set(key, value)
}

// Len returns the number of live entries
func (m *MemoryCache) Len() int {
	return m.lru.Len(true)
}

// Tiered checks each cache in order and back-fills the faster tiers on a
// hit further down. Writes go to every tier.
type Tiered struct {
	tiers []Cache
}

// NewTiered stacks caches, fastest first. Nil tiers are skipped.
func NewTiered(tiers ...Cache) *Tiered {
	t := &Tiered{}
	for _, c := range tiers {
		if c != nil {
			t.tiers = append(t.tiers, c)
		}
	}
	return t
}

// Get returns the first hit
func (t *Tiered) Get(key string) ([]byte, bool) {
	for i, c := range t.tiers {
		data, ok := c.Get(key)
		if !ok {
			continue
		}
		for _, faster := range t.tiers[:i] {
			_ = faster.Set(key, data)
		}
		return data, true
	}
	return nil, false
}

// Set writes to every tier and returns the first error
func (t *Tiered) Set(key string, value []byte) error {
	var first error
	for _, c := range t.tiers {
		if err := c.Set(key, value); err != nil && first == nil {
			first = err
		}
	}
	return first
}
