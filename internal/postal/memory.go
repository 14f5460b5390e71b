package postal

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// MemoryCache is the in-process cache used when no Redis is configured.
type MemoryCache struct {
	lru *expirable.LRU[string, Address]
}

func NewMemoryCache(size int, ttl time.Duration) *MemoryCache {
	return &MemoryCache{lru: expirable.NewLRU[string, Address](size, nil, ttl)}
}

func (m *MemoryCache) Get(_ context.Context, postalCode string) (Address, error) {
	if addr, ok := m.lru.Get(postalCode); ok {
		return addr, nil
	}
	return Address{}, ErrCacheMiss
}

func (m *MemoryCache) Set(_ context.Context, postalCode string, addr Address) error {
	m.lru.Add(postalCode, addr)
	return nil
}
