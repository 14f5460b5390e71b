package postal

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// CachedLookup puts a cache in front of a Lookuper and collapses
// concurrent lookups of the same code into one upstream call.
// Only successful lookups are cached.
type CachedLookup struct {
	next   Lookuper
	cache  Cache
	logger *zap.Logger
	group  singleflight.Group
}

func NewCachedLookup(next Lookuper, cache Cache, logger *zap.Logger) *CachedLookup {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedLookup{next: next, cache: cache, logger: logger.Named("postal")}
}

func (c *CachedLookup) Lookup(ctx context.Context, postalCode string) (Address, error) {
	addr, err := c.cache.Get(ctx, postalCode)
	if err == nil {
		return addr, nil
	}
	if !errors.Is(err, ErrCacheMiss) {
		c.logger.Warn("postal cache get", zap.String("postal_code", postalCode), zap.Error(err))
	}

	// The shared call must outlive any single caller; each caller still
	// stops waiting when its own ctx is done.
	shared := context.WithoutCancel(ctx)
	ch := c.group.DoChan(postalCode, func() (interface{}, error) {
		found, err := c.next.Lookup(shared, postalCode)
		if err != nil {
			return Address{}, err
		}
		if err := c.cache.Set(shared, postalCode, found); err != nil {
			c.logger.Warn("postal cache set", zap.String("postal_code", postalCode), zap.Error(err))
		}
		return found, nil
	})
	select {
	case <-ctx.Done():
		return Address{}, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return Address{}, res.Err
		}
		return res.Val.(Address), nil
	}
}
